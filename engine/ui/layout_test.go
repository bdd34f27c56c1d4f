package ui

import (
	"testing"

	"github.com/hubastard/arbor/engine/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerticalStackPlacement(t *testing.T) {
	rec := &recorder{}
	tree := ProduceTree(func(b *Builder) {
		b.Add(rec.col("stack"), func() {
			b.Add(rec.leaf("a", 40, 10))
			b.Add(rec.leaf("b", 40, 20))
			b.Add(rec.leaf("c", 40, 30))
		})
	})
	l := Solve(tree, geom.Sz(100, 100))

	assert.Equal(t, float32(0), l.Local[1].Y)
	assert.Equal(t, float32(10), l.Local[2].Y)
	assert.Equal(t, float32(30), l.Local[3].Y)
	assert.Equal(t, float32(60), l.Sizes[0].H)
	assert.Equal(t, geom.Rect{Min: geom.Pt(0, 30), Max: geom.Pt(40, 60)}, l.Bounds(3))
}

func TestSolveIsDeterministic(t *testing.T) {
	solve := func() *Layout {
		tree := ProduceTree(declareSample(&recorder{}))
		return Solve(tree, geom.Sz(200, 150))
	}
	assert.Equal(t, solve(), solve())
}

func TestAbsoluteIsSumOfLocals(t *testing.T) {
	rec := &recorder{}
	tree := ProduceTree(func(b *Builder) {
		outer := rec.col("outer")
		outer.pad = 5
		b.Add(outer, func() {
			b.Add(rec.leaf("x", 10, 10))
			inner := rec.col("inner")
			inner.pad = 3
			b.Add(inner, func() {
				b.Add(rec.leaf("y", 10, 10))
				b.Add(rec.leaf("z", 10, 10))
			})
		})
		b.Add(rec.leaf("root2", 10, 10))
	})
	l := Solve(tree, geom.Sz(100, 100))

	for i := range tree.Nodes {
		var want geom.Point
		var elev float32
		for _, id := range tree.Ancestors(NodeID(i)) {
			want = want.Add(l.Local[id].Point())
			elev += l.Local[id].Elevation
		}
		assert.Equal(t, want, l.Absolute[i], "node %d", i)
		assert.Equal(t, elev, l.Elevation[i], "node %d", i)
	}
	// z sits below x and y inside both paddings.
	assert.Equal(t, geom.Pt(8, 28), l.Absolute[4])
	assert.Equal(t, float32(2), l.Elevation[4])
}

func TestRootElevationStacking(t *testing.T) {
	rec := &recorder{}
	tree := ProduceTree(func(b *Builder) {
		b.Add(rec.col("r0"), func() {
			b.Add(rec.col("mid"), func() {
				b.Add(rec.leaf("deep", 5, 5))
			})
		})
		b.Add(rec.leaf("r1", 5, 5))
		b.Add(rec.leaf("r2", 5, 5))
	})
	l := Solve(tree, geom.Sz(50, 50))

	require.Equal(t, []NodeID{0, 3, 4}, tree.Roots)
	assert.Equal(t, float32(0), l.Elevation[0])
	assert.Equal(t, float32(2), l.Elevation[2])
	// r1 starts above the deepest node of r0; r2 above r1.
	assert.Equal(t, float32(2+RootElevationStep), l.Elevation[3])
	assert.Equal(t, float32(2+2*RootElevationStep), l.Elevation[4])
	assert.Greater(t, l.Elevation[3], l.Elevation[2])
}

func TestLeavesGetNoChildCalls(t *testing.T) {
	rec := &recorder{}
	leaf := rec.leaf("leaf", 5, 5)
	parent := rec.col("parent")
	tree := ProduceTree(func(b *Builder) {
		b.Add(parent, func() { b.Add(leaf) })
	})
	Solve(tree, geom.Sz(50, 50))
	assert.Equal(t, 0, leaf.childCalls)
	assert.Equal(t, 1, parent.childCalls)
}

func TestSolveHandlesUnboundedRoot(t *testing.T) {
	rec := &recorder{}
	tree := ProduceTree(func(b *Builder) {
		b.Add(rec.col("stack"), func() {
			b.Add(rec.leaf("a", 10, 1000))
			b.Add(rec.leaf("b", 10, 1000))
		})
	})
	l := Solve(tree, geom.Sz(100, geom.Inf()))
	assert.Equal(t, float32(2000), l.Sizes[0].H)
	assert.Equal(t, float32(1000), l.Local[2].Y)
}

func TestSizedPanicsBeforeConstraint(t *testing.T) {
	var s Sized
	assert.Panics(t, func() { s.Size() })
	s.SetSize(geom.Sz(1, 2))
	assert.Equal(t, geom.Sz(1, 2), s.Size())
}

func TestLeafPlaceChildPanics(t *testing.T) {
	_, ok := Leaf{}.ChildConstraint()
	assert.False(t, ok)
	assert.Panics(t, func() { Leaf{}.PlaceChild(geom.Size{}, 0) })
}

func TestSolveRejectsInconsistentTree(t *testing.T) {
	tree := ProduceTree(declareSample(&recorder{}))
	tree.Postorder[0], tree.Postorder[1] = tree.Postorder[1], tree.Postorder[0]
	assert.Panics(t, func() { Solve(tree, geom.Sz(10, 10)) })
}
