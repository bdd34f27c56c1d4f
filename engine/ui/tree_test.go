package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// declareSample builds:
//
//	a
//	├── b
//	│   ├── c
//	│   └── d
//	└── e
//	f
func declareSample(rec *recorder) func(b *Builder) {
	return func(b *Builder) {
		b.Add(rec.col("a"), func() {
			b.Add(rec.col("b"), func() {
				b.Add(rec.leaf("c", 10, 10))
				b.Add(rec.leaf("d", 10, 10))
			})
			b.Add(rec.leaf("e", 10, 10))
		})
		b.Add(rec.leaf("f", 10, 10))
	}
}

func TestProduceTreeStructure(t *testing.T) {
	tree := ProduceTree(declareSample(&recorder{}))

	require.Equal(t, 6, tree.Len())
	assert.Equal(t, []NodeID{NoNode, 0, 1, 1, 0, NoNode}, tree.Parent)
	assert.Equal(t, [][]NodeID{{1, 4}, {2, 3}, nil, nil, nil, nil}, tree.Children)
	assert.Equal(t, []int{0, 1, 2, 2, 1, 0}, tree.Depth)
	assert.Equal(t, []NodeID{2, 3, 1, 4, 0, 5}, tree.Postorder)
	assert.Equal(t, []NodeID{0, 5}, tree.Roots)
	assert.Equal(t, []NodeID{3, 1, 0}, tree.Ancestors(3))
	assert.Equal(t, "d", tree.Widget(3).(*testWidget).name)
	assert.NoError(t, tree.Validate())
}

func TestProduceTreeIsDeterministic(t *testing.T) {
	first := ProduceTree(declareSample(&recorder{}))
	second := ProduceTree(declareSample(&recorder{}))

	assert.Equal(t, first.Parent, second.Parent)
	assert.Equal(t, first.Children, second.Children)
	assert.Equal(t, first.Depth, second.Depth)
	assert.Equal(t, first.Postorder, second.Postorder)
	assert.Equal(t, first.Roots, second.Roots)
}

func TestPostorderIsTopological(t *testing.T) {
	tree := ProduceTree(declareSample(&recorder{}))
	at := make(map[NodeID]int, tree.Len())
	for i, id := range tree.Postorder {
		at[id] = i
	}
	require.Len(t, at, tree.Len())
	for id, kids := range tree.Children {
		for _, c := range kids {
			assert.Less(t, at[c], at[NodeID(id)], "child %d must pop before parent %d", c, id)
		}
	}
}

func TestExpandRunsBeforeDeclaredChildren(t *testing.T) {
	rec := &recorder{}
	tree := ProduceTree(func(b *Builder) {
		parent := expander{
			testWidget: rec.col("parent"),
			synthetic:  []Widget{rec.leaf("s1", 1, 1), rec.leaf("s2", 1, 1)},
		}
		b.Add(parent, func() {
			b.Add(rec.leaf("declared", 1, 1))
		})
	})

	require.Equal(t, 4, tree.Len())
	assert.Equal(t, []NodeID{1, 2, 3}, tree.Children[0])
	assert.Equal(t, "s1", tree.Widget(1).(*testWidget).name)
	assert.Equal(t, "declared", tree.Widget(3).(*testWidget).name)
	assert.Equal(t, []NodeID{1, 2, 3, 0}, tree.Postorder)
	assert.NoError(t, tree.Validate())
}

func TestBeginEnd(t *testing.T) {
	rec := &recorder{}
	tree := ProduceTree(func(b *Builder) {
		outer := b.Begin(rec.col("outer"))
		assert.Equal(t, outer.ID(), b.Parent())
		inner := b.Begin(rec.leaf("inner", 1, 1))
		inner.End()
		inner.End() // second End is a no-op
		outer.End()
		assert.Equal(t, NoNode, b.Parent())
	})
	assert.Equal(t, []NodeID{1, 0}, tree.Postorder)
}

func TestContractViolationsPanic(t *testing.T) {
	rec := &recorder{}

	assert.Panics(t, func() {
		ProduceTree(func(b *Builder) {
			outer := b.Begin(rec.col("outer"))
			b.Begin(rec.leaf("inner", 1, 1))
			outer.End()
		})
	}, "out of order End")

	assert.Panics(t, func() {
		ProduceTree(func(b *Builder) { b.Begin(rec.col("open")) })
	}, "scope left open")

	assert.Panics(t, func() {
		ProduceTree(func(b *Builder) { b.Add(nil) })
	}, "nil widget")
}

func TestAddClosesScopeWhenChildPanics(t *testing.T) {
	rec := &recorder{}
	var b *Builder
	assert.Panics(t, func() {
		ProduceTree(func(bb *Builder) {
			b = bb
			b.Add(rec.col("a"), func() { panic("boom") })
		})
	})
	assert.Equal(t, NoNode, b.Parent())
}

func TestValidateRejectsCorruptTrees(t *testing.T) {
	tree := ProduceTree(declareSample(&recorder{}))
	tree.Parent[3] = 4
	assert.ErrorIs(t, tree.Validate(), ErrInvalidTree)

	tree = ProduceTree(declareSample(&recorder{}))
	tree.Postorder[0], tree.Postorder[2] = tree.Postorder[2], tree.Postorder[0]
	assert.ErrorIs(t, tree.Validate(), ErrInvalidTree)

	tree = ProduceTree(declareSample(&recorder{}))
	tree.Postorder = tree.Postorder[:3]
	assert.ErrorIs(t, tree.Validate(), ErrInvalidTree)
}

type bindProbe struct {
	*testWidget
	got Resources
}

func (p *bindProbe) BindResources(res Resources) { p.got = res }

func TestBuilderBindsResources(t *testing.T) {
	res := newFakeResources()
	probe := &bindProbe{testWidget: (&recorder{}).leaf("p", 1, 1)}
	ProduceTree(func(b *Builder) {
		assert.Same(t, res, b.Resources())
		b.Add(probe)
	}, WithResources(res))
	assert.Same(t, res, probe.got)

	ProduceTree(func(b *Builder) {
		assert.Equal(t, NoResources{}, b.Resources())
	})
}
