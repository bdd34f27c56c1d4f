package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraintBounds(t *testing.T) {
	c := Bounded(100, 50)
	assert.True(t, c.Max.Finite())
	assert.Equal(t, Sz(100, 20), c.Clamp(Sz(300, 20)))
	assert.Equal(t, Sz(80, 40), c.Deflate(Symmetric(10, 5)).Max)
	assert.Equal(t, Sz(0, 0), c.Deflate(Uniform(60)).Max, "never below zero")

	u := Unbounded()
	assert.False(t, u.Max.Finite())
	assert.True(t, IsInf(u.Max.W))
	assert.True(t, IsInf(u.Deflate(Uniform(10)).Max.H))
	assert.Equal(t, Sz(1e6, 3), u.Clamp(Sz(1e6, 3)))

	assert.False(t, Sz(Inf(), 1).Finite())
	assert.False(t, Sz(1, Inf()).Finite())
}

func TestRectContainsEdges(t *testing.T) {
	r := RectFrom(Pt(10, 10), Sz(5, 5))
	assert.Equal(t, Sz(5, 5), r.Size())
	assert.True(t, r.Contains(Pt(10, 10)))
	assert.True(t, r.Contains(Pt(15, 15)))
	assert.False(t, r.Contains(Pt(15.5, 12)))
	assert.True(t, Rect{}.Empty())
	assert.Equal(t, Pt(12, 13), r.Translate(Pt(2, 3)).Min)
}
