package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	c, err := Hex("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, Red, c)

	c, err = Hex("fff")
	require.NoError(t, err)
	assert.Equal(t, White, c)

	c, err = Hex("#00000080")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, c[3], 0.01)
	assert.False(t, c.Opaque())

	_, err = Hex("#12")
	assert.Error(t, err)
	_, err = Hex("#zzzzzz")
	assert.Error(t, err)
}

func TestAlphaHelpers(t *testing.T) {
	assert.True(t, Transparent.Invisible())
	assert.True(t, Black.Opaque())
	assert.False(t, Black.WithAlpha(0.5).Opaque())
	assert.Equal(t, Color{1, 0.5, 0, 1}, Color{1, 0.25, 0, 1}.Scale(2))
}
