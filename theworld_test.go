package theworld

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 10}

	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(30, 20), "edges are inside")
	assert.False(t, r.Contains(31, 15))

	assert.False(t, r.Intersects(Rect{X: 30, Y: 0, Width: 5, Height: 5}))
	assert.True(t, r.Intersects(Rect{X: 30, Y: 20, Width: 5, Height: 5}), "shared corner")
	assert.True(t, r.Intersects(Rect{X: 0, Y: 0, Width: 100, Height: 100}))
	assert.False(t, r.Intersects(Rect{X: 50, Y: 50, Width: 1, Height: 1}))
}

func TestColorToRGBA(t *testing.T) {
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, ColorWhite.ToRGBA())
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, ColorBlack.ToRGBA())
	assert.Equal(t, color.RGBA{127, 0, 0, 127}, Color{R: 1, A: 0.5}.ToRGBA(), "premultiplied")
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, Color{R: 2, G: -1, A: 1}.ToRGBA(), "clamped")
}

func TestTimeAdvance(t *testing.T) {
	var tm Time
	tm.maxDeltaTime = 0.1
	assert.Equal(t, 0.05, tm.advance(0.05))
	assert.Equal(t, 0.1, tm.advance(1))
	assert.Equal(t, 0.0, tm.advance(-3))
	assert.Equal(t, uint64(3), tm.FrameCount())
	assert.InDelta(t, 0.15, tm.Elapsed(), 1e-12)
}
