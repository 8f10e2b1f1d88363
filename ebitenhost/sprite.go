package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/the-world-space/theworld"
)

// Sprite draws an image at its GameObject's world transform.
type Sprite struct {
	theworld.BaseComponent

	// Image is drawn with its anchor point at the transform origin. A nil
	// Image draws nothing.
	Image *ebiten.Image
	// Color tints the image. The zero value is treated as white.
	Color theworld.Color
	// AnchorX and AnchorY are the normalized pivot, 0.5 being the center.
	AnchorX, AnchorY float64

	hidden bool
	z      float64
}

// NewSprite creates a sprite centered on its transform.
func NewSprite(img *ebiten.Image) *Sprite {
	return &Sprite{Image: img, Color: theworld.ColorWhite, AnchorX: 0.5, AnchorY: 0.5}
}

// Visible reports whether the sprite should be drawn.
func (s *Sprite) Visible() bool {
	return !s.hidden && s.ActiveAndEnabled()
}

// SetHidden hides or shows the sprite without disabling it.
func (s *Sprite) SetHidden(hidden bool) {
	if s.hidden == hidden {
		return
	}
	s.hidden = hidden
	s.resubmit()
}

// OnSortByZAxis records the world z used for draw ordering.
func (s *Sprite) OnSortByZAxis(z float64) {
	s.z = z
}

// Z returns the world z of the sprite as of the last matrix update.
func (s *Sprite) Z() float64 {
	return s.z
}

// OnEnable re-submits the sprite so the renderer picks up the change.
func (s *Sprite) OnEnable() {
	s.resubmit()
}

// OnDisable re-submits the sprite so the renderer picks up the change.
func (s *Sprite) OnDisable() {
	s.resubmit()
}

func (s *Sprite) resubmit() {
	if t := s.Transform(); t != nil {
		t.MarkDirty()
	}
}

// size returns the image size, or zero without an image.
func (s *Sprite) size() (w, h float64) {
	if s.Image == nil {
		return 0, 0
	}
	b := s.Image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}
