package ebitenhost

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/the-world-space/theworld"
)

// Renderer is a retained-mode renderer for Sprite components. Render
// receives the sprites whose transform or visibility changed and updates the
// draw list; Draw paints the draw list every frame.
type Renderer struct {
	sprites   []*Sprite // sorted by world z, stable
	index     map[*Sprite]struct{}
	sortDirty bool
	camera    *theworld.Camera

	// CullEnabled skips sprites whose world AABB is outside the camera's
	// visible bounds.
	CullEnabled bool
}

// NewRenderer creates an empty renderer with culling enabled.
func NewRenderer() *Renderer {
	return &Renderer{index: make(map[*Sprite]struct{}), CullEnabled: true}
}

// Render implements theworld.Renderer.
func (r *Renderer) Render(objects []theworld.RenderObject, _ *theworld.Scene, camera *theworld.Camera) {
	r.camera = camera
	for _, o := range objects {
		s, ok := o.(*Sprite)
		if !ok {
			continue
		}
		if s.Destroyed() || s.GameObject() == nil || s.GameObject().Destroyed() {
			r.remove(s)
			continue
		}
		if _, ok := r.index[s]; !ok {
			r.index[s] = struct{}{}
			r.sprites = append(r.sprites, s)
		}
		r.sortDirty = true
	}
	if r.sortDirty {
		r.sortByZ()
	}
}

// Len returns the number of sprites in the draw list.
func (r *Renderer) Len() int {
	return len(r.sprites)
}

func (r *Renderer) remove(s *Sprite) {
	if _, ok := r.index[s]; !ok {
		return
	}
	delete(r.index, s)
	for i, existing := range r.sprites {
		if existing == s {
			copy(r.sprites[i:], r.sprites[i+1:])
			r.sprites[len(r.sprites)-1] = nil
			r.sprites = r.sprites[:len(r.sprites)-1]
			return
		}
	}
}

// sortByZ orders the draw list by world z. Insertion sort: stable, and O(n)
// when the list is already nearly sorted, which is the common case between
// frames.
func (r *Renderer) sortByZ() {
	for i := 1; i < len(r.sprites); i++ {
		key := r.sprites[i]
		j := i - 1
		for j >= 0 && r.sprites[j].z > key.z {
			r.sprites[j+1] = r.sprites[j]
			j--
		}
		r.sprites[j+1] = key
	}
	r.sortDirty = false
}

// Draw paints the draw list through the camera handed to the last Render.
func (r *Renderer) Draw(screen *ebiten.Image) {
	cam := r.camera
	if cam == nil {
		return
	}
	target := screen
	vp := cam.Viewport
	if vp.Width > 0 && vp.Height > 0 {
		target = screen.SubImage(image.Rect(
			int(vp.X), int(vp.Y),
			int(vp.X+vp.Width), int(vp.Y+vp.Height),
		)).(*ebiten.Image)
	}
	target.Fill(cam.BackgroundColor.ToRGBA())

	view := geoM(cam.ViewMatrix())
	var bounds theworld.Rect
	if r.CullEnabled {
		bounds = cam.VisibleBounds()
	}

	var op ebiten.DrawImageOptions
	for _, s := range r.sprites {
		if s.Image == nil || !s.Visible() {
			continue
		}
		world := s.Transform().WorldMatrix()
		w, h := s.size()
		if r.CullEnabled && !worldAABB(world, w, h, s.AnchorX, s.AnchorY).Intersects(bounds) {
			continue
		}
		op.GeoM.Reset()
		op.GeoM.Translate(-s.AnchorX*w, -s.AnchorY*h)
		op.GeoM.Concat(geoM(world))
		op.GeoM.Concat(view)
		op.ColorScale.Reset()
		c := s.Color
		if c == (theworld.Color{}) {
			c = theworld.ColorWhite
		}
		op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
		target.DrawImage(s.Image, &op)
	}
}

// geoM extracts the 2D affine part of a column-major 4x4 matrix.
func geoM(m mgl64.Mat4) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[4])
	g.SetElement(0, 2, m[12])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[5])
	g.SetElement(1, 2, m[13])
	return g
}

// worldAABB computes the axis-aligned bounds of a w*h rectangle anchored at
// (ax, ay) and transformed by m.
func worldAABB(m mgl64.Mat4, w, h, ax, ay float64) theworld.Rect {
	x0, y0 := -ax*w, -ay*h
	x1, y1 := x0+w, y0+h
	corners := [4]mgl64.Vec3{{x0, y0, 0}, {x1, y0, 0}, {x1, y1, 0}, {x0, y1, 0}}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		p := mgl64.TransformCoordinate(c, m)
		minX = math.Min(minX, p[0])
		minY = math.Min(minY, p[1])
		maxX = math.Max(maxX, p[0])
		maxY = math.Max(maxY, p[1])
	}
	return theworld.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
