package theworld

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black, the default camera background.
var ColorBlack = Color{0, 0, 0, 1}

// ToRGBA converts c to a premultiplied color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec3 is the vector type used for positions, scales and directions.
type Vec3 = mgl64.Vec3

// Quat is the rotation type used by Transform.
type Quat = mgl64.Quat

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// EventType identifies a kind of engine event forwarded to an EventSink.
type EventType uint8

const (
	EventCollisionEnter2D EventType = iota // two colliders started touching
	EventCollisionStay2D                   // two colliders are still touching
	EventCollisionExit2D                   // two colliders stopped touching
	EventTriggerEnter2D                    // a collider entered a trigger
	EventTriggerStay2D                     // a collider is inside a trigger
	EventTriggerExit2D                     // a collider left a trigger
	EventDestroy                           // a GameObject was detached after Destroy
)

// String returns the event name used in log fields.
func (t EventType) String() string {
	switch t {
	case EventCollisionEnter2D:
		return "collision_enter_2d"
	case EventCollisionStay2D:
		return "collision_stay_2d"
	case EventCollisionExit2D:
		return "collision_exit_2d"
	case EventTriggerEnter2D:
		return "trigger_enter_2d"
	case EventTriggerStay2D:
		return "trigger_stay_2d"
	case EventTriggerExit2D:
		return "trigger_exit_2d"
	case EventDestroy:
		return "destroy"
	default:
		return "unknown"
	}
}

// Event carries engine event data for the ECS bridge.
type Event struct {
	Type     EventType
	ObjectID uint32
	Name     string
	// OtherID is the counterpart object for collision and trigger events.
	OtherID uint32
	// Contact point for collision events (zero for triggers and destroy).
	ContactX float64
	ContactY float64
}

// EventSink is the interface for optional ECS integration.
// When set on a Game, collision, trigger and destroy events are forwarded.
type EventSink interface {
	EmitEvent(event Event)
}
