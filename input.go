package theworld

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrInputDisposed is returned when a disposed InputHandler is started.
var ErrInputDisposed = errors.New("theworld: input handler is disposed")

// KeyEvent describes a key transition fed to an InputHandler.
type KeyEvent struct {
	// Key is the host's name for the key, e.g. "A" or "ArrowUp".
	Key string
	// Down is true for a press and false for a release.
	Down bool
}

// InputHandler holds the keyboard state read by components during Update.
// A host feeds it with KeyDown and KeyUp; components either poll
// IsKeyPressed or subscribe to OnKeyDown and OnKeyUp. Transitions are
// ignored unless the handler has been started.
type InputHandler struct {
	keys      map[string]bool
	onKeyDown EventContainer[KeyEvent]
	onKeyUp   EventContainer[KeyEvent]
	handling  bool
	disposed  bool
}

// NewInputHandler creates a stopped input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{keys: make(map[string]bool)}
}

// StartHandling begins accepting key transitions.
func (h *InputHandler) StartHandling() error {
	if h.disposed {
		return fmt.Errorf("start handling: %w", ErrInputDisposed)
	}
	h.handling = true
	return nil
}

// StopHandling stops accepting key transitions and releases every held key
// without firing OnKeyUp.
func (h *InputHandler) StopHandling() {
	h.handling = false
	clear(h.keys)
}

// Handling reports whether the handler accepts key transitions.
func (h *InputHandler) Handling() bool {
	return h.handling
}

// Dispose stops the handler and drops every listener. A disposed handler
// cannot be started again.
func (h *InputHandler) Dispose() {
	if h.disposed {
		return
	}
	h.StopHandling()
	h.onKeyDown.Clear()
	h.onKeyUp.Clear()
	h.disposed = true
}

// OnKeyDown returns the event invoked when a key is pressed.
func (h *InputHandler) OnKeyDown() *EventContainer[KeyEvent] {
	return &h.onKeyDown
}

// OnKeyUp returns the event invoked when a key is released.
func (h *InputHandler) OnKeyUp() *EventContainer[KeyEvent] {
	return &h.onKeyUp
}

// IsKeyPressed reports whether key is held.
func (h *InputHandler) IsKeyPressed(key string) bool {
	return h.keys[key]
}

// PressedKeys returns the held keys in sorted order.
func (h *InputHandler) PressedKeys() []string {
	return slices.Sorted(maps.Keys(h.keys))
}

// KeyDown records a key press. Repeated presses of a held key are ignored.
func (h *InputHandler) KeyDown(key string) {
	if !h.handling || h.keys[key] {
		return
	}
	h.keys[key] = true
	h.onKeyDown.Invoke(KeyEvent{Key: key, Down: true})
}

// KeyUp records a key release. Releasing a key that is not held is ignored.
func (h *InputHandler) KeyUp(key string) {
	if !h.handling || !h.keys[key] {
		return
	}
	delete(h.keys, key)
	h.onKeyUp.Invoke(KeyEvent{Key: key})
}
