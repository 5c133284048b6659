package input

import "github.com/nmxmxh/enginecore/internal/event"

// Translator holds per-device state (which keys/buttons are currently down,
// last known pointer position) and turns platform-raw calls into canonical
// Events pushed onto a queue. One Translator per input source; the engine
// typically owns exactly one for the primary keyboard/mouse pair.
type Translator struct {
	keys       [KeyCount]bool
	buttons    [ButtonCount]bool
	lastX      int16
	lastY      int16
	queue      *event.Queue
}

// NewTranslator builds a Translator that pushes canonical events onto q.
func NewTranslator(q *event.Queue) *Translator {
	return &Translator{queue: q}
}

// KeyDown records k as pressed (idempotent if already down — repeat events
// from OS key-repeat are coalesced at this layer, per spec.md §4.9) and
// pushes a KeyDown event if this is a fresh transition.
func (t *Translator) KeyDown(k Key, mods uint8) {
	if k == KeyUnknown || k >= KeyCount {
		return
	}
	if t.keys[k] {
		return
	}
	t.keys[k] = true
	t.queue.Push(event.NewKeyEvent(event.KeyDown, event.KeyPayload{
		Key: uint16(k), Mods: mods, State: 1,
	}))
}

// KeyUp records k as released and pushes a KeyUp event. A KeyUp for a key
// that was never seen down is still forwarded — the queue is the source of
// truth, not this layer's idea of prior state.
func (t *Translator) KeyUp(k Key, mods uint8) {
	if k == KeyUnknown || k >= KeyCount {
		return
	}
	t.keys[k] = false
	t.queue.Push(event.NewKeyEvent(event.KeyUp, event.KeyPayload{
		Key: uint16(k), Mods: mods, State: 0,
	}))
}

// ButtonDown records b as pressed at (x, y) and pushes a ButtonDown event.
func (t *Translator) ButtonDown(b Button, mods uint8, x, y int16) {
	if b == ButtonUnknown || b >= ButtonCount {
		return
	}
	t.buttons[b] = true
	t.lastX, t.lastY = x, y
	t.queue.Push(event.NewButtonEvent(event.ButtonDown, event.ButtonPayload{
		Button: uint8(b), Mods: mods, State: 1, X: x, Y: y,
	}))
}

// ButtonUp records b as released at (x, y) and pushes a ButtonUp event.
func (t *Translator) ButtonUp(b Button, mods uint8, x, y int16) {
	if b == ButtonUnknown || b >= ButtonCount {
		return
	}
	t.buttons[b] = false
	t.lastX, t.lastY = x, y
	t.queue.Push(event.NewButtonEvent(event.ButtonUp, event.ButtonPayload{
		Button: uint8(b), Mods: mods, State: 0, X: x, Y: y,
	}))
}

// MouseMove records the new pointer position and pushes a MouseMove event.
// Consecutive moves to the same coordinate are still forwarded; coalescing
// is a script-layer concern if one is wanted.
func (t *Translator) MouseMove(x, y int16) {
	t.lastX, t.lastY = x, y
	t.queue.Push(event.NewMoveEvent(event.MovePayload{X: x, Y: y}))
}

// IsKeyDown reports whether k is currently tracked as pressed.
func (t *Translator) IsKeyDown(k Key) bool {
	if k == KeyUnknown || k >= KeyCount {
		return false
	}
	return t.keys[k]
}

// IsButtonDown reports whether b is currently tracked as pressed.
func (t *Translator) IsButtonDown(b Button) bool {
	if b == ButtonUnknown || b >= ButtonCount {
		return false
	}
	return t.buttons[b]
}

// LastPosition returns the most recently reported pointer coordinates.
func (t *Translator) LastPosition() (int16, int16) { return t.lastX, t.lastY }
