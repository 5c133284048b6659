package event

import "github.com/nmxmxh/enginecore/internal/bytecopy"

// NewKeyEvent builds a KeyDown/KeyUp Event from a KeyPayload.
func NewKeyEvent(kind Kind, p KeyPayload) Event {
	return build(kind, bytecopy.Encode(p))
}

// NewButtonEvent builds a ButtonDown/ButtonUp Event from a ButtonPayload.
func NewButtonEvent(kind Kind, p ButtonPayload) Event {
	return build(kind, bytecopy.Encode(p))
}

// NewMoveEvent builds a MouseMove Event from a MovePayload.
func NewMoveEvent(p MovePayload) Event {
	return build(MouseMove, bytecopy.Encode(p))
}

// NewCrossLayerEvent builds a cross-layer Event (component lifecycle
// notifications, and any other kind carrying a 4xuint32 tuple).
func NewCrossLayerEvent(kind Kind, p CrossLayerPayload) Event {
	return build(kind, bytecopy.Encode(p))
}

func build(kind Kind, raw []byte) Event {
	var ev Event
	ev.ID = kind
	ev.Size = uint8(len(raw))
	copy(ev.Payload[:], raw)
	return ev
}

// AsKey decodes ev's payload as a KeyPayload.
func (ev Event) AsKey() (KeyPayload, error) {
	return bytecopy.Decode[KeyPayload](ev.Payload[:ev.Size])
}

// AsButton decodes ev's payload as a ButtonPayload.
func (ev Event) AsButton() (ButtonPayload, error) {
	return bytecopy.Decode[ButtonPayload](ev.Payload[:ev.Size])
}

// AsMove decodes ev's payload as a MovePayload.
func (ev Event) AsMove() (MovePayload, error) {
	return bytecopy.Decode[MovePayload](ev.Payload[:ev.Size])
}

// AsCrossLayer decodes ev's payload as a CrossLayerPayload.
func (ev Event) AsCrossLayer() (CrossLayerPayload, error) {
	return bytecopy.Decode[CrossLayerPayload](ev.Payload[:ev.Size])
}
