// Package event implements the bounded single-writer/multi-reader event
// pipeline that couples the platform input layer (and core ECS lifecycle
// notifications) to the script layer: a fixed-capacity overwrite-oldest
// ring buffer plus a typed listener registry.
package event

import (
	"encoding/binary"
	"fmt"
)

// Kind identifies the category of an Event's payload.
type Kind uint16

const (
	KeyDown Kind = iota
	KeyUp
	ButtonDown
	ButtonUp
	MouseMove
	ComponentAdd
	ComponentSet
	ComponentRemove
	EntityModified
	Quit
)

// UserStart is the first kind value reserved for script-defined,
// host-specific events, per spec.md §6.
const UserStart Kind = 0x100

// Event is the wire record: a 2-byte kind id, a 1-byte payload size, and a
// 24-byte inline payload, for a 27-byte total (padded where a concrete
// encoding requires alignment). The payload is a bitcopy of one of
// KeyPayload, ButtonPayload, MovePayload, or a 16-byte 4xuint32 tuple for
// cross-layer events — never heap-allocated, so pushing an Event never
// allocates.
type Event struct {
	ID      Kind
	Size    uint8
	Payload [24]byte
}

// KeyPayload is the payload shape for KeyDown/KeyUp.
type KeyPayload struct {
	Key   uint16
	Mods  uint8 // bitflags: shift=1, ctrl=2, alt=4, super=8
	State uint8 // 0=up, 1=down
}

// ButtonPayload is the payload shape for ButtonDown/ButtonUp.
type ButtonPayload struct {
	Button uint8
	Mods   uint8
	State  uint8
	X      int16
	Y      int16
}

// MovePayload is the payload shape for MouseMove.
type MovePayload struct {
	X int16
	Y int16
}

// CrossLayerPayload is the 4xuint32 little-endian packed shape used for
// ComponentAdd/Set/Remove (idx, gen, lo32(type_id), hi32(type_id)) and
// other engine-internal cross-layer events.
type CrossLayerPayload struct {
	P0, P1, P2, P3 uint32
}

// wireSize is the padded on-wire record size from spec.md §6: 2-byte id +
// 1-byte size + 24-byte inline payload = 27 bytes, with no trailing padding
// (the struct is already byte-packed at 27; "padded" in the spec's prose
// refers to the payload field itself being fixed-width regardless of the
// concrete shape copied into it, not to trailing alignment bytes).
const wireSize = 2 + 1 + 24

// MarshalBinary encodes ev into spec.md §6's literal wire shape: a 2-byte
// little-endian Kind, a 1-byte size, and the 24-byte inline payload,
// explicit-offset like the teacher's MessageQueue.writeHeader rather than
// a reflective encoder, since the layout is fixed and known at compile time.
func (ev Event) MarshalBinary() ([]byte, error) {
	buf := make([]byte, wireSize)
	binary.LittleEndian.PutUint16(buf[0:], uint16(ev.ID))
	buf[2] = ev.Size
	copy(buf[3:], ev.Payload[:])
	return buf, nil
}

// UnmarshalBinary decodes buf (as produced by MarshalBinary) into ev.
func (ev *Event) UnmarshalBinary(buf []byte) error {
	if len(buf) < wireSize {
		return fmt.Errorf("event: wire record too short: got %d bytes, want %d", len(buf), wireSize)
	}
	ev.ID = Kind(binary.LittleEndian.Uint16(buf[0:]))
	ev.Size = buf[2]
	copy(ev.Payload[:], buf[3:wireSize])
	return nil
}

// Mod bitflags for KeyPayload.Mods / ButtonPayload.Mods.
const (
	ModShift uint8 = 1 << 0
	ModCtrl  uint8 = 1 << 1
	ModAlt   uint8 = 1 << 2
	ModSuper uint8 = 1 << 3
)

// Button codes.
const (
	ButtonLeft   uint8 = 1
	ButtonRight  uint8 = 2
	ButtonMiddle uint8 = 3
)
