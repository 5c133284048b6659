// Package input translates platform-specific raw event codes (Win32
// virtual-key codes, X11 keysyms, Linux evdev codes, X11 button/modifier
// masks) into the canonical Key/Button/Mods vocabulary the rest of the
// engine uses, and turns platform events into canonical Events pushed onto
// an event.Queue.
package input

// Key is the canonical, platform-independent key enumeration.
type Key int

const (
	KeyUnknown Key = iota
	KeySpace
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyLShift
	KeyRShift
	KeyLCtrl
	KeyRCtrl
	KeyLAlt
	KeyRAlt
	KeyLSuper
	KeyRSuper
	KeyCount
)

// Button is the canonical mouse button enumeration.
type Button int

const (
	ButtonUnknown Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
	ButtonCount
)

var letterKeys = [26]Key{
	KeyA, KeyB, KeyC, KeyD, KeyE, KeyF, KeyG, KeyH, KeyI, KeyJ, KeyK, KeyL, KeyM,
	KeyN, KeyO, KeyP, KeyQ, KeyR, KeyS, KeyT, KeyU, KeyV, KeyW, KeyX, KeyY, KeyZ,
}

var digitKeys = [10]Key{Key0, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9}

// VKToKey maps a Win32 virtual-key code to a canonical Key.
func VKToKey(vk uint32) Key {
	switch {
	case vk >= 'A' && vk <= 'Z':
		return letterKeys[vk-'A']
	case vk >= '0' && vk <= '9':
		return digitKeys[vk-'0']
	}
	switch vk {
	case 0x25:
		return KeyArrowLeft
	case 0x26:
		return KeyArrowUp
	case 0x27:
		return KeyArrowRight
	case 0x28:
		return KeyArrowDown
	case 0x1B:
		return KeyEscape
	case 0x0D:
		return KeyEnter
	case 0x20:
		return KeySpace
	case 0x09:
		return KeyTab
	case 0x08:
		return KeyBackspace
	default:
		return KeyUnknown
	}
}

// KeysymToKey maps an X11 keysym to a canonical Key.
func KeysymToKey(sym uint32) Key {
	switch {
	case sym >= 'a' && sym <= 'z':
		return letterKeys[sym-'a']
	case sym >= 'A' && sym <= 'Z':
		return letterKeys[sym-'A']
	case sym >= '0' && sym <= '9':
		return digitKeys[sym-'0']
	}
	switch sym {
	case 0xFF1B:
		return KeyEscape
	case 0xFF0D:
		return KeyEnter
	case 0xFF51:
		return KeyArrowLeft
	case 0xFF52:
		return KeyArrowUp
	case 0xFF53:
		return KeyArrowRight
	case 0xFF54:
		return KeyArrowDown
	case 0x0020:
		return KeySpace
	case 0xFF09:
		return KeyTab
	case 0xFF08:
		return KeyBackspace
	default:
		return KeyUnknown
	}
}

// evdevToKey is an explicit table covering the same alphabet as
// VKToKey/KeysymToKey, keyed by Linux input-event-codes.h KEY_* values.
var evdevToKey = map[uint32]Key{
	30: KeyA, 48: KeyB, 46: KeyC, 32: KeyD, 18: KeyE, 33: KeyF, 34: KeyG,
	35: KeyH, 23: KeyI, 36: KeyJ, 37: KeyK, 38: KeyL, 50: KeyM, 49: KeyN,
	24: KeyO, 25: KeyP, 16: KeyQ, 19: KeyR, 31: KeyS, 20: KeyT, 22: KeyU,
	47: KeyV, 17: KeyW, 45: KeyX, 21: KeyY, 44: KeyZ,
	11: Key0, 2: Key1, 3: Key2, 4: Key3, 5: Key4, 6: Key5, 7: Key6, 8: Key7, 9: Key8, 10: Key9,
	1: KeyEscape, 28: KeyEnter, 57: KeySpace, 15: KeyTab, 14: KeyBackspace,
	103: KeyArrowUp, 108: KeyArrowDown, 105: KeyArrowLeft, 106: KeyArrowRight,
}

// EvdevToKey maps a Linux evdev key code to a canonical Key.
func EvdevToKey(code uint32) Key {
	if k, ok := evdevToKey[code]; ok {
		return k
	}
	return KeyUnknown
}

// ModsFromMask decodes an X11 modifier mask into the canonical Mods
// bitflags (shift=bit0, ctrl=bit2, alt=bit3, super=bit6).
func ModsFromMask(mask uint32) uint8 {
	var m uint8
	if mask&(1<<0) != 0 {
		m |= modShift
	}
	if mask&(1<<2) != 0 {
		m |= modCtrl
	}
	if mask&(1<<3) != 0 {
		m |= modAlt
	}
	if mask&(1<<6) != 0 {
		m |= modSuper
	}
	return m
}

const (
	modShift uint8 = 1 << 0
	modCtrl  uint8 = 1 << 1
	modAlt   uint8 = 1 << 2
	modSuper uint8 = 1 << 3
)

// ButtonCodeToButton maps an X11 button code to a canonical Button.
func ButtonCodeToButton(code uint32) Button {
	switch code {
	case 1:
		return ButtonLeft
	case 3:
		return ButtonRight
	default:
		return ButtonMiddle
	}
}
