package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVKToKey(t *testing.T) {
	assert.Equal(t, KeyA, VKToKey('A'))
	assert.Equal(t, Key5, VKToKey('5'))
	assert.Equal(t, KeyEscape, VKToKey(0x1B))
	assert.Equal(t, KeyUnknown, VKToKey(0xF0))
}

func TestKeysymToKey(t *testing.T) {
	assert.Equal(t, KeyA, KeysymToKey('a'))
	assert.Equal(t, KeyA, KeysymToKey('A'))
	assert.Equal(t, KeyEnter, KeysymToKey(0xFF0D))
	assert.Equal(t, KeyArrowUp, KeysymToKey(0xFF52))
}

func TestEvdevToKey(t *testing.T) {
	assert.Equal(t, KeyA, EvdevToKey(30))
	assert.Equal(t, KeyEnter, EvdevToKey(28))
	assert.Equal(t, KeyUnknown, EvdevToKey(9999))
}

func TestModsFromMask(t *testing.T) {
	m := ModsFromMask((1 << 0) | (1 << 2))
	assert.Equal(t, modShift|modCtrl, m)
}

func TestButtonCodeToButton(t *testing.T) {
	assert.Equal(t, ButtonLeft, ButtonCodeToButton(1))
	assert.Equal(t, ButtonRight, ButtonCodeToButton(3))
	assert.Equal(t, ButtonMiddle, ButtonCodeToButton(2))
}
