package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmxmxh/enginecore/internal/event"
)

func TestTranslator_KeyDownUpTransitions(t *testing.T) {
	q := event.NewQueue(8)
	tr := NewTranslator(q)

	tr.KeyDown(KeyW, 0)
	assert.True(t, tr.IsKeyDown(KeyW))
	assert.Equal(t, 1, q.Len())

	// Repeated KeyDown while already held is coalesced: no second event.
	tr.KeyDown(KeyW, 0)
	assert.Equal(t, 1, q.Len())

	tr.KeyUp(KeyW, 0)
	assert.False(t, tr.IsKeyDown(KeyW))
	assert.Equal(t, 2, q.Len())
}

func TestTranslator_ButtonAndMouseMove(t *testing.T) {
	q := event.NewQueue(8)
	tr := NewTranslator(q)

	tr.ButtonDown(ButtonLeft, 0, 10, 20)
	assert.True(t, tr.IsButtonDown(ButtonLeft))
	x, y := tr.LastPosition()
	assert.Equal(t, int16(10), x)
	assert.Equal(t, int16(20), y)

	tr.MouseMove(30, 40)
	x, y = tr.LastPosition()
	assert.Equal(t, int16(30), x)
	assert.Equal(t, int16(40), y)

	tr.ButtonUp(ButtonLeft, 0, 30, 40)
	assert.False(t, tr.IsButtonDown(ButtonLeft))

	assert.Equal(t, 3, q.Len())
}

func TestTranslator_ScenarioG_DrainedEventsPreserveOrder(t *testing.T) {
	q := event.NewQueue(8)
	tr := NewTranslator(q)

	tr.KeyDown(KeyA, 0)
	tr.MouseMove(1, 1)
	tr.ButtonDown(ButtonRight, 0, 1, 1)
	tr.KeyUp(KeyA, 0)

	dst := make([]event.Event, 8)
	n := q.DrainTo(dst)
	require.Equal(t, 4, n)
	assert.Equal(t, event.KeyDown, dst[0].ID)
	assert.Equal(t, event.MouseMove, dst[1].ID)
	assert.Equal(t, event.ButtonDown, dst[2].ID)
	assert.Equal(t, event.KeyUp, dst[3].ID)
}

func TestTranslator_UnknownKeyIgnored(t *testing.T) {
	q := event.NewQueue(8)
	tr := NewTranslator(q)
	tr.KeyDown(KeyUnknown, 0)
	assert.Equal(t, 0, q.Len())
}
