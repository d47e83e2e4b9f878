package tenkai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsUndefinedName(t *testing.T) {
	ev := NewEvents(NewScheduler())
	_, err := ev.On("boom", func(...any) {})
	assert.ErrorIs(t, err, ErrNoSuchEvent)
	assert.ErrorIs(t, ev.Trigger("boom"), ErrNoSuchEvent)
	_, err = ev.Listeners("boom")
	assert.ErrorIs(t, err, ErrNoSuchEvent)

	var nse *NoSuchEventError
	require.ErrorAs(t, ev.Trigger("boom"), &nse)
	assert.Equal(t, "boom", nse.Name)
}

func TestEventsTriggerIsDeferred(t *testing.T) {
	s := NewScheduler()
	ev := NewEvents(s, "hit")
	var got []any
	_, err := ev.On("hit", func(args ...any) { got = args })
	require.NoError(t, err)

	require.NoError(t, ev.Trigger("hit", "sword", 3))
	assert.Nil(t, got)

	s.Update(0)
	assert.Equal(t, []any{"sword", 3}, got)
}

func TestEventsHandlersRunInRegistrationOrder(t *testing.T) {
	s := NewScheduler()
	ev := NewEvents(s, "tick")
	var order []int
	for i := range 3 {
		_, err := ev.On("tick", func(...any) { order = append(order, i) })
		require.NoError(t, err)
	}
	require.NoError(t, ev.Trigger("tick"))
	s.Update(0)
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestEventsHandleRemove(t *testing.T) {
	s := NewScheduler()
	ev := NewEvents(s, "tick")
	calls := 0
	h, err := ev.On("tick", func(...any) { calls++ })
	require.NoError(t, err)
	n, _ := ev.Listeners("tick")
	require.Equal(t, 1, n)

	h.Remove()
	h.Remove()
	n, _ = ev.Listeners("tick")
	assert.Equal(t, 0, n)

	require.NoError(t, ev.Trigger("tick"))
	s.Update(0)
	assert.Equal(t, 0, calls)
}

func TestEventsDefineUndefine(t *testing.T) {
	ev := NewEvents(NewScheduler())
	ev.Define("a", "b")
	assert.True(t, ev.Defined("a"))
	_, err := ev.On("a", func(...any) {})
	require.NoError(t, err)

	ev.Define("a")
	n, err := ev.Listeners("a")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	ev.Undefine("b")
	assert.False(t, ev.Defined("b"))
	assert.ErrorIs(t, ev.Trigger("b"), ErrNoSuchEvent)
}
