package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	bus := NewBus[string]()
	var got []string
	unsubscribe := bus.Subscribe(func(e string) bool {
		got = append(got, e)
		return false
	})
	assert.Equal(t, 1, bus.Len())

	bus.Dispatch("esc")
	unsubscribe()
	unsubscribe()
	bus.Dispatch("esc")

	assert.Equal(t, []string{"esc"}, got)
	assert.Equal(t, 0, bus.Len())
}

func TestDispatchNewestFirstAndStopsWhenConsumed(t *testing.T) {
	bus := NewBus[int]()
	var order []string
	bus.Subscribe(func(int) bool {
		order = append(order, "first")
		return false
	})
	bus.Subscribe(func(int) bool {
		order = append(order, "second")
		return true
	})

	assert.True(t, bus.Dispatch(1))
	assert.Equal(t, []string{"second"}, order)
}

func TestHandlerMayUnsubscribeItself(t *testing.T) {
	bus := NewBus[int]()
	calls := 0
	var unsubscribe func()
	unsubscribe = bus.Subscribe(func(int) bool {
		calls++
		unsubscribe()
		return true
	})

	bus.Dispatch(1)
	bus.Dispatch(1)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.Len())
}

func TestRepeatedCyclesDoNotLeak(t *testing.T) {
	bus := NewBus[int]()
	keep := bus.Subscribe(func(int) bool { return false })
	for i := 0; i < 100; i++ {
		unsubscribe := bus.Subscribe(func(int) bool { return true })
		unsubscribe()
	}
	assert.Equal(t, 1, bus.Len())
	keep()
	assert.Equal(t, 0, bus.Len())
}
