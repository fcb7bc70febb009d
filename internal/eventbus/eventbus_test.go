package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New(nil)
	defer b.Close()

	got := make(chan DomainEvent, 1)
	b.Subscribe(EventLocationChanged, func(e DomainEvent) { got <- e })

	b.Publish(LocationChangedEvent{Location: "/farms?q=apples"})

	select {
	case e := <-got:
		ev, ok := e.(LocationChangedEvent)
		require.True(t, ok)
		assert.Equal(t, "/farms?q=apples", ev.Location)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New(nil)
	defer b.Close()

	var calls atomic.Int32
	unsubscribe := b.Subscribe(EventSearchFailed, func(DomainEvent) { calls.Add(1) })
	kept := make(chan struct{}, 1)
	b.Subscribe(EventSearchFailed, func(DomainEvent) { kept <- struct{}{} })

	unsubscribe()
	b.Publish(SearchFailedEvent{Page: 1})

	select {
	case <-kept:
	case <-time.After(2 * time.Second):
		t.Fatal("remaining subscriber was not called")
	}
	// Give a stray handler goroutine time to run before checking
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestPanickingHandlerDoesNotStopBus(t *testing.T) {
	b := New(nil)
	defer b.Close()

	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	got := make(chan struct{}, 1)
	b.Subscribe(EventLocationChanged, func(DomainEvent) { got <- struct{}{} })

	b.Publish(ErrorEvent{Message: "x"})
	b.Publish(LocationChangedEvent{Location: "/farms"})

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("bus stopped after handler panic")
	}
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New(nil)
	b.Close()
	assert.NotPanics(t, func() {
		b.Publish(LocationChangedEvent{Location: "/farms"})
	})
}
