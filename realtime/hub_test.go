package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	first := hub.Subscribe()
	second := hub.Subscribe()
	defer hub.Unsubscribe(first)
	defer hub.Unsubscribe(second)

	event := Event{Table: "vehicles", Action: ActionUpdate, ID: "v-1"}
	hub.Publish(event)

	for _, ch := range []chan Event{first, second} {
		select {
		case got := <-ch:
			assert.Equal(t, event, got)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()

	ch := hub.Subscribe()
	require.Equal(t, 1, hub.SubscriberCount())

	hub.Unsubscribe(ch)
	assert.Equal(t, 0, hub.SubscriberCount())

	_, open := <-ch
	assert.False(t, open)
}

func TestHub_UnsubscribeTwiceIsSafe(t *testing.T) {
	hub := NewHub()

	ch := hub.Subscribe()
	hub.Unsubscribe(ch)

	assert.NotPanics(t, func() {
		hub.Unsubscribe(ch)
	})
}

func TestHub_SlowSubscriberMissesEventsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()

	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Overflow the subscriber buffer without draining it.
		for i := 0; i < 100; i++ {
			hub.Publish(Event{Table: "maintenances", Action: ActionInsert})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestHub_PublishWithNoSubscribers(t *testing.T) {
	hub := NewHub()

	assert.NotPanics(t, func() {
		hub.Publish(Event{Table: "vehicles", Action: ActionInsert, ID: "v-1"})
	})
}
