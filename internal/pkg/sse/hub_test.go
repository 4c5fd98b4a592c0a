package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_PublishToSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("u1")
	defer cleanup()

	hub.Publish("u1", Event{Event: "notification", Data: "hello"})
	hub.Publish("u2", Event{Event: "notification", Data: "other"})

	got := <-ch
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "notification", got.Event)
	assert.Equal(t, "hello", got.Data)
	assert.Len(t, ch, 0)
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	_, cleanupA := hub.Subscribe("u1")
	_, cleanupB := hub.Subscribe("u1")
	assert.Equal(t, 2, hub.SubscriberCount("u1"))
	assert.Equal(t, 2, hub.TotalSubscribers())

	cleanupA()
	cleanupA()
	assert.Equal(t, 1, hub.SubscriberCount("u1"))

	cleanupB()
	assert.Equal(t, 0, hub.SubscriberCount("u1"))
	assert.Equal(t, 0, hub.TotalSubscribers())
}

func TestHub_PublishDoesNotBlockOnFullBuffer(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("u1")
	defer cleanup()

	for i := 0; i < 25; i++ {
		hub.Publish("u1", Event{Event: "tick", Data: i})
	}
	assert.Len(t, ch, 10)
}
