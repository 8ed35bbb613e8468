package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_Publish_ReachesTopicSubscribers(t *testing.T) {
	// Setup
	hub := NewHub()
	cacheCh, cleanupCache := hub.Subscribe(TopicCache)
	defer cleanupCache()
	otherCh, cleanupOther := hub.Subscribe(TopicEmployees)
	defer cleanupOther()

	// Act
	hub.Publish(Event{Topic: TopicCache, Event: "employees"})

	// Assert
	require.Len(t, cacheCh, 1)
	ev := <-cacheCh
	assert.Equal(t, "employees", ev.Event)
	assert.False(t, ev.At.IsZero())
	assert.Len(t, otherCh, 0)
}

func subscriberCount(h *Hub, topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[topic])
}

func TestHub_Subscribe_ManyTopicsOneChannel(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe(TopicCache, TopicAttendance)

	for _, topic := range []string{TopicCache, TopicAttendance, TopicEmployees} {
		hub.Publish(Event{Topic: topic, Event: "x"})
	}

	assert.Len(t, ch, 2)
	assert.Equal(t, 1, subscriberCount(hub, TopicAttendance))
	assert.Equal(t, 0, subscriberCount(hub, TopicEmployees))

	cleanup()
	cleanup()
	assert.Equal(t, 0, subscriberCount(hub, TopicCache))
	assert.Equal(t, 0, subscriberCount(hub, TopicAttendance))
}

func TestHub_Publish_DropsWhenFull(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe(TopicCache)
	defer cleanup()

	for i := 0; i < 50; i++ {
		hub.Publish(Event{Topic: TopicCache})
	}

	assert.Len(t, ch, 10)
}
