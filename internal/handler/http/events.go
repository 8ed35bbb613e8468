package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/sse"
)

var streamTopics = []string{sse.TopicCache, sse.TopicAttendance, sse.TopicEmployees}

type EventHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	hub       *sse.Hub
	keepalive time.Duration
}

// NewEventHandler creates the SSE handler. A non-positive keepalive
// falls back to 30 seconds.
func NewEventHandler(hub *sse.Hub, keepalive time.Duration) EventHandler {
	if keepalive <= 0 {
		keepalive = 30 * time.Second
	}
	return &eventHandlerImpl{
		hub:       hub,
		keepalive: keepalive,
	}
}

type streamPayload struct {
	Topic string      `json:"topic"`
	At    time.Time   `json:"at"`
	Data  interface{} `json:"data,omitempty"`
}

// parseTopics reads ?topics=cache,attendance. Absent means every topic.
func parseTopics(r *http.Request) ([]string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("topics"))
	if raw == "" {
		return streamTopics, nil
	}

	var topics []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		known := false
		for _, s := range streamTopics {
			if s == t {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown topic %q", t)
		}
		topics = append(topics, t)
	}
	return topics, nil
}

// Stream handles SSE connection for cache and mutation events
func (h *eventHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	topics, err := parseTopics(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(topics...)
	defer cleanup()

	connected, _ := json.Marshal(map[string]interface{}{"status": "connected", "topics": topics})
	fmt.Fprintf(w, "event: connected\ndata: %s\n\n", connected)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(streamPayload{Topic: event.Topic, At: event.At, Data: event.Data})
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
