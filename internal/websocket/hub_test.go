package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestClient(hub *Hub, buffer int) *Client {
	return &Client{hub: hub, send: make(chan []byte, buffer)}
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage("child", "updated", 3, map[string]any{"points": 40})
	if msg.Type != "child_updated" {
		t.Errorf("type = %q, want child_updated", msg.Type)
	}
	if msg.Entity != "child" || msg.Action != "updated" || msg.ID != 3 {
		t.Errorf("msg = %+v", msg)
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := newTestHub()
	c := newTestClient(hub, 1)

	hub.Register(c)
	if got := hub.ClientCount(); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}

	hub.Unregister(c)
	if got := hub.ClientCount(); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}

	// Unregistering twice must not panic on the closed channel
	hub.Unregister(c)
}

func TestBroadcastDeliversToAllClients(t *testing.T) {
	hub := newTestHub()
	a := newTestClient(hub, 4)
	b := newTestClient(hub, 4)
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast(NewMessage("scheduled_task", "status_changed", 7, map[string]any{"status": "completed"}))

	for name, c := range map[string]*Client{"a": a, "b": b} {
		select {
		case data := <-c.send:
			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				t.Fatalf("client %s: unmarshal: %v", name, err)
			}
			if msg.Type != "scheduled_task_status_changed" {
				t.Errorf("client %s: type = %q", name, msg.Type)
			}
			if msg.Extra["status"] != "completed" {
				t.Errorf("client %s: extra = %v", name, msg.Extra)
			}
		default:
			t.Errorf("client %s received nothing", name)
		}
	}
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := newTestHub()
	slow := newTestClient(hub, 1)
	hub.Register(slow)

	hub.Broadcast(NewMessage("child", "created", 1, nil))
	// Buffer is full now; this one must be dropped without blocking
	hub.Broadcast(NewMessage("child", "created", 2, nil))

	if got := len(slow.send); got != 1 {
		t.Errorf("buffered messages = %d, want 1", got)
	}

	var msg Message
	json.Unmarshal(<-slow.send, &msg)
	if msg.ID != 1 {
		t.Errorf("delivered id = %d, want the first message", msg.ID)
	}
}
