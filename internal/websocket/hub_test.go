package websocket

import (
	"context"
	"testing"
	"time"
)

func newHubTestClient(hub *Hub, userID string, buffer int) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		Hub:    hub,
		UserID: userID,
		Send:   make(chan []byte, buffer),
		ctx:    ctx,
		cancel: cancel,
	}
}

func TestEmitAfterDisconnectDoesNotPanicOrBlock(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	client := newHubTestClient(hub, "user-1", 1)
	hub.register <- client

	// Mid-stream disconnect: the pumps tear the connection down while a
	// dispatcher goroutine is still emitting fragments for an in-flight turn.
	client.shutdown()
	hub.unregister <- client

	done := make(chan struct{})
	go func() {
		defer close(done)
		client.emit("generate-response-chunk", map[string]string{"chunk": "late"})
		client.emit("generate-response-chunk", map[string]string{"chunk": "later"})
		client.emit("generate-response-result", map[string]string{"sessionId": "s1"})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("emit blocked after disconnect")
	}
}

func TestDuplicateUnregisterIsTolerated(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	client := newHubTestClient(hub, "user-1", 1)
	hub.register <- client

	// Both the shedding path and readPump's deferred cleanup can enqueue the
	// same client; the second removal must be a no-op.
	hub.unregister <- client
	hub.unregister <- client

	// The registry still works afterwards. The extra register acts as a
	// barrier: once Run receives it, the replacement insert has completed.
	replacement := newHubTestClient(hub, "user-1", 1)
	hub.register <- replacement
	hub.register <- newHubTestClient(hub, "barrier", 1)
	hub.NotifySessionUpdated("user-1", "s1")

	select {
	case <-replacement.Send:
	case <-time.After(2 * time.Second):
		t.Fatal("replacement client never received the notification")
	}
}

func TestNotifyFullBufferShedsClientWithoutPanic(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	slow := newHubTestClient(hub, "user-1", 1)
	hub.register <- slow
	hub.register <- newHubTestClient(hub, "barrier", 1) // insert barrier
	slow.Send <- []byte("backlog")                      // writer never drains

	hub.NotifySessionUpdated("user-1", "s1")
	hub.NotifySessionUpdated("user-1", "s2") // repeated notify on a shed client

	select {
	case <-slow.ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("slow client was not shut down")
	}

	// A late unregister from readPump's deferred cleanup is harmless.
	hub.unregister <- slow

	// The shed client's turns observe the cancellation, so its emits return
	// instead of blocking on the full buffer.
	done := make(chan struct{})
	go func() {
		defer close(done)
		slow.emit("generate-response-chunk", map[string]string{"chunk": "x"})
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("emit on shed client blocked")
	}
}

func TestNotifyReachesAllOfUsersClients(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	first := newHubTestClient(hub, "user-1", 4)
	second := newHubTestClient(hub, "user-1", 4)
	other := newHubTestClient(hub, "user-2", 4)
	hub.register <- first
	hub.register <- second
	hub.register <- other

	hub.NotifySessionUpdated("user-1", "s1")

	for _, c := range []*Client{first, second} {
		select {
		case frame := <-c.Send:
			if len(frame) == 0 {
				t.Error("empty notification frame")
			}
		case <-time.After(2 * time.Second):
			t.Fatal("a device of user-1 missed the notification")
		}
	}

	select {
	case <-other.Send:
		t.Error("user-2 received another user's notification")
	default:
	}
}
