package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/event"
	"github.com/osse101/GibLife_Go/internal/session"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case e := <-c.EventChannel:
		return e
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case e := <-c.EventChannel:
		t.Fatalf("unexpected event %q", e.Type)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestHub_SessionFilter(t *testing.T) {
	hub := startHub(t)
	mine := hub.Register("s1", nil)
	all := hub.Register("", nil)
	waitForClients(t, hub, 2)

	hub.Broadcast(Event{Type: domain.EventTypeStatsUpdated, SessionID: "s2"})
	hub.Broadcast(Event{Type: domain.EventTypeStatsUpdated, SessionID: "s1"})

	got := receive(t, mine)
	assert.Equal(t, "s1", got.SessionID)
	assert.NotEmpty(t, got.ID)
	assert.NotZero(t, got.Timestamp)
	assertNoEvent(t, mine)

	assert.Equal(t, "s2", receive(t, all).SessionID)
	assert.Equal(t, "s1", receive(t, all).SessionID)
}

func TestHub_TypeFilter(t *testing.T) {
	hub := startHub(t)
	c := hub.Register("", []string{domain.EventTypeTaskCompleted})
	waitForClients(t, hub, 1)

	hub.Broadcast(Event{Type: domain.EventTypeTaskProgress})
	hub.Broadcast(Event{Type: domain.EventTypeTaskCompleted})

	assert.Equal(t, domain.EventTypeTaskCompleted, receive(t, c).Type)
	assertNoEvent(t, c)
}

func TestHub_SlowClientDropsEvents(t *testing.T) {
	hub := startHub(t)
	hub.Register("", nil)
	waitForClients(t, hub, 1)

	for i := 0; i < ClientEventBuffer+5; i++ {
		hub.Broadcast(Event{Type: domain.EventTypeCountdown})
	}

	assert.Eventually(t, func() bool { return hub.Dropped() == 5 }, time.Second, 5*time.Millisecond)
}

func TestHub_Unregister(t *testing.T) {
	hub := startHub(t)
	c := hub.Register("", nil)
	waitForClients(t, hub, 1)

	hub.Unregister(c.ID)
	waitForClients(t, hub, 0)

	_, ok := <-c.EventChannel
	assert.False(t, ok, "channel closed on unregister")
}

func TestHub_UnregisterDropsSessionIndex(t *testing.T) {
	hub := startHub(t)
	a := hub.Register("s1", nil)
	b := hub.Register("s1", nil)
	waitForClients(t, hub, 2)

	hub.Unregister(a.ID)
	waitForClients(t, hub, 1)
	hub.Broadcast(Event{Type: domain.EventTypeQueueFull, SessionID: "s1"})
	assert.Equal(t, domain.EventTypeQueueFull, receive(t, b).Type)

	hub.Unregister(b.ID)
	waitForClients(t, hub, 0)
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	assert.Empty(t, hub.bySession)
}

func TestHub_RegisterThenBroadcastDelivers(t *testing.T) {
	hub := startHub(t)

	for i := 0; i < 500; i++ {
		c := hub.Register("s1", nil)
		assert.Equal(t, 1, hub.ClientCount())

		hub.Broadcast(Event{Type: domain.EventTypeWalletOpenRequested, SessionID: "s1"})
		assert.Equal(t, domain.EventTypeWalletOpenRequested, receive(t, c).Type, "iteration %d", i)

		hub.Unregister(c.ID)
		waitForClients(t, hub, 0)
	}
}

func TestHub_StopClosesRegisteredClients(t *testing.T) {
	hub := NewHub()
	hub.Start()
	c := hub.Register("s1", nil)
	hub.Stop()

	_, ok := <-c.EventChannel
	assert.False(t, ok)
	assert.Zero(t, hub.ClientCount())
}

func TestHub_RegisterAfterStop(t *testing.T) {
	hub := NewHub()
	hub.Start()
	hub.Stop()

	c := hub.Register("s1", nil)
	_, ok := <-c.EventChannel
	assert.False(t, ok)
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "abc", Type: "queue.full", Timestamp: 1, Payload: map[string]int{"capacity": 4}})
	require.NoError(t, err)

	assert.Equal(t,
		"id: abc\nevent: queue.full\ndata: {\"id\":\"abc\",\"type\":\"queue.full\",\"timestamp\":1,\"payload\":{\"capacity\":4}}\n\n",
		string(msg))
}

func TestSubscriber_BridgesBusEvents(t *testing.T) {
	hub := startHub(t)
	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()

	c := hub.Register("s1", nil)
	waitForClients(t, hub, 1)

	require.NoError(t, bus.Publish(context.Background(), event.NewStatsUpdatedEvent("s1", domain.NewPlayerState(0, 100, 100))))

	got := receive(t, c)
	assert.Equal(t, domain.EventTypeStatsUpdated, got.Type)
	assert.Equal(t, "s1", got.SessionID)
	payload, ok := got.Payload.(event.StatsPayloadV1)
	require.True(t, ok)
	assert.Equal(t, 100, payload.Player.Energy)
}

type fakeSessions struct {
	known map[string]bool
}

func (f fakeSessions) Get(id string) (*session.Session, error) {
	if !f.known[id] {
		return nil, domain.ErrSessionNotFound
	}
	return nil, nil
}

func TestHandler_UnknownSession(t *testing.T) {
	hub := startHub(t)
	req := httptest.NewRequest(http.MethodGet, "/events?session_id=nope", nil)
	rec := httptest.NewRecorder()

	Handler(hub, fakeSessions{})(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHandler_StreamEndsWithSession(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(Handler(hub, fakeSessions{known: map[string]bool{"s1": true}}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?session_id=s1&types=task.generated,session.closed", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	waitForClients(t, hub, 1)
	hub.Broadcast(Event{Type: domain.EventTypeStatsUpdated, SessionID: "s1"})
	hub.Broadcast(Event{Type: domain.EventTypeTaskGenerated, SessionID: "s1"})
	hub.Broadcast(Event{Type: domain.EventTypeSessionClosed, SessionID: "s1"})

	var types []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		if line, ok := strings.CutPrefix(scanner.Text(), "event: "); ok {
			types = append(types, line)
		}
	}

	assert.Equal(t, []string{EventTypeConnected, domain.EventTypeTaskGenerated, domain.EventTypeSessionClosed}, types)
	waitForClients(t, hub, 0)
}
