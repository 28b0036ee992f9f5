package sse

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Client represents a connected SSE client
type Client struct {
	ID           string
	SessionID    string // empty means every session
	EventChannel chan Event
	EventFilter  map[string]bool // nil means all events, otherwise only specified types
}

func (c *Client) wants(e Event) bool {
	if c.SessionID != "" && e.SessionID != c.SessionID {
		return false
	}
	return c.EventFilter == nil || c.EventFilter[e.Type]
}

// Hub fans events out to SSE and WebSocket clients. Clients are indexed by
// session so an event only visits the clients of its own session plus the
// clients watching every session.
type Hub struct {
	clients    map[string]*Client
	bySession  map[string]map[string]*Client
	broadcast  chan Event
	unregister chan string
	mu         sync.RWMutex
	stopped    bool
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	dropped    atomic.Uint64
}

// NewHub creates a new SSE Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		bySession:  make(map[string]map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
	})
	h.wg.Wait()

	// Close all client channels
	h.mu.Lock()
	h.stopped = true
	for _, client := range h.clients {
		close(client.EventChannel)
	}
	h.clients = make(map[string]*Client)
	h.bySession = make(map[string]map[string]*Client)
	h.mu.Unlock()
}

// run is the main broadcast loop
func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case clientID := <-h.unregister:
			h.remove(clientID)

		case event := <-h.broadcast:
			h.mu.RLock()
			h.deliver(h.bySession[event.SessionID], event)
			if event.SessionID != "" {
				h.deliver(h.bySession[""], event)
			}
			h.mu.RUnlock()

		case <-h.shutdown:
			return
		}
	}
}

// add reports false once the hub has stopped
func (h *Hub) add(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return false
	}
	h.clients[c.ID] = c
	group, ok := h.bySession[c.SessionID]
	if !ok {
		group = make(map[string]*Client)
		h.bySession[c.SessionID] = group
	}
	group[c.ID] = c
	return true
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[id]
	if !ok {
		return
	}
	close(c.EventChannel)
	delete(h.clients, id)
	if group := h.bySession[c.SessionID]; group != nil {
		delete(group, id)
		if len(group) == 0 {
			delete(h.bySession, c.SessionID)
		}
	}
}

// deliver sends without blocking; a slow client loses events. Caller holds
// the read lock.
func (h *Hub) deliver(group map[string]*Client, event Event) {
	for _, client := range group {
		if !client.wants(event) {
			continue
		}
		select {
		case client.EventChannel <- event:
		default:
			h.dropped.Add(1)
		}
	}
}

// Register adds a new client to the hub. The client is indexed before
// Register returns, so it sees every event broadcast afterwards. An empty
// sessionID receives events from every session. After Stop the returned
// client's channel is already closed.
func (h *Hub) Register(sessionID string, eventTypes []string) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		SessionID:    sessionID,
		EventChannel: make(chan Event, ClientEventBuffer),
	}

	// Set up event filter if specific types requested
	if len(eventTypes) > 0 {
		client.EventFilter = make(map[string]bool)
		for _, t := range eventTypes {
			client.EventFilter[t] = true
		}
	}

	if !h.add(client) {
		close(client.EventChannel)
	}
	return client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for every interested client. It reports false
// when the broadcast buffer is full and the event was dropped.
func (h *Hub) Broadcast(event Event) bool {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	select {
	case h.broadcast <- event:
		return true
	default:
		h.dropped.Add(1)
		return false
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped returns how many events were not delivered because a buffer was full
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// FormatSSEMessage formats an SSE event for transmission
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	// SSE format: "id: <id>\nevent: <type>\ndata: <json>\n\n"
	msg := "id: " + event.ID + "\n"
	msg += "event: " + event.Type + "\n"
	msg += "data: " + string(data) + "\n\n"

	return []byte(msg), nil
}
