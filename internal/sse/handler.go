package sse

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/event"
	"github.com/osse101/GibLife_Go/internal/session"
)

// SessionLookup resolves the session a stream is scoped to
type SessionLookup interface {
	Get(id string) (*session.Session, error)
}

// Handler returns an HTTP handler for SSE connections. With ?session_id= the
// stream carries only that session's events and ends when it closes.
//
// @Summary Stream game events
// @Tags events
// @Produce text/event-stream
// @Param session_id query string false "Session to follow"
// @Param types query string false "Comma separated event types"
// @Success 200 {string} string "event stream"
// @Failure 404 {string} string "session not found"
// @Router /events [get]
func Handler(hub *Hub, sessions SessionLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get(QueryParamSessionID)
		if sessionID != "" && sessions != nil {
			if _, err := sessions.Get(sessionID); err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					http.Error(w, ErrMsgUnknownSession, http.StatusNotFound)
					return
				}
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
		}

		// Check for flusher support
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		// Set SSE headers
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		// Parse event type filters from query param
		var eventTypes []string
		if filterParam := r.URL.Query().Get(QueryParamTypes); filterParam != "" {
			eventTypes = strings.Split(filterParam, ",")
		}

		client := hub.Register(sessionID, eventTypes)
		slog.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"session_id", sessionID,
			"filters", eventTypes,
			"total_clients", hub.ClientCount())

		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected,
				"client_id", client.ID,
				"total_clients", hub.ClientCount())
		}()

		connectEvent := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			SessionID: sessionID,
			Timestamp: time.Now().Unix(),
			Payload: ConnectedPayload{
				ClientID:  client.ID,
				SessionID: sessionID,
				Filters:   eventTypes,
			},
		}
		if msg, err := FormatSSEMessage(connectEvent); err == nil {
			if _, err := w.Write(msg); err != nil {
				return
			}
			flusher.Flush()
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				return

			case evt, ok := <-client.EventChannel:
				if !ok {
					// Hub is shutting down
					return
				}

				msg, err := FormatSSEMessage(evt)
				if err != nil {
					slog.Error(LogMsgWriteError, "error", err)
					continue
				}
				if _, err := w.Write(msg); err != nil {
					slog.Warn(LogMsgWriteError, "error", err)
					return
				}
				flusher.Flush()

				if sessionID != "" && evt.Type == string(event.SessionClosed) {
					return
				}

			case <-ticker.C:
				keepalive := Event{
					Type:      EventTypeKeepalive,
					Timestamp: time.Now().Unix(),
				}
				msg, _ := FormatSSEMessage(keepalive)
				if _, err := w.Write(msg); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
