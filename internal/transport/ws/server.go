package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/logger"
	"github.com/osse101/GibLife_Go/internal/session"
	"github.com/osse101/GibLife_Go/internal/sse"
)

// Server is a bidirectional game channel. A client opens it with a hello
// naming its session, then sends commands and receives views plus every
// event of that session.
type Server struct {
	sessions session.Service
	hub      *sse.Hub
	upgrader websocket.Upgrader
}

// NewServer creates a WebSocket server. allowedOrigins empty or containing
// "*" accepts any origin.
func NewServer(sessions session.Service, hub *sse.Hub, allowedOrigins []string) *Server {
	return &Server{
		sessions: sessions,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return len(set) == 0 || origin == "" || set[origin]
	}
}

// Handler upgrades the request and serves the connection until either side
// closes it or the session ends.
//
// @Summary Game WebSocket
// @Tags events
// @Router /ws [get]
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			slog.Debug(LogMsgUpgradeFail, "error", err)
			return
		}
		defer conn.Close()
		conn.SetReadLimit(readLimit)

		ctx, cancel := context.WithCancel(logger.WithRequestID(context.Background(), uuid.New().String()))
		defer cancel()

		sessionID, ok := s.handshake(ctx, conn)
		if !ok {
			return
		}
		ctx = logger.WithSessionID(ctx, sessionID)
		log := logger.FromContext(ctx)
		log.Info(LogMsgConnected)
		defer log.Info(LogMsgDisconnected)

		client := s.hub.Register(sessionID, nil)
		defer s.hub.Unregister(client.ID)

		out := make(chan OutMsg, outboxSize)
		done := make(chan struct{})

		// Writer goroutine; the only one writing after the handshake.
		go func() {
			defer close(done)
			defer conn.Close()
			defer cancel()
			s.writeLoop(ctx, conn, out, client.EventChannel)
		}()

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		// Reader loop.
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var msg InMsg
			if err := json.Unmarshal(raw, &msg); err != nil {
				log.Debug(LogMsgBadMessage, "error", err)
				continue
			}
			reply := s.dispatch(ctx, sessionID, msg)
			select {
			case out <- reply:
			case <-ctx.Done():
			default:
				log.Warn(LogMsgOutboxOverflow, "type", reply.Type)
			}
			if ctx.Err() != nil {
				break
			}
		}

		cancel()
		<-done
	}
}

func (s *Server) handshake(ctx context.Context, conn *websocket.Conn) (string, bool) {
	_ = conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	var hello InMsg
	if err := conn.ReadJSON(&hello); err != nil || hello.Type != TypeHello {
		closeWith(conn, websocket.ClosePolicyViolation, CloseMsgExpectedHello)
		return "", false
	}

	v, err := s.sessions.View(ctx, hello.SessionID)
	if err != nil {
		slog.Info(LogMsgHandshakeFail, "session_id", hello.SessionID, "error", err)
		closeWith(conn, websocket.ClosePolicyViolation, CloseMsgUnknownSession)
		return "", false
	}

	if err := writeJSON(conn, viewMsg(TypeWelcome, v)); err != nil {
		return "", false
	}
	return v.SessionID, true
}

func (s *Server) writeLoop(ctx context.Context, conn *websocket.Conn, out <-chan OutMsg, events <-chan sse.Event) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			closeWith(conn, websocket.CloseNormalClosure, "")
			return

		case msg := <-out:
			if err := writeJSON(conn, msg); err != nil {
				return
			}

		case evt, ok := <-events:
			if !ok {
				closeWith(conn, websocket.CloseGoingAway, "")
				return
			}
			if err := writeJSON(conn, OutMsg{Type: TypeEvent, Event: &evt}); err != nil {
				return
			}
			if evt.Type == domain.EventTypeSessionClosed {
				closeWith(conn, websocket.CloseNormalClosure, CloseMsgSessionClosed)
				return
			}

		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// dispatch runs one command against the session service and builds the reply
func (s *Server) dispatch(ctx context.Context, sessionID string, msg InMsg) OutMsg {
	reply, err := s.run(ctx, sessionID, msg)
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgCommandFailed, "type", msg.Type, "error", err)
		return errorMsg(err)
	}
	return reply
}

func (s *Server) run(ctx context.Context, id string, msg InMsg) (OutMsg, error) {
	switch msg.Type {
	case TypeConnectWallet:
		if !domain.ValidWalletAddress(msg.Address) {
			return OutMsg{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgBadAddress)
		}
		v, err := s.sessions.ConnectWallet(ctx, id, msg.Address)
		return viewMsg(TypeView, v), err

	case TypeDisconnectWallet:
		v, err := s.sessions.DisconnectWallet(ctx, id)
		return viewMsg(TypeView, v), err

	case TypePrimaryAction:
		res, err := s.sessions.PrimaryAction(ctx, id)
		if err != nil {
			return OutMsg{}, err
		}
		out := viewMsg(TypeAction, res.View)
		out.Action = res.Action
		return out, nil

	case TypeStartTask:
		var (
			task domain.ActiveTask
			err  error
		)
		switch {
		case msg.TaskID != "":
			taskID, perr := uuid.Parse(msg.TaskID)
			if perr != nil {
				return OutMsg{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgBadTaskID)
			}
			task, err = s.sessions.StartTask(ctx, id, taskID)
		case msg.Title != "":
			task, err = s.sessions.StartTaskByTitle(ctx, id, msg.Title)
		default:
			return OutMsg{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNeedTask)
		}
		if err != nil {
			return OutMsg{}, err
		}
		return OutMsg{Type: TypeTaskStarted, Task: &task}, nil

	case TypeNavigateMenu:
		v, err := s.sessions.NavigateToMenu(ctx, id)
		return viewMsg(TypeView, v), err

	case TypeGetView:
		v, err := s.sessions.View(ctx, id)
		return viewMsg(TypeView, v), err

	default:
		return OutMsg{}, fmt.Errorf("%w: "+ErrMsgUnknownType, domain.ErrInvalidInput, msg.Type)
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

func closeWith(conn *websocket.Conn, code int, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(time.Second))
}
