package ws

import (
	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/session"
	"github.com/osse101/GibLife_Go/internal/sse"
)

// InMsg is any message a client sends. Only the fields of its Type are read.
type InMsg struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	Address   string `json:"address,omitempty"`
	TaskID    string `json:"task_id,omitempty"`
	Title     string `json:"title,omitempty"`
}

// OutMsg is any message the server sends
type OutMsg struct {
	Type   string             `json:"type"`
	View   *session.View      `json:"view,omitempty"`
	Action string             `json:"action,omitempty"`
	Task   *domain.ActiveTask `json:"task,omitempty"`
	Event  *sse.Event         `json:"event,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func viewMsg(t string, v session.View) OutMsg {
	return OutMsg{Type: t, View: &v}
}

func errorMsg(err error) OutMsg {
	return OutMsg{Type: TypeError, Error: err.Error()}
}
