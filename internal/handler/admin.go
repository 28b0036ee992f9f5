package handler

import (
	"net/http"

	"github.com/osse101/GibLife_Go/internal/session"
)

// SessionListResponse is the admin view of all live sessions
type SessionListResponse struct {
	Count    int            `json:"count"`
	Sessions []session.Info `json:"sessions"`
}

// HandleListSessions lists live sessions with their game stats (admin only)
// @Summary List sessions
// @Tags admin
// @Produce json
// @Success 200 {object} SessionListResponse
// @Router /admin/sessions [get]
// @Security ApiKeyAuth
func HandleListSessions(service session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infos, err := service.List(r.Context())
		if err != nil {
			respondServiceError(w, r, "List sessions", err)
			return
		}
		respondJSON(w, http.StatusOK, SessionListResponse{Count: len(infos), Sessions: infos})
	}
}

// HandleDeleteSession force-closes a session (admin only)
// @Summary Close session
// @Tags admin
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/sessions/{id} [delete]
// @Security ApiKeyAuth
func HandleDeleteSession(service session.Service) http.HandlerFunc {
	return NewSessionHandler(service).HandleDelete
}
