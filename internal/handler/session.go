package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/logger"
	"github.com/osse101/GibLife_Go/internal/session"
)

// SessionHandler handles game session HTTP endpoints
type SessionHandler struct {
	service session.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service session.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

// ConnectWalletRequest is the request body for the wallet-connected signal
type ConnectWalletRequest struct {
	Address string `json:"address" validate:"required,wallet"`
}

// StartTaskRequest names a queued task by ID or, failing that, by title
type StartTaskRequest struct {
	TaskID string `json:"task_id,omitempty" validate:"required_without=Title,omitempty,uuid"`
	Title  string `json:"title,omitempty" validate:"max=100"`
}

// HandleCreate creates a session in the menu scene
// @Summary Create session
// @Tags sessions
// @Produce json
// @Success 201 {object} session.View
// @Failure 503 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.Create(r.Context())
	if err != nil {
		respondServiceError(w, r, "Create session", err)
		return
	}
	logger.FromContext(r.Context()).Info(LogMsgSessionCreated, "session_id", v.SessionID)
	respondJSON(w, http.StatusCreated, v)
}

// HandleGet returns the current view of a session
// @Summary Get session view
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.View
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, "Get session", h.service.View)
}

// HandleDelete tears a session down
// @Summary Delete session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, "Delete session", err)
		return
	}
	logger.FromContext(r.Context()).Info(LogMsgSessionDeleted, "session_id", id)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSessionDeleted})
}

// HandleConnectWallet forwards the wallet-connected signal
// @Summary Wallet connected
// @Tags wallet
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body ConnectWalletRequest true "Wallet address"
// @Success 200 {object} session.View
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/wallet/connect [post]
func (h *SessionHandler) HandleConnectWallet(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	var req ConnectWalletRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Connect wallet"); err != nil {
		return
	}

	v, err := h.service.ConnectWallet(r.Context(), id, req.Address)
	if err != nil {
		respondServiceError(w, r, "Connect wallet", err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

// HandleDisconnectWallet forwards the wallet-disconnected signal
// @Summary Wallet disconnected
// @Tags wallet
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.View
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/wallet/disconnect [post]
func (h *SessionHandler) HandleDisconnectWallet(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, "Disconnect wallet", h.service.DisconnectWallet)
}

// HandlePrimaryAction presses the menu button
// @Summary Menu primary action
// @Description Asks the client to open its wallet connector when no wallet is connected, otherwise starts a game
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.ActionResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/primary-action [post]
func (h *SessionHandler) HandlePrimaryAction(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	res, err := h.service.PrimaryAction(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Primary action", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// HandleStartTask starts a queued task
// @Summary Start task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body StartTaskRequest true "Task to start"
// @Success 201 {object} domain.ActiveTask
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "not enough energy or not in game"
// @Router /sessions/{id}/tasks/start [post]
func (h *SessionHandler) HandleStartTask(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	var req StartTaskRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start task"); err != nil {
		return
	}

	var (
		task domain.ActiveTask
		err  error
	)
	if req.TaskID != "" {
		taskID, perr := uuid.Parse(req.TaskID)
		if perr != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidTaskID)
			return
		}
		task, err = h.service.StartTask(r.Context(), id, taskID)
	} else {
		task, err = h.service.StartTaskByTitle(r.Context(), id, req.Title)
	}
	if err != nil {
		respondServiceError(w, r, "Start task", err)
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// HandleNavigateMenu returns to the menu, ending the running game
// @Summary Back to menu
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.View
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/menu [post]
func (h *SessionHandler) HandleNavigateMenu(w http.ResponseWriter, r *http.Request) {
	h.respondView(w, r, "Navigate to menu", h.service.NavigateToMenu)
}

// HandleStore is the Store button
// @Summary Store
// @Tags sessions
// @Param id path string true "Session ID"
// @Failure 409 {object} ErrorResponse
// @Failure 501 {object} ErrorResponse
// @Router /sessions/{id}/store [post]
func (h *SessionHandler) HandleStore(w http.ResponseWriter, r *http.Request) {
	h.respondNotImplemented(w, r, "Store", h.service.OpenStore, MsgStoreNotAvailable)
}

// HandleSkills is the Skills button
// @Summary Skills
// @Tags sessions
// @Param id path string true "Session ID"
// @Failure 409 {object} ErrorResponse
// @Failure 501 {object} ErrorResponse
// @Router /sessions/{id}/skills [post]
func (h *SessionHandler) HandleSkills(w http.ResponseWriter, r *http.Request) {
	h.respondNotImplemented(w, r, "Skills", h.service.OpenSkills, MsgSkillsNotAvailable)
}

type viewFunc func(ctx context.Context, id string) (session.View, error)

func (h *SessionHandler) respondView(w http.ResponseWriter, r *http.Request, action string, fn viewFunc) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	v, err := fn(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, action, err)
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (h *SessionHandler) respondNotImplemented(w http.ResponseWriter, r *http.Request, action string, fn func(ctx context.Context, id string) error, msg string) {
	id, ok := GetPathParam(r, w, "id")
	if !ok {
		return
	}
	err := fn(r.Context(), id)
	if err == nil {
		respondJSON(w, http.StatusOK, SuccessResponse{})
		return
	}
	status, _ := mapServiceErrorToUserMessage(err)
	if status == http.StatusNotImplemented {
		respondError(w, status, msg)
		return
	}
	respondServiceError(w, r, action, err)
}
