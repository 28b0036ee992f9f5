package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GibLife_Go/internal/catalog"
	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/session"
)

func testCatalog(t *testing.T, version string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(version, catalog.SourceEmbedded, []domain.TaskTemplate{
		{Title: "Fix CSS Bug", Reward: 50},
		{Title: "Design Logo", Reward: 100},
	})
	require.NoError(t, err)
	return c
}

func TestHandleGetCatalog(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		src := &MockCatalogSource{}
		src.On("Current").Return(testCatalog(t, "1.0"))

		w := httptest.NewRecorder()
		HandleGetCatalog(src).ServeHTTP(w, httptest.NewRequest("GET", "/catalog", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp CatalogResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "1.0", resp.Version)
		require.Len(t, resp.Tasks, 2)
		assert.Equal(t, "Design Logo", resp.Tasks[1].Title)
	})

	t.Run("No Catalog", func(t *testing.T) {
		src := &MockCatalogSource{}
		src.On("Current").Return(nil)

		w := httptest.NewRecorder()
		HandleGetCatalog(src).ServeHTTP(w, httptest.NewRequest("GET", "/catalog", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestHandleReloadCatalog(t *testing.T) {
	tests := []struct {
		name           string
		changed        bool
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{"Changed", true, nil, http.StatusOK, MsgCatalogReloaded},
		{"Unchanged", false, nil, http.StatusOK, MsgCatalogUnchanged},
		{"Invalid File", false, fmt.Errorf("%w: duplicate title", domain.ErrInvalidCatalog), http.StatusUnprocessableEntity, ErrMsgCatalogInvalidError},
		{"Read Error", false, assert.AnError, http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &MockCatalogSource{}
			src.On("Reload", mock.Anything).Return(testCatalog(t, "2.0"), tt.changed, tt.err)

			w := httptest.NewRecorder()
			HandleReloadCatalog(src).ServeHTTP(w, httptest.NewRequest("POST", "/admin/catalog/reload", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			src.AssertExpectations(t)
		})
	}
}

func TestHandleListSessions(t *testing.T) {
	svc := &MockSessionService{}
	svc.On("List", mock.Anything).Return([]session.Info{
		{ID: "a", Scene: domain.SceneMenu},
		{ID: "b", Scene: domain.SceneGame, WalletConnected: true, GamesStarted: 1},
	}, nil)

	w := httptest.NewRecorder()
	HandleListSessions(svc).ServeHTTP(w, httptest.NewRequest("GET", "/admin/sessions", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SessionListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, domain.SceneGame, resp.Sessions[1].Scene)
}

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrSessionNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: abc", domain.ErrTaskNotFound), http.StatusNotFound},
		{domain.ErrInsufficientEnergy, http.StatusConflict},
		{domain.ErrNotInGame, http.StatusConflict},
		{domain.ErrSceneDestroyed, http.StatusConflict},
		{domain.ErrSessionClosed, http.StatusGone},
		{domain.ErrNotImplemented, http.StatusNotImplemented},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{assert.AnError, http.StatusInternalServerError},
		{nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		status, msg := mapServiceErrorToUserMessage(tt.err)
		assert.Equal(t, tt.status, status, "%v", tt.err)
		assert.NotEmpty(t, msg)
	}
}
