package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/GibLife_Go/internal/catalog"
	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/session"
)

// MockSessionService mocks session.Service
type MockSessionService struct {
	mock.Mock
}

var _ session.Service = (*MockSessionService)(nil)

func (m *MockSessionService) Create(ctx context.Context) (session.View, error) {
	args := m.Called(ctx)
	return args.Get(0).(session.View), args.Error(1)
}

func (m *MockSessionService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSessionService) List(ctx context.Context) ([]session.Info, error) {
	args := m.Called(ctx)
	return args.Get(0).([]session.Info), args.Error(1)
}

func (m *MockSessionService) Get(id string) (*session.Session, error) {
	args := m.Called(id)
	s, _ := args.Get(0).(*session.Session)
	return s, args.Error(1)
}

func (m *MockSessionService) Count() int {
	return m.Called().Int(0)
}

func (m *MockSessionService) ConnectWallet(ctx context.Context, id, address string) (session.View, error) {
	args := m.Called(ctx, id, address)
	return args.Get(0).(session.View), args.Error(1)
}

func (m *MockSessionService) DisconnectWallet(ctx context.Context, id string) (session.View, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(session.View), args.Error(1)
}

func (m *MockSessionService) PrimaryAction(ctx context.Context, id string) (session.ActionResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(session.ActionResult), args.Error(1)
}

func (m *MockSessionService) StartTask(ctx context.Context, id string, taskID uuid.UUID) (domain.ActiveTask, error) {
	args := m.Called(ctx, id, taskID)
	return args.Get(0).(domain.ActiveTask), args.Error(1)
}

func (m *MockSessionService) StartTaskByTitle(ctx context.Context, id, title string) (domain.ActiveTask, error) {
	args := m.Called(ctx, id, title)
	return args.Get(0).(domain.ActiveTask), args.Error(1)
}

func (m *MockSessionService) NavigateToMenu(ctx context.Context, id string) (session.View, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(session.View), args.Error(1)
}

func (m *MockSessionService) OpenStore(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSessionService) OpenSkills(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSessionService) View(ctx context.Context, id string) (session.View, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(session.View), args.Error(1)
}

func (m *MockSessionService) CheckHealth(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSessionService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockCatalogSource mocks CatalogSource
type MockCatalogSource struct {
	mock.Mock
}

func (m *MockCatalogSource) Current() *catalog.Catalog {
	c, _ := m.Called().Get(0).(*catalog.Catalog)
	return c
}

func (m *MockCatalogSource) Reload(ctx context.Context) (*catalog.Catalog, bool, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(*catalog.Catalog)
	return c, args.Bool(1), args.Error(2)
}

// withURLParam attaches a chi route parameter to the request
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
