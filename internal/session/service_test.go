package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GibLife_Go/internal/config"
	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/event"
	"github.com/osse101/GibLife_Go/internal/testing/leaktest"
)

func newTestService(t *testing.T, cfg ServiceConfig) (Service, *eventRecorder) {
	t.Helper()
	bus := event.NewMemoryBus()
	rec := newEventRecorder(bus)
	cfg.Bus = bus
	if cfg.Catalog == nil {
		cfg.Catalog = newStaticCatalog(t)
	}
	if cfg.Balance == (config.Balance{}) {
		cfg.Balance = config.Default()
	}

	svc, err := NewService(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = svc.Shutdown(ctx)
	})
	return svc, rec
}

func TestNewService_RequiresCatalog(t *testing.T) {
	_, err := NewService(ServiceConfig{Balance: config.Default()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_CreateGetDelete(t *testing.T) {
	svc, rec := newTestService(t, ServiceConfig{})
	ctx := context.Background()

	v, err := svc.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, v.SessionID)
	assert.Equal(t, domain.SceneMenu, v.Scene)
	assert.Equal(t, 1, svc.Count())

	sess, err := svc.Get(v.SessionID)
	require.NoError(t, err)
	assert.Equal(t, v.SessionID, sess.ID())

	require.NoError(t, svc.Delete(ctx, v.SessionID))
	assert.Equal(t, 0, svc.Count())

	_, err = svc.Get(v.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, v.SessionID), domain.ErrSessionNotFound)

	closed := rec.ofType(event.SessionClosed)
	require.Len(t, closed, 1)
	assert.Equal(t, ReasonDeleted, closed[0].Payload.(event.SessionClosedPayloadV1).Reason)
}

func TestService_UnknownSession(t *testing.T) {
	svc, _ := newTestService(t, ServiceConfig{})
	ctx := context.Background()

	_, err := svc.View(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = svc.ConnectWallet(ctx, "missing", testWallet)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = svc.PrimaryAction(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = svc.StartTask(ctx, "missing", uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestService_GameFlow(t *testing.T) {
	svc, _ := newTestService(t, ServiceConfig{})
	ctx := context.Background()

	v, err := svc.Create(ctx)
	require.NoError(t, err)
	id := v.SessionID

	res, err := svc.PrimaryAction(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ActionOpenWallet, res.Action)

	_, err = svc.ConnectWallet(ctx, id, testWallet)
	require.NoError(t, err)
	res, err = svc.PrimaryAction(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ActionStartGame, res.Action)

	_, err = svc.StartTask(ctx, id, uuid.New())
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	v, err = svc.NavigateToMenu(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.SceneMenu, v.Scene)

	v, err = svc.DisconnectWallet(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Connect Wallet", v.Menu.ButtonLabel)
}

func TestService_StoreAndSkills(t *testing.T) {
	svc, _ := newTestService(t, ServiceConfig{})
	ctx := context.Background()
	v, err := svc.Create(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.OpenStore(ctx, v.SessionID), domain.ErrNotInGame)

	_, err = svc.ConnectWallet(ctx, v.SessionID, testWallet)
	require.NoError(t, err)
	_, err = svc.PrimaryAction(ctx, v.SessionID)
	require.NoError(t, err)

	err = svc.OpenStore(ctx, v.SessionID)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.Contains(t, err.Error(), "Store")
	assert.ErrorIs(t, svc.OpenSkills(ctx, v.SessionID), domain.ErrNotImplemented)
}

func TestService_List(t *testing.T) {
	svc, _ := newTestService(t, ServiceConfig{})
	ctx := context.Background()

	first, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.ConnectWallet(ctx, first.SessionID, testWallet)
	require.NoError(t, err)
	_, err = svc.PrimaryAction(ctx, first.SessionID)
	require.NoError(t, err)

	infos, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	byID := make(map[string]Info)
	for _, info := range infos {
		byID[info.ID] = info
	}
	started := byID[first.SessionID]
	assert.Equal(t, domain.SceneGame, started.Scene)
	assert.True(t, started.WalletConnected)
	require.NotNil(t, started.Stats)
	assert.Equal(t, 1, started.GamesStarted)
}

func TestService_CapacityEviction(t *testing.T) {
	svc, rec := newTestService(t, ServiceConfig{MaxSessions: 2})
	ctx := context.Background()

	first, err := svc.Create(ctx)
	require.NoError(t, err)
	firstSess, err := svc.Get(first.SessionID)
	require.NoError(t, err)

	_, err = svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.Create(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, svc.Count())
	_, err = svc.Get(first.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	select {
	case <-firstSess.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("evicted session was not closed")
	}
	assert.Eventually(t, func() bool {
		for _, e := range rec.ofType(event.SessionClosed) {
			if e.SessionID == first.SessionID {
				return e.Payload.(event.SessionClosedPayloadV1).Reason == ReasonEvicted
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestService_Shutdown(t *testing.T) {
	bus := event.NewMemoryBus()
	rec := newEventRecorder(bus)
	svc, err := NewService(ServiceConfig{Balance: config.Default(), Catalog: newStaticCatalog(t), Bus: bus})
	require.NoError(t, err)
	// Baseline includes the store's expiry goroutine, which lives as long as the process
	checker := leaktest.NewGoroutineChecker(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx)
		require.NoError(t, err)
	}
	require.NoError(t, svc.CheckHealth(ctx))

	require.NoError(t, svc.Shutdown(ctx))
	require.NoError(t, svc.Shutdown(ctx))

	assert.Len(t, rec.ofType(event.SessionClosed), 3)
	assert.Equal(t, 0, svc.Count())
	assert.ErrorIs(t, svc.CheckHealth(ctx), domain.ErrSessionClosed)
	_, err = svc.Create(ctx)
	assert.ErrorIs(t, err, domain.ErrSessionClosed)

	checker.Check(0)
}
