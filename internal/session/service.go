package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/osse101/GibLife_Go/internal/clock"
	"github.com/osse101/GibLife_Go/internal/config"
	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/event"
	"github.com/osse101/GibLife_Go/internal/logger"
)

// Service manages player sessions
type Service interface {
	Create(ctx context.Context) (View, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Info, error)
	Get(id string) (*Session, error)
	Count() int

	// Menu
	ConnectWallet(ctx context.Context, id, address string) (View, error)
	DisconnectWallet(ctx context.Context, id string) (View, error)
	PrimaryAction(ctx context.Context, id string) (ActionResult, error)

	// Game
	StartTask(ctx context.Context, id string, taskID uuid.UUID) (domain.ActiveTask, error)
	StartTaskByTitle(ctx context.Context, id, title string) (domain.ActiveTask, error)
	NavigateToMenu(ctx context.Context, id string) (View, error)
	OpenStore(ctx context.Context, id string) error
	OpenSkills(ctx context.Context, id string) error
	View(ctx context.Context, id string) (View, error)

	CheckHealth(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ServiceConfig configures the session service
type ServiceConfig struct {
	Balance      config.Balance
	Catalog      CatalogSource
	Bus          event.Bus
	Clock        clock.Clock
	Rand         func() float64
	TickInterval time.Duration
	MaxSessions  int
	TTL          time.Duration
}

type service struct {
	cfg    ServiceConfig
	store  *store
	ctx    context.Context
	cancel context.CancelFunc
	wg     *conc.WaitGroup

	mu       sync.Mutex
	shutdown bool
}

// NewService creates the session service. Sessions run until deleted,
// evicted or Shutdown.
func NewService(cfg ServiceConfig) (Service, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("%w: catalog source is required", domain.ErrInvalidInput)
	}
	if err := cfg.Balance.Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaultMaxSessions
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultSessionTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewRealClock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &service{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		wg:     conc.NewWaitGroup(),
	}
	s.store = newStore(cfg.MaxSessions, cfg.TTL, s.onEvict)
	return s, nil
}

func (s *service) onEvict(sess *Session) {
	// Called with the LRU lock held
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		select {
		case <-sess.Done():
			return
		default:
		}
		logger.FromContext(ctx).Info(LogMsgSessionEvicted, logger.AttrKeySessionID, sess.ID())
		if err := sess.Close(ctx, ReasonEvicted); err != nil {
			logger.FromContext(ctx).Warn(LogMsgCloseTimeout, logger.AttrKeySessionID, sess.ID(), "error", err)
		}
	}()
}

func (s *service) Create(ctx context.Context) (View, error) {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return View{}, domain.ErrSessionClosed
	}
	s.mu.Unlock()

	sess, err := New(Options{
		ID:           uuid.NewString(),
		Balance:      s.cfg.Balance,
		Catalog:      s.cfg.Catalog,
		Bus:          s.cfg.Bus,
		Clock:        s.cfg.Clock,
		Rand:         s.cfg.Rand,
		TickInterval: s.cfg.TickInterval,
	})
	if err != nil {
		return View{}, err
	}

	s.wg.Go(func() {
		var catcher panics.Catcher
		catcher.Try(func() {
			_ = sess.Run(s.ctx)
		})
		if r := catcher.Recovered(); r != nil {
			logger.FromContext(s.ctx).Error(LogMsgSessionClosed,
				logger.AttrKeySessionID, sess.ID(), "panic", r.AsError())
		}
	})
	s.store.Add(sess)

	logger.FromContext(ctx).Info(LogMsgSessionCreated, logger.AttrKeySessionID, sess.ID())
	return sess.View(ctx)
}

func (s *service) Get(id string) (*Session, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	s.store.Add(sess)
	return sess, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	sess, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	err := sess.Close(ctx, ReasonDeleted)
	s.store.Remove(id)
	return err
}

func (s *service) List(ctx context.Context) ([]Info, error) {
	sessions := s.store.Values()
	infos := make([]Info, 0, len(sessions))
	for _, sess := range sessions {
		info, err := sess.Info(ctx)
		if err != nil {
			// Closed between listing and asking
			continue
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos, nil
}

func (s *service) Count() int {
	return s.store.Len()
}

func (s *service) ConnectWallet(ctx context.Context, id, address string) (View, error) {
	sess, err := s.Get(id)
	if err != nil {
		return View{}, err
	}
	return sess.OnWalletConnected(ctx, address)
}

func (s *service) DisconnectWallet(ctx context.Context, id string) (View, error) {
	sess, err := s.Get(id)
	if err != nil {
		return View{}, err
	}
	return sess.OnWalletDisconnected(ctx)
}

func (s *service) PrimaryAction(ctx context.Context, id string) (ActionResult, error) {
	sess, err := s.Get(id)
	if err != nil {
		return ActionResult{}, err
	}
	return sess.PrimaryAction(ctx)
}

func (s *service) StartTask(ctx context.Context, id string, taskID uuid.UUID) (domain.ActiveTask, error) {
	sess, err := s.Get(id)
	if err != nil {
		return domain.ActiveTask{}, err
	}
	return sess.StartTask(ctx, taskID)
}

func (s *service) StartTaskByTitle(ctx context.Context, id, title string) (domain.ActiveTask, error) {
	sess, err := s.Get(id)
	if err != nil {
		return domain.ActiveTask{}, err
	}
	return sess.StartTaskByTitle(ctx, title)
}

func (s *service) NavigateToMenu(ctx context.Context, id string) (View, error) {
	sess, err := s.Get(id)
	if err != nil {
		return View{}, err
	}
	return sess.NavigateToMenu(ctx)
}

// OpenStore is a placeholder for the store screen
func (s *service) OpenStore(ctx context.Context, id string) error {
	return s.notImplemented(ctx, id, ButtonStore, LogMsgStoreClicked)
}

// OpenSkills is a placeholder for the skills screen
func (s *service) OpenSkills(ctx context.Context, id string) error {
	return s.notImplemented(ctx, id, ButtonSkills, LogMsgSkillsClicked)
}

func (s *service) notImplemented(ctx context.Context, id, feature, msg string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	if _, err := sess.Snapshot(ctx); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(msg, logger.AttrKeySessionID, id)
	return fmt.Errorf("%w: "+ErrMsgNotImplementedFmt, domain.ErrNotImplemented, feature)
}

func (s *service) View(ctx context.Context, id string) (View, error) {
	sess, err := s.Get(id)
	if err != nil {
		return View{}, err
	}
	return sess.View(ctx)
}

// CheckHealth reports whether new sessions can be created
func (s *service) CheckHealth(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdown {
		return domain.ErrSessionClosed
	}
	if s.cfg.Catalog.Current() == nil {
		return domain.ErrEmptyCatalog
	}
	return nil
}

// Shutdown stops every session and waits for their goroutines
func (s *service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return nil
	}
	s.shutdown = true
	s.mu.Unlock()

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.store.Purge()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
