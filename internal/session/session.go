package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/GibLife_Go/internal/catalog"
	"github.com/osse101/GibLife_Go/internal/clock"
	"github.com/osse101/GibLife_Go/internal/config"
	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/event"
	"github.com/osse101/GibLife_Go/internal/game"
	"github.com/osse101/GibLife_Go/internal/logger"
)

// CatalogSource supplies the catalog a new game starts with
type CatalogSource interface {
	Current() *catalog.Catalog
}

// Options configures a Session
type Options struct {
	ID      string
	Balance config.Balance
	Catalog CatalogSource
	Bus     event.Bus
	Clock   clock.Clock
	Rand    func() float64
	// TickInterval drives the game loop. Zero disables the ticker so the
	// owner advances time with Tick.
	TickInterval time.Duration
}

// ActionResult is the outcome of the menu's primary button
type ActionResult struct {
	Action string `json:"action"`
	View   View   `json:"view"`
}

// Info summarizes a session for admin listings
type Info struct {
	ID              string      `json:"id"`
	Scene           string      `json:"scene"`
	WalletConnected bool        `json:"wallet_connected"`
	CreatedAt       time.Time   `json:"created_at"`
	LastActive      time.Time   `json:"last_active"`
	GamesStarted    int         `json:"games_started"`
	Work            int         `json:"work"`
	Stats           *game.Stats `json:"stats,omitempty"`
}

type request struct {
	ctx  context.Context
	fn   func(ctx context.Context) (interface{}, error)
	resp chan response
}

type response struct {
	val interface{}
	err error
}

// Session is one player's game. A single goroutine (Run) owns the scene, the
// wallet and the Manager; every exported method is a request to that
// goroutine and is safe for concurrent use.
type Session struct {
	id        string
	opts      Options
	createdAt time.Time

	inbox    chan request
	closing  chan string
	done     chan struct{}
	stopOnce sync.Once

	lastActive atomic.Int64

	// owned by Run
	loopCtx      context.Context
	scene        string
	wallet       string
	game         *game.Manager
	lastTick     time.Time
	gamesStarted int
}

// New creates a session in the menu scene. Call Run to start it.
func New(opts Options) (*Session, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("%w: catalog source is required", domain.ErrInvalidInput)
	}
	if err := opts.Balance.Validate(); err != nil {
		return nil, err
	}
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewRealClock()
	}

	s := &Session{
		id:        opts.ID,
		opts:      opts,
		createdAt: opts.Clock.Now(),
		inbox:     make(chan request, inboxSize),
		closing:   make(chan string, 1),
		done:      make(chan struct{}),
		scene:     domain.SceneMenu,
	}
	s.touch()
	return s, nil
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

// CreatedAt returns when the session was created
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// LastActive returns the time of the last command
func (s *Session) LastActive() time.Time { return time.Unix(0, s.lastActive.Load()) }

// Done is closed once Run has returned
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) touch() {
	s.lastActive.Store(s.opts.Clock.Now().UnixNano())
}

// Run owns the session state until Close is called or ctx is cancelled
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)
	ctx = logger.WithSessionID(ctx, s.id)
	s.loopCtx = ctx

	var tick <-chan time.Time
	if s.opts.TickInterval > 0 {
		ticker := time.NewTicker(s.opts.TickInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.teardown(context.WithoutCancel(ctx), ReasonShutdown)
			return ctx.Err()
		case reason := <-s.closing:
			s.teardown(ctx, reason)
			return nil
		case req := <-s.inbox:
			val, err := req.fn(logger.WithSessionID(req.ctx, s.id))
			req.resp <- response{val: val, err: err}
		case <-tick:
			s.tick(ctx)
		}
	}
}

// Close stops the session and waits for Run to return. Later calls are no-ops.
func (s *Session) Close(ctx context.Context, reason string) error {
	s.stopOnce.Do(func() {
		s.closing <- reason
	})
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) tick(ctx context.Context) {
	if s.game == nil {
		return
	}
	now := s.opts.Clock.Now()
	dt := now.Sub(s.lastTick)
	s.lastTick = now
	if err := s.game.Tick(ctx, dt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgTickFailed, "error", err)
	}
}

func (s *Session) teardown(ctx context.Context, reason string) {
	work := 0
	if s.game != nil {
		work = s.game.Player().Work
		s.game.Teardown(ctx)
		s.game = nil
	}
	s.publish(ctx, event.NewSessionClosedEvent(s.id, reason, work))
	logger.FromContext(ctx).Info(LogMsgSessionClosed, "reason", reason, "work", work)
}

func (s *Session) publish(ctx context.Context, e event.Event) {
	if s.opts.Bus == nil {
		return
	}
	if err := s.opts.Bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", e.Type, "error", err)
	}
}

// do runs fn on the session goroutine and waits for its result
func do[T any](ctx context.Context, s *Session, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	req := request{
		ctx: ctx,
		fn: func(ctx context.Context) (interface{}, error) {
			return fn(ctx)
		},
		resp: make(chan response, 1),
	}

	select {
	case s.inbox <- req:
	case <-s.done:
		return zero, domain.ErrSessionClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	select {
	case r := <-req.resp:
		s.touch()
		if r.err != nil {
			return zero, r.err
		}
		v, _ := r.val.(T)
		return v, nil
	case <-s.done:
		return zero, domain.ErrSessionClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// OnWalletConnected records the connected wallet address
func (s *Session) OnWalletConnected(ctx context.Context, address string) (View, error) {
	return do(ctx, s, func(ctx context.Context) (View, error) {
		s.wallet = address
		logger.FromContext(ctx).Info(LogMsgWalletConnected, "wallet", domain.ShortAddress(address))
		s.publish(ctx, event.NewWalletChangedEvent(s.id, address))
		return s.view(), nil
	})
}

// OnWalletDisconnected forgets the wallet. A running game keeps running.
func (s *Session) OnWalletDisconnected(ctx context.Context) (View, error) {
	return do(ctx, s, func(ctx context.Context) (View, error) {
		s.wallet = ""
		logger.FromContext(ctx).Info(LogMsgWalletDisconnected)
		s.publish(ctx, event.NewWalletChangedEvent(s.id, ""))
		return s.view(), nil
	})
}

// PrimaryAction presses the menu button: it asks the client to open its
// wallet connector when disconnected, otherwise starts a fresh game.
func (s *Session) PrimaryAction(ctx context.Context) (ActionResult, error) {
	return do(ctx, s, func(ctx context.Context) (ActionResult, error) {
		if s.scene != domain.SceneMenu {
			return ActionResult{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgPrimaryActionInGame)
		}
		if s.wallet == "" {
			logger.FromContext(ctx).Info(LogMsgWalletOpenRequest)
			s.publish(ctx, event.NewWalletOpenRequestedEvent(s.id))
			return ActionResult{Action: ActionOpenWallet, View: s.view()}, nil
		}
		if err := s.startGame(ctx); err != nil {
			return ActionResult{}, err
		}
		return ActionResult{Action: ActionStartGame, View: s.view()}, nil
	})
}

func (s *Session) startGame(ctx context.Context) error {
	cat := s.opts.Catalog.Current()
	presenter := newBusPresenter(s.loopCtx, s.opts.Bus, s.id, s.opts.Balance.QueueCapacity)

	m, err := game.NewManager(game.Options{
		Balance:   s.opts.Balance,
		Catalog:   cat,
		Rand:      s.opts.Rand,
		Clock:     s.opts.Clock,
		Presenter: presenter,
	})
	if err != nil {
		return err
	}

	s.game = m
	s.scene = domain.SceneGame
	s.lastTick = s.opts.Clock.Now()
	s.gamesStarted++

	logger.FromContext(ctx).Info(LogMsgGameStarted, "catalog_version", cat.Version(), "games_started", s.gamesStarted)
	s.publish(ctx, event.NewSceneChangedEvent(s.id, domain.SceneMenu, domain.SceneGame))
	presenter.StatsChanged(m.Player())
	presenter.QueueChanged(m.Queue())
	return nil
}

// NavigateToMenu tears the game down and returns to the menu. It is a
// no-op in the menu.
func (s *Session) NavigateToMenu(ctx context.Context) (View, error) {
	return do(ctx, s, func(ctx context.Context) (View, error) {
		if s.scene == domain.SceneMenu {
			return s.view(), nil
		}
		work := s.game.Player().Work
		s.game.Teardown(ctx)
		s.game = nil
		s.scene = domain.SceneMenu

		logger.FromContext(ctx).Info(LogMsgReturnedToMenu, "work", work)
		s.publish(ctx, event.NewSceneChangedEvent(s.id, domain.SceneGame, domain.SceneMenu))
		return s.view(), nil
	})
}

// StartTask starts an offered task by id
func (s *Session) StartTask(ctx context.Context, id uuid.UUID) (domain.ActiveTask, error) {
	return do(ctx, s, func(ctx context.Context) (domain.ActiveTask, error) {
		if s.game == nil {
			return domain.ActiveTask{}, domain.ErrNotInGame
		}
		return s.game.StartTask(ctx, id)
	})
}

// StartTaskByTitle starts the oldest offered task with the title
func (s *Session) StartTaskByTitle(ctx context.Context, title string) (domain.ActiveTask, error) {
	return do(ctx, s, func(ctx context.Context) (domain.ActiveTask, error) {
		if s.game == nil {
			return domain.ActiveTask{}, domain.ErrNotInGame
		}
		return s.game.StartTaskByTitle(ctx, title)
	})
}

// Tick advances the game by dt. Only sessions created with a zero
// TickInterval accept manual ticks; a running ticker owns the game clock.
func (s *Session) Tick(ctx context.Context, dt time.Duration) error {
	if s.opts.TickInterval > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgManualTickWithTicker)
	}
	_, err := do(ctx, s, func(ctx context.Context) (struct{}, error) {
		if s.game == nil {
			return struct{}{}, domain.ErrNotInGame
		}
		return struct{}{}, s.game.Tick(ctx, dt)
	})
	return err
}

// View returns what the client should render now
func (s *Session) View(ctx context.Context) (View, error) {
	return do(ctx, s, func(ctx context.Context) (View, error) {
		return s.view(), nil
	})
}

// Snapshot returns the raw game state
func (s *Session) Snapshot(ctx context.Context) (game.Snapshot, error) {
	return do(ctx, s, func(ctx context.Context) (game.Snapshot, error) {
		if s.game == nil {
			return game.Snapshot{}, domain.ErrNotInGame
		}
		return s.game.Snapshot(), nil
	})
}

// Info summarizes the session
func (s *Session) Info(ctx context.Context) (Info, error) {
	return do(ctx, s, func(ctx context.Context) (Info, error) {
		info := Info{
			ID:              s.id,
			Scene:           s.scene,
			WalletConnected: s.wallet != "",
			CreatedAt:       s.createdAt,
			LastActive:      s.LastActive(),
			GamesStarted:    s.gamesStarted,
		}
		if s.game != nil {
			stats := s.game.Stats()
			info.Stats = &stats
			info.Work = s.game.Player().Work
		}
		return info, nil
	})
}

func (s *Session) view() View {
	v := View{SessionID: s.id, Scene: s.scene}
	if s.game != nil {
		v.Game = gameView(s.game.Snapshot())
	} else {
		v.Menu = menuView(s.wallet)
	}
	return v
}
