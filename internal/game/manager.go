package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/GibLife_Go/internal/catalog"
	"github.com/osse101/GibLife_Go/internal/clock"
	"github.com/osse101/GibLife_Go/internal/config"
	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/logger"
)

// Options configures a Manager. Catalog is required; the rest default.
type Options struct {
	Balance   config.Balance
	Catalog   *catalog.Catalog
	Rand      func() float64
	Clock     clock.Clock
	Presenter Presenter
}

// Stats counts what happened during one game
type Stats struct {
	Generated  int `json:"generated"`
	Wasted     int `json:"wasted"`
	Started    int `json:"started"`
	Rejected   int `json:"rejected"`
	Completed  int `json:"completed"`
	WorkEarned int `json:"work_earned"`
}

// Snapshot is a point-in-time copy of the game state
type Snapshot struct {
	Player         domain.PlayerState     `json:"player"`
	Queue          []domain.AvailableTask `json:"queue"`
	Active         []domain.ActiveTask    `json:"active"`
	QueueCapacity  int                    `json:"queue_capacity"`
	QueueFull      bool                   `json:"queue_full"`
	TimerRemaining time.Duration          `json:"timer_remaining"`
	TimerTotal     time.Duration          `json:"timer_total"`
	TimerFraction  float64                `json:"timer_fraction"`
	Stats          Stats                  `json:"stats"`
	CatalogVersion string                 `json:"catalog_version"`
	SceneDestroyed bool                   `json:"scene_destroyed"`
}

// Manager owns the task queue, the generation countdown, the active tasks and
// the player stats of one game. It is not safe for concurrent use; the owner
// must serialize every call.
type Manager struct {
	balance   config.Balance
	catalog   *catalog.Catalog
	rnd       func() float64
	clock     clock.Clock
	presenter Presenter

	player    domain.PlayerState
	queue     *taskQueue
	timer     *generationTimer
	tracker   *progressTracker
	stats     Stats
	destroyed bool
}

// NewManager starts a fresh game with the starting stats from the balance
func NewManager(opts Options) (*Manager, error) {
	if opts.Catalog == nil || opts.Catalog.Len() == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	if err := opts.Balance.Validate(); err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = rand.Float64
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewRealClock()
	}
	if opts.Presenter == nil {
		opts.Presenter = NopPresenter{}
	}

	b := opts.Balance
	return &Manager{
		balance:   b,
		catalog:   opts.Catalog,
		rnd:       opts.Rand,
		clock:     opts.Clock,
		presenter: opts.Presenter,
		player:    domain.NewPlayerState(b.StartingWork, b.StartingFood, b.StartingEnergy),
		queue:     newTaskQueue(b.QueueCapacity),
		timer:     newGenerationTimer(b.GenerationInterval),
		tracker:   newProgressTracker(b.ProgressSteps(), b.ProgressStepInterval),
	}, nil
}

// TryGenerate offers one random template from the catalog. It returns
// domain.ErrQueueFull when the queue is at capacity, which callers treat as
// a no-op.
func (m *Manager) TryGenerate(ctx context.Context) (domain.AvailableTask, error) {
	if m.destroyed {
		return domain.AvailableTask{}, domain.ErrSceneDestroyed
	}
	if m.queue.full() {
		return domain.AvailableTask{}, domain.ErrQueueFull
	}

	task := domain.AvailableTask{
		ID:        uuid.New(),
		Template:  m.catalog.Pick(m.rnd),
		OfferedAt: m.clock.Now(),
	}
	m.queue.push(task)
	m.stats.Generated++

	logger.FromContext(ctx).Debug(LogMsgTaskGenerated,
		"task_id", task.ID, "title", task.Template.Title, "queue_len", m.queue.len())

	m.presenter.TaskGenerated(task)
	m.presenter.QueueChanged(m.queue.snapshot())
	return task, nil
}

// StartTask moves an offered task into the active set, spending energy
func (m *Manager) StartTask(ctx context.Context, id uuid.UUID) (domain.ActiveTask, error) {
	if m.destroyed {
		return domain.ActiveTask{}, domain.ErrSceneDestroyed
	}
	idx := m.queue.indexOf(id)
	if idx < 0 {
		return domain.ActiveTask{}, fmt.Errorf(ErrMsgTaskIDFmt, domain.ErrTaskNotFound, id)
	}
	return m.start(ctx, idx)
}

// StartTaskByTitle starts the oldest offered task with the given title
func (m *Manager) StartTaskByTitle(ctx context.Context, title string) (domain.ActiveTask, error) {
	if m.destroyed {
		return domain.ActiveTask{}, domain.ErrSceneDestroyed
	}
	task, ok := m.queue.firstByTitle(title)
	if !ok {
		return domain.ActiveTask{}, fmt.Errorf(ErrMsgTaskIDFmt, domain.ErrTaskNotFound, title)
	}
	return m.start(ctx, m.queue.indexOf(task.ID))
}

func (m *Manager) start(ctx context.Context, idx int) (domain.ActiveTask, error) {
	log := logger.FromContext(ctx)

	if m.player.Energy < m.balance.MinEnergyToStart {
		m.stats.Rejected++
		log.Info(LogMsgTaskRejected,
			"energy", m.player.Energy, "required", m.balance.MinEnergyToStart)
		m.presenter.InsufficientEnergy(m.player.Energy, m.balance.MinEnergyToStart)
		return domain.ActiveTask{}, fmt.Errorf(ErrMsgEnergyShortFmt,
			domain.ErrInsufficientEnergy, m.player.Energy, m.balance.MinEnergyToStart)
	}

	wasFull := m.queue.full()
	offered := m.queue.removeAt(idx)
	m.player.Energy -= m.balance.EnergyCost

	active := domain.ActiveTask{
		ID:        offered.ID,
		Title:     offered.Template.Title,
		Reward:    offered.Template.Reward,
		Progress:  0,
		StartedAt: m.clock.Now(),
	}
	m.tracker.add(&activeTask{task: active, freedFullSlot: wasFull})
	m.stats.Started++

	log.Info(LogMsgTaskStarted,
		"task_id", active.ID, "title", active.Title, "energy", m.player.Energy, "freed_full_slot", wasFull)

	m.presenter.QueueChanged(m.queue.snapshot())
	m.presenter.StatsChanged(m.player)
	m.presenter.TaskStarted(active)
	return active, nil
}

// CompleteTask pays out an active task. Completing an unknown or already
// completed task returns domain.ErrTaskNotFound and changes nothing.
func (m *Manager) CompleteTask(ctx context.Context, id uuid.UUID) (domain.CompletedTask, error) {
	log := logger.FromContext(ctx)
	if m.destroyed {
		return domain.CompletedTask{}, domain.ErrSceneDestroyed
	}

	a, ok := m.tracker.remove(id)
	if !ok {
		log.Warn(LogMsgCompleteUnknownTask, "task_id", id)
		return domain.CompletedTask{}, fmt.Errorf(ErrMsgTaskIDFmt, domain.ErrTaskNotFound, id)
	}

	m.player.Work += a.task.Reward
	m.stats.Completed++
	m.stats.WorkEarned += a.task.Reward

	if a.freedFullSlot {
		m.timer.reset()
		log.Debug(LogMsgTimerReset, "task_id", id)
	}

	done := domain.CompletedTask{
		ID:          a.task.ID,
		Title:       a.task.Title,
		Reward:      a.task.Reward,
		WorkAfter:   m.player.Work,
		TimerReset:  a.freedFullSlot,
		CompletedAt: m.clock.Now(),
	}
	log.Info(LogMsgTaskCompleted, "task_id", id, "title", done.Title, "work", done.WorkAfter)

	m.presenter.StatsChanged(m.player)
	m.presenter.TaskCompleted(done)
	return done, nil
}

// Tick advances the game by dt. The generation countdown runs first, then
// active task progress, so a completion that resets the countdown is not
// undone in the same tick.
func (m *Manager) Tick(ctx context.Context, dt time.Duration) error {
	if m.destroyed {
		return domain.ErrSceneDestroyed
	}
	if dt < 0 {
		dt = 0
	}

	m.tickGeneration(ctx, dt)

	for _, id := range m.tracker.advance(dt, m.presenter.TaskProgress) {
		if _, err := m.CompleteTask(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) tickGeneration(ctx context.Context, dt time.Duration) {
	full := m.queue.full()
	if full {
		m.presenter.MaxTasksReached()
		if m.balance.FreezeGenerationAtCapacity {
			return
		}
	}

	if m.timer.advance(dt) {
		if _, err := m.TryGenerate(ctx); err != nil {
			m.stats.Wasted++
			logger.FromContext(ctx).Debug(LogMsgGenerationWasted, "queue_len", m.queue.len())
		}
		m.timer.reset()
	}

	if !full {
		m.presenter.Countdown(m.timer.fraction(), m.timer.remaining)
	}
}

// Teardown destroys the game scene. Active tasks are dropped without payout
// and every later call returns domain.ErrSceneDestroyed.
func (m *Manager) Teardown(ctx context.Context) {
	if m.destroyed {
		return
	}
	m.destroyed = true
	m.tracker.clear()
	m.queue.clear()
	logger.FromContext(ctx).Debug(LogMsgSceneTornDown, "work", m.player.Work)
}

// Destroyed reports whether Teardown has run
func (m *Manager) Destroyed() bool { return m.destroyed }

// Player returns a copy of the player stats
func (m *Manager) Player() domain.PlayerState { return m.player }

// Queue returns the offered tasks in offer order
func (m *Manager) Queue() []domain.AvailableTask { return m.queue.snapshot() }

// Active returns the started tasks in start order
func (m *Manager) Active() []domain.ActiveTask { return m.tracker.snapshot() }

// Stats returns the counters for this game
func (m *Manager) Stats() Stats { return m.stats }

// Snapshot copies the whole game state
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{
		Player:         m.player,
		Queue:          m.queue.snapshot(),
		Active:         m.tracker.snapshot(),
		QueueCapacity:  m.queue.capacity,
		QueueFull:      m.queue.full(),
		TimerRemaining: m.timer.remaining,
		TimerTotal:     m.timer.total,
		TimerFraction:  m.timer.fraction(),
		Stats:          m.stats,
		CatalogVersion: m.catalog.Version(),
		SceneDestroyed: m.destroyed,
	}
}
