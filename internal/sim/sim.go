// Package sim drives a single game headlessly with a simulated clock and an
// auto-clicker policy, for balance tuning.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/osse101/GibLife_Go/internal/catalog"
	"github.com/osse101/GibLife_Go/internal/clock"
	"github.com/osse101/GibLife_Go/internal/config"
	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/event"
	"github.com/osse101/GibLife_Go/internal/game"
	"github.com/osse101/GibLife_Go/internal/logger"
)

// Config describes one simulation run
type Config struct {
	Balance    config.Balance
	Catalog    *catalog.Catalog
	Policy     Policy
	Duration   time.Duration
	Tick       time.Duration
	ClickEvery time.Duration // zero clicks every tick
	Seed       uint64
	Trace      TraceWriter // optional event sink
}

// TraceWriter records game events
type TraceWriter interface {
	Write(e event.Event) error
}

// Result summarizes a finished run
type Result struct {
	Seed        uint64             `json:"seed"`
	Policy      string             `json:"policy"`
	Elapsed     time.Duration      `json:"elapsed"`
	Ticks       int                `json:"ticks"`
	Stats       game.Stats         `json:"stats"`
	Player      domain.PlayerState `json:"player"`
	TimeAtCap   time.Duration      `json:"time_at_capacity"`
	QueueAtEnd  int                `json:"queue_at_end"`
	ActiveAtEnd int                `json:"active_at_end"`
	Clicks      int                `json:"clicks"`
}

// WorkPerMinute is the average earn rate over the run
func (r Result) WorkPerMinute() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Stats.WorkEarned) / r.Elapsed.Minutes()
}

// Run plays one game to cfg.Duration. It stops early only when ctx is
// cancelled.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if cfg.Policy == nil {
		cfg.Policy = Greedy{}
	}
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}

	clk := clock.NewSimulatedClock(simulationEpoch)
	rnd := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	var presenter game.Presenter = game.NopPresenter{}
	if cfg.Trace != nil {
		presenter = newTracePresenter(ctx, cfg.Trace, clk, cfg.Balance.QueueCapacity)
	}

	m, err := game.NewManager(game.Options{
		Balance:   cfg.Balance,
		Catalog:   cfg.Catalog,
		Rand:      rnd.Float64,
		Clock:     clk,
		Presenter: presenter,
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to start game: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Debug(LogMsgRunStarted, "seed", cfg.Seed, "policy", cfg.Policy.Name(), "duration", cfg.Duration)

	res := Result{Seed: cfg.Seed, Policy: cfg.Policy.Name()}
	sinceClick := cfg.ClickEvery

	for res.Elapsed < cfg.Duration {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		// The clicker reads the energy bar like a player would
		if sinceClick >= cfg.ClickEvery && m.Player().Energy >= cfg.Balance.MinEnergyToStart {
			if id, ok := cfg.Policy.Choose(m.Queue(), m.Player()); ok {
				sinceClick = 0
				res.Clicks++
				if _, err := m.StartTask(ctx, id); err != nil && !errors.Is(err, domain.ErrInsufficientEnergy) {
					return res, err
				}
			}
		}

		if len(m.Queue()) >= cfg.Balance.QueueCapacity {
			res.TimeAtCap += cfg.Tick
		}
		if err := m.Tick(ctx, cfg.Tick); err != nil {
			return res, err
		}
		clk.Advance(cfg.Tick)
		res.Elapsed += cfg.Tick
		sinceClick += cfg.Tick
		res.Ticks++
	}

	res.Stats = m.Stats()
	res.Player = m.Player()
	res.QueueAtEnd = len(m.Queue())
	res.ActiveAtEnd = len(m.Active())
	m.Teardown(ctx)

	log.Debug(LogMsgRunFinished, "seed", cfg.Seed, "work", res.Player.Work, "generated", res.Stats.Generated)
	return res, nil
}
