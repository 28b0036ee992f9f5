package game

import (
	"context"
	"testing"
	"time"

	"github.com/osse101/GibLife_Go/internal/config"
)

// Compare runs with benchstat:
//
//	go test -bench=. -count=10 ./internal/game > new.txt
//	benchstat old.txt new.txt

func BenchmarkTick_Idle(b *testing.B) {
	m, _ := newTestManager(b, config.Default())
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Tick(ctx, 50*time.Millisecond)
		if m.queue.full() {
			m.queue.clear()
		}
	}
}

func BenchmarkTick_FullLoad(b *testing.B) {
	bal := config.Default()
	bal.EnergyCost = 0
	bal.MinEnergyToStart = 0
	m, _ := newTestManager(b, bal)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if q := m.Queue(); len(q) > 0 {
			_, _ = m.StartTask(ctx, q[0].ID)
		}
		fillQueue(b, m)
		_ = m.Tick(ctx, 50*time.Millisecond)
	}
}

func BenchmarkSnapshot(b *testing.B) {
	m, _ := newTestManager(b, config.Default())
	fillQueue(b, m)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Snapshot()
	}
}
