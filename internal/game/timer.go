package game

import "time"

// generationTimer is the single countdown that both drives generation and
// feeds the display. 0 <= remaining <= total.
type generationTimer struct {
	remaining time.Duration
	total     time.Duration
}

func newGenerationTimer(total time.Duration) *generationTimer {
	return &generationTimer{remaining: total, total: total}
}

// advance decrements by dt, clamping at zero. It reports whether the
// countdown reached zero on this call.
func (t *generationTimer) advance(dt time.Duration) bool {
	if dt <= 0 || t.remaining == 0 {
		return t.remaining == 0
	}
	t.remaining -= dt
	if t.remaining < 0 {
		t.remaining = 0
	}
	return t.remaining == 0
}

func (t *generationTimer) reset() {
	t.remaining = t.total
}

// fraction is the elapsed share of the interval, in [0, 1]
func (t *generationTimer) fraction() float64 {
	return 1 - float64(t.remaining)/float64(t.total)
}
