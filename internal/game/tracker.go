package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/osse101/GibLife_Go/internal/domain"
)

// activeTask is the tracker's private record for one started task
type activeTask struct {
	task domain.ActiveTask
	// step counts applied progress steps, progress is derived from it so the
	// final step lands on exactly 100
	step    int
	elapsed time.Duration
	// freedFullSlot is set when this task was started from a full queue
	freedFullSlot bool
}

// progressTracker advances started tasks in fixed steps. Tasks are kept in
// start order so completions happen deterministically within a tick.
type progressTracker struct {
	steps        int
	stepInterval time.Duration
	tasks        map[uuid.UUID]*activeTask
	order        []uuid.UUID
}

func newProgressTracker(steps int, stepInterval time.Duration) *progressTracker {
	return &progressTracker{
		steps:        steps,
		stepInterval: stepInterval,
		tasks:        make(map[uuid.UUID]*activeTask),
	}
}

func (t *progressTracker) add(a *activeTask) {
	t.tasks[a.task.ID] = a
	t.order = append(t.order, a.task.ID)
}

func (t *progressTracker) get(id uuid.UUID) (*activeTask, bool) {
	a, ok := t.tasks[id]
	return a, ok
}

func (t *progressTracker) remove(id uuid.UUID) (*activeTask, bool) {
	a, ok := t.tasks[id]
	if !ok {
		return nil, false
	}
	delete(t.tasks, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return a, true
}

func (t *progressTracker) len() int { return len(t.order) }

// advance adds dt to every task and applies whole steps. onStep is called
// once per task whose progress changed. It returns the IDs that reached 100,
// in start order.
func (t *progressTracker) advance(dt time.Duration, onStep func(domain.ActiveTask)) []uuid.UUID {
	var done []uuid.UUID
	for _, id := range t.order {
		a := t.tasks[id]
		if a.step >= t.steps {
			done = append(done, id)
			continue
		}
		a.elapsed += dt
		n := int(a.elapsed / t.stepInterval)
		if n == 0 {
			continue
		}
		a.elapsed -= time.Duration(n) * t.stepInterval
		a.step += n
		if a.step >= t.steps {
			a.step = t.steps
			a.elapsed = 0
		}
		a.task.Progress = progressAt(a.step, t.steps)
		onStep(a.task)
		if a.step >= t.steps {
			done = append(done, id)
		}
	}
	return done
}

func (t *progressTracker) snapshot() []domain.ActiveTask {
	out := make([]domain.ActiveTask, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.tasks[id].task)
	}
	return out
}

func (t *progressTracker) clear() {
	t.tasks = make(map[uuid.UUID]*activeTask)
	t.order = nil
}

func progressAt(step, steps int) float64 {
	if step >= steps {
		return domain.ProgressComplete
	}
	return float64(step) * domain.ProgressComplete / float64(steps)
}
