package game

import (
	"github.com/google/uuid"

	"github.com/osse101/GibLife_Go/internal/domain"
)

// taskQueue is the bounded list of offered tasks, in offer order
type taskQueue struct {
	items    []domain.AvailableTask
	capacity int
}

func newTaskQueue(capacity int) *taskQueue {
	return &taskQueue{
		items:    make([]domain.AvailableTask, 0, capacity),
		capacity: capacity,
	}
}

func (q *taskQueue) len() int   { return len(q.items) }
func (q *taskQueue) full() bool { return len(q.items) >= q.capacity }

func (q *taskQueue) push(t domain.AvailableTask) bool {
	if q.full() {
		return false
	}
	q.items = append(q.items, t)
	return true
}

func (q *taskQueue) indexOf(id uuid.UUID) int {
	for i, t := range q.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// firstByTitle returns the oldest offered task with the given title
func (q *taskQueue) firstByTitle(title string) (domain.AvailableTask, bool) {
	for _, t := range q.items {
		if t.Template.Title == title {
			return t, true
		}
	}
	return domain.AvailableTask{}, false
}

func (q *taskQueue) removeAt(i int) domain.AvailableTask {
	t := q.items[i]
	q.items = append(q.items[:i], q.items[i+1:]...)
	return t
}

func (q *taskQueue) snapshot() []domain.AvailableTask {
	out := make([]domain.AvailableTask, len(q.items))
	copy(out, q.items)
	return out
}

func (q *taskQueue) clear() {
	q.items = q.items[:0]
}
