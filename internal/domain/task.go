package domain

import (
	"time"

	"github.com/google/uuid"
)

// Skill is a player skill category. Templates may name one as a requirement.
type Skill string

const (
	SkillDevelopment Skill = "development"
	SkillDesign      Skill = "design"
	SkillMarketing   Skill = "marketing"
)

// Skills lists every valid skill in display order
var Skills = []Skill{SkillDevelopment, SkillDesign, SkillMarketing}

// Valid reports whether s is a known skill
func (s Skill) Valid() bool {
	switch s {
	case SkillDevelopment, SkillDesign, SkillMarketing:
		return true
	}
	return false
}

// TaskTemplate is an immutable catalog entry describing a kind of task.
// RequiredSkill and RequiredLevel are informational only; generation and
// starting ignore them.
type TaskTemplate struct {
	Title         string `json:"title"`
	Reward        int    `json:"reward"`
	RequiredSkill *Skill `json:"required_skill,omitempty"`
	RequiredLevel *int   `json:"required_level,omitempty"`
}

// AvailableTask is a task offered in the queue, not yet started
type AvailableTask struct {
	ID        uuid.UUID    `json:"id"`
	Template  TaskTemplate `json:"template"`
	OfferedAt time.Time    `json:"offered_at"`
}

// ActiveTask is a started task advancing towards completion.
// Progress is in [0, 100].
type ActiveTask struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Reward    int       `json:"reward"`
	Progress  float64   `json:"progress"`
	StartedAt time.Time `json:"started_at"`
}

// CompletedTask records the outcome of a completion
type CompletedTask struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Reward      int       `json:"reward"`
	WorkAfter   int       `json:"work_after"`
	TimerReset  bool      `json:"timer_reset"`
	CompletedAt time.Time `json:"completed_at"`
}
