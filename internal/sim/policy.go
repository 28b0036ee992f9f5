package sim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/GibLife_Go/internal/domain"
)

// Policy decides which offered task the auto-clicker starts next
type Policy interface {
	Name() string
	Choose(queue []domain.AvailableTask, player domain.PlayerState) (uuid.UUID, bool)
}

// Greedy starts the oldest offer
type Greedy struct{}

func (Greedy) Name() string { return PolicyGreedy }

func (Greedy) Choose(queue []domain.AvailableTask, _ domain.PlayerState) (uuid.UUID, bool) {
	if len(queue) == 0 {
		return uuid.Nil, false
	}
	return queue[0].ID, true
}

// Richest starts the best paying offer, oldest first on ties
type Richest struct{}

func (Richest) Name() string { return PolicyRichest }

func (Richest) Choose(queue []domain.AvailableTask, _ domain.PlayerState) (uuid.UUID, bool) {
	if len(queue) == 0 {
		return uuid.Nil, false
	}
	best := queue[0]
	for _, t := range queue[1:] {
		if t.Template.Reward > best.Template.Reward {
			best = t
		}
	}
	return best.ID, true
}

// Idle never clicks; it measures generation alone
type Idle struct{}

func (Idle) Name() string { return PolicyIdle }

func (Idle) Choose([]domain.AvailableTask, domain.PlayerState) (uuid.UUID, bool) {
	return uuid.Nil, false
}

var policies = map[string]Policy{
	PolicyGreedy:  Greedy{},
	PolicyRichest: Richest{},
	PolicyIdle:    Idle{},
}

// PolicyNames lists the registered policies in sorted order
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PolicyByName resolves a policy flag value
func PolicyByName(name string) (Policy, error) {
	p, ok := policies[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown policy %q (want one of %s)",
			domain.ErrInvalidInput, name, strings.Join(PolicyNames(), ", "))
	}
	return p, nil
}
