package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/osse101/GibLife_Go/configs"
	"github.com/osse101/GibLife_Go/internal/domain"
)

// Balance holds gameplay balance configuration
type Balance struct {
	// Task queue and generation
	QueueCapacity      int           `yaml:"queue_capacity" json:"queue_capacity"`
	GenerationInterval time.Duration `yaml:"generation_interval" json:"generation_interval"`
	// When true the countdown pauses while the queue is full. When false it
	// keeps running and each expiry at capacity is wasted.
	FreezeGenerationAtCapacity bool `yaml:"freeze_generation_at_capacity" json:"freeze_generation_at_capacity"`

	// Task execution
	TaskDuration         time.Duration `yaml:"task_duration" json:"task_duration"`
	ProgressStepInterval time.Duration `yaml:"progress_step_interval" json:"progress_step_interval"`

	// Energy
	EnergyCost       int `yaml:"energy_cost" json:"energy_cost"`
	MinEnergyToStart int `yaml:"min_energy_to_start" json:"min_energy_to_start"`

	// Starting stats
	StartingWork   int `yaml:"starting_work" json:"starting_work"`
	StartingFood   int `yaml:"starting_food" json:"starting_food"`
	StartingEnergy int `yaml:"starting_energy" json:"starting_energy"`
}

// Default returns the default balance configuration
func Default() Balance {
	return Balance{
		QueueCapacity:              domain.DefaultQueueCapacity,
		GenerationInterval:         domain.DefaultGenerationInterval,
		FreezeGenerationAtCapacity: true,
		TaskDuration:               domain.DefaultTaskDuration,
		ProgressStepInterval:       domain.DefaultProgressStepInterval,
		EnergyCost:                 domain.DefaultEnergyCost,
		MinEnergyToStart:           domain.DefaultMinEnergyToStart,
		StartingWork:               domain.DefaultStartingWork,
		StartingFood:               domain.DefaultStartingFood,
		StartingEnergy:             domain.DefaultStartingEnergy,
	}
}

// Lossy returns the default balance with the countdown running while the
// queue is full, so expiries at capacity are wasted
func Lossy() Balance {
	cfg := Default()
	cfg.FreezeGenerationAtCapacity = false
	return cfg
}

// LoadBalance reads a YAML balance file over the defaults. An empty path
// selects the embedded balance file.
func LoadBalance(path string) (Balance, error) {
	data := configs.Balance
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return Balance{}, fmt.Errorf(ErrMsgReadBalanceFailed, err)
		}
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Balance{}, fmt.Errorf(ErrMsgParseBalanceFailed, err)
	}

	if err := cfg.Validate(); err != nil {
		return Balance{}, err
	}
	return cfg, nil
}

// Validate checks the balance for values the game loop cannot run with
func (b Balance) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%s: %s", ErrMsgInvalidBalance, fmt.Sprintf(format, args...))
	}

	switch {
	case b.QueueCapacity < 1:
		return invalid("queue_capacity must be at least 1, got %d", b.QueueCapacity)
	case b.GenerationInterval <= 0:
		return invalid("generation_interval must be positive, got %s", b.GenerationInterval)
	case b.ProgressStepInterval <= 0:
		return invalid("progress_step_interval must be positive, got %s", b.ProgressStepInterval)
	case b.TaskDuration < b.ProgressStepInterval:
		return invalid("task_duration %s is shorter than one step", b.TaskDuration)
	case b.TaskDuration%b.ProgressStepInterval != 0:
		return invalid("task_duration %s is not a whole number of %s steps", b.TaskDuration, b.ProgressStepInterval)
	case b.EnergyCost < 0:
		return invalid("energy_cost must not be negative, got %d", b.EnergyCost)
	case b.MinEnergyToStart < b.EnergyCost:
		return invalid("min_energy_to_start %d is below energy_cost %d", b.MinEnergyToStart, b.EnergyCost)
	case b.StartingWork < 0:
		return invalid("starting_work must not be negative, got %d", b.StartingWork)
	case b.StartingFood < 0 || b.StartingFood > domain.MaxStat:
		return invalid("starting_food must be in [0, %d], got %d", domain.MaxStat, b.StartingFood)
	case b.StartingEnergy < 0 || b.StartingEnergy > domain.MaxStat:
		return invalid("starting_energy must be in [0, %d], got %d", domain.MaxStat, b.StartingEnergy)
	}
	return nil
}

// ProgressSteps is the number of whole steps a task takes to complete
func (b Balance) ProgressSteps() int {
	return int(b.TaskDuration / b.ProgressStepInterval)
}
