package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBalance_Embedded(t *testing.T) {
	b, err := LoadBalance("")
	require.NoError(t, err)

	assert.Equal(t, Default(), b)
	assert.Equal(t, 4, b.QueueCapacity)
	assert.Equal(t, 5*time.Second, b.GenerationInterval)
	assert.Equal(t, 30, b.ProgressSteps())
	assert.Equal(t, 20, b.EnergyCost)
	assert.Equal(t, 20, b.MinEnergyToStart)
	assert.True(t, b.FreezeGenerationAtCapacity)
}

func TestLoadBalance_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("queue_capacity: 6\ntask_duration: 2s\nfreeze_generation_at_capacity: false\n"), 0644))

	b, err := LoadBalance(path)
	require.NoError(t, err)

	assert.Equal(t, 6, b.QueueCapacity)
	assert.Equal(t, 20, b.ProgressSteps())
	assert.False(t, b.FreezeGenerationAtCapacity)
	assert.Equal(t, 5*time.Second, b.GenerationInterval, "unset keys keep their defaults")
}

func TestLoadBalance_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadBalance(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read balance file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("queue_capacity: [1, 2"), 0644))
	_, err = LoadBalance(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse balance file")
}

func TestBalance_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *Balance)
		errMsg string
	}{
		{"zero capacity", func(b *Balance) { b.QueueCapacity = 0 }, "queue_capacity"},
		{"zero interval", func(b *Balance) { b.GenerationInterval = 0 }, "generation_interval"},
		{"zero step", func(b *Balance) { b.ProgressStepInterval = 0 }, "progress_step_interval"},
		{"partial step", func(b *Balance) { b.TaskDuration = 3050 * time.Millisecond }, "whole number"},
		{"duration shorter than step", func(b *Balance) { b.TaskDuration = 50 * time.Millisecond }, "shorter than one step"},
		{"threshold below cost", func(b *Balance) { b.MinEnergyToStart = 10 }, "min_energy_to_start"},
		{"negative cost", func(b *Balance) { b.EnergyCost = -1; b.MinEnergyToStart = 0 }, "energy_cost"},
		{"energy above max", func(b *Balance) { b.StartingEnergy = 101 }, "starting_energy"},
		{"negative work", func(b *Balance) { b.StartingWork = -1 }, "starting_work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Default()
			tt.mutate(&b)
			err := b.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), ErrMsgInvalidBalance)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	assert.NoError(t, Default().Validate())
	assert.NoError(t, Lossy().Validate())
}
