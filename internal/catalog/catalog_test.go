package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/validation"
)

func newTestLoader(t *testing.T) Loader {
	t.Helper()
	loader, err := NewLoader(validation.NewSchemaValidator())
	require.NoError(t, err)
	return loader
}

func writeCatalog(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func skill(s domain.Skill) *domain.Skill { return &s }
func level(l int) *int { return &l }

func TestBuild_EmbeddedDefault(t *testing.T) {
	c, data, err := Build(newTestLoader(t), "")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	assert.Equal(t, SourceEmbedded, c.Source())
	assert.Equal(t, 9, c.Len())

	var tmpl domain.TaskTemplate
	for _, candidate := range c.Templates() {
		if candidate.Title == "Debug Smart Contract" {
			tmpl = candidate
		}
	}
	assert.Equal(t, 150, tmpl.Reward)
	require.NotNil(t, tmpl.RequiredSkill)
	assert.Equal(t, domain.SkillDevelopment, *tmpl.RequiredSkill)
	require.NotNil(t, tmpl.RequiredLevel)
	assert.Equal(t, 2, *tmpl.RequiredLevel)
}

func TestBuild_FromFile(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), `{"version": "2.0", "tasks": [
		{"title": "Audit Token", "reward": 300},
		{"title": "Moderate Discord", "reward": 40, "required_skill": "marketing"}
	]}`)

	c, _, err := Build(newTestLoader(t), path)
	require.NoError(t, err)
	assert.Equal(t, "2.0", c.Version())
	assert.Equal(t, path, c.Source())
	assert.Equal(t, 2, c.Len())
}

func TestBuild_Errors(t *testing.T) {
	loader := newTestLoader(t)

	t.Run("file not found", func(t *testing.T) {
		_, _, err := Build(loader, "/nonexistent/tasks.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read task catalog file")
	})

	t.Run("schema violation", func(t *testing.T) {
		path := writeCatalog(t, t.TempDir(), `{"version": "1.0", "tasks": [{"title": "X", "reward": -1}]}`)
		_, _, err := Build(loader, path)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
	})

	t.Run("duplicate titles", func(t *testing.T) {
		path := writeCatalog(t, t.TempDir(), `{"version": "1.0", "tasks": [
			{"title": "Design Logo", "reward": 100},
			{"title": "Design Logo", "reward": 120}
		]}`)
		_, _, err := Build(loader, path)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
		assert.Contains(t, err.Error(), ErrMsgDuplicateTitle)
	})
}

func TestLoader_Load(t *testing.T) {
	loader := newTestLoader(t)
	path := writeCatalog(t, t.TempDir(), `{"version": "1.0", "tasks": [{"title": "Fix CSS Bug", "reward": 50}]}`)

	config, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", config.Version)
	require.Len(t, config.Tasks, 1)
	assert.Nil(t, config.Tasks[0].RequiredSkill)
	assert.Nil(t, config.Tasks[0].RequiredLevel)
}

func TestLoader_ValidateNil(t *testing.T) {
	err := newTestLoader(t).Validate(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgConfigNil)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name      string
		templates []domain.TaskTemplate
		errMsg    string
	}{
		{"empty", nil, ErrMsgNoTasksDefined},
		{"empty title", []domain.TaskTemplate{{Reward: 1}}, ErrMsgEmptyTitle},
		{"zero reward", []domain.TaskTemplate{{Title: "A"}}, ErrMsgNonPositive},
		{"bad skill", []domain.TaskTemplate{{Title: "A", Reward: 1, RequiredSkill: skill("cooking")}}, ErrMsgUnknownSkill},
		{"bad level", []domain.TaskTemplate{{Title: "A", Reward: 1, RequiredLevel: level(0)}}, ErrMsgLevelBelowOne},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("1.0", "test", tt.templates)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCatalog_TemplatesIsACopy(t *testing.T) {
	c, err := New("1.0", "test", []domain.TaskTemplate{{Title: "A", Reward: 1}})
	require.NoError(t, err)

	got := c.Templates()
	got[0].Reward = 999

	assert.Equal(t, 1, c.Templates()[0].Reward)
}

func TestCatalog_PickBounds(t *testing.T) {
	c, err := New("1.0", "test", []domain.TaskTemplate{
		{Title: "A", Reward: 1},
		{Title: "B", Reward: 2},
		{Title: "C", Reward: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, "A", c.Pick(func() float64 { return 0 }).Title)
	assert.Equal(t, "B", c.Pick(func() float64 { return 0.5 }).Title)
	assert.Equal(t, "C", c.Pick(func() float64 { return 0.9999999 }).Title)
	// Out-of-contract sources are clamped rather than panicking
	assert.Equal(t, "C", c.Pick(func() float64 { return 1 }).Title)
	assert.Equal(t, "A", c.Pick(func() float64 { return -0.1 }).Title)
}

func TestCatalog_PickIsUniform(t *testing.T) {
	c, _, err := Build(newTestLoader(t), "")
	require.NoError(t, err)

	const draws = 10000
	rng := rand.New(rand.NewSource(42))
	counts := make(map[string]int)
	for i := 0; i < draws; i++ {
		counts[c.Pick(rng.Float64).Title]++
	}

	require.Len(t, counts, c.Len())
	expected := float64(draws) / float64(c.Len())
	for title, n := range counts {
		assert.InDelta(t, expected, float64(n), expected*0.2, "title %s drawn %d times", title, n)
	}
}

func TestProvider_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, `{"version": "1.0", "tasks": [{"title": "A", "reward": 1}]}`)

	p, err := NewProvider(newTestLoader(t), path)
	require.NoError(t, err)
	first := p.Current()
	assert.Equal(t, 1, first.Len())

	t.Run("unchanged content keeps catalog", func(t *testing.T) {
		c, changed, err := p.Reload(context.Background())
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Same(t, first, c)
	})

	t.Run("invalid content keeps previous catalog", func(t *testing.T) {
		writeCatalog(t, dir, `{"version": "1.0", "tasks": []}`)
		c, changed, err := p.Reload(context.Background())
		require.Error(t, err)
		assert.False(t, changed)
		assert.Same(t, first, c)
		assert.Same(t, first, p.Current())
	})

	t.Run("new content swaps catalog", func(t *testing.T) {
		writeCatalog(t, dir, `{"version": "1.1", "tasks": [{"title": "A", "reward": 1}, {"title": "B", "reward": 2}]}`)
		c, changed, err := p.Reload(context.Background())
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, 2, c.Len())
		assert.Same(t, c, p.Current())
		assert.Equal(t, 1, first.Len(), "previous catalog must stay intact for running games")
	})
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeCatalog(t, dir, `{"version": "1.0", "tasks": [{"title": "A", "reward": 1}]}`)

	p, err := NewProvider(newTestLoader(t), path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, p) }()

	// Give the watcher a moment to register the directory
	time.Sleep(100 * time.Millisecond)
	writeCatalog(t, dir, `{"version": "1.1", "tasks": [{"title": "A", "reward": 1}, {"title": "B", "reward": 2}]}`)

	assert.Eventually(t, func() bool {
		return p.Current().Len() == 2
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalogs")
	require.NoError(t, os.Mkdir(dir, 0755))
	path := writeCatalog(t, dir, `{"version": "1.0", "tasks": [{"title": "A", "reward": 1}]}`)

	p, err := NewProvider(newTestLoader(t), path)
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	err = Watch(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("failed to watch %s", dir))
	assert.Equal(t, 1, p.Current().Len(), "previous catalog kept")
}

func TestWatch_EmbeddedIsNoop(t *testing.T) {
	p, err := NewProvider(newTestLoader(t), "")
	require.NoError(t, err)

	assert.NoError(t, Watch(context.Background(), p))
}
