package catalog

import (
	"fmt"

	"github.com/osse101/GibLife_Go/internal/domain"
)

// Catalog is an immutable, validated list of task templates.
// It is safe to share between sessions.
type Catalog struct {
	version   string
	source    string
	templates []domain.TaskTemplate
}

// New validates templates and builds a Catalog from them
func New(version, source string, templates []domain.TaskTemplate) (*Catalog, error) {
	if err := validateTemplates(templates); err != nil {
		return nil, err
	}

	copied := make([]domain.TaskTemplate, len(templates))
	copy(copied, templates)

	return &Catalog{
		version:   version,
		source:    source,
		templates: copied,
	}, nil
}

// Version returns the catalog file version
func (c *Catalog) Version() string { return c.version }

// Source returns where the catalog was loaded from
func (c *Catalog) Source() string { return c.source }

// Len returns the number of templates
func (c *Catalog) Len() int { return len(c.templates) }

// Templates returns a copy of the templates in catalog order
func (c *Catalog) Templates() []domain.TaskTemplate {
	out := make([]domain.TaskTemplate, len(c.templates))
	copy(out, c.templates)
	return out
}

// Pick selects one template uniformly at random. rnd must return a value in [0, 1).
// Requirements are ignored.
func (c *Catalog) Pick(rnd func() float64) domain.TaskTemplate {
	idx := int(rnd() * float64(len(c.templates)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.templates) {
		idx = len(c.templates) - 1
	}
	return c.templates[idx]
}

func validateTemplates(templates []domain.TaskTemplate) error {
	if len(templates) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidCatalog, ErrMsgNoTasksDefined)
	}

	titles := make(map[string]bool, len(templates))
	for i, t := range templates {
		if err := validateTemplate(i, t, titles); err != nil {
			return err
		}
	}
	return nil
}

func validateTemplate(i int, t domain.TaskTemplate, titles map[string]bool) error {
	fail := func(msg string) error {
		return fmt.Errorf("%w: "+ErrMsgTaskIndexFormat, domain.ErrInvalidCatalog, i, t.Title, msg)
	}

	if t.Title == "" {
		return fail(ErrMsgEmptyTitle)
	}
	if titles[t.Title] {
		return fail(ErrMsgDuplicateTitle)
	}
	titles[t.Title] = true

	if t.Reward <= 0 {
		return fail(ErrMsgNonPositive)
	}
	if t.RequiredSkill != nil && !t.RequiredSkill.Valid() {
		return fail(ErrMsgUnknownSkill)
	}
	if t.RequiredLevel != nil && *t.RequiredLevel < 1 {
		return fail(ErrMsgLevelBelowOne)
	}
	return nil
}
