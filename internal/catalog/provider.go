package catalog

import (
	"context"
	"crypto/sha256"
	"sync"

	"github.com/osse101/GibLife_Go/internal/logger"
)

// Provider holds the current catalog and swaps it on reload.
// Games already running keep the catalog they started with.
type Provider struct {
	loader Loader
	path   string

	mu       sync.RWMutex
	current  *Catalog
	checksum [sha256.Size]byte
}

// NewProvider loads the initial catalog from path (or the embedded default)
func NewProvider(loader Loader, path string) (*Provider, error) {
	c, data, err := Build(loader, path)
	if err != nil {
		return nil, err
	}

	logger.FromContext(context.Background()).Info(LogMsgCatalogLoaded,
		"source", c.Source(),
		"version", c.Version(),
		"tasks", c.Len())

	return &Provider{
		loader:   loader,
		path:     path,
		current:  c,
		checksum: sha256.Sum256(data),
	}, nil
}

// Current returns the active catalog
func (p *Provider) Current() *Catalog {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Path returns the watched catalog file, empty for the embedded catalog
func (p *Provider) Path() string {
	return p.path
}

// Reload re-reads the catalog. On failure the previous catalog stays active.
// changed is false when the content is byte-identical to the current catalog.
func (p *Provider) Reload(ctx context.Context) (c *Catalog, changed bool, err error) {
	log := logger.FromContext(ctx)

	next, data, err := Build(p.loader, p.path)
	if err != nil {
		log.Warn(LogMsgCatalogReloadFailed, "source", p.path, "error", err)
		return p.Current(), false, err
	}

	sum := sha256.Sum256(data)

	p.mu.Lock()
	defer p.mu.Unlock()

	if sum == p.checksum {
		log.Debug(LogMsgCatalogUnchanged, "source", next.Source())
		return p.current, false, nil
	}

	p.current = next
	p.checksum = sum
	log.Info(LogMsgCatalogReloaded,
		"source", next.Source(),
		"version", next.Version(),
		"tasks", next.Len())

	return next, true, nil
}
