package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/osse101/GibLife_Go/internal/logger"
)

// Watch reloads the provider whenever its catalog file changes. It blocks
// until ctx is cancelled. The parent directory is watched so editors that
// save by rename are picked up.
func Watch(ctx context.Context, p *Provider) error {
	if p.Path() == "" {
		return nil
	}

	log := logger.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf(ErrMsgWatcherCreateFailed, err)
	}
	defer watcher.Close()

	watchDir := filepath.Dir(p.Path())
	fileName := filepath.Base(p.Path())

	if err := watcher.Add(watchDir); err != nil {
		log.Error(LogMsgWatchFailed, "dir", watchDir, "error", err)
		return fmt.Errorf(ErrMsgWatchDirFailed, watchDir, err)
	}
	log.Info(LogMsgWatchingCatalog, "dir", watchDir, "file", fileName)

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != fileName {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}

			log.Debug(LogMsgWatchEvent, "op", event.Op.String(), "file", event.Name)

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(DebounceInterval, func() {
				_, _, _ = p.Reload(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn(LogMsgWatcherError, "error", err)
		}
	}
}
