package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/slide-narrator/internal/logger"
)

type implWatcher struct {
	dir     string
	exts    map[string]bool
	settle  time.Duration
	handler EventHandler
	logger  logger.Logger
	watcher *fsnotify.Watcher
}

// Start blocks until ctx is cancelled, handling new decks sequentially
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Deck watcher started. Monitoring: %s", w.dir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(w.extensions(), ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Deck watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.isDeck(event.Name) {
				w.logger.Debug(ctx, "Ignoring file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New deck detected: %s", event.Name)

			// let the copy finish before reading
			select {
			case <-time.After(w.settle):
			case <-ctx.Done():
				return ctx.Err()
			}

			if err := w.handler(ctx, event.Name); err != nil {
				w.logger.Error(ctx, "Failed to narrate %s: %v", event.Name, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// isDeck skips hidden files and office lock files such as "~$deck.pptx"
func (w *implWatcher) isDeck(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}
	return w.exts[strings.ToLower(filepath.Ext(name))]
}

func (w *implWatcher) extensions() []string {
	out := make([]string, 0, len(w.exts))
	for e := range w.exts {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}
