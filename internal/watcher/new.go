package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/slide-narrator/internal/logger"
)

// Options configures a Watcher
type Options struct {
	Dir        string
	Extensions []string
	// SettleDelay is how long to wait after a file appears before handling it
	SettleDelay time.Duration
}

// New creates a Watcher that hands every new deck in opts.Dir to handler, one at a time
func New(opts Options, handler EventHandler, log logger.Logger) (Watcher, error) {
	if len(opts.Extensions) == 0 {
		return nil, fmt.Errorf("at least one extension is required")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(opts.Dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = true
	}

	return &implWatcher{
		dir:     opts.Dir,
		exts:    exts,
		settle:  opts.SettleDelay,
		handler: handler,
		logger:  log,
		watcher: watcher,
	}, nil
}
