package watcher

import "context"

// Watcher monitors a folder for new slide decks
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one detected deck. Calls never overlap.
type EventHandler func(ctx context.Context, filePath string) error
