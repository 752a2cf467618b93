package executor

import (
	"context"
	"io"
)

// Executor runs external programs
type Executor interface {
	// Execute runs name with args and returns its stdout
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteInput runs name with args, feeding stdin from the given reader
	ExecuteInput(ctx context.Context, stdin io.Reader, name string, args ...string) (string, error)
	// LookPath resolves a program name the way Execute would
	LookPath(name string) (string, error)
}
