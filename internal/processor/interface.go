package processor

import (
	"context"

	"github.com/nguyentantai21042004/slide-narrator/internal/models"
)

// Processor runs the narration pipeline for one deck
type Processor interface {
	// Process extracts, summarizes and renders src. A rendering failure is reported
	// in Result.RenderErr with a nil error. Cancelling ctx returns an error wrapping
	// ctx.Err(); every other failure returns an *Error.
	Process(ctx context.Context, src models.Source, mode models.RenderMode) (*Result, error)
}
