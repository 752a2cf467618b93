package extractor

import (
	"context"

	"github.com/nguyentantai21042004/slide-narrator/internal/models"
)

// Extractor turns a slide-deck source into slides and the slide-delimited text blob
type Extractor interface {
	Extract(ctx context.Context, src models.Source) (models.SlideCollection, string, error)
}

// DeckParser parses the raw bytes of one deck format
type DeckParser interface {
	Parse(data []byte) (models.SlideCollection, error)
}
