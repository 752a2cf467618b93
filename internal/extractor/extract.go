package extractor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/slide-narrator/internal/models"
)

const markerFormat = "========== 슬라이드 %d =========="

// Marker returns the slide-boundary marker for a 1-based slide index
func Marker(index int) string {
	return fmt.Sprintf(markerFormat, index)
}

// Extract reads the source, parses it with the parser matching its extension and
// returns the slides together with the joined text.
func (e *implExtractor) Extract(ctx context.Context, src models.Source) (models.SlideCollection, string, error) {
	if err := ctx.Err(); err != nil {
		return models.SlideCollection{}, "", err
	}

	data := src.Data
	if data == nil {
		if src.Path == "" {
			return models.SlideCollection{}, "", fmt.Errorf("%w: no path given", ErrFileNotFound)
		}
		b, err := os.ReadFile(src.Path)
		if errors.Is(err, fs.ErrNotExist) {
			return models.SlideCollection{}, "", fmt.Errorf("%w: '%s'", ErrFileNotFound, src.Path)
		}
		if err != nil {
			return models.SlideCollection{}, "", fmt.Errorf("read deck: %w", err)
		}
		data = b
	}

	name := src.FileName()
	ext := strings.ToLower(filepath.Ext(name))
	parser, ok := e.parsers[ext]
	if !ok {
		return models.SlideCollection{}, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	e.logger.Info(ctx, "Extracting text from %s (%d bytes)", name, len(data))

	slides, err := parser.Parse(data)
	if err != nil {
		return models.SlideCollection{}, "", fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	if slides.Len() == 0 {
		return models.SlideCollection{}, "", ErrEmptyDeck
	}

	text := Join(slides)
	e.logger.Info(ctx, "Extracted %d slides, %d characters", slides.Len(), len([]rune(text)))
	return slides, text, nil
}

// Join renders slides as one string: a marker line before each slide, fragments
// separated by newlines.
func Join(c models.SlideCollection) string {
	parts := make([]string, 0, 2*len(c.Slides))
	for _, s := range c.Slides {
		parts = append(parts, "\n"+Marker(s.Index)+"\n")
		parts = append(parts, strings.Join(s.Fragments, "\n"))
	}
	return strings.Join(parts, "\n")
}
