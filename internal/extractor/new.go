package extractor

import (
	"github.com/nguyentantai21042004/slide-narrator/internal/logger"
)

type implExtractor struct {
	parsers map[string]DeckParser
	logger  logger.Logger
}

// New creates an Extractor that understands .pptx, decksh (.dsh) and deck markup (.xml)
func New(log logger.Logger) Extractor {
	return &implExtractor{
		parsers: map[string]DeckParser{
			".pptx": NewPPTXParser(),
			".dsh":  NewDeckshParser(),
			".xml":  NewDeckMarkupParser(),
		},
		logger: log,
	}
}

// SupportedExtensions lists the file extensions New can parse
func SupportedExtensions() []string {
	return []string{".pptx", ".dsh", ".xml"}
}
