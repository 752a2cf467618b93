package summarizer

import (
	"fmt"

	"github.com/nguyentantai21042004/slide-narrator/internal/config"
	"github.com/nguyentantai21042004/slide-narrator/internal/logger"
)

// New creates the Summarizer selected by cfg.Provider
func New(cfg config.SummarizerConfig, log logger.Logger) (Summarizer, error) {
	switch cfg.Provider {
	case config.ProviderOllama, "":
		return newOllama(cfg, log), nil
	case config.ProviderGemini:
		return newGemini(cfg, log)
	case config.ProviderOpenAI:
		return newOpenAI(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported summarizer provider %q", cfg.Provider)
	}
}
