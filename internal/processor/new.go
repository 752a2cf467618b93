package processor

import (
	"fmt"

	"github.com/nguyentantai21042004/slide-narrator/internal/config"
	"github.com/nguyentantai21042004/slide-narrator/internal/extractor"
	"github.com/nguyentantai21042004/slide-narrator/internal/logger"
	"github.com/nguyentantai21042004/slide-narrator/internal/prompt"
	"github.com/nguyentantai21042004/slide-narrator/internal/speech"
	"github.com/nguyentantai21042004/slide-narrator/internal/summarizer"
	"github.com/nguyentantai21042004/slide-narrator/pkg/executor"
)

type implProcessor struct {
	cfg        *config.Config
	template   prompt.Template
	extractor  extractor.Extractor
	summarizer summarizer.Summarizer
	renderer   speech.Renderer
	logger     logger.Logger
}

// New creates a Processor from its collaborators. renderer may be nil when speech is disabled.
func New(cfg *config.Config, ext extractor.Extractor, sum summarizer.Summarizer, renderer speech.Renderer, log logger.Logger) (Processor, error) {
	tpl, err := prompt.Lookup(cfg.Summarizer.Template)
	if err != nil {
		return nil, err
	}
	if cfg.Speech.Enabled && renderer == nil {
		return nil, fmt.Errorf("speech is enabled but no renderer was given")
	}

	return &implProcessor{
		cfg:        cfg,
		template:   tpl,
		extractor:  ext,
		summarizer: sum,
		renderer:   renderer,
		logger:     log,
	}, nil
}

// NewFromConfig wires the default extractor, the configured summarizer and the
// command-line speech engine.
func NewFromConfig(cfg *config.Config, log logger.Logger) (Processor, error) {
	sum, err := summarizer.New(cfg.Summarizer, log)
	if err != nil {
		return nil, fmt.Errorf("create summarizer: %w", err)
	}

	var renderer speech.Renderer
	if cfg.Speech.Enabled {
		renderer, err = speech.New(cfg.Speech, executor.New(), log)
		if err != nil {
			return nil, fmt.Errorf("create speech renderer: %w", err)
		}
	}

	return New(cfg, extractor.New(log), sum, renderer, log)
}
