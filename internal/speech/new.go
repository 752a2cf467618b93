package speech

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/slide-narrator/internal/config"
	"github.com/nguyentantai21042004/slide-narrator/internal/logger"
	"github.com/nguyentantai21042004/slide-narrator/pkg/executor"
)

const outputPlaceholder = "{output}"

type implRenderer struct {
	cfg      config.SpeechConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Renderer that drives a command-line TTS engine. The narration
// text is written to the engine's stdin.
func New(cfg config.SpeechConfig, exec executor.Executor, log logger.Logger) (Renderer, error) {
	if cfg.Binary == "" {
		return nil, fmt.Errorf("speech binary is required")
	}
	hasOutput := false
	for _, a := range cfg.Args {
		if strings.Contains(a, outputPlaceholder) {
			hasOutput = true
		}
	}
	if !hasOutput {
		return nil, fmt.Errorf("speech args must contain %s", outputPlaceholder)
	}
	if cfg.Format == "" {
		cfg.Format = "wav"
	}

	return &implRenderer{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}, nil
}

// Extension returns the audio file extension produced by the engine, without the dot
func Extension(cfg config.SpeechConfig) string {
	if cfg.Format == "" {
		return "wav"
	}
	return strings.TrimPrefix(cfg.Format, ".")
}
