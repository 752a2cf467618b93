package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/slide-narrator/internal/config"
	"github.com/nguyentantai21042004/slide-narrator/internal/models"
	"github.com/nguyentantai21042004/slide-narrator/internal/narration"
	"github.com/nguyentantai21042004/slide-narrator/internal/summarizer"
)

// Result describes one pipeline run
type Result struct {
	Source   string
	State    State
	Model    string
	Template string

	Slides    models.SlideCollection
	Extracted string
	Summary   models.SummaryResult
	Narration string

	ExtractedPath string
	SummaryPath   string
	DocxPath      string
	Audio         models.AudioArtifact

	// RenderErr is set when the narration succeeded but saving or speaking it did not
	RenderErr error
	Elapsed   time.Duration
}

// Process orchestrates extraction, summarization and speech rendering
func (p *implProcessor) Process(ctx context.Context, src models.Source, mode models.RenderMode) (*Result, error) {
	startTime := time.Now()
	res := &Result{
		Source:   src.FileName(),
		State:    StateIdle,
		Model:    p.summarizer.Name(),
		Template: p.template.Name,
	}
	defer func() { res.Elapsed = time.Since(startTime) }()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting narration: %s", res.Source)
	p.logger.Info(ctx, "========================================")

	// Step 1: Extract slide text
	p.moveTo(ctx, res, StateExtracting)
	slides, text, err := p.extractor.Extract(ctx, src)
	if err != nil {
		p.moveTo(ctx, res, StateExtractionFailed)
		if cerr := interrupted(ctx, StateExtracting); cerr != nil {
			return res, cerr
		}
		return res, inputError(err)
	}
	res.Slides = slides
	res.Extracted = text
	p.moveTo(ctx, res, StateExtracted)

	// Step 2: Compile the prompt and summarize
	compiled := p.template.Compile(text)
	p.moveTo(ctx, res, StateSummarizing)
	summaryStart := time.Now()

	raw, err := p.summarizer.Summarize(ctx, compiled)
	res.Summary = models.SummaryResult{Text: raw, Err: err}
	if !res.Summary.OK() {
		p.moveTo(ctx, res, StateSummarizationFailed)
		if cerr := interrupted(ctx, StateSummarizing); cerr != nil {
			return res, cerr
		}
		return res, summarizeError(err, p.endpoint())
	}

	// Step 3: Strip markup the model emitted anyway
	res.Narration = narration.Clean(raw, narration.Options{StripHyphens: p.cfg.Narration.StripHyphens})
	if res.Narration == "" {
		p.moveTo(ctx, res, StateSummarizationFailed)
		return res, summarizeError(fmt.Errorf("%w: narration is empty after cleanup", summarizer.ErrResponseFormat), p.endpoint())
	}
	p.moveTo(ctx, res, StateSummarized)
	p.logger.Info(ctx, "Summarization took %s", time.Since(summaryStart).Round(time.Millisecond))

	// Step 4: Save text artifacts
	if err := p.saveArtifacts(ctx, res); err != nil {
		res.RenderErr = renderError(StateSummarized, err)
		p.moveTo(ctx, res, StateRenderingFailed)
		p.logger.Warn(ctx, "%v", res.RenderErr)
		return res, nil
	}

	// Step 5: Render speech
	if !p.cfg.Speech.Enabled {
		p.logger.Info(ctx, "Speech rendering disabled, skipping audio")
		p.moveTo(ctx, res, StateDone)
		p.logSummary(ctx, res, startTime)
		return res, nil
	}

	p.moveTo(ctx, res, StateRendering)
	audioPath := p.outputPath(res.Source, audioSuffix(p.cfg))
	art, err := p.renderer.Render(ctx, res.Narration, mode, audioPath)
	if err != nil {
		res.RenderErr = renderError(StateRendering, err)
		p.moveTo(ctx, res, StateRenderingFailed)
		p.logger.Warn(ctx, "%v", res.RenderErr)
		return res, nil
	}
	res.Audio = art
	p.moveTo(ctx, res, StateDone)

	p.logSummary(ctx, res, startTime)
	return res, nil
}

func (p *implProcessor) moveTo(ctx context.Context, res *Result, next State) {
	if !res.State.canMoveTo(next) {
		p.logger.Error(ctx, "Invalid state transition %s -> %s", res.State, next)
	}
	p.logger.Debug(ctx, "State %s -> %s", res.State, next)
	res.State = next
}

// endpoint describes where the summarizer sends requests, for operator hints
func (p *implProcessor) endpoint() string {
	switch p.cfg.Summarizer.Provider {
	case config.ProviderGemini:
		if p.cfg.Summarizer.BaseURL != "" {
			return p.cfg.Summarizer.BaseURL
		}
		return "the Gemini API"
	case config.ProviderOpenAI:
		if p.cfg.Summarizer.BaseURL != "" {
			return p.cfg.Summarizer.BaseURL
		}
		return "the OpenAI API"
	default:
		return p.cfg.Summarizer.Endpoint
	}
}

func (p *implProcessor) logSummary(ctx context.Context, res *Result, startTime time.Time) {
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Narration completed successfully!")
	if res.SummaryPath != "" {
		p.logger.Info(ctx, "Summary text: %s", res.SummaryPath)
	}
	if res.Audio.Path != "" {
		p.logger.Info(ctx, "Audio: %s", res.Audio.Path)
	}
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime).Round(time.Millisecond))
	p.logger.Info(ctx, "========================================")
}
