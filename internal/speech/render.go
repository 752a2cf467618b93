package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/slide-narrator/internal/models"
)

// Render runs the engine exactly once for the whole text
func (r *implRenderer) Render(ctx context.Context, text string, mode models.RenderMode, outputPath string) (models.AudioArtifact, error) {
	if strings.TrimSpace(text) == "" {
		return models.AudioArtifact{}, fmt.Errorf("%w: empty narration", ErrSynthesis)
	}

	if _, err := r.executor.LookPath(r.cfg.Binary); err != nil {
		return models.AudioArtifact{}, fmt.Errorf("%w: %s: %w", ErrEngineUnavailable, r.cfg.Binary, err)
	}

	switch mode {
	case models.RenderDirect:
		return r.play(ctx, text)
	case models.RenderPersisted, "":
		return r.save(ctx, text, outputPath)
	default:
		return models.AudioArtifact{}, fmt.Errorf("%w: unknown render mode %q", ErrSynthesis, mode)
	}
}

func (r *implRenderer) play(ctx context.Context, text string) (models.AudioArtifact, error) {
	r.logger.Info(ctx, "Playing narration with %s (%d characters)", r.cfg.Binary, len([]rune(text)))

	args := r.expand(r.cfg.DirectArgs, "")
	if _, err := r.executor.ExecuteInput(ctx, strings.NewReader(text), r.cfg.Binary, args...); err != nil {
		return models.AudioArtifact{}, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}

	r.logger.Info(ctx, "Playback finished")
	return models.AudioArtifact{Mode: models.RenderDirect}, nil
}

// save synthesizes into a temp file next to outputPath and renames it into place,
// so a failed run never leaves a partial file at outputPath.
func (r *implRenderer) save(ctx context.Context, text, outputPath string) (models.AudioArtifact, error) {
	if outputPath == "" {
		return models.AudioArtifact{}, fmt.Errorf("%w: no output path", ErrOutput)
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return models.AudioArtifact{}, fmt.Errorf("%w: create output dir: %w", ErrOutput, err)
	}

	tmp, err := os.CreateTemp(dir, ".narration-*."+Extension(r.cfg))
	if err != nil {
		return models.AudioArtifact{}, fmt.Errorf("%w: create temp file: %w", ErrOutput, err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer r.removeTemp(ctx, tmpPath)

	r.logger.Info(ctx, "Synthesizing narration with %s (%d characters)", r.cfg.Binary, len([]rune(text)))

	args := r.expand(r.cfg.Args, tmpPath)
	if _, err := r.executor.ExecuteInput(ctx, strings.NewReader(text), r.cfg.Binary, args...); err != nil {
		return models.AudioArtifact{}, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}

	info, err := os.Stat(tmpPath)
	if err != nil {
		return models.AudioArtifact{}, fmt.Errorf("%w: %w", ErrSynthesis, err)
	}
	if info.Size() == 0 {
		return models.AudioArtifact{}, fmt.Errorf("%w: engine produced an empty file", ErrSynthesis)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		return models.AudioArtifact{}, fmt.Errorf("%w: %w", ErrOutput, err)
	}

	r.logger.Info(ctx, "Audio saved: %s (%d bytes)", outputPath, info.Size())
	return models.AudioArtifact{Mode: models.RenderPersisted, Path: outputPath, Size: info.Size()}, nil
}

func (r *implRenderer) expand(args []string, output string) []string {
	rep := strings.NewReplacer(
		"{voice}", r.cfg.Voice,
		"{rate}", strconv.Itoa(r.cfg.Rate),
		outputPlaceholder, output,
	)
	out := make([]string, 0, len(args))
	for _, a := range args {
		out = append(out, rep.Replace(a))
	}
	return out
}

func (r *implRenderer) removeTemp(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		r.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}
