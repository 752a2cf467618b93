package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/slide-narrator/internal/config"
	"github.com/nguyentantai21042004/slide-narrator/internal/report"
	"github.com/nguyentantai21042004/slide-narrator/internal/speech"
)

const (
	suffixExtracted = "_full.txt"
	suffixSummary   = "_summary.txt"
	suffixDocx      = "_summary.docx"
)

func audioSuffix(cfg *config.Config) string {
	return "_summary." + speech.Extension(cfg.Speech)
}

// BaseName strips directories and the extension from a source file name
func BaseName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (p *implProcessor) outputPath(source, suffix string) string {
	return filepath.Join(p.cfg.Paths.Output, BaseName(source)+suffix)
}

// saveArtifacts writes the optional text and docx outputs into the output folder
func (p *implProcessor) saveArtifacts(ctx context.Context, res *Result) error {
	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if p.cfg.Output.SaveExtracted {
		path := p.outputPath(res.Source, suffixExtracted)
		if err := writeText(path, res.Extracted); err != nil {
			return err
		}
		res.ExtractedPath = path
		p.logger.Info(ctx, "Extracted text saved: %s", path)
	}

	if p.cfg.Output.SaveSummary {
		path := p.outputPath(res.Source, suffixSummary)
		if err := writeText(path, res.Narration); err != nil {
			return err
		}
		res.SummaryPath = path
		p.logger.Info(ctx, "Summary saved: %s", path)
	}

	if p.cfg.Output.Docx {
		path := p.outputPath(res.Source, suffixDocx)
		title := res.Slides.Title
		if title == "" {
			title = BaseName(res.Source)
		}
		if err := report.WriteDocx(title, res.Narration, res.Slides, path); err != nil {
			return fmt.Errorf("write docx %s: %w", path, err)
		}
		res.DocxPath = path
		p.logger.Info(ctx, "Docx report saved: %s", path)
	}

	return nil
}

// writeText stores content as UTF-8 without any transformation
func writeText(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
