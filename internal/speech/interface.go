package speech

import (
	"context"

	"github.com/nguyentantai21042004/slide-narrator/internal/models"
)

// Renderer turns narration text into audio, either as a file or by playing it directly.
// outputPath is ignored in direct mode.
type Renderer interface {
	Render(ctx context.Context, text string, mode models.RenderMode, outputPath string) (models.AudioArtifact, error)
}
