package models

import "fmt"

// RenderMode selects how the narration is turned into audio.
type RenderMode string

const (
	// RenderPersisted writes an encoded audio file under the output directory
	RenderPersisted RenderMode = "persisted"
	// RenderDirect plays the audio without keeping a file
	RenderDirect RenderMode = "direct"
)

// ParseRenderMode converts a config value into a RenderMode
func ParseRenderMode(s string) (RenderMode, error) {
	switch RenderMode(s) {
	case RenderPersisted, RenderDirect:
		return RenderMode(s), nil
	case "":
		return RenderPersisted, nil
	default:
		return "", fmt.Errorf("unknown render mode %q", s)
	}
}

// AudioArtifact is the outcome of one speech rendering. Path is empty in direct mode.
type AudioArtifact struct {
	Mode RenderMode
	Path string
	Size int64
}

// SummaryResult is the tagged outcome of a summarization call.
// Exactly one of Text or Err is meaningful.
type SummaryResult struct {
	Text string
	Err  error
}

// OK reports whether the summarization succeeded
func (r SummaryResult) OK() bool {
	return r.Err == nil
}
