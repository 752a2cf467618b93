package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/slide-narrator/internal/summarizer"
)

// Kind classifies pipeline failures
type Kind string

const (
	KindInput          Kind = "input"
	KindTransport      Kind = "transport"
	KindResponseFormat Kind = "response_format"
	KindRender         Kind = "render"
)

// Error is a failure of one pipeline stage with a hint for the operator
type Error struct {
	Kind  Kind
	Stage State
	Hint  string
	Err   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s failed (%s error): %v", stageName(e.Stage), e.Kind, e.Err)
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or "" when err is not a pipeline error
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

func stageName(s State) string {
	switch s {
	case StateExtracting:
		return "text extraction"
	case StateSummarizing:
		return "summarization"
	case StateRendering:
		return "speech rendering"
	case StateSummarized:
		return "saving outputs"
	default:
		return string(s)
	}
}

// interrupted wraps ctx.Err() when the caller stopped the run; it is not a pipeline Kind
func interrupted(ctx context.Context, stage State) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s interrupted: %w", stageName(stage), err)
	}
	return nil
}

func inputError(err error) *Error {
	return &Error{
		Kind:  KindInput,
		Stage: StateExtracting,
		Hint:  "Supply an existing, valid slide-deck file (.pptx, .dsh or deck .xml)",
		Err:   err,
	}
}

func summarizeError(err error, endpoint string) *Error {
	kind := KindTransport
	hint := fmt.Sprintf("Verify that the inference server is running and reachable at %s", endpoint)
	switch {
	case errors.Is(err, summarizer.ErrResponseFormat):
		kind = KindResponseFormat
		hint = "The endpoint answered in an unexpected format; check that it is a compatible chat API"
	case errors.Is(err, context.DeadlineExceeded):
		hint = fmt.Sprintf("The request timed out; verify the inference server at %s is running or raise summarizer.timeout", endpoint)
	}
	return &Error{Kind: kind, Stage: StateSummarizing, Hint: hint, Err: err}
}

func renderError(stage State, err error) *Error {
	return &Error{
		Kind:  KindRender,
		Stage: stage,
		Hint:  "The narration text is still available; check the speech engine and the output directory",
		Err:   err,
	}
}
