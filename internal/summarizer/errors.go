package summarizer

import "errors"

var (
	// ErrTransport covers unreachable endpoints, timeouts and non-success statuses
	ErrTransport = errors.New("summarization endpoint request failed")
	// ErrResponseFormat means the endpoint answered but without a usable completion
	ErrResponseFormat = errors.New("unexpected summarization response")
)
