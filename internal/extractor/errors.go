package extractor

import "errors"

var (
	ErrFileNotFound      = errors.New("deck file not found")
	ErrMalformedDocument = errors.New("malformed slide-deck document")
	ErrUnsupportedFormat = errors.New("unsupported deck format")
	ErrEmptyDeck         = errors.New("deck contains no slides")
)
