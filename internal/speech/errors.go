package speech

import "errors"

var (
	// ErrEngineUnavailable means the synthesis engine could not be started
	ErrEngineUnavailable = errors.New("speech engine unavailable")
	// ErrSynthesis means the engine ran but produced no usable audio
	ErrSynthesis = errors.New("speech synthesis failed")
	// ErrOutput means the audio file could not be written to its final path
	ErrOutput = errors.New("write audio file")
)
