package processor

// State is a pipeline run's position in its state machine. No state is revisited.
type State string

const (
	StateIdle                State = "idle"
	StateExtracting          State = "extracting"
	StateExtracted           State = "extracted"
	StateExtractionFailed    State = "extraction_failed"
	StateSummarizing         State = "summarizing"
	StateSummarized          State = "summarized"
	StateSummarizationFailed State = "summarization_failed"
	StateRendering           State = "rendering"
	StateDone                State = "done"
	StateRenderingFailed     State = "rendering_failed"
)

var transitions = map[State][]State{
	StateIdle:        {StateExtracting},
	StateExtracting:  {StateExtracted, StateExtractionFailed},
	StateExtracted:   {StateSummarizing},
	StateSummarizing: {StateSummarized, StateSummarizationFailed},
	StateSummarized:  {StateRendering, StateDone, StateRenderingFailed},
	StateRendering:   {StateDone, StateRenderingFailed},
}

// Terminal reports whether no further transition is possible
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

func (s State) canMoveTo(next State) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}
