package web

type NarrateResponse struct {
	RunID          string  `json:"run_id"`
	Source         string  `json:"source"`
	Model          string  `json:"model"`
	Template       string  `json:"template"`
	State          string  `json:"state"`
	Narration      string  `json:"narration"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	AudioURL       string  `json:"audio_url,omitempty"`
	RenderError    string  `json:"render_error,omitempty"`
}

type ErrorResponse struct {
	RunID string `json:"run_id,omitempty"`
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
