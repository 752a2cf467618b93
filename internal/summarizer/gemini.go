package summarizer

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/slide-narrator/internal/config"
	"github.com/nguyentantai21042004/slide-narrator/internal/logger"
)

type geminiSummarizer struct {
	apiKey      string
	baseURL     string
	model       string
	temperature *float32
	topP        *float32
	timeout     time.Duration
	logger      logger.Logger
}

func newGemini(cfg config.SummarizerConfig, log logger.Logger) (*geminiSummarizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini provider requires GEMINI_API_KEY")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &geminiSummarizer{
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: float32Ptr(cfg.Temperature),
		topP:        float32Ptr(cfg.TopP),
		timeout:     timeout,
		logger:      log,
	}, nil
}

func float32Ptr(v *float64) *float32 {
	if v == nil {
		return nil
	}
	f := float32(*v)
	return &f
}

func (s *geminiSummarizer) Name() string {
	return "gemini/" + s.model
}

// Summarize sends the prompt to Gemini and concatenates the text parts of the first candidate
func (s *geminiSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      s.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: s.timeout},
		HTTPOptions: genai.HTTPOptions{BaseURL: s.baseURL},
	})
	if err != nil {
		return "", fmt.Errorf("%w: create client: %w", ErrTransport, err)
	}

	s.logger.Info(ctx, "Calling %s (timeout %s)", s.Name(), s.timeout)

	result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: s.temperature,
		TopP:        s.topP,
	})
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %w", ErrTransport, err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text string
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				text += part.Text
			}
		}
		if text != "" {
			return text, nil
		}
	}

	return "", fmt.Errorf("%w: empty response from Gemini", ErrResponseFormat)
}
