package summarizer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nguyentantai21042004/slide-narrator/internal/config"
	"github.com/nguyentantai21042004/slide-narrator/internal/logger"
)

// openaiSummarizer talks to any OpenAI-compatible chat completions API,
// including Ollama's /v1 endpoint.
type openaiSummarizer struct {
	client      *openai.Client
	model       string
	temperature *float64
	topP        *float64
	timeout     time.Duration
	logger      logger.Logger
}

func newOpenAI(cfg config.SummarizerConfig, log logger.Logger) (*openaiSummarizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)

	return &openaiSummarizer{
		client:      &client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		timeout:     timeout,
		logger:      log,
	}, nil
}

func (s *openaiSummarizer) Name() string {
	return "openai/" + s.model
}

func (s *openaiSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if s.temperature != nil {
		params.Temperature = openai.Float(*s.temperature)
	}
	if s.topP != nil {
		params.TopP = openai.Float(*s.topP)
	}

	s.logger.Info(ctx, "Calling %s (timeout %s)", s.Name(), s.timeout)

	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: status %d: %w", ErrTransport, apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrResponseFormat)
	}
	return resp.Choices[0].Message.Content, nil
}
