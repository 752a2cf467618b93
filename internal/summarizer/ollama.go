package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/slide-narrator/internal/config"
	"github.com/nguyentantai21042004/slide-narrator/internal/logger"
)

const maxErrorBody = 512

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature *float64      `json:"temperature,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
}

type chatResponse struct {
	Message *struct {
		Content *string `json:"content"`
	} `json:"message"`
}

type ollamaSummarizer struct {
	endpoint    string
	model       string
	temperature *float64
	topP        *float64
	timeout     time.Duration
	client      *http.Client
	logger      logger.Logger
}

func newOllama(cfg config.SummarizerConfig, log logger.Logger) *ollamaSummarizer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &ollamaSummarizer{
		endpoint:    cfg.Endpoint,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		timeout:     timeout,
		client:      &http.Client{Timeout: timeout},
		logger:      log,
	}
}

func (s *ollamaSummarizer) Name() string {
	return "ollama/" + s.model
}

// Summarize posts a single non-streamed chat request and waits for the full completion
func (s *ollamaSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payload, err := json.Marshal(chatRequest{
		Model:       s.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Stream:      false,
		Temperature: s.temperature,
		TopP:        s.topP,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	s.logger.Info(ctx, "Calling %s at %s (timeout %s)", s.Name(), s.endpoint, s.timeout)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("%w: status %s: %s", ErrTransport, resp.Status, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		if isReadFailure(err) {
			return "", fmt.Errorf("%w: read body: %w", ErrTransport, err)
		}
		return "", fmt.Errorf("%w: decode body: %w", ErrResponseFormat, err)
	}
	if parsed.Message == nil || parsed.Message.Content == nil {
		return "", fmt.Errorf("%w: missing message.content", ErrResponseFormat)
	}

	return *parsed.Message.Content, nil
}

// isReadFailure reports whether a body decode failed because the connection did,
// as opposed to the server sending something that is not the expected JSON.
func isReadFailure(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
