package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/slide-narrator/internal/config"
	"github.com/nguyentantai21042004/slide-narrator/internal/logger"
)

func ollamaConfig(endpoint string) config.SummarizerConfig {
	return config.SummarizerConfig{
		Provider: config.ProviderOllama,
		Model:    "llama3.1:8b",
		Endpoint: endpoint,
		Timeout:  5 * time.Second,
	}
}

func TestOllamaRequestShape(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"message":{"role":"assistant","content":"요약입니다"}}`)
	}))
	defer srv.Close()

	temp, topP := 0.9, 0.8
	cfg := ollamaConfig(srv.URL + "/api/chat")
	cfg.Temperature = &temp
	cfg.TopP = &topP

	s, err := New(cfg, logger.NewNop())
	require.NoError(t, err)

	text, err := s.Summarize(context.Background(), "prompt body")
	require.NoError(t, err)
	assert.Equal(t, "요약입니다", text)

	assert.Equal(t, "llama3.1:8b", got["model"])
	assert.Equal(t, false, got["stream"])
	assert.Equal(t, 0.9, got["temperature"])
	assert.Equal(t, 0.8, got["top_p"])
	assert.Equal(t, []any{map[string]any{"role": "user", "content": "prompt body"}}, got["messages"])
}

func TestOllamaOmitsSamplingByDefault(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		fmt.Fprint(w, `{"message":{"content":"ok"}}`)
	}))
	defer srv.Close()

	s, err := New(ollamaConfig(srv.URL), logger.NewNop())
	require.NoError(t, err)
	_, err = s.Summarize(context.Background(), "p")
	require.NoError(t, err)

	assert.NotContains(t, got, "temperature")
	assert.NotContains(t, got, "top_p")
	assert.Contains(t, got, "stream")
}

func TestOllamaErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, ErrTransport},
		{"not found", http.StatusNotFound, `model not found`, ErrTransport},
		{"not json", http.StatusOK, `<html>`, ErrResponseFormat},
		{"missing message", http.StatusOK, `{"done":true}`, ErrResponseFormat},
		{"missing content", http.StatusOK, `{"message":{"role":"assistant"}}`, ErrResponseFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			s, err := New(ollamaConfig(srv.URL), logger.NewNop())
			require.NoError(t, err)

			_, err = s.Summarize(context.Background(), "p")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOllamaStatusInMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model is loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s, _ := New(ollamaConfig(srv.URL), logger.NewNop())
	_, err := s.Summarize(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model is loading")
}

func TestOllamaUnreachable(t *testing.T) {
	// grab a free port and close it so nothing is listening
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	s, _ := New(ollamaConfig("http://"+addr+"/api/chat"), logger.NewNop())
	_, err = s.Summarize(context.Background(), "p")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestOllamaTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	cfg := ollamaConfig(srv.URL)
	cfg.Timeout = 50 * time.Millisecond
	s, _ := New(cfg, logger.NewNop())

	start := time.Now()
	_, err := s.Summarize(context.Background(), "p")
	assert.ErrorIs(t, err, ErrTransport)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestOllamaBodyReadFailures(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		handler http.HandlerFunc
	}{
		{
			name:    "stalls mid body",
			timeout: 100 * time.Millisecond,
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"message":{"content":"par`)
				w.(http.Flusher).Flush()
				<-r.Context().Done()
			},
		},
		{
			name:    "connection closed early",
			timeout: 5 * time.Second,
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Length", "200")
				fmt.Fprint(w, `{"message":{"content":"par`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			cfg := ollamaConfig(srv.URL)
			cfg.Timeout = tt.timeout
			s, _ := New(cfg, logger.NewNop())

			_, err := s.Summarize(context.Background(), "p")
			assert.ErrorIs(t, err, ErrTransport)
			assert.NotErrorIs(t, err, ErrResponseFormat)
		})
	}
}

func TestOpenAICompatible(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"llama3.1:8b",
"choices":[{"index":0,"message":{"role":"assistant","content":"compatible"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	s, err := New(config.SummarizerConfig{
		Provider: config.ProviderOpenAI,
		Model:    "llama3.1:8b",
		BaseURL:  srv.URL + "/v1/",
		APIKey:   "ollama",
		Timeout:  5 * time.Second,
	}, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "openai/llama3.1:8b", s.Name())

	text, err := s.Summarize(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "compatible", text)
	assert.Equal(t, "llama3.1:8b", got["model"])
}

func TestOpenAIStatusError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"boom"}}`)
	}))
	defer srv.Close()

	s, err := New(config.SummarizerConfig{
		Provider: config.ProviderOpenAI,
		Model:    "m",
		BaseURL:  srv.URL + "/v1/",
		APIKey:   "k",
		Timeout:  5 * time.Second,
	}, logger.NewNop())
	require.NoError(t, err)

	_, err = s.Summarize(context.Background(), "p")
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, int32(1), calls.Load(), "requests must not be retried")
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SummarizerConfig
	}{
		{"gemini without key", config.SummarizerConfig{Provider: config.ProviderGemini, Model: "gemini-2.5-flash"}},
		{"openai without key", config.SummarizerConfig{Provider: config.ProviderOpenAI, Model: "m"}},
		{"unknown provider", config.SummarizerConfig{Provider: "bard", Model: "m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, logger.NewNop())
			assert.Error(t, err)
		})
	}
}

func TestGeminiName(t *testing.T) {
	s, err := New(config.SummarizerConfig{Provider: config.ProviderGemini, Model: "gemini-2.5-flash", APIKey: "k"}, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "gemini/gemini-2.5-flash", s.Name())
}

func geminiServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-2.5-flash:generateContent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func geminiConfig(baseURL string) config.SummarizerConfig {
	return config.SummarizerConfig{
		Provider: config.ProviderGemini,
		Model:    "gemini-2.5-flash",
		BaseURL:  baseURL + "/",
		APIKey:   "k",
		Timeout:  5 * time.Second,
	}
}

func TestGeminiJoinsCandidateParts(t *testing.T) {
	srv := geminiServer(t, `{"candidates":[
{"content":{"role":"model","parts":[{"text":"이 발표는 "},{"text":"드론 실습입니다."}]}},
{"content":{"role":"model","parts":[{"text":"ignored"}]}}]}`)

	s, err := New(geminiConfig(srv.URL), logger.NewNop())
	require.NoError(t, err)

	text, err := s.Summarize(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "이 발표는 드론 실습입니다.", text)
}

func TestGeminiEmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no candidates", `{"candidates":[]}`},
		{"no content", `{"candidates":[{"finishReason":"SAFETY"}]}`},
		{"empty parts", `{"candidates":[{"content":{"role":"model","parts":[{"text":""}]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := geminiServer(t, tt.body)
			s, err := New(geminiConfig(srv.URL), logger.NewNop())
			require.NoError(t, err)

			_, err = s.Summarize(context.Background(), "p")
			assert.ErrorIs(t, err, ErrResponseFormat)
		})
	}
}
