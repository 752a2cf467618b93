package config

import (
	"fmt"
	"time"
)

type Config struct {
	Paths      PathsConfig      `yaml:"paths"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Narration  NarrationConfig  `yaml:"narration"`
	Speech     SpeechConfig     `yaml:"speech"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	Watch      WatchConfig      `yaml:"watch"`
	Web        WebConfig        `yaml:"web"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Watch  string `yaml:"watch"`
}

type SummarizerConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	Endpoint    string        `yaml:"endpoint"`
	BaseURL     string        `yaml:"base_url"`
	Template    string        `yaml:"template"`
	Timeout     time.Duration `yaml:"timeout"`
	Temperature *float64      `yaml:"temperature"`
	TopP        *float64      `yaml:"top_p"`
	// APIKey is only read from the environment
	APIKey string `yaml:"-"`
}

type NarrationConfig struct {
	StripHyphens bool `yaml:"strip_hyphens"`
}

type SpeechConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Mode       string   `yaml:"mode"`
	Binary     string   `yaml:"binary"`
	Voice      string   `yaml:"voice"`
	Rate       int      `yaml:"rate"`
	Format     string   `yaml:"format"`
	Args       []string `yaml:"args"`
	DirectArgs []string `yaml:"direct_args"`
}

type OutputConfig struct {
	SaveExtracted bool `yaml:"save_extracted"`
	SaveSummary   bool `yaml:"save_summary"`
	Docx          bool `yaml:"docx"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type WatchConfig struct {
	SettleDelay time.Duration `yaml:"settle_delay"`
}

type WebConfig struct {
	Addr           string   `yaml:"addr"`
	MaxUploadMB    int64    `yaml:"max_upload_mb"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Input:  "data/presentation.pptx",
			Output: "output",
			Watch:  "data/inbox",
		},
		Summarizer: SummarizerConfig{
			Provider: ProviderOllama,
			Model:    "llama3.1:8b",
			Endpoint: "http://localhost:11435/api/chat",
			Template: "presenter",
			Timeout:  10 * time.Minute,
		},
		Speech: SpeechConfig{
			Enabled:    true,
			Mode:       "persisted",
			Binary:     "espeak-ng",
			Voice:      "ko",
			Rate:       175,
			Format:     "wav",
			Args:       []string{"-v", "{voice}", "-s", "{rate}", "-w", "{output}", "--stdin"},
			DirectArgs: []string{"-v", "{voice}", "-s", "{rate}", "--stdin"},
		},
		Output: OutputConfig{
			SaveExtracted: true,
			SaveSummary:   true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Watch: WatchConfig{
			SettleDelay: 500 * time.Millisecond,
		},
		Web: WebConfig{
			Addr:        ":8501",
			MaxUploadMB: 50,
		},
	}
}

func (c *Config) Validate() error {
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Summarizer.Model == "" {
		return fmt.Errorf("summarizer.model is required")
	}
	if c.Summarizer.Timeout < 0 {
		return fmt.Errorf("summarizer.timeout must be positive")
	}

	switch c.Summarizer.Provider {
	case "":
		c.Summarizer.Provider = ProviderOllama
	case ProviderOllama, ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("summarizer.provider %q is not supported", c.Summarizer.Provider)
	}
	if c.Summarizer.Provider == ProviderOllama && c.Summarizer.Endpoint == "" {
		return fmt.Errorf("summarizer.endpoint is required for ollama")
	}
	if c.Summarizer.Provider != ProviderOllama && c.Summarizer.APIKey == "" {
		return fmt.Errorf("an API key is required for provider %s", c.Summarizer.Provider)
	}

	switch c.Speech.Mode {
	case "":
		c.Speech.Mode = "persisted"
	case "persisted", "direct":
	default:
		return fmt.Errorf("speech.mode %q is not supported", c.Speech.Mode)
	}
	if c.Speech.Enabled && c.Speech.Binary == "" {
		return fmt.Errorf("speech.binary is required when speech is enabled")
	}

	if c.Summarizer.Timeout == 0 {
		c.Summarizer.Timeout = 10 * time.Minute
	}
	if c.Summarizer.Template == "" {
		c.Summarizer.Template = "presenter"
	}
	if c.Speech.Rate == 0 {
		c.Speech.Rate = 175
	}
	if c.Speech.Format == "" {
		c.Speech.Format = "wav"
	}
	if c.Watch.SettleDelay == 0 {
		c.Watch.SettleDelay = 500 * time.Millisecond
	}
	if c.Web.Addr == "" {
		c.Web.Addr = ":8501"
	}
	if c.Web.MaxUploadMB == 0 {
		c.Web.MaxUploadMB = 50
	}

	return nil
}
