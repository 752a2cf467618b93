package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads a yaml config file on top of the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load, but falls back to the defaults when the file does not exist.
// A .env file in the working directory is loaded first if present.
func LoadOrDefault(path string) (*Config, error) {
	_ = godotenv.Load()

	if env := os.Getenv("NARRATOR_CONFIG"); env != "" {
		path = env
	}

	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg = Default()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("NARRATOR_PROVIDER"); v != "" {
		c.Summarizer.Provider = v
	}
	if v := os.Getenv("NARRATOR_MODEL"); v != "" {
		c.Summarizer.Model = v
	}
	if v := os.Getenv("NARRATOR_ENDPOINT"); v != "" {
		c.Summarizer.Endpoint = v
	}
	if v := os.Getenv("NARRATOR_INPUT"); v != "" {
		c.Paths.Input = v
	}
	if v := os.Getenv("NARRATOR_OUTPUT_DIR"); v != "" {
		c.Paths.Output = v
	}

	switch c.Summarizer.Provider {
	case ProviderGemini:
		c.Summarizer.APIKey = os.Getenv("GEMINI_API_KEY")
	case ProviderOpenAI:
		c.Summarizer.APIKey = os.Getenv("OPENAI_API_KEY")
	}
}
