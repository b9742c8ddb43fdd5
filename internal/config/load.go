package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to Default
// (plus environment overrides) otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := &Config{}
		cfg.ApplyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("validate config: %w", err)
		}
		return cfg, nil
	}
	return Load(path)
}

// ApplyEnv overrides secrets and the log level from the environment. API
// keys stay out of the YAML file this way.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Extractor.Gemini.APIKeys = splitList(v)
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Extractor.OpenAI.APIKey = v
	}
	if v := os.Getenv("DEEPSEEK_API_KEY"); v != "" {
		c.Extractor.OpenAI.APIKey = v
	}
	if v := os.Getenv("KLING_API_KEY"); v != "" {
		c.Generator.Kling.APIKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
