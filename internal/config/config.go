package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/callmepikachu/AniHub-Demo/internal/models"
)

type Config struct {
	Extractor   ExtractorConfig   `yaml:"extractor"`
	Generator   GeneratorConfig   `yaml:"generator"`
	Defaults    DefaultsConfig    `yaml:"defaults"`
	Paths       PathsConfig       `yaml:"paths"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Server      ServerConfig      `yaml:"server"`
}

// Extractor providers.
const (
	ProviderRules  = "rules"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type ExtractorConfig struct {
	Provider string       `yaml:"provider"`
	Gemini   GeminiConfig `yaml:"gemini"`
	OpenAI   OpenAIConfig `yaml:"openai"`
	Keywords []string     `yaml:"keywords"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
	BaseURL string   `yaml:"base_url"`
}

// OpenAIConfig targets any OpenAI-compatible chat completions endpoint,
// DeepSeek included.
type OpenAIConfig struct {
	APIKey           string  `yaml:"api_key"`
	BaseURL          string  `yaml:"base_url"`
	Model            string  `yaml:"model"`
	Temperature      float64 `yaml:"temperature"`
	MaxTokens        int64   `yaml:"max_tokens"`
	StructuredOutput bool    `yaml:"structured_output"`
}

type GeneratorConfig struct {
	Kling KlingConfig   `yaml:"kling"`
	Manim StandInConfig `yaml:"manim"`
	Mock  StandInConfig `yaml:"mock"`
}

type KlingConfig struct {
	APIKey         string        `yaml:"api_key"`
	APIURL         string        `yaml:"api_url"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	Timeout        time.Duration `yaml:"timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	RateLimit      float64       `yaml:"rate_limit"`
	FallbackToMock bool          `yaml:"fallback_to_mock"`
}

// StandInConfig configures a local placeholder backend.
type StandInConfig struct {
	Delay     time.Duration `yaml:"delay"`
	Extension string        `yaml:"extension"`
}

type DefaultsConfig struct {
	Duration   int    `yaml:"duration"`
	Style      string `yaml:"style"`
	Type       string `yaml:"type"`
	Resolution string `yaml:"resolution"`
	FPS        int    `yaml:"fps"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
	Title  string `yaml:"title"`
	Docx   bool   `yaml:"docx"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Dir    string `yaml:"dir"`
}

type PerformanceConfig struct {
	MaxConcurrent     int `yaml:"max_concurrent"`
	GenerationWorkers int `yaml:"generation_workers"`
}

type ServerConfig struct {
	Port         string `yaml:"port"`
	DataDir      string `yaml:"data_dir"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// DefaultKeywords mark sentences that describe something worth filming.
var DefaultKeywords = []string{
	"站在", "走向", "搬运", "倒入", "发生", "产生", "销毁",
	"建造", "实验", "反应", "展示", "演示", "操作",
}

// Default returns a validated configuration that runs fully offline.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

func (c *Config) Validate() error {
	c.Extractor.Provider = strings.ToLower(strings.TrimSpace(c.Extractor.Provider))
	switch c.Extractor.Provider {
	case "":
		c.Extractor.Provider = ProviderRules
	case ProviderRules, ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("extractor.provider %q is not one of rules, gemini, openai", c.Extractor.Provider)
	}

	if c.Output.Format == "" {
		c.Output.Format = string(models.FormatHTML)
	}
	if _, err := models.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}

	if c.Defaults.Duration < 0 || c.Defaults.FPS < 0 {
		return fmt.Errorf("defaults.duration and defaults.fps must be positive")
	}
	if c.Generator.Kling.RateLimit < 0 {
		return fmt.Errorf("generator.kling.rate_limit must not be negative")
	}

	c.Generator.Kling.APIKey = scrubPlaceholder(c.Generator.Kling.APIKey)
	c.Extractor.OpenAI.APIKey = scrubPlaceholder(c.Extractor.OpenAI.APIKey)
	keys := c.Extractor.Gemini.APIKeys[:0]
	for _, k := range c.Extractor.Gemini.APIKeys {
		if k = scrubPlaceholder(k); k != "" {
			keys = append(keys, k)
		}
	}
	c.Extractor.Gemini.APIKeys = keys

	if c.Extractor.Gemini.Model == "" {
		c.Extractor.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Extractor.OpenAI.BaseURL == "" {
		c.Extractor.OpenAI.BaseURL = "https://api.deepseek.com/v1"
	}
	if c.Extractor.OpenAI.Model == "" {
		c.Extractor.OpenAI.Model = "deepseek-chat"
	}
	if c.Extractor.OpenAI.Temperature == 0 {
		c.Extractor.OpenAI.Temperature = 0.7
	}
	if c.Extractor.OpenAI.MaxTokens == 0 {
		c.Extractor.OpenAI.MaxTokens = 2000
	}
	if len(c.Extractor.Keywords) == 0 {
		c.Extractor.Keywords = append([]string(nil), DefaultKeywords...)
	}

	if c.Generator.Kling.APIURL == "" {
		c.Generator.Kling.APIURL = "https://api.kling.ai/v1/videos/generate"
	}
	if c.Generator.Kling.PollInterval == 0 {
		c.Generator.Kling.PollInterval = 10 * time.Second
	}
	if c.Generator.Kling.Timeout == 0 {
		c.Generator.Kling.Timeout = 300 * time.Second
	}
	if c.Generator.Kling.RequestTimeout == 0 {
		c.Generator.Kling.RequestTimeout = time.Minute
	}
	if c.Generator.Kling.RateLimit == 0 {
		c.Generator.Kling.RateLimit = 2
	}
	if c.Generator.Manim.Delay == 0 {
		c.Generator.Manim.Delay = 2 * time.Second
	}
	if c.Generator.Manim.Extension == "" {
		c.Generator.Manim.Extension = "mp4"
	}
	if c.Generator.Mock.Delay == 0 {
		c.Generator.Mock.Delay = time.Second
	}
	if c.Generator.Mock.Extension == "" {
		c.Generator.Mock.Extension = "mp4"
	}

	if c.Defaults.Duration == 0 {
		c.Defaults.Duration = 5
	}
	if c.Defaults.Style == "" {
		c.Defaults.Style = models.StyleRealistic
	}
	if c.Defaults.Type == "" {
		c.Defaults.Type = models.TypeNarrative
	}
	if c.Defaults.Resolution == "" {
		c.Defaults.Resolution = "1920x1080"
	}
	if c.Defaults.FPS == 0 {
		c.Defaults.FPS = 30
	}

	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}

	if c.Output.Title == "" {
		c.Output.Title = "文本配视频内容"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	if c.Performance.MaxConcurrent <= 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.GenerationWorkers <= 0 {
		c.Performance.GenerationWorkers = 1
	}

	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.DataDir == "" {
		c.Server.DataDir = "data/documents"
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 1 << 20
	}

	return nil
}

// RemoteExtractionConfigured reports whether the selected provider has
// the credentials it needs.
func (c *Config) RemoteExtractionConfigured() bool {
	switch c.Extractor.Provider {
	case ProviderGemini:
		return len(c.Extractor.Gemini.APIKeys) > 0
	case ProviderOpenAI:
		return c.Extractor.OpenAI.APIKey != ""
	default:
		return false
	}
}

// scrubPlaceholder treats sample values such as "your_kling_api_key_here"
// as unset.
func scrubPlaceholder(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "your_") && strings.HasSuffix(v, "_here") {
		return ""
	}
	return v
}
