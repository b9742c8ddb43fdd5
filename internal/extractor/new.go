package extractor

import (
	"github.com/callmepikachu/AniHub-Demo/internal/config"
	"github.com/callmepikachu/AniHub-Demo/internal/logger"
	"github.com/callmepikachu/AniHub-Demo/internal/validator"
)

type implExtractor struct {
	strategies []Strategy
	validator  validator.Validator
	logger     logger.Logger
	// unavailable names a remote provider that was selected but lacks
	// credentials.
	unavailable string
}

// New builds the strategy chain from cfg: the configured remote provider
// (when it has credentials) followed by the keyword rules.
func New(cfg *config.Config, v validator.Validator, log logger.Logger) Extractor {
	e := &implExtractor{
		validator: v,
		logger:    log,
	}

	switch cfg.Extractor.Provider {
	case config.ProviderGemini:
		if cfg.RemoteExtractionConfigured() {
			e.strategies = append(e.strategies, newGeminiStrategy(cfg.Extractor.Gemini, log))
		} else {
			e.unavailable = config.ProviderGemini
		}
	case config.ProviderOpenAI:
		if cfg.RemoteExtractionConfigured() {
			e.strategies = append(e.strategies, newOpenAIStrategy(cfg.Extractor.OpenAI))
		} else {
			e.unavailable = config.ProviderOpenAI
		}
	}

	e.strategies = append(e.strategies, NewRules(cfg.Extractor.Keywords, cfg.Defaults))
	return e
}

// NewWithStrategies creates an Extractor that tries strategies in order.
func NewWithStrategies(strategies []Strategy, v validator.Validator, log logger.Logger) Extractor {
	return &implExtractor{
		strategies: strategies,
		validator:  v,
		logger:     log,
	}
}
