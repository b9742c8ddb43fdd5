package processor

import (
	"github.com/callmepikachu/AniHub-Demo/internal/config"
	"github.com/callmepikachu/AniHub-Demo/internal/extractor"
	"github.com/callmepikachu/AniHub-Demo/internal/generator"
	"github.com/callmepikachu/AniHub-Demo/internal/interleaver"
	"github.com/callmepikachu/AniHub-Demo/internal/logger"
	"github.com/callmepikachu/AniHub-Demo/internal/validator"
)

type implProcessor struct {
	cfg         *config.Config
	extractor   extractor.Extractor
	generator   generator.Generator
	interleaver interleaver.Interleaver
	logger      logger.Logger
}

// New creates a Processor from explicit components.
func New(cfg *config.Config, ext extractor.Extractor, gen generator.Generator, il interleaver.Interleaver, log logger.Logger) Processor {
	return &implProcessor{
		cfg:         cfg,
		extractor:   ext,
		generator:   gen,
		interleaver: il,
		logger:      log,
	}
}

// NewFromConfig wires the standard components described by cfg.
func NewFromConfig(cfg *config.Config, log logger.Logger) Processor {
	v := validator.New(cfg.Defaults, log)
	return New(cfg,
		extractor.New(cfg, v, log),
		generator.New(cfg, log),
		interleaver.New(cfg.Output.Title, log),
		log,
	)
}
