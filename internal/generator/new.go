package generator

import (
	"github.com/callmepikachu/AniHub-Demo/internal/config"
	"github.com/callmepikachu/AniHub-Demo/internal/logger"
)

const (
	BackendKling = "kling"
	BackendManim = "manim"
	BackendMock  = "mock"
)

// Backends selects the renderer for each scene type. A nil Kling backend
// sends narrative scenes to Mock.
type Backends struct {
	Kling Backend
	Manim Backend
	Mock  Backend
}

type implGenerator struct {
	backends       Backends
	fallbackToMock bool
	workers        int
	logger         logger.Logger
}

// New wires the Kling client (when an API key is configured) and the local
// stand-in backends from cfg.
func New(cfg *config.Config, log logger.Logger) Generator {
	b := Backends{
		Manim: NewStandIn(BackendManim, cfg.Generator.Manim, log),
		Mock:  NewStandIn(BackendMock, cfg.Generator.Mock, log),
	}
	if cfg.Generator.Kling.APIKey != "" {
		b.Kling = NewKling(cfg.Generator.Kling, log)
	}

	return &implGenerator{
		backends:       b,
		fallbackToMock: cfg.Generator.Kling.FallbackToMock,
		workers:        cfg.Performance.GenerationWorkers,
		logger:         log,
	}
}

// NewWithBackends creates a Generator over explicit backends.
func NewWithBackends(b Backends, workers int, fallbackToMock bool, log logger.Logger) Generator {
	if workers < 1 {
		workers = 1
	}
	return &implGenerator{
		backends:       b,
		fallbackToMock: fallbackToMock,
		workers:        workers,
		logger:         log,
	}
}
