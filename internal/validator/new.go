package validator

import (
	"github.com/callmepikachu/AniHub-Demo/internal/config"
	"github.com/callmepikachu/AniHub-Demo/internal/logger"
)

type implValidator struct {
	defaults config.DefaultsConfig
	logger   logger.Logger
}

// New creates a Validator that fills optional fields from defaults.
func New(defaults config.DefaultsConfig, log logger.Logger) Validator {
	return &implValidator{
		defaults: defaults,
		logger:   log,
	}
}
