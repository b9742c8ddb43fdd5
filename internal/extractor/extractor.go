package extractor

import (
	"context"
	"fmt"

	"github.com/callmepikachu/AniHub-Demo/internal/models"
)

// Extract runs the strategies in order and validates the first output
// that arrives without error.
func (e *implExtractor) Extract(ctx context.Context, text string) Result {
	degraded := false
	if e.unavailable != "" {
		e.logger.Warn(ctx, "%s extractor has no API key, using fallback strategies", e.unavailable)
		degraded = true
	}

	for _, s := range e.strategies {
		raw, err := e.candidates(ctx, s, text)
		if err != nil {
			e.logger.Warn(ctx, "Scene extraction via %s failed, falling back: %v", s.Name(), err)
			degraded = true
			continue
		}

		scenes := e.validator.Validate(ctx, raw)
		e.logger.Info(ctx, "Extracted %d scenes via %s (%d candidates)", len(scenes), s.Name(), len(raw))
		return Result{
			Scenes:   scenes,
			Strategy: s.Name(),
			Degraded: degraded,
		}
	}

	e.logger.Error(ctx, "Every scene extraction strategy failed, continuing without scenes")
	return Result{Scenes: []models.Scene{}, Degraded: true}
}

// candidates shields the chain from a panicking strategy.
func (e *implExtractor) candidates(ctx context.Context, s Strategy, text string) (raw []any, err error) {
	defer func() {
		if r := recover(); r != nil {
			raw, err = nil, fmt.Errorf("strategy %s panicked: %v", s.Name(), r)
		}
	}()
	return s.Candidates(ctx, text)
}
