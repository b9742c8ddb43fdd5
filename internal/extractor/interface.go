package extractor

import (
	"context"

	"github.com/callmepikachu/AniHub-Demo/internal/models"
)

// Extractor derives scenes from narrative text.
type Extractor interface {
	// Extract never fails; at worst it returns no scenes.
	Extract(ctx context.Context, text string) Result
}

// Strategy produces raw scene candidates. A returned error makes the
// extractor move on to the next strategy; partial output is discarded.
type Strategy interface {
	Name() string
	Candidates(ctx context.Context, text string) ([]any, error)
}

// Result is the outcome of an extraction run.
type Result struct {
	Scenes []models.Scene
	// Strategy names the strategy whose output was used.
	Strategy string
	// Degraded is set when a preferred remote strategy was unavailable
	// or failed and a fallback produced the scenes.
	Degraded bool
}
