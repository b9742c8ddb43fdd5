package generator

import (
	"context"

	"github.com/callmepikachu/AniHub-Demo/internal/models"
)

// Generator renders a batch of scenes into media files.
type Generator interface {
	// Generate returns exactly one result per distinct scene id. A scene
	// that fails never affects the others.
	Generate(ctx context.Context, scenes []models.Scene, outputDir string) models.Results
}

// Backend renders a single scene into outputDir.
type Backend interface {
	Name() string
	Generate(ctx context.Context, scene models.Scene, outputDir string) (models.GenerationResult, error)
}
