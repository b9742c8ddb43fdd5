package interleaver

import (
	"context"

	"github.com/callmepikachu/AniHub-Demo/internal/models"
)

// Interleaver places generated media after the sentences they illustrate.
type Interleaver interface {
	// Interleave renders the document or returns models.ErrUnsupportedFormat.
	Interleave(text string, scenes []models.Scene, results models.Results, format models.Format) (string, error)
	// Render is Interleave that falls back to the original text.
	Render(ctx context.Context, text string, scenes []models.Scene, results models.Results, format models.Format) string
}
