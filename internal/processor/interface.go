package processor

import (
	"context"

	"github.com/callmepikachu/AniHub-Demo/internal/models"
)

// Processor runs the text-to-illustrated-document pipeline.
type Processor interface {
	// Illustrate turns text into a document with embedded scene videos,
	// writing every artifact into outputDir.
	Illustrate(ctx context.Context, text, outputDir string, format models.Format) (*Output, error)
	// Run reads inputPath and illustrates it into outputDir.
	Run(ctx context.Context, inputPath, outputDir string, format models.Format) (*Output, error)
	// Process handles a file dropped into the watched input folder: its
	// output goes to a directory named after it and the input is archived.
	Process(ctx context.Context, inputPath string) error
}

// Output describes one pipeline run.
type Output struct {
	RunID    string
	Dir      string
	Document string
	Docx     string
	Scenes   []models.Scene
	Results  models.Results
	Strategy string
	Degraded bool
}
