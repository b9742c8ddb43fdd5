package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/callmepikachu/AniHub-Demo/internal/exporter"
	"github.com/callmepikachu/AniHub-Demo/internal/interleaver"
	"github.com/callmepikachu/AniHub-Demo/internal/models"
	"github.com/callmepikachu/AniHub-Demo/internal/sentence"
	"github.com/google/uuid"
)

const (
	scenesFile = "scenes.json"
	docxFile   = "result.docx"
)

// Illustrate orchestrates extraction, generation and interleaving.
func (p *implProcessor) Illustrate(ctx context.Context, text, outputDir string, format models.Format) (*Output, error) {
	startTime := time.Now()
	runID := uuid.NewString()
	log := p.logger.With("run_id", runID)

	log.Info(ctx, "========================================")
	log.Info(ctx, "Starting run: %d sentences -> %s (%s)", sentence.Count(text), outputDir, format)
	log.Info(ctx, "========================================")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	// Step 1: Extract and validate scenes
	extracted := p.extractor.Extract(ctx, text)
	if extracted.Degraded {
		log.Warn(ctx, "Scene extraction degraded, used %q strategy", extracted.Strategy)
	}

	if err := writeScenes(filepath.Join(outputDir, scenesFile), extracted.Scenes); err != nil {
		return nil, fmt.Errorf("write scenes: %w", err)
	}

	// Step 2: Generate one video per scene
	results := p.generator.Generate(ctx, extracted.Scenes, outputDir)

	// Step 3: Interleave videos into the text
	document := p.interleaver.Render(ctx, text, extracted.Scenes, results, format)
	documentPath := filepath.Join(outputDir, documentName(format))
	if err := os.WriteFile(documentPath, []byte(document), 0644); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	out := &Output{
		RunID:    runID,
		Dir:      outputDir,
		Document: documentPath,
		Scenes:   extracted.Scenes,
		Results:  results,
		Strategy: extracted.Strategy,
		Degraded: extracted.Degraded,
	}

	// Step 4: Optional Word companion
	if p.cfg.Output.Docx {
		docxPath := filepath.Join(outputDir, docxFile)
		blocks := interleaver.Blocks(text, extracted.Scenes, results)
		if err := exporter.WriteDocx(p.cfg.Output.Title, blocks, docxPath); err != nil {
			log.Warn(ctx, "Failed to write docx: %v", err)
		} else {
			out.Docx = docxPath
		}
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Run completed: %d scenes, %d with media", len(out.Scenes), countMedia(results))
	log.Info(ctx, "Output document: %s", documentPath)
	log.Info(ctx, "Processing time: %s", time.Since(startTime))
	log.Info(ctx, "========================================")

	return out, nil
}

func (p *implProcessor) Run(ctx context.Context, inputPath, outputDir string, format models.Format) (*Output, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return p.Illustrate(ctx, string(data), outputDir, format)
}

func (p *implProcessor) Process(ctx context.Context, inputPath string) error {
	base := filepath.Base(inputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	outputDir := filepath.Join(p.cfg.Paths.Output, name)

	format, err := models.ParseFormat(p.cfg.Output.Format)
	if err != nil {
		return err
	}

	if _, err := p.Run(ctx, inputPath, outputDir, format); err != nil {
		return err
	}

	if err := p.moveToArchived(ctx, inputPath); err != nil {
		p.logger.Warn(ctx, "Failed to move input to archived folder: %v", err)
	}

	return nil
}

// documentName is result.{html|md}. An unsupported format renders the
// original text, which is saved as plain text.
func documentName(format models.Format) string {
	if _, err := models.ParseFormat(string(format)); err != nil {
		return "result.txt"
	}
	return "result." + format.Extension()
}

func countMedia(results models.Results) int {
	n := 0
	for _, r := range results {
		if r.HasMedia() {
			n++
		}
	}
	return n
}
