package generator

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/callmepikachu/AniHub-Demo/internal/logger"
	"github.com/callmepikachu/AniHub-Demo/internal/models"
	"golang.org/x/sync/errgroup"
)

func (g *implGenerator) Generate(ctx context.Context, scenes []models.Scene, outputDir string) models.Results {
	results := make(models.Results, len(scenes))
	if len(scenes) == 0 {
		return results
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		g.logger.Error(ctx, "Failed to create media dir %s: %v", outputDir, err)
		for _, scene := range scenes {
			results[scene.ID] = models.Failed(fmt.Errorf("create media dir: %w", err))
		}
		return results
	}

	var (
		mu   sync.Mutex
		eg   errgroup.Group
		seen = make(map[string]struct{}, len(scenes))
	)
	eg.SetLimit(g.workers)

	g.logger.Info(ctx, "Generating %d scenes with %d workers", len(scenes), g.workers)

	for _, scene := range scenes {
		if _, dup := seen[scene.ID]; dup {
			g.logger.Warn(ctx, "Skipping duplicate scene id %s", scene.ID)
			continue
		}
		seen[scene.ID] = struct{}{}

		eg.Go(func() error {
			res := g.runTask(ctx, scene, outputDir)

			mu.Lock()
			results[scene.ID] = res
			mu.Unlock()
			return nil
		})
	}

	_ = eg.Wait()

	ok := 0
	for _, r := range results {
		if r.Status == models.StatusSuccess {
			ok++
		}
	}
	g.logger.Info(ctx, "Generation complete: %d success, %d failed", ok, len(results)-ok)

	return results
}

// runTask renders one scene. Errors and panics become a failed result.
func (g *implGenerator) runTask(ctx context.Context, scene models.Scene, outputDir string) (res models.GenerationResult) {
	log := g.logger.With("scene_id", scene.ID)

	defer func() {
		if r := recover(); r != nil {
			log.Error(ctx, "Scene generation panicked: %v", r)
			res = models.Failed(fmt.Errorf("%w: panic: %v", ErrGenerationFailed, r))
		}
	}()

	backend := g.route(ctx, log, scene)
	log.Info(ctx, "Generating scene via %s: %s", backend.Name(), scene.Prompt)

	res, err := backend.Generate(ctx, scene, outputDir)
	if err != nil && backend.Name() == BackendKling && g.fallbackToMock {
		log.Warn(ctx, "Kling generation failed, falling back to mock: %v", err)
		res, err = g.backends.Mock.Generate(ctx, scene, outputDir)
	}
	if err != nil {
		log.Error(ctx, "Scene generation failed: %v", err)
		return models.Failed(err)
	}

	log.Info(ctx, "[DONE] %s -> %s", scene.ID, res.VideoPath)
	return res
}

func (g *implGenerator) route(ctx context.Context, log logger.Logger, scene models.Scene) Backend {
	switch scene.Type {
	case models.TypeNarrative:
		if g.backends.Kling == nil {
			log.Warn(ctx, "Kling API key not configured, using mock generation")
			return g.backends.Mock
		}
		return g.backends.Kling
	case models.TypeTechnical:
		return g.backends.Manim
	default:
		return g.backends.Mock
	}
}
