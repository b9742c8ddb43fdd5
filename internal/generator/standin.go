package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/callmepikachu/AniHub-Demo/internal/config"
	"github.com/callmepikachu/AniHub-Demo/internal/logger"
	"github.com/callmepikachu/AniHub-Demo/internal/models"
)

// standIn writes a small text placeholder instead of a real video.
type standIn struct {
	name   string
	delay  time.Duration
	ext    string
	logger logger.Logger
}

// NewStandIn returns a placeholder backend that produces
// {scene id}_{name}.{ext} after cfg.Delay.
func NewStandIn(name string, cfg config.StandInConfig, log logger.Logger) Backend {
	ext := strings.TrimPrefix(cfg.Extension, ".")
	if ext == "" {
		ext = "mp4"
	}
	return &standIn{
		name:   name,
		delay:  cfg.Delay,
		ext:    ext,
		logger: log,
	}
}

func (s *standIn) Name() string { return s.name }

func (s *standIn) Generate(ctx context.Context, scene models.Scene, outputDir string) (models.GenerationResult, error) {
	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return models.GenerationResult{}, ctx.Err()
		case <-t.C:
		}
	}

	path, err := mediaPath(outputDir, scene.ID, fmt.Sprintf("_%s.%s", s.name, s.ext))
	if err != nil {
		return models.GenerationResult{}, err
	}
	if err := os.WriteFile(path, []byte(s.placeholder(scene)), 0644); err != nil {
		return models.GenerationResult{}, fmt.Errorf("write %s placeholder: %w", s.name, err)
	}

	return models.GenerationResult{
		Status:    models.StatusSuccess,
		VideoPath: path,
		Generator: s.name,
	}, nil
}

// mediaPath places a scene's file directly inside outputDir. Ids that
// would name another directory are refused.
func mediaPath(outputDir, sceneID, suffix string) (string, error) {
	if sceneID == "" || sceneID == "." || sceneID == ".." || strings.ContainsAny(sceneID, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeSceneID, sceneID)
	}
	return filepath.Join(outputDir, sceneID+suffix), nil
}

func (s *standIn) placeholder(scene models.Scene) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<!-- %s placeholder video, not a real recording -->\n", s.name)
	fmt.Fprintf(&b, "<!-- scene: %s -->\n", scene.ID)
	fmt.Fprintf(&b, "<!-- prompt: %s -->\n", scene.Prompt)
	fmt.Fprintf(&b, "<!-- duration: %ds -->\n", scene.Duration)
	fmt.Fprintf(&b, "<!-- style: %s -->\n", scene.Style)
	return b.String()
}
