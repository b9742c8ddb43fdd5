package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/callmepikachu/AniHub-Demo/internal/models"
)

// writeScenes persists the validated scenes as an indented JSON array.
func writeScenes(path string, scenes []models.Scene) error {
	if scenes == nil {
		scenes = []models.Scene{}
	}

	data, err := json.MarshalIndent(scenes, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scenes: %w", err)
	}

	return os.WriteFile(path, append(data, '\n'), 0644)
}

// moveToArchived moves a processed input into the archived folder. An
// existing file with the same name is kept; the newcomer gets a timestamp.
func (p *implProcessor) moveToArchived(ctx context.Context, inputPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	filename := filepath.Base(inputPath)
	destPath := filepath.Join(p.cfg.Paths.Archived, filename)

	if _, err := os.Stat(destPath); err == nil {
		ext := filepath.Ext(filename)
		stem := strings.TrimSuffix(filename, ext)
		destPath = filepath.Join(p.cfg.Paths.Archived, fmt.Sprintf("%s_%s%s", stem, time.Now().Format("20060102_150405"), ext))
	}

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", inputPath, destPath)

	if err := os.Rename(inputPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}

	return nil
}
