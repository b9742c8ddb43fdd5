package validator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/callmepikachu/AniHub-Demo/internal/config"
	"github.com/callmepikachu/AniHub-Demo/internal/models"
)

var (
	ErrInvalidScene = errors.New("invalid scene record")
	ErrDuplicateID  = errors.New("duplicate scene id")
)

// Record is an untrusted scene as decoded from JSON.
type Record = map[string]any

// sceneIDPattern is scene_ followed by a zero-padded sequence number.
var sceneIDPattern = regexp.MustCompile(`^scene_[0-9]{3,}$`)

// RequiredFields must be present on every record.
var RequiredFields = []string{"id", "prompt", "position", "duration", "style", "type"}

func (v *implValidator) Validate(ctx context.Context, raw []any) []models.Scene {
	scenes := make([]models.Scene, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))

	for i, item := range raw {
		rec, ok := item.(map[string]any)
		if !ok {
			v.logger.Debug(ctx, "Skipping scene record %d: not an object (%T)", i, item)
			continue
		}

		scene, err := ParseScene(rec, v.defaults)
		if err != nil {
			v.logger.Warn(ctx, "Dropping scene record %d: %v", i, err)
			continue
		}

		if _, dup := seen[scene.ID]; dup {
			v.logger.Warn(ctx, "Dropping scene record %d: %v: %s", i, ErrDuplicateID, scene.ID)
			continue
		}
		seen[scene.ID] = struct{}{}

		scenes = append(scenes, scene)
	}

	return scenes
}

// ParseScene converts one record into a Scene, or explains why it can't.
// resolution and fps are optional and default-filled.
func ParseScene(rec Record, defaults config.DefaultsConfig) (models.Scene, error) {
	var missing []string
	for _, field := range RequiredFields {
		if _, ok := rec[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return models.Scene{}, fmt.Errorf("%w: missing %s", ErrInvalidScene, strings.Join(missing, ", "))
	}

	var (
		scene models.Scene
		err   error
	)
	if scene.ID, err = stringField(rec, "id"); err != nil {
		return models.Scene{}, err
	}
	if !sceneIDPattern.MatchString(scene.ID) {
		return models.Scene{}, fmt.Errorf("%w: id %q is not scene_NNN", ErrInvalidScene, scene.ID)
	}
	if scene.Prompt, err = stringField(rec, "prompt"); err != nil {
		return models.Scene{}, err
	}
	if scene.Style, err = stringField(rec, "style"); err != nil {
		return models.Scene{}, err
	}
	if scene.Type, err = stringField(rec, "type"); err != nil {
		return models.Scene{}, err
	}
	if scene.Position, err = intField(rec, "position"); err != nil {
		return models.Scene{}, err
	}
	if scene.Duration, err = intField(rec, "duration"); err != nil {
		return models.Scene{}, err
	}
	if scene.Duration <= 0 {
		return models.Scene{}, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidScene, scene.Duration)
	}

	scene.Resolution = defaults.Resolution
	if _, ok := rec["resolution"]; ok {
		if scene.Resolution, err = stringField(rec, "resolution"); err != nil {
			return models.Scene{}, err
		}
	}

	scene.FPS = defaults.FPS
	if _, ok := rec["fps"]; ok {
		if scene.FPS, err = intField(rec, "fps"); err != nil {
			return models.Scene{}, err
		}
	}
	if scene.FPS <= 0 {
		return models.Scene{}, fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidScene, scene.FPS)
	}

	return scene, nil
}

func stringField(rec Record, field string) (string, error) {
	s, ok := rec[field].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidScene, field, rec[field])
	}
	return s, nil
}

func intField(rec Record, field string) (int, error) {
	switch n := rec[field].(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), nil
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidScene, field, rec[field])
}
