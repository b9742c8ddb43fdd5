package extractor

import (
	"context"
	"strings"

	"github.com/callmepikachu/AniHub-Demo/internal/config"
	"github.com/callmepikachu/AniHub-Demo/internal/models"
	"github.com/callmepikachu/AniHub-Demo/internal/sentence"
)

const StrategyRules = "rules"

type rulesStrategy struct {
	keywords []string
	defaults config.DefaultsConfig
}

// NewRules returns the offline strategy: every sentence containing one of
// keywords becomes a scene anchored at that sentence.
func NewRules(keywords []string, defaults config.DefaultsConfig) Strategy {
	return &rulesStrategy{
		keywords: keywords,
		defaults: defaults,
	}
}

func (r *rulesStrategy) Name() string { return StrategyRules }

func (r *rulesStrategy) Candidates(ctx context.Context, text string) ([]any, error) {
	records := []any{}
	seq := 0

	for i, unit := range sentence.Split(text) {
		content := sentence.Content(unit)
		if content == "" || !r.matches(content) {
			continue
		}

		seq++
		records = append(records, map[string]any{
			"id":       models.SceneID(seq),
			"prompt":   content,
			"position": i + 1,
			"duration": r.defaults.Duration,
			"style":    r.defaults.Style,
			"type":     r.defaults.Type,
		})
	}

	return records, nil
}

func (r *rulesStrategy) matches(s string) bool {
	for _, kw := range r.keywords {
		if kw != "" && strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
