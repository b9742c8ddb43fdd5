package extractor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseCandidates accepts a bare JSON array of scene records or an object
// wrapping it under "scenes", optionally inside a markdown code fence.
func parseCandidates(content string) ([]any, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	if content == "" {
		return nil, ErrEmptyResponse
	}

	var decoded any
	if err := json.Unmarshal([]byte(content), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	switch v := decoded.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if scenes, ok := v["scenes"].([]any); ok {
			return scenes, nil
		}
	}

	return nil, fmt.Errorf("%w: expected a list of scenes", ErrMalformedResponse)
}
