package models

import "fmt"

// Scene styles accepted by the generation backends.
const (
	StyleRealistic = "realistic"
	StyleCartoon   = "cartoon"
	StyleAnimation = "animation"
)

// Scene types. The type decides which backend renders the scene.
const (
	TypeNarrative = "narrative"
	TypeTechnical = "technical"
)

// Scene is one visually renderable excerpt of the source text, anchored
// after the sentence at Position (1-based).
type Scene struct {
	ID         string `json:"id"`
	Prompt     string `json:"prompt"`
	Position   int    `json:"position"`
	Duration   int    `json:"duration"`
	Style      string `json:"style"`
	Type       string `json:"type"`
	Resolution string `json:"resolution"`
	FPS        int    `json:"fps"`
}

// SceneID formats the batch-local identifier for the seq-th scene.
func SceneID(seq int) string {
	return fmt.Sprintf("scene_%03d", seq)
}
