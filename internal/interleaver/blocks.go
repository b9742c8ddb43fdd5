package interleaver

import (
	"path/filepath"
	"strings"

	"github.com/callmepikachu/AniHub-Demo/internal/models"
	"github.com/callmepikachu/AniHub-Demo/internal/sentence"
)

// Block is one sentence of the document, optionally followed by media.
type Block struct {
	Text  string
	Media *Media
}

// Media is a video embedded after a sentence. File is relative to the
// rendered document.
type Media struct {
	File    string
	Type    string
	Caption string
}

// Blocks walks text sentence by sentence. When several scenes share a
// position the last one wins; its media is attached only if it rendered
// successfully.
func Blocks(text string, scenes []models.Scene, results models.Results) []Block {
	byPosition := make(map[int]models.Scene, len(scenes))
	for _, s := range scenes {
		byPosition[s.Position] = s
	}

	units := sentence.Split(text)
	blocks := make([]Block, 0, len(units))

	for i, unit := range units {
		b := Block{Text: strings.TrimSpace(unit)}

		if s, ok := byPosition[i+1]; ok {
			if r, ok := results[s.ID]; ok && r.HasMedia() {
				b.Media = &Media{
					File:    filepath.Base(r.VideoPath),
					Type:    mediaType(r.VideoPath),
					Caption: s.Prompt,
				}
			}
		}

		blocks = append(blocks, b)
	}

	return blocks
}

var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".webm": "video/webm",
	".ogv":  "video/ogg",
	".mov":  "video/quicktime",
}

// mediaType maps a file extension to the <source> type. Unknown
// extensions are announced as mp4.
func mediaType(path string) string {
	if t, ok := videoTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}
	return "video/mp4"
}
