// Package exporter writes the interleaved document in office formats.
package exporter

import (
	"fmt"

	"github.com/callmepikachu/AniHub-Demo/internal/interleaver"
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName     = "Times New Roman"
	fontSize     = 13
	titleSize    = 16
	captionSize  = 11
	captionColor = "808080"
)

// WriteDocx renders blocks as a Word document: one paragraph per sentence
// and a grey caption naming the media file where a scene was rendered.
// Word cannot play the videos, so the caption points at the file.
func WriteDocx(title string, blocks []interleaver.Block, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	addRun(doc.AddParagraph(""), title, titleSize, "000000").Bold(true)

	for _, b := range blocks {
		if b.Text != "" {
			addRun(doc.AddParagraph(""), b.Text, fontSize, "000000")
		}
		if m := b.Media; m != nil {
			caption := fmt.Sprintf("场景: %s (%s)", m.Caption, m.File)
			addRun(doc.AddParagraph(""), caption, captionSize, captionColor)
		}
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}
	return nil
}

func addRun(p *docx.Paragraph, text string, size uint64, color string) *docx.Run {
	return p.AddText(text).Font(fontName).Size(size).Color(color)
}
