package interleaver

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/callmepikachu/AniHub-Demo/internal/models"
)

//go:embed document.html.tmpl
var documentHTML string

var documentTmpl = template.Must(template.New("document").Parse(documentHTML))

type documentData struct {
	Title  string
	Blocks []Block
}

func (i *implInterleaver) Interleave(text string, scenes []models.Scene, results models.Results, format models.Format) (string, error) {
	blocks := Blocks(text, scenes, results)

	switch format {
	case models.FormatHTML:
		return i.renderHTML(blocks)
	case models.FormatMarkdown:
		return i.renderMarkdown(blocks), nil
	default:
		return "", fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, format)
	}
}

func (i *implInterleaver) Render(ctx context.Context, text string, scenes []models.Scene, results models.Results, format models.Format) string {
	out, err := i.Interleave(text, scenes, results, format)
	if err != nil {
		i.logger.Error(ctx, "Interleaving failed, returning original text: %v", err)
		return text
	}
	return out
}

func (i *implInterleaver) renderHTML(blocks []Block) (string, error) {
	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, documentData{Title: i.title, Blocks: blocks}); err != nil {
		return "", fmt.Errorf("execute document template: %w", err)
	}
	return buf.String(), nil
}

func (i *implInterleaver) renderMarkdown(blocks []Block) string {
	var b strings.Builder

	b.WriteString("# " + i.title + "\n\n")

	for _, blk := range blocks {
		b.WriteString(blk.Text + "\n\n")

		if m := blk.Media; m != nil {
			b.WriteString("<video controls width=\"100%\">\n")
			b.WriteString(fmt.Sprintf("  <source src=\"%s\" type=\"%s\">\n", html.EscapeString(m.File), m.Type))
			b.WriteString("  您的浏览器不支持视频播放。\n")
			b.WriteString("</video>\n\n")
			b.WriteString(fmt.Sprintf("*场景: %s*\n\n", html.EscapeString(m.Caption)))
		}
	}

	return b.String()
}
