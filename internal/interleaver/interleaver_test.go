package interleaver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/callmepikachu/AniHub-Demo/internal/logger"
	"github.com/callmepikachu/AniHub-Demo/internal/models"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...interface{}) {}
func (nopLogger) Info(ctx context.Context, msg string, args ...interface{})  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...interface{})  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...interface{}) {}
func (l nopLogger) With(key string, value interface{}) logger.Logger         { return l }

const text = "林则徐站在虎门海滩上。他非常愤怒！"

func fixture() ([]models.Scene, models.Results) {
	scenes := []models.Scene{{
		ID:       "scene_001",
		Prompt:   "林则徐站在虎门海滩上",
		Position: 1,
		Duration: 5,
		Style:    models.StyleRealistic,
		Type:     models.TypeNarrative,
	}}
	results := models.Results{
		"scene_001": {Status: models.StatusSuccess, VideoPath: "/tmp/run/scene_001_mock.mp4", Generator: "mock"},
	}
	return scenes, results
}

func newTestInterleaver() Interleaver {
	return New("文本配视频内容", nopLogger{})
}

func TestInterleaveHTML(t *testing.T) {
	scenes, results := fixture()

	out, err := newTestInterleaver().Interleave(text, scenes, results, models.FormatHTML)
	if err != nil {
		t.Fatalf("Interleave: %v", err)
	}

	if strings.Count(out, "<video") != 1 {
		t.Fatalf("expected exactly one video:\n%s", out)
	}
	first := strings.Index(out, "林则徐站在虎门海滩上。</div>")
	video := strings.Index(out, "<video")
	second := strings.Index(out, "他非常愤怒！")
	if first < 0 || video < 0 || second < 0 || !(first < video && video < second) {
		t.Fatalf("video not placed between the sentences:\n%s", out)
	}
	for _, want := range []string{
		`<html lang="zh-CN">`,
		`<title>文本配视频内容</title>`,
		`<source src="scene_001_mock.mp4" type="video/mp4">`,
		`场景: 林则徐站在虎门海滩上`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "/tmp/run") {
		t.Error("media should be referenced by base name only")
	}
}

func TestInterleaveMarkdown(t *testing.T) {
	scenes, results := fixture()

	out, err := newTestInterleaver().Interleave(text, scenes, results, models.FormatMarkdown)
	if err != nil {
		t.Fatalf("Interleave: %v", err)
	}

	if !strings.HasPrefix(out, "# 文本配视频内容\n\n林则徐站在虎门海滩上。\n\n<video controls") {
		t.Fatalf("unexpected markdown prefix:\n%s", out)
	}
	if !strings.Contains(out, "*场景: 林则徐站在虎门海滩上*\n\n他非常愤怒！\n") {
		t.Fatalf("caption or trailing sentence missing:\n%s", out)
	}
}

func TestInterleaveIsIdempotent(t *testing.T) {
	scenes, results := fixture()
	il := newTestInterleaver()

	for _, f := range []models.Format{models.FormatHTML, models.FormatMarkdown} {
		a, _ := il.Interleave(text, scenes, results, f)
		b, _ := il.Interleave(text, scenes, results, f)
		if a != b {
			t.Fatalf("%s output differs between identical calls", f)
		}
	}
}

func TestInterleaveSkipsFailedAndMissingResults(t *testing.T) {
	scenes, _ := fixture()
	scenes = append(scenes, models.Scene{ID: "scene_002", Prompt: "愤怒", Position: 2})

	cases := map[string]models.Results{
		"failed":     {"scene_001": {Status: models.StatusFailed, Error: "boom"}, "scene_002": {Status: models.StatusFailed}},
		"missing":    {},
		"empty path": {"scene_001": {Status: models.StatusSuccess}},
	}

	for name, results := range cases {
		t.Run(name, func(t *testing.T) {
			for _, f := range []models.Format{models.FormatHTML, models.FormatMarkdown} {
				out, err := newTestInterleaver().Interleave(text, scenes, results, f)
				if err != nil {
					t.Fatalf("Interleave: %v", err)
				}
				if strings.Contains(out, "<video") {
					t.Fatalf("%s: unexpected video:\n%s", f, out)
				}
				if !strings.Contains(out, "他非常愤怒！") {
					t.Fatalf("%s: text lost:\n%s", f, out)
				}
			}
		})
	}
}

func TestInterleaveUnsupportedFormat(t *testing.T) {
	scenes, results := fixture()
	il := newTestInterleaver()

	if _, err := il.Interleave(text, scenes, results, models.Format("pdf")); !errors.Is(err, models.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if out := il.Render(context.Background(), text, scenes, results, models.Format("pdf")); out != text {
		t.Fatalf("Render should return the original text, got %q", out)
	}
}

func TestBlocksLastSceneWinsPosition(t *testing.T) {
	scenes := []models.Scene{
		{ID: "scene_001", Prompt: "first", Position: 1},
		{ID: "scene_002", Prompt: "second", Position: 1},
	}
	results := models.Results{
		"scene_001": {Status: models.StatusSuccess, VideoPath: "a.mp4"},
		"scene_002": {Status: models.StatusSuccess, VideoPath: "b.mp4"},
	}

	blocks := Blocks(text, scenes, results)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if m := blocks[0].Media; m == nil || m.File != "b.mp4" || m.Caption != "second" {
		t.Fatalf("expected the later scene to win, got %+v", blocks[0].Media)
	}
	if blocks[1].Media != nil {
		t.Fatalf("unexpected media on second block: %+v", blocks[1].Media)
	}
}

func TestBlocksIgnoresOutOfRangePositions(t *testing.T) {
	scenes := []models.Scene{{ID: "scene_001", Prompt: "far away", Position: 99}}
	results := models.Results{"scene_001": {Status: models.StatusSuccess, VideoPath: "a.mp4"}}

	for _, b := range Blocks(text, scenes, results) {
		if b.Media != nil {
			t.Fatalf("out-of-range scene should not attach: %+v", b)
		}
	}
}

func TestInterleaveEscapesHTML(t *testing.T) {
	scenes := []models.Scene{{ID: "scene_001", Prompt: "<b>x</b>", Position: 1}}
	results := models.Results{"scene_001": {Status: models.StatusSuccess, VideoPath: "a.mp4"}}

	out, err := newTestInterleaver().Interleave("<script>alert(1)</script>。", scenes, results, models.FormatHTML)
	if err != nil {
		t.Fatalf("Interleave: %v", err)
	}
	if strings.Contains(out, "<script>") || strings.Contains(out, "<b>x</b>") {
		t.Fatalf("markup was not escaped:\n%s", out)
	}
}

func TestMediaTypeIsFixedPerExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"out/scene_001.mp4", "video/mp4"},
		{"out/scene_001_mock.MP4", "video/mp4"},
		{"out/scene_002.webm", "video/webm"},
		{"out/scene_003.mov", "video/quicktime"},
		{"out/scene_004.mkv", "video/mp4"},
		{"out/scene_005_manim.txt", "video/mp4"},
		{"out/scene_006", "video/mp4"},
	}

	for _, tt := range tests {
		if got := mediaType(tt.path); got != tt.want {
			t.Errorf("mediaType(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
