package sentence

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two sentences",
			text: "林则徐站在虎门海滩上。他非常愤怒！",
			want: []string{"林则徐站在虎门海滩上。", "他非常愤怒！"},
		},
		{
			name: "trailing fragment without delimiter",
			text: "第一句。第二句没有结尾",
			want: []string{"第一句。", "第二句没有结尾"},
		},
		{
			name: "all delimiter kinds",
			text: "甲。乙！丙？丁；",
			want: []string{"甲。", "乙！", "丙？", "丁；"},
		},
		{
			name: "consecutive delimiters stay together",
			text: "真的吗？！是的。",
			want: []string{"真的吗？！", "是的。"},
		},
		{
			name: "leading delimiters attach to first content",
			text: "。。开始了。",
			want: []string{"。。开始了。"},
		},
		{
			name: "whitespace fragments dropped",
			text: "第一句。  \n第二句。\n",
			want: []string{"第一句。", "  \n第二句。"},
		},
		{
			name: "whitespace between delimiters dropped",
			text: "好。 ！下一句",
			want: []string{"好。！", "下一句"},
		},
		{
			name: "only delimiters",
			text: "。！",
			want: []string{"。！"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: " \n\t ",
			want: nil,
		},
		{
			name: "ascii punctuation is not a delimiter",
			text: "Hello. World!",
			want: []string{"Hello. World!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Split(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSplitRoundTrip(t *testing.T) {
	texts := []string{
		"林则徐站在虎门海滩上。他非常愤怒！士兵们搬运鸦片；",
		"  前导空白。中间  空白！\n\n末尾",
		"；；；",
		"无分隔符的整段文本",
		"a。 b。 c",
	}

	for _, text := range texts {
		joined := strings.Join(Split(text), "")
		if want := withoutBlankFragments(text); joined != want {
			t.Fatalf("round trip of %q = %q, want %q", text, joined, want)
		}
	}
}

func TestSplitKeepsInnerWhitespace(t *testing.T) {
	got := Split("  前导空白。中间  空白！\n\n末尾 ")
	want := []string{"  前导空白。", "中间  空白！", "\n\n末尾 "}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split = %q, want %q", got, want)
	}
}

func TestSplitDeterministic(t *testing.T) {
	text := "第一句。第二句！第三句？第四句；"
	first := Split(text)
	second := Split(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Split not deterministic: %q vs %q", first, second)
	}
}

func TestCount(t *testing.T) {
	if got := Count("一。二。三"); got != 3 {
		t.Fatalf("Count = %d, want 3", got)
	}
}

func TestContent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  你好。 ", want: "你好"},
		{in: "真的吗？！", want: "真的吗"},
		{in: "。！", want: ""},
		{in: "没有标点", want: "没有标点"},
	}
	for _, tt := range tests {
		if got := Content(tt.in); got != tt.want {
			t.Fatalf("Content(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func FuzzSplit(f *testing.F) {
	f.Add("林则徐站在虎门海滩上。他非常愤怒！")
	f.Add("。。开始了。")
	f.Add("a。 ！b")
	f.Add("")

	f.Fuzz(func(t *testing.T, text string) {
		units := Split(text)
		for _, u := range units {
			if strings.TrimSpace(u) == "" {
				t.Fatalf("empty unit in %q", units)
			}
		}
		if strings.Join(units, "") != withoutBlankFragments(text) {
			t.Fatalf("round trip changed %q into %q", text, units)
		}
		if !reflect.DeepEqual(units, Split(text)) {
			t.Fatalf("non-deterministic split for %q", text)
		}
	})
}

// withoutBlankFragments drops the whitespace-only runs between delimiters
// and keeps every other byte of text.
func withoutBlankFragments(text string) string {
	var b strings.Builder
	var run strings.Builder
	flush := func() {
		if strings.TrimSpace(run.String()) != "" {
			b.WriteString(run.String())
		}
		run.Reset()
	}

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r != utf8.RuneError && strings.ContainsRune(Delimiters, r) {
			flush()
			b.WriteString(text[i : i+size])
		} else {
			run.WriteString(text[i : i+size])
		}
		i += size
	}
	flush()

	return b.String()
}
