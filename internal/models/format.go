package models

import (
	"errors"
	"fmt"
	"strings"
)

type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

var ErrUnsupportedFormat = errors.New("unsupported output format")

// ParseFormat accepts "html" and "markdown" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatMarkdown:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Extension returns the file extension used for the final document.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return "html"
}
