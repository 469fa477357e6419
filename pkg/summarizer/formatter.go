package summarizer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Formatter defines the interface for formatting a Summary.
type Formatter interface {
	// Format converts a Summary to a formatted string.
	Format(summary *Summary) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(summary *Summary) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// FormatterForPath picks a formatter from the file extension:
// .json gives JSON, .md and .markdown give Markdown.
func FormatterForPath(path string, opts ...MarkdownOption) (Formatter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONFormatter(), nil
	case ".md", ".markdown":
		return NewMarkdownFormatter(opts...), nil
	default:
		return nil, fmt.Errorf("summarizer: unsupported summary format %q", filepath.Ext(path))
	}
}
