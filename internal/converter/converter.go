package converter

import (
	"context"
	"path"
	"path/filepath"
	"strings"
)

// Input identifies what to convert: a staged local file or a remote URL.
type Input struct {
	Path string // local file path; empty for URL inputs
	URL  string // remote URL; empty for file inputs
	Name string // effective filename; its extension drives format detection
}

// Source returns the path or URL handed to a backend.
func (in Input) Source() string {
	if in.Path != "" {
		return in.Path
	}
	return in.URL
}

// Ext returns the lowercased extension of the effective filename, falling
// back to the URL path for URL inputs.
func (in Input) Ext() string {
	if in.Name != "" {
		return strings.ToLower(filepath.Ext(in.Name))
	}
	if in.URL != "" {
		return strings.ToLower(path.Ext(in.URL))
	}
	return ""
}

// Result holds the output of a conversion.
type Result struct {
	Markdown string
	Title    string
}

// Converter is implemented by each conversion backend.
type Converter interface {
	// Accepts reports whether this backend can handle the given input.
	Accepts(in Input) bool

	// Convert produces the markdown rendition of the input.
	Convert(ctx context.Context, in Input) (*Result, error)
}
