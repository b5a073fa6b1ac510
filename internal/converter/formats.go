package converter

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed formats.yaml
var formatsFile []byte

// formatManifest mirrors formats.yaml
type formatManifest struct {
	Extensions []string `yaml:"extensions"`
}

// FormatSet is the set of file extensions the markitdown tooling handles.
type FormatSet struct {
	exts map[string]struct{}
}

// LoadFormats parses the embedded format manifest.
func LoadFormats() (*FormatSet, error) {
	var manifest formatManifest
	if err := yaml.Unmarshal(formatsFile, &manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal formats.yaml: %w", err)
	}

	s := &FormatSet{exts: make(map[string]struct{}, len(manifest.Extensions))}
	for _, ext := range manifest.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.exts[ext] = struct{}{}
	}

	if len(s.exts) == 0 {
		return nil, fmt.Errorf("formats.yaml lists no extensions")
	}

	return s, nil
}

// Supported reports whether the (lowercased, dot-prefixed) extension is listed.
func (s *FormatSet) Supported(ext string) bool {
	_, ok := s.exts[ext]
	return ok
}

// Len returns the number of listed extensions.
func (s *FormatSet) Len() int {
	return len(s.exts)
}
