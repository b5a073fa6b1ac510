package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"markitdown/internal/converter"
	"markitdown/internal/domain"
)

// Converter is the slice of the converter registry the service needs.
type Converter interface {
	Convert(ctx context.Context, in converter.Input) (*converter.Result, error)
}

// Conversion stages uploads, invokes the converter and guarantees staged
// files are removed exactly once on every path.
type Conversion struct {
	converter Converter
	tmpDir    string
	logger    *slog.Logger
}

// NewConversion creates a new conversion service
func NewConversion(conv Converter, tmpDir string, logger *slog.Logger) *Conversion {
	return &Conversion{
		converter: conv,
		tmpDir:    tmpDir,
		logger:    logger,
	}
}

// FileResult is the outcome of a file conversion.
type FileResult struct {
	Filename     string
	Markdown     string
	OriginalSize int64
	MarkdownSize int
}

// URLResult is the outcome of a URL conversion.
type URLResult struct {
	URL          string
	Markdown     string
	MarkdownSize int
}

// ConvertFile stages src under a unique temp name that preserves the
// extension of filename (the extension drives downstream format
// detection), converts it, and removes the staged file before returning.
func (s *Conversion) ConvertFile(ctx context.Context, src io.Reader, filename string) (*FileResult, error) {
	staged, err := s.stage(src, filename)
	if err != nil {
		return nil, &domain.ConversionError{Err: err}
	}
	defer func() {
		if err := os.Remove(staged); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove staged file", "path", staged, "error", err)
		}
	}()

	info, err := os.Stat(staged)
	if err != nil {
		return nil, &domain.ConversionError{Err: fmt.Errorf("failed to stat staged file: %w", err)}
	}

	s.logger.Info("converting file", "filename", filename)

	result, err := s.converter.Convert(ctx, converter.Input{Path: staged, Name: filename})
	if err != nil {
		return nil, &domain.ConversionError{Err: err}
	}

	// A nil result means an empty document, not a failure.
	markdown := ""
	if result != nil {
		markdown = result.Markdown
	}

	markdownSize := utf8.RuneCountInString(markdown)
	s.logger.Info("converted file",
		"filename", filename,
		"original_size", info.Size(),
		"markdown_size", markdownSize,
	)

	return &FileResult{
		Filename:     filename,
		Markdown:     markdown,
		OriginalSize: info.Size(),
		MarkdownSize: markdownSize,
	}, nil
}

// ConvertURL hands the URL straight to the converter; nothing is staged.
func (s *Conversion) ConvertURL(ctx context.Context, url string) (*URLResult, error) {
	s.logger.Info("converting url", "url", url)

	result, err := s.converter.Convert(ctx, converter.Input{URL: url})
	if err != nil {
		return nil, &domain.ConversionError{Err: err}
	}

	markdown := ""
	if result != nil {
		markdown = result.Markdown
	}

	markdownSize := utf8.RuneCountInString(markdown)
	s.logger.Info("converted url", "url", url, "markdown_size", markdownSize)

	return &URLResult{
		URL:          url,
		Markdown:     markdown,
		MarkdownSize: markdownSize,
	}, nil
}

// stage writes src to a uniquely named temp file ending in filename's
// extension. Uniqueness under concurrent requests is os.CreateTemp's job.
func (s *Conversion) stage(src io.Reader, filename string) (string, error) {
	f, err := os.CreateTemp(s.tmpDir, "markitdown-*"+filepath.Ext(filename))
	if err != nil {
		return "", fmt.Errorf("failed to create staging file: %w", err)
	}

	_, copyErr := io.Copy(f, src)
	closeErr := f.Close()

	if copyErr != nil || closeErr != nil {
		os.Remove(f.Name())
		if copyErr != nil {
			return "", fmt.Errorf("failed to write staging file: %w", copyErr)
		}
		return "", fmt.Errorf("failed to close staging file: %w", closeErr)
	}

	return f.Name(), nil
}
