package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"markitdown/internal/converter"
	"markitdown/internal/domain"
)

// echoConverter records its input and returns the staged file's contents
type echoConverter struct {
	lastInput converter.Input
	err       error
	nilResult bool
}

func (c *echoConverter) Convert(ctx context.Context, in converter.Input) (*converter.Result, error) {
	c.lastInput = in
	if c.err != nil {
		return nil, c.err
	}
	if c.nilResult {
		return nil, nil
	}
	if in.Path != "" {
		data, err := os.ReadFile(in.Path)
		if err != nil {
			return nil, err
		}
		return &converter.Result{Markdown: string(data)}, nil
	}
	return &converter.Result{Markdown: "# from " + in.URL}, nil
}

func newTestService(t *testing.T, conv Converter) (*Conversion, string) {
	t.Helper()
	dir := t.TempDir()
	return NewConversion(conv, dir, slog.New(slog.DiscardHandler)), dir
}

func stagedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read staging dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestConvertFile(t *testing.T) {
	conv := &echoConverter{}
	svc, dir := newTestService(t, conv)

	result, err := svc.ConvertFile(context.Background(), strings.NewReader("# Hello"), "test.md")
	if err != nil {
		t.Fatalf("ConvertFile() error: %v", err)
	}

	if result.Filename != "test.md" {
		t.Errorf("Filename = %q, want %q", result.Filename, "test.md")
	}
	if result.Markdown != "# Hello" {
		t.Errorf("Markdown = %q, want %q", result.Markdown, "# Hello")
	}
	if result.OriginalSize != 7 {
		t.Errorf("OriginalSize = %d, want 7", result.OriginalSize)
	}
	if result.MarkdownSize != 7 {
		t.Errorf("MarkdownSize = %d, want 7", result.MarkdownSize)
	}

	if got := stagedFiles(t, dir); len(got) != 0 {
		t.Errorf("staged files left behind: %v", got)
	}
}

func TestConvertFilePreservesExtension(t *testing.T) {
	conv := &echoConverter{}
	svc, _ := newTestService(t, conv)

	if _, err := svc.ConvertFile(context.Background(), strings.NewReader("data"), "slides.PPTX"); err != nil {
		t.Fatalf("ConvertFile() error: %v", err)
	}

	if ext := filepath.Ext(conv.lastInput.Path); ext != ".PPTX" {
		t.Errorf("staged extension = %q, want %q", ext, ".PPTX")
	}
	if conv.lastInput.Name != "slides.PPTX" {
		t.Errorf("effective name = %q, want %q", conv.lastInput.Name, "slides.PPTX")
	}
}

func TestConvertFileCleansUpOnFailure(t *testing.T) {
	conv := &echoConverter{err: errors.New("parser exploded")}
	svc, dir := newTestService(t, conv)

	_, err := svc.ConvertFile(context.Background(), strings.NewReader("data"), "broken.pdf")
	if err == nil {
		t.Fatal("ConvertFile() should propagate converter failure")
	}

	var convErr *domain.ConversionError
	if !errors.As(err, &convErr) {
		t.Errorf("error type = %T, want *domain.ConversionError", err)
	}
	if err.Error() != "parser exploded" {
		t.Errorf("error message = %q, want %q", err.Error(), "parser exploded")
	}

	if got := stagedFiles(t, dir); len(got) != 0 {
		t.Errorf("staged files left behind after failure: %v", got)
	}
}

func TestConvertFileNilResult(t *testing.T) {
	conv := &echoConverter{nilResult: true}
	svc, _ := newTestService(t, conv)

	result, err := svc.ConvertFile(context.Background(), strings.NewReader("data"), "empty.txt")
	if err != nil {
		t.Fatalf("ConvertFile() error: %v", err)
	}
	if result.Markdown != "" {
		t.Errorf("Markdown = %q, want empty string for nil result", result.Markdown)
	}
	if result.MarkdownSize != 0 {
		t.Errorf("MarkdownSize = %d, want 0", result.MarkdownSize)
	}
}

func TestConvertFileCountsRunes(t *testing.T) {
	conv := &echoConverter{}
	svc, _ := newTestService(t, conv)

	// 3 runes, 5 bytes
	result, err := svc.ConvertFile(context.Background(), strings.NewReader("héö"), "note.md")
	if err != nil {
		t.Fatalf("ConvertFile() error: %v", err)
	}
	if result.MarkdownSize != 3 {
		t.Errorf("MarkdownSize = %d, want rune count 3", result.MarkdownSize)
	}
	if result.OriginalSize != int64(len("héö")) {
		t.Errorf("OriginalSize = %d, want byte length %d", result.OriginalSize, len("héö"))
	}
}

func TestConvertFileStagingError(t *testing.T) {
	conv := &echoConverter{}
	svc := NewConversion(conv, filepath.Join(t.TempDir(), "missing"), slog.New(slog.DiscardHandler))

	_, err := svc.ConvertFile(context.Background(), strings.NewReader("data"), "x.txt")
	if err == nil {
		t.Fatal("ConvertFile() should fail when the staging dir does not exist")
	}
	var convErr *domain.ConversionError
	if !errors.As(err, &convErr) {
		t.Errorf("error type = %T, want *domain.ConversionError", err)
	}
}

// failingReader errors partway through the upload body
type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestConvertFileCopyErrorCleansUp(t *testing.T) {
	conv := &echoConverter{}
	svc, dir := newTestService(t, conv)

	_, err := svc.ConvertFile(context.Background(), failingReader{}, "x.txt")
	if err == nil {
		t.Fatal("ConvertFile() should fail when the body read fails")
	}

	if got := stagedFiles(t, dir); len(got) != 0 {
		t.Errorf("staged files left behind after copy failure: %v", got)
	}
}

func TestConvertURL(t *testing.T) {
	conv := &echoConverter{}
	svc, dir := newTestService(t, conv)

	result, err := svc.ConvertURL(context.Background(), "https://example.com/doc")
	if err != nil {
		t.Fatalf("ConvertURL() error: %v", err)
	}

	if result.URL != "https://example.com/doc" {
		t.Errorf("URL = %q, want the input URL", result.URL)
	}
	if result.Markdown != "# from https://example.com/doc" {
		t.Errorf("Markdown = %q", result.Markdown)
	}
	if result.MarkdownSize != len(result.Markdown) {
		t.Errorf("MarkdownSize = %d, want %d", result.MarkdownSize, len(result.Markdown))
	}

	// URL conversion never stages anything
	if conv.lastInput.Path != "" {
		t.Errorf("unexpected staged path %q for URL conversion", conv.lastInput.Path)
	}
	if got := stagedFiles(t, dir); len(got) != 0 {
		t.Errorf("staged files created for URL conversion: %v", got)
	}
}

func TestConvertURLFailure(t *testing.T) {
	conv := &echoConverter{err: errors.New("fetch failed")}
	svc, _ := newTestService(t, conv)

	_, err := svc.ConvertURL(context.Background(), "not-a-real-url")
	if err == nil {
		t.Fatal("ConvertURL() should propagate converter failure")
	}
	if err.Error() != "fetch failed" {
		t.Errorf("error message = %q, want %q", err.Error(), "fetch failed")
	}
}
