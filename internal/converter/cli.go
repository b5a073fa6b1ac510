package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// ErrBinaryNotFound indicates the markitdown binary is not installed.
var ErrBinaryNotFound = errors.New("markitdown binary not found (pip install markitdown)")

// commonBinaryPaths are checked when the binary is not on PATH.
var commonBinaryPaths = []string{
	"/usr/local/bin/markitdown",
	"/usr/bin/markitdown",
	"/opt/homebrew/bin/markitdown",
}

// CLI converts files and URLs by invoking the markitdown binary.
type CLI struct {
	binPath string
	formats *FormatSet
	logger  *slog.Logger
}

// NewCLI locates the markitdown binary and loads the format manifest.
// binPath, when non-empty, is used as-is instead of searching.
func NewCLI(binPath string, logger *slog.Logger) (*CLI, error) {
	if binPath == "" {
		found, err := findBinary()
		if err != nil {
			return nil, err
		}
		binPath = found
	} else if _, err := os.Stat(binPath); err != nil {
		return nil, fmt.Errorf("markitdown binary not usable at %s: %w", binPath, err)
	}

	formats, err := LoadFormats()
	if err != nil {
		return nil, err
	}

	return &CLI{
		binPath: binPath,
		formats: formats,
		logger:  logger,
	}, nil
}

// Accepts reports whether the markitdown CLI handles the input. URLs are
// always accepted; files are matched by extension against the manifest.
func (c *CLI) Accepts(in Input) bool {
	if in.URL != "" {
		return true
	}
	return c.formats.Supported(in.Ext())
}

// Convert runs the binary against the staged path or URL and returns its
// stdout as markdown.
func (c *CLI) Convert(ctx context.Context, in Input) (*Result, error) {
	cmd := exec.CommandContext(ctx, c.binPath, in.Source())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("invoking markitdown", "bin", c.binPath, "source", in.Source())

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("markitdown interrupted: %w", ctx.Err())
		}
		if msg := lastLine(stderr.String()); msg != "" {
			return nil, fmt.Errorf("markitdown failed: %s", msg)
		}
		return nil, fmt.Errorf("markitdown failed: %w", err)
	}

	return &Result{Markdown: stdout.String()}, nil
}

// findBinary locates markitdown on PATH or in common install locations.
func findBinary() (string, error) {
	if path, err := exec.LookPath("markitdown"); err == nil {
		return path, nil
	}

	for _, path := range commonBinaryPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", ErrBinaryNotFound
}

// lastLine returns the final non-empty line of s, trimmed. Python
// tracebacks put the exception message there.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
