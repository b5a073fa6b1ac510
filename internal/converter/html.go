package converter

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// maxFetchBytes caps how much of a remote document is read (10 MiB).
const maxFetchBytes = 10 << 20

// HTML is a native fallback backend for HTML documents and web pages,
// used when the markitdown binary is not installed.
type HTML struct {
	client *http.Client
}

// NewHTML creates the native HTML backend.
func NewHTML() *HTML {
	return &HTML{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Accepts reports whether the input is HTML or a URL.
func (h *HTML) Accepts(in Input) bool {
	if in.URL != "" {
		return true
	}
	switch in.Ext() {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

// Convert fetches or reads the document and renders it to markdown.
func (h *HTML) Convert(ctx context.Context, in Input) (*Result, error) {
	var raw []byte

	if in.URL != "" {
		fetched, err := h.fetch(ctx, in.URL)
		if err != nil {
			return nil, err
		}
		raw = fetched
	} else {
		read, err := os.ReadFile(in.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", in.Path, err)
		}
		raw = read
	}

	markdown, err := htmltomarkdown.ConvertString(string(raw))
	if err != nil {
		return nil, fmt.Errorf("html conversion failed: %w", err)
	}

	return &Result{Markdown: markdown}, nil
}

func (h *HTML) fetch(ctx context.Context, url string) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("unsupported URL scheme: %s", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %s: %w", url, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}

	return body, nil
}
