package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	perr "thaiproof/internal/platform/errors"
)

// markBodyLimit caps how much marked text we accept back; tags roughly
// triple the size of a pathological all-misspelled unit, 4MB is plenty
const markBodyLimit = 4 << 20

// HTTPMarker calls an external marking service over HTTP. The contract is
// plain text in, marked plain text out
type HTTPMarker struct {
	url    string
	client *http.Client
}

// NewHTTPMarker builds a marker client; a nil client gets a 15s timeout default
func NewHTTPMarker(url string, client *http.Client) *HTTPMarker {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPMarker{url: url, client: client}
}

// Mark implements domain.MarkerPort
func (h *HTTPMarker) Mark(ctx context.Context, text string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, strings.NewReader(text))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeDetector, "build marker request")
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeDetector, "marker request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", perr.Detectorf("marker returned status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, markBodyLimit))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeDetector, "read marker response")
	}
	return string(b), nil
}
