package service

import (
	"context"
	"strings"

	perr "thaiproof/internal/platform/errors"
	"thaiproof/internal/services/checkers/domain"
)

// Default marker tags produced by the external proofing service
const (
	OpenTag  = "<คำผิด>"
	CloseTag = "</คำผิด>"
)

// NopMarker returns text untouched, so the wrapping checker flags nothing.
// Used when no external marker is configured and there is no lexicon to
// fall back on
type NopMarker struct{}

// Mark implements domain.MarkerPort
func (NopMarker) Mark(_ context.Context, text string) (string, error) { return text, nil }

// Marked adapts a MarkerPort into a checker by extracting the words the
// marker wrapped in its tags
type Marked struct {
	marker     domain.MarkerPort
	open, clos string
}

// NewMarked builds the adapter; empty tags fall back to the defaults
func NewMarked(marker domain.MarkerPort, open, clos string) *Marked {
	if open == "" {
		open = OpenTag
	}
	if clos == "" {
		clos = CloseTag
	}
	return &Marked{marker: marker, open: open, clos: clos}
}

// Name implements domain.CheckerPort
func (m *Marked) Name() string { return "marked" }

// Check implements domain.CheckerPort
func (m *Marked) Check(ctx context.Context, text string) (domain.WordSet, error) {
	marked, err := m.marker.Mark(ctx, text)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDetector, "marker call failed")
	}
	return ExtractMarked(marked, m.open, m.clos)
}

// ExtractMarked pulls the distinct words wrapped in open/close tag pairs
// out of marked text. Unbalanced or nested tags mean the marker produced
// garbage, which is a detector failure
func ExtractMarked(marked, open, clos string) (domain.WordSet, error) {
	out := domain.WordSet{}
	rest := marked
	for {
		i := strings.Index(rest, open)
		j := strings.Index(rest, clos)
		if i < 0 && j < 0 {
			return out, nil
		}
		if i < 0 || j < i {
			return nil, perr.Detectorf("unbalanced marker tags in detector output")
		}
		body := rest[i+len(open) : j]
		if strings.Contains(body, open) {
			return nil, perr.Detectorf("nested marker tags in detector output")
		}
		if w := strings.TrimSpace(body); w != "" {
			out[w] = struct{}{}
		}
		rest = rest[j+len(clos):]
	}
}
