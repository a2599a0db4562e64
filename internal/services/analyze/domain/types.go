// Package domain holds the analysis types and ports: what a scan produces
// and what the engine needs plugged in to produce it
package domain

import (
	"context"

	"thaiproof/internal/core/annotate"
	"thaiproof/internal/core/thaitext"
)

// TokenizerPort is the word segmentation contract the engine consumes.
// The built-in rule tokenizer satisfies it; dictionary-based segmenters
// plug in the same way
type TokenizerPort = thaitext.Tokenizer

// Finding is everything flagged in one text unit. Spans index bytes of
// Text; word lists are sorted for stable output
type Finding struct {
	Line int    `json:"line"`
	Text string `json:"text"`

	Spans []annotate.Span `json:"spans"`

	HighConfidence []string `json:"high_confidence,omitempty"`
	LowConfidence  []string `json:"low_confidence,omitempty"`
	InvalidPeriods []int    `json:"invalid_periods,omitempty"`
	HasPhinthu     bool     `json:"has_phinthu,omitempty"`
	HasApostrophe  bool     `json:"has_apostrophe,omitempty"`
}

// Report is the outcome of scanning a whole document
type Report struct {
	Findings []Finding `json:"findings"`

	// Units is how many non-empty paragraphs were scanned
	Units int `json:"units"`

	// Skipped counts units dropped for invalid encoding
	Skipped int `json:"skipped"`
}

// ProgressFunc receives scan progress. done counts finished units out of
// total; implementations must tolerate concurrent-free, in-order calls
type ProgressFunc func(done, total int)

// AnalyzerPort is the engine surface other modules consume
type AnalyzerPort interface {
	// AnalyzeParagraph scans one unit. A nil Finding with nil error means
	// the unit is clean
	AnalyzeParagraph(ctx context.Context, line int, text string) (*Finding, error)

	// ScanDocument scans raw paragraphs concurrently and reassembles
	// findings in document order. progress may be nil
	ScanDocument(ctx context.Context, paragraphs []string, progress ProgressFunc) (Report, error)

	// ReportHTML renders a standalone HTML report for a scan
	ReportHTML(rep Report) string
}

// Ports is the bundle the analyze module exposes
type Ports struct {
	Analyzer AnalyzerPort
}
