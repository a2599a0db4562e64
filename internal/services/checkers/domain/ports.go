// Package domain declares the checker contracts: the two independent
// misspelling detectors every scan consults, and the external marker
// service one of them wraps
package domain

import "context"

// WordSet is the distinct words one detector flagged in a text unit
type WordSet = map[string]struct{}

// CheckerPort is a misspelling detector. Check returns the set of words it
// flags in text. Implementations must be deterministic for identical input;
// the engine treats an error as "no findings from this detector" and keeps
// the scan alive
type CheckerPort interface {
	Name() string
	Check(ctx context.Context, text string) (WordSet, error)
}

// MarkerPort is an external service that returns text with misspelled
// words wrapped in marker tags, e.g. <คำผิด>...</คำผิด>
type MarkerPort interface {
	Mark(ctx context.Context, text string) (string, error)
}

// Ports is the bundle the checkers module exposes for cross-module wiring
type Ports struct {
	Primary   CheckerPort
	Secondary CheckerPort
}
