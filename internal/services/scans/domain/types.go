// Package domain holds the scan persistence types and ports
package domain

import (
	"context"
	"time"

	analyzedom "thaiproof/internal/services/analyze/domain"
)

// Scan is one persisted document scan
type Scan struct {
	ID        string    `json:"id"`
	Source    string    `json:"source,omitempty"`
	Units     int       `json:"units"`
	Skipped   int       `json:"skipped"`
	CreatedAt time.Time `json:"created_at"`
}

// WriteInput is everything needed to persist one finished scan
type WriteInput struct {
	Source   string
	Units    int
	Skipped  int
	Findings []analyzedom.Finding
}

// RecorderPort persists and retrieves scans
type RecorderPort interface {
	// Record stores the scan and its findings atomically, returning the scan id
	Record(ctx context.Context, in WriteInput) (string, error)

	// Get returns a stored scan with its findings in document order
	Get(ctx context.Context, id string) (Scan, []analyzedom.Finding, error)
}

// Ports is the bundle the scans module exposes
type Ports struct {
	Recorder RecorderPort
}
