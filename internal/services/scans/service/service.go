// Package service implements the scan recorder on top of the sql seam
package service

import (
	"context"
	"time"

	"thaiproof/internal/modkit/repokit"
	perr "thaiproof/internal/platform/errors"
	"thaiproof/internal/platform/logger"
	analyzedom "thaiproof/internal/services/analyze/domain"
	"thaiproof/internal/services/scans/domain"
	"thaiproof/internal/services/scans/repo"

	"github.com/google/uuid"
)

// Service persists scans transactionally
type Service struct {
	log    logger.Logger
	tx     repokit.TxRunner
	binder repokit.Binder[repo.Storage]

	// now is swapped in tests
	now func() time.Time
}

// New wires the recorder. tx may be nil when persistence is disabled;
// calls then fail with an unavailable error
func New(log logger.Logger, tx repokit.TxRunner) *Service {
	return &Service{log: log, tx: tx, binder: repo.NewPG(), now: time.Now}
}

// Record implements domain.RecorderPort
func (s *Service) Record(ctx context.Context, in domain.WriteInput) (string, error) {
	if s.tx == nil {
		return "", perr.Unavailablef("scan persistence is not configured")
	}

	scan := domain.Scan{
		ID:        uuid.NewString(),
		Source:    in.Source,
		Units:     in.Units,
		Skipped:   in.Skipped,
		CreatedAt: s.now().UTC(),
	}

	ctx = logger.WithRequest(ctx, "", scan.ID)
	err := repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		st := s.binder.Bind(q)
		if err := st.InsertScan(ctx, scan); err != nil {
			return err
		}
		return st.InsertFindings(ctx, scan.ID, in.Findings)
	})
	if err != nil {
		return "", err
	}

	logger.C(ctx).Info().Int("findings", len(in.Findings)).Msg("scan recorded")
	return scan.ID, nil
}

// Get implements domain.RecorderPort
func (s *Service) Get(ctx context.Context, id string) (domain.Scan, []analyzedom.Finding, error) {
	if s.tx == nil {
		return domain.Scan{}, nil, perr.Unavailablef("scan persistence is not configured")
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.Scan{}, nil, perr.InvalidArgf("malformed scan id %q", id)
	}

	st := s.binder.Bind(s.tx)
	scan, err := st.GetScan(ctx, id)
	if err != nil {
		return domain.Scan{}, nil, err
	}
	findings, err := st.ListFindings(ctx, id)
	if err != nil {
		return domain.Scan{}, nil, err
	}
	return scan, findings, nil
}
