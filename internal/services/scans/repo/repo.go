// Package repo implements scan persistence over the sql seam
package repo

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"thaiproof/internal/modkit/repokit"
	perr "thaiproof/internal/platform/errors"
	analyzedom "thaiproof/internal/services/analyze/domain"
	"thaiproof/internal/services/scans/domain"
)

// Storage is the persistence surface the scans service needs
type Storage interface {
	InsertScan(ctx context.Context, s domain.Scan) error
	InsertFindings(ctx context.Context, scanID string, fs []analyzedom.Finding) error
	GetScan(ctx context.Context, id string) (domain.Scan, error)
	ListFindings(ctx context.Context, scanID string) ([]analyzedom.Finding, error)
}

// PG is the postgres implementation bound to a Queryer
type PG struct{ q repokit.Queryer }

// NewPG returns a binder that attaches a Queryer per call site (pool or tx)
func NewPG() repokit.Binder[Storage] {
	return repokit.BindFunc[Storage](func(q repokit.Queryer) Storage {
		return &PG{q: q}
	})
}

// InsertScan implements Storage
func (r *PG) InsertScan(ctx context.Context, s domain.Scan) error {
	const q = `
		INSERT INTO scans (id, source, units, skipped, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.q.Exec(ctx, q, s.ID, s.Source, s.Units, s.Skipped, s.CreatedAt); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "insert scan")
	}
	return nil
}

// InsertFindings implements Storage. One statement per batch, numbered args
func (r *PG) InsertFindings(ctx context.Context, scanID string, fs []analyzedom.Finding) error {
	if len(fs) == 0 {
		return nil
	}

	var (
		sb   strings.Builder
		args []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	sb.WriteString(`
		INSERT INTO scan_findings
			(scan_id, line, text, spans, high_words, low_words, invalid_periods, has_phinthu, has_apostrophe)
		VALUES
	`)
	for i, f := range fs {
		spans, err := json.Marshal(f.Spans)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "marshal spans")
		}
		high, err := json.Marshal(f.HighConfidence)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "marshal high words")
		}
		low, err := json.Marshal(f.LowConfidence)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "marshal low words")
		}
		periods, err := json.Marshal(f.InvalidPeriods)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "marshal periods")
		}
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(" +
			arg(scanID) + "," +
			arg(f.Line) + "," +
			arg(f.Text) + "," +
			arg(string(spans)) + "," +
			arg(string(high)) + "," +
			arg(string(low)) + "," +
			arg(string(periods)) + "," +
			arg(f.HasPhinthu) + "," +
			arg(f.HasApostrophe) + ")")
	}

	if _, err := r.q.Exec(ctx, sb.String(), args...); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "insert findings")
	}
	return nil
}

// GetScan implements Storage
func (r *PG) GetScan(ctx context.Context, id string) (domain.Scan, error) {
	const q = `
		SELECT id, source, units, skipped, created_at
		FROM scans
		WHERE id = $1
	`
	var s domain.Scan
	err := r.q.QueryRow(ctx, q, id).Scan(&s.ID, &s.Source, &s.Units, &s.Skipped, &s.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return domain.Scan{}, perr.NotFoundf("scan %s not found", id)
		}
		return domain.Scan{}, perr.Wrap(err, perr.ErrorCodeDB, "get scan")
	}
	return s, nil
}

// ListFindings implements Storage, ordered by line
func (r *PG) ListFindings(ctx context.Context, scanID string) ([]analyzedom.Finding, error) {
	const q = `
		SELECT line, text, spans, high_words, low_words, invalid_periods, has_phinthu, has_apostrophe
		FROM scan_findings
		WHERE scan_id = $1
		ORDER BY line ASC
	`
	rows, err := r.q.Query(ctx, q, scanID)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "list findings")
	}
	defer rows.Close()

	var out []analyzedom.Finding
	for rows.Next() {
		var (
			f       analyzedom.Finding
			spans   []byte
			high    []byte
			low     []byte
			periods []byte
		)
		if err := rows.Scan(&f.Line, &f.Text, &spans, &high, &low, &periods, &f.HasPhinthu, &f.HasApostrophe); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan finding row")
		}
		if err := unmarshalInto(spans, &f.Spans); err != nil {
			return nil, err
		}
		if err := unmarshalInto(high, &f.HighConfidence); err != nil {
			return nil, err
		}
		if err := unmarshalInto(low, &f.LowConfidence); err != nil {
			return nil, err
		}
		if err := unmarshalInto(periods, &f.InvalidPeriods); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "iterate findings")
	}
	return out, nil
}

func unmarshalInto(b []byte, dst any) error {
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "decode finding column")
	}
	return nil
}
