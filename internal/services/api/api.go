// Package api mounts the HTTP surface: document scan submission and
// persisted scan retrieval
package api

import (
	"net/http"
	"strings"
	"time"

	"thaiproof/internal/modkit/httpkit"
	"thaiproof/internal/platform/config"
	perr "thaiproof/internal/platform/errors"
	"thaiproof/internal/platform/logger"
	"thaiproof/internal/platform/net/middleware"
	analyzedom "thaiproof/internal/services/analyze/domain"
	scansdom "thaiproof/internal/services/scans/domain"

	"github.com/go-chi/chi/v5"
)

// Options carries everything the api needs mounted
type Options struct {
	Cfg      config.Conf
	Log      logger.Logger
	Analyzer analyzedom.AnalyzerPort

	// Recorder is nil when persistence is disabled; persist requests then 503
	Recorder scansdom.RecorderPort
}

// Mount attaches middleware and routes to the root router
func Mount(r httpkit.Router, o Options) {
	r.Use(middleware.Defaults()...)
	r.Use(middleware.CORS(middleware.CORSOptions{
		AllowedOrigins: o.Cfg.MayCSV("CORS_ORIGINS", []string{"*"}),
	}))
	r.Use(middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 2 * time.Second}))
	r.Use(middleware.Heartbeat("/healthz"))

	h := &handlers{opts: o}
	r.Route("/v1", func(v1 httpkit.Router) {
		httpkit.PostJSON(v1, "/scan", h.postScan)
		httpkit.Get(v1, "/scans/{id}", h.getScan)
	})
}

type handlers struct {
	opts Options
}

// ScanRequest submits a document for scanning. Either text (split on
// newlines) or explicit paragraphs must be present
type ScanRequest struct {
	Text       string   `json:"text" validate:"required_without=Paragraphs"`
	Paragraphs []string `json:"paragraphs" validate:"required_without=Text,omitempty,min=1"`
	Source     string   `json:"source" validate:"omitempty,max=255"`
	Persist    bool     `json:"persist"`
}

// ScanResponse carries the findings, the rendered report, and the stored
// scan id when persistence was requested
type ScanResponse struct {
	ScanID   string               `json:"scan_id,omitempty"`
	Units    int                  `json:"units"`
	Skipped  int                  `json:"skipped"`
	Findings []analyzedom.Finding `json:"findings"`
	HTML     string               `json:"html"`
}

func (h *handlers) postScan(r *http.Request, req ScanRequest) (any, error) {
	paragraphs := req.Paragraphs
	if len(paragraphs) == 0 {
		paragraphs = strings.Split(req.Text, "\n")
	}

	rep, err := h.opts.Analyzer.ScanDocument(r.Context(), paragraphs, nil)
	if err != nil {
		return nil, err
	}

	resp := ScanResponse{
		Units:    rep.Units,
		Skipped:  rep.Skipped,
		Findings: rep.Findings,
		HTML:     h.opts.Analyzer.ReportHTML(rep),
	}

	if req.Persist {
		if h.opts.Recorder == nil {
			return nil, perr.Unavailablef("scan persistence is not configured")
		}
		id, err := h.opts.Recorder.Record(r.Context(), scansdom.WriteInput{
			Source:   req.Source,
			Units:    rep.Units,
			Skipped:  rep.Skipped,
			Findings: rep.Findings,
		})
		if err != nil {
			return nil, err
		}
		resp.ScanID = id
	}
	return resp, nil
}

// ScanDetail is the persisted-scan read model
type ScanDetail struct {
	Scan     scansdom.Scan        `json:"scan"`
	Findings []analyzedom.Finding `json:"findings"`
}

func (h *handlers) getScan(r *http.Request) (any, error) {
	if h.opts.Recorder == nil {
		return nil, perr.Unavailablef("scan persistence is not configured")
	}
	id := chi.URLParam(r, "id")
	scan, findings, err := h.opts.Recorder.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return ScanDetail{Scan: scan, Findings: findings}, nil
}
