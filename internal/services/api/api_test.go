package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"thaiproof/internal/platform/config"
	perr "thaiproof/internal/platform/errors"
	"thaiproof/internal/platform/logger"
	phttp "thaiproof/internal/platform/net/http"
	analyzedom "thaiproof/internal/services/analyze/domain"
	scansdom "thaiproof/internal/services/scans/domain"

	"github.com/go-chi/chi/v5"
)

type stubAnalyzer struct {
	rep  analyzedom.Report
	err  error
	last []string
}

func (s *stubAnalyzer) AnalyzeParagraph(context.Context, int, string) (*analyzedom.Finding, error) {
	return nil, nil
}

func (s *stubAnalyzer) ScanDocument(_ context.Context, paragraphs []string, _ analyzedom.ProgressFunc) (analyzedom.Report, error) {
	s.last = paragraphs
	return s.rep, s.err
}

func (s *stubAnalyzer) ReportHTML(analyzedom.Report) string { return "<html>report</html>" }

type stubRecorder struct {
	id      string
	err     error
	scan    scansdom.Scan
	written *scansdom.WriteInput
}

func (s *stubRecorder) Record(_ context.Context, in scansdom.WriteInput) (string, error) {
	s.written = &in
	return s.id, s.err
}

func (s *stubRecorder) Get(_ context.Context, id string) (scansdom.Scan, []analyzedom.Finding, error) {
	if s.err != nil {
		return scansdom.Scan{}, nil, s.err
	}
	return s.scan, nil, nil
}

func mountTestAPI(t *testing.T, an analyzedom.AnalyzerPort, rec scansdom.RecorderPort) http.Handler {
	t.Helper()
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{
		Cfg:      config.New().Prefix("TEST_API_"),
		Log:      *logger.Named("api-test"),
		Analyzer: an,
		Recorder: rec,
	})
	return mux
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestPostScan(t *testing.T) {
	an := &stubAnalyzer{rep: analyzedom.Report{Units: 2}}
	h := mountTestAPI(t, an, nil)

	rr := doJSON(t, h, http.MethodPost, "/v1/scan", map[string]any{
		"paragraphs": []string{"หนึ่ง", "สอง"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var env struct {
		Data ScanResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Units != 2 || env.Data.HTML == "" {
		t.Fatalf("data=%+v", env.Data)
	}
	if len(an.last) != 2 {
		t.Fatalf("analyzer got %v", an.last)
	}
}

func TestPostScanSplitsText(t *testing.T) {
	an := &stubAnalyzer{}
	h := mountTestAPI(t, an, nil)

	rr := doJSON(t, h, http.MethodPost, "/v1/scan", map[string]any{
		"text": "หนึ่ง\nสอง\nสาม",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if len(an.last) != 3 {
		t.Fatalf("paragraphs=%v want 3", an.last)
	}
}

func TestPostScanValidation(t *testing.T) {
	h := mountTestAPI(t, &stubAnalyzer{}, nil)

	rr := doJSON(t, h, http.MethodPost, "/v1/scan", map[string]any{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
}

func TestPostScanPersist(t *testing.T) {
	rec := &stubRecorder{id: "3d9c9f24-9f1b-4b5c-8f52-0f7ac9a4f0ee"}
	h := mountTestAPI(t, &stubAnalyzer{rep: analyzedom.Report{Units: 1}}, rec)

	rr := doJSON(t, h, http.MethodPost, "/v1/scan", map[string]any{
		"text":    "อะไรสักอย่าง",
		"persist": true,
		"source":  "doc.txt",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if rec.written == nil || rec.written.Source != "doc.txt" {
		t.Fatalf("recorder input: %+v", rec.written)
	}
	if !strings.Contains(rr.Body.String(), rec.id) {
		t.Fatalf("scan id missing from body: %s", rr.Body.String())
	}
}

func TestPostScanPersistWithoutStore(t *testing.T) {
	h := mountTestAPI(t, &stubAnalyzer{}, nil)

	rr := doJSON(t, h, http.MethodPost, "/v1/scan", map[string]any{
		"text":    "x",
		"persist": true,
	})
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGetScan(t *testing.T) {
	rec := &stubRecorder{scan: scansdom.Scan{ID: "abc", Units: 4}}
	h := mountTestAPI(t, &stubAnalyzer{}, rec)

	rr := doJSON(t, h, http.MethodGet, "/v1/scans/abc", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"units":4`) {
		t.Fatalf("body=%s", rr.Body.String())
	}
}

func TestGetScanNotFound(t *testing.T) {
	rec := &stubRecorder{err: perr.NotFoundf("scan missing")}
	h := mountTestAPI(t, &stubAnalyzer{}, rec)

	rr := doJSON(t, h, http.MethodGet, "/v1/scans/missing", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	h := mountTestAPI(t, &stubAnalyzer{}, nil)
	rr := doJSON(t, h, http.MethodGet, "/healthz", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
}
