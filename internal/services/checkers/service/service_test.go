package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	perr "thaiproof/internal/platform/errors"
	"thaiproof/internal/services/checkers/domain"
)

func TestLexiconFlagsNearMissesOnly(t *testing.T) {
	lex := NewLexicon([]string{"สวัสดี", "ครับ", "hello"}, nil, 2)

	got, err := lex.Check(context.Background(), "สวัสดร ครับ world")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if _, ok := got["สวัสดร"]; !ok {
		t.Fatalf("near miss not flagged: %v", got)
	}
	if _, ok := got["ครับ"]; ok {
		t.Fatalf("exact lexicon word flagged: %v", got)
	}
	// "world" is 3+ edits from every entry: unknown vocabulary, not a typo
	if _, ok := got["world"]; ok {
		t.Fatalf("distant word flagged: %v", got)
	}
}

func TestLexiconSkipsNumbers(t *testing.T) {
	lex := NewLexicon([]string{"1234"}, nil, 2)
	got, err := lex.Check(context.Background(), "1235 ๑๒๓")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("numeric tokens flagged: %v", got)
	}
}

func TestLexiconStrictMode(t *testing.T) {
	lex := NewLexicon([]string{"ok"}, nil, 0)
	got, err := lex.Check(context.Background(), "ok bad")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !reflect.DeepEqual(got, domain.WordSet{"bad": {}}) {
		t.Fatalf("got %v", got)
	}
}

func TestLexiconDeterministic(t *testing.T) {
	lex := NewLexicon([]string{"สวัสดี"}, nil, 2)
	a, _ := lex.Check(context.Background(), "สวัสดร สวัสดร")
	b, _ := lex.Check(context.Background(), "สวัสดร สวัสดร")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("non-deterministic: %v vs %v", a, b)
	}
}

func TestExtractMarked(t *testing.T) {
	got, err := ExtractMarked("นี่คือ<คำผิด>ผืด</คำผิด>และ<คำผิด>ถุก</คำผิด>", OpenTag, CloseTag)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !reflect.DeepEqual(got, domain.WordSet{"ผืด": {}, "ถุก": {}}) {
		t.Fatalf("got %v", got)
	}
}

func TestExtractMarkedNoTags(t *testing.T) {
	got, err := ExtractMarked("ไม่มีอะไรผิด", OpenTag, CloseTag)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v want empty", got)
	}
}

func TestExtractMarkedUnbalanced(t *testing.T) {
	for _, in := range []string{
		"<คำผิด>เปิดไม่ปิด",
		"ปิดก่อน</คำผิด>เปิด<คำผิด>",
		"<คำผิด>ซ้อน<คำผิด>ใน</คำผิด></คำผิด>",
	} {
		_, err := ExtractMarked(in, OpenTag, CloseTag)
		if err == nil {
			t.Fatalf("%q: expected error", in)
		}
		if !perr.IsCode(err, perr.ErrorCodeDetector) {
			t.Fatalf("%q: code=%v want detector", in, perr.CodeOf(err))
		}
	}
}

func TestMarkedChecker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ก <คำผิด>ขข</คำผิด> ค"))
	}))
	defer srv.Close()

	chk := NewMarked(NewHTTPMarker(srv.URL, srv.Client()), "", "")
	if chk.Name() != "marked" {
		t.Fatalf("name=%q", chk.Name())
	}
	got, err := chk.Check(context.Background(), "ก ขข ค")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !reflect.DeepEqual(got, domain.WordSet{"ขข": {}}) {
		t.Fatalf("got %v", got)
	}
}

func TestMarkedCheckerUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	chk := NewMarked(NewHTTPMarker(srv.URL, srv.Client()), "", "")
	_, err := chk.Check(context.Background(), "อะไรก็ได้")
	if !perr.IsCode(err, perr.ErrorCodeDetector) {
		t.Fatalf("err=%v want detector code", err)
	}
}

func TestNopMarkerFlagsNothing(t *testing.T) {
	chk := NewMarked(NopMarker{}, "", "")
	got, err := chk.Check(context.Background(), "อะไร ก็ ได้")
	if err != nil || len(got) != 0 {
		t.Fatalf("got=%v err=%v", got, err)
	}
}

type countingChecker struct {
	calls int
	res   domain.WordSet
	err   error
}

func (c *countingChecker) Name() string { return "counting" }

func (c *countingChecker) Check(context.Context, string) (domain.WordSet, error) {
	c.calls++
	return c.res, c.err
}

func TestCachedMemoizesSuccess(t *testing.T) {
	inner := &countingChecker{res: domain.WordSet{"x": {}}}
	chk := NewCached(inner)

	a, _ := chk.Check(context.Background(), "เดิม")
	b, _ := chk.Check(context.Background(), "เดิม")
	if inner.calls != 1 {
		t.Fatalf("calls=%d want 1", inner.calls)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("results differ: %v vs %v", a, b)
	}

	// mutating a returned set must not leak into later hits
	delete(a, "x")
	c, _ := chk.Check(context.Background(), "เดิม")
	if _, ok := c["x"]; !ok {
		t.Fatalf("cache poisoned: %v", c)
	}
}

func TestCachedDoesNotCacheErrors(t *testing.T) {
	inner := &countingChecker{err: perr.Detectorf("down")}
	chk := NewCached(inner)

	if _, err := chk.Check(context.Background(), "x"); err == nil {
		t.Fatalf("expected error")
	}
	inner.err = nil
	inner.res = domain.WordSet{}
	if _, err := chk.Check(context.Background(), "x"); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("calls=%d want 2", inner.calls)
	}
}
