package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "thaiproof/internal/platform/errors"
)

type scanReq struct {
	Text    string `json:"text" validate:"required"`
	Workers int    `json:"workers" validate:"omitempty,min=1,max=64"`
}

func TestParseJSONOK(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"สวัสดี","workers":4}`))
	in, err := ParseJSON[scanReq](r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Text != "สวัสดี" || in.Workers != 4 {
		t.Fatalf("in = %+v", in)
	}
}

func TestParseJSONEmptyBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(""))
	_, err := ParseJSON[scanReq](r)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("err = %v, want json code", err)
	}
}

func TestParseJSONUnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"x","nope":1}`))
	_, err := ParseJSON[scanReq](r)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("err = %v, want json code", err)
	}
}

func TestParseJSONTrailingData(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"x"}{"text":"y"}`))
	_, err := ParseJSON[scanReq](r)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("err = %v, want json code", err)
	}
}

func TestParseJSONValidationFailure(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"workers":4}`))
	_, err := ParseJSON[scanReq](r)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v, want validation code", err)
	}
	e, ok := perr.As(err)
	if !ok || e.Field() != "text" {
		t.Fatalf("field = %q, want json tag name", e.Field())
	}
}

func TestParseJSONRangeValidation(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"x","workers":999}`))
	_, err := ParseJSON[scanReq](r)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v, want validation code", err)
	}
}
