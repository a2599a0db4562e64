package confidence

import (
	"reflect"
	"testing"

	"thaiproof/internal/core/thaitext"
)

func TestClassifyPartitionsUnion(t *testing.T) {
	a := NewSet("แมว", "หมา", "นก")
	b := NewSet("หมา", "นก", "ปลา")

	high, low := Classify(a, b)

	if !reflect.DeepEqual(high, NewSet("หมา", "นก")) {
		t.Fatalf("high=%v", high)
	}
	if !reflect.DeepEqual(low, NewSet("แมว", "ปลา")) {
		t.Fatalf("low=%v", low)
	}
	for w := range high {
		if _, ok := low[w]; ok {
			t.Fatalf("word %q in both tiers", w)
		}
	}
	if len(high)+len(low) != 4 {
		t.Fatalf("tiers do not cover union: high=%v low=%v", high, low)
	}
}

func TestClassifyEmptyInputs(t *testing.T) {
	high, low := Classify(nil, nil)
	if len(high) != 0 || len(low) != 0 {
		t.Fatalf("high=%v low=%v want empty", high, low)
	}

	high, low = Classify(NewSet("x"), nil)
	if len(high) != 0 {
		t.Fatalf("single-detector word promoted to high: %v", high)
	}
	if !reflect.DeepEqual(low, NewSet("x")) {
		t.Fatalf("low=%v", low)
	}
}

func TestMapperTokenAlignment(t *testing.T) {
	text := "ab cab"
	m := NewMapper(text, []string{"ab", "cab"})

	got := m.Spans("ab")
	if !reflect.DeepEqual(got, [][2]int{{0, 2}}) {
		t.Fatalf("spans(ab)=%v; must not match inside cab", got)
	}
	got = m.Spans("cab")
	if !reflect.DeepEqual(got, [][2]int{{3, 6}}) {
		t.Fatalf("spans(cab)=%v", got)
	}
}

func TestMapperAllOccurrences(t *testing.T) {
	text := "ผิด ถูก ผิด"
	tokens := thaitext.RuleTokenizer().Tokenize(text)
	m := NewMapper(text, tokens)

	spans := m.Spans("ผิด")
	if len(spans) != 2 {
		t.Fatalf("spans=%v want 2 occurrences", spans)
	}
	for _, sp := range spans {
		if text[sp[0]:sp[1]] != "ผิด" {
			t.Fatalf("span %v covers %q", sp, text[sp[0]:sp[1]])
		}
	}
	if spans[0][0] >= spans[1][0] {
		t.Fatalf("spans not ascending: %v", spans)
	}
}

func TestMapperSubstringFallbackRespectsBoundaries(t *testing.T) {
	// the detector flags a compound the tokenizer split; the fallback must
	// land on the whole run, not inside a larger word
	text := "xx คำผิดรวม xx"
	m := NewMapper(text, []string{"xx", "คำ", "ผิด", "รวม", "xx"})

	spans := m.Spans("คำผิดรวม")
	if len(spans) != 1 {
		t.Fatalf("spans=%v want 1", spans)
	}
	if text[spans[0][0]:spans[0][1]] != "คำผิดรวม" {
		t.Fatalf("span covers %q", text[spans[0][0]:spans[0][1]])
	}

	// embedded match with word-rune neighbors must be rejected
	if got := m.Spans("ผิดรวม"); got != nil {
		t.Fatalf("embedded substring matched: %v", got)
	}
}

func TestMapperUnknownWord(t *testing.T) {
	m := NewMapper("สวัสดี", []string{"สวัสดี"})
	if got := m.Spans("ไม่มี"); got != nil {
		t.Fatalf("spans=%v want nil", got)
	}
	if got := m.Spans(""); got != nil {
		t.Fatalf("empty word mapped: %v", got)
	}
}
