package thaitext

import (
	"reflect"
	"testing"
)

func TestParagraphsNumbersNonEmptyOnly(t *testing.T) {
	units := Paragraphs([]string{"  ", "หนึ่ง", "", "\t", "สอง  ", "three"})
	if len(units) != 3 {
		t.Fatalf("units=%d want 3", len(units))
	}
	if units[0].Line != 1 || units[0].Text != "หนึ่ง" {
		t.Fatalf("unit0=%+v", units[0])
	}
	if units[1].Line != 2 || units[1].Text != "สอง" {
		t.Fatalf("unit1=%+v", units[1])
	}
	if units[2].Line != 3 || units[2].Text != "three" {
		t.Fatalf("unit2=%+v", units[2])
	}
}

func TestParagraphsEmptyDocument(t *testing.T) {
	if got := Paragraphs([]string{"", "   ", "\t\t"}); len(got) != 0 {
		t.Fatalf("expected no units, got %v", got)
	}
	if got := Paragraphs(nil); len(got) != 0 {
		t.Fatalf("expected no units for nil input, got %v", got)
	}
}

func TestValid(t *testing.T) {
	if !Valid("สวัสดี abc") {
		t.Fatalf("valid thai text flagged invalid")
	}
	if Valid(string([]byte{0xff, 0xfe})) {
		t.Fatalf("broken bytes reported valid")
	}
}

func TestIsWordRune(t *testing.T) {
	for _, r := range []rune{'ก', 'z', '9', '๙', '_', Phinthu} {
		if !IsWordRune(r) {
			t.Fatalf("expected word rune: %q", r)
		}
	}
	for _, r := range []rune{' ', '.', '-', '\'', '"', '(', 0} {
		if IsWordRune(r) {
			t.Fatalf("expected non-word rune: %q", r)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	cases := map[string]bool{
		"123":  true,
		"๑๒๓":  true,
		"12ก":  false,
		"":     false,
		"12.3": false,
	}
	for in, want := range cases {
		if got := IsNumeric(in); got != want {
			t.Fatalf("IsNumeric(%q)=%v want %v", in, got, want)
		}
	}
}

func TestRuleTokenizerSplitsScripts(t *testing.T) {
	toks := RuleTokenizer().Tokenize("ไทย2024 abc, ต่อ")
	want := []string{"ไทย", "2024", "abc", "ต่อ"}
	if !reflect.DeepEqual(toks, want) {
		t.Fatalf("tokens=%v want %v", toks, want)
	}
}

func TestRuleTokenizerDeterministic(t *testing.T) {
	in := "คำ หนึ่ง คำ สอง 99"
	a := RuleTokenizer().Tokenize(in)
	b := RuleTokenizer().Tokenize(in)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("tokenizer not deterministic: %v vs %v", a, b)
	}
}

func TestTokenSpansAlignInOrder(t *testing.T) {
	text := "ab cab"
	spans := TokenSpans(text, []string{"ab", "cab"})
	want := [][2]int{{0, 2}, {3, 6}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("spans=%v want %v", spans, want)
	}
	for _, sp := range spans {
		if text[sp[0]:sp[1]] != "ab" && text[sp[0]:sp[1]] != "cab" {
			t.Fatalf("span %v does not cover a token", sp)
		}
	}
}

func TestTokenSpansSkipsUnlocatable(t *testing.T) {
	spans := TokenSpans("abc", []string{"abc", "zzz"})
	if !reflect.DeepEqual(spans, [][2]int{{0, 3}}) {
		t.Fatalf("spans=%v", spans)
	}
}

func TestExpandToToken(t *testing.T) {
	s := "foo bar baz"
	ls, rs := ExpandToToken(s, 5, 6)
	if s[ls:rs] != "bar" {
		t.Fatalf("expanded=%q want bar", s[ls:rs])
	}
}

func TestFindPhinthuAllOccurrences(t *testing.T) {
	text := "กฺ และ ขฺ"
	spans := FindPhinthu(text)
	if len(spans) != 2 {
		t.Fatalf("spans=%v want 2 hits", spans)
	}
	for _, sp := range spans {
		if text[sp[0]:sp[1]] != string(rune(Phinthu)) {
			t.Fatalf("span %v is not phinthu", sp)
		}
	}
}

func TestFindApostrophes(t *testing.T) {
	spans := FindApostrophes("it's 'ok'")
	if len(spans) != 3 {
		t.Fatalf("spans=%v want 3", spans)
	}
	if spans[0] != [2]int{2, 3} {
		t.Fatalf("first span=%v", spans[0])
	}
}
