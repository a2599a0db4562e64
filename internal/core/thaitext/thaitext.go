// Package thaitext provides text-unit handling for Thai document scans:
// paragraph extraction with stable numbering, NFC normalization, character
// classes, a rule-based fallback tokenizer, and exact-offset scans for the
// stylistic checks (phinthu, apostrophes)
package thaitext

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Phinthu is the Thai combining character U+0E3A. It suppresses an inherent
// vowel in transliteration; an unexpected occurrence indicates input error
const Phinthu = 'ฺ'

// Unit is one non-empty paragraph of a document.
// Line is the 1-based position among non-empty paragraphs and is stable
// across repeated runs. Text is NFC-normalized and trimmed. Immutable
type Unit struct {
	Line int
	Text string
}

// Paragraphs trims raw paragraph strings, drops empty ones, and numbers the
// survivors 1-based. Text is NFC-normalized so offsets are reproducible
func Paragraphs(raw []string) []Unit {
	out := make([]Unit, 0, len(raw))
	for _, p := range raw {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}
		out = append(out, Unit{Line: len(out) + 1, Text: norm.NFC.String(t)})
	}
	return out
}

// Valid reports whether text is well-formed UTF-8
func Valid(text string) bool { return utf8.ValidString(text) }

// IsThai reports whether r is in the Thai block
func IsThai(r rune) bool { return r >= 0x0E00 && r <= 0x0E7F }

// IsWordRune reports whether r is considered a word character for boundary
// checks: letters, numbers, combining marks (Mn), and connector punctuation.
// Hyphen and most punctuation remain non-word
func IsWordRune(r rune) bool {
	if r == utf8.RuneError || r == 0 {
		return false
	}
	return unicode.IsLetter(r) ||
		unicode.IsNumber(r) ||
		unicode.In(r, unicode.Mn, unicode.Pc)
}

// IsNumeric reports whether word consists solely of Arabic or Thai digits
func IsNumeric(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if (r < '0' || r > '9') && (r < '๐' || r > '๙') {
			return false
		}
	}
	return true
}

// ExpandToToken widens [start,end) to the containing token delimited by non-word runes
func ExpandToToken(s string, start, end int) (int, int) {
	ls, rs := start, end
	for ls > 0 {
		r, sz := utf8.DecodeLastRuneInString(s[:ls])
		if !IsWordRune(r) {
			break
		}
		ls -= sz
	}
	for rs < len(s) {
		r, sz := utf8.DecodeRuneInString(s[rs:])
		if !IsWordRune(r) {
			break
		}
		rs += sz
	}
	return ls, rs
}

// Tokenizer splits a text unit into an ordered sequence of words.
// Implementations must be deterministic for identical input
type Tokenizer interface {
	Tokenize(text string) []string
}

// TokenizerFunc adapts a function to Tokenizer
type TokenizerFunc func(string) []string

// Tokenize implements Tokenizer
func (f TokenizerFunc) Tokenize(text string) []string { return f(text) }

// RuleTokenizer is the built-in fallback segmenter. It groups maximal runs
// of word runes into tokens, splitting at the Thai/non-Thai script boundary
// so mixed text like "ไทย2024abc" yields separate tokens. Dictionary-based
// segmenters plug in through the Tokenizer seam instead
func RuleTokenizer() Tokenizer {
	return TokenizerFunc(func(text string) []string {
		var out []string
		start := -1
		thai := false
		flush := func(end int) {
			if start >= 0 {
				out = append(out, text[start:end])
				start = -1
			}
		}
		for i, r := range text {
			if !IsWordRune(r) {
				flush(i)
				continue
			}
			rt := IsThai(r)
			if start >= 0 && rt != thai {
				flush(i)
			}
			if start < 0 {
				start = i
				thai = rt
			}
		}
		flush(len(text))
		return out
	})
}

// TokenSpans aligns tokenizer output back onto text, returning one
// [start,end) byte span per token in order. Tokens that cannot be located
// at or after the alignment cursor are skipped; spans never overlap
func TokenSpans(text string, tokens []string) [][2]int {
	spans := make([][2]int, 0, len(tokens))
	cursor := 0
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		i := strings.Index(text[cursor:], tok)
		if i < 0 {
			continue
		}
		start := cursor + i
		end := start + len(tok)
		spans = append(spans, [2]int{start, end})
		cursor = end
	}
	return spans
}

// FindPhinthu returns a [start,end) byte span for every phinthu occurrence
func FindPhinthu(text string) [][2]int { return occurrences(text, Phinthu) }

// FindApostrophes returns a [start,end) byte span per apostrophe occurrence
func FindApostrophes(text string) [][2]int { return occurrences(text, '\'') }

func occurrences(text string, want rune) [][2]int {
	var out [][2]int
	for i, r := range text {
		if r == want {
			out = append(out, [2]int{i, i + utf8.RuneLen(r)})
		}
	}
	return out
}
