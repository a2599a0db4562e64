// Package confidence reconciles two independent misspelling detectors into
// high and low confidence tiers, and maps flagged words back onto byte
// spans of the text they came from
package confidence

import (
	"strings"
	"unicode/utf8"

	"thaiproof/internal/core/thaitext"
)

// Set is a detector result: the distinct words one detector flagged
type Set = map[string]struct{}

// NewSet builds a Set from words, dropping empties
func NewSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		if w != "" {
			s[w] = struct{}{}
		}
	}
	return s
}

// Classify partitions the union of two detector results: words both
// detectors flagged are high confidence, words only one flagged are low.
// The two tiers never overlap and together cover the union exactly
func Classify(a, b Set) (high, low Set) {
	high = make(Set)
	low = make(Set)
	for w := range a {
		if _, ok := b[w]; ok {
			high[w] = struct{}{}
		} else {
			low[w] = struct{}{}
		}
	}
	for w := range b {
		if _, ok := a[w]; !ok {
			low[w] = struct{}{}
		}
	}
	return high, low
}

// Mapper resolves flagged words to [start,end) byte spans over one text
// unit. Token alignment is authoritative: a word maps to the tokens the
// tokenizer produced, so "ab" in "ab cab" maps only to the standalone
// token and never to the tail of "cab". Words the tokenizer never emitted
// fall back to a boundary-checked substring scan
type Mapper struct {
	text    string
	byToken map[string][][2]int
}

// NewMapper aligns tokens against text once; Spans calls are then cheap
func NewMapper(text string, tokens []string) *Mapper {
	m := &Mapper{text: text, byToken: make(map[string][][2]int, len(tokens))}
	for _, sp := range thaitext.TokenSpans(text, tokens) {
		tok := text[sp[0]:sp[1]]
		m.byToken[tok] = append(m.byToken[tok], sp)
	}
	return m
}

// Spans returns every occurrence of word in the text, ascending.
// Returns nil when the word cannot be located
func (m *Mapper) Spans(word string) [][2]int {
	if word == "" {
		return nil
	}
	if sp, ok := m.byToken[word]; ok {
		return sp
	}
	return m.substringSpans(word)
}

// substringSpans finds non-overlapping occurrences whose neighbors are
// non-word runes, so a detector word that spans token boundaries (or uses
// a segmentation the tokenizer disagrees with) still lands on whole words
func (m *Mapper) substringSpans(word string) [][2]int {
	var out [][2]int
	for cursor := 0; ; {
		i := strings.Index(m.text[cursor:], word)
		if i < 0 {
			return out
		}
		start := cursor + i
		end := start + len(word)
		if m.boundedAt(start, end) {
			out = append(out, [2]int{start, end})
			cursor = end
			continue
		}
		_, sz := utf8.DecodeRuneInString(m.text[start:])
		cursor = start + sz
	}
}

func (m *Mapper) boundedAt(start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(m.text[:start])
		if thaitext.IsWordRune(r) {
			return false
		}
	}
	if end < len(m.text) {
		r, _ := utf8.DecodeRuneInString(m.text[end:])
		if thaitext.IsWordRune(r) {
			return false
		}
	}
	return true
}
