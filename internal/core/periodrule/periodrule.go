// Package periodrule decides whether a period in Thai prose is legitimate.
// Thai does not end sentences with a period, so every "." is suspect unless
// a whitelisted context (abbreviation, numbering, era marker, ellipsis)
// explains it
package periodrule

import (
	"regexp"
	"unicode/utf8"

	"thaiproof/internal/core/thaitext"
)

// DefaultWindow is the number of runes inspected on each side of a period
// when matching whitelist patterns
const DefaultWindow = 10

// Config tunes the validator. Zero values fall back to defaults
type Config struct {
	// Window is the context radius in runes; <=0 means DefaultWindow
	Window int
}

// rule is one whitelisted context. Boundary rules additionally require the
// rune before the match to be a non-word rune, so "ข1." does not legitimize
// the period via the bare-digit rule
type rule struct {
	re       *regexp.Regexp
	boundary bool
}

// Validator holds the compiled whitelist. Safe for concurrent use
type Validator struct {
	window int
	rules  []rule
}

// The whitelist, in evaluation order. Go's \b is ASCII-only so word
// boundaries for Thai patterns are enforced manually via rule.boundary
var ruleSpecs = []struct {
	expr     string
	boundary bool
}{
	{`[0-9]+\.`, true},      // arabic numbering: "1." "10."
	{`[๐-๙]+\.`, true},      // thai-digit numbering
	{`[ก-ฮ]\.`, true},       // single-consonant abbreviation: "พ." "น."
	{`พ\.ศ\.`, true},        // buddhist era
	{`ค\.ศ\.`, true},        // christian era
	{`[๐-๙]{1,2}\.[๐-๙]{1,2}`, false}, // clock time: "๑๐.๓๐"
	{`[0-9]{1,2}\.[0-9]{1,2}`, false}, // clock time with arabic digits
	{`\.{3,}`, false},       // ellipsis run
}

// New compiles the whitelist once
func New(cfg Config) *Validator {
	w := cfg.Window
	if w <= 0 {
		w = DefaultWindow
	}
	v := &Validator{window: w, rules: make([]rule, 0, len(ruleSpecs))}
	for _, rs := range ruleSpecs {
		v.rules = append(v.rules, rule{re: regexp.MustCompile(rs.expr), boundary: rs.boundary})
	}
	return v
}

// quote-adjacent periods are sentence-final punctuation after quoted speech
// and are never flagged
func precededByQuote(text string, idx int) bool {
	r, _ := utf8.DecodeLastRuneInString(text[:idx])
	switch r {
	case '"', '\'', '”', '’':
		return true
	}
	return false
}

// Suspects returns the byte offset of every period in text that no
// whitelist rule explains, ascending. Output is deterministic for
// identical input
func (v *Validator) Suspects(text string) []int {
	var out []int
	for idx := 0; idx < len(text); idx++ {
		if text[idx] != '.' {
			continue
		}
		if precededByQuote(text, idx) {
			continue
		}
		if !v.explained(text, idx) {
			out = append(out, idx)
		}
	}
	return out
}

// Valid reports whether the period at byte offset idx is whitelisted.
// text[idx] must be '.'
func (v *Validator) Valid(text string, idx int) bool {
	return precededByQuote(text, idx) || v.explained(text, idx)
}

func (v *Validator) explained(text string, idx int) bool {
	wstart, wend := v.windowAround(text, idx)
	win := text[wstart:wend]
	for _, ru := range v.rules {
		for _, m := range ru.re.FindAllStringIndex(win, -1) {
			ms, me := wstart+m[0], wstart+m[1]
			// the match must cover this period, not some other one
			if ms > idx || me < idx+1 {
				continue
			}
			if ru.boundary && ms > 0 {
				r, _ := utf8.DecodeLastRuneInString(text[:ms])
				if thaitext.IsWordRune(r) {
					continue
				}
			}
			return true
		}
	}
	return false
}

// windowAround widens [idx,idx+1) by v.window runes on each side,
// clamped to the text and snapped to rune boundaries
func (v *Validator) windowAround(text string, idx int) (int, int) {
	start := idx
	for i := 0; i < v.window && start > 0; i++ {
		_, sz := utf8.DecodeLastRuneInString(text[:start])
		start -= sz
	}
	end := idx + 1
	for i := 0; i < v.window && end < len(text); i++ {
		_, sz := utf8.DecodeRuneInString(text[end:])
		end += sz
	}
	return start, end
}
