package service

import (
	"bufio"
	"context"
	"os"
	"strings"
	"unicode/utf8"

	"thaiproof/internal/core/thaitext"
	perr "thaiproof/internal/platform/errors"

	"github.com/antzucaro/matchr"
)

// Lexicon flags tokens that sit close to a known word without matching it.
// A token already in the lexicon is correct; a token within MaxDistance
// edits of a lexicon entry is a likely typo; anything further is assumed
// to be vocabulary the lexicon simply lacks. With MaxDistance <= 0 every
// out-of-lexicon token is flagged instead
type Lexicon struct {
	tok         thaitext.Tokenizer
	words       map[string]struct{}
	byLen       map[int][]string
	maxDistance int
}

// NewLexicon builds the checker from a word list. tok nil means the
// built-in rule tokenizer
func NewLexicon(words []string, tok thaitext.Tokenizer, maxDistance int) *Lexicon {
	if tok == nil {
		tok = thaitext.RuleTokenizer()
	}
	l := &Lexicon{
		tok:         tok,
		words:       make(map[string]struct{}, len(words)),
		byLen:       make(map[int][]string),
		maxDistance: maxDistance,
	}
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, dup := l.words[w]; dup {
			continue
		}
		l.words[w] = struct{}{}
		n := utf8.RuneCountInString(w)
		l.byLen[n] = append(l.byLen[n], w)
	}
	return l
}

// LoadLexicon reads one word per line, ignoring blanks and # comments
func LoadLexicon(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "open lexicon %s", path)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read lexicon %s", path)
	}
	return out, nil
}

// Name implements domain.CheckerPort
func (l *Lexicon) Name() string { return "lexicon" }

// Check implements domain.CheckerPort
func (l *Lexicon) Check(ctx context.Context, text string) (map[string]struct{}, error) {
	out := map[string]struct{}{}
	seen := map[string]struct{}{}
	for _, tok := range l.tok.Tokenize(text) {
		if err := ctx.Err(); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "lexicon check canceled")
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if thaitext.IsNumeric(tok) {
			continue
		}
		if _, ok := l.words[tok]; ok {
			continue
		}
		if l.suspicious(tok) {
			out[tok] = struct{}{}
		}
	}
	return out, nil
}

// suspicious reports whether tok is a near miss of some lexicon entry.
// Candidates are limited to entries whose rune length is within
// maxDistance, which keeps the scan linear in practice
func (l *Lexicon) suspicious(tok string) bool {
	if l.maxDistance <= 0 {
		return true
	}
	n := utf8.RuneCountInString(tok)
	for d := -l.maxDistance; d <= l.maxDistance; d++ {
		for _, w := range l.byLen[n+d] {
			if matchr.DamerauLevenshtein(tok, w) <= l.maxDistance {
				return true
			}
		}
	}
	return false
}
