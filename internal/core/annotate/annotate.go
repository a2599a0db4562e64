// Package annotate turns categorized byte spans over plain text into
// HTML-safe marked-up output. Escaping happens exactly once, spans are
// translated through an offset map so they never cut entities, and
// overlaps are resolved by category precedence before a single render pass
package annotate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Category classifies a finding span. Ordering is precedence: when two
// spans overlap, the lower-valued category keeps its bytes and the other
// is clipped around it
type Category int

const (
	HighConfidence Category = iota
	LowConfidence
	PhinthuChar
	InvalidPeriod
	Apostrophe
)

var categoryNames = [...]string{
	HighConfidence: "high-confidence",
	LowConfidence:  "low-confidence",
	PhinthuChar:    "phinthu",
	InvalidPeriod:  "invalid-period",
	Apostrophe:     "apostrophe",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Span is a half-open [Start,End) byte range over the original (unescaped)
// text with a category attached
type Span struct {
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Category Category `json:"category"`
}

// StyleMap assigns an inline background color per category
type StyleMap map[Category]string

// DefaultStyles returns the standard report palette
func DefaultStyles() StyleMap {
	return StyleMap{
		HighConfidence: "#ffcccc",
		LowConfidence:  "#f5cba7",
		PhinthuChar:    "#ffb84d",
		Apostrophe:     "#d5b3ff",
		InvalidPeriod:  "#add8e6",
	}
}

// Renderer produces marked-up HTML for one text unit at a time.
// Safe for concurrent use
type Renderer struct {
	styles StyleMap
}

// NewRenderer builds a renderer; nil styles means DefaultStyles
func NewRenderer(styles StyleMap) *Renderer {
	if styles == nil {
		styles = DefaultStyles()
	}
	return &Renderer{styles: styles}
}

var escapes = []struct {
	raw rune
	rep string
}{
	{'&', "&amp;"},
	{'<', "&lt;"},
	{'>', "&gt;"},
	{'"', "&quot;"},
	{'\'', "&#39;"},
}

// Escape HTML-escapes s the same way Render does, so offsets and output
// of the two stay comparable
func Escape(s string) string {
	out, _ := escapeWithMap(s)
	return out
}

// escapeWithMap escapes s and returns a monotone offset map of length
// len(s)+1: emap[i] is the escaped-output offset corresponding to original
// byte offset i. Spans translated through it never split an entity
func escapeWithMap(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	emap := make([]int, len(s)+1)
	for i := 0; i < len(s); i++ {
		emap[i] = b.Len()
		c := s[i]
		rep := ""
		for _, e := range escapes {
			if rune(c) == e.raw {
				rep = e.rep
				break
			}
		}
		if rep != "" {
			b.WriteString(rep)
		} else {
			b.WriteByte(c)
		}
	}
	emap[len(s)] = b.Len()
	return b.String(), emap
}

// Render escapes text once and wraps every resolved span in a <mark>
// element carrying the category class and color. Spans are byte offsets
// into the original text; any span outside [0,len(text)] or with
// Start > End panics, since that is a caller bug, not an input condition
func (rd *Renderer) Render(text string, spans []Span) string {
	escaped, emap := escapeWithMap(text)
	if len(spans) == 0 {
		return escaped
	}

	translated := make([]Span, 0, len(spans))
	for _, sp := range spans {
		if sp.Start < 0 || sp.End > len(text) || sp.Start > sp.End {
			panic(fmt.Sprintf("annotate: span [%d,%d) out of bounds for text of %d bytes", sp.Start, sp.End, len(text)))
		}
		if sp.Start == sp.End {
			continue
		}
		translated = append(translated, Span{Start: emap[sp.Start], End: emap[sp.End], Category: sp.Category})
	}

	resolved := resolve(translated)

	var b strings.Builder
	b.Grow(len(escaped) + len(resolved)*64)
	pos := 0
	for _, sp := range resolved {
		b.WriteString(escaped[pos:sp.Start])
		fmt.Fprintf(&b, `<mark class="%s" style="background-color:%s;">`, sp.Category, rd.Color(sp.Category))
		b.WriteString(escaped[sp.Start:sp.End])
		b.WriteString("</mark>")
		pos = sp.End
	}
	b.WriteString(escaped[pos:])
	return b.String()
}

// Color returns the background color used for a category
func (rd *Renderer) Color(c Category) string {
	if col, ok := rd.styles[c]; ok {
		return col
	}
	return "#dddddd"
}

// resolve turns possibly-overlapping spans into a disjoint, start-sorted
// set. Stronger categories claim their bytes first; weaker overlapping
// spans are clipped around them, possibly into several fragments, and
// fragments that end up empty are dropped
func resolve(spans []Span) []Span {
	cands := make([]Span, len(spans))
	copy(cands, spans)
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Category != cands[j].Category {
			return cands[i].Category < cands[j].Category
		}
		if cands[i].Start != cands[j].Start {
			return cands[i].Start < cands[j].Start
		}
		return cands[i].End < cands[j].End
	})

	var accepted []Span
	for _, c := range cands {
		accepted = append(accepted, subtract(c, accepted)...)
		sort.Slice(accepted, func(i, j int) bool { return accepted[i].Start < accepted[j].Start })
	}
	return accepted
}

// subtract returns the fragments of c not covered by any span in taken.
// taken must be disjoint and sorted by Start
func subtract(c Span, taken []Span) []Span {
	var out []Span
	cur := c.Start
	for _, t := range taken {
		if t.End <= cur || t.Start >= c.End {
			continue
		}
		if t.Start > cur {
			out = append(out, Span{Start: cur, End: t.Start, Category: c.Category})
		}
		if t.End > cur {
			cur = t.End
		}
	}
	if cur < c.End {
		out = append(out, Span{Start: cur, End: c.End, Category: c.Category})
	}
	return out
}

var markTag = regexp.MustCompile(`</?mark[^>]*>`)

// StripMarkup removes the <mark> wrappers Render adds, leaving the escaped
// text. StripMarkup(Render(text, nil)) == Escape(text) holds for any text
func StripMarkup(s string) string {
	return markTag.ReplaceAllString(s, "")
}
