package annotate

import (
	"reflect"
	"strings"
	"testing"

	"thaiproof/internal/platform/testkit"
)

func TestEscapeOnce(t *testing.T) {
	got := Escape(`a<b & "c" 'd'`)
	want := "a&lt;b &amp; &quot;c&quot; &#39;d&#39;"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	// escaping an already-escaped ampersand must not double up inside Render
	if strings.Contains(Escape("&amp;"), "&amp;amp;amp;") {
		t.Fatalf("double escape")
	}
}

func TestEscapeMapMonotone(t *testing.T) {
	s := `x<y&z`
	_, emap := escapeWithMap(s)
	if len(emap) != len(s)+1 {
		t.Fatalf("emap len=%d want %d", len(emap), len(s)+1)
	}
	for i := 1; i < len(emap); i++ {
		if emap[i] < emap[i-1] {
			t.Fatalf("emap not monotone at %d: %v", i, emap)
		}
	}
}

func TestRenderPlainTextUnchangedShape(t *testing.T) {
	rd := NewRenderer(nil)
	text := "สวัสดีครับ"
	if got := rd.Render(text, nil); got != text {
		t.Fatalf("got %q want %q", got, text)
	}
}

func TestRenderWrapsSpanWithCategory(t *testing.T) {
	rd := NewRenderer(nil)
	text := "หมา แมว"
	got := rd.Render(text, []Span{{Start: 0, End: len("หมา"), Category: HighConfidence}})
	want := `<mark class="high-confidence" style="background-color:#ffcccc;">หมา</mark> แมว`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRenderSpanOverEscapedRegion(t *testing.T) {
	rd := NewRenderer(nil)
	text := `a<b cd`
	// span covers "a<b"; the entity must stay whole inside the mark
	got := rd.Render(text, []Span{{Start: 0, End: 3, Category: LowConfidence}})
	if !strings.Contains(got, ">a&lt;b</mark>") {
		t.Fatalf("entity split or missing: %q", got)
	}
	if StripMarkup(got) != Escape(text) {
		t.Fatalf("strip(render)=%q escape=%q", StripMarkup(got), Escape(text))
	}
}

func TestRenderPrecedenceClipsWeakerSpan(t *testing.T) {
	rd := NewRenderer(nil)
	text := "abcd!"
	spans := []Span{
		{Start: 2, End: 3, Category: PhinthuChar},
		{Start: 0, End: 4, Category: HighConfidence},
	}
	got := rd.Render(text, spans)
	// high confidence claims [0,4) whole; the phinthu span inside it is
	// fully covered and vanishes
	want := `<mark class="high-confidence" style="background-color:#ffcccc;">abcd</mark>!`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRenderWeakerSpanSplitsAroundStronger(t *testing.T) {
	rd := NewRenderer(nil)
	text := "0123456789"
	spans := []Span{
		{Start: 0, End: 10, Category: LowConfidence},
		{Start: 3, End: 5, Category: HighConfidence},
	}
	got := rd.Render(text, spans)
	for _, frag := range []string{">012<", ">34<", ">56789<"} {
		if !strings.Contains(got, frag) {
			t.Fatalf("missing fragment %s in %q", frag, got)
		}
	}
	if StripMarkup(got) != text {
		t.Fatalf("strip=%q", StripMarkup(got))
	}
}

func TestResolveDisjointAndSorted(t *testing.T) {
	spans := []Span{
		{Start: 5, End: 9, Category: Apostrophe},
		{Start: 0, End: 7, Category: LowConfidence},
		{Start: 2, End: 4, Category: HighConfidence},
	}
	out := resolve(spans)
	for i := 1; i < len(out); i++ {
		if out[i].Start < out[i-1].End {
			t.Fatalf("overlap in resolved set: %v", out)
		}
	}
	want := []Span{
		{Start: 0, End: 2, Category: LowConfidence},
		{Start: 2, End: 4, Category: HighConfidence},
		{Start: 4, End: 7, Category: LowConfidence},
		{Start: 7, End: 9, Category: Apostrophe},
	}
	if !reflect.DeepEqual(out, want) {
		t.Fatalf("resolved=%v want %v", out, want)
	}
}

func TestRenderOutOfBoundsPanics(t *testing.T) {
	rd := NewRenderer(nil)
	testkit.MustPanic(t, func() {
		rd.Render("abc", []Span{{Start: 1, End: 9, Category: HighConfidence}})
	})
	testkit.MustPanic(t, func() {
		rd.Render("abc", []Span{{Start: 2, End: 1, Category: HighConfidence}})
	})
}

func TestStripMarkupInverseOfRender(t *testing.T) {
	rd := NewRenderer(nil)
	text := `ไป <เร็ว> & 'ช้า'`
	spans := []Span{
		{Start: 0, End: len("ไป"), Category: HighConfidence},
		{Start: len("ไป") + 1, End: len("ไป") + 1 + len("<เร็ว>"), Category: LowConfidence},
	}
	got := rd.Render(text, spans)
	if StripMarkup(got) != Escape(text) {
		t.Fatalf("strip(render)=%q escape=%q", StripMarkup(got), Escape(text))
	}
}

func TestCategoryString(t *testing.T) {
	if HighConfidence.String() != "high-confidence" || InvalidPeriod.String() != "invalid-period" {
		t.Fatalf("category names wrong: %s %s", HighConfidence, InvalidPeriod)
	}
}
