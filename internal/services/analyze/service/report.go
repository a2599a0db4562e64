package service

import (
	"fmt"
	"strings"

	"thaiproof/internal/core/annotate"
	"thaiproof/internal/services/analyze/domain"
)

// legend entries in display order
var legend = []struct {
	cat   annotate.Category
	label string
}{
	{annotate.HighConfidence, "คำผิด (ตรวจพบทั้งสองระบบ)"},
	{annotate.LowConfidence, "คำที่ควรตรวจสอบ (ตรวจพบระบบเดียว)"},
	{annotate.PhinthuChar, "พินทุ (ฺ)"},
	{annotate.InvalidPeriod, "จุดที่ไม่เข้าเงื่อนไข"},
	{annotate.Apostrophe, "เครื่องหมาย apostrophe"},
}

// ReportHTML implements domain.AnalyzerPort. The output is a standalone
// page: legend, summary counts, then one block per flagged unit with the
// original line number, the flag summary, and the marked-up text
func (s *Service) ReportHTML(rep domain.Report) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html lang="th">
<head>
<meta charset="utf-8">
<title>รายงานการตรวจคำผิด</title>
<style>
body { font-family: "Sarabun", sans-serif; margin: 2rem; line-height: 1.8; }
.legend span, mark { padding: 0 .2em; border-radius: 2px; }
.unit { margin-bottom: 1.25rem; border-left: 3px solid #ccc; padding-left: .75rem; }
.line { color: #666; font-size: .85em; }
.flags { color: #444; font-size: .85em; }
</style>
</head>
<body>
`)
	fmt.Fprintf(&b, "<h1>รายงานการตรวจคำผิด</h1>\n")
	fmt.Fprintf(&b, "<p>ตรวจทั้งหมด %d ย่อหน้า พบปัญหา %d ย่อหน้า", rep.Units, len(rep.Findings))
	if rep.Skipped > 0 {
		fmt.Fprintf(&b, " ข้ามเพราะรหัสอักขระไม่ถูกต้อง %d ย่อหน้า", rep.Skipped)
	}
	b.WriteString("</p>\n<p class=\"legend\">")
	for i, l := range legend {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, `<span style="background-color:%s;">%s</span>`, s.render.Color(l.cat), annotate.Escape(l.label))
	}
	b.WriteString("</p>\n")

	for _, f := range rep.Findings {
		fmt.Fprintf(&b, "<div class=\"unit\">\n<div class=\"line\">บรรทัดที่ %d</div>\n", f.Line)
		if fl := flagLine(f); fl != "" {
			fmt.Fprintf(&b, "<div class=\"flags\">%s</div>\n", annotate.Escape(fl))
		}
		fmt.Fprintf(&b, "<div class=\"text\">%s</div>\n</div>\n", s.render.Render(f.Text, f.Spans))
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// flagLine summarizes one finding for the report header line
func flagLine(f domain.Finding) string {
	var parts []string
	if len(f.HighConfidence) > 0 {
		parts = append(parts, "คำผิด: "+strings.Join(f.HighConfidence, ", "))
	}
	if len(f.LowConfidence) > 0 {
		parts = append(parts, "ควรตรวจสอบ: "+strings.Join(f.LowConfidence, ", "))
	}
	if n := len(f.InvalidPeriods); n > 0 {
		parts = append(parts, fmt.Sprintf("จุดไม่เข้าเงื่อนไข %d ตำแหน่ง", n))
	}
	if f.HasPhinthu {
		parts = append(parts, "พบพินทุ")
	}
	if f.HasApostrophe {
		parts = append(parts, "พบ apostrophe")
	}
	return strings.Join(parts, " | ")
}
