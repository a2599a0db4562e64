// Package service implements the analysis engine: per-unit checks, the
// concurrent document scan, and report rendering
package service

import (
	"context"
	"sort"
	"sync"

	"thaiproof/internal/core/annotate"
	"thaiproof/internal/core/confidence"
	"thaiproof/internal/core/periodrule"
	"thaiproof/internal/core/thaitext"
	perr "thaiproof/internal/platform/errors"
	"thaiproof/internal/platform/logger"
	"thaiproof/internal/services/analyze/domain"
	checkersdom "thaiproof/internal/services/checkers/domain"
)

// Config tunes the engine. Zero values fall back to defaults
type Config struct {
	// PeriodWindow is the context radius for period validation, in runes
	PeriodWindow int

	// Workers caps concurrent unit scans; <=0 means 4
	Workers int

	// Styles overrides the report palette; nil means defaults
	Styles annotate.StyleMap
}

// Service is the engine. Safe for concurrent use
type Service struct {
	log     logger.Logger
	tok     thaitext.Tokenizer
	primary checkersdom.CheckerPort
	second  checkersdom.CheckerPort
	periods *periodrule.Validator
	render  *annotate.Renderer
	workers int
}

// New wires the engine. tok nil means the built-in rule tokenizer
func New(log logger.Logger, tok thaitext.Tokenizer, primary, secondary checkersdom.CheckerPort, cfg Config) *Service {
	if tok == nil {
		tok = thaitext.RuleTokenizer()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	return &Service{
		log:     log,
		tok:     tok,
		primary: primary,
		second:  secondary,
		periods: periodrule.New(periodrule.Config{Window: cfg.PeriodWindow}),
		render:  annotate.NewRenderer(cfg.Styles),
		workers: workers,
	}
}

// AnalyzeParagraph implements domain.AnalyzerPort
func (s *Service) AnalyzeParagraph(ctx context.Context, line int, text string) (*domain.Finding, error) {
	if !thaitext.Valid(text) {
		return nil, perr.Encodingf("unit %d is not valid UTF-8", line)
	}

	tokens := s.tok.Tokenize(text)
	resA := s.consult(ctx, s.primary, line, text)
	resB := s.consult(ctx, s.second, line, text)
	high, low := confidence.Classify(resA, resB)

	mapper := confidence.NewMapper(text, tokens)
	var spans []annotate.Span
	spans = appendWordSpans(spans, mapper, high, annotate.HighConfidence)
	spans = appendWordSpans(spans, mapper, low, annotate.LowConfidence)

	periods := s.periods.Suspects(text)
	for _, idx := range periods {
		spans = append(spans, annotate.Span{Start: idx, End: idx + 1, Category: annotate.InvalidPeriod})
	}
	phinthu := thaitext.FindPhinthu(text)
	for _, sp := range phinthu {
		spans = append(spans, annotate.Span{Start: sp[0], End: sp[1], Category: annotate.PhinthuChar})
	}
	apos := thaitext.FindApostrophes(text)
	for _, sp := range apos {
		spans = append(spans, annotate.Span{Start: sp[0], End: sp[1], Category: annotate.Apostrophe})
	}

	if len(spans) == 0 {
		return nil, nil
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		if spans[i].End != spans[j].End {
			return spans[i].End < spans[j].End
		}
		return spans[i].Category < spans[j].Category
	})

	return &domain.Finding{
		Line:           line,
		Text:           text,
		Spans:          spans,
		HighConfidence: sortedWords(high),
		LowConfidence:  sortedWords(low),
		InvalidPeriods: periods,
		HasPhinthu:     len(phinthu) > 0,
		HasApostrophe:  len(apos) > 0,
	}, nil
}

// consult runs one detector, degrading failure to an empty result so a
// flaky checker cannot take the whole scan down
func (s *Service) consult(ctx context.Context, chk checkersdom.CheckerPort, line int, text string) checkersdom.WordSet {
	res, err := chk.Check(ctx, text)
	if err != nil {
		s.log.Warn().Err(err).Str("checker", chk.Name()).Int("line", line).Msg("checker failed; treating as no findings")
		return checkersdom.WordSet{}
	}
	return res
}

func appendWordSpans(spans []annotate.Span, m *confidence.Mapper, words checkersdom.WordSet, cat annotate.Category) []annotate.Span {
	for w := range words {
		for _, sp := range m.Spans(w) {
			spans = append(spans, annotate.Span{Start: sp[0], End: sp[1], Category: cat})
		}
	}
	return spans
}

func sortedWords(s checkersdom.WordSet) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// ScanDocument implements domain.AnalyzerPort
func (s *Service) ScanDocument(ctx context.Context, paragraphs []string, progress domain.ProgressFunc) (domain.Report, error) {
	units := thaitext.Paragraphs(paragraphs)
	rep := domain.Report{Units: len(units)}
	if len(units) == 0 {
		return rep, nil
	}

	type slot struct {
		finding *domain.Finding
		err     error
	}
	slots := make([]slot, len(units))

	var (
		wg   sync.WaitGroup
		sem  = make(chan struct{}, s.workers)
		done = make(chan int, len(units))
	)
	for i, u := range units {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, u thaitext.Unit) {
			defer wg.Done()
			defer func() { <-sem }()
			f, err := s.AnalyzeParagraph(ctx, u.Line, u.Text)
			slots[i] = slot{finding: f, err: err}
			done <- i
		}(i, u)
	}
	go func() {
		wg.Wait()
		close(done)
	}()

	finished := 0
	for range done {
		finished++
		if progress != nil {
			progress(finished, len(units))
		}
	}

	for i := range slots {
		if err := slots[i].err; err != nil {
			if perr.IsCode(err, perr.ErrorCodeEncoding) {
				rep.Skipped++
				s.log.Warn().Err(err).Int("line", units[i].Line).Msg("unit skipped")
				continue
			}
			return domain.Report{}, err
		}
		if slots[i].finding != nil {
			rep.Findings = append(rep.Findings, *slots[i].finding)
		}
	}
	return rep, nil
}
