// Package module assembles the two misspelling detectors behind the
// checker ports other modules consume
package module

import (
	"thaiproof/internal/core/thaitext"
	"thaiproof/internal/modkit"
	phttp "thaiproof/internal/platform/net/http"
	"thaiproof/internal/services/checkers/domain"
	"thaiproof/internal/services/checkers/service"
)

// Module wires the lexicon and marker checkers
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	ports domain.Ports
}

// New builds the checkers module. The primary detector is the fuzzy
// lexicon; the secondary is the external marker when MarkURL is set,
// otherwise a strict lexicon pass (flag everything out-of-lexicon).
// Both are memoized
func New(d modkit.Deps, o Options, tok thaitext.Tokenizer, opts ...modkit.Option) *Module {
	built := modkit.Build(append([]modkit.Option{modkit.WithName("checkers")}, opts...)...)

	var words []string
	if o.LexiconPath != "" {
		var err error
		words, err = service.LoadLexicon(o.LexiconPath)
		if err != nil {
			d.Log.Warn().Err(err).Str("path", o.LexiconPath).Msg("lexicon unavailable; primary checker starts empty")
		}
	}

	primary := domain.CheckerPort(service.NewLexicon(words, tok, o.MaxEditDistance))

	var secondary domain.CheckerPort
	switch {
	case o.MarkURL != "":
		secondary = service.NewMarked(service.NewHTTPMarker(o.MarkURL, nil), "", "")
	case len(words) > 0:
		// strict pass: flag everything the lexicon does not know
		secondary = service.NewLexicon(words, tok, 0)
	default:
		secondary = service.NewMarked(service.NopMarker{}, "", "")
	}

	m := &Module{
		deps:  d,
		built: built,
		ports: domain.Ports{
			Primary:   service.NewCached(primary),
			Secondary: service.NewCached(secondary),
		},
	}
	return m
}

// MountRoutes implements module.Module; checkers expose no HTTP surface
func (m *Module) MountRoutes(phttp.Router) {}

// Ports exposes the checker ports for cross-module wiring
func (m *Module) Ports() any { return m.ports }

// Name implements module.Module
func (m *Module) Name() string { return m.built.Name }
