// Package module assembles the analysis engine from its ports
package module

import (
	"thaiproof/internal/core/annotate"
	"thaiproof/internal/core/thaitext"
	"thaiproof/internal/modkit"
	"thaiproof/internal/platform/config"
	phttp "thaiproof/internal/platform/net/http"
	"thaiproof/internal/services/analyze/domain"
	"thaiproof/internal/services/analyze/service"
	checkersdom "thaiproof/internal/services/checkers/domain"
)

// Options controls engine tuning
type Options struct {
	PeriodWindow int
	Workers      int
	Styles       annotate.StyleMap
}

// FromConfig reads Options from the CORE_SCAN_ namespace
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SCAN_")
	return Options{
		PeriodWindow: sc.MayInt("PERIOD_WINDOW", 10),
		Workers:      sc.MayInt("WORKERS", 4),
	}
}

// Module owns the engine instance
type Module struct {
	built modkit.Built
	ports domain.Ports
}

// New wires the engine against the checker ports
func New(d modkit.Deps, o Options, tok thaitext.Tokenizer, checkers checkersdom.Ports, opts ...modkit.Option) *Module {
	built := modkit.Build(append([]modkit.Option{modkit.WithName("analyze")}, opts...)...)

	svc := service.New(d.Log, tok, checkers.Primary, checkers.Secondary, service.Config{
		PeriodWindow: o.PeriodWindow,
		Workers:      o.Workers,
		Styles:       o.Styles,
	})

	return &Module{built: built, ports: domain.Ports{Analyzer: svc}}
}

// MountRoutes implements module.Module; the engine has no HTTP surface of its own
func (m *Module) MountRoutes(phttp.Router) {}

// Ports exposes the analyzer for cross-module wiring
func (m *Module) Ports() any { return m.ports }

// Name implements module.Module
func (m *Module) Name() string { return m.built.Name }
