// Package module assembles the scan recorder
package module

import (
	"thaiproof/internal/modkit"
	phttp "thaiproof/internal/platform/net/http"
	"thaiproof/internal/services/scans/domain"
	"thaiproof/internal/services/scans/service"
)

// Module owns the recorder instance
type Module struct {
	built modkit.Built
	ports domain.Ports
}

// New wires the recorder against the PG seam from deps
func New(d modkit.Deps, opts ...modkit.Option) *Module {
	built := modkit.Build(append([]modkit.Option{modkit.WithName("scans")}, opts...)...)
	return &Module{
		built: built,
		ports: domain.Ports{Recorder: service.New(d.Log, d.PG)},
	}
}

// MountRoutes implements module.Module; scans are exposed through the api module
func (m *Module) MountRoutes(phttp.Router) {}

// Ports exposes the recorder for cross-module wiring
func (m *Module) Ports() any { return m.ports }

// Name implements module.Module
func (m *Module) Name() string { return m.built.Name }
