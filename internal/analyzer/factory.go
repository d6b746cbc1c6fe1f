package analyzer

import (
	"fmt"

	"getgsa/internal/config"
	"getgsa/internal/port"
)

// ProviderFactory is a function that creates an AnalysisProvider from the
// analyzer config.
type ProviderFactory func(cfg *config.AnalyzerConfig) (port.AnalysisProvider, error)

// registry of provider factories, populated by init() in each provider
// package or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewProvider creates an AnalysisProvider from the config using the
// registered factory.
func NewProvider(cfg *config.AnalyzerConfig) (port.AnalysisProvider, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown analysis provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
