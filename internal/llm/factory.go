package llm

import (
	"fmt"

	"go.uber.org/zap"

	"seogen/internal/config"
)

// ProviderFactory creates a Generator from a provider config.
type ProviderFactory func(cfg *config.ProviderConfig, logger *zap.Logger) (Generator, error)

// registry of provider factories, populated by init() in each provider package
// or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewGenerator creates a Generator from a provider config using the registered factory.
func NewGenerator(cfg *config.ProviderConfig, logger *zap.Logger) (Generator, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
	return factory(cfg, logger)
}
