package services

import (
	"log/slog"

	"github.com/convertly/currency_converter_web/internal/core/ports/backendapi"
	portssvc "github.com/convertly/currency_converter_web/internal/core/ports/services"
	"github.com/convertly/currency_converter_web/internal/platform/config"
)

// NewServiceContainer wires all application services together. The identity
// provider is injected rather than constructed here so tests (and alternate
// providers) can substitute it.
func NewServiceContainer(
	cfg *config.Config,
	logger *slog.Logger,
	backendClient backendapi.ClientFacade,
	provider portssvc.IdentityProviderSvcFacade,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Session:     NewSessionManager(cfg, logger),
		Provider:    provider,
		Identity:    NewIdentityExchangeService(),
		Conversions: NewConversionService(logger),
		ConvertForm: NewConvertFormService(logger),
		Backend:     backendClient,
	}
}
