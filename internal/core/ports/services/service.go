package services

import "github.com/convertly/currency_converter_web/internal/core/ports/backendapi"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Session     SessionSvcFacade
	Provider    IdentityProviderSvcFacade
	Identity    IdentityExchangeSvcFacade
	Conversions ConversionSvcFacade
	ConvertForm ConvertFormSvcFacade
	Backend     backendapi.ClientFacade
}
