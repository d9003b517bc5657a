package services

import (
	"context"

	"github.com/convertly/currency_converter_web/internal/core/ports/backendapi"

	"github.com/convertly/currency_converter_web/internal/core/domain"
	"github.com/convertly/currency_converter_web/internal/dto"
)

// IdentityProviderSvcFacade is the identity-provider collaborator: it drives
// the consent flow and validates the returned assertion. Its internals
// (consent screen, token issuance) are out of scope here.
type IdentityProviderSvcFacade interface {
	// AuthCodeURL builds the provider consent URL for a state nonce.
	AuthCodeURL(state string) string

	// ExchangeCode swaps an authorization code for the raw ID token.
	ExchangeCode(ctx context.Context, code string) (string, error)

	// Validate verifies the raw ID token and extracts the assertion.
	Validate(ctx context.Context, rawIDToken string) (*dto.ProviderAssertion, error)
}

// IdentityExchangeSvcFacade converts a provider assertion into an
// application session via the backend. It never touches an existing session:
// persistence is the caller's responsibility so a failed exchange leaves any
// prior session intact.
type IdentityExchangeSvcFacade interface {
	Exchange(ctx context.Context, api backendapi.AuthAPI, assertion *dto.ProviderAssertion, role string) (*domain.Session, error)
}
