package services

import (
	"context"
	"errors"

	"github.com/convertly/currency_converter_web/internal/core/domain"
	"github.com/convertly/currency_converter_web/internal/core/ports/backendapi"
	portssvc "github.com/convertly/currency_converter_web/internal/core/ports/services"
	"github.com/convertly/currency_converter_web/internal/dto"
)

// identityExchangeService converts a validated provider assertion into an
// application session via the backend. It performs no persistence itself, so
// a failed exchange can never disturb an existing session.
type identityExchangeService struct{}

// NewIdentityExchangeService creates the identity exchange service.
func NewIdentityExchangeService() portssvc.IdentityExchangeSvcFacade {
	return &identityExchangeService{}
}

// Exchange POSTs the provider ID token to the backend session exchange and
// builds the resulting session, carrying the raw provider identity alongside
// for later reference. Provider-side failures never reach this point: the
// caller must present a complete assertion.
func (s *identityExchangeService) Exchange(ctx context.Context, api backendapi.AuthAPI, assertion *dto.ProviderAssertion, role string) (*domain.Session, error) {
	if assertion == nil || assertion.IDToken == "" {
		return nil, errors.New("provider assertion missing ID token")
	}

	user, token, err := api.SocialLogin(ctx, assertion.IDToken, role)
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		User:             *user,
		Token:            token,
		ProviderIdentity: assertion.RawClaims,
	}, nil
}
