// Package backendapi defines the outbound contracts against the external
// conversion backend. Implementations live in internal/adapters/backend and
// are always bound to a single browser session.
package backendapi

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/convertly/currency_converter_web/internal/core/domain"
)

// AuthAPI covers the session lifecycle endpoints.
type AuthAPI interface {
	// SocialLogin exchanges a provider ID token for an application session.
	// Returns the user profile and the opaque bearer token.
	SocialLogin(ctx context.Context, idToken, role string) (*domain.User, string, error)

	// Logout invalidates the server-side session.
	Logout(ctx context.Context) error
}

// ConversionReaderAPI defines the read operations of the conversion backend.
type ConversionReaderAPI interface {
	// ListCurrencies retrieves the currency catalog keyed by code.
	ListCurrencies(ctx context.Context) (domain.Catalog, error)

	// ListConversions retrieves one page of conversion history.
	ListConversions(ctx context.Context, page, limit int) ([]domain.Conversion, domain.Pagination, error)

	// ConversionStats retrieves the aggregate snapshot.
	ConversionStats(ctx context.Context) (*domain.ConversionStats, error)
}

// ConversionWriterAPI defines the single write operation.
type ConversionWriterAPI interface {
	// Convert performs a conversion server-side and returns its result.
	Convert(ctx context.Context, from, to string, amount decimal.Decimal) (*domain.ConversionResult, error)
}

// BackendAPIFacade combines all backend operations available to one session.
type BackendAPIFacade interface {
	AuthAPI
	ConversionReaderAPI
	ConversionWriterAPI
}

// ClientFacade constructs session-bound API callers. The onUnauthorized hook
// is the single 401 interception point: it runs before the error propagates
// and must not swallow it.
type ClientFacade interface {
	WithSession(sess *domain.Session, userAgent string, onUnauthorized func()) BackendAPIFacade
}
