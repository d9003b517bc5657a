package services

import (
	"context"

	"github.com/convertly/currency_converter_web/internal/core/domain"
	"github.com/convertly/currency_converter_web/internal/core/ports/backendapi"
	"github.com/convertly/currency_converter_web/internal/dto"
)

// ConversionSvcFacade fetches paginated history and aggregate stats for one
// session. Both reads are independent: neither depends on the other's
// completion or ordering. On failure the previously applied view survives so
// the page can keep rendering stale data next to the error.
type ConversionSvcFacade interface {
	// FetchPage retrieves one page (1-based) of history. The returned view
	// is the latest applied state, which on error is the prior one.
	FetchPage(ctx context.Context, api backendapi.ConversionReaderAPI, sessionKey string, page int) (*dto.ConversionsView, error)

	// FetchStats retrieves the aggregate snapshot, with the same
	// stale-on-error semantics.
	FetchStats(ctx context.Context, api backendapi.ConversionReaderAPI, sessionKey string) (*domain.ConversionStats, error)

	// Refresh re-runs the page fetch and the stats fetch exactly once each,
	// used after a successful conversion submission.
	Refresh(ctx context.Context, api backendapi.ConversionReaderAPI, sessionKey string, page int) error

	// Drop discards the retained view when the session ends.
	Drop(sessionKey string)
}

// ConvertFormSvcFacade owns the conversion modal's per-session state machine
// (idle, validating, submitting) including the fetch-once currency catalog.
type ConvertFormSvcFacade interface {
	// Open returns the form view, fetching the currency catalog at most
	// once per modal-open session.
	Open(ctx context.Context, api backendapi.ConversionReaderAPI, sessionKey string) (*dto.ConvertFormView, error)

	// Submit validates the input, collecting every violation tagged to its
	// field, and on success performs the conversion, resets the form and
	// invokes onSuccess exactly once. On failure form state is preserved.
	Submit(ctx context.Context, api backendapi.ConversionWriterAPI, sessionKey string, input dto.ConvertSubmission, onSuccess func()) (*dto.ConvertFormView, error)

	// Swap exchanges the from/to selections in place and discards any
	// previously computed result. No network call.
	Swap(sessionKey string) *dto.ConvertFormView

	// Close resets the form to its defaults, keeping the catalog for the
	// lifetime of the surrounding session.
	Close(sessionKey string)

	// Drop discards all form state including the catalog (session end).
	Drop(sessionKey string)
}
