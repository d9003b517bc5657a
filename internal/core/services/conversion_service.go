package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/convertly/currency_converter_web/internal/core/domain"
	"github.com/convertly/currency_converter_web/internal/core/ports/backendapi"
	portssvc "github.com/convertly/currency_converter_web/internal/core/ports/services"
	"github.com/convertly/currency_converter_web/internal/dto"
)

// historyPageSize is the fixed page size for conversion history.
const historyPageSize = 10

// conversionService retains each session's last applied history page and
// stats snapshot. A per-session, monotonically increasing sequence number is
// issued per fetch and compared on completion, so an older request resolving
// after a newer one can never overwrite the newer view.
type conversionService struct {
	mu     sync.Mutex
	views  map[string]*conversionView
	logger *slog.Logger
}

type conversionView struct {
	pageSeq     uint64
	pageApplied uint64
	view        *dto.ConversionsView

	statsSeq     uint64
	statsApplied uint64
	stats        *domain.ConversionStats
}

// NewConversionService creates the conversion data service.
func NewConversionService(logger *slog.Logger) portssvc.ConversionSvcFacade {
	return &conversionService{
		views:  make(map[string]*conversionView),
		logger: logger,
	}
}

func (s *conversionService) viewFor(sessionKey string) *conversionView {
	v, ok := s.views[sessionKey]
	if !ok {
		v = &conversionView{}
		s.views[sessionKey] = v
	}
	return v
}

// FetchPage retrieves one page of history. Safe to call repeatedly; on error
// the previously applied view is returned alongside the error so the page
// keeps rendering what it last had.
func (s *conversionService) FetchPage(ctx context.Context, api backendapi.ConversionReaderAPI, sessionKey string, page int) (*dto.ConversionsView, error) {
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	v := s.viewFor(sessionKey)
	v.pageSeq++
	seq := v.pageSeq
	s.mu.Unlock()

	conversions, pag, err := api.ListConversions(ctx, page, historyPageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	v = s.viewFor(sessionKey)
	if err != nil {
		return v.view, err
	}
	if seq < v.pageApplied {
		// A newer fetch already completed; last-issued wins the view.
		s.logger.Debug("Discarding out-of-order history response",
			slog.Uint64("seq", seq), slog.Uint64("applied", v.pageApplied))
		return v.view, nil
	}
	v.pageApplied = seq
	v.view = &dto.ConversionsView{Conversions: conversions, Pagination: pag}
	return v.view, nil
}

// FetchStats retrieves the aggregate snapshot with its own sequence domain,
// independent of the paged fetch.
func (s *conversionService) FetchStats(ctx context.Context, api backendapi.ConversionReaderAPI, sessionKey string) (*domain.ConversionStats, error) {
	s.mu.Lock()
	v := s.viewFor(sessionKey)
	v.statsSeq++
	seq := v.statsSeq
	s.mu.Unlock()

	stats, err := api.ConversionStats(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	v = s.viewFor(sessionKey)
	if err != nil {
		return v.stats, err
	}
	if seq < v.statsApplied {
		return v.stats, nil
	}
	v.statsApplied = seq
	v.stats = stats
	return v.stats, nil
}

// Refresh re-runs the page fetch and the stats fetch exactly once each.
// Neither depends on the other; both errors are reported together.
func (s *conversionService) Refresh(ctx context.Context, api backendapi.ConversionReaderAPI, sessionKey string, page int) error {
	_, pageErr := s.FetchPage(ctx, api, sessionKey, page)
	_, statsErr := s.FetchStats(ctx, api, sessionKey)
	return errors.Join(pageErr, statsErr)
}

// Drop discards the retained view when the session ends.
func (s *conversionService) Drop(sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.views, sessionKey)
}
