package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/convertly/currency_converter_web/internal/core/domain"
)

// ListCurrencies retrieves the currency catalog keyed by code.
func (s *sessionClient) ListCurrencies(ctx context.Context) (domain.Catalog, error) {
	var envelope struct {
		Data domain.Catalog `json:"data"`
	}
	if err := s.do(ctx, http.MethodGet, "/currencies", nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		envelope.Data = domain.Catalog{}
	}
	return envelope.Data, nil
}

// convertRequest is the wire shape for a conversion. Amount goes out as a
// bare JSON number, which is what the backend parses.
type convertRequest struct {
	From   string      `json:"from"`
	To     string      `json:"to"`
	Amount json.Number `json:"amount"`
}

// Convert performs a conversion server-side.
func (s *sessionClient) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	req := convertRequest{From: from, To: to, Amount: json.Number(amount.String())}
	var result domain.ConversionResult
	if err := s.do(ctx, http.MethodPost, "/currencies/convert", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListConversions retrieves one page of conversion history.
func (s *sessionClient) ListConversions(ctx context.Context, page, limit int) ([]domain.Conversion, domain.Pagination, error) {
	var envelope struct {
		Conversions []domain.Conversion `json:"conversions"`
		Pagination  domain.Pagination   `json:"pagination"`
	}
	path := fmt.Sprintf("/currencies/conversions?page=%d&limit=%d", page, limit)
	if err := s.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, domain.Pagination{}, err
	}
	return envelope.Conversions, envelope.Pagination, nil
}

// ConversionStats retrieves the aggregate snapshot.
func (s *sessionClient) ConversionStats(ctx context.Context) (*domain.ConversionStats, error) {
	var envelope struct {
		Overview domain.ConversionStats `json:"overview"`
	}
	if err := s.do(ctx, http.MethodGet, "/currencies/conversions/stats", nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Overview, nil
}
