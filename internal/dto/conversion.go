package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/convertly/currency_converter_web/internal/core/domain"
)

// ConvertSubmission is the raw conversion form input. Amount stays a string
// until validation so the positivity and minimum checks can report on the
// user's literal input.
type ConvertSubmission struct {
	Amount string `form:"amount" json:"amount"`
	From   string `form:"from" json:"from" validate:"required"`
	To     string `form:"to" json:"to" validate:"required"`
}

// ConvertFormView is the rendered state of the conversion modal: current
// field values, any field-tagged validation errors, the currency catalog and
// the last computed result.
type ConvertFormView struct {
	Amount         string                   `json:"amount"`
	From           string                   `json:"from"`
	To             string                   `json:"to"`
	Errors         map[string]string        `json:"errors,omitempty"`
	Result         *domain.ConversionResult `json:"result,omitempty"`
	Catalog        domain.Catalog           `json:"catalog,omitempty"`
	CatalogLoading bool                     `json:"catalogLoading"`
}

// ConversionsView is the retained, last-applied page of conversion history.
type ConversionsView struct {
	Conversions []domain.Conversion `json:"conversions"`
	Pagination  domain.Pagination   `json:"pagination"`
}

// ConversionResponse is a single history card as rendered on the page.
type ConversionResponse struct {
	ConversionID    string `json:"_id"`
	FromCurrency    string `json:"fromCurrency"`
	ToCurrency      string `json:"toCurrency"`
	OriginalAmount  string `json:"originalAmount"`
	ConvertedAmount string `json:"convertedAmount"`
	ExchangeRate    string `json:"exchangeRate"`
	ConversionDate  string `json:"conversionDate"`
}

const conversionDateLayout = "01/02/2006, 15:04"

// ToConversionResponse converts a domain.Conversion to its rendered form.
func ToConversionResponse(conv *domain.Conversion) ConversionResponse {
	return ConversionResponse{
		ConversionID:    conv.ConversionID,
		FromCurrency:    conv.FromCurrency,
		ToCurrency:      conv.ToCurrency,
		OriginalAmount:  conv.OriginalAmount.String(),
		ConvertedAmount: conv.ConvertedAmount.String(),
		ExchangeRate:    conv.ExchangeRate.String(),
		ConversionDate:  conv.ConversionDate.In(time.Local).Format(conversionDateLayout),
	}
}

// ToListConversionResponse converts a slice of conversions for rendering.
func ToListConversionResponse(conversions []domain.Conversion) []ConversionResponse {
	res := make([]ConversionResponse, len(conversions))
	for i := range conversions {
		res[i] = ToConversionResponse(&conversions[i])
	}
	return res
}

// StatsResponse is the aggregate snapshot as rendered on the page.
type StatsResponse struct {
	TotalConversions         int    `json:"totalConversions"`
	TotalAmountConverted     string `json:"totalAmountConverted"`
	UniqueCurrencyPairsCount int    `json:"uniqueCurrencyPairsCount"`
}

// ToStatsResponse converts the domain stats, rounding the aggregate amount
// to two places for display.
func ToStatsResponse(stats *domain.ConversionStats) StatsResponse {
	if stats == nil {
		return StatsResponse{TotalAmountConverted: decimal.Zero.StringFixed(2)}
	}
	return StatsResponse{
		TotalConversions:         stats.TotalConversions,
		TotalAmountConverted:     stats.TotalAmountConverted.Round(2).String(),
		UniqueCurrencyPairsCount: stats.UniqueCurrencyPairsCount,
	}
}
