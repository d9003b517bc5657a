package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conversion is a single currency exchange record. It is owned and created
// server-side and immutable once returned by the backend.
type Conversion struct {
	ConversionID    string          `json:"_id"`
	UserID          string          `json:"userId,omitempty"`
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	ConversionDate  time.Time       `json:"conversionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ConversionStats is the aggregate snapshot derived server-side. The
// front-end treats it as read-only and refetches after each conversion.
type ConversionStats struct {
	TotalConversions         int             `json:"totalConversions"`
	TotalAmountConverted     decimal.Decimal `json:"totalAmountConverted"`
	UniqueCurrencyPairsCount int             `json:"uniqueCurrencyPairsCount"`
}

// ConversionResult is the backend's response to a convert request.
type ConversionResult struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from"`
	To     string          `json:"to"`
	Result decimal.Decimal `json:"result"`
	Rate   decimal.Decimal `json:"rate"`
}

// Pagination describes position within a paged result set.
// Invariants (backend-enforced, trusted here): currentPage <= totalPages when
// totalPages > 0; hasNextPage iff currentPage < totalPages; hasPrevPage iff
// currentPage > 1.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
	TotalItems   int  `json:"totalItems,omitempty"`
	ItemsPerPage int  `json:"itemsPerPage,omitempty"`
}
