package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/convertly/currency_converter_web/internal/apperrors"
	"github.com/convertly/currency_converter_web/internal/core/domain"
	"github.com/convertly/currency_converter_web/internal/core/ports/backendapi"
	portssvc "github.com/convertly/currency_converter_web/internal/core/ports/services"
	"github.com/convertly/currency_converter_web/internal/dto"
)

// Form defaults: the selectors start on the USD -> EUR pair.
const (
	defaultFromCurrency = "USD"
	defaultToCurrency   = "EUR"
)

var minimumAmount = decimal.RequireFromString("0.01")

// convertFormService owns the conversion modal's per-session state: field
// values, collected validation errors, the last computed result and the
// fetch-once currency catalog.
type convertFormService struct {
	mu       sync.Mutex
	forms    map[string]*formState
	validate *validator.Validate
	logger   *slog.Logger
}

type formState struct {
	amount string
	from   string
	to     string
	errors map[string]string
	result *domain.ConversionResult

	catalog       domain.Catalog
	catalogLoaded bool
}

func newFormState() *formState {
	return &formState{from: defaultFromCurrency, to: defaultToCurrency}
}

// NewConvertFormService creates the conversion submission flow service.
func NewConvertFormService(logger *slog.Logger) portssvc.ConvertFormSvcFacade {
	return &convertFormService{
		forms:    make(map[string]*formState),
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *convertFormService) stateFor(sessionKey string) *formState {
	st, ok := s.forms[sessionKey]
	if !ok {
		st = newFormState()
		s.forms[sessionKey] = st
	}
	return st
}

func (st *formState) view() *dto.ConvertFormView {
	v := &dto.ConvertFormView{
		Amount:         st.amount,
		From:           st.from,
		To:             st.to,
		Result:         st.result,
		Catalog:        st.catalog,
		CatalogLoading: !st.catalogLoaded,
	}
	if len(st.errors) > 0 {
		v.Errors = make(map[string]string, len(st.errors))
		for field, msg := range st.errors {
			v.Errors[field] = msg
		}
	}
	return v
}

// Open returns the modal's form view, fetching the currency catalog only if
// it is not already populated. While unloaded the view reports
// CatalogLoading, which disables both selectors.
func (s *convertFormService) Open(ctx context.Context, api backendapi.ConversionReaderAPI, sessionKey string) (*dto.ConvertFormView, error) {
	s.mu.Lock()
	st := s.stateFor(sessionKey)
	if st.catalogLoaded {
		view := st.view()
		s.mu.Unlock()
		return view, nil
	}
	s.mu.Unlock()

	catalog, err := api.ListCurrencies(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	st = s.stateFor(sessionKey)
	if err != nil {
		return st.view(), err
	}
	st.catalog = catalog
	st.catalogLoaded = true
	return st.view(), nil
}

// Submit runs the submission flow: validate (collecting every violation
// tagged to its field, no network on failure), then convert. On success the
// form resets to defaults and onSuccess fires exactly once; on backend
// failure the form state is preserved for correction and resubmission.
func (s *convertFormService) Submit(ctx context.Context, api backendapi.ConversionWriterAPI, sessionKey string, input dto.ConvertSubmission, onSuccess func()) (*dto.ConvertFormView, error) {
	s.mu.Lock()
	st := s.stateFor(sessionKey)
	st.amount = input.Amount
	st.from = input.From
	st.to = input.To

	fieldErrors, amount := s.validateSubmission(input)
	if len(fieldErrors) > 0 {
		st.errors = fieldErrors
		view := st.view()
		s.mu.Unlock()
		return view, apperrors.ErrValidation
	}
	st.errors = nil
	s.mu.Unlock()

	result, err := api.Convert(ctx, input.From, input.To, amount)

	s.mu.Lock()
	defer s.mu.Unlock()
	st = s.stateFor(sessionKey)
	if err != nil {
		s.logger.Warn("Conversion request failed", slog.String("error", err.Error()))
		return st.view(), err
	}

	// Success closes the modal: reset to defaults, keep the catalog.
	st.amount = ""
	st.from = defaultFromCurrency
	st.to = defaultToCurrency
	st.errors = nil
	st.result = nil

	view := st.view()
	view.Result = result
	if onSuccess != nil {
		onSuccess()
	}
	return view, nil
}

// validateSubmission collects all violations rather than stopping at the
// first. Currency presence checks run through the validator; the amount
// rules (numeric, strictly positive, 0.01 minimum) use decimal parsing.
func (s *convertFormService) validateSubmission(input dto.ConvertSubmission) (map[string]string, decimal.Decimal) {
	fieldErrors := make(map[string]string)

	if err := s.validate.Struct(input); err != nil {
		var violations validator.ValidationErrors
		if errors.As(err, &violations) {
			for _, violation := range violations {
				switch violation.Field() {
				case "From":
					fieldErrors["fromCurrency"] = "From currency is required"
				case "To":
					fieldErrors["toCurrency"] = "To currency is required"
				}
			}
		}
	}

	var amount decimal.Decimal
	switch {
	case input.Amount == "":
		fieldErrors["amount"] = "Amount is required"
	default:
		parsed, err := decimal.NewFromString(input.Amount)
		switch {
		case err != nil:
			fieldErrors["amount"] = "Amount must be a number"
		case parsed.Sign() <= 0:
			fieldErrors["amount"] = "Amount must be positive"
		case parsed.LessThan(minimumAmount):
			fieldErrors["amount"] = "Minimum amount is 0.01"
		default:
			amount = parsed
		}
	}

	if len(fieldErrors) == 0 {
		return nil, amount
	}
	return fieldErrors, amount
}

// Swap exchanges the from/to selections in place and discards any previously
// computed result. No network call.
func (s *convertFormService) Swap(sessionKey string) *dto.ConvertFormView {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stateFor(sessionKey)
	st.from, st.to = st.to, st.from
	st.result = nil
	return st.view()
}

// Close resets the form to its defaults. The catalog survives: it is cached
// for the lifetime of the surrounding session, not a single modal open.
func (s *convertFormService) Close(sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stateFor(sessionKey)
	st.amount = ""
	st.from = defaultFromCurrency
	st.to = defaultToCurrency
	st.errors = nil
	st.result = nil
}

// Drop discards all form state including the catalog (session end).
func (s *convertFormService) Drop(sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.forms, sessionKey)
}
