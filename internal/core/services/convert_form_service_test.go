package services_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/convertly/currency_converter_web/internal/apperrors"
	"github.com/convertly/currency_converter_web/internal/core/domain"
	portssvc "github.com/convertly/currency_converter_web/internal/core/ports/services"
	"github.com/convertly/currency_converter_web/internal/core/services"
	"github.com/convertly/currency_converter_web/internal/dto"
)

// --- Mock ConversionWriterAPI ---
type MockConversionWriterAPI struct {
	mock.Mock
}

func (m *MockConversionWriterAPI) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	args := m.Called(ctx, from, to, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

// --- Test Suite ---
type ConvertFormServiceTestSuite struct {
	suite.Suite
	mockReader *MockConversionReaderAPI
	mockWriter *MockConversionWriterAPI
	service    portssvc.ConvertFormSvcFacade
}

func (suite *ConvertFormServiceTestSuite) SetupTest() {
	suite.mockReader = new(MockConversionReaderAPI)
	suite.mockWriter = new(MockConversionWriterAPI)
	suite.service = services.NewConvertFormService(slog.Default())
}

func testCatalog() domain.Catalog {
	return domain.Catalog{
		"USD": {Name: "United States Dollar", Code: "USD"},
		"EUR": {Name: "Euro", Code: "EUR"},
		"INR": {Name: "Indian Rupee", Code: "INR"},
	}
}

// --- Test Cases ---

func (suite *ConvertFormServiceTestSuite) TestOpen_FetchesCatalogOnlyOnce() {
	ctx := context.Background()
	suite.mockReader.On("ListCurrencies", ctx).Return(testCatalog(), nil).Once()

	first, err := suite.service.Open(ctx, suite.mockReader, testSessionKey)
	suite.Require().NoError(err)
	suite.False(first.CatalogLoading)
	suite.Len(first.Catalog, 3)
	suite.Equal("USD", first.From)
	suite.Equal("EUR", first.To)

	second, err := suite.service.Open(ctx, suite.mockReader, testSessionKey)
	suite.Require().NoError(err)
	suite.Len(second.Catalog, 3)

	suite.mockReader.AssertNumberOfCalls(suite.T(), "ListCurrencies", 1)
}

func (suite *ConvertFormServiceTestSuite) TestOpen_CatalogFailureStaysLoading() {
	ctx := context.Background()
	suite.mockReader.On("ListCurrencies", ctx).
		Return(nil, apperrors.NewInternalServerError("backend down")).Once()
	suite.mockReader.On("ListCurrencies", ctx).Return(testCatalog(), nil).Once()

	view, err := suite.service.Open(ctx, suite.mockReader, testSessionKey)
	suite.Require().Error(err)
	suite.True(view.CatalogLoading)

	// A later open retries because the catalog never loaded.
	view, err = suite.service.Open(ctx, suite.mockReader, testSessionKey)
	suite.Require().NoError(err)
	suite.False(view.CatalogLoading)
	suite.mockReader.AssertExpectations(suite.T())
}

func (suite *ConvertFormServiceTestSuite) TestSubmit_CollectsAllFieldErrorsWithoutNetwork() {
	ctx := context.Background()

	view, err := suite.service.Submit(ctx, suite.mockWriter, testSessionKey, dto.ConvertSubmission{
		Amount: "",
		From:   "",
		To:     "",
	}, nil)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("Amount is required", view.Errors["amount"])
	suite.Equal("From currency is required", view.Errors["fromCurrency"])
	suite.Equal("To currency is required", view.Errors["toCurrency"])
	suite.mockWriter.AssertNotCalled(suite.T(), "Convert")
}

func (suite *ConvertFormServiceTestSuite) TestSubmit_AmountValidationMessages() {
	ctx := context.Background()

	cases := []struct {
		amount  string
		message string
	}{
		{"abc", "Amount must be a number"},
		{"0", "Amount must be positive"},
		{"-5", "Amount must be positive"},
		{"0.005", "Minimum amount is 0.01"},
	}

	for _, tc := range cases {
		view, err := suite.service.Submit(ctx, suite.mockWriter, testSessionKey, dto.ConvertSubmission{
			Amount: tc.amount,
			From:   "USD",
			To:     "EUR",
		}, nil)

		suite.Require().ErrorIs(err, apperrors.ErrValidation, "amount %q", tc.amount)
		suite.Equal(tc.message, view.Errors["amount"], "amount %q", tc.amount)
	}
	suite.mockWriter.AssertNotCalled(suite.T(), "Convert")
}

func (suite *ConvertFormServiceTestSuite) TestSubmit_SuccessResetsFormAndFiresCallbackOnce() {
	ctx := context.Background()
	amount := decimal.RequireFromString("25.50")
	result := &domain.ConversionResult{
		Amount: amount,
		From:   "USD",
		To:     "INR",
		Result: decimal.RequireFromString("2125.88"),
		Rate:   decimal.RequireFromString("83.37"),
	}

	suite.mockWriter.On("Convert", ctx, "USD", "INR", amount).Return(result, nil).Once()

	callbackCount := 0
	view, err := suite.service.Submit(ctx, suite.mockWriter, testSessionKey, dto.ConvertSubmission{
		Amount: "25.50",
		From:   "USD",
		To:     "INR",
	}, func() { callbackCount++ })

	suite.Require().NoError(err)
	suite.Equal(1, callbackCount)
	suite.Equal(result, view.Result)

	// The returned view resets to defaults for the next submission.
	suite.Equal("", view.Amount)
	suite.Equal("USD", view.From)
	suite.Equal("EUR", view.To)
	suite.Empty(view.Errors)
	suite.mockWriter.AssertExpectations(suite.T())
}

func (suite *ConvertFormServiceTestSuite) TestSubmit_BackendFailurePreservesFormState() {
	ctx := context.Background()
	amount := decimal.RequireFromString("10")

	suite.mockWriter.On("Convert", ctx, "USD", "EUR", amount).
		Return(nil, apperrors.NewInternalServerError("rate source unavailable")).Once()

	callbackCount := 0
	view, err := suite.service.Submit(ctx, suite.mockWriter, testSessionKey, dto.ConvertSubmission{
		Amount: "10",
		From:   "USD",
		To:     "EUR",
	}, func() { callbackCount++ })

	suite.Require().Error(err)
	suite.NotErrorIs(err, apperrors.ErrValidation)
	suite.Equal(0, callbackCount)
	suite.Equal("10", view.Amount)
	suite.Equal("USD", view.From)
	suite.Equal("EUR", view.To)
	suite.Nil(view.Result)
	suite.mockWriter.AssertExpectations(suite.T())
}

func (suite *ConvertFormServiceTestSuite) TestSwap_ExchangesCurrenciesWithoutNetwork() {
	view := suite.service.Swap(testSessionKey)

	suite.Equal("EUR", view.From)
	suite.Equal("USD", view.To)
	suite.Nil(view.Result)
	suite.mockWriter.AssertNotCalled(suite.T(), "Convert")
	suite.mockReader.AssertNotCalled(suite.T(), "ListCurrencies")
}

func (suite *ConvertFormServiceTestSuite) TestSwap_DiscardsPreviousResult() {
	ctx := context.Background()
	amount := decimal.RequireFromString("5")
	result := &domain.ConversionResult{Amount: amount, From: "USD", To: "EUR"}

	suite.mockWriter.On("Convert", ctx, "USD", "EUR", amount).Return(result, nil).Once()
	_, err := suite.service.Submit(ctx, suite.mockWriter, testSessionKey, dto.ConvertSubmission{
		Amount: "5",
		From:   "USD",
		To:     "EUR",
	}, nil)
	suite.Require().NoError(err)

	view := suite.service.Swap(testSessionKey)
	suite.Nil(view.Result)
}

func (suite *ConvertFormServiceTestSuite) TestClose_ResetsFieldsButKeepsCatalog() {
	ctx := context.Background()
	suite.mockReader.On("ListCurrencies", ctx).Return(testCatalog(), nil).Once()

	_, err := suite.service.Open(ctx, suite.mockReader, testSessionKey)
	suite.Require().NoError(err)

	_, err = suite.service.Submit(ctx, suite.mockWriter, testSessionKey, dto.ConvertSubmission{
		Amount: "abc",
		From:   "INR",
		To:     "USD",
	}, nil)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)

	suite.service.Close(testSessionKey)

	view, err := suite.service.Open(ctx, suite.mockReader, testSessionKey)
	suite.Require().NoError(err)
	suite.Equal("", view.Amount)
	suite.Equal("USD", view.From)
	suite.Equal("EUR", view.To)
	suite.Empty(view.Errors)
	suite.Len(view.Catalog, 3)
	suite.mockReader.AssertNumberOfCalls(suite.T(), "ListCurrencies", 1)
}

func (suite *ConvertFormServiceTestSuite) TestDrop_DiscardsCatalog() {
	ctx := context.Background()
	suite.mockReader.On("ListCurrencies", ctx).Return(testCatalog(), nil).Twice()

	_, err := suite.service.Open(ctx, suite.mockReader, testSessionKey)
	suite.Require().NoError(err)

	suite.service.Drop(testSessionKey)

	_, err = suite.service.Open(ctx, suite.mockReader, testSessionKey)
	suite.Require().NoError(err)
	suite.mockReader.AssertExpectations(suite.T())
}

func (suite *ConvertFormServiceTestSuite) TestOpen_ConcurrentWithDrop() {
	// Open against a loaded catalog races with Drop ending the session; every
	// interleaving must return a coherent view built under the lock.
	ctx := context.Background()
	suite.mockReader.On("ListCurrencies", ctx).Return(testCatalog(), nil)

	_, err := suite.service.Open(ctx, suite.mockReader, testSessionKey)
	suite.Require().NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				view, _ := suite.service.Open(ctx, suite.mockReader, testSessionKey)
				suite.NotNil(view)
				suite.service.Swap(testSessionKey)
				suite.service.Drop(testSessionKey)
			}
		}()
	}
	wg.Wait()
}

func TestConvertFormServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConvertFormServiceTestSuite))
}
