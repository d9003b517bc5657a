package handlers_test

import (
	"context"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/convertly/currency_converter_web/internal/core/domain"
	"github.com/convertly/currency_converter_web/internal/core/ports/backendapi"
	portssvc "github.com/convertly/currency_converter_web/internal/core/ports/services"
	"github.com/convertly/currency_converter_web/internal/dto"
	"github.com/convertly/currency_converter_web/internal/handlers"
	"github.com/convertly/currency_converter_web/internal/platform/config"
)

// --- Mock SessionSvcFacade ---
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Current(c *gin.Context) *domain.Session {
	args := m.Called(c)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Session)
}

func (m *MockSessionService) Establish(c *gin.Context, sess *domain.Session) error {
	args := m.Called(c, sess)
	return args.Error(0)
}

func (m *MockSessionService) Destroy(c *gin.Context) {
	m.Called(c)
}

func (m *MockSessionService) TokenExpiry(token string) (time.Time, bool) {
	args := m.Called(token)
	return args.Get(0).(time.Time), args.Bool(1)
}

// --- Mock IdentityProviderSvcFacade ---
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockIdentityProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) Validate(ctx context.Context, rawIDToken string) (*dto.ProviderAssertion, error) {
	args := m.Called(ctx, rawIDToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProviderAssertion), args.Error(1)
}

// --- Mock IdentityExchangeSvcFacade ---
type MockIdentityExchange struct {
	mock.Mock
}

func (m *MockIdentityExchange) Exchange(ctx context.Context, api backendapi.AuthAPI, assertion *dto.ProviderAssertion, role string) (*domain.Session, error) {
	args := m.Called(ctx, api, assertion, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

// --- Mock ConversionSvcFacade ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) FetchPage(ctx context.Context, api backendapi.ConversionReaderAPI, sessionKey string, page int) (*dto.ConversionsView, error) {
	args := m.Called(ctx, api, sessionKey, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConversionsView), args.Error(1)
}

func (m *MockConversionService) FetchStats(ctx context.Context, api backendapi.ConversionReaderAPI, sessionKey string) (*domain.ConversionStats, error) {
	args := m.Called(ctx, api, sessionKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionStats), args.Error(1)
}

func (m *MockConversionService) Refresh(ctx context.Context, api backendapi.ConversionReaderAPI, sessionKey string, page int) error {
	args := m.Called(ctx, api, sessionKey, page)
	return args.Error(0)
}

func (m *MockConversionService) Drop(sessionKey string) {
	m.Called(sessionKey)
}

// --- Mock ConvertFormSvcFacade ---
type MockConvertFormService struct {
	mock.Mock
}

func (m *MockConvertFormService) Open(ctx context.Context, api backendapi.ConversionReaderAPI, sessionKey string) (*dto.ConvertFormView, error) {
	args := m.Called(ctx, api, sessionKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConvertFormView), args.Error(1)
}

func (m *MockConvertFormService) Submit(ctx context.Context, api backendapi.ConversionWriterAPI, sessionKey string, input dto.ConvertSubmission, onSuccess func()) (*dto.ConvertFormView, error) {
	args := m.Called(ctx, api, sessionKey, input, onSuccess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConvertFormView), args.Error(1)
}

func (m *MockConvertFormService) Swap(sessionKey string) *dto.ConvertFormView {
	args := m.Called(sessionKey)
	return args.Get(0).(*dto.ConvertFormView)
}

func (m *MockConvertFormService) Close(sessionKey string) {
	m.Called(sessionKey)
}

func (m *MockConvertFormService) Drop(sessionKey string) {
	m.Called(sessionKey)
}

// --- Mock BackendAPIFacade ---
type MockBackendAPI struct {
	mock.Mock
}

func (m *MockBackendAPI) SocialLogin(ctx context.Context, idToken, role string) (*domain.User, string, error) {
	args := m.Called(ctx, idToken, role)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockBackendAPI) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBackendAPI) ListCurrencies(ctx context.Context) (domain.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Catalog), args.Error(1)
}

func (m *MockBackendAPI) ListConversions(ctx context.Context, page, limit int) ([]domain.Conversion, domain.Pagination, error) {
	args := m.Called(ctx, page, limit)
	var conversions []domain.Conversion
	if args.Get(0) != nil {
		conversions = args.Get(0).([]domain.Conversion)
	}
	return conversions, args.Get(1).(domain.Pagination), args.Error(2)
}

func (m *MockBackendAPI) ConversionStats(ctx context.Context) (*domain.ConversionStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionStats), args.Error(1)
}

func (m *MockBackendAPI) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	args := m.Called(ctx, from, to, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

// stubClientFacade hands out a fixed API mock for whatever session binds,
// capturing the registered 401 hook so tests can fire it.
type stubClientFacade struct {
	api            *MockBackendAPI
	onUnauthorized func()
}

func (s *stubClientFacade) WithSession(sess *domain.Session, userAgent string, onUnauthorized func()) backendapi.BackendAPIFacade {
	s.onUnauthorized = onUnauthorized
	return s.api
}

// handlerMocks bundles everything a handler test wires up.
type handlerMocks struct {
	sessions    *MockSessionService
	provider    *MockIdentityProvider
	identity    *MockIdentityExchange
	conversions *MockConversionService
	convertForm *MockConvertFormService
	backend     *stubClientFacade
}

const testPageTemplates = `
{{define "login.html"}}login:{{.Error}}{{end}}
{{define "currencies.html"}}currencies:{{.UserName}}:{{.Initials}}:{{.Error}}:{{.Stats.TotalConversions}}:{{.Page}}{{end}}
`

func setupRouter() (*gin.Engine, *handlerMocks) {
	gin.SetMode(gin.TestMode)

	m := &handlerMocks{
		sessions:    new(MockSessionService),
		provider:    new(MockIdentityProvider),
		identity:    new(MockIdentityExchange),
		conversions: new(MockConversionService),
		convertForm: new(MockConvertFormService),
		backend:     &stubClientFacade{api: new(MockBackendAPI)},
	}

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("").Parse(testPageTemplates)))

	handlers.RegisterRoutes(r, &config.Config{}, &portssvc.ServiceContainer{
		Session:     m.sessions,
		Provider:    m.provider,
		Identity:    m.identity,
		Conversions: m.conversions,
		ConvertForm: m.convertForm,
		Backend:     m.backend,
	})
	return r, m
}
