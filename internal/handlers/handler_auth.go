package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/convertly/currency_converter_web/internal/apperrors"
	"github.com/convertly/currency_converter_web/internal/core/ports/backendapi"
	portssvc "github.com/convertly/currency_converter_web/internal/core/ports/services"
	"github.com/convertly/currency_converter_web/internal/middleware"
	"github.com/convertly/currency_converter_web/internal/utils"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 600

	// Role hint sent with the identity exchange.
	loginRole = "user"

	genericLoginError = "Something went wrong"
)

// authHandler handles the login page, the provider consent flow, the
// identity exchange and logout.
type authHandler struct {
	sessions    portssvc.SessionSvcFacade
	provider    portssvc.IdentityProviderSvcFacade
	identity    portssvc.IdentityExchangeSvcFacade
	conversions portssvc.ConversionSvcFacade
	convertForm portssvc.ConvertFormSvcFacade
	backend     backendapi.ClientFacade
}

// registerAuthRoutes sets up the login and logout routes. The consent flow
// endpoints are rate limited per IP.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := &authHandler{
		sessions:    services.Session,
		provider:    services.Provider,
		identity:    services.Identity,
		conversions: services.Conversions,
		convertForm: services.ConvertForm,
		backend:     services.Backend,
	}

	// 5 login attempts per minute per IP.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	r.GET("/login", middleware.RedirectIfAuthenticated(services.Session, "/currencies"), h.loginPage)

	auth := r.Group("/auth")
	{
		auth.GET("/google", limitMiddleware, h.googleLogin)
		auth.GET("/google/callback", limitMiddleware, h.googleCallback)
		auth.POST("/logout", middleware.RouteGuard(services.Session, h.dropSessionState), h.logout)
	}
}

// dropSessionState discards the per-session in-memory state alongside the
// cookies whenever a session ends.
func (h *authHandler) dropSessionState(sessionKey string) {
	h.conversions.Drop(sessionKey)
	h.convertForm.Drop(sessionKey)
}

// loginPage renders the login entry point. A failed exchange redirects back
// here with the user-visible message in the error query parameter.
func (h *authHandler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Error": c.Query("error"),
	})
}

// googleLogin starts the provider consent flow: a fresh state nonce goes
// into a short-lived cookie and the browser is sent to the consent screen.
func (h *authHandler) googleLogin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		redirectLoginError(c, genericLoginError)
		return
	}

	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", false, true)
	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// googleCallback finishes the consent flow and performs the identity
// exchange. Provider-side failures are reported without ever calling the
// backend; a failed backend exchange leaves any prior session untouched.
func (h *authHandler) googleCallback(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	// Consume the state cookie regardless of outcome.
	expectedState, stateErr := c.Cookie(oauthStateCookie)
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	if providerErr := c.Query("error"); providerErr != "" {
		logger.Warn("Provider reported consent failure", slog.String("error", providerErr))
		redirectLoginError(c, "Unknown error occurred")
		return
	}
	if stateErr != nil || expectedState == "" || c.Query("state") != expectedState {
		logger.Warn("OAuth state mismatch")
		redirectLoginError(c, "Unknown error occurred")
		return
	}

	rawIDToken, err := h.provider.ExchangeCode(ctx, c.Query("code"))
	if err != nil {
		logger.Warn("Failed to exchange authorization code", slog.String("error", err.Error()))
		redirectLoginError(c, "Unknown error occurred")
		return
	}

	assertion, err := h.provider.Validate(ctx, rawIDToken)
	if err != nil {
		logger.Warn("Provider ID token validation failed", slog.String("error", err.Error()))
		redirectLoginError(c, "Unknown error occurred")
		return
	}

	// The exchange itself runs unauthenticated: no session is bound yet.
	api := h.backend.WithSession(nil, c.Request.UserAgent(), nil)
	sess, err := h.identity.Exchange(ctx, api, assertion, loginRole)
	if err != nil {
		logger.Warn("Identity exchange failed", slog.String("error", err.Error()))
		redirectLoginError(c, apperrors.UserMessage(err, genericLoginError))
		return
	}

	if err := h.sessions.Establish(c, sess); err != nil {
		logger.Error("Failed to persist session", slog.String("error", err.Error()))
		redirectLoginError(c, genericLoginError)
		return
	}

	logger.Info("Login successful", slog.String("user_id", sess.User.UserID))
	c.Redirect(http.StatusFound, "/currencies")
}

// logout invalidates the server-side session, then clears the cookies and
// the per-session state. A backend failure keeps the session so the user can
// retry; a 401 means the session is already dead and is cleared either way.
func (h *authHandler) logout(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	api := h.backend.WithSession(sess, c.Request.UserAgent(), func() {
		h.dropSessionState(sess.Key())
		h.sessions.Destroy(c)
	})

	if err := api.Logout(ctx); err != nil && !apperrors.IsUnauthorized(err) {
		logger.Warn("Backend logout failed", slog.String("error", err.Error()))
		c.Redirect(http.StatusFound, "/currencies?error="+url.QueryEscape(apperrors.UserMessage(err, genericLoginError)))
		return
	}

	h.dropSessionState(sess.Key())
	h.sessions.Destroy(c)
	c.Redirect(http.StatusFound, "/login")
}

func redirectLoginError(c *gin.Context, message string) {
	c.Redirect(http.StatusFound, "/login?error="+url.QueryEscape(message))
}
