package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/convertly/currency_converter_web/internal/apperrors"
	"github.com/convertly/currency_converter_web/internal/core/domain"
	"github.com/convertly/currency_converter_web/internal/core/ports/backendapi"
	portssvc "github.com/convertly/currency_converter_web/internal/core/ports/services"
	"github.com/convertly/currency_converter_web/internal/dto"
	"github.com/convertly/currency_converter_web/internal/middleware"
	"github.com/convertly/currency_converter_web/internal/utils/pagination"
)

const (
	historyErrorFallback = "Failed to fetch conversion history"
	statsErrorFallback   = "Failed to fetch conversion stats"
	convertErrorMessage  = "Failed to convert currency. Please try again."
)

// currenciesHandler serves the authenticated conversions page and the
// conversion modal endpoints.
type currenciesHandler struct {
	sessions    portssvc.SessionSvcFacade
	conversions portssvc.ConversionSvcFacade
	convertForm portssvc.ConvertFormSvcFacade
	backend     backendapi.ClientFacade
}

// registerCurrencyRoutes registers the protected conversion routes.
func registerCurrencyRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := &currenciesHandler{
		sessions:    services.Session,
		conversions: services.Conversions,
		convertForm: services.ConvertForm,
		backend:     services.Backend,
	}

	guard := middleware.RouteGuard(services.Session, h.dropSessionState)

	currencies := r.Group("/currencies", guard)
	{
		currencies.GET("", h.currenciesPage)
		currencies.GET("/catalog", h.catalog)
		currencies.POST("/convert", h.convert)
		currencies.POST("/swap", h.swap)
	}
}

func (h *currenciesHandler) dropSessionState(sessionKey string) {
	h.conversions.Drop(sessionKey)
	h.convertForm.Drop(sessionKey)
}

// sessionAPI binds the backend client to the request's session, with the 401
// interceptor clearing the session cookies and per-session state.
func (h *currenciesHandler) sessionAPI(c *gin.Context, sess *domain.Session) backendapi.BackendAPIFacade {
	return h.backend.WithSession(sess, c.Request.UserAgent(), func() {
		h.dropSessionState(sess.Key())
		h.sessions.Destroy(c)
	})
}

// currenciesPage renders conversion history and stats. The two fetches are
// independent: either may fail while the other renders, and a failure keeps
// whatever the session last saw on screen next to the error.
func (h *currenciesHandler) currenciesPage(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	api := h.sessionAPI(c, sess)

	view, historyErr := h.conversions.FetchPage(ctx, api, sess.Key(), page)
	stats, statsErr := h.conversions.FetchStats(ctx, api, sess.Key())

	if apperrors.IsUnauthorized(historyErr) || apperrors.IsUnauthorized(statsErr) {
		// The interceptor already cleared the session.
		c.Redirect(http.StatusFound, "/login")
		return
	}

	errMessage := c.Query("error")
	if historyErr != nil {
		logger.Warn("Failed to fetch conversions", slog.String("error", historyErr.Error()))
		errMessage = apperrors.UserMessage(historyErr, historyErrorFallback)
	} else if statsErr != nil {
		logger.Warn("Failed to fetch conversion stats", slog.String("error", statsErr.Error()))
		errMessage = apperrors.UserMessage(statsErr, statsErrorFallback)
	}

	if view == nil {
		view = &dto.ConversionsView{}
	}

	// The retry link and the convert form target the requested page, not the
	// retained view's page: a failed fetch retries with the same parameters.
	c.HTML(http.StatusOK, "currencies.html", gin.H{
		"UserName":    sess.User.Name,
		"Initials":    initialsOrFallback(sess.User),
		"Stats":       dto.ToStatsResponse(stats),
		"Conversions": dto.ToListConversionResponse(view.Conversions),
		"Window":      pagination.Build(view.Pagination),
		"Page":        page,
		"Error":       errMessage,
	})
}

// catalog serves the conversion modal's currency catalog, fetched from the
// backend at most once per session.
func (h *currenciesHandler) catalog(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	view, err := h.convertForm.Open(ctx, h.sessionAPI(c, sess), sess.Key())
	if err != nil {
		logger.Warn("Failed to fetch currency catalog", slog.String("error", err.Error()))
		respondError(c, err, genericLoginError)
		return
	}
	c.JSON(http.StatusOK, view)
}

// convert runs the submission flow. Validation violations come back as a 400
// with per-field messages and never reach the backend; a successful
// conversion refreshes the history page and the stats exactly once each.
func (h *currenciesHandler) convert(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var input dto.ConvertSubmission
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	api := h.sessionAPI(c, sess)
	refreshed := false
	view, err := h.convertForm.Submit(ctx, api, sess.Key(), input, func() {
		refreshed = true
		if refreshErr := h.conversions.Refresh(ctx, api, sess.Key(), page); refreshErr != nil {
			logger.Warn("Post-conversion refresh failed", slog.String("error", refreshErr.Error()))
		}
	})

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, view)
	case apperrors.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
	case err != nil:
		logger.Warn("Conversion failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"message": convertErrorMessage})
	default:
		logger.Info("Conversion succeeded",
			slog.String("from", input.From),
			slog.String("to", input.To),
			slog.Bool("refreshed", refreshed),
		)
		c.JSON(http.StatusOK, view)
	}
}

// swap exchanges the form's from/to selections. No network call is made and
// any previously computed result is discarded.
func (h *currenciesHandler) swap(c *gin.Context) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, h.convertForm.Swap(sess.Key()))
}

// respondError maps a backend or transport failure to a JSON error response
// carrying the backend's message when one exists.
func respondError(c *gin.Context, err error, fallback string) {
	status := http.StatusBadGateway
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		status = appErr.Code
	}
	c.JSON(status, gin.H{"message": apperrors.UserMessage(err, fallback)})
}

func initialsOrFallback(user domain.User) string {
	if initials := user.Initials(); initials != "" {
		return initials
	}
	return "CC"
}
