// Package backend is the HTTP adapter for the external conversion backend.
// Every outbound request carries the device identification headers, the
// development-proxy bypass flag and, when a session is bound, the bearer
// token. A 401 response fires the onUnauthorized hook registered at session
// binding time and then propagates unchanged; the client never retries.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/convertly/currency_converter_web/internal/apperrors"
	"github.com/convertly/currency_converter_web/internal/core/domain"
	"github.com/convertly/currency_converter_web/internal/core/ports/backendapi"
	"github.com/convertly/currency_converter_web/internal/platform/config"
	"github.com/convertly/currency_converter_web/internal/utils"
)

const (
	headerDeviceModel = "devicemodel"
	headerDeviceID    = "deviceuniqueid"
	headerProxyBypass = "ngrok-skip-browser-warning"
	acceptValue       = "application/json, text/plain, */*"

	requestTimeout = 30 * time.Second
)

// Client holds the process-wide pieces of the backend connection: base URL,
// transport, device model and proxy bypass value. Session binding happens
// per request via WithSession.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	deviceModel      string
	proxyBypassValue string
	logger           *slog.Logger
}

// NewClient creates the backend client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL:          cfg.BackendBaseURL,
		httpClient:       &http.Client{Timeout: requestTimeout},
		deviceModel:      cfg.DeviceModel,
		proxyBypassValue: cfg.ProxyBypassValue,
		logger:           logger,
	}
}

// WithSession binds the client to one browser session. The device identifier
// is derived deterministically from the device model and the browser's user
// agent, so it stays stable across calls without a network round-trip.
// onUnauthorized is the 401 interception point; a nil hook is allowed.
func (c *Client) WithSession(sess *domain.Session, userAgent string, onUnauthorized func()) backendapi.BackendAPIFacade {
	token := ""
	if sess != nil {
		token = sess.Token
	}
	return &sessionClient{
		client:         c,
		token:          token,
		deviceID:       utils.DeriveDeviceID(c.deviceModel, userAgent),
		onUnauthorized: onUnauthorized,
	}
}

var _ backendapi.ClientFacade = (*Client)(nil)

// sessionClient is a request-scoped caller carrying one session's
// credentials and device identity.
type sessionClient struct {
	client         *Client
	token          string
	deviceID       string
	onUnauthorized func()
}

// errorPayload is the backend's best-effort error body.
type errorPayload struct {
	Message string `json:"message"`
}

// do executes one request against the backend. body and out may be nil.
// Non-2xx responses become AppErrors carrying the backend's message when one
// is present; transport failures propagate wrapped with no structured
// message. No retries anywhere: every retry is a fresh caller action.
func (s *sessionClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build backend request: %w", err)
	}

	req.Header.Set(headerDeviceModel, s.client.deviceModel)
	req.Header.Set(headerDeviceID, s.deviceID)
	req.Header.Set(headerProxyBypass, s.client.proxyBypassValue)
	req.Header.Set("Accept", acceptValue)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Clear session state as a side effect, then propagate the failure
		// unchanged: callers must not assume the hook notified anyone.
		if s.onUnauthorized != nil {
			s.onUnauthorized()
		}
		return apperrors.NewUnauthorizedError(decodeErrorMessage(resp.Body, "Unauthorized"))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		s.client.logger.Warn("Backend returned error status",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return apperrors.NewAppError(resp.StatusCode, decodeErrorMessage(resp.Body, ""), nil)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode backend response: %w", err)
		}
	}
	return nil
}

func decodeErrorMessage(body io.Reader, fallback string) string {
	var payload errorPayload
	if err := json.NewDecoder(body).Decode(&payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fallback
}
