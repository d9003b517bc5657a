package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/convertly/currency_converter_web/internal/core/domain"
	"github.com/convertly/currency_converter_web/internal/dto"
)

// socialLoginEnvelope matches the backend's { data: { user, token } } shape.
type socialLoginEnvelope struct {
	Data struct {
		User  domain.User `json:"user"`
		Token string      `json:"token"`
	} `json:"data"`
}

// SocialLogin exchanges a provider ID token for an application session.
func (s *sessionClient) SocialLogin(ctx context.Context, idToken, role string) (*domain.User, string, error) {
	req := dto.SocialLoginRequest{Role: role, IDToken: idToken}
	var envelope socialLoginEnvelope
	if err := s.do(ctx, http.MethodPost, "/auth/social-login", req, &envelope); err != nil {
		return nil, "", err
	}
	if envelope.Data.Token == "" {
		return nil, "", fmt.Errorf("social login response missing token")
	}
	return &envelope.Data.User, envelope.Data.Token, nil
}

// Logout invalidates the server-side session. Any 2xx body counts as success.
func (s *sessionClient) Logout(ctx context.Context) error {
	return s.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}
