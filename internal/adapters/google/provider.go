// Package google is the identity-provider collaborator: it drives the Google
// consent flow and validates the returned ID token before the backend
// exchange ever sees it.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	portssvc "github.com/convertly/currency_converter_web/internal/core/ports/services"
	"github.com/convertly/currency_converter_web/internal/dto"
	"github.com/convertly/currency_converter_web/internal/platform/config"
)

type provider struct {
	clientID     string
	oauth2Config *oauth2.Config
}

// NewProvider creates the Google identity provider from configuration.
func NewProvider(cfg *config.Config) portssvc.IdentityProviderSvcFacade {
	return &provider{
		clientID: cfg.GoogleClientID,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL builds the consent URL for a state nonce.
func (p *provider) AuthCodeURL(state string) string {
	return p.oauth2Config.AuthCodeURL(state)
}

// ExchangeCode swaps an authorization code for the raw ID token issued
// alongside the access token.
func (p *provider) ExchangeCode(ctx context.Context, code string) (string, error) {
	token, err := p.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return "", errors.New("id_token missing from provider token response")
	}
	return rawIDToken, nil
}

// Validate verifies the raw ID token against the configured client ID and
// extracts the assertion. The raw claims are preserved verbatim so the
// session can persist the provider identity blob.
func (p *provider) Validate(ctx context.Context, rawIDToken string) (*dto.ProviderAssertion, error) {
	if p.clientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, rawIDToken, p.clientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	if email == "" || payload.Subject == "" {
		return nil, errors.New("essential claims (email or sub) missing from ID token payload")
	}

	rawClaims, err := json.Marshal(payload.Claims)
	if err != nil {
		return nil, fmt.Errorf("failed to encode provider claims: %w", err)
	}

	return &dto.ProviderAssertion{
		IDToken:   rawIDToken,
		Subject:   payload.Subject,
		Email:     email,
		Name:      name,
		Picture:   picture,
		RawClaims: rawClaims,
	}, nil
}
