package dto

import "encoding/json"

// ProviderAssertion is the validated identity assertion obtained from the
// identity provider before the backend exchange. RawClaims preserves the
// provider's user blob verbatim for session persistence.
type ProviderAssertion struct {
	IDToken   string
	Subject   string
	Email     string
	Name      string
	Picture   string
	RawClaims json.RawMessage
}

// SocialLoginRequest is the body POSTed to the backend session exchange.
type SocialLoginRequest struct {
	Role    string `json:"role"`
	IDToken string `json:"idToken"`
}
