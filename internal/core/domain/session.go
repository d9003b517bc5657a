package domain

import "encoding/json"

// Session is the authenticated identity recognised by the backend for one
// browser context. It is created by the identity exchange and lives in
// cookies until logout or a 401 invalidates it.
type Session struct {
	User User
	// Token is the opaque bearer credential issued by the backend. The
	// front-end never interprets it beyond best-effort expiry inspection.
	Token string
	// ProviderIdentity is the raw identity-provider user blob, persisted
	// verbatim alongside the application session for later reference.
	ProviderIdentity json.RawMessage
}

// Key identifies the session for per-session in-memory state (view cache,
// form state). The bearer token is unique per session, so it serves as key.
func (s *Session) Key() string {
	if s == nil {
		return ""
	}
	return s.Token
}

// Authenticated reports whether the session carries a bearer token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}
