package utils

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// DeriveDeviceID produces the device-unique identifier sent to the backend:
// the hex MD5 digest of the device model concatenated with the normalized
// user-agent string. Deterministic for the lifetime of a browser context and
// computed without any network round-trip. The exact value is opaque and
// used only as an analytics/fraud signal, never for correctness.
func DeriveDeviceID(deviceModel, userAgent string) string {
	raw := deviceModel + NormalizeUserAgent(userAgent)
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// NormalizeUserAgent collapses the heuristic parts of a user-agent string so
// the derived device ID stays stable across minor whitespace differences.
// Unknown or empty agents normalize to "Unknown".
func NormalizeUserAgent(userAgent string) string {
	ua := strings.Join(strings.Fields(userAgent), " ")
	if ua == "" {
		return "Unknown"
	}
	return ua
}
