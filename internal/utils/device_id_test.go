package utils

import (
	"crypto/md5"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveDeviceID_Deterministic(t *testing.T) {
	a := DeriveDeviceID("Pixel 8", "Mozilla/5.0 (Linux; Android 14)")
	b := DeriveDeviceID("Pixel 8", "Mozilla/5.0 (Linux; Android 14)")
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
	_, err := hex.DecodeString(a)
	assert.NoError(t, err)
}

func TestDeriveDeviceID_MatchesDigestOfNormalizedInput(t *testing.T) {
	sum := md5.Sum([]byte("Unknown" + "Mozilla/5.0 Test"))
	want := hex.EncodeToString(sum[:])
	assert.Equal(t, want, DeriveDeviceID("Unknown", "Mozilla/5.0   Test"))
}

func TestDeriveDeviceID_DistinguishesInputs(t *testing.T) {
	assert.NotEqual(t,
		DeriveDeviceID("Pixel 8", "agent"),
		DeriveDeviceID("Pixel 7", "agent"))
	assert.NotEqual(t,
		DeriveDeviceID("Pixel 8", "agent-a"),
		DeriveDeviceID("Pixel 8", "agent-b"))
}

func TestNormalizeUserAgent(t *testing.T) {
	assert.Equal(t, "Unknown", NormalizeUserAgent(""))
	assert.Equal(t, "Unknown", NormalizeUserAgent("   "))
	assert.Equal(t, "a b c", NormalizeUserAgent("  a \t b\n c  "))
}
