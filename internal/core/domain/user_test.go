package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserInitials(t *testing.T) {
	assert.Equal(t, "AL", User{Name: "Ada Lovelace"}.Initials())
	assert.Equal(t, "AK", User{Name: "Ada Byron King"}.Initials())
	assert.Equal(t, "A", User{Name: "ada"}.Initials())
	assert.Equal(t, "", User{Name: "   "}.Initials())
	assert.Equal(t, "", User{}.Initials())
}

func TestSessionAuthenticated(t *testing.T) {
	var nilSess *Session
	assert.False(t, nilSess.Authenticated())
	assert.Equal(t, "", nilSess.Key())

	assert.False(t, (&Session{}).Authenticated())
	sess := &Session{Token: "bearer-token"}
	assert.True(t, sess.Authenticated())
	assert.Equal(t, "bearer-token", sess.Key())
}
