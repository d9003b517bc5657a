package domain

import (
	"strings"
	"time"
)

// User is the application profile returned by the backend on social login.
// The backend owns every field; the front-end only reads them.
type User struct {
	UserID             string    `json:"_id"`
	Name               string    `json:"name,omitempty"`
	Email              string    `json:"email"`
	ProfilePicture     string    `json:"profilePicture,omitempty"`
	SignUpRecord       string    `json:"signUpRecord,omitempty"`
	ProviderUID        string    `json:"uid,omitempty"`
	IsEmailVerified    bool      `json:"isEmailVerified,omitempty"`
	IsProfileCompleted bool      `json:"isProfileCompleted,omitempty"`
	IsDeleted          bool      `json:"isDeleted,omitempty"`
	CreatedAt          time.Time `json:"createdAt,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt,omitempty"`
}

// Initials returns the uppercased first letters of the first and last name
// parts, used by the navbar avatar. Empty when the user has no name.
func (u User) Initials() string {
	parts := strings.Fields(strings.TrimSpace(u.Name))
	if len(parts) == 0 {
		return ""
	}
	initials := string([]rune(parts[0])[0])
	if len(parts) > 1 {
		initials += string([]rune(parts[len(parts)-1])[0])
	}
	return strings.ToUpper(initials)
}
