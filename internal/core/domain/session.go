package domain

import "time"

// Session is the server-side record behind a session token.
// Username and Role are a snapshot taken at sign-in.
type Session struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Identity is the authenticated caller injected into request handling.
type Identity struct {
	UserID   string
	Username string
	Role     Role
	// User is nil when the credential store could not be reached and the
	// session snapshot was used instead.
	User *User
}
