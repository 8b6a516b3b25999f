package domain

import (
	"net/mail"
	"strings"
	"time"
)

// Role is the privilege level of a user account.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// SocialLinks are the public profile links shown next to a user's bio.
type SocialLinks struct {
	Github   string `json:"github" bson:"github"`
	Linkedin string `json:"linkedin" bson:"linkedin"`
	Twitter  string `json:"twitter" bson:"twitter"`
	Website  string `json:"website" bson:"website"`
}

// User is an account that can sign in to the dashboard.
type User struct {
	ID           string      `json:"_id"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	IsActive     bool        `json:"isActive"`
	Bio          string      `json:"bio"`
	SocialLinks  SocialLinks `json:"socialLinks"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Normalize trims free-text fields and lower-cases the unique identifiers.
func (u *User) Normalize() {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Username = NormalizeIdentifier(u.Username)
	u.Email = NormalizeIdentifier(u.Email)
	u.Bio = strings.TrimSpace(u.Bio)
}

// Validate checks required fields and enum membership. It does not look at the
// password hash; callers hash before persisting.
func (u *User) Validate() error {
	switch {
	case u.FirstName == "":
		return Invalid("firstName", "is required")
	case u.LastName == "":
		return Invalid("lastName", "is required")
	case u.Username == "":
		return Invalid("username", "is required")
	case u.Email == "":
		return Invalid("email", "is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return Invalid("email", "must be a valid email")
	}
	if !u.Role.Valid() {
		return Invalid("role", "must be one of: admin moderator user")
	}
	return nil
}

// Profile is the public view returned by sign-in and check-auth.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}

// Summary is the projection used when resolving createdBy references.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
	}
}

type UserProfile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role"`
}

type UserSummary struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
}

// NormalizeIdentifier is applied to usernames and emails on write and lookup,
// which makes identifier matching case-insensitive.
func NormalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
