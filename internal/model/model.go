// Package model defines domain entities used by services and repositories.
package model

import (
	"encoding/json"
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents an account stored on the server. PasswordHash is write-only
// from the service's perspective and never leaves the process.
type User struct {
	ID           uuid.UUID // PK
	Email        string    // unique
	Username     string    // unique
	PasswordHash []byte    // bcrypt(password); salt embedded in the hash
	FullName     string
	CreatedAt    time.Time
	LastLogin    *time.Time      // nil until first successful login
	Preferences  json.RawMessage // opaque client blob, not interpreted here
}

// PublicUser is the projection of a user returned alongside tokens.
type PublicUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// Profile is the full public view returned by the profile endpoint.
type Profile struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	Username    string          `json:"username"`
	FullName    string          `json:"fullName"`
	CreatedAt   time.Time       `json:"createdAt"`
	LastLogin   *time.Time      `json:"lastLogin"`
	Preferences json.RawMessage `json:"preferences"`
}

// Public returns the token-response projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID.String(),
		Email:    u.Email,
		Username: u.Username,
		FullName: u.FullName,
	}
}

// AsProfile returns the profile projection of u.
func (u *User) AsProfile() Profile {
	return Profile{
		ID:          u.ID.String(),
		Email:       u.Email,
		Username:    u.Username,
		FullName:    u.FullName,
		CreatedAt:   u.CreatedAt,
		LastLogin:   u.LastLogin,
		Preferences: u.Preferences,
	}
}

// Tokens collects an issued access/refresh pair.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time // access token expiry (for diagnostics)
}
