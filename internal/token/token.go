// Package token issues and verifies the signed access and refresh tokens.
//
// The two roles share a wire format but are signed with independent secrets,
// so a leaked access secret cannot forge refresh tokens and vice versa.
// Expiry is embedded in the token itself; verification never touches the
// store.
package token

import (
	"errors"
	"time"

	"github.com/fiscalfit/server/internal/errs"
	"github.com/golang-jwt/jwt/v5"
)

// Payload is the identity carried by both token roles. The role itself is
// not a field; it is implied by which secret signed the token.
type Payload struct {
	UserID   string
	Email    string
	Username string
}

// Claims is the JWT claim set: registered claims with the user id as the
// subject, plus email and username.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Config holds one signing context: an HS256 secret and a token lifetime.
type Config struct {
	Secret []byte
	TTL    time.Duration
}

// Manager signs and verifies tokens for the access and refresh roles.
type Manager struct {
	access  Config
	refresh Config
}

// NewManager constructs a Manager with independent access/refresh contexts.
func NewManager(access, refresh Config) *Manager {
	return &Manager{access: access, refresh: refresh}
}

// IssueAccess signs an access token for p and returns it with its expiry.
func (m *Manager) IssueAccess(p Payload) (string, time.Time, error) {
	return issue(m.access, p)
}

// IssueRefresh signs a refresh token for p and returns it with its expiry.
func (m *Manager) IssueRefresh(p Payload) (string, time.Time, error) {
	return issue(m.refresh, p)
}

// VerifyAccess validates tok against the access secret and returns its
// payload. Any failure (bad signature, wrong method, malformed, expired)
// reports errs.ErrInvalidToken.
func (m *Manager) VerifyAccess(tok string) (Payload, error) {
	return verify(m.access, tok)
}

// VerifyRefresh validates tok against the refresh secret.
func (m *Manager) VerifyRefresh(tok string) (Payload, error) {
	return verify(m.refresh, tok)
}

func issue(cfg Config, p Payload) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(cfg.TTL)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email:    p.Email,
		Username: p.Username,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(cfg.Secret)
	return signed, exp, err
}

func verify(cfg Config, tok string) (Payload, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return cfg.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return Payload{}, errs.ErrInvalidToken
	}
	if claims.Subject == "" {
		return Payload{}, errs.ErrInvalidToken
	}
	return Payload{
		UserID:   claims.Subject,
		Email:    claims.Email,
		Username: claims.Username,
	}, nil
}
