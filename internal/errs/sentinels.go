// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Closed set of failure reasons raised by the service layer. The HTTP
// boundary maps these to statuses and envelope codes; anything outside the
// set becomes a generic internal error.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailInUse indicates the email is already registered.
	ErrEmailInUse = errors.New("email already in use")

	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials indicates a failed login. Shared by the
	// unknown-identifier and wrong-password branches so error text cannot be
	// used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates a token that failed signature, expiry or
	// structural checks.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidRefreshToken indicates a refresh token that failed verification.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrPasswordTooLong indicates a password beyond the hasher's input limit.
	ErrPasswordTooLong = errors.New("password too long")
)

// FieldViolation is a single request-validation failure, addressed by the
// JSON path of the offending field.
type FieldViolation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}
