package httpserver

import (
	"regexp"
	"unicode/utf8"

	"github.com/fiscalfit/server/internal/errs"
)

// Field constraints mirror the mobile client's form rules; violations are
// returned in declaration order.
var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

func (r *registerRequest) validate() []errs.FieldViolation {
	var v []errs.FieldViolation
	if !emailRe.MatchString(r.Email) {
		v = append(v, errs.FieldViolation{Path: "email", Message: "Invalid email address format"})
	}
	// Lengths count characters, not bytes, matching the client's form rules.
	switch {
	case utf8.RuneCountInString(r.Username) < 3:
		v = append(v, errs.FieldViolation{Path: "username", Message: "Username must be at least 3 characters long"})
	case utf8.RuneCountInString(r.Username) > 50:
		v = append(v, errs.FieldViolation{Path: "username", Message: "Username cannot be longer than 50 characters"})
	case !usernameRe.MatchString(r.Username):
		v = append(v, errs.FieldViolation{Path: "username", Message: "Username can only contain letters, numbers, underscores, and hyphens"})
	}
	switch {
	case utf8.RuneCountInString(r.Password) < 6:
		v = append(v, errs.FieldViolation{Path: "password", Message: "Password must be at least 6 characters long"})
	case utf8.RuneCountInString(r.Password) > 100:
		v = append(v, errs.FieldViolation{Path: "password", Message: "Password cannot be longer than 100 characters"})
	}
	switch {
	case utf8.RuneCountInString(r.FullName) < 2:
		v = append(v, errs.FieldViolation{Path: "fullName", Message: "Full name must be at least 2 characters long"})
	case utf8.RuneCountInString(r.FullName) > 100:
		v = append(v, errs.FieldViolation{Path: "fullName", Message: "Full name cannot be longer than 100 characters"})
	}
	return v
}

type loginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

func (r *loginRequest) validate() []errs.FieldViolation {
	var v []errs.FieldViolation
	if r.EmailOrUsername == "" {
		v = append(v, errs.FieldViolation{Path: "emailOrUsername", Message: "Email or username is required"})
	}
	if r.Password == "" {
		v = append(v, errs.FieldViolation{Path: "password", Message: "Password is required"})
	}
	return v
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (r *refreshRequest) validate() []errs.FieldViolation {
	if r.RefreshToken == "" {
		return []errs.FieldViolation{{Path: "refreshToken", Message: "Refresh token is required"}}
	}
	return nil
}
