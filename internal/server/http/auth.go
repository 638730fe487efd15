// Package httpserver exposes the REST API: registration, login, token
// refresh and profile, all wrapped in a uniform response envelope.
package httpserver

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/fiscalfit/server/internal/errs"
	"github.com/fiscalfit/server/internal/service"
	"go.uber.org/zap"
)

// AuthHandler handles the authentication endpoints.
type AuthHandler struct {
	Auth service.AuthService
	Log  *zap.Logger
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body", nil)
		return
	}
	if v := req.validate(); v != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, "Validation failed", v)
		return
	}

	res, err := h.Auth.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, authResponse(res), "User registered successfully")
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body", nil)
		return
	}
	if v := req.validate(); v != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, "Validation failed", v)
		return
	}

	res, err := h.Auth.Login(r.Context(), req.EmailOrUsername, req.Password, remoteIP(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, authResponse(res), "Login successful")
}

// RefreshToken handles POST /api/auth/refresh-token.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body", nil)
		return
	}
	if v := req.validate(); v != nil {
		writeError(w, http.StatusBadRequest, codeValidationError, "Validation failed", v)
		return
	}

	access, err := h.Auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]string{"token": access}, "Token refreshed successfully")
}

// Me handles GET /api/auth/me. The bearer gate has already verified the
// token and attached its payload.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := userFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Authentication required", nil)
		return
	}

	profile, err := h.Auth.Profile(r.Context(), p.UserID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, profile, "")
}

// writeServiceError maps the service's closed failure set onto HTTP statuses
// and envelope codes. Unclassified errors are logged and reported generically.
func (h *AuthHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrEmailInUse):
		writeError(w, http.StatusConflict, codeConflict, "Email already in use", nil)
	case errors.Is(err, errs.ErrUsernameTaken):
		writeError(w, http.StatusConflict, codeConflict, "Username already taken", nil)
	case errors.Is(err, errs.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Invalid email/username or password", nil)
	case errors.Is(err, errs.ErrInvalidRefreshToken), errors.Is(err, errs.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "Invalid refresh token", nil)
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "User not found", nil)
	case errors.Is(err, errs.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, codeRateLimited, "Too many failed login attempts. Please try again later.", nil)
	case errors.Is(err, errs.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, codeValidationError, "Validation failed",
			[]errs.FieldViolation{{Path: "password", Message: "Password cannot be longer than 72 bytes"}})
	default:
		h.Log.Error("unclassified service error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "An unexpected error occurred. Please try again later.", nil)
	}
}

func authResponse(res *service.AuthResult) map[string]any {
	return map[string]any{
		"user":         res.User,
		"token":        res.AccessToken,
		"refreshToken": res.RefreshToken,
	}
}

func remoteIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
