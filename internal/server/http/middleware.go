package httpserver

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fiscalfit/server/internal/token"
	"go.uber.org/zap"
)

// AccessVerifier validates access tokens for the bearer gate.
type AccessVerifier interface {
	VerifyAccess(tok string) (token.Payload, error)
}

// RequireAuth is the single authentication enforcement point for protected
// routes. It extracts the bearer token, verifies it and attaches the payload
// to the request context; handlers never re-check.
func RequireAuth(verifier AccessVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, codeUnauthorized,
					"Authentication required. Please provide a valid token.", nil)
				return
			}
			p, err := verifier.VerifyAccess(tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, codeUnauthorized,
					"Invalid or expired token. Please log in again.", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), p)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(h[7:])
	return tok, tok != ""
}

// WithJSONContentType rejects non-JSON request bodies before they reach the
// handlers. Modeled on chi's AllowContentType, but answers in the envelope
// shape instead of plain text.
func WithJSONContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}
		ct := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Type")))
		if i := strings.Index(ct, ";"); i >= 0 {
			ct = strings.TrimSpace(ct[:i])
		}
		if ct != "application/json" {
			writeError(w, http.StatusUnsupportedMediaType, codeBadRequest,
				"Content-Type must be application/json", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithRequestLogging logs one line per request: method, path, status, duration.
func WithRequestLogging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			// metadata only, never payloads
			log.Info("http",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sw.status),
				zap.Duration("dur", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
			)
		})
	}
}

// WithRecover converts panics into the generic internal-error envelope so no
// raw framework error ever reaches a client.
func WithRecover(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic",
						zap.Any("reason", rec),
						zap.ByteString("stack", debug.Stack()),
						zap.String("path", r.URL.Path),
					)
					writeError(w, http.StatusInternalServerError, codeInternalError,
						"An unexpected error occurred. Please try again later.", nil)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
