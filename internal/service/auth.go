// Package service contains the application's authentication business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgcrypto "github.com/fiscalfit/server/internal/crypto"
	"github.com/fiscalfit/server/internal/errs"
	"github.com/fiscalfit/server/internal/limiter"
	"github.com/fiscalfit/server/internal/model"
	"github.com/fiscalfit/server/internal/repository"
	"github.com/fiscalfit/server/internal/token"
	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

// RegisterInput carries the validated registration fields.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	FullName string
}

// AuthResult is the outcome of a successful register or login.
type AuthResult struct {
	User         model.PublicUser
	AccessToken  string
	RefreshToken string
}

// AuthService defines the authentication operations exposed over HTTP.
type AuthService interface {
	// Register creates a new account and issues an access/refresh pair.
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	// Login authenticates by email or username, rate-limited by (identifier, ip).
	Login(ctx context.Context, emailOrUsername, password, ip string) (*AuthResult, error)
	// Refresh verifies a refresh token and issues a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Profile returns the public profile for a user id.
	Profile(ctx context.Context, userID string) (*model.Profile, error)
}

// AuthServiceImpl implements AuthService over a user repository, a token
// manager and a login limiter.
type AuthServiceImpl struct {
	users  repository.UserRepository
	tokens *token.Manager
	lim    limiter.Limiter
	log    *zap.Logger
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, tokens *token.Manager, lim limiter.Limiter, log *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, tokens: tokens, lim: lim, log: log}
}

// Register creates a new user. Email and username are pre-checked for
// friendly conflict errors; the store's unique constraints remain the
// authority when two registrations race.
func (s *AuthServiceImpl) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, errs.ErrEmailInUse
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("lookup by email: %w", err)
	}
	if _, err := s.users.GetByUsername(ctx, in.Username); err == nil {
		return nil, errs.ErrUsernameTaken
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("lookup by username: %w", err)
	}

	hash, err := pkgcrypto.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:           uid,
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		FullName:     in.FullName,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.authResult(u)
}

// Login authenticates with rate limiting by (identifier, ip). An unknown
// identifier and a wrong password return the same error.
func (s *AuthServiceImpl) Login(ctx context.Context, emailOrUsername, password, ip string) (*AuthResult, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, emailOrUsername, ipHash)
	if err != nil {
		return nil, fmt.Errorf("limiter allow: %w", err)
	}
	if !allowed {
		return nil, errs.ErrRateLimited
	}

	u, err := s.users.GetByEmailOrUsername(ctx, emailOrUsername)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err != nil || !pkgcrypto.VerifyPassword(password, u.PasswordHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, emailOrUsername, ipHash); ferr == nil && blocked {
			return nil, errs.ErrRateLimited
		}
		return nil, errs.ErrInvalidCredentials
	}

	_ = s.lim.Success(ctx, emailOrUsername, ipHash)

	// Recording the login time must not cost the user their session.
	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, u.ID, now); err != nil {
		s.log.Warn("update last login", zap.String("user_id", u.ID.String()), zap.Error(err))
	}

	return s.authResult(u)
}

// Refresh verifies the refresh token and issues a new access token. The
// refresh token itself is not rotated. The user is re-read so tokens for
// deleted accounts stop working at refresh time.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, error) {
	p, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", errs.ErrInvalidRefreshToken
	}
	uid, err := uuid.FromString(p.UserID)
	if err != nil {
		return "", errs.ErrInvalidRefreshToken
	}

	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return "", err
	}

	access, _, err := s.tokens.IssueAccess(payloadFor(u))
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return access, nil
}

// Profile returns the public profile fields for userID.
func (s *AuthServiceImpl) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, errs.ErrNotFound
	}
	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	p := u.AsProfile()
	return &p, nil
}

func (s *AuthServiceImpl) authResult(u *model.User) (*AuthResult, error) {
	p := payloadFor(u)
	access, _, err := s.tokens.IssueAccess(p)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, _, err := s.tokens.IssueRefresh(p)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &AuthResult{User: u.Public(), AccessToken: access, RefreshToken: refresh}, nil
}

func payloadFor(u *model.User) token.Payload {
	return token.Payload{UserID: u.ID.String(), Email: u.Email, Username: u.Username}
}
