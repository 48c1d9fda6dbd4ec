package service

import (
	"context"
	"errors"

	"github.com/rahnacm97/Talentra/internal/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account blocked by admin")
)

type userResolver interface {
	FindByEmail(ctx context.Context, email string, role model.Role) (*model.AuthUser, error)
}

type tokenIssuer interface {
	GenerateAccessToken(userID string, role model.Role) (string, error)
	GenerateRefreshToken(userID string, role model.Role) (string, error)
	SaveRefreshToken(ctx context.Context, userID, token string) error
	VerifyRefreshToken(ctx context.Context, token string) (*TokenPayload, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}

// AuthService handles local-credential login, refresh and logout.
type AuthService struct {
	users  userResolver
	tokens tokenIssuer
	log    *zap.SugaredLogger
}

func NewAuthService(users userResolver, tokens tokenIssuer, log *zap.SugaredLogger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Login resolves the email across roles in the fixed probe order
// (admin, candidate, employer), stopping at the first match. An unknown
// email and a wrong password are indistinguishable to the caller; a blocked
// account is a distinct, harder failure and is checked only after the
// password matched.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	var user *model.AuthUser
	var role model.Role

	for _, r := range model.LoginProbeOrder {
		found, err := s.users.FindByEmail(ctx, email, r)
		if err != nil {
			return nil, err
		}
		if found != nil {
			user = found
			role = r
			break
		}
	}

	if user == nil {
		s.log.Infow("login: no identity for email", "email", email)
		return nil, ErrInvalidCredentials
	}
	if user.PasswordHash == nil {
		// OAuth-only account, no local password to compare against.
		s.log.Infow("login: no local password", "email", email, "role", role)
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Blocked {
		s.log.Warnw("blocked account attempted login", "email", email, "role", role)
		return nil, ErrAccountBlocked
	}

	return s.issueTokens(ctx, user, role)
}

// Refresh mints a new access token for a valid refresh token. The refresh
// token itself is not rotated; any verification failure forces re-login.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.AuthResult, error) {
	payload, err := s.tokens.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, ErrUnauthorized
	}

	accessToken, err := s.tokens.GenerateAccessToken(payload.UserID, payload.Role)
	if err != nil {
		return nil, err
	}

	return &model.AuthResult{
		AccessToken: accessToken,
		Role:        payload.Role,
		UserID:      payload.UserID,
	}, nil
}

// Logout revokes the refresh token. Deletion is idempotent; a storage error
// is logged but not surfaced.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	if err := s.tokens.DeleteRefreshToken(ctx, refreshToken); err != nil {
		s.log.Warnw("failed to delete refresh token on logout", "error", err)
	}
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.AuthUser, role model.Role) (*model.AuthResult, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.UserID, role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.UserID, role)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.SaveRefreshToken(ctx, user.UserID, refreshToken); err != nil {
		return nil, err
	}

	s.log.Infow("login successful", "userId", user.UserID, "role", role)
	return &model.AuthResult{
		AccessToken:     accessToken,
		RefreshToken:    refreshToken,
		Role:            role,
		Name:            user.Name,
		UserID:          user.UserID,
		Blocked:         user.Blocked,
		Verified:        user.Verified,
		RejectionReason: user.RejectionReason,
	}, nil
}
