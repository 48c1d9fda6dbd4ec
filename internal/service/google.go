package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rahnacm97/Talentra/internal/model"
	"go.uber.org/zap"
)

var ErrRoleMismatch = errors.New("email already registered under a different role")

// ExternalIdentity is the verified profile an OAuth provider resolves an
// authorization code to.
type ExternalIdentity struct {
	Email     string
	Name      string
	SubjectID string
}

type OAuthProvider interface {
	ExchangeCode(ctx context.Context, code string) (*ExternalIdentity, error)
}

type googleUserService interface {
	FindOrCreateUser(ctx context.Context, role model.Role, email, name string, providerID, passwordHash *string) (*model.AuthUser, error)
	FindAnyByEmail(ctx context.Context, email string) (*model.AuthUser, model.Role, error)
}

// GoogleAuthService mirrors local login for federated sign-in: exchange the
// code, resolve or create the identity, issue the token pair.
type GoogleAuthService struct {
	provider OAuthProvider
	users    googleUserService
	tokens   tokenIssuer
	log      *zap.SugaredLogger
}

func NewGoogleAuthService(provider OAuthProvider, users googleUserService, tokens tokenIssuer, log *zap.SugaredLogger) *GoogleAuthService {
	return &GoogleAuthService{provider: provider, users: users, tokens: tokens, log: log}
}

// SignIn accepts a client-supplied role but rejects it when the email is
// already registered under a different one, so a client cannot mint a second
// identity bucket for an existing account's address.
func (s *GoogleAuthService) SignIn(ctx context.Context, authCode string, role model.Role) (*model.AuthResult, error) {
	if role != model.RoleCandidate && role != model.RoleEmployer {
		return nil, fmt.Errorf("%w: google sign-in supports candidate and employer roles", ErrInvalidInput)
	}

	identity, err := s.provider.ExchangeCode(ctx, authCode)
	if err != nil {
		s.log.Errorw("google code exchange failed", "error", err)
		return nil, fmt.Errorf("%w: google code exchange failed", ErrUnauthorized)
	}

	_, existingRole, err := s.users.FindAnyByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	if existingRole != "" && existingRole != role {
		s.log.Warnw("google sign-in role mismatch", "email", identity.Email, "claimed", role, "actual", existingRole)
		return nil, ErrRoleMismatch
	}

	user, err := s.users.FindOrCreateUser(ctx, role, identity.Email, identity.Name, &identity.SubjectID, nil)
	if err != nil {
		return nil, err
	}
	if user.Blocked {
		s.log.Warnw("blocked account attempted google sign-in", "email", identity.Email, "role", role)
		return nil, ErrAccountBlocked
	}

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

	s.log.Infow("google sign-in successful", "email", identity.Email, "role", role)
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
