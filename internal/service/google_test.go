package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rahnacm97/Talentra/internal/model"
)

type fakeOAuthProvider struct {
	identity *ExternalIdentity
	err      error
}

func (f *fakeOAuthProvider) ExchangeCode(ctx context.Context, code string) (*ExternalIdentity, error) {
	return f.identity, f.err
}

type fakeGoogleUsers struct {
	existingRole model.Role // "" means the email is unknown
	resolved     *model.AuthUser
}

func (f *fakeGoogleUsers) FindAnyByEmail(ctx context.Context, email string) (*model.AuthUser, model.Role, error) {
	if f.existingRole == "" {
		return nil, "", nil
	}
	return f.resolved, f.existingRole, nil
}

func (f *fakeGoogleUsers) FindOrCreateUser(ctx context.Context, role model.Role, email, name string, providerID, passwordHash *string) (*model.AuthUser, error) {
	if f.resolved != nil {
		return f.resolved, nil
	}
	return &model.AuthUser{UserID: "new-1", Name: name}, nil
}

func newTestGoogleService(provider OAuthProvider, users googleUserService) (*GoogleAuthService, *fakeTokenIssuer) {
	issuer := &fakeTokenIssuer{}
	return NewGoogleAuthService(provider, users, issuer, zap.NewNop().Sugar()), issuer
}

func TestGoogleSignInRejectsAdminRole(t *testing.T) {
	svc, _ := newTestGoogleService(&fakeOAuthProvider{}, &fakeGoogleUsers{})

	_, err := svc.SignIn(context.Background(), "code", model.RoleAdmin)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGoogleSignInExchangeFailure(t *testing.T) {
	svc, _ := newTestGoogleService(&fakeOAuthProvider{err: errors.New("bad code")}, &fakeGoogleUsers{})

	_, err := svc.SignIn(context.Background(), "code", model.RoleCandidate)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestGoogleSignInRoleMismatch(t *testing.T) {
	provider := &fakeOAuthProvider{identity: &ExternalIdentity{Email: "a@example.com", Name: "A", SubjectID: "goog-1"}}
	users := &fakeGoogleUsers{existingRole: model.RoleEmployer, resolved: &model.AuthUser{UserID: "emp-1"}}
	svc, _ := newTestGoogleService(provider, users)

	_, err := svc.SignIn(context.Background(), "code", model.RoleCandidate)
	require.ErrorIs(t, err, ErrRoleMismatch)
}

func TestGoogleSignInBlockedAccount(t *testing.T) {
	provider := &fakeOAuthProvider{identity: &ExternalIdentity{Email: "a@example.com", Name: "A", SubjectID: "goog-1"}}
	users := &fakeGoogleUsers{existingRole: model.RoleCandidate, resolved: &model.AuthUser{UserID: "u1", Blocked: true}}
	svc, _ := newTestGoogleService(provider, users)

	_, err := svc.SignIn(context.Background(), "code", model.RoleCandidate)
	require.ErrorIs(t, err, ErrAccountBlocked)
}

func TestGoogleSignInCreatesIdentityAndIssuesTokens(t *testing.T) {
	provider := &fakeOAuthProvider{identity: &ExternalIdentity{Email: "new@example.com", Name: "New User", SubjectID: "goog-2"}}
	svc, issuer := newTestGoogleService(provider, &fakeGoogleUsers{})

	result, err := svc.SignIn(context.Background(), "code", model.RoleCandidate)
	require.NoError(t, err)
	require.Equal(t, "access:new-1", result.AccessToken)
	require.Equal(t, "refresh:new-1", result.RefreshToken)
	require.Equal(t, model.RoleCandidate, result.Role)
	require.Equal(t, "New User", result.Name)
	require.Equal(t, []string{"refresh:new-1"}, issuer.saved)
}

func TestGoogleSignInExistingSameRole(t *testing.T) {
	provider := &fakeOAuthProvider{identity: &ExternalIdentity{Email: "a@example.com", Name: "A", SubjectID: "goog-1"}}
	users := &fakeGoogleUsers{existingRole: model.RoleEmployer, resolved: &model.AuthUser{UserID: "emp-1", Name: "Acme"}}
	svc, _ := newTestGoogleService(provider, users)

	result, err := svc.SignIn(context.Background(), "code", model.RoleEmployer)
	require.NoError(t, err)
	require.Equal(t, "emp-1", result.UserID)
	require.Equal(t, model.RoleEmployer, result.Role)
}
