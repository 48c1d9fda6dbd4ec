package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rahnacm97/Talentra/internal/config"
	"github.com/rahnacm97/Talentra/internal/db"
	"github.com/rahnacm97/Talentra/internal/model"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
	ErrMisconfigured = errors.New("auth config invalid")
)

// RefreshTokenStore is the durable side of refresh tokens. Access tokens are
// never persisted.
type RefreshTokenStore interface {
	InsertRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error
}

// TokenPayload is what a verified token resolves to.
type TokenPayload struct {
	UserID string
	Role   model.Role
}

type authClaims struct {
	UserID string     `json:"userId"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

type otpArtifactClaims struct {
	Email   string           `json:"email"`
	Role    model.Role       `json:"role"`
	Purpose model.OtpPurpose `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies access and refresh tokens with distinct
// secrets and TTLs, and persists refresh tokens (by hash) so logout can
// revoke them.
type TokenService struct {
	store         RefreshTokenStore
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	log           *zap.SugaredLogger
}

func NewTokenService(store RefreshTokenStore, cfg config.JWTConfig, log *zap.SugaredLogger) (*TokenService, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET and JWT_REFRESH_SECRET are required", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	refreshTTL, err := time.ParseDuration(cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_REFRESH_TTL", ErrMisconfigured)
	}

	return &TokenService{
		store:         store,
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		log:           log,
	}, nil
}

func (s *TokenService) GenerateAccessToken(userID string, role model.Role) (string, error) {
	return s.sign(userID, role, s.accessSecret, s.accessTTL)
}

func (s *TokenService) GenerateRefreshToken(userID string, role model.Role) (string, error) {
	return s.sign(userID, role, s.refreshSecret, s.refreshTTL)
}

func (s *TokenService) sign(userID string, role model.Role, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := authClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// GenerateOtpArtifact signs the token column stored on an OTP record. It
// embeds the email and role the OTP was issued for.
func (s *TokenService) GenerateOtpArtifact(email string, role model.Role, purpose model.OtpPurpose) (string, error) {
	now := time.Now()
	claims := otpArtifactClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			ID:        hashToken(fmt.Sprintf("%s|%s|%d", email, purpose, now.UnixNano())),
		},
	}
	if purpose == model.OtpPurposeForgotPassword {
		claims.Purpose = purpose
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.accessSecret)
}

// SaveRefreshToken persists the hash of a freshly issued refresh token.
func (s *TokenService) SaveRefreshToken(ctx context.Context, userID, token string) error {
	expiresAt := time.Now().Add(s.refreshTTL)
	if err := s.store.InsertRefreshToken(ctx, userID, hashToken(token), expiresAt); err != nil {
		s.log.Errorw("failed to save refresh token", "userId", userID, "error", err)
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// VerifyRefreshToken fails closed: a token must carry a valid unexpired
// signature AND still exist in the store. A revoked token with a valid
// signature is rejected. Returns (nil, nil) when the token is simply not
// acceptable; an error only signals an infrastructure failure.
func (s *TokenService) VerifyRefreshToken(ctx context.Context, token string) (*TokenPayload, error) {
	if token == "" {
		return nil, nil
	}

	claims := &authClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return s.refreshSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, nil
	}
	if claims.UserID == "" || claims.Role == "" {
		return nil, nil
	}

	stored, err := s.store.GetRefreshTokenByHash(ctx, hashToken(token))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, nil
	}

	return &TokenPayload{UserID: claims.UserID, Role: claims.Role}, nil
}

// DeleteRefreshToken revokes a refresh token. Deleting an absent token is
// not an error.
func (s *TokenService) DeleteRefreshToken(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.DeleteRefreshTokenByHash(ctx, hashToken(token))
}

// VerifyAccessToken checks signature and expiry only; access tokens are
// stateless.
func (s *TokenService) VerifyAccessToken(token string) (*TokenPayload, error) {
	claims := &authClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return s.accessSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthorized
	}
	if claims.UserID == "" || claims.Role == "" {
		return nil, ErrUnauthorized
	}
	return &TokenPayload{UserID: claims.UserID, Role: claims.Role}, nil
}

func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
