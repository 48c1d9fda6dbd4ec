package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rahnacm97/Talentra/internal/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNoAccount      = errors.New("no account found with this email")
	ErrOtpNotVerified = errors.New("otp verification required")
)

type resetLookup interface {
	FindResettableByEmail(ctx context.Context, email string) (*model.AuthUser, model.Role, error)
	UpdatePassword(ctx context.Context, role model.Role, userID, passwordHash string) error
}

type otpGate interface {
	ForgotPassword(ctx context.Context, email, fullName string, role model.Role) error
	VerifyOtpRecord(ctx context.Context, email string, purpose model.OtpPurpose) (*model.OtpRecord, error)
	ConsumeOtpRecord(ctx context.Context, id int64) error
}

// PasswordService orchestrates the forgot/reset flow. Reset is a separate
// step from OTP verification so the new password never travels in the
// verification request.
type PasswordService struct {
	users resetLookup
	otp   otpGate
	log   *zap.SugaredLogger
}

func NewPasswordService(users resetLookup, otp otpGate, log *zap.SugaredLogger) *PasswordService {
	return &PasswordService{users: users, otp: otp, log: log}
}

// ForgotPassword resolves the account across candidate and employer stores
// and delegates OTP issuance. Admins cannot self-service a reset.
func (s *PasswordService) ForgotPassword(ctx context.Context, email string) error {
	user, role, err := s.users.FindResettableByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		s.log.Infow("forgot password: no account", "email", email)
		return ErrNoAccount
	}
	return s.otp.ForgotPassword(ctx, email, user.Name, role)
}

// ResetPassword requires a consumed, still-unexpired forgot-password OTP
// record: calling reset without having passed the OTP gate fails.
func (s *PasswordService) ResetPassword(ctx context.Context, email, newPassword string) error {
	record, err := s.otp.VerifyOtpRecord(ctx, email, model.OtpPurposeForgotPassword)
	if err != nil {
		return err
	}
	if record == nil || !record.IsUsed {
		s.log.Warnw("reset password without verified otp", "email", email)
		return ErrOtpNotVerified
	}
	if record.Expired(time.Now()) {
		return ErrOtpExpired
	}

	user, role, err := s.users.FindResettableByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNoAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, role, user.UserID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	// The gate is single-use: a second reset needs a fresh OTP round.
	if err := s.otp.ConsumeOtpRecord(ctx, record.ID); err != nil {
		s.log.Warnw("failed to consume otp record after reset", "email", email, "error", err)
	}

	s.log.Infow("password reset", "email", email, "role", role)
	return nil
}

// ComparePassword is a pure verification delegate with no side effects.
func (s *PasswordService) ComparePassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
