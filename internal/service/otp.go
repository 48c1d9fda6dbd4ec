package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/rahnacm97/Talentra/internal/db"
	"github.com/rahnacm97/Talentra/internal/model"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidOtp      = errors.New("invalid otp")
	ErrOtpExpired      = errors.New("otp expired")
	ErrOtpStillValid   = errors.New("a valid otp already exists")
	ErrNoPendingSignup = errors.New("no pending signup for this email")
)

type OtpStore interface {
	CreateOtp(ctx context.Context, r *model.OtpRecord) (*model.OtpRecord, error)
	FindUnusedOtp(ctx context.Context, email, otp string, purpose model.OtpPurpose) (*model.OtpRecord, error)
	FindLatestOtp(ctx context.Context, email string, purpose model.OtpPurpose, used *bool) (*model.OtpRecord, error)
	ReplaceOtp(ctx context.Context, id int64, r *model.OtpRecord) (*model.OtpRecord, error)
	RefreshOtp(ctx context.Context, id int64, otp, token string, expiresAt time.Time) (*model.OtpRecord, error)
	MarkOtpUsed(ctx context.Context, id int64) error
	DeleteOtp(ctx context.Context, id int64) error
}

// OtpMailer delivers the one-time code. Failure to send fails the operation
// that requested the OTP.
type OtpMailer interface {
	SendOtp(ctx context.Context, email, otp, name string) error
}

type otpUserService interface {
	FindByEmail(ctx context.Context, email string, role model.Role) (*model.AuthUser, error)
	CreateUser(ctx context.Context, role model.Role, email, name, phoneNumber, passwordHash string) (*model.AuthUser, error)
}

type otpArtifactSigner interface {
	GenerateOtpArtifact(email string, role model.Role, purpose model.OtpPurpose) (string, error)
}

// OtpService runs the OTP lifecycle per purpose. A signup record stages the
// full registration payload so no identity exists until the email is
// verified. The 60 second lifetime is deliberately short; resend is the
// mitigation.
type OtpService struct {
	store  OtpStore
	users  otpUserService
	mailer OtpMailer
	signer otpArtifactSigner
	ttl    time.Duration
	log    *zap.SugaredLogger
}

func NewOtpService(store OtpStore, users otpUserService, mailer OtpMailer, signer otpArtifactSigner, ttl time.Duration, log *zap.SugaredLogger) *OtpService {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &OtpService{
		store:  store,
		users:  users,
		mailer: mailer,
		signer: signer,
		ttl:    ttl,
		log:    log,
	}
}

func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// Signup stages a registration and emails the OTP. The identity is not
// created here; that happens on successful verification.
func (s *OtpService) Signup(ctx context.Context, email, password, fullName, phoneNumber string, role model.Role) (model.Role, error) {
	email = NormalizeEmail(email)

	existing, err := s.users.FindByEmail(ctx, email, role)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	record, err := s.prepareRecord(email, fullName, model.OtpPurposeSignup, role)
	if err != nil {
		return "", err
	}
	record.PhoneNumber = phoneNumber
	record.PasswordHash = string(hash)
	record.UserType = role

	if err := s.upsertPending(ctx, email, model.OtpPurposeSignup, record); err != nil {
		return "", err
	}

	if err := s.mailer.SendOtp(ctx, email, record.Otp, fullName); err != nil {
		s.log.Errorw("failed to send signup otp", "email", email, "error", err)
		return "", fmt.Errorf("send otp email: %w", err)
	}

	s.log.Infow("signup otp issued", "email", email, "role", role)
	return role, nil
}

// VerifyOtp consumes a pending OTP. The record is marked used before any
// identity materializes, so a matching code can never be replayed; a failed
// creation afterwards is recovered through resend, which re-stages against
// the consumed record's payload.
func (s *OtpService) VerifyOtp(ctx context.Context, email, otp string, purpose model.OtpPurpose) (model.Role, error) {
	email = NormalizeEmail(email)

	record, err := s.store.FindUnusedOtp(ctx, email, otp, purpose)
	if err != nil {
		if db.IsNoRows(err) {
			return "", ErrInvalidOtp
		}
		return "", fmt.Errorf("find otp: %w", err)
	}
	if record.Expired(time.Now()) {
		return "", ErrOtpExpired
	}

	switch purpose {
	case model.OtpPurposeSignup:
		if record.UserType == "" || record.PasswordHash == "" {
			return "", fmt.Errorf("%w: staged signup payload is incomplete", ErrInvalidInput)
		}
	case model.OtpPurposeForgotPassword:
		// Nothing staged; consuming the record opens the reset gate.
	default:
		return "", fmt.Errorf("%w: unknown otp purpose %q", ErrInvalidInput, purpose)
	}

	if err := s.store.MarkOtpUsed(ctx, record.ID); err != nil {
		return "", fmt.Errorf("mark otp used: %w", err)
	}

	var userType model.Role
	if purpose == model.OtpPurposeSignup {
		if _, err := s.users.CreateUser(ctx, record.UserType, record.Email, record.FullName, record.PhoneNumber, record.PasswordHash); err != nil {
			return "", err
		}
		userType = record.UserType
	}

	s.log.Infow("otp verified", "email", email, "purpose", purpose)
	return userType, nil
}

// ResendOtp regenerates the signup OTP against the previously staged
// payload. An unexpired pending OTP rate-limits the call.
func (s *OtpService) ResendOtp(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	pending, err := s.findLatest(ctx, email, model.OtpPurposeSignup, boolPtr(false))
	if err != nil {
		return err
	}
	if pending != nil && !pending.Expired(time.Now()) {
		return ErrOtpStillValid
	}

	staged := pending
	if staged == nil {
		staged, err = s.findLatest(ctx, email, model.OtpPurposeSignup, nil)
		if err != nil {
			return err
		}
	}
	if staged == nil {
		return ErrNoPendingSignup
	}
	if staged.UserType == "" {
		return fmt.Errorf("%w: staged signup payload is incomplete", ErrInvalidInput)
	}

	otp, err := generateOtp()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	token, err := s.signer.GenerateOtpArtifact(email, staged.UserType, model.OtpPurposeSignup)
	if err != nil {
		return fmt.Errorf("sign otp artifact: %w", err)
	}
	expiresAt := time.Now().Add(s.ttl)

	if pending != nil {
		if _, err := s.store.RefreshOtp(ctx, pending.ID, otp, token, expiresAt); err != nil {
			return fmt.Errorf("refresh otp: %w", err)
		}
	} else {
		record := &model.OtpRecord{
			Email:        email,
			Otp:          otp,
			Purpose:      model.OtpPurposeSignup,
			ExpiresAt:    expiresAt,
			Token:        token,
			FullName:     staged.FullName,
			PhoneNumber:  staged.PhoneNumber,
			PasswordHash: staged.PasswordHash,
			UserType:     staged.UserType,
		}
		if _, err := s.store.CreateOtp(ctx, record); err != nil {
			if db.IsUniqueViolation(err) {
				return ErrOtpStillValid
			}
			return fmt.Errorf("create otp: %w", err)
		}
	}

	name := staged.FullName
	if name == "" {
		name = "User"
	}
	if err := s.mailer.SendOtp(ctx, email, otp, name); err != nil {
		s.log.Errorw("failed to resend otp", "email", email, "error", err)
		return fmt.Errorf("send otp email: %w", err)
	}

	s.log.Infow("signup otp resent", "email", email)
	return nil
}

// ForgotPassword issues a password-reset OTP. No account payload is staged.
func (s *OtpService) ForgotPassword(ctx context.Context, email, fullName string, role model.Role) error {
	email = NormalizeEmail(email)

	record, err := s.prepareRecord(email, fullName, model.OtpPurposeForgotPassword, role)
	if err != nil {
		return err
	}

	if err := s.upsertPending(ctx, email, model.OtpPurposeForgotPassword, record); err != nil {
		return err
	}

	if err := s.mailer.SendOtp(ctx, email, record.Otp, fullName); err != nil {
		s.log.Errorw("failed to send reset otp", "email", email, "error", err)
		return fmt.Errorf("send otp email: %w", err)
	}

	s.log.Infow("password reset otp issued", "email", email, "role", role)
	return nil
}

// VerifyOtpRecord is the read-only gate check used before a password
// mutation: it returns the most recent consumed record for the purpose, or
// (nil, nil) when none exists.
func (s *OtpService) VerifyOtpRecord(ctx context.Context, email string, purpose model.OtpPurpose) (*model.OtpRecord, error) {
	return s.findLatest(ctx, NormalizeEmail(email), purpose, boolPtr(true))
}

// ConsumeOtpRecord removes a verified record once the operation it gated has
// completed, so the gate cannot be passed twice.
func (s *OtpService) ConsumeOtpRecord(ctx context.Context, id int64) error {
	return s.store.DeleteOtp(ctx, id)
}

func (s *OtpService) prepareRecord(email, fullName string, purpose model.OtpPurpose, role model.Role) (*model.OtpRecord, error) {
	otp, err := generateOtp()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}
	token, err := s.signer.GenerateOtpArtifact(email, role, purpose)
	if err != nil {
		return nil, fmt.Errorf("sign otp artifact: %w", err)
	}
	return &model.OtpRecord{
		Email:     email,
		Otp:       otp,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(s.ttl),
		Token:     token,
		FullName:  fullName,
	}, nil
}

// upsertPending enforces the one-pending-record invariant: an unexpired
// unused record wins, an expired one is replaced in place, and a concurrent
// duplicate insert is caught by the store's partial unique index.
func (s *OtpService) upsertPending(ctx context.Context, email string, purpose model.OtpPurpose, record *model.OtpRecord) error {
	pending, err := s.findLatest(ctx, email, purpose, boolPtr(false))
	if err != nil {
		return err
	}
	if pending != nil {
		if !pending.Expired(time.Now()) {
			return ErrOtpStillValid
		}
		if _, err := s.store.ReplaceOtp(ctx, pending.ID, record); err != nil {
			return fmt.Errorf("replace otp: %w", err)
		}
		return nil
	}

	if _, err := s.store.CreateOtp(ctx, record); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrOtpStillValid
		}
		return fmt.Errorf("create otp: %w", err)
	}
	return nil
}

func (s *OtpService) findLatest(ctx context.Context, email string, purpose model.OtpPurpose, used *bool) (*model.OtpRecord, error) {
	record, err := s.store.FindLatestOtp(ctx, email, purpose, used)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find otp: %w", err)
	}
	return record, nil
}

func boolPtr(b bool) *bool {
	return &b
}
