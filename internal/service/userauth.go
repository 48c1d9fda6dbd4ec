package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rahnacm97/Talentra/internal/db"
	"github.com/rahnacm97/Talentra/internal/model"
	"go.uber.org/zap"
)

type CandidateStore interface {
	CreateCandidate(ctx context.Context, c *model.Candidate) (*model.Candidate, error)
	GetCandidateByEmail(ctx context.Context, email string) (*model.Candidate, error)
	UpdateCandidatePassword(ctx context.Context, id, passwordHash string) error
	UpdateCandidateGoogleID(ctx context.Context, id, googleID string) error
}

type EmployerStore interface {
	CreateEmployer(ctx context.Context, e *model.Employer) (*model.Employer, error)
	GetEmployerByEmail(ctx context.Context, email string) (*model.Employer, error)
	UpdateEmployerPassword(ctx context.Context, id, passwordHash string) error
	UpdateEmployerGoogleID(ctx context.Context, id, googleID string) error
}

type AdminStore interface {
	CreateAdmin(ctx context.Context, a *model.Admin) (*model.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
}

// UserAuthService is the only component that knows which store a role maps
// to. Every role dispatch in the identity core goes through its exhaustive
// switches.
type UserAuthService struct {
	candidates CandidateStore
	employers  EmployerStore
	admins     AdminStore
	log        *zap.SugaredLogger
}

func NewUserAuthService(candidates CandidateStore, employers EmployerStore, admins AdminStore, log *zap.SugaredLogger) *UserAuthService {
	return &UserAuthService{
		candidates: candidates,
		employers:  employers,
		admins:     admins,
		log:        log,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindOrCreateUser looks up the identity for (role, email) and creates it if
// absent. A supplied providerID that differs from the stored one is attached
// (idempotent OAuth re-binding). New identities need at least one credential:
// a password hash or a provider id.
func (s *UserAuthService) FindOrCreateUser(ctx context.Context, role model.Role, email, name string, providerID, passwordHash *string) (*model.AuthUser, error) {
	email = NormalizeEmail(email)

	switch role {
	case model.RoleAdmin:
		admin, err := s.admins.GetAdminByEmail(ctx, email)
		if err == nil {
			return &model.AuthUser{UserID: admin.ID, Name: admin.Name, PasswordHash: &admin.PasswordHash}, nil
		}
		if !db.IsNoRows(err) {
			return nil, fmt.Errorf("find admin: %w", err)
		}
		if passwordHash == nil {
			return nil, fmt.Errorf("%w: admin requires a password", ErrInvalidInput)
		}
		created, err := s.admins.CreateAdmin(ctx, &model.Admin{
			ID:           uuid.NewString(),
			Email:        email,
			Name:         name,
			PasswordHash: *passwordHash,
		})
		if err != nil {
			return nil, fmt.Errorf("create admin: %w", err)
		}
		s.log.Infow("created new admin", "email", email)
		return &model.AuthUser{UserID: created.ID, Name: created.Name, PasswordHash: &created.PasswordHash}, nil

	case model.RoleCandidate:
		c, err := s.candidates.GetCandidateByEmail(ctx, email)
		if err == nil {
			if providerID != nil && (c.GoogleID == nil || *c.GoogleID != *providerID) {
				if err := s.candidates.UpdateCandidateGoogleID(ctx, c.ID, *providerID); err != nil {
					return nil, fmt.Errorf("update candidate google id: %w", err)
				}
				s.log.Infow("relinked google id for candidate", "email", email)
			}
			return &model.AuthUser{UserID: c.ID, Name: c.Name, PasswordHash: c.PasswordHash, Blocked: c.Blocked}, nil
		}
		if !db.IsNoRows(err) {
			return nil, fmt.Errorf("find candidate: %w", err)
		}
		if providerID == nil && passwordHash == nil {
			return nil, fmt.Errorf("%w: identity needs a password or a provider id", ErrInvalidInput)
		}
		created, err := s.candidates.CreateCandidate(ctx, &model.Candidate{
			ID:           uuid.NewString(),
			Email:        email,
			Name:         name,
			PasswordHash: passwordHash,
			GoogleID:     providerID,
		})
		if err != nil {
			return nil, fmt.Errorf("create candidate: %w", err)
		}
		s.log.Infow("created new candidate", "email", email)
		return &model.AuthUser{UserID: created.ID, Name: created.Name, PasswordHash: created.PasswordHash}, nil

	case model.RoleEmployer:
		e, err := s.employers.GetEmployerByEmail(ctx, email)
		if err == nil {
			if providerID != nil && (e.GoogleID == nil || *e.GoogleID != *providerID) {
				if err := s.employers.UpdateEmployerGoogleID(ctx, e.ID, *providerID); err != nil {
					return nil, fmt.Errorf("update employer google id: %w", err)
				}
				s.log.Infow("relinked google id for employer", "email", email)
			}
			verified := e.Verified
			return &model.AuthUser{UserID: e.ID, Name: e.Name, PasswordHash: e.PasswordHash, Blocked: e.Blocked, Verified: &verified, RejectionReason: e.RejectionReason}, nil
		}
		if !db.IsNoRows(err) {
			return nil, fmt.Errorf("find employer: %w", err)
		}
		if providerID == nil && passwordHash == nil {
			return nil, fmt.Errorf("%w: identity needs a password or a provider id", ErrInvalidInput)
		}
		created, err := s.employers.CreateEmployer(ctx, &model.Employer{
			ID:           uuid.NewString(),
			Email:        email,
			Name:         name,
			PasswordHash: passwordHash,
			GoogleID:     providerID,
		})
		if err != nil {
			return nil, fmt.Errorf("create employer: %w", err)
		}
		s.log.Infow("created new employer", "email", email)
		verified := created.Verified
		return &model.AuthUser{UserID: created.ID, Name: created.Name, PasswordHash: created.PasswordHash, Verified: &verified}, nil
	}

	return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
}

// CreateUser materializes an identity from a verified signup payload.
func (s *UserAuthService) CreateUser(ctx context.Context, role model.Role, email, name, phoneNumber, passwordHash string) (*model.AuthUser, error) {
	email = NormalizeEmail(email)

	switch role {
	case model.RoleAdmin:
		return s.FindOrCreateUser(ctx, role, email, name, nil, &passwordHash)
	case model.RoleCandidate:
		created, err := s.candidates.CreateCandidate(ctx, &model.Candidate{
			ID:           uuid.NewString(),
			Email:        email,
			Name:         name,
			PasswordHash: &passwordHash,
			PhoneNumber:  phoneNumber,
		})
		if err != nil {
			if db.IsUniqueViolation(err) {
				return nil, fmt.Errorf("%w: email already registered", ErrConflict)
			}
			return nil, fmt.Errorf("create candidate: %w", err)
		}
		return &model.AuthUser{UserID: created.ID, Name: created.Name, PasswordHash: created.PasswordHash}, nil
	case model.RoleEmployer:
		created, err := s.employers.CreateEmployer(ctx, &model.Employer{
			ID:           uuid.NewString(),
			Email:        email,
			Name:         name,
			PasswordHash: &passwordHash,
			PhoneNumber:  phoneNumber,
		})
		if err != nil {
			if db.IsUniqueViolation(err) {
				return nil, fmt.Errorf("%w: email already registered", ErrConflict)
			}
			return nil, fmt.Errorf("create employer: %w", err)
		}
		verified := created.Verified
		return &model.AuthUser{UserID: created.ID, Name: created.Name, PasswordHash: created.PasswordHash, Verified: &verified}, nil
	}

	return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
}

// FindByEmail returns credential material and status flags for (email, role),
// or (nil, nil) when no such identity exists. Callers probing across roles
// treat absence as an expected outcome, not an error.
func (s *UserAuthService) FindByEmail(ctx context.Context, email string, role model.Role) (*model.AuthUser, error) {
	email = NormalizeEmail(email)

	switch role {
	case model.RoleAdmin:
		admin, err := s.admins.GetAdminByEmail(ctx, email)
		if err != nil {
			if db.IsNoRows(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("find admin: %w", err)
		}
		return &model.AuthUser{UserID: admin.ID, Name: admin.Name, PasswordHash: &admin.PasswordHash}, nil
	case model.RoleCandidate:
		c, err := s.candidates.GetCandidateByEmail(ctx, email)
		if err != nil {
			if db.IsNoRows(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("find candidate: %w", err)
		}
		return &model.AuthUser{UserID: c.ID, Name: c.Name, PasswordHash: c.PasswordHash, Blocked: c.Blocked}, nil
	case model.RoleEmployer:
		e, err := s.employers.GetEmployerByEmail(ctx, email)
		if err != nil {
			if db.IsNoRows(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("find employer: %w", err)
		}
		verified := e.Verified
		return &model.AuthUser{UserID: e.ID, Name: e.Name, PasswordHash: e.PasswordHash, Blocked: e.Blocked, Verified: &verified, RejectionReason: e.RejectionReason}, nil
	}

	return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
}

// FindResettableByEmail probes candidate and employer stores for an email.
// Admins are excluded: they cannot self-service a password reset.
func (s *UserAuthService) FindResettableByEmail(ctx context.Context, email string) (*model.AuthUser, model.Role, error) {
	for _, role := range []model.Role{model.RoleCandidate, model.RoleEmployer} {
		user, err := s.FindByEmail(ctx, email, role)
		if err != nil {
			return nil, "", err
		}
		if user != nil {
			return user, role, nil
		}
	}
	return nil, "", nil
}

// FindAnyByEmail probes all stores in the fixed login order and returns the
// first match.
func (s *UserAuthService) FindAnyByEmail(ctx context.Context, email string) (*model.AuthUser, model.Role, error) {
	for _, role := range model.LoginProbeOrder {
		user, err := s.FindByEmail(ctx, email, role)
		if err != nil {
			return nil, "", err
		}
		if user != nil {
			return user, role, nil
		}
	}
	return nil, "", nil
}

// UpdatePassword rotates the stored hash for (role, userID).
func (s *UserAuthService) UpdatePassword(ctx context.Context, role model.Role, userID, passwordHash string) error {
	switch role {
	case model.RoleCandidate:
		return s.candidates.UpdateCandidatePassword(ctx, userID, passwordHash)
	case model.RoleEmployer:
		return s.employers.UpdateEmployerPassword(ctx, userID, passwordHash)
	case model.RoleAdmin:
		return fmt.Errorf("%w: admin passwords are not self-service", ErrInvalidInput)
	}
	return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
}
