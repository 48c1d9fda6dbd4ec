package service

import (
	"context"
	"fmt"

	"github.com/rahnacm97/Talentra/internal/db"
	"github.com/rahnacm97/Talentra/internal/model"
	"go.uber.org/zap"
)

const (
	eventEmployerVerified = "employerVerified"
	eventEmployerRejected = "employerRejected"
	eventUserBlocked      = "userBlocked"
)

type employerAdminStore interface {
	GetEmployerByID(ctx context.Context, id string) (*model.Employer, error)
	VerifyEmployer(ctx context.Context, id string) (*model.Employer, error)
	RejectEmployer(ctx context.Context, id, reason string) (*model.Employer, error)
	SetEmployerBlocked(ctx context.Context, id string, blocked bool) (*model.Employer, error)
	UpdateEmployerProfile(ctx context.Context, id, name, phoneNumber, companyDescription, website string) (*model.Employer, error)
}

// Notifier pushes an event to a user's live connection. Emitting to a
// disconnected user is a silent no-op.
type Notifier interface {
	EmitToUser(userID, event string, payload any)
}

// OutcomeMailer delivers the verification decision by email.
type OutcomeMailer interface {
	SendVerificationOutcome(ctx context.Context, email, name string, approved bool, reason string) error
}

// EmployerService drives the employer trust-state machine:
// pending -> verified | rejected, with rejected re-enterable through profile
// resubmission. The state write always lands first; the push notification
// and the outcome email are best-effort and never roll it back.
type EmployerService struct {
	repo     employerAdminStore
	notifier Notifier
	mailer   OutcomeMailer
	log      *zap.SugaredLogger
}

func NewEmployerService(repo employerAdminStore, notifier Notifier, mailer OutcomeMailer, log *zap.SugaredLogger) *EmployerService {
	return &EmployerService{repo: repo, notifier: notifier, mailer: mailer, log: log}
}

// VerifyEmployer approves the employer. Returns (nil, nil) with no side
// effects when the employer does not exist.
func (s *EmployerService) VerifyEmployer(ctx context.Context, id string) (*model.Employer, error) {
	employer, err := s.repo.VerifyEmployer(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("verify employer: %w", err)
	}

	s.notifier.EmitToUser(employer.ID, eventEmployerVerified, map[string]any{
		"message": "Your employer account has been verified.",
	})
	if err := s.mailer.SendVerificationOutcome(ctx, employer.Email, employer.Name, true, ""); err != nil {
		s.log.Errorw("failed to send approval email", "employerId", id, "error", err)
	}

	s.log.Infow("employer verified", "employerId", id)
	return employer, nil
}

// RejectEmployer records the rejection reason and notifies the employer. A
// non-empty reason is required.
func (s *EmployerService) RejectEmployer(ctx context.Context, id, reason string) (*model.Employer, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
	}

	employer, err := s.repo.RejectEmployer(ctx, id, reason)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reject employer: %w", err)
	}

	s.notifier.EmitToUser(employer.ID, eventEmployerRejected, map[string]any{
		"message": "Your employer verification was rejected.",
		"reason":  reason,
	})
	if err := s.mailer.SendVerificationOutcome(ctx, employer.Email, employer.Name, false, reason); err != nil {
		s.log.Errorw("failed to send rejection email", "employerId", id, "error", err)
	}

	s.log.Infow("employer rejected", "employerId", id, "reason", reason)
	return employer, nil
}

// SetBlocked toggles the blocked flag. Blocking pushes a userBlocked event
// so a live session can be terminated client-side; unblocking is silent.
func (s *EmployerService) SetBlocked(ctx context.Context, id string, blocked bool) (*model.Employer, error) {
	employer, err := s.repo.SetEmployerBlocked(ctx, id, blocked)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("set employer blocked: %w", err)
	}

	if blocked {
		s.notifier.EmitToUser(employer.ID, eventUserBlocked, map[string]any{
			"message": "Your account has been blocked by the admin.",
		})
	}

	s.log.Infow("employer blocked state changed", "employerId", id, "blocked", blocked)
	return employer, nil
}

// UpdateProfile applies a resubmission, which implicitly returns the
// employer to the pending trust state.
func (s *EmployerService) UpdateProfile(ctx context.Context, id string, req model.EmployerProfileRequest) (*model.Employer, error) {
	employer, err := s.repo.UpdateEmployerProfile(ctx, id, req.Name, req.PhoneNumber, req.CompanyDescription, req.Website)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update employer profile: %w", err)
	}

	s.log.Infow("employer profile resubmitted", "employerId", id)
	return employer, nil
}

// GetEmployer returns (nil, nil) when absent.
func (s *EmployerService) GetEmployer(ctx context.Context, id string) (*model.Employer, error) {
	employer, err := s.repo.GetEmployerByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employer: %w", err)
	}
	return employer, nil
}
