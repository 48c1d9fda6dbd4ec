package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rahnacm97/Talentra/internal/model"
)

type fakeEmployerStore struct {
	employer *model.Employer // nil means not found
	rejected []string        // reasons passed to RejectEmployer
}

func (f *fakeEmployerStore) GetEmployerByID(ctx context.Context, id string) (*model.Employer, error) {
	if f.employer == nil {
		return nil, pgx.ErrNoRows
	}
	return f.employer, nil
}

func (f *fakeEmployerStore) VerifyEmployer(ctx context.Context, id string) (*model.Employer, error) {
	if f.employer == nil {
		return nil, pgx.ErrNoRows
	}
	f.employer.Verified = true
	f.employer.RejectionReason = nil
	return f.employer, nil
}

func (f *fakeEmployerStore) RejectEmployer(ctx context.Context, id, reason string) (*model.Employer, error) {
	if f.employer == nil {
		return nil, pgx.ErrNoRows
	}
	f.rejected = append(f.rejected, reason)
	f.employer.Verified = false
	f.employer.RejectionReason = &reason
	return f.employer, nil
}

func (f *fakeEmployerStore) SetEmployerBlocked(ctx context.Context, id string, blocked bool) (*model.Employer, error) {
	if f.employer == nil {
		return nil, pgx.ErrNoRows
	}
	f.employer.Blocked = blocked
	return f.employer, nil
}

func (f *fakeEmployerStore) UpdateEmployerProfile(ctx context.Context, id, name, phoneNumber, companyDescription, website string) (*model.Employer, error) {
	if f.employer == nil {
		return nil, pgx.ErrNoRows
	}
	f.employer.Name = name
	f.employer.Verified = false
	f.employer.RejectionReason = nil
	return f.employer, nil
}

type fakeNotifier struct {
	events []string // "userID/event"
}

func (f *fakeNotifier) EmitToUser(userID, event string, payload any) {
	f.events = append(f.events, userID+"/"+event)
}

type fakeOutcomeMailer struct {
	approved []bool
	err      error
}

func (f *fakeOutcomeMailer) SendVerificationOutcome(ctx context.Context, email, name string, approved bool, reason string) error {
	if f.err != nil {
		return f.err
	}
	f.approved = append(f.approved, approved)
	return nil
}

func newTestEmployerService(store *fakeEmployerStore, notifier *fakeNotifier, mailer *fakeOutcomeMailer) *EmployerService {
	return NewEmployerService(store, notifier, mailer, zap.NewNop().Sugar())
}

func TestVerifyEmployerUnknownID(t *testing.T) {
	notifier := &fakeNotifier{}
	mailer := &fakeOutcomeMailer{}
	svc := newTestEmployerService(&fakeEmployerStore{}, notifier, mailer)

	employer, err := svc.VerifyEmployer(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, employer)
	// No side effects for an unknown employer.
	require.Empty(t, notifier.events)
	require.Empty(t, mailer.approved)
}

func TestVerifyEmployerNotifies(t *testing.T) {
	store := &fakeEmployerStore{employer: &model.Employer{ID: "emp-1", Email: "e@example.com", Name: "Acme"}}
	notifier := &fakeNotifier{}
	mailer := &fakeOutcomeMailer{}
	svc := newTestEmployerService(store, notifier, mailer)

	employer, err := svc.VerifyEmployer(context.Background(), "emp-1")
	require.NoError(t, err)
	require.True(t, employer.Verified)
	require.Nil(t, employer.RejectionReason)
	require.Equal(t, []string{"emp-1/employerVerified"}, notifier.events)
	require.Equal(t, []bool{true}, mailer.approved)
}

func TestVerifyEmployerEmailFailureDoesNotFail(t *testing.T) {
	store := &fakeEmployerStore{employer: &model.Employer{ID: "emp-1", Email: "e@example.com"}}
	mailer := &fakeOutcomeMailer{err: errors.New("smtp down")}
	svc := newTestEmployerService(store, &fakeNotifier{}, mailer)

	employer, err := svc.VerifyEmployer(context.Background(), "emp-1")
	require.NoError(t, err)
	require.True(t, employer.Verified)
}

func TestRejectEmployerRequiresReason(t *testing.T) {
	store := &fakeEmployerStore{employer: &model.Employer{ID: "emp-1"}}
	svc := newTestEmployerService(store, &fakeNotifier{}, &fakeOutcomeMailer{})

	_, err := svc.RejectEmployer(context.Background(), "emp-1", "")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Empty(t, store.rejected)
}

func TestRejectEmployerRecordsReasonAndNotifies(t *testing.T) {
	store := &fakeEmployerStore{employer: &model.Employer{ID: "emp-1", Email: "e@example.com", Verified: true}}
	notifier := &fakeNotifier{}
	mailer := &fakeOutcomeMailer{}
	svc := newTestEmployerService(store, notifier, mailer)

	employer, err := svc.RejectEmployer(context.Background(), "emp-1", "incomplete documents")
	require.NoError(t, err)
	require.False(t, employer.Verified)
	require.NotNil(t, employer.RejectionReason)
	require.Equal(t, "incomplete documents", *employer.RejectionReason)
	require.Equal(t, []string{"emp-1/employerRejected"}, notifier.events)
	require.Equal(t, []bool{false}, mailer.approved)
}

func TestSetBlockedPushesOnlyWhenBlocking(t *testing.T) {
	store := &fakeEmployerStore{employer: &model.Employer{ID: "emp-1"}}
	notifier := &fakeNotifier{}
	svc := newTestEmployerService(store, notifier, &fakeOutcomeMailer{})

	employer, err := svc.SetBlocked(context.Background(), "emp-1", true)
	require.NoError(t, err)
	require.True(t, employer.Blocked)
	require.Equal(t, []string{"emp-1/userBlocked"}, notifier.events)

	employer, err = svc.SetBlocked(context.Background(), "emp-1", false)
	require.NoError(t, err)
	require.False(t, employer.Blocked)
	// Unblocking is silent.
	require.Len(t, notifier.events, 1)
}

func TestUpdateProfileReturnsToPending(t *testing.T) {
	reason := "incomplete documents"
	store := &fakeEmployerStore{employer: &model.Employer{ID: "emp-1", Name: "Old", RejectionReason: &reason}}
	svc := newTestEmployerService(store, &fakeNotifier{}, &fakeOutcomeMailer{})

	employer, err := svc.UpdateProfile(context.Background(), "emp-1", model.EmployerProfileRequest{Name: "New"})
	require.NoError(t, err)
	require.Equal(t, "New", employer.Name)
	require.False(t, employer.Verified)
	require.Nil(t, employer.RejectionReason)
}
