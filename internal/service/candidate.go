package service

import (
	"context"
	"fmt"

	"github.com/rahnacm97/Talentra/internal/db"
	"github.com/rahnacm97/Talentra/internal/model"
	"go.uber.org/zap"
)

type candidateAdminStore interface {
	SetCandidateBlocked(ctx context.Context, id string, blocked bool) (*model.Candidate, error)
}

// CandidateService covers the admin-side candidate mutations the identity
// core needs: the blocked toggle with its push notification.
type CandidateService struct {
	repo     candidateAdminStore
	notifier Notifier
	log      *zap.SugaredLogger
}

func NewCandidateService(repo candidateAdminStore, notifier Notifier, log *zap.SugaredLogger) *CandidateService {
	return &CandidateService{repo: repo, notifier: notifier, log: log}
}

func (s *CandidateService) SetBlocked(ctx context.Context, id string, blocked bool) (*model.Candidate, error) {
	candidate, err := s.repo.SetCandidateBlocked(ctx, id, blocked)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("set candidate blocked: %w", err)
	}

	if blocked {
		s.notifier.EmitToUser(candidate.ID, eventUserBlocked, map[string]any{
			"message": "Your account has been blocked by the admin.",
		})
	}

	s.log.Infow("candidate blocked state changed", "candidateId", id, "blocked", blocked)
	return candidate, nil
}
