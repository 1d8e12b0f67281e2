package access

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pkruglov/chitalka/internal/platform/apperr"
	"github.com/pkruglov/chitalka/internal/platform/dberr"
)

// Service answers access questions and drives the approval workflow.
type Service struct {
	repo   Repository
	admins map[int64]struct{}
	logger *slog.Logger
}

func NewService(repo Repository, adminIDs []int64, logger *slog.Logger) *Service {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Service{repo: repo, admins: admins, logger: logger}
}

// IsAdmin reports whether the user is a configured administrator.
func (s *Service) IsAdmin(userID int64) bool {
	_, ok := s.admins[userID]
	return ok
}

// IsApproved reports whether the user may use the bot. Admins always may.
func (s *Service) IsApproved(ctx context.Context, userID int64) (bool, error) {
	if s.IsAdmin(userID) {
		return true, nil
	}
	return s.repo.IsApproved(ctx, userID)
}

// RequestAccess files an access request. It reports false when the user is
// already pending, so the bot can answer "wait for approval" instead of
// notifying admins twice.
func (s *Service) RequestAccess(ctx context.Context, user *PendingUser) (bool, error) {
	created, err := s.repo.AddPending(ctx, user)
	if err != nil {
		return false, err
	}
	if created {
		s.logger.Info("access_requested",
			slog.Int64("user_id", user.ID),
			slog.String("username", user.Username),
		)
	}
	return created, nil
}

// Approve promotes a pending request into the approved registry. The user's
// profile is carried over from the request.
func (s *Service) Approve(ctx context.Context, userID int64) (*User, error) {
	pending, err := s.repo.GetPending(ctx, userID)
	if err != nil {
		if errors.Is(err, dberr.ErrNoRows) {
			return nil, apperr.NotFound("запрос на доступ не найден")
		}
		return nil, err
	}

	user := &User{
		ID:        pending.ID,
		Username:  pending.Username,
		FirstName: pending.FirstName,
		LastName:  pending.LastName,
	}
	if err := s.repo.Approve(ctx, user); err != nil {
		return nil, err
	}
	if _, err := s.repo.RemovePending(ctx, userID); err != nil {
		return nil, err
	}

	s.logger.Info("user_approved", slog.Int64("user_id", userID))
	return user, nil
}

// Reject drops a pending request without approving it.
func (s *Service) Reject(ctx context.Context, userID int64) error {
	removed, err := s.repo.RemovePending(ctx, userID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("запрос на доступ не найден")
	}

	s.logger.Info("user_rejected", slog.Int64("user_id", userID))
	return nil
}

// Revoke removes a previously approved user.
func (s *Service) Revoke(ctx context.Context, userID int64) error {
	removed, err := s.repo.Revoke(ctx, userID)
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NotFound("пользователь не найден")
	}

	s.logger.Info("user_revoked", slog.Int64("user_id", userID))
	return nil
}

// ListApproved returns every approved user.
func (s *Service) ListApproved(ctx context.Context) ([]*User, error) {
	return s.repo.ListApproved(ctx)
}

// ListPending returns every request awaiting a decision.
func (s *Service) ListPending(ctx context.Context) ([]*PendingUser, error) {
	return s.repo.ListPending(ctx)
}

// CountApproved returns the size of the approved registry.
func (s *Service) CountApproved(ctx context.Context) (int, error) {
	return s.repo.CountApproved(ctx)
}
