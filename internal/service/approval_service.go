package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"sports-portal/internal/approval"
	"sports-portal/internal/events"
	"sports-portal/internal/repository"
)

type ApprovalService interface {
	SetStatus(ctx context.Context, userIDs []uuid.UUID, status approval.Status) ([]repository.StatusChange, error)
}

type approvalService struct {
	users  repository.UserRepository
	events events.EventPublisher
}

func NewApprovalService(users repository.UserRepository, publisher events.EventPublisher) ApprovalService {
	return &approvalService{users: users, events: publisher}
}

// SetStatus applies one admin action to a selection of accounts. Duplicated ids are
// collapsed and accounts already in status are left alone.
func (s *approvalService) SetStatus(ctx context.Context, userIDs []uuid.UUID, status approval.Status) ([]repository.StatusChange, error) {
	if !status.Valid() {
		return nil, approval.ErrUnknownStatus
	}

	seen := make(map[uuid.UUID]struct{}, len(userIDs))
	ids := make([]uuid.UUID, 0, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, ErrNoPlayersSelected
	}

	changes, err := s.users.SetStatus(ctx, ids, status)
	if err != nil {
		return nil, err
	}

	for _, change := range changes {
		slog.InfoContext(ctx, "player status changed",
			slog.String("user_id", change.UserID.String()),
			slog.String("from", string(change.From)),
			slog.String("to", string(change.To)),
		)
		if err := s.events.PublishStatusChanged(change); err != nil {
			slog.WarnContext(ctx, "failed to publish player.status.changed", slog.Any("error", err))
		}
	}

	return changes, nil
}
