package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"sports-portal/internal/events"
	"sports-portal/internal/model"
	"sports-portal/internal/repository"
	"sports-portal/internal/validation"
)

const generalFeedSize = 20

type NotificationInput struct {
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	IsGeneral   bool       `json:"is_general"`
	RecipientID *uuid.UUID `json:"recipient_id"`
}

type NotificationService interface {
	Create(ctx context.Context, in NotificationInput) (*model.Notification, error)
	General(ctx context.Context) ([]model.Notification, error)
}

type notificationService struct {
	repo   repository.NotificationRepository
	events events.EventPublisher
}

func NewNotificationService(repo repository.NotificationRepository, publisher events.EventPublisher) NotificationService {
	return &notificationService{repo: repo, events: publisher}
}

// Create stores a notification that is either general or addressed to one user, never both.
func (s *notificationService) Create(ctx context.Context, in NotificationInput) (*model.Notification, error) {
	n := &model.Notification{
		Title:     cleanText(in.Title),
		Message:   cleanText(in.Message),
		IsGeneral: in.IsGeneral,
	}

	var errs validation.Errors
	if n.Title == "" {
		errs.Add(&validation.MissingFieldError{Field: "title"})
	}
	if n.Message == "" {
		errs.Add(&validation.MissingFieldError{Field: "message"})
	}
	switch {
	case in.IsGeneral && in.RecipientID != nil:
		errs.Add(&validation.FormatError{Field: "recipient_id", Expected: "empty for a general notification"})
	case !in.IsGeneral && in.RecipientID == nil:
		errs.Add(&validation.MissingFieldError{Field: "recipient_id", Reason: "for a personal notification"})
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	n.RecipientID = in.RecipientID

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.events.PublishNotificationCreated(created); err != nil {
		slog.WarnContext(ctx, "failed to publish notification.created", slog.Any("error", err))
	}

	return created, nil
}

func (s *notificationService) General(ctx context.Context) ([]model.Notification, error) {
	return s.repo.ListGeneral(ctx, generalFeedSize)
}
