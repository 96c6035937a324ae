package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"sports-portal/internal/model"
	"sports-portal/internal/repository"
	"sports-portal/internal/validation"
)

type FeedbackInput struct {
	Email       string  `json:"email" validate:"required,email"`
	Rating      int     `json:"rating" validate:"required,min=1,max=5"`
	Description string  `json:"description" validate:"required,max=2000"`
	Suggestions *string `json:"suggestions" validate:"omitempty,max=2000"`
}

type FeedbackService interface {
	Submit(ctx context.Context, in FeedbackInput) (*model.Feedback, error)
}

type feedbackService struct {
	repo     repository.FeedbackRepository
	validate *validator.Validate
}

func NewFeedbackService(repo repository.FeedbackRepository) FeedbackService {
	return &feedbackService{repo: repo, validate: validation.NewValidator()}
}

func (s *feedbackService) Submit(ctx context.Context, in FeedbackInput) (*model.Feedback, error) {
	if err := validation.Struct(s.validate, &in).Err(); err != nil {
		return nil, err
	}

	fb := &model.Feedback{
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Rating:      in.Rating,
		Description: cleanText(in.Description),
	}
	if in.Suggestions != nil {
		if cleaned := cleanText(*in.Suggestions); cleaned != "" {
			fb.Suggestions = &cleaned
		}
	}

	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}
