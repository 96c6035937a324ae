package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"sports-portal/internal/model"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *model.Feedback) error
}

type postgresFeedbackRepository struct {
	db *sqlx.DB
}

func NewPostgresFeedbackRepository(db *sqlx.DB) FeedbackRepository {
	return &postgresFeedbackRepository{db: db}
}

func (r *postgresFeedbackRepository) Create(ctx context.Context, feedback *model.Feedback) error {
	query := `
		INSERT INTO feedback (email, rating, description, suggestions)
		VALUES ($1, $2, $3, $4)
		RETURNING id, submitted_at
	`
	return r.db.QueryRowxContext(ctx, query, feedback.Email, feedback.Rating, feedback.Description, feedback.Suggestions).
		Scan(&feedback.ID, &feedback.SubmittedAt)
}
