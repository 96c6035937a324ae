package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sports-portal/internal/model"
)

const insertNotificationQuery = `
		INSERT INTO notifications (title, message, is_general, recipient_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	ListPersonal(ctx context.Context, userID uuid.UUID) ([]model.Notification, error)
	ListGeneral(ctx context.Context, limit int) ([]model.Notification, error)
}

type postgresNotificationRepository struct {
	db *sqlx.DB
}

func NewPostgresNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	row := r.db.QueryRowxContext(ctx, insertNotificationQuery, n.Title, n.Message, n.IsGeneral, n.RecipientID)
	if err := row.Scan(&n.ID, &n.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("recipient: %w", ErrNotFound)
		}
		return nil, err
	}
	return n, nil
}

func (r *postgresNotificationRepository) ListPersonal(ctx context.Context, userID uuid.UUID) ([]model.Notification, error) {
	notifications := []model.Notification{}
	query := `
		SELECT id, title, message, is_general, recipient_id, created_at
		FROM notifications
		WHERE recipient_id = $1 AND is_general = FALSE
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &notifications, query, userID)
	return notifications, err
}

func (r *postgresNotificationRepository) ListGeneral(ctx context.Context, limit int) ([]model.Notification, error) {
	notifications := []model.Notification{}
	query := `
		SELECT id, title, message, is_general, recipient_id, created_at
		FROM notifications
		WHERE is_general = TRUE
		ORDER BY created_at DESC
		LIMIT $1
	`
	err := r.db.SelectContext(ctx, &notifications, query, limit)
	return notifications, err
}
