package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sports-portal/internal/model"
)

type CertificateRepository interface {
	Create(ctx context.Context, cert *model.Certificate) (*model.Certificate, error)
	ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]model.Certificate, error)
	FindOwned(ctx context.Context, certificateID, userID uuid.UUID) (*model.Certificate, error)
}

type postgresCertificateRepository struct {
	db *sqlx.DB
}

func NewPostgresCertificateRepository(db *sqlx.DB) CertificateRepository {
	return &postgresCertificateRepository{db: db}
}

func (r *postgresCertificateRepository) Create(ctx context.Context, cert *model.Certificate) (*model.Certificate, error) {
	query := `
		INSERT INTO certificates (player_id, title, document_key)
		VALUES ($1, $2, $3)
		RETURNING id, uploaded_at
	`

	row := r.db.QueryRowxContext(ctx, query, cert.PlayerID, cert.Title, cert.DocumentKey)
	if err := row.Scan(&cert.ID, &cert.UploadedAt); err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("player %s: %w", cert.PlayerID, ErrNotFound)
		}
		return nil, err
	}

	return cert, nil
}

func (r *postgresCertificateRepository) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]model.Certificate, error) {
	certs := []model.Certificate{}
	query := `SELECT id, player_id, title, document_key, uploaded_at FROM certificates WHERE player_id = $1 ORDER BY uploaded_at DESC`
	err := r.db.SelectContext(ctx, &certs, query, playerID)
	return certs, err
}

// FindOwned only returns the certificate when it belongs to the player profile of userID.
func (r *postgresCertificateRepository) FindOwned(ctx context.Context, certificateID, userID uuid.UUID) (*model.Certificate, error) {
	var cert model.Certificate
	query := `
		SELECT c.id, c.player_id, c.title, c.document_key, c.uploaded_at
		FROM certificates c
		JOIN players p ON p.id = c.player_id
		WHERE c.id = $1 AND p.user_id = $2
	`
	err := r.db.GetContext(ctx, &cert, query, certificateID, userID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &cert, nil
}
