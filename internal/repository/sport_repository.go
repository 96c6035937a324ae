package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sports-portal/internal/model"
)

type SportRepository interface {
	List(ctx context.Context) ([]model.Sport, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ListCoaches(ctx context.Context) ([]model.Coach, error)
}

type postgresSportRepository struct {
	db *sqlx.DB
}

func NewPostgresSportRepository(db *sqlx.DB) SportRepository {
	return &postgresSportRepository{db: db}
}

func (r *postgresSportRepository) List(ctx context.Context) ([]model.Sport, error) {
	sports := []model.Sport{}
	err := r.db.SelectContext(ctx, &sports, "SELECT id, name, image_key FROM sports ORDER BY name")
	return sports, err
}

func (r *postgresSportRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM sports WHERE id = $1)`, id)
	return exists, err
}

type coachSportRow struct {
	CoachID uuid.UUID `db:"coach_id"`
	SportID uuid.UUID `db:"sport_id"`
}

// ListCoaches returns every coach with the sports they teach.
func (r *postgresSportRepository) ListCoaches(ctx context.Context) ([]model.Coach, error) {
	coaches := []model.Coach{}
	query := `SELECT id, user_id, name, designation, experience_years FROM coaches ORDER BY name`
	if err := r.db.SelectContext(ctx, &coaches, query); err != nil {
		return nil, err
	}

	var links []coachSportRow
	if err := r.db.SelectContext(ctx, &links, `SELECT coach_id, sport_id FROM coach_sports`); err != nil {
		return nil, err
	}

	index := make(map[uuid.UUID]int, len(coaches))
	for i := range coaches {
		index[coaches[i].ID] = i
	}
	for _, l := range links {
		if i, ok := index[l.CoachID]; ok {
			coaches[i].SportIDs = append(coaches[i].SportIDs, l.SportID)
		}
	}

	return coaches, nil
}
