package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sports-portal/internal/model"
)

type PlayerRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Player, error)
	ListSummaries(ctx context.Context) ([]model.PlayerSummary, error)
	LatestTeam(ctx context.Context, playerID uuid.UUID) (*model.Team, error)
	Teammates(ctx context.Context, teamID, excludePlayerID uuid.UUID) ([]model.PlayerSummary, error)
}

type postgresPlayerRepository struct {
	db *sqlx.DB
}

func NewPostgresPlayerRepository(db *sqlx.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Player, error) {
	var player model.Player
	query := `SELECT * FROM players WHERE user_id = $1`
	err := r.db.GetContext(ctx, &player, query, userID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &player, nil
}

func (r *postgresPlayerRepository) ListSummaries(ctx context.Context) ([]model.PlayerSummary, error) {
	players := []model.PlayerSummary{}
	query := `
		SELECT p.id, p.user_id, u.first_name, u.last_name, p.sport_id, u.is_player
		FROM players p
		JOIN users u ON u.id = p.user_id
		WHERE u.is_active
		ORDER BY u.first_name, u.last_name
	`
	err := r.db.SelectContext(ctx, &players, query)
	return players, err
}

// LatestTeam returns nil, nil when the player is not on any team.
func (r *postgresPlayerRepository) LatestTeam(ctx context.Context, playerID uuid.UUID) (*model.Team, error) {
	var team model.Team
	query := `
		SELECT t.id, t.name, t.sport_id, t.coach_id, t.logo_key, t.created_at
		FROM teams t
		JOIN team_players tp ON tp.team_id = t.id
		WHERE tp.player_id = $1
		ORDER BY t.created_at DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &team, query, playerID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &team, nil
}

func (r *postgresPlayerRepository) Teammates(ctx context.Context, teamID, excludePlayerID uuid.UUID) ([]model.PlayerSummary, error) {
	mates := []model.PlayerSummary{}
	query := `
		SELECT p.id, p.user_id, u.first_name, u.last_name, p.sport_id, u.is_player
		FROM team_players tp
		JOIN players p ON p.id = tp.player_id
		JOIN users u ON u.id = p.user_id
		WHERE tp.team_id = $1 AND tp.player_id <> $2
		ORDER BY u.first_name, u.last_name
	`
	err := r.db.SelectContext(ctx, &mates, query, teamID, excludePlayerID)
	return mates, err
}
