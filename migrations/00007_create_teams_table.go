package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateTeamsTable, downCreateTeamsTable)
}

func upCreateTeamsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS teams (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			sport_id UUID NOT NULL REFERENCES sports(id) ON DELETE CASCADE,
			coach_id UUID REFERENCES coaches(id) ON DELETE SET NULL,
			logo_key TEXT,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS team_players (
			team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			player_id UUID NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			PRIMARY KEY (team_id, player_id)
		);
	`)
	return err
}

func downCreateTeamsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		DROP TABLE IF EXISTS team_players;
		DROP TABLE IF EXISTS teams;
	`)
	return err
}
