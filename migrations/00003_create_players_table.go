package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreatePlayersTable, downCreatePlayersTable)
}

func upCreatePlayersTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE players (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		father_name TEXT NOT NULL,
		father_cnic VARCHAR(15) NOT NULL,
		dob DATE NOT NULL,
		whatsapp_number VARCHAR(16) NOT NULL,
		province TEXT NOT NULL,
		city TEXT NOT NULL,
		address TEXT NOT NULL,
		sport_id UUID NOT NULL REFERENCES sports(id) ON DELETE RESTRICT,
		height NUMERIC(4, 2) NOT NULL CHECK (height BETWEEN 3.00 AND 8.00),
		weight NUMERIC(5, 1) NOT NULL CHECK (weight BETWEEN 30.0 AND 150.0),
		college_roll_no TEXT NOT NULL,
		blood_group VARCHAR(3) NOT NULL,
		disability VARCHAR(3) NOT NULL DEFAULT '',
		disability_detail TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
		CONSTRAINT check_blood_group CHECK (blood_group IN ('A+', 'A-', 'B+', 'B-', 'AB+', 'AB-', 'O+', 'O-')),
		CONSTRAINT check_disability CHECK (disability IN ('', 'Yes', 'No')),
		CONSTRAINT check_disability_detail CHECK (disability <> 'Yes' OR disability_detail <> '')
	);

	CREATE INDEX IF NOT EXISTS idx_players_sport_id ON players(sport_id);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreatePlayersTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS players;`)
	return err
}
