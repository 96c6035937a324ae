package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateSportsAndCoaches, downCreateSportsAndCoaches)
}

func upCreateSportsAndCoaches(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS sports (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL UNIQUE,
			image_key TEXT
		);

		-- Seed data sports
		INSERT INTO sports (name) VALUES
		('Cricket'),
		('Football'),
		('Hockey'),
		('Badminton'),
		('Table Tennis'),
		('Athletics');
	`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS coaches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			designation TEXT NOT NULL DEFAULT 'coach',
			experience_years INTEGER NOT NULL DEFAULT 0 CHECK (experience_years >= 0),
			CONSTRAINT check_designation CHECK (designation IN ('head_coach', 'coach', 'assistant_coach'))
		);

		CREATE TABLE IF NOT EXISTS coach_sports (
			coach_id UUID NOT NULL REFERENCES coaches(id) ON DELETE CASCADE,
			sport_id UUID NOT NULL REFERENCES sports(id) ON DELETE CASCADE,
			PRIMARY KEY (coach_id, sport_id)
		);
	`)
	return err
}

func downCreateSportsAndCoaches(tx *sql.Tx) error {
	_, err := tx.Exec(`
		DROP TABLE IF EXISTS coach_sports;
		DROP TABLE IF EXISTS coaches;
		DROP TABLE IF EXISTS sports;
	`)
	return err
}
