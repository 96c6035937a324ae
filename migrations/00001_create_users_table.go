package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateUsersTable, downCreateUsersTable)
}

func upCreateUsersTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE users (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  email TEXT NOT NULL,
	  handle TEXT UNIQUE NOT NULL,
	  first_name TEXT NOT NULL DEFAULT '',
	  last_name TEXT NOT NULL DEFAULT '',
	  cnic VARCHAR(15) NOT NULL DEFAULT '',
	  phone_number VARCHAR(15) NOT NULL DEFAULT '',
	  password_hash TEXT NOT NULL,
	  is_player BOOLEAN NOT NULL DEFAULT FALSE,
	  is_coach BOOLEAN NOT NULL DEFAULT FALSE,
	  is_staff BOOLEAN NOT NULL DEFAULT FALSE,
	  is_active BOOLEAN NOT NULL DEFAULT TRUE,
	  status TEXT NOT NULL DEFAULT 'pending',
	  is_approved BOOLEAN GENERATED ALWAYS AS (status = 'approved') STORED,
	  profile_picture TEXT,
	  last_login TIMESTAMP WITH TIME ZONE,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  CONSTRAINT check_status CHECK (status IN ('pending', 'approved', 'declined'))
	);

	-- Emails compare case-insensitively; FindByEmail filters on lower(email).
	CREATE UNIQUE INDEX users_email_key ON users (lower(email));
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateUsersTable(ctx context.Context, tx *sql.Tx) error {
	query := `DROP TABLE IF EXISTS users;`
	_, err := tx.ExecContext(ctx, query)
	if err != nil {
		return err
	}
	return nil
}
