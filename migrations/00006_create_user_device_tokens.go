package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreatePushDevices, downCreatePushDevices)
}

// A device token moves to whichever player signed in on it last.
func upCreatePushDevices(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE IF NOT EXISTS user_device_tokens (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		device_token TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
		CONSTRAINT uq_push_device_token UNIQUE (device_token),
		CONSTRAINT check_device_token_not_blank CHECK (btrim(device_token) <> '')
	);

	CREATE INDEX IF NOT EXISTS idx_push_devices_by_player ON user_device_tokens(user_id);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreatePushDevices(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS user_device_tokens;`)
	return err
}
