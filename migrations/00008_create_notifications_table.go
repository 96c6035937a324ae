package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateNotificationsTable, downCreateNotificationsTable)
}

func upCreateNotificationsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			is_general BOOLEAN NOT NULL DEFAULT FALSE,
			recipient_id UUID REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_notifications_recipient_id ON notifications(recipient_id);
	`)
	return err
}

func downCreateNotificationsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS notifications;`)
	return err
}
