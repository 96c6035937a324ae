package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateFeedbackTable, downCreateFeedbackTable)
}

func upCreateFeedbackTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS feedback (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			description TEXT NOT NULL,
			suggestions TEXT,
			submitted_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);
	`)
	return err
}

func downCreateFeedbackTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS feedback;`)
	return err
}
