package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateCertificatesTable, downCreateCertificatesTable)
}

func upCreateCertificatesTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE IF NOT EXISTS certificates (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		player_id UUID NOT NULL REFERENCES players(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		document_key TEXT NOT NULL,
		uploaded_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_certificates_player_id ON certificates(player_id);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreateCertificatesTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS certificates;`)
	return err
}
