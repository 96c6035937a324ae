package model

import (
	"time"

	"github.com/google/uuid"
)

type Certificate struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PlayerID    uuid.UUID `db:"player_id" json:"player_id"`
	Title       string    `db:"title" json:"title"`
	DocumentKey string    `db:"document_key" json:"document_key"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}
