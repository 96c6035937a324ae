package model

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Message     string     `db:"message" json:"message"`
	IsGeneral   bool       `db:"is_general" json:"is_general"`
	RecipientID *uuid.UUID `db:"recipient_id" json:"recipient_id,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
