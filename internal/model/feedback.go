package model

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID          uuid.UUID `db:"id"`
	Email       string    `db:"email"`
	Rating      int       `db:"rating"`
	Description string    `db:"description"`
	Suggestions *string   `db:"suggestions"`
	SubmittedAt time.Time `db:"submitted_at"`
}
