package model

import (
	"time"

	"github.com/google/uuid"
)

type Sport struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Name     string    `db:"name" json:"name"`
	ImageKey *string   `db:"image_key" json:"image_key,omitempty"`
}

type Coach struct {
	ID              uuid.UUID   `db:"id" json:"id"`
	UserID          uuid.UUID   `db:"user_id" json:"user_id"`
	Name            string      `db:"name" json:"name"`
	Designation     string      `db:"designation" json:"designation"`
	ExperienceYears int         `db:"experience_years" json:"experience_years"`
	SportIDs        []uuid.UUID `db:"-" json:"sport_ids"`
}

type Team struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	SportID   uuid.UUID  `db:"sport_id" json:"sport_id"`
	CoachID   *uuid.UUID `db:"coach_id" json:"coach_id,omitempty"`
	LogoKey   *string    `db:"logo_key" json:"logo_key,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
