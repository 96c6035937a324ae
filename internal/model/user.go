package model

import (
	"time"

	"github.com/google/uuid"

	"sports-portal/internal/approval"
)

type User struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Email          string          `db:"email" json:"email"`
	Handle         string          `db:"handle" json:"handle"`
	FirstName      string          `db:"first_name" json:"first_name"`
	LastName       string          `db:"last_name" json:"last_name"`
	CNIC           string          `db:"cnic" json:"cnic"`
	PhoneNumber    string          `db:"phone_number" json:"phone_number"`
	PasswordHash   string          `db:"password_hash" json:"-"`
	IsPlayer       bool            `db:"is_player" json:"is_player"`
	IsCoach        bool            `db:"is_coach" json:"is_coach"`
	IsStaff        bool            `db:"is_staff" json:"-"`
	IsActive       bool            `db:"is_active" json:"is_active"`
	Status         approval.Status `db:"status" json:"status"`
	IsApproved     bool            `db:"is_approved" json:"is_approved"`
	ProfilePicture *string         `db:"profile_picture" json:"profile_picture,omitempty"`
	LastLogin      *time.Time      `db:"last_login" json:"last_login,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

func (u *User) Subject() approval.Subject {
	return approval.Subject{IsPlayer: u.IsPlayer, IsActive: u.IsActive, Status: u.Status}
}

// Role is the coarse role carried in access tokens.
func (u *User) Role() string {
	switch {
	case u.IsStaff:
		return "admin"
	case u.IsCoach:
		return "coach"
	case u.IsPlayer:
		return "player"
	}
	return "user"
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
