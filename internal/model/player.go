package model

import (
	"time"

	"github.com/google/uuid"
)

var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

const (
	MinHeightFt = 3.0
	MaxHeightFt = 8.0
	MinWeightKg = 30.0
	MaxWeightKg = 150.0
)

type Player struct {
	ID               uuid.UUID `db:"id" json:"id"`
	UserID           uuid.UUID `db:"user_id" json:"user_id"`
	FatherName       string    `db:"father_name" json:"father_name"`
	FatherCNIC       string    `db:"father_cnic" json:"father_cnic"`
	DOB              time.Time `db:"dob" json:"dob"`
	WhatsAppNumber   string    `db:"whatsapp_number" json:"whatsapp_number"`
	Province         string    `db:"province" json:"province"`
	City             string    `db:"city" json:"city"`
	Address          string    `db:"address" json:"address"`
	SportID          uuid.UUID `db:"sport_id" json:"sport_id"`
	Height           float64   `db:"height" json:"height"`
	Weight           float64   `db:"weight" json:"weight"`
	CollegeRollNo    string    `db:"college_roll_no" json:"college_roll_no"`
	BloodGroup       string    `db:"blood_group" json:"blood_group"`
	Disability       string    `db:"disability" json:"disability"`
	DisabilityDetail string    `db:"disability_detail" json:"disability_detail"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// PlayerSummary is a player joined with the owning user's name, as listed to admins and teammates.
type PlayerSummary struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	SportID   uuid.UUID `db:"sport_id" json:"sport_id"`
	IsPlayer  bool      `db:"is_player" json:"-"`
}
