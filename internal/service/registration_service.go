package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sports-portal/internal/approval"
	"sports-portal/internal/events"
	"sports-portal/internal/identity"
	"sports-portal/internal/metrics"
	"sports-portal/internal/model"
	"sports-portal/internal/repository"
	"sports-portal/internal/validation"
)

const dateLayout = "2006-01-02"

type RegisterInput struct {
	Email            string  `json:"email" validate:"required,email,max=254"`
	Password         string  `json:"password" validate:"required,min=8"`
	ConfirmPassword  string  `json:"confirm_password" validate:"required"`
	FirstName        string  `json:"first_name" validate:"required,max=50"`
	LastName         string  `json:"last_name" validate:"max=50"`
	CNIC             string  `json:"cnic" validate:"required"`
	PhoneNumber      string  `json:"phone_number" validate:"required,max=12"`
	FatherName       string  `json:"father_name" validate:"required,max=100"`
	FatherCNIC       string  `json:"father_cnic" validate:"required"`
	DOB              string  `json:"dob" validate:"required"`
	WhatsAppNumber   string  `json:"whatsapp_number" validate:"required"`
	Province         string  `json:"province" validate:"required,max=100"`
	City             string  `json:"city" validate:"required,max=100"`
	Address          string  `json:"address" validate:"required"`
	SportID          string  `json:"sport_id" validate:"required"`
	Height           float64 `json:"height"`
	Weight           float64 `json:"weight"`
	CollegeRollNo    string  `json:"college_roll_no" validate:"required,max=50"`
	BloodGroup       string  `json:"blood_group" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Disability       string  `json:"disability" validate:"omitempty,oneof=Yes No"`
	DisabilityDetail string  `json:"disability_detail"`
}

type RegistrationService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
}

type registrationService struct {
	users    repository.UserRepository
	sports   repository.SportRepository
	events   events.EventPublisher
	validate *validator.Validate
	now      func() time.Time
}

func NewRegistrationService(users repository.UserRepository, sports repository.SportRepository, publisher events.EventPublisher) RegistrationService {
	return &registrationService{
		users:    users,
		sports:   sports,
		events:   publisher,
		validate: validation.NewValidator(),
		now:      time.Now,
	}
}

// Register creates a pending player account. Every input violation is reported at once
// as validation.Errors; nothing is written unless all of them pass.
func (s *registrationService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	dob, sportID, errs := s.check(in)
	if err := errs.Err(); err != nil {
		metrics.Registrations.WithLabelValues("invalid").Inc()
		return nil, err
	}

	exists, err := s.sports.Exists(ctx, sportID)
	if err != nil {
		return nil, err
	}
	if !exists {
		metrics.Registrations.WithLabelValues("invalid").Inc()
		return nil, validation.Errors{&validation.FormatError{Field: "sport_id", Expected: "one of the listed sports"}}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	user := &model.User{
		Email:        email,
		Handle:       identity.HandleBase(email),
		FirstName:    cleanText(in.FirstName),
		LastName:     cleanText(in.LastName),
		CNIC:         in.CNIC,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		PasswordHash: string(hashedPassword),
		IsPlayer:     true,
		IsCoach:      false,
		Status:       approval.StatusPending,
	}
	player := &model.Player{
		FatherName:       cleanText(in.FatherName),
		FatherCNIC:       in.FatherCNIC,
		DOB:              dob,
		WhatsAppNumber:   strings.ReplaceAll(in.WhatsAppNumber, " ", ""),
		Province:         cleanText(in.Province),
		City:             cleanText(in.City),
		Address:          cleanText(in.Address),
		SportID:          sportID,
		Height:           in.Height,
		Weight:           in.Weight,
		CollegeRollNo:    cleanText(in.CollegeRollNo),
		BloodGroup:       in.BloodGroup,
		Disability:       in.Disability,
		DisabilityDetail: cleanText(in.DisabilityDetail),
	}

	if err := s.users.CreatePlayerAccount(ctx, user, player); err != nil {
		var conflict *repository.UniquenessConflict
		if errors.As(err, &conflict) {
			metrics.Registrations.WithLabelValues("conflict").Inc()
		} else {
			metrics.Registrations.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	metrics.Registrations.WithLabelValues("created").Inc()
	slog.InfoContext(ctx, "player registered", slog.String("user_id", user.ID.String()), slog.String("handle", user.Handle))

	if err := s.events.PublishPlayerRegistered(user, player); err != nil {
		slog.WarnContext(ctx, "failed to publish player.registered", slog.Any("error", err))
	}

	return user, nil
}

func (s *registrationService) check(in RegisterInput) (time.Time, uuid.UUID, validation.Errors) {
	errs := validation.Struct(s.validate, &in)

	if in.Password != "" && in.ConfirmPassword != "" {
		errs.Add(validation.ValidatePasswordConfirmation(in.Password, in.ConfirmPassword))
	}
	if in.CNIC != "" {
		errs.Add(validation.ValidateCNIC("cnic", in.CNIC))
	}
	if in.FatherCNIC != "" {
		errs.Add(validation.ValidateCNIC("father_cnic", in.FatherCNIC))
	}
	if in.WhatsAppNumber != "" {
		errs.Add(validation.ValidateWhatsApp("whatsapp_number", in.WhatsAppNumber))
	}
	errs.Add(validation.ValidateDisability(in.Disability, in.DisabilityDetail))
	errs.Add(validation.ValidateRange("height", in.Height, model.MinHeightFt, model.MaxHeightFt))
	errs.Add(validation.ValidateRange("weight", in.Weight, model.MinWeightKg, model.MaxWeightKg))

	var dob time.Time
	if in.DOB != "" {
		var err error
		dob, err = time.Parse(dateLayout, in.DOB)
		if err != nil || !dob.Before(s.now()) {
			errs.Add(&validation.FormatError{Field: "dob", Expected: "YYYY-MM-DD in the past"})
		}
	}

	var sportID uuid.UUID
	if in.SportID != "" {
		var err error
		sportID, err = uuid.Parse(in.SportID)
		if err != nil {
			errs.Add(&validation.FormatError{Field: "sport_id", Expected: "a sport id"})
		}
	}

	return dob, sportID, errs
}
