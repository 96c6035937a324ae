package service

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"sports-portal/internal/approval"
	"sports-portal/internal/identity"
	"sports-portal/internal/model"
	"sports-portal/internal/repository"
	"sports-portal/internal/storage"
	"sports-portal/internal/validation"
)

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

type Profile struct {
	User   *model.User   `json:"user"`
	Player *model.Player `json:"player"`
}

// ProfileEditInput takes CNIC and phone in any punctuation; both are reformatted.
type ProfileEditInput struct {
	FirstName           string  `json:"first_name"`
	FatherName          string  `json:"father_name"`
	CNIC                string  `json:"cnic"`
	DOB                 string  `json:"dob"`
	PhoneNumber         string  `json:"phone_number"`
	Address             string  `json:"address"`
	ProfilePicture      *string `json:"profile_picture"`
	ClearProfilePicture bool    `json:"profile_picture_clear"`
}

type UploadTarget struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
}

type ProfileService interface {
	View(ctx context.Context, userID uuid.UUID) (*Profile, error)
	Edit(ctx context.Context, userID uuid.UUID, in ProfileEditInput) (*Profile, error)
	AvatarUploadURL(ctx context.Context, userID uuid.UUID, filename string) (*UploadTarget, error)
	RegisterDeviceToken(ctx context.Context, userID uuid.UUID, token string) error
}

type profileService struct {
	users   repository.UserRepository
	players repository.PlayerRepository
	devices repository.DeviceTokenRepository
	store   storage.Store
}

func NewProfileService(users repository.UserRepository, players repository.PlayerRepository, devices repository.DeviceTokenRepository, store storage.Store) ProfileService {
	return &profileService{users: users, players: players, devices: devices, store: store}
}

func (s *profileService) load(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	player, err := s.players.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	return &Profile{User: user, Player: player}, nil
}

// View is only open to approved players.
func (s *profileService) View(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	profile, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !approval.CanUseFeatures(profile.User.Subject()) {
		return nil, ErrNotApproved
	}
	return profile, nil
}

func (s *profileService) Edit(ctx context.Context, userID uuid.UUID, in ProfileEditInput) (*Profile, error) {
	profile, err := s.View(ctx, userID)
	if err != nil {
		return nil, err
	}

	var errs validation.Errors
	required := map[string]string{
		"first_name":   in.FirstName,
		"father_name":  in.FatherName,
		"cnic":         in.CNIC,
		"dob":          in.DOB,
		"phone_number": in.PhoneNumber,
		"address":      in.Address,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs.Add(&validation.MissingFieldError{Field: field})
		}
	}

	var cnic, phone string
	if in.CNIC != "" {
		cnic, err = identity.NormalizeCNIC(in.CNIC)
		errs.Add(err)
	}
	if in.PhoneNumber != "" {
		phone, err = identity.NormalizePhone(in.PhoneNumber)
		errs.Add(err)
	}

	var dob time.Time
	if in.DOB != "" {
		if dob, err = time.Parse(dateLayout, in.DOB); err != nil {
			errs.Add(&validation.FormatError{Field: "dob", Expected: "YYYY-MM-DD"})
		}
	}
	if in.ProfilePicture != nil && *in.ProfilePicture != "" && !ownsAvatarKey(userID, *in.ProfilePicture) {
		errs.Add(&validation.FormatError{Field: "profile_picture", Expected: "a key issued by the avatar upload URL"})
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	user, player := profile.User, profile.Player
	user.FirstName = cleanText(in.FirstName)
	user.CNIC = cnic
	user.PhoneNumber = phone
	switch {
	case in.ProfilePicture != nil && *in.ProfilePicture != "":
		user.ProfilePicture = in.ProfilePicture
	case in.ClearProfilePicture:
		user.ProfilePicture = nil
	}
	player.FatherName = cleanText(in.FatherName)
	player.DOB = dob
	player.Address = cleanText(in.Address)

	if err := s.users.UpdateProfile(ctx, user, player); err != nil {
		return nil, err
	}

	return profile, nil
}

func avatarPrefix(userID uuid.UUID) string {
	return "profile_pictures/" + userID.String()
}

// ownsAvatarKey accepts only clean keys directly under the player's avatar prefix.
func ownsAvatarKey(userID uuid.UUID, key string) bool {
	dir, name := path.Split(key)
	return path.Clean(key) == key && dir == avatarPrefix(userID)+"/" && name != ""
}

func (s *profileService) AvatarUploadURL(ctx context.Context, userID uuid.UUID, filename string) (*UploadTarget, error) {
	if !imageExtensions[strings.ToLower(path.Ext(filename))] {
		return nil, validation.Errors{&validation.FormatError{Field: "filename", Expected: "a .jpg, .jpeg, .png or .webp file"}}
	}

	key := storage.NewKey(avatarPrefix(userID), filename)
	url, err := s.store.UploadURL(ctx, key)
	if err != nil {
		return nil, err
	}
	return &UploadTarget{UploadURL: url, Key: key}, nil
}

func (s *profileService) RegisterDeviceToken(ctx context.Context, userID uuid.UUID, token string) error {
	return s.devices.Register(ctx, userID, token)
}
