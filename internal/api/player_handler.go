package api

import (
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"sports-portal/internal/model"
	"sports-portal/internal/service"
	"sports-portal/internal/storage"
	"sports-portal/internal/validation"
)

// PlayerHandler serves the /players/me routes. Every route runs behind AuthMiddleware.
type PlayerHandler struct {
	profiles     service.ProfileService
	authService  service.AuthService
	dashboard    service.DashboardService
	certificates service.CertificateService
	store        storage.Store
	validate     *validator.Validate
}

func NewPlayerHandler(
	profiles service.ProfileService,
	authService service.AuthService,
	dashboard service.DashboardService,
	certificates service.CertificateService,
	store storage.Store,
) *PlayerHandler {
	return &PlayerHandler{
		profiles:     profiles,
		authService:  authService,
		dashboard:    dashboard,
		certificates: certificates,
		store:        store,
		validate:     validation.NewValidator(),
	}
}

type UploadURLRequest struct {
	Filename string `json:"filename" validate:"required"`
}

type RegisterTokenRequest struct {
	DeviceToken string `json:"device_token" validate:"required"`
}

type ProfileResponse struct {
	User      *model.User   `json:"user"`
	Player    *model.Player `json:"player"`
	AvatarURL string        `json:"avatar_url"`
}

// avatarURL resolves a stored profile picture, falling back to generated initials.
func (h *PlayerHandler) avatarURL(c *fiber.Ctx, user *model.User) string {
	if user.ProfilePicture != nil && *user.ProfilePicture != "" {
		if u, err := h.store.URL(c.UserContext(), *user.ProfilePicture); err == nil {
			return u
		}
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(user.FullName())
}

func (h *PlayerHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	d, err := h.dashboard.Get(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(d)
}

func (h *PlayerHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	profile, err := h.profiles.View(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		User:      profile.User,
		Player:    profile.Player,
		AvatarURL: h.avatarURL(c, profile.User),
	})
}

func (h *PlayerHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req service.ProfileEditInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	profile, err := h.profiles.Edit(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(ProfileResponse{
		User:      profile.User,
		Player:    profile.Player,
		AvatarURL: h.avatarURL(c, profile.User),
	})
}

func (h *PlayerHandler) ChangePassword(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req service.ChangePasswordInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.authService.ChangePassword(c.UserContext(), userID, req); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Your password was successfully updated!"})
}

func (h *PlayerHandler) AvatarUploadURL(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req UploadURLRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validation.Struct(h.validate, &req).Err(); err != nil {
		return respondError(c, err)
	}

	target, err := h.profiles.AvatarUploadURL(c.UserContext(), userID, req.Filename)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(target)
}

func (h *PlayerHandler) RegisterDeviceToken(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req RegisterTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validation.Struct(h.validate, &req).Err(); err != nil {
		return respondError(c, err)
	}

	if err := h.profiles.RegisterDeviceToken(c.UserContext(), userID, req.DeviceToken); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Device token registered successfully"})
}

func (h *PlayerHandler) ListCertificates(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	certs, err := h.certificates.List(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(certs)
}

func (h *PlayerHandler) GetCertificate(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	certID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid certificate ID format"})
	}

	view, err := h.certificates.View(c.UserContext(), userID, certID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(view)
}

func (h *PlayerHandler) DownloadCertificate(c *fiber.Ctx) error {
	userID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	certID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid certificate ID format"})
	}

	rc, filename, err := h.certificates.Download(c.UserContext(), userID, certID)
	if err != nil {
		return respondError(c, err)
	}

	// The response body closes rc once it has been written.
	c.Attachment(filename)
	return c.Status(fiber.StatusOK).SendStream(rc)
}
