package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"sports-portal/internal/service"
	"sports-portal/internal/validation"
)

type AuthHandler struct {
	registration service.RegistrationService
	authService  service.AuthService
	validate     *validator.Validate
}

func NewAuthHandler(registration service.RegistrationService, authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		registration: registration,
		authService:  authService,
		validate:     validation.NewValidator(),
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var request service.RegisterInput
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON", "details": err.Error()})
	}

	user, err := h.registration.Register(c.UserContext(), request)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful! Your account is pending approval.",
		"userId":  user.ID,
		"handle":  user.Handle,
		"status":  user.Status,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request LoginRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := validation.Struct(h.validate, &request).Err(); err != nil {
		return respondError(c, err)
	}

	pair, err := h.authService.LoginPlayer(c.UserContext(), request.Email, request.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(pair)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := validation.Struct(h.validate, &req).Err(); err != nil {
		return respondError(c, err)
	}

	newAccessToken, err := h.authService.RefreshToken(c.UserContext(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"access_token": newAccessToken})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := validation.Struct(h.validate, &req).Err(); err != nil {
		return respondError(c, err)
	}

	if err := h.authService.LogoutUser(c.UserContext(), req.RefreshToken); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Successfully logged out"})
}
