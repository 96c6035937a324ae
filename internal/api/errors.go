package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sports-portal/internal/approval"
	"sports-portal/internal/repository"
	"sports-portal/internal/service"
	"sports-portal/internal/storage"
	"sports-portal/internal/validation"
)

var notFoundErrors = []error{
	service.ErrUserNotFound,
	service.ErrPlayerNotFound,
	service.ErrCertificateNotFound,
	service.ErrSportNotFound,
	repository.ErrNotFound,
}

// respondError writes the JSON error body for err. Unknown errors are logged and
// reported as 500 without detail.
func respondError(c *fiber.Ctx, err error) error {
	var invalid validation.Errors
	if errors.As(err, &invalid) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "fields": invalid.ByField()})
	}

	var conflict *repository.UniquenessConflict
	if errors.As(err, &conflict) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":  conflict.Error(),
			"fields": fiber.Map{conflict.Field: []string{conflict.Error()}},
		})
	}

	var denied *approval.DeniedError
	if errors.As(err, &denied) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": denied.Error(), "status": denied.Outcome.String()})
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrTokenInvalid):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotApproved):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNoPlayersSelected), errors.Is(err, approval.ErrUnknownStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, storage.ErrUnsupported):
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": "Direct uploads are not available with this storage"})
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
	}

	slog.ErrorContext(c.UserContext(), "request failed",
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Any("error", err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}
