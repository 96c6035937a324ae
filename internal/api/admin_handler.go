package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sports-portal/internal/approval"
	"sports-portal/internal/service"
	"sports-portal/internal/validation"
)

// AdminHandler serves the staff actions. Its routes are guarded by InternalAuthMiddleware.
type AdminHandler struct {
	approvals     service.ApprovalService
	certificates  service.CertificateService
	sports        service.SportService
	notifications service.NotificationService
	validate      *validator.Validate
}

func NewAdminHandler(
	approvals service.ApprovalService,
	certificates service.CertificateService,
	sports service.SportService,
	notifications service.NotificationService,
) *AdminHandler {
	return &AdminHandler{
		approvals:     approvals,
		certificates:  certificates,
		sports:        sports,
		notifications: notifications,
		validate:      validation.NewValidator(),
	}
}

type StatusRequest struct {
	UserIDs []uuid.UUID `json:"user_ids"`
}

type CreateCertificateRequest struct {
	Title       string `json:"title"`
	DocumentKey string `json:"document_key"`
}

func (h *AdminHandler) setStatus(c *fiber.Ctx, status approval.Status) error {
	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	changes, err := h.approvals.SetStatus(c.UserContext(), req.UserIDs, status)
	if err != nil {
		return respondError(c, err)
	}

	changed := make([]uuid.UUID, 0, len(changes))
	for _, ch := range changes {
		changed = append(changed, ch.UserID)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  status,
		"changed": changed,
		"message": "Selected players have been updated.",
	})
}

func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	return h.setStatus(c, approval.StatusApproved)
}

func (h *AdminHandler) Decline(c *fiber.Ctx) error {
	return h.setStatus(c, approval.StatusDeclined)
}

func (h *AdminHandler) CreateCertificate(c *fiber.Ctx) error {
	playerID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid player ID format"})
	}

	var req CreateCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	cert, err := h.certificates.Create(c.UserContext(), playerID, req.Title, req.DocumentKey)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(cert)
}

func (h *AdminHandler) CertificateUploadURL(c *fiber.Ctx) error {
	var req UploadURLRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validation.Struct(h.validate, &req).Err(); err != nil {
		return respondError(c, err)
	}

	target, err := h.certificates.UploadURL(c.UserContext(), req.Filename)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(target)
}

func (h *AdminHandler) Candidates(c *fiber.Ctx) error {
	sportID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sport ID format"})
	}

	candidates, err := h.sports.Candidates(c.UserContext(), sportID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(candidates)
}

func (h *AdminHandler) CreateNotification(c *fiber.Ctx) error {
	var req service.NotificationInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	n, err := h.notifications.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(n)
}
