package api

import (
	"github.com/gofiber/fiber/v2"

	"sports-portal/internal/service"
)

type PublicHandler struct {
	sports        service.SportService
	feedback      service.FeedbackService
	notifications service.NotificationService
}

func NewPublicHandler(sports service.SportService, feedback service.FeedbackService, notifications service.NotificationService) *PublicHandler {
	return &PublicHandler{sports: sports, feedback: feedback, notifications: notifications}
}

func (h *PublicHandler) ListSports(c *fiber.Ctx) error {
	sports, err := h.sports.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(sports)
}

func (h *PublicHandler) GeneralNotifications(c *fiber.Ctx) error {
	feed, err := h.notifications.General(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(feed)
}

func (h *PublicHandler) SubmitFeedback(c *fiber.Ctx) error {
	var req service.FeedbackInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	fb, err := h.feedback.Submit(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Thank you for your feedback!",
		"id":      fb.ID,
	})
}
