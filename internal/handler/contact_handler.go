package handler

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"github.com/ufuqacademy/ufuq/internal/service"
)

// ContactHandler takes public contact-form submissions and exposes the stored
// messages to the admin. Like booking submission, the message is persisted
// first and the WhatsApp link is best effort.
type ContactHandler struct {
	messageRepo domain.ContactMessageRepository
	notifier    service.Notifier
}

// NewContactHandler creates a new contact handler
func NewContactHandler(messageRepo domain.ContactMessageRepository, notifier service.Notifier) *ContactHandler {
	return &ContactHandler{
		messageRepo: messageRepo,
		notifier:    notifier,
	}
}

// Submit handles POST /v1/contact
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var msg domain.ContactMessage
	if err := c.BodyParser(&msg); err != nil {
		return badBody(c)
	}
	if msg.Name == "" || msg.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and message are required",
		})
	}

	msg.ID = ""
	msg.Read = false
	msg.CreatedAt = time.Now().UTC()

	ctx := c.UserContext()
	if err := h.messageRepo.Create(ctx, &msg); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	link, err := h.notifier.ContactLink(ctx, &msg)
	if err != nil {
		log.Printf("[Contact] WhatsApp hand-off failed for message %s: %v", msg.ID, err)
		link = ""
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":      msg,
		"whatsapp_url": link,
	})
}

// List handles GET /v1/admin/messages
func (h *ContactHandler) List(c *fiber.Ctx) error {
	messages, err := h.messageRepo.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(messages)
}

// MarkRead handles PATCH /v1/admin/messages/:id/read
func (h *ContactHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.messageRepo.MarkRead(c.UserContext(), c.Params("id")); err != nil {
		return h.messageError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Marked as read"})
}

// Delete handles DELETE /v1/admin/messages/:id
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.messageRepo.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.messageError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ContactHandler) messageError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Message not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
