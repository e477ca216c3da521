package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"github.com/ufuqacademy/ufuq/internal/service"
)

// OrderHandler is the admin surface over submitted orders.
type OrderHandler struct {
	orderRepo domain.OrderRepository
	notifier  service.Notifier
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderRepo domain.OrderRepository, notifier service.Notifier) *OrderHandler {
	return &OrderHandler{
		orderRepo: orderRepo,
		notifier:  notifier,
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

// List handles GET /v1/admin/orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.orderRepo.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(orders)
}

// Get handles GET /v1/admin/orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := h.orderRepo.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.orderError(c, err)
	}
	return c.JSON(order)
}

// UpdateStatus handles PATCH /v1/admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	err := h.orderRepo.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unknown order status: " + req.Status,
			})
		}
		return h.orderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Status updated"})
}

// UpdateNotes handles PATCH /v1/admin/orders/:id/notes
func (h *OrderHandler) UpdateNotes(c *fiber.Ctx) error {
	var req updateNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.orderRepo.SetNotes(c.UserContext(), c.Params("id"), req.Notes); err != nil {
		return h.orderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notes updated"})
}

// RetryNotify handles POST /v1/admin/orders/:id/notify. It rebuilds the
// hand-off link for an order whose submission-time notification failed and
// clears the notify_pending flag on success.
func (h *OrderHandler) RetryNotify(c *fiber.Ctx) error {
	ctx := c.UserContext()

	order, err := h.orderRepo.GetByID(ctx, c.Params("id"))
	if err != nil {
		return h.orderError(c, err)
	}

	link, err := h.notifier.OrderLink(ctx, order)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to build notification link: " + err.Error(),
		})
	}

	if order.NotifyPending {
		if err := h.orderRepo.SetNotifyPending(ctx, order.ID, false); err != nil {
			log.Printf("[Order] Failed to clear notify_pending on %s: %v", order.ID, err)
		}
	}

	return c.JSON(fiber.Map{"whatsapp_url": link})
}

// Delete handles DELETE /v1/admin/orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.orderRepo.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.orderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *OrderHandler) orderError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
