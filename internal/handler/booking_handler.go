package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"github.com/ufuqacademy/ufuq/internal/service"
)

// BookingHandler exposes the three-step booking wizard over HTTP. The draft id
// returned by Start is the client's session handle; every other endpoint takes
// it as a path parameter.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

type selectionRequest struct {
	Kind      string `json:"kind"` // "fixed" or "custom"
	PackageID string `json:"package_id,omitempty"`
	Hours     int    `json:"hours,omitempty"`
}

// Start handles POST /v1/booking/drafts
func (h *BookingHandler) Start(c *fiber.Ctx) error {
	draft, err := h.bookingService.Start(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

// Get handles GET /v1/booking/drafts/:id
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	draft, err := h.bookingService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(draft)
}

// Abandon handles DELETE /v1/booking/drafts/:id
func (h *BookingHandler) Abandon(c *fiber.Ctx) error {
	if err := h.bookingService.Abandon(c.Context(), c.Params("id")); err != nil {
		return h.draftError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Select handles PUT /v1/booking/drafts/:id/selection
func (h *BookingHandler) Select(c *fiber.Ctx) error {
	var req selectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sel := domain.Selection{
		Kind:      req.Kind,
		PackageID: req.PackageID,
		Hours:     req.Hours,
	}

	draft, err := h.bookingService.Select(c.Context(), c.Params("id"), sel)
	if err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			return h.draftError(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(draft)
}

// UpdateCustomer handles PUT /v1/booking/drafts/:id/customer
func (h *BookingHandler) UpdateCustomer(c *fiber.Ctx) error {
	var customer domain.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	draft, err := h.bookingService.UpdateCustomer(c.Context(), c.Params("id"), customer)
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(draft)
}

// Quote handles GET /v1/booking/drafts/:id/quote
func (h *BookingHandler) Quote(c *fiber.Ctx) error {
	quote, err := h.bookingService.Quote(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrDraftNotFound) {
			return h.draftError(c, err)
		}
		if errors.Is(err, domain.ErrPackageNotFound) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Selected package no longer exists",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(quote)
}

// Next handles POST /v1/booking/drafts/:id/next
func (h *BookingHandler) Next(c *fiber.Ctx) error {
	draft, err := h.bookingService.Next(c.Context(), c.Params("id"))
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(draft)
}

// Back handles POST /v1/booking/drafts/:id/back
func (h *BookingHandler) Back(c *fiber.Ctx) error {
	draft, err := h.bookingService.Back(c.Context(), c.Params("id"))
	if err != nil {
		return h.draftError(c, err)
	}
	return c.JSON(draft)
}

// Submit handles POST /v1/booking/drafts/:id/submit
func (h *BookingHandler) Submit(c *fiber.Ctx) error {
	result, err := h.bookingService.Submit(c.Context(), c.Params("id"))
	if err != nil {
		var valErr *service.ValidationError
		if errors.As(err, &valErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Validation failed",
				"fields": valErr.Fields,
			})
		}
		if errors.Is(err, domain.ErrDraftNotFound) {
			return h.draftError(c, err)
		}
		if errors.Is(err, service.ErrDraftNotReady) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Draft has not reached the confirmation step",
			})
		}
		if errors.Is(err, domain.ErrPackageNotFound) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Selected package no longer exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *BookingHandler) draftError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrDraftNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Draft not found or expired",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
