package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
)

// SettingsHandler serves the three settings documents. Site settings and
// contact info are public reads; admin settings never leave the admin surface
// and the password field never serializes at all.
type SettingsHandler struct {
	settingsRepo domain.SettingsRepository
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsRepo domain.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settingsRepo: settingsRepo}
}

// GetSiteSettings handles GET /v1/site-settings
func (h *SettingsHandler) GetSiteSettings(c *fiber.Ctx) error {
	s, err := h.settingsRepo.LoadSiteSettings(c.UserContext())
	if err != nil {
		return h.settingsError(c, err)
	}
	return c.JSON(s)
}

// UpdateSiteSettings handles PUT /v1/admin/site-settings
func (h *SettingsHandler) UpdateSiteSettings(c *fiber.Ctx) error {
	var s domain.SiteSettings
	if err := c.BodyParser(&s); err != nil {
		return badBody(c)
	}
	if err := h.settingsRepo.SaveSiteSettings(c.UserContext(), &s); err != nil {
		return h.settingsError(c, err)
	}
	return c.JSON(s)
}

// GetContactInfo handles GET /v1/contact-info
func (h *SettingsHandler) GetContactInfo(c *fiber.Ctx) error {
	info, err := h.settingsRepo.LoadContactInfo(c.UserContext())
	if err != nil {
		return h.settingsError(c, err)
	}
	return c.JSON(info)
}

// UpdateContactInfo handles PUT /v1/admin/contact-info
func (h *SettingsHandler) UpdateContactInfo(c *fiber.Ctx) error {
	var info domain.ContactInfo
	if err := c.BodyParser(&info); err != nil {
		return badBody(c)
	}
	if err := h.settingsRepo.SaveContactInfo(c.UserContext(), &info); err != nil {
		return h.settingsError(c, err)
	}
	return c.JSON(info)
}

// GetAdminSettings handles GET /v1/admin/settings
func (h *SettingsHandler) GetAdminSettings(c *fiber.Ctx) error {
	s, err := h.settingsRepo.LoadAdminSettings(c.UserContext())
	if err != nil {
		return h.settingsError(c, err)
	}
	return c.JSON(s)
}

// UpdateAdminSettings handles PUT /v1/admin/settings. The password is managed
// by the dedicated change-password endpoint, so the stored one is preserved
// regardless of the request body.
func (h *SettingsHandler) UpdateAdminSettings(c *fiber.Ctx) error {
	ctx := c.UserContext()

	current, err := h.settingsRepo.LoadAdminSettings(ctx)
	if err != nil {
		return h.settingsError(c, err)
	}

	var s domain.AdminSettings
	if err := c.BodyParser(&s); err != nil {
		return badBody(c)
	}
	if s.HourlyRate <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Hourly rate must be positive",
		})
	}
	s.AdminPassword = current.AdminPassword

	if err := h.settingsRepo.SaveAdminSettings(ctx, &s); err != nil {
		return h.settingsError(c, err)
	}
	return c.JSON(s)
}

func (h *SettingsHandler) settingsError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrCorrupt) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Stored settings are unreadable",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
