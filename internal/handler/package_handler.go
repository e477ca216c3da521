package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"github.com/ufuqacademy/ufuq/internal/repository"
)

// PackageHandler serves the package catalog. Public reads go through the
// Redis cache; admin writes hit Mongo and invalidate it.
type PackageHandler struct {
	packageRepo domain.PackageRepository
	cache       *repository.RedisCacheRepository
}

// NewPackageHandler creates a new package handler
func NewPackageHandler(packageRepo domain.PackageRepository, cache *repository.RedisCacheRepository) *PackageHandler {
	return &PackageHandler{
		packageRepo: packageRepo,
		cache:       cache,
	}
}

// List handles GET /v1/packages
func (h *PackageHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()

	// A cold cache reads as a nil slice, not an error
	if cached, err := h.cache.GetPackages(ctx); err == nil && cached != nil {
		return c.JSON(cached)
	}

	packages, err := h.packageRepo.List(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.cache.SetPackages(ctx, packages); err != nil {
		log.Printf("[Package] Failed to cache packages: %v", err)
	}
	return c.JSON(packages)
}

// Get handles GET /v1/packages/:id
func (h *PackageHandler) Get(c *fiber.Ctx) error {
	pkg, err := h.packageRepo.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Package not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(pkg)
}

// Create handles POST /v1/admin/packages
func (h *PackageHandler) Create(c *fiber.Ctx) error {
	var pkg domain.Package
	if err := c.BodyParser(&pkg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if pkg.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Package name is required",
		})
	}

	if err := h.packageRepo.Create(c.UserContext(), &pkg); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.invalidate(c)
	return c.Status(fiber.StatusCreated).JSON(pkg)
}

// Update handles PUT /v1/admin/packages/:id
func (h *PackageHandler) Update(c *fiber.Ctx) error {
	var pkg domain.Package
	if err := c.BodyParser(&pkg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	pkg.ID = c.Params("id")

	if err := h.packageRepo.Update(c.UserContext(), &pkg); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Package not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.invalidate(c)
	return c.JSON(pkg)
}

// Delete handles DELETE /v1/admin/packages/:id
func (h *PackageHandler) Delete(c *fiber.Ctx) error {
	if err := h.packageRepo.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Package not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	h.invalidate(c)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PackageHandler) invalidate(c *fiber.Ctx) {
	if err := h.cache.InvalidateCatalog(c.UserContext()); err != nil {
		log.Printf("[Package] Failed to invalidate catalog cache: %v", err)
	}
}
