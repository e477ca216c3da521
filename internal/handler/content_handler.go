package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"github.com/ufuqacademy/ufuq/internal/repository"
)

// ContentHandler covers the informational collections: testimonials, team,
// services, specialties, FAQs, statistics, features and social links. They
// share one CRUD shape; only specialties interact with the catalog cache,
// since the booking form validates against them.
type ContentHandler struct {
	testimonialRepo domain.TestimonialRepository
	teamRepo        domain.TeamRepository
	serviceRepo     domain.ServiceRepository
	specialtyRepo   domain.SpecialtyRepository
	faqRepo         domain.FAQRepository
	statisticRepo   domain.StatisticRepository
	featureRepo     domain.FeatureRepository
	socialLinkRepo  domain.SocialLinkRepository
	cache           *repository.RedisCacheRepository
}

// NewContentHandler creates a new content handler
func NewContentHandler(
	testimonialRepo domain.TestimonialRepository,
	teamRepo domain.TeamRepository,
	serviceRepo domain.ServiceRepository,
	specialtyRepo domain.SpecialtyRepository,
	faqRepo domain.FAQRepository,
	statisticRepo domain.StatisticRepository,
	featureRepo domain.FeatureRepository,
	socialLinkRepo domain.SocialLinkRepository,
	cache *repository.RedisCacheRepository,
) *ContentHandler {
	return &ContentHandler{
		testimonialRepo: testimonialRepo,
		teamRepo:        teamRepo,
		serviceRepo:     serviceRepo,
		specialtyRepo:   specialtyRepo,
		faqRepo:         faqRepo,
		statisticRepo:   statisticRepo,
		featureRepo:     featureRepo,
		socialLinkRepo:  socialLinkRepo,
		cache:           cache,
	}
}

func (h *ContentHandler) respondList(c *fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(data)
}

func (h *ContentHandler) respondWrite(c *fiber.Ctx, data interface{}, err error, status int) error {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if data == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(status).JSON(data)
}

// --- Testimonials ---

func (h *ContentHandler) ListTestimonials(c *fiber.Ctx) error {
	data, err := h.testimonialRepo.List(c.UserContext())
	return h.respondList(c, data, err)
}

func (h *ContentHandler) CreateTestimonial(c *fiber.Ctx) error {
	var t domain.Testimonial
	if err := c.BodyParser(&t); err != nil {
		return badBody(c)
	}
	err := h.testimonialRepo.Create(c.UserContext(), &t)
	return h.respondWrite(c, t, err, fiber.StatusCreated)
}

func (h *ContentHandler) UpdateTestimonial(c *fiber.Ctx) error {
	var t domain.Testimonial
	if err := c.BodyParser(&t); err != nil {
		return badBody(c)
	}
	t.ID = c.Params("id")
	err := h.testimonialRepo.Update(c.UserContext(), &t)
	return h.respondWrite(c, t, err, fiber.StatusOK)
}

func (h *ContentHandler) DeleteTestimonial(c *fiber.Ctx) error {
	err := h.testimonialRepo.Delete(c.UserContext(), c.Params("id"))
	return h.respondWrite(c, nil, err, 0)
}

// --- Team ---

func (h *ContentHandler) ListTeam(c *fiber.Ctx) error {
	data, err := h.teamRepo.List(c.UserContext())
	return h.respondList(c, data, err)
}

func (h *ContentHandler) CreateTeamMember(c *fiber.Ctx) error {
	var m domain.TeamMember
	if err := c.BodyParser(&m); err != nil {
		return badBody(c)
	}
	err := h.teamRepo.Create(c.UserContext(), &m)
	return h.respondWrite(c, m, err, fiber.StatusCreated)
}

func (h *ContentHandler) UpdateTeamMember(c *fiber.Ctx) error {
	var m domain.TeamMember
	if err := c.BodyParser(&m); err != nil {
		return badBody(c)
	}
	m.ID = c.Params("id")
	err := h.teamRepo.Update(c.UserContext(), &m)
	return h.respondWrite(c, m, err, fiber.StatusOK)
}

func (h *ContentHandler) DeleteTeamMember(c *fiber.Ctx) error {
	err := h.teamRepo.Delete(c.UserContext(), c.Params("id"))
	return h.respondWrite(c, nil, err, 0)
}

// --- Services ---

func (h *ContentHandler) ListServices(c *fiber.Ctx) error {
	data, err := h.serviceRepo.List(c.UserContext())
	return h.respondList(c, data, err)
}

func (h *ContentHandler) CreateService(c *fiber.Ctx) error {
	var s domain.Service
	if err := c.BodyParser(&s); err != nil {
		return badBody(c)
	}
	err := h.serviceRepo.Create(c.UserContext(), &s)
	return h.respondWrite(c, s, err, fiber.StatusCreated)
}

func (h *ContentHandler) UpdateService(c *fiber.Ctx) error {
	var s domain.Service
	if err := c.BodyParser(&s); err != nil {
		return badBody(c)
	}
	s.ID = c.Params("id")
	err := h.serviceRepo.Update(c.UserContext(), &s)
	return h.respondWrite(c, s, err, fiber.StatusOK)
}

func (h *ContentHandler) DeleteService(c *fiber.Ctx) error {
	err := h.serviceRepo.Delete(c.UserContext(), c.Params("id"))
	return h.respondWrite(c, nil, err, 0)
}

// --- Specialties ---

func (h *ContentHandler) ListSpecialties(c *fiber.Ctx) error {
	ctx := c.UserContext()

	// A cold cache reads as a nil slice, not an error
	if cached, err := h.cache.GetSpecialties(ctx); err == nil && cached != nil {
		return c.JSON(cached)
	}

	specialties, err := h.specialtyRepo.List(ctx)
	if err != nil {
		return h.respondList(c, nil, err)
	}
	if err := h.cache.SetSpecialties(ctx, specialties); err != nil {
		log.Printf("[Content] Failed to cache specialties: %v", err)
	}
	return c.JSON(specialties)
}

func (h *ContentHandler) CreateSpecialty(c *fiber.Ctx) error {
	var s domain.Specialty
	if err := c.BodyParser(&s); err != nil {
		return badBody(c)
	}
	err := h.specialtyRepo.Create(c.UserContext(), &s)
	h.invalidateCatalog(c)
	return h.respondWrite(c, s, err, fiber.StatusCreated)
}

func (h *ContentHandler) UpdateSpecialty(c *fiber.Ctx) error {
	var s domain.Specialty
	if err := c.BodyParser(&s); err != nil {
		return badBody(c)
	}
	s.ID = c.Params("id")
	err := h.specialtyRepo.Update(c.UserContext(), &s)
	h.invalidateCatalog(c)
	return h.respondWrite(c, s, err, fiber.StatusOK)
}

func (h *ContentHandler) DeleteSpecialty(c *fiber.Ctx) error {
	err := h.specialtyRepo.Delete(c.UserContext(), c.Params("id"))
	h.invalidateCatalog(c)
	return h.respondWrite(c, nil, err, 0)
}

// --- FAQs ---

func (h *ContentHandler) ListFAQs(c *fiber.Ctx) error {
	data, err := h.faqRepo.List(c.UserContext())
	return h.respondList(c, data, err)
}

func (h *ContentHandler) CreateFAQ(c *fiber.Ctx) error {
	var f domain.FAQ
	if err := c.BodyParser(&f); err != nil {
		return badBody(c)
	}
	err := h.faqRepo.Create(c.UserContext(), &f)
	return h.respondWrite(c, f, err, fiber.StatusCreated)
}

func (h *ContentHandler) UpdateFAQ(c *fiber.Ctx) error {
	var f domain.FAQ
	if err := c.BodyParser(&f); err != nil {
		return badBody(c)
	}
	f.ID = c.Params("id")
	err := h.faqRepo.Update(c.UserContext(), &f)
	return h.respondWrite(c, f, err, fiber.StatusOK)
}

func (h *ContentHandler) DeleteFAQ(c *fiber.Ctx) error {
	err := h.faqRepo.Delete(c.UserContext(), c.Params("id"))
	return h.respondWrite(c, nil, err, 0)
}

// --- Statistics ---

func (h *ContentHandler) ListStatistics(c *fiber.Ctx) error {
	data, err := h.statisticRepo.List(c.UserContext())
	return h.respondList(c, data, err)
}

func (h *ContentHandler) CreateStatistic(c *fiber.Ctx) error {
	var s domain.Statistic
	if err := c.BodyParser(&s); err != nil {
		return badBody(c)
	}
	err := h.statisticRepo.Create(c.UserContext(), &s)
	return h.respondWrite(c, s, err, fiber.StatusCreated)
}

func (h *ContentHandler) UpdateStatistic(c *fiber.Ctx) error {
	var s domain.Statistic
	if err := c.BodyParser(&s); err != nil {
		return badBody(c)
	}
	s.ID = c.Params("id")
	err := h.statisticRepo.Update(c.UserContext(), &s)
	return h.respondWrite(c, s, err, fiber.StatusOK)
}

func (h *ContentHandler) DeleteStatistic(c *fiber.Ctx) error {
	err := h.statisticRepo.Delete(c.UserContext(), c.Params("id"))
	return h.respondWrite(c, nil, err, 0)
}

// --- Features ---

func (h *ContentHandler) ListFeatures(c *fiber.Ctx) error {
	data, err := h.featureRepo.List(c.UserContext())
	return h.respondList(c, data, err)
}

func (h *ContentHandler) CreateFeature(c *fiber.Ctx) error {
	var f domain.Feature
	if err := c.BodyParser(&f); err != nil {
		return badBody(c)
	}
	err := h.featureRepo.Create(c.UserContext(), &f)
	return h.respondWrite(c, f, err, fiber.StatusCreated)
}

func (h *ContentHandler) UpdateFeature(c *fiber.Ctx) error {
	var f domain.Feature
	if err := c.BodyParser(&f); err != nil {
		return badBody(c)
	}
	f.ID = c.Params("id")
	err := h.featureRepo.Update(c.UserContext(), &f)
	return h.respondWrite(c, f, err, fiber.StatusOK)
}

func (h *ContentHandler) DeleteFeature(c *fiber.Ctx) error {
	err := h.featureRepo.Delete(c.UserContext(), c.Params("id"))
	return h.respondWrite(c, nil, err, 0)
}

// --- Social links ---

func (h *ContentHandler) ListSocialLinks(c *fiber.Ctx) error {
	data, err := h.socialLinkRepo.List(c.UserContext())
	return h.respondList(c, data, err)
}

func (h *ContentHandler) CreateSocialLink(c *fiber.Ctx) error {
	var l domain.SocialLink
	if err := c.BodyParser(&l); err != nil {
		return badBody(c)
	}
	err := h.socialLinkRepo.Create(c.UserContext(), &l)
	return h.respondWrite(c, l, err, fiber.StatusCreated)
}

func (h *ContentHandler) UpdateSocialLink(c *fiber.Ctx) error {
	var l domain.SocialLink
	if err := c.BodyParser(&l); err != nil {
		return badBody(c)
	}
	l.ID = c.Params("id")
	err := h.socialLinkRepo.Update(c.UserContext(), &l)
	return h.respondWrite(c, l, err, fiber.StatusOK)
}

func (h *ContentHandler) DeleteSocialLink(c *fiber.Ctx) error {
	err := h.socialLinkRepo.Delete(c.UserContext(), c.Params("id"))
	return h.respondWrite(c, nil, err, 0)
}

func (h *ContentHandler) invalidateCatalog(c *fiber.Ctx) {
	if err := h.cache.InvalidateCatalog(c.UserContext()); err != nil {
		log.Printf("[Content] Failed to invalidate catalog cache: %v", err)
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request body",
	})
}
