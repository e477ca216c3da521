package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/ufuqacademy/ufuq/internal/config"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"github.com/ufuqacademy/ufuq/internal/handler"
	"github.com/ufuqacademy/ufuq/internal/middleware"
	"github.com/ufuqacademy/ufuq/internal/repository"
	"github.com/ufuqacademy/ufuq/internal/service"
	"github.com/ufuqacademy/ufuq/internal/telemetry"
	"go.mongodb.org/mongo-driver/mongo"
)

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client

	// FileRepo overrides the S3-backed media store; nil means build one from
	// Config.S3 (tests inject a fake here).
	FileRepo domain.FileRepository

	// Notifier overrides the WhatsApp link builder; nil means the real one.
	Notifier service.Notifier
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	// Initialize repositories
	packageRepo := repository.NewMongoPackageRepository(deps.MongoDB)
	orderRepo := repository.NewMongoOrderRepository(deps.MongoDB)
	settingsRepo := repository.NewMongoSettingsRepository(deps.MongoDB)
	sessionRepo := repository.NewMongoSessionRepository(deps.MongoDB)
	testimonialRepo := repository.NewMongoTestimonialRepository(deps.MongoDB)
	teamRepo := repository.NewMongoTeamRepository(deps.MongoDB)
	serviceRepo := repository.NewMongoServiceRepository(deps.MongoDB)
	specialtyRepo := repository.NewMongoSpecialtyRepository(deps.MongoDB)
	faqRepo := repository.NewMongoFAQRepository(deps.MongoDB)
	statisticRepo := repository.NewMongoStatisticRepository(deps.MongoDB)
	featureRepo := repository.NewMongoFeatureRepository(deps.MongoDB)
	socialLinkRepo := repository.NewMongoSocialLinkRepository(deps.MongoDB)
	messageRepo := repository.NewMongoContactMessageRepository(deps.MongoDB)
	cacheRepo := repository.NewRedisCacheRepository(deps.RedisClient)

	fileRepo := deps.FileRepo
	if fileRepo == nil {
		s3Repo, err := repository.NewMediaS3Repository(context.Background(), deps.Config.S3)
		if err != nil {
			log.Printf("Warning: Failed to initialize S3 repository: %v", err)
		} else {
			fileRepo = s3Repo
		}
	}

	// Initialize services
	notifier := deps.Notifier
	if notifier == nil {
		notifier = service.NewWhatsAppNotifier(settingsRepo)
	}

	pricingEngine := service.NewPricingEngine(packageRepo)
	bookingService := service.NewBookingService(
		cacheRepo,
		pricingEngine,
		orderRepo,
		specialtyRepo,
		settingsRepo,
		notifier,
		deps.Config.Booking.DraftTTL,
	)
	tokenService := service.NewTokenService(deps.Config.JWT, sessionRepo)
	authService := service.NewAuthService(settingsRepo, tokenService)
	statsService := service.NewStatsService(orderRepo, packageRepo, messageRepo, teamRepo, testimonialRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, tokenService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	packageHandler := handler.NewPackageHandler(packageRepo, cacheRepo)
	orderHandler := handler.NewOrderHandler(orderRepo, notifier)
	contentHandler := handler.NewContentHandler(
		testimonialRepo, teamRepo, serviceRepo, specialtyRepo,
		faqRepo, statisticRepo, featureRepo, socialLinkRepo, cacheRepo,
	)
	settingsHandler := handler.NewSettingsHandler(settingsRepo)
	contactHandler := handler.NewContactHandler(messageRepo, notifier)
	statsHandler := handler.NewStatsHandler(statsService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Ufuq Academy API",
		BodyLimit:    int(deps.Config.Server.MaxUploadSizeMB * 1024 * 1024),
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(telemetry.FiberMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Correlation-ID",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "ufuq-api",
		})
	})

	// API v1 routes
	v1 := app.Group("/v1")

	// ===========================================
	// PUBLIC API - catalog, content, contact
	// ===========================================
	v1.Get("/packages", packageHandler.List)
	v1.Get("/packages/:id", packageHandler.Get)
	v1.Get("/specialties", contentHandler.ListSpecialties)
	v1.Get("/testimonials", contentHandler.ListTestimonials)
	v1.Get("/team", contentHandler.ListTeam)
	v1.Get("/services", contentHandler.ListServices)
	v1.Get("/faqs", contentHandler.ListFAQs)
	v1.Get("/statistics", contentHandler.ListStatistics)
	v1.Get("/features", contentHandler.ListFeatures)
	v1.Get("/social-links", contentHandler.ListSocialLinks)
	v1.Get("/site-settings", settingsHandler.GetSiteSettings)
	v1.Get("/contact-info", settingsHandler.GetContactInfo)
	v1.Post("/contact", contactHandler.Submit)

	// ===========================================
	// BOOKING API - the three-step wizard
	// ===========================================
	booking := v1.Group("/booking/drafts")
	booking.Post("/", bookingHandler.Start)
	booking.Get("/:id", bookingHandler.Get)
	booking.Delete("/:id", bookingHandler.Abandon)
	booking.Put("/:id/selection", bookingHandler.Select)
	booking.Put("/:id/customer", bookingHandler.UpdateCustomer)
	booking.Get("/:id/quote", bookingHandler.Quote)
	booking.Post("/:id/next", bookingHandler.Next)
	booking.Post("/:id/back", bookingHandler.Back)
	// Idempotent submission: a retried X-Correlation-ID replays the first
	// response instead of creating a second order.
	booking.Post("/:id/submit",
		middleware.Idempotency(deps.RedisClient, deps.Config.Booking.IdempotencyTTL),
		bookingHandler.Submit)

	// ===========================================
	// AUTH API
	// ===========================================
	auth := v1.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/verify", middleware.VerifyAdminToken(deps.Config.JWT.Secret), authHandler.Verify)

	// ===========================================
	// ADMIN API - /v1/admin/* (requires admin token)
	// ===========================================
	admin := v1.Group("/admin")
	admin.Use(middleware.VerifyAdminToken(deps.Config.JWT.Secret))

	admin.Put("/auth/password", authHandler.ChangePassword)
	admin.Get("/stats", statsHandler.Dashboard)

	adminPackages := admin.Group("/packages")
	adminPackages.Post("/", packageHandler.Create)
	adminPackages.Put("/:id", packageHandler.Update)
	adminPackages.Delete("/:id", packageHandler.Delete)

	adminOrders := admin.Group("/orders")
	adminOrders.Get("/", orderHandler.List)
	adminOrders.Get("/:id", orderHandler.Get)
	adminOrders.Patch("/:id/status", orderHandler.UpdateStatus)
	adminOrders.Patch("/:id/notes", orderHandler.UpdateNotes)
	adminOrders.Post("/:id/notify", orderHandler.RetryNotify)
	adminOrders.Delete("/:id", orderHandler.Delete)

	adminTestimonials := admin.Group("/testimonials")
	adminTestimonials.Post("/", contentHandler.CreateTestimonial)
	adminTestimonials.Put("/:id", contentHandler.UpdateTestimonial)
	adminTestimonials.Delete("/:id", contentHandler.DeleteTestimonial)

	adminTeam := admin.Group("/team")
	adminTeam.Post("/", contentHandler.CreateTeamMember)
	adminTeam.Put("/:id", contentHandler.UpdateTeamMember)
	adminTeam.Delete("/:id", contentHandler.DeleteTeamMember)

	adminServices := admin.Group("/services")
	adminServices.Post("/", contentHandler.CreateService)
	adminServices.Put("/:id", contentHandler.UpdateService)
	adminServices.Delete("/:id", contentHandler.DeleteService)

	adminSpecialties := admin.Group("/specialties")
	adminSpecialties.Post("/", contentHandler.CreateSpecialty)
	adminSpecialties.Put("/:id", contentHandler.UpdateSpecialty)
	adminSpecialties.Delete("/:id", contentHandler.DeleteSpecialty)

	adminFAQs := admin.Group("/faqs")
	adminFAQs.Post("/", contentHandler.CreateFAQ)
	adminFAQs.Put("/:id", contentHandler.UpdateFAQ)
	adminFAQs.Delete("/:id", contentHandler.DeleteFAQ)

	adminStatistics := admin.Group("/statistics")
	adminStatistics.Post("/", contentHandler.CreateStatistic)
	adminStatistics.Put("/:id", contentHandler.UpdateStatistic)
	adminStatistics.Delete("/:id", contentHandler.DeleteStatistic)

	adminFeatures := admin.Group("/features")
	adminFeatures.Post("/", contentHandler.CreateFeature)
	adminFeatures.Put("/:id", contentHandler.UpdateFeature)
	adminFeatures.Delete("/:id", contentHandler.DeleteFeature)

	adminSocialLinks := admin.Group("/social-links")
	adminSocialLinks.Post("/", contentHandler.CreateSocialLink)
	adminSocialLinks.Put("/:id", contentHandler.UpdateSocialLink)
	adminSocialLinks.Delete("/:id", contentHandler.DeleteSocialLink)

	adminMessages := admin.Group("/messages")
	adminMessages.Get("/", contactHandler.List)
	adminMessages.Patch("/:id/read", contactHandler.MarkRead)
	adminMessages.Delete("/:id", contactHandler.Delete)

	admin.Put("/site-settings", settingsHandler.UpdateSiteSettings)
	admin.Put("/contact-info", settingsHandler.UpdateContactInfo)
	admin.Get("/settings", settingsHandler.GetAdminSettings)
	admin.Put("/settings", settingsHandler.UpdateAdminSettings)

	if fileRepo != nil {
		uploadHandler := handler.NewUploadHandler(fileRepo, deps.Config.Server.MaxUploadSizeMB)
		admin.Post("/upload", uploadHandler.Upload)
	}

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Printf("Error: %v", err)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
