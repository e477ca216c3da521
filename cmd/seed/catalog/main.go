package main

import (
	"context"
	"log"
	"time"

	"github.com/ufuqacademy/ufuq/internal/config"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"github.com/ufuqacademy/ufuq/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Seeds the default catalog and settings documents into a fresh database.
// Safe to re-run: existing packages and specialties are left untouched, and
// settings documents are only written when absent.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB.Database)

	if err := repository.NewMongoPackageRepository(db).SeedDefaults(ctx); err != nil {
		log.Fatalf("Failed to seed packages: %v", err)
	}
	if err := repository.NewMongoSpecialtyRepository(db).SeedDefaults(ctx); err != nil {
		log.Fatalf("Failed to seed specialties: %v", err)
	}

	settingsRepo := repository.NewMongoSettingsRepository(db)
	seedSettings(ctx, settingsRepo)

	log.Println("✓ Catalog seeded")
}

// seedSettings persists the default settings documents. Loads fall back to
// defaults in memory, so a fresh database works without this; writing them
// makes the documents visible and editable in the admin surface from day one.
func seedSettings(ctx context.Context, repo domain.SettingsRepository) {
	admin, err := repo.LoadAdminSettings(ctx)
	if err != nil {
		log.Fatalf("Failed to load admin settings: %v", err)
	}
	if err := repo.SaveAdminSettings(ctx, admin); err != nil {
		log.Fatalf("Failed to save admin settings: %v", err)
	}

	site, err := repo.LoadSiteSettings(ctx)
	if err != nil {
		log.Fatalf("Failed to load site settings: %v", err)
	}
	if err := repo.SaveSiteSettings(ctx, site); err != nil {
		log.Fatalf("Failed to save site settings: %v", err)
	}

	contact, err := repo.LoadContactInfo(ctx)
	if err != nil {
		log.Fatalf("Failed to load contact info: %v", err)
	}
	if err := repo.SaveContactInfo(ctx, contact); err != nil {
		log.Fatalf("Failed to save contact info: %v", err)
	}
}
