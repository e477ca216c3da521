package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/ufuqacademy/ufuq/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoPackageRepository implements domain.PackageRepository
type MongoPackageRepository struct {
	collection *mongo.Collection
}

// NewMongoPackageRepository creates a new package repository
// Note: No index creation to ensure zero-impact deployment on existing collections
func NewMongoPackageRepository(db *mongo.Database) *MongoPackageRepository {
	coll := db.Collection("packages")
	return &MongoPackageRepository{
		collection: coll,
	}
}

func (r *MongoPackageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	doc := bson.M{
		"_id":         pkg.ID,
		"name":        pkg.Name,
		"description": pkg.Description,
		"hours":       pkg.Hours,
		"price":       pkg.Price,
		"features":    pkg.Features,
		"is_popular":  pkg.IsPopular,
		"is_custom":   pkg.IsCustom,
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

func (r *MongoPackageRepository) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	var raw bson.M
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&raw); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return mapBsonToPackage(raw), nil
}

func (r *MongoPackageRepository) List(ctx context.Context) ([]*domain.Package, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer cursor.Close(ctx)

	var packages []*domain.Package
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}
		packages = append(packages, mapBsonToPackage(raw))
	}
	return packages, nil
}

func (r *MongoPackageRepository) Update(ctx context.Context, pkg *domain.Package) error {
	update := bson.M{
		"$set": bson.M{
			"name":        pkg.Name,
			"description": pkg.Description,
			"hours":       pkg.Hours,
			"price":       pkg.Price,
			"features":    pkg.Features,
			"is_popular":  pkg.IsPopular,
			"is_custom":   pkg.IsCustom,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": pkg.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoPackageRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SeedDefaults seeds the default catalog if the packages don't exist
// Idempotency: checks by _id (not by name) to prevent duplicates
func (r *MongoPackageRepository) SeedDefaults(ctx context.Context) error {
	for _, pkg := range domain.DefaultPackages() {
		_, err := r.GetByID(ctx, pkg.ID)
		if err == nil {
			log.Printf("[Seed] Package %s already exists, skipping", pkg.ID)
			continue
		}
		if err != domain.ErrNotFound {
			return fmt.Errorf("failed to check package existence: %w", err)
		}

		if err := r.Create(ctx, pkg); err != nil {
			return fmt.Errorf("failed to seed package: %w", err)
		}
		log.Printf("[Seed] Created package: %s (%s) - Price: %d, Hours: %d",
			pkg.ID, pkg.Name, pkg.Price, pkg.Hours)
	}
	return nil
}

func mapBsonToPackage(raw bson.M) *domain.Package {
	pkg := &domain.Package{}

	if id, ok := raw["_id"].(string); ok {
		pkg.ID = id
	}
	if name, ok := raw["name"].(string); ok {
		pkg.Name = name
	}
	if desc, ok := raw["description"].(string); ok {
		pkg.Description = desc
	}
	if hours, ok := raw["hours"].(int32); ok {
		pkg.Hours = int(hours)
	} else if hours, ok := raw["hours"].(int64); ok {
		pkg.Hours = int(hours)
	}
	if price, ok := raw["price"].(int64); ok {
		pkg.Price = price
	} else if price, ok := raw["price"].(int32); ok {
		pkg.Price = int64(price)
	}
	if features, ok := raw["features"].(bson.A); ok {
		for _, f := range features {
			if s, ok := f.(string); ok {
				pkg.Features = append(pkg.Features, s)
			}
		}
	}
	if isPopular, ok := raw["is_popular"].(bool); ok {
		pkg.IsPopular = isPopular
	}
	if isCustom, ok := raw["is_custom"].(bool); ok {
		pkg.IsCustom = isCustom
	}

	return pkg
}
