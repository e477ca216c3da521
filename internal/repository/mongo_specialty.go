package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/oklog/ulid/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSpecialtyRepository implements domain.SpecialtyRepository
type MongoSpecialtyRepository struct {
	collection *mongo.Collection
}

// NewMongoSpecialtyRepository creates a new specialty repository
func NewMongoSpecialtyRepository(db *mongo.Database) *MongoSpecialtyRepository {
	return &MongoSpecialtyRepository{collection: db.Collection("specialties")}
}

func (r *MongoSpecialtyRepository) Create(ctx context.Context, s *domain.Specialty) error {
	if s.ID == "" {
		s.ID = ulid.Make().String()
	}
	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to create specialty: %w", err)
	}
	return nil
}

func (r *MongoSpecialtyRepository) List(ctx context.Context) ([]*domain.Specialty, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list specialties: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Specialty
	for cursor.Next(ctx) {
		var s domain.Specialty
		if err := cursor.Decode(&s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, nil
}

func (r *MongoSpecialtyRepository) Update(ctx context.Context, s *domain.Specialty) error {
	update := bson.M{"$set": bson.M{
		"name":        s.Name,
		"icon":        s.Icon,
		"description": s.Description,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": s.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update specialty: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoSpecialtyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete specialty: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SeedDefaults inserts the default specialty list when missing.
// Idempotency: checks by _id to prevent duplicates
func (r *MongoSpecialtyRepository) SeedDefaults(ctx context.Context) error {
	for _, s := range domain.DefaultSpecialties() {
		err := r.collection.FindOne(ctx, bson.M{"_id": s.ID}).Err()
		if err == nil {
			continue
		}
		if err != mongo.ErrNoDocuments {
			return fmt.Errorf("failed to check specialty existence: %w", err)
		}
		if err := r.Create(ctx, s); err != nil {
			return fmt.Errorf("failed to seed specialty: %w", err)
		}
		log.Printf("[Seed] Created specialty: %s (%s)", s.ID, s.Name)
	}
	return nil
}
