package repository

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoServiceRepository implements domain.ServiceRepository
type MongoServiceRepository struct {
	collection *mongo.Collection
}

// NewMongoServiceRepository creates a new service-card repository
func NewMongoServiceRepository(db *mongo.Database) *MongoServiceRepository {
	return &MongoServiceRepository{collection: db.Collection("services")}
}

func (r *MongoServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	if s.ID == "" {
		s.ID = ulid.Make().String()
	}
	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *MongoServiceRepository) List(ctx context.Context) ([]*domain.Service, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Service
	for cursor.Next(ctx) {
		var s domain.Service
		if err := cursor.Decode(&s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, nil
}

func (r *MongoServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	update := bson.M{"$set": bson.M{
		"title":       s.Title,
		"description": s.Description,
		"icon":        s.Icon,
		"features":    s.Features,
		"color":       s.Color,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": s.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoServiceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
