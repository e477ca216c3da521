package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTestimonialRepository implements domain.TestimonialRepository
type MongoTestimonialRepository struct {
	collection *mongo.Collection
}

// NewMongoTestimonialRepository creates a new testimonial repository
func NewMongoTestimonialRepository(db *mongo.Database) *MongoTestimonialRepository {
	return &MongoTestimonialRepository{collection: db.Collection("testimonials")}
}

func (r *MongoTestimonialRepository) Create(ctx context.Context, t *domain.Testimonial) error {
	if t.ID == "" {
		t.ID = ulid.Make().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}
	return nil
}

func (r *MongoTestimonialRepository) List(ctx context.Context) ([]*domain.Testimonial, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Testimonial
	for cursor.Next(ctx) {
		var t domain.Testimonial
		if err := cursor.Decode(&t); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, nil
}

func (r *MongoTestimonialRepository) Update(ctx context.Context, t *domain.Testimonial) error {
	update := bson.M{"$set": bson.M{
		"name":    t.Name,
		"role":    t.Role,
		"content": t.Content,
		"rating":  t.Rating,
		"image":   t.Image,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": t.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update testimonial: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoTestimonialRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
