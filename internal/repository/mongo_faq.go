package repository

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoFAQRepository implements domain.FAQRepository
type MongoFAQRepository struct {
	collection *mongo.Collection
}

// NewMongoFAQRepository creates a new FAQ repository
func NewMongoFAQRepository(db *mongo.Database) *MongoFAQRepository {
	return &MongoFAQRepository{collection: db.Collection("faqs")}
}

func (r *MongoFAQRepository) Create(ctx context.Context, f *domain.FAQ) error {
	if f.ID == "" {
		f.ID = ulid.Make().String()
	}
	if _, err := r.collection.InsertOne(ctx, f); err != nil {
		return fmt.Errorf("failed to create faq: %w", err)
	}
	return nil
}

func (r *MongoFAQRepository) List(ctx context.Context) ([]*domain.FAQ, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.FAQ
	for cursor.Next(ctx) {
		var f domain.FAQ
		if err := cursor.Decode(&f); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, nil
}

func (r *MongoFAQRepository) Update(ctx context.Context, f *domain.FAQ) error {
	update := bson.M{"$set": bson.M{
		"question": f.Question,
		"answer":   f.Answer,
		"category": f.Category,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": f.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update faq: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoFAQRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete faq: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
