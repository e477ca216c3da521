package repository

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// The three home-page content blocks (statistics, features, social links) share
// one small repository shape each; they live together here.

// MongoStatisticRepository implements domain.StatisticRepository
type MongoStatisticRepository struct {
	collection *mongo.Collection
}

func NewMongoStatisticRepository(db *mongo.Database) *MongoStatisticRepository {
	return &MongoStatisticRepository{collection: db.Collection("statistics")}
}

func (r *MongoStatisticRepository) Create(ctx context.Context, s *domain.Statistic) error {
	if s.ID == "" {
		s.ID = ulid.Make().String()
	}
	if _, err := r.collection.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to create statistic: %w", err)
	}
	return nil
}

func (r *MongoStatisticRepository) List(ctx context.Context) ([]*domain.Statistic, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list statistics: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Statistic
	for cursor.Next(ctx) {
		var s domain.Statistic
		if err := cursor.Decode(&s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, nil
}

func (r *MongoStatisticRepository) Update(ctx context.Context, s *domain.Statistic) error {
	update := bson.M{"$set": bson.M{"value": s.Value, "label": s.Label, "icon": s.Icon}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": s.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update statistic: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoStatisticRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete statistic: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MongoFeatureRepository implements domain.FeatureRepository
type MongoFeatureRepository struct {
	collection *mongo.Collection
}

func NewMongoFeatureRepository(db *mongo.Database) *MongoFeatureRepository {
	return &MongoFeatureRepository{collection: db.Collection("features")}
}

func (r *MongoFeatureRepository) Create(ctx context.Context, f *domain.Feature) error {
	if f.ID == "" {
		f.ID = ulid.Make().String()
	}
	if _, err := r.collection.InsertOne(ctx, f); err != nil {
		return fmt.Errorf("failed to create feature: %w", err)
	}
	return nil
}

func (r *MongoFeatureRepository) List(ctx context.Context) ([]*domain.Feature, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list features: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Feature
	for cursor.Next(ctx) {
		var f domain.Feature
		if err := cursor.Decode(&f); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, nil
}

func (r *MongoFeatureRepository) Update(ctx context.Context, f *domain.Feature) error {
	update := bson.M{"$set": bson.M{"title": f.Title, "description": f.Description, "icon": f.Icon}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": f.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update feature: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoFeatureRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete feature: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MongoSocialLinkRepository implements domain.SocialLinkRepository
type MongoSocialLinkRepository struct {
	collection *mongo.Collection
}

func NewMongoSocialLinkRepository(db *mongo.Database) *MongoSocialLinkRepository {
	return &MongoSocialLinkRepository{collection: db.Collection("social_links")}
}

func (r *MongoSocialLinkRepository) Create(ctx context.Context, l *domain.SocialLink) error {
	if l.ID == "" {
		l.ID = ulid.Make().String()
	}
	if _, err := r.collection.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("failed to create social link: %w", err)
	}
	return nil
}

func (r *MongoSocialLinkRepository) List(ctx context.Context) ([]*domain.SocialLink, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list social links: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.SocialLink
	for cursor.Next(ctx) {
		var l domain.SocialLink
		if err := cursor.Decode(&l); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, nil
}

func (r *MongoSocialLinkRepository) Update(ctx context.Context, l *domain.SocialLink) error {
	update := bson.M{"$set": bson.M{"platform": l.Platform, "url": l.URL, "icon": l.Icon}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": l.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update social link: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoSocialLinkRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete social link: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
