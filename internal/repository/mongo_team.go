package repository

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTeamRepository implements domain.TeamRepository
type MongoTeamRepository struct {
	collection *mongo.Collection
}

// NewMongoTeamRepository creates a new team member repository
func NewMongoTeamRepository(db *mongo.Database) *MongoTeamRepository {
	return &MongoTeamRepository{collection: db.Collection("team_members")}
}

func (r *MongoTeamRepository) Create(ctx context.Context, m *domain.TeamMember) error {
	if m.ID == "" {
		m.ID = ulid.Make().String()
	}
	if _, err := r.collection.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to create team member: %w", err)
	}
	return nil
}

func (r *MongoTeamRepository) List(ctx context.Context) ([]*domain.TeamMember, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.TeamMember
	for cursor.Next(ctx) {
		var m domain.TeamMember
		if err := cursor.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, nil
}

func (r *MongoTeamRepository) Update(ctx context.Context, m *domain.TeamMember) error {
	update := bson.M{"$set": bson.M{
		"name":  m.Name,
		"role":  m.Role,
		"image": m.Image,
		"bio":   m.Bio,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": m.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update team member: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoTeamRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
