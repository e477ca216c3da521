package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionRepository stores admin sessions in the admin_sessions
// collection. Mongo's TTL monitor reaps expired rows via the expires_at
// index; PurgeExpired exists for the cases where it lags.
type MongoSessionRepository struct {
	collection *mongo.Collection
}

func NewMongoSessionRepository(db *mongo.Database) *MongoSessionRepository {
	r := &MongoSessionRepository{collection: db.Collection("admin_sessions")}
	r.ensureIndexes()
	return r
}

func (r *MongoSessionRepository) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token_hash", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})
	if err != nil {
		log.Printf("[Sessions] Failed to ensure indexes: %v", err)
	}
}

func (r *MongoSessionRepository) Insert(ctx context.Context, session *domain.AdminSession) error {
	if session.ID == "" {
		session.ID = ulid.Make().String()
	}
	if session.IssuedAt.IsZero() {
		session.IssuedAt = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) FindByTokenHash(ctx context.Context, hash string) (*domain.AdminSession, error) {
	var session domain.AdminSession
	err := r.collection.FindOne(ctx, bson.M{"token_hash": hash}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

func (r *MongoSessionRepository) Revoke(ctx context.Context, hash string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"token_hash": hash, "revoked_at": nil},
		bson.M{"$set": bson.M{"revoked_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) RevokeAll(ctx context.Context) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"revoked_at": nil},
		bson.M{"$set": bson.M{"revoked_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}

func (r *MongoSessionRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{
		"expires_at": bson.M{"$lt": time.Now().UTC()},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return res.DeletedCount, nil
}
