package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ufuqacademy/ufuq/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSettingsRepository implements domain.SettingsRepository over a single
// "settings" collection holding one document per key. A missing document falls
// back to the built-in defaults without writing them back; nothing is persisted
// until the first explicit save. A document that exists but fails to decode is
// NOT treated as absent: it is logged and reported as domain.ErrCorrupt so
// callers can tell storage corruption apart from a fresh install.
type MongoSettingsRepository struct {
	collection *mongo.Collection
}

// NewMongoSettingsRepository creates a new settings repository
func NewMongoSettingsRepository(db *mongo.Database) *MongoSettingsRepository {
	return &MongoSettingsRepository{collection: db.Collection("settings")}
}

// load decodes the document stored under key into dest. Returns
// domain.ErrNotFound when absent and domain.ErrCorrupt when undecodable.
func (r *MongoSettingsRepository) load(ctx context.Context, key string, dest interface{}) error {
	raw := r.collection.FindOne(ctx, bson.M{"_id": key})
	if err := raw.Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to load settings %q: %w", key, err)
	}
	if err := raw.Decode(dest); err != nil {
		log.Printf("[Settings] Corrupt document under %q: %v", key, err)
		return fmt.Errorf("settings %q: %w", key, domain.ErrCorrupt)
	}
	return nil
}

// save upserts value under key, overwriting any previous document.
func (r *MongoSettingsRepository) save(ctx context.Context, key string, value interface{}) error {
	doc, err := bson.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal settings %q: %w", key, err)
	}
	var asMap bson.M
	if err := bson.Unmarshal(doc, &asMap); err != nil {
		return fmt.Errorf("failed to remarshal settings %q: %w", key, err)
	}
	asMap["_id"] = key

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": key}, asMap, opts); err != nil {
		return fmt.Errorf("failed to save settings %q: %w", key, err)
	}
	return nil
}

func (r *MongoSettingsRepository) LoadAdminSettings(ctx context.Context) (*domain.AdminSettings, error) {
	var s domain.AdminSettings
	err := r.load(ctx, domain.KeyAdminSettings, &s)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultAdminSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MongoSettingsRepository) SaveAdminSettings(ctx context.Context, s *domain.AdminSettings) error {
	return r.save(ctx, domain.KeyAdminSettings, s)
}

func (r *MongoSettingsRepository) LoadSiteSettings(ctx context.Context) (*domain.SiteSettings, error) {
	var s domain.SiteSettings
	err := r.load(ctx, domain.KeySiteSettings, &s)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultSiteSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MongoSettingsRepository) SaveSiteSettings(ctx context.Context, s *domain.SiteSettings) error {
	return r.save(ctx, domain.KeySiteSettings, s)
}

func (r *MongoSettingsRepository) LoadContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	var c domain.ContactInfo
	err := r.load(ctx, domain.KeyContactInfo, &c)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DefaultContactInfo(), nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MongoSettingsRepository) SaveContactInfo(ctx context.Context, c *domain.ContactInfo) error {
	return r.save(ctx, domain.KeyContactInfo, c)
}
