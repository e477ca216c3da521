package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	draftKeyPrefix  = "booking:draft:"
	packageListKey  = "catalog:packages"
	specialtiesKey  = "catalog:specialties"
	catalogCacheTTL = 5 * time.Minute
)

// ErrCacheMiss is returned by generic gets when the key is absent.
var ErrCacheMiss = fmt.Errorf("cache miss")

// RedisCacheRepository holds the transient state that never belongs in Mongo:
// in-progress booking drafts (TTL-bound, one per wizard session) and short-lived
// read caches for the public catalog.
type RedisCacheRepository struct {
	client *redis.Client
}

// NewRedisCacheRepository creates a new Redis cache repository
func NewRedisCacheRepository(client *redis.Client) *RedisCacheRepository {
	return &RedisCacheRepository{
		client: client,
	}
}

// =============================================================================
// Booking drafts (domain.DraftRepository)
// =============================================================================

// Save stores a draft under its id with the given TTL. Every mutation of the
// draft goes through here, refreshing the TTL.
func (r *RedisCacheRepository) Save(ctx context.Context, draft *domain.BookingDraft, ttl time.Duration) error {
	return r.Set(ctx, draftKeyPrefix+draft.ID, draft, ttl)
}

// Get retrieves a draft by id. An absent or expired draft yields
// domain.ErrDraftNotFound.
func (r *RedisCacheRepository) Get(ctx context.Context, id string) (*domain.BookingDraft, error) {
	var draft domain.BookingDraft
	if err := r.get(ctx, draftKeyPrefix+id, &draft); err != nil {
		if err == ErrCacheMiss {
			return nil, domain.ErrDraftNotFound
		}
		return nil, err
	}
	return &draft, nil
}

// Delete discards a draft (successful submission or explicit abandon).
func (r *RedisCacheRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, draftKeyPrefix+id).Err()
}

// =============================================================================
// Catalog read caches
// =============================================================================

// SetPackages caches the public package list
func (r *RedisCacheRepository) SetPackages(ctx context.Context, packages []*domain.Package) error {
	return r.Set(ctx, packageListKey, packages, catalogCacheTTL)
}

// GetPackages retrieves the cached package list; nil on miss
func (r *RedisCacheRepository) GetPackages(ctx context.Context) ([]*domain.Package, error) {
	var packages []*domain.Package
	if err := r.get(ctx, packageListKey, &packages); err != nil {
		if err == ErrCacheMiss {
			return nil, nil
		}
		return nil, err
	}
	return packages, nil
}

// InvalidateCatalog drops the catalog caches after an admin write
func (r *RedisCacheRepository) InvalidateCatalog(ctx context.Context) error {
	return r.client.Del(ctx, packageListKey, specialtiesKey).Err()
}

// SetSpecialties caches the offered specialty list
func (r *RedisCacheRepository) SetSpecialties(ctx context.Context, specialties []*domain.Specialty) error {
	return r.Set(ctx, specialtiesKey, specialties, catalogCacheTTL)
}

// GetSpecialties retrieves the cached specialty list; nil on miss
func (r *RedisCacheRepository) GetSpecialties(ctx context.Context) ([]*domain.Specialty, error) {
	var specialties []*domain.Specialty
	if err := r.get(ctx, specialtiesKey, &specialties); err != nil {
		if err == ErrCacheMiss {
			return nil, nil
		}
		return nil, err
	}
	return specialties, nil
}

// =============================================================================
// Generic cache operations with OpenTelemetry tracing
// =============================================================================

// get retrieves a value from cache by key with OTel tracing
func (r *RedisCacheRepository) get(ctx context.Context, key string, dest interface{}) error {
	tracer := otel.Tracer("redis")
	ctx, span := tracer.Start(ctx, "redis.Get",
		trace.WithAttributes(attribute.String("cache.key", key)),
	)
	defer span.End()

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			span.SetAttributes(attribute.String("cache.result", "miss"))
			return ErrCacheMiss
		}
		span.RecordError(err)
		return fmt.Errorf("redis get error: %w", err)
	}

	span.SetAttributes(attribute.String("cache.result", "hit"))
	if err := json.Unmarshal(data, dest); err != nil {
		span.RecordError(err)
		return fmt.Errorf("unmarshal error: %w", err)
	}

	return nil
}

// Set stores a value in cache with TTL and OTel tracing
func (r *RedisCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	tracer := otel.Tracer("redis")
	ctx, span := tracer.Start(ctx, "redis.Set",
		trace.WithAttributes(
			attribute.String("cache.key", key),
			attribute.Int64("cache.ttl_seconds", int64(ttl.Seconds())),
		),
	)
	defer span.End()

	data, err := json.Marshal(value)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("marshal error: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("redis set error: %w", err)
	}

	return nil
}
