package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ufuqacademy/ufuq/internal/domain"
)

func newTestCache(t *testing.T) (*RedisCacheRepository, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCacheRepository(client), mr
}

func TestDraftRoundTrip(t *testing.T) {
	repo, _ := newTestCache(t)
	ctx := context.Background()

	draft := &domain.BookingDraft{
		ID:   "d1",
		Step: domain.StepPersonalInfo,
		Selection: &domain.Selection{
			Kind:      domain.SelectionFixed,
			PackageID: "2",
		},
		Customer:  domain.Customer{Name: "Sara Ahmed"},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.Save(ctx, draft, time.Hour))

	got, err := repo.Get(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, draft.Step, got.Step)
	assert.Equal(t, "2", got.Selection.PackageID)
	assert.Equal(t, "Sara Ahmed", got.Customer.Name)
}

func TestDraftExpires(t *testing.T) {
	repo, mr := newTestCache(t)
	ctx := context.Background()

	draft := &domain.BookingDraft{ID: "d1", Step: domain.StepSelectPackage}
	require.NoError(t, repo.Save(ctx, draft, time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestDraftAbsentVsCorrupt(t *testing.T) {
	repo, mr := newTestCache(t)
	ctx := context.Background()

	// Absent reads as not found
	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)

	// A corrupt payload is an error, not a silent miss
	require.NoError(t, mr.Set("booking:draft:bad", "{not json"))
	_, err = repo.Get(ctx, "bad")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrDraftNotFound))
}

func TestDraftDelete(t *testing.T) {
	repo, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.BookingDraft{ID: "d1"}, time.Hour))
	require.NoError(t, repo.Delete(ctx, "d1"))

	_, err := repo.Get(ctx, "d1")
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestCatalogCacheMissIsNil(t *testing.T) {
	repo, _ := newTestCache(t)
	ctx := context.Background()

	packages, err := repo.GetPackages(ctx)
	require.NoError(t, err)
	assert.Nil(t, packages)

	specialties, err := repo.GetSpecialties(ctx)
	require.NoError(t, err)
	assert.Nil(t, specialties)
}

func TestInvalidateCatalog(t *testing.T) {
	repo, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, repo.SetPackages(ctx, []*domain.Package{{ID: "1", Name: "Starter Package"}}))
	require.NoError(t, repo.SetSpecialties(ctx, []*domain.Specialty{{ID: "1", Name: "Nursing"}}))

	cached, err := repo.GetPackages(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)

	require.NoError(t, repo.InvalidateCatalog(ctx))

	cached, err = repo.GetPackages(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached)

	specialties, err := repo.GetSpecialties(ctx)
	require.NoError(t, err)
	assert.Nil(t, specialties)
}
