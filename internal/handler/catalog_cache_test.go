package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufuqacademy/ufuq/internal/domain"
	"github.com/ufuqacademy/ufuq/internal/repository"
)

type fakePackageRepo struct {
	packages  []*domain.Package
	listCalls int
}

func (r *fakePackageRepo) Create(ctx context.Context, pkg *domain.Package) error { return nil }

func (r *fakePackageRepo) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	for _, p := range r.packages {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakePackageRepo) List(ctx context.Context) ([]*domain.Package, error) {
	r.listCalls++
	return r.packages, nil
}

func (r *fakePackageRepo) Update(ctx context.Context, pkg *domain.Package) error { return nil }
func (r *fakePackageRepo) Delete(ctx context.Context, id string) error           { return nil }

type fakeSpecialtyRepo struct {
	specialties []*domain.Specialty
	listCalls   int
}

func (r *fakeSpecialtyRepo) Create(ctx context.Context, s *domain.Specialty) error { return nil }

func (r *fakeSpecialtyRepo) List(ctx context.Context) ([]*domain.Specialty, error) {
	r.listCalls++
	return r.specialties, nil
}

func (r *fakeSpecialtyRepo) Update(ctx context.Context, s *domain.Specialty) error { return nil }
func (r *fakeSpecialtyRepo) Delete(ctx context.Context, id string) error           { return nil }

func newHandlerCache(t *testing.T) *repository.RedisCacheRepository {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return repository.NewRedisCacheRepository(client)
}

func TestListPackagesServesCatalogOnColdCache(t *testing.T) {
	repo := &fakePackageRepo{packages: []*domain.Package{
		{ID: "1", Name: "Starter", Hours: 10, Price: 500},
		{ID: "2", Name: "Advanced", Hours: 25, Price: 1100, IsPopular: true},
	}}
	h := NewPackageHandler(repo, newHandlerCache(t))

	app := fiber.New()
	app.Get("/v1/packages", h.List)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/packages", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var packages []domain.Package
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&packages))
	require.Len(t, packages, 2)
	assert.Equal(t, "Starter", packages[0].Name)
	assert.Equal(t, 1, repo.listCalls)

	// Second read is served by the now-warm cache
	resp, err = app.Test(httptest.NewRequest("GET", "/v1/packages", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	packages = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&packages))
	assert.Len(t, packages, 2)
	assert.Equal(t, 1, repo.listCalls)
}

func TestListSpecialtiesServesCatalogOnColdCache(t *testing.T) {
	repo := &fakeSpecialtyRepo{specialties: []*domain.Specialty{
		{ID: "1", Name: "Nursing", Icon: "stethoscope"},
	}}
	h := NewContentHandler(nil, nil, nil, repo, nil, nil, nil, nil, newHandlerCache(t))

	app := fiber.New()
	app.Get("/v1/specialties", h.ListSpecialties)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/specialties", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var specialties []domain.Specialty
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&specialties))
	require.Len(t, specialties, 1)
	assert.Equal(t, "Nursing", specialties[0].Name)
	assert.Equal(t, 1, repo.listCalls)

	resp, err = app.Test(httptest.NewRequest("GET", "/v1/specialties", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, repo.listCalls)
}
