package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/ufuqacademy/ufuq/internal/domain"
	"github.com/ufuqacademy/ufuq/internal/repository"
)

// newTestDraftRepo backs the draft store with miniredis so the TTL behaviour
// matches production.
func newTestDraftRepo(t *testing.T) domain.DraftRepository {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return repository.NewRedisCacheRepository(client)
}

type fakePackageRepo struct {
	mu       sync.Mutex
	packages map[string]*domain.Package
}

func newFakePackageRepo(packages ...*domain.Package) *fakePackageRepo {
	r := &fakePackageRepo{packages: make(map[string]*domain.Package)}
	for _, p := range packages {
		r.packages[p.ID] = p
	}
	return r
}

func (r *fakePackageRepo) Create(ctx context.Context, p *domain.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packages[p.ID] = p
	return nil
}

func (r *fakePackageRepo) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.packages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakePackageRepo) List(ctx context.Context) ([]*domain.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Package, 0, len(r.packages))
	for _, p := range r.packages {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePackageRepo) Update(ctx context.Context, p *domain.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.packages[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.packages[p.ID] = p
	return nil
}

func (r *fakePackageRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.packages[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.packages, id)
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []*domain.Order
	nextID int
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	if order.ID == "" {
		order.ID = fmt.Sprintf("order-%d", r.nextID)
	}
	cp := *order
	r.orders = append(r.orders, &cp)
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeOrderRepo) List(ctx context.Context) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	if !domain.ValidOrderStatus(status) {
		return domain.ErrInvalidStatus
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOrderRepo) SetNotes(ctx context.Context, id string, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			o.Notes = notes
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOrderRepo) SetNotifyPending(ctx context.Context, id string, pending bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			o.NotifyPending = pending
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeSpecialtyRepo struct {
	names []string
}

func (r *fakeSpecialtyRepo) Create(ctx context.Context, s *domain.Specialty) error { return nil }

func (r *fakeSpecialtyRepo) List(ctx context.Context) ([]*domain.Specialty, error) {
	out := make([]*domain.Specialty, 0, len(r.names))
	for i, n := range r.names {
		out = append(out, &domain.Specialty{ID: fmt.Sprintf("%d", i+1), Name: n})
	}
	return out, nil
}

func (r *fakeSpecialtyRepo) Update(ctx context.Context, s *domain.Specialty) error { return nil }
func (r *fakeSpecialtyRepo) Delete(ctx context.Context, id string) error           { return nil }

type fakeSettingsRepo struct {
	mu    sync.Mutex
	admin domain.AdminSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{admin: *domain.DefaultAdminSettings()}
}

func (r *fakeSettingsRepo) LoadAdminSettings(ctx context.Context) (*domain.AdminSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := r.admin
	return &cp, nil
}

func (r *fakeSettingsRepo) SaveAdminSettings(ctx context.Context, s *domain.AdminSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admin = *s
	return nil
}

func (r *fakeSettingsRepo) LoadSiteSettings(ctx context.Context) (*domain.SiteSettings, error) {
	return domain.DefaultSiteSettings(), nil
}

func (r *fakeSettingsRepo) SaveSiteSettings(ctx context.Context, s *domain.SiteSettings) error {
	return nil
}

func (r *fakeSettingsRepo) LoadContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	return domain.DefaultContactInfo(), nil
}

func (r *fakeSettingsRepo) SaveContactInfo(ctx context.Context, c *domain.ContactInfo) error {
	return nil
}

// fakeNotifier records hand-off attempts and can be forced to fail.
type fakeNotifier struct {
	mu    sync.Mutex
	fail  bool
	calls int
}

func (n *fakeNotifier) OrderLink(ctx context.Context, order *domain.Order) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	if n.fail {
		return "", fmt.Errorf("channel unavailable")
	}
	return "https://wa.me/966500000000?text=order-" + order.ID, nil
}

func (n *fakeNotifier) ContactLink(ctx context.Context, msg *domain.ContactMessage) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	if n.fail {
		return "", fmt.Errorf("channel unavailable")
	}
	return "https://wa.me/966500000000?text=contact", nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.AdminSession
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.AdminSession)}
}

func (r *fakeSessionRepo) Insert(ctx context.Context, session *domain.AdminSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	if session.ID == "" {
		session.ID = fmt.Sprintf("sess-%d", r.nextID)
	}
	cp := *session
	r.sessions[session.TokenHash] = &cp
	return nil
}

func (r *fakeSessionRepo) FindByTokenHash(ctx context.Context, hash string) (*domain.AdminSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[hash]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[hash]; ok && s.RevokedAt == nil {
		now := time.Now().UTC()
		s.RevokedAt = &now
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	for _, s := range r.sessions {
		if s.RevokedAt == nil {
			s.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeSessionRepo) PurgeExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	var purged int64
	for hash, s := range r.sessions {
		if now.After(s.ExpiresAt) {
			delete(r.sessions, hash)
			purged++
		}
	}
	return purged, nil
}
