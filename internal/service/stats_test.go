package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ufuqacademy/ufuq/internal/domain"
)

type fakeMessageRepo struct{ messages []*domain.ContactMessage }

func (r *fakeMessageRepo) Create(ctx context.Context, m *domain.ContactMessage) error { return nil }
func (r *fakeMessageRepo) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	return r.messages, nil
}
func (r *fakeMessageRepo) MarkRead(ctx context.Context, id string) error { return nil }
func (r *fakeMessageRepo) Delete(ctx context.Context, id string) error   { return nil }

type fakeTeamRepo struct{ members []*domain.TeamMember }

func (r *fakeTeamRepo) Create(ctx context.Context, m *domain.TeamMember) error { return nil }
func (r *fakeTeamRepo) List(ctx context.Context) ([]*domain.TeamMember, error) {
	return r.members, nil
}
func (r *fakeTeamRepo) Update(ctx context.Context, m *domain.TeamMember) error { return nil }
func (r *fakeTeamRepo) Delete(ctx context.Context, id string) error            { return nil }

type fakeTestimonialRepo struct{ testimonials []*domain.Testimonial }

func (r *fakeTestimonialRepo) Create(ctx context.Context, t *domain.Testimonial) error { return nil }
func (r *fakeTestimonialRepo) List(ctx context.Context) ([]*domain.Testimonial, error) {
	return r.testimonials, nil
}
func (r *fakeTestimonialRepo) Update(ctx context.Context, t *domain.Testimonial) error { return nil }
func (r *fakeTestimonialRepo) Delete(ctx context.Context, id string) error             { return nil }

func TestGetDashboardStats(t *testing.T) {
	orders := &fakeOrderRepo{}
	ctx := context.Background()
	seed := []*domain.Order{
		{PackageID: "1", PackageName: "Starter package", Hours: 10, TotalPrice: 500, Status: domain.OrderStatusConfirmed},
		{PackageID: "1", PackageName: "Starter package", Hours: 10, TotalPrice: 500, Status: domain.OrderStatusPending, NotifyPending: true},
		{PackageID: "2", PackageName: "Pro package", Hours: 25, TotalPrice: 1100, Status: domain.OrderStatusCompleted},
		{PackageID: "custom", PackageName: "Custom package (30 hours)", Hours: 30, TotalPrice: 1500, Status: domain.OrderStatusCancelled},
	}
	for _, o := range seed {
		require.NoError(t, orders.Create(ctx, o))
	}

	svc := NewStatsService(
		orders,
		newFakePackageRepo(
			&domain.Package{ID: "1", Name: "Starter package"},
			&domain.Package{ID: "2", Name: "Pro package"},
		),
		&fakeMessageRepo{messages: []*domain.ContactMessage{
			{ID: "m1", Read: true},
			{ID: "m2"},
			{ID: "m3"},
		}},
		&fakeTeamRepo{members: []*domain.TeamMember{{ID: "t1"}}},
		&fakeTestimonialRepo{testimonials: []*domain.Testimonial{{ID: "r1"}, {ID: "r2"}}},
	)

	stats, err := svc.GetDashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalOrders)
	assert.Equal(t, 1, stats.OrdersByStatus[domain.OrderStatusPending])
	assert.Equal(t, 1, stats.OrdersByStatus[domain.OrderStatusConfirmed])
	assert.Equal(t, 1, stats.OrdersByStatus[domain.OrderStatusCompleted])
	assert.Equal(t, 1, stats.OrdersByStatus[domain.OrderStatusCancelled])
	assert.Equal(t, 1, stats.PendingNotify)

	// Revenue counts confirmed + completed only
	assert.Equal(t, int64(500+1100), stats.TotalRevenue)
	assert.Equal(t, 10+25, stats.TotalHours)

	assert.Equal(t, 2, stats.ActivePackages)
	assert.Equal(t, 2, stats.UnreadMessages)
	assert.Equal(t, 1, stats.TeamMembers)
	assert.Equal(t, 2, stats.Testimonials)

	// Distribution sorted by order count, Starter first with 2 orders
	require.NotEmpty(t, stats.PackageStats)
	assert.Equal(t, "1", stats.PackageStats[0].PackageID)
	assert.Equal(t, 2, stats.PackageStats[0].Orders)
}
