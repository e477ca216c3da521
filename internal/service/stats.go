package service

import (
	"context"
	"sort"

	"github.com/ufuqacademy/ufuq/internal/domain"
	"golang.org/x/sync/errgroup"
)

// PackageStat is one row of the per-package order distribution.
type PackageStat struct {
	PackageID   string `json:"package_id"`
	PackageName string `json:"package_name"`
	Orders      int    `json:"orders"`
	Hours       int    `json:"hours"`
	Revenue     int64  `json:"revenue"`
}

// DashboardStats is the admin dashboard aggregate.
type DashboardStats struct {
	TotalOrders    int            `json:"total_orders"`
	OrdersByStatus map[string]int `json:"orders_by_status"`
	PendingNotify  int            `json:"pending_notify"` // Orders whose hand-off link was never delivered
	TotalRevenue   int64          `json:"total_revenue"`  // Confirmed and completed orders only
	TotalHours     int            `json:"total_hours"`
	PackageStats   []PackageStat  `json:"package_stats"`
	UnreadMessages int            `json:"unread_messages"`
	ActivePackages int            `json:"active_packages"`
	TeamMembers    int            `json:"team_members"`
	Testimonials   int            `json:"testimonials"`
}

// StatsService aggregates the admin dashboard numbers.
type StatsService struct {
	orderRepo       domain.OrderRepository
	packageRepo     domain.PackageRepository
	messageRepo     domain.ContactMessageRepository
	teamRepo        domain.TeamRepository
	testimonialRepo domain.TestimonialRepository
}

// NewStatsService creates a new stats service
func NewStatsService(
	orderRepo domain.OrderRepository,
	packageRepo domain.PackageRepository,
	messageRepo domain.ContactMessageRepository,
	teamRepo domain.TeamRepository,
	testimonialRepo domain.TestimonialRepository,
) *StatsService {
	return &StatsService{
		orderRepo:       orderRepo,
		packageRepo:     packageRepo,
		messageRepo:     messageRepo,
		teamRepo:        teamRepo,
		testimonialRepo: testimonialRepo,
	}
}

// GetDashboardStats collects the aggregate concurrently; each collection is an
// independent read so they all fan out under one errgroup.
func (s *StatsService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: make(map[string]int),
		PackageStats:   []PackageStat{},
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		orders, err := s.orderRepo.List(gCtx)
		if err != nil {
			return err
		}
		s.aggregateOrders(stats, orders)
		return nil
	})

	g.Go(func() error {
		packages, err := s.packageRepo.List(gCtx)
		if err != nil {
			return err
		}
		stats.ActivePackages = len(packages)
		return nil
	})

	g.Go(func() error {
		messages, err := s.messageRepo.List(gCtx)
		if err != nil {
			return err
		}
		for _, m := range messages {
			if !m.Read {
				stats.UnreadMessages++
			}
		}
		return nil
	})

	g.Go(func() error {
		members, err := s.teamRepo.List(gCtx)
		if err != nil {
			return err
		}
		stats.TeamMembers = len(members)
		return nil
	})

	g.Go(func() error {
		testimonials, err := s.testimonialRepo.List(gCtx)
		if err != nil {
			return err
		}
		stats.Testimonials = len(testimonials)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}

// aggregateOrders folds the order list into counts, revenue and the
// per-package distribution. Revenue counts confirmed and completed orders;
// pending ones are not money yet and cancelled ones never will be.
func (s *StatsService) aggregateOrders(stats *DashboardStats, orders []*domain.Order) {
	byPackage := make(map[string]*PackageStat)

	for _, o := range orders {
		stats.TotalOrders++
		stats.OrdersByStatus[o.Status]++
		if o.NotifyPending {
			stats.PendingNotify++
		}

		if o.Status == domain.OrderStatusConfirmed || o.Status == domain.OrderStatusCompleted {
			stats.TotalRevenue += o.TotalPrice
			stats.TotalHours += o.Hours
		}

		ps := byPackage[o.PackageID]
		if ps == nil {
			ps = &PackageStat{PackageID: o.PackageID, PackageName: o.PackageName}
			byPackage[o.PackageID] = ps
		}
		ps.Orders++
		ps.Hours += o.Hours
		ps.Revenue += o.TotalPrice
	}

	for _, ps := range byPackage {
		stats.PackageStats = append(stats.PackageStats, *ps)
	}
	sort.Slice(stats.PackageStats, func(i, j int) bool {
		return stats.PackageStats[i].Orders > stats.PackageStats[j].Orders
	})
}
