package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ufuqacademy/ufuq/internal/domain"
)

func TestQuoteCustomSelection(t *testing.T) {
	engine := NewPricingEngine(newFakePackageRepo())
	ctx := context.Background()

	tests := []struct {
		name      string
		hours     int
		rate      int64
		wantPrice int64
	}{
		{"lower bound", 5, 50, 250},
		{"upper bound", 100, 50, 5000},
		{"mid range", 20, 50, 1000},
		{"different rate", 20, 75, 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := engine.Quote(ctx, domain.Selection{
				Kind:  domain.SelectionCustom,
				Hours: tt.hours,
			}, tt.rate)
			require.NoError(t, err)
			assert.Equal(t, tt.hours, quote.Hours)
			assert.Equal(t, tt.wantPrice, quote.Price)
		})
	}
}

func TestQuoteCustomSelectionOutOfRange(t *testing.T) {
	engine := NewPricingEngine(newFakePackageRepo())
	ctx := context.Background()

	for _, hours := range []int{0, 4, 101, -5} {
		_, err := engine.Quote(ctx, domain.Selection{
			Kind:  domain.SelectionCustom,
			Hours: hours,
		}, 50)
		assert.ErrorIs(t, err, domain.ErrInvalidHours, "hours=%d", hours)
	}
}

func TestQuoteFixedSelection(t *testing.T) {
	repo := newFakePackageRepo(&domain.Package{
		ID: "2", Name: "Pro package", Hours: 25, Price: 1100,
	})
	engine := NewPricingEngine(repo)

	quote, err := engine.Quote(context.Background(), domain.Selection{
		Kind:      domain.SelectionFixed,
		PackageID: "2",
		// Catalog hours/price apply regardless of what the rate would give
	}, 999)
	require.NoError(t, err)
	assert.Equal(t, 25, quote.Hours)
	assert.Equal(t, int64(1100), quote.Price)
}

func TestQuoteFixedSelectionMissingPackage(t *testing.T) {
	engine := NewPricingEngine(newFakePackageRepo())

	_, err := engine.Quote(context.Background(), domain.Selection{
		Kind:      domain.SelectionFixed,
		PackageID: "gone",
	}, 50)
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestQuoteIsDeterministic(t *testing.T) {
	engine := NewPricingEngine(newFakePackageRepo())
	ctx := context.Background()
	sel := domain.Selection{Kind: domain.SelectionCustom, Hours: 42}

	first, err := engine.Quote(ctx, sel, 50)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := engine.Quote(ctx, sel, 50)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPackageDisplayName(t *testing.T) {
	repo := newFakePackageRepo(&domain.Package{ID: "1", Name: "Starter package"})
	engine := NewPricingEngine(repo)
	ctx := context.Background()

	name, err := engine.PackageDisplayName(ctx, domain.Selection{
		Kind:      domain.SelectionFixed,
		PackageID: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Starter package", name)

	name, err = engine.PackageDisplayName(ctx, domain.Selection{
		Kind:  domain.SelectionCustom,
		Hours: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, "Custom package (30 hours)", name)
}
