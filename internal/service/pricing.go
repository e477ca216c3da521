package service

import (
	"context"
	"fmt"

	"github.com/ufuqacademy/ufuq/internal/domain"
)

// Quote is the derived total for a selection. Both values are frozen onto the
// order at submission time.
type Quote struct {
	Hours int   `json:"hours"`
	Price int64 `json:"price"`
}

// PricingEngine computes totals from a booking selection. It has no state
// beyond the catalog lookup: identical inputs always produce identical quotes,
// which is what lets the caller re-quote on every slider move for the live
// preview.
type PricingEngine struct {
	packageRepo domain.PackageRepository
}

// NewPricingEngine creates a new pricing engine
func NewPricingEngine(packageRepo domain.PackageRepository) *PricingEngine {
	return &PricingEngine{packageRepo: packageRepo}
}

// Quote resolves a selection to (hours, price) under the given hourly rate.
//
// Custom selections are priced at hours x hourlyRate. The hour count is
// re-validated here even though the UI clamps it; a draft mutated outside the
// wizard must not produce an out-of-range order.
//
// Fixed selections take the package's catalog hours and price as-is; the
// hourly rate plays no part. A package id that no longer resolves (the catalog
// changed under an open draft) yields domain.ErrPackageNotFound.
func (e *PricingEngine) Quote(ctx context.Context, sel domain.Selection, hourlyRate int64) (Quote, error) {
	switch sel.Kind {
	case domain.SelectionCustom:
		if sel.Hours < domain.MinCustomHours || sel.Hours > domain.MaxCustomHours {
			return Quote{}, fmt.Errorf("%w: %d not in [%d, %d]",
				domain.ErrInvalidHours, sel.Hours, domain.MinCustomHours, domain.MaxCustomHours)
		}
		return Quote{
			Hours: sel.Hours,
			Price: int64(sel.Hours) * hourlyRate,
		}, nil

	case domain.SelectionFixed:
		pkg, err := e.packageRepo.GetByID(ctx, sel.PackageID)
		if err != nil {
			if err == domain.ErrNotFound {
				return Quote{}, domain.ErrPackageNotFound
			}
			return Quote{}, fmt.Errorf("failed to resolve package: %w", err)
		}
		return Quote{
			Hours: pkg.Hours,
			Price: pkg.Price,
		}, nil
	}

	return Quote{}, fmt.Errorf("unknown selection kind %q", sel.Kind)
}

// PackageDisplayName resolves the name recorded on an order: the catalog name
// for fixed selections, a synthesized label for custom ones.
func (e *PricingEngine) PackageDisplayName(ctx context.Context, sel domain.Selection) (string, error) {
	if sel.Kind == domain.SelectionCustom {
		return fmt.Sprintf("Custom package (%d hours)", sel.Hours), nil
	}
	pkg, err := e.packageRepo.GetByID(ctx, sel.PackageID)
	if err != nil {
		if err == domain.ErrNotFound {
			return "", domain.ErrPackageNotFound
		}
		return "", fmt.Errorf("failed to resolve package: %w", err)
	}
	return pkg.Name, nil
}
