package domain

import (
	"context"
)

// CustomPackageID is the sentinel package id recorded on orders booked through
// the custom hourly path instead of a fixed catalog package.
const CustomPackageID = "custom"

// Package represents a purchasable training offer: a fixed bundle of hours at a
// fixed catalog price. A package flagged IsCustom is the template for the
// hourly-rate path and carries no meaningful hours/price of its own.
type Package struct {
	ID          string   `bson:"_id,omitempty" json:"id"`
	Name        string   `bson:"name,omitempty" json:"name"`
	Description string   `bson:"description,omitempty" json:"description"`
	Hours       int      `bson:"hours,omitempty" json:"hours"`
	Price       int64    `bson:"price,omitempty" json:"price"` // Whole currency units; this domain has no sub-unit
	Features    []string `bson:"features,omitempty" json:"features"`
	IsPopular   bool     `bson:"is_popular,omitempty" json:"is_popular"`
	IsCustom    bool     `bson:"is_custom,omitempty" json:"is_custom"`
}

// PackageRepository defines operations for managing the package catalog
type PackageRepository interface {
	Create(ctx context.Context, pkg *Package) error
	GetByID(ctx context.Context, id string) (*Package, error)
	List(ctx context.Context) ([]*Package, error)
	Update(ctx context.Context, pkg *Package) error
	Delete(ctx context.Context, id string) error
}
