package domain

import (
	"context"
	"time"
)

// Order status constants
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is one of the four known statuses.
// Any valid status may transition to any other; the admin surface is allowed
// to override freely, so there is deliberately no transition graph here.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the durable record of a submitted booking. Hours and TotalPrice are
// copied from the pricing quote at submission time; later catalog edits never
// change existing orders.
type Order struct {
	ID                    string    `bson:"_id,omitempty" json:"id"`
	CustomerName          string    `bson:"customer_name,omitempty" json:"customer_name"`
	Email                 string    `bson:"email,omitempty" json:"email"`
	Phone                 string    `bson:"phone,omitempty" json:"phone"`
	HealthAuthorityNumber string    `bson:"health_authority_number,omitempty" json:"health_authority_number"`
	Specialty             string    `bson:"specialty,omitempty" json:"specialty"`
	PackageID             string    `bson:"package_id,omitempty" json:"package_id"` // "custom" for hourly bookings
	PackageName           string    `bson:"package_name,omitempty" json:"package_name"`
	Hours                 int       `bson:"hours,omitempty" json:"hours"`
	TotalPrice            int64     `bson:"total_price,omitempty" json:"total_price"`
	Status                string    `bson:"status,omitempty" json:"status"`
	NotifyPending         bool      `bson:"notify_pending,omitempty" json:"notify_pending"` // Set when the WhatsApp hand-off could not be built
	Notes                 string    `bson:"notes,omitempty" json:"notes"`
	CreatedAt             time.Time `bson:"created_at,omitempty" json:"created_at"`
}

// OrderRepository defines operations for managing orders
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	// List returns all orders in insertion order, oldest first.
	List(ctx context.Context) ([]*Order, error)
	// UpdateStatus performs an unconditional transition between any two valid
	// statuses, including backward ones.
	UpdateStatus(ctx context.Context, id string, status string) error
	SetNotes(ctx context.Context, id string, notes string) error
	SetNotifyPending(ctx context.Context, id string, pending bool) error
	Delete(ctx context.Context, id string) error
}
