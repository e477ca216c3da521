package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Booking wizard steps
const (
	StepSelectPackage = 1
	StepPersonalInfo  = 2
	StepConfirm       = 3
)

// Custom booking hour bounds. Enforced again by the pricing engine, since
// clients cannot be trusted to clamp their input.
const (
	MinCustomHours = 5
	MaxCustomHours = 100
)

// Selection kinds
const (
	SelectionFixed  = "fixed"
	SelectionCustom = "custom"
)

// Selection is the tagged choice between a fixed catalog package and a custom
// hour count. Exactly one of PackageID or Hours is meaningful, per Kind.
type Selection struct {
	Kind      string `json:"kind"`
	PackageID string `json:"package_id,omitempty"`
	Hours     int    `json:"hours,omitempty"`
}

// Customer holds the personal details collected on step 2.
type Customer struct {
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	HealthAuthorityNumber string `json:"health_authority_number"`
	Specialty             string `json:"specialty"`
}

// BookingDraft is the transient state of one in-progress booking session.
// Drafts live in Redis with a TTL and are never written to Mongo; an expired
// or abandoned draft simply disappears.
type BookingDraft struct {
	ID        string            `json:"id"`
	Selection *Selection        `json:"selection,omitempty"`
	Customer  Customer          `json:"customer"`
	Step      int               `json:"step"`
	Errors    map[string]string `json:"errors,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// HasSelection reports whether the step 1 guard is satisfied: a fixed package
// is chosen, or custom mode is active with an in-range hour count.
func (d *BookingDraft) HasSelection() bool {
	if d.Selection == nil {
		return false
	}
	switch d.Selection.Kind {
	case SelectionFixed:
		return d.Selection.PackageID != ""
	case SelectionCustom:
		return d.Selection.Hours >= MinCustomHours && d.Selection.Hours <= MaxCustomHours
	}
	return false
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)
)

// ValidateCustomer checks every field independently and returns one message
// per invalid field, keyed by field name. An empty map means the customer
// details pass the step 2 gate. specialties is the currently offered list;
// the chosen specialty must be one of them.
func ValidateCustomer(c Customer, specialties []string) map[string]string {
	errs := make(map[string]string)

	name := strings.TrimSpace(c.Name)
	if name == "" {
		errs["name"] = "name is required"
	} else if len([]rune(name)) < 3 {
		errs["name"] = "name must be at least 3 characters"
	}

	email := strings.TrimSpace(c.Email)
	if email == "" {
		errs["email"] = "email is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "email is not valid"
	}

	if strings.TrimSpace(c.Phone) == "" {
		errs["phone"] = "phone number is required"
	} else {
		digits := strings.NewReplacer(" ", "", "-", "", "+", "").Replace(c.Phone)
		if !phonePattern.MatchString(digits) {
			errs["phone"] = "phone number must contain 10 to 15 digits"
		}
	}

	if strings.TrimSpace(c.HealthAuthorityNumber) == "" {
		errs["health_authority_number"] = "health authority number is required"
	}

	if c.Specialty == "" {
		errs["specialty"] = "specialty is required"
	} else {
		known := false
		for _, s := range specialties {
			if s == c.Specialty {
				known = true
				break
			}
		}
		if !known {
			errs["specialty"] = "specialty must be chosen from the offered list"
		}
	}

	return errs
}

// DraftRepository stores in-progress booking drafts with a TTL.
type DraftRepository interface {
	Save(ctx context.Context, draft *BookingDraft, ttl time.Duration) error
	Get(ctx context.Context, id string) (*BookingDraft, error)
	Delete(ctx context.Context, id string) error
}
