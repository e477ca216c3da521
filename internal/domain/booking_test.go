package domain

import (
	"testing"
)

var testSpecialties = []string{"Nursing", "Pharmacy", "Dentistry"}

func TestValidateCustomer(t *testing.T) {
	valid := Customer{
		Name:                  "Sara Ahmed",
		Email:                 "sara@example.com",
		Phone:                 "+966 50 123 4567",
		HealthAuthorityNumber: "HA-12345",
		Specialty:             "Nursing",
	}

	tests := []struct {
		name       string
		mutate     func(c *Customer)
		wantFields []string
	}{
		{
			name:       "all fields valid",
			mutate:     func(c *Customer) {},
			wantFields: nil,
		},
		{
			name:       "empty name",
			mutate:     func(c *Customer) { c.Name = "" },
			wantFields: []string{"name"},
		},
		{
			name:       "whitespace-only name",
			mutate:     func(c *Customer) { c.Name = "   " },
			wantFields: []string{"name"},
		},
		{
			name:       "name shorter than 3 runes",
			mutate:     func(c *Customer) { c.Name = "ab" },
			wantFields: []string{"name"},
		},
		{
			name:       "name of exactly 3 runes passes",
			mutate:     func(c *Customer) { c.Name = "Ali" },
			wantFields: nil,
		},
		{
			name:       "email without at sign",
			mutate:     func(c *Customer) { c.Email = "sara.example.com" },
			wantFields: []string{"email"},
		},
		{
			name:       "email without domain dot",
			mutate:     func(c *Customer) { c.Email = "sara@example" },
			wantFields: []string{"email"},
		},
		{
			name:       "phone too short",
			mutate:     func(c *Customer) { c.Phone = "12345" },
			wantFields: []string{"phone"},
		},
		{
			name:       "phone with letters",
			mutate:     func(c *Customer) { c.Phone = "05x123456789" },
			wantFields: []string{"phone"},
		},
		{
			name:       "phone with spaces dashes and plus passes",
			mutate:     func(c *Customer) { c.Phone = "+966-50-123 4567" },
			wantFields: nil,
		},
		{
			name:       "missing health authority number",
			mutate:     func(c *Customer) { c.HealthAuthorityNumber = "" },
			wantFields: []string{"health_authority_number"},
		},
		{
			name:       "missing specialty",
			mutate:     func(c *Customer) { c.Specialty = "" },
			wantFields: []string{"specialty"},
		},
		{
			name:       "specialty not in offered list",
			mutate:     func(c *Customer) { c.Specialty = "Astrology" },
			wantFields: []string{"specialty"},
		},
		{
			name: "every field invalid reports every field",
			mutate: func(c *Customer) {
				*c = Customer{Email: "nope", Phone: "123", Specialty: "Astrology"}
			},
			wantFields: []string{"name", "email", "phone", "health_authority_number", "specialty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)

			errs := ValidateCustomer(c, testSpecialties)

			if len(errs) != len(tt.wantFields) {
				t.Fatalf("ValidateCustomer() returned %d errors %v, want %d for fields %v",
					len(errs), errs, len(tt.wantFields), tt.wantFields)
			}
			for _, field := range tt.wantFields {
				if _, ok := errs[field]; !ok {
					t.Errorf("ValidateCustomer() missing error for field %q, got %v", field, errs)
				}
			}
		})
	}
}

func TestHasSelection(t *testing.T) {
	tests := []struct {
		name      string
		selection *Selection
		want      bool
	}{
		{"no selection", nil, false},
		{"fixed with package id", &Selection{Kind: SelectionFixed, PackageID: "2"}, true},
		{"fixed without package id", &Selection{Kind: SelectionFixed}, false},
		{"custom in range", &Selection{Kind: SelectionCustom, Hours: 20}, true},
		{"custom at lower bound", &Selection{Kind: SelectionCustom, Hours: MinCustomHours}, true},
		{"custom at upper bound", &Selection{Kind: SelectionCustom, Hours: MaxCustomHours}, true},
		{"custom below range", &Selection{Kind: SelectionCustom, Hours: MinCustomHours - 1}, false},
		{"custom above range", &Selection{Kind: SelectionCustom, Hours: MaxCustomHours + 1}, false},
		{"unknown kind", &Selection{Kind: "bundle", PackageID: "2"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := BookingDraft{Selection: tt.selection}
			if got := d.HasSelection(); got != tt.want {
				t.Errorf("HasSelection() = %v, want %v", got, tt.want)
			}
		})
	}
}
