package domain

import "strconv"

// Seed data used on first boot and by cmd/seed/catalog. The catalog ids are
// stable string ids so re-seeding stays idempotent.

// DefaultPackages returns the initial training catalog.
func DefaultPackages() []*Package {
	return []*Package{
		{
			ID:          "1",
			Name:        "Starter Package",
			Description: "Ideal for newcomers to the healthcare field",
			Hours:       10,
			Price:       500,
			Features:    []string{"10 training hours", "Accredited completion certificate", "WhatsApp support", "PDF learning materials"},
		},
		{
			ID:          "2",
			Name:        "Advanced Package",
			Description: "For practitioners at the intermediate level",
			Hours:       25,
			Price:       1100,
			IsPopular:   true,
			Features:    []string{"25 training hours", "Internationally accredited certificate", "24/7 direct support", "Interactive workshops", "One-on-one mentoring sessions"},
		},
		{
			ID:          "3",
			Name:        "Professional Package",
			Description: "For specialists and experts",
			Hours:       50,
			Price:       2000,
			Features:    []string{"50 training hours", "Professional international certificate", "1:1 personal coaching", "Lifetime access", "VIP membership"},
		},
		{
			ID:          "4",
			Name:        "Custom Package",
			Description: "Pick your own hour count at a flat hourly rate",
			IsCustom:    true,
			Features:    []string{"Choose between 5 and 100 hours", "Priced per hour", "Flexible scheduling"},
		},
	}
}

// DefaultSpecialties returns the initial offered specialty list.
func DefaultSpecialties() []*Specialty {
	names := []string{
		"General Medicine", "Dentistry", "Pharmacy", "Nursing",
		"Physiotherapy", "Clinical Nutrition", "Medical Laboratories",
		"Diagnostic Radiology", "Emergency Medicine", "Surgery",
		"Internal Medicine", "Pediatrics", "Obstetrics and Gynecology",
		"Ophthalmology", "ENT", "Dermatology", "Psychiatry", "Other",
	}
	specialties := make([]*Specialty, 0, len(names))
	for i, n := range names {
		specialties = append(specialties, &Specialty{
			ID:   strconv.Itoa(i + 1),
			Name: n,
		})
	}
	return specialties
}

// DefaultAdminSettings returns the initial admin configuration, including the
// pricing config consumed by the pricing engine.
func DefaultAdminSettings() *AdminSettings {
	return &AdminSettings{
		HourlyRate:         50,
		Currency:           "SAR",
		WhatsAppNumber:     "+966 50 000 0000",
		AdminPassword:      "admin123",
		EmailNotifications: true,
	}
}

// DefaultSiteSettings returns the initial site copy.
func DefaultSiteSettings() *SiteSettings {
	return &SiteSettings{
		SiteName:         "Ufuq",
		SiteDescription:  "A training platform for healthcare practitioners",
		HeroTitle:        "Grow your healthcare career",
		HeroSubtitle:     "Accredited training hours with expert mentors",
		AboutTitle:       "About Ufuq",
		AboutDescription: "Ufuq delivers accredited continuing education for healthcare practitioners.",
		Vision:           "To be the leading health-training platform in the region",
		Mission:          "Accessible, flexible, accredited training for every practitioner",
		FooterText:       "Ufuq - health training platform",
	}
}

// DefaultContactInfo returns the initial public contact channels.
func DefaultContactInfo() *ContactInfo {
	return &ContactInfo{
		Phone:    "+966 50 000 0000",
		Email:    "info@ufuq.example",
		WhatsApp: "+966 50 000 0000",
		Address:  "Riyadh, Saudi Arabia",
		WorkingHours: WorkingHours{
			Weekdays: "09:00 - 18:00",
			Weekend:  "By appointment",
		},
	}
}
