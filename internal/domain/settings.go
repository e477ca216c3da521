package domain

import "context"

// Settings document keys in the settings collection
const (
	KeySiteSettings  = "site_settings"
	KeyContactInfo   = "contact_info"
	KeyAdminSettings = "admin_settings"
)

// AdminSettings is the process-wide admin configuration, including the pricing
// config (HourlyRate/Currency) read by the pricing engine.
type AdminSettings struct {
	HourlyRate         int64  `bson:"hourly_rate" json:"hourly_rate"` // Price per custom-booked hour
	Currency           string `bson:"currency" json:"currency"`       // Display label, not used in arithmetic
	WhatsAppNumber     string `bson:"whatsapp_number" json:"whatsapp_number"`
	AdminPassword      string `bson:"admin_password" json:"-"` // Single shared credential; never serialized out
	EmailNotifications bool   `bson:"email_notifications" json:"email_notifications"`
	MaintenanceMode    bool   `bson:"maintenance_mode" json:"maintenance_mode"`
}

// SiteSettings holds the informational copy rendered by the public pages.
type SiteSettings struct {
	SiteName         string `bson:"site_name" json:"site_name"`
	SiteDescription  string `bson:"site_description" json:"site_description"`
	Logo             string `bson:"logo,omitempty" json:"logo,omitempty"`
	HeroTitle        string `bson:"hero_title" json:"hero_title"`
	HeroSubtitle     string `bson:"hero_subtitle" json:"hero_subtitle"`
	HeroImage        string `bson:"hero_image,omitempty" json:"hero_image,omitempty"`
	AboutTitle       string `bson:"about_title" json:"about_title"`
	AboutDescription string `bson:"about_description" json:"about_description"`
	Vision           string `bson:"vision" json:"vision"`
	Mission          string `bson:"mission" json:"mission"`
	FooterText       string `bson:"footer_text" json:"footer_text"`
}

// WorkingHours is the display schedule on the contact page.
type WorkingHours struct {
	Weekdays string `bson:"weekdays" json:"weekdays"`
	Weekend  string `bson:"weekend" json:"weekend"`
}

// ContactInfo holds the public contact channels. WhatsApp here is the number
// shown on the site; the hand-off target number lives in AdminSettings.
type ContactInfo struct {
	Phone        string       `bson:"phone" json:"phone"`
	Email        string       `bson:"email" json:"email"`
	WhatsApp     string       `bson:"whatsapp" json:"whatsapp"`
	Address      string       `bson:"address" json:"address"`
	WorkingHours WorkingHours `bson:"working_hours" json:"working_hours"`
}

// SettingsRepository is the durable key -> JSON document store backing the
// three settings documents. Loads fall back to the given default when the key
// is absent; a stored document that fails to decode is reported as ErrCorrupt
// rather than silently treated as absent.
type SettingsRepository interface {
	LoadAdminSettings(ctx context.Context) (*AdminSettings, error)
	SaveAdminSettings(ctx context.Context, s *AdminSettings) error
	LoadSiteSettings(ctx context.Context) (*SiteSettings, error)
	SaveSiteSettings(ctx context.Context, s *SiteSettings) error
	LoadContactInfo(ctx context.Context) (*ContactInfo, error)
	SaveContactInfo(ctx context.Context, c *ContactInfo) error
}
