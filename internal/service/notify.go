package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ufuqacademy/ufuq/internal/domain"
)

// Notifier hands a submitted order off to an external messaging channel.
// The hand-off is one-way and best-effort: the order is already persisted when
// this runs, and a failure here never rolls it back.
type Notifier interface {
	OrderLink(ctx context.Context, order *domain.Order) (string, error)
	ContactLink(ctx context.Context, msg *domain.ContactMessage) (string, error)
}

// WhatsAppNotifier builds pre-filled wa.me links for the configured admin
// number. The caller (a browser, ultimately) opens the link; nothing is read
// back from the channel.
type WhatsAppNotifier struct {
	settingsRepo domain.SettingsRepository
}

// NewWhatsAppNotifier creates a new WhatsApp notifier
func NewWhatsAppNotifier(settingsRepo domain.SettingsRepository) *WhatsAppNotifier {
	return &WhatsAppNotifier{settingsRepo: settingsRepo}
}

// OrderLink formats the order summary and returns the wa.me hand-off URL.
func (n *WhatsAppNotifier) OrderLink(ctx context.Context, order *domain.Order) (string, error) {
	settings, err := n.settingsRepo.LoadAdminSettings(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load admin settings: %w", err)
	}

	now := time.Now()
	var b strings.Builder
	b.WriteString("New training request - Ufuq platform\n\n")
	b.WriteString("Trainee details\n")
	fmt.Fprintf(&b, "Name: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n", order.Email)
	fmt.Fprintf(&b, "Phone: %s\n", order.Phone)
	fmt.Fprintf(&b, "Health authority no: %s\n", order.HealthAuthorityNumber)
	fmt.Fprintf(&b, "Specialty: %s\n\n", order.Specialty)
	b.WriteString("Package details\n")
	fmt.Fprintf(&b, "Package: %s\n", order.PackageName)
	fmt.Fprintf(&b, "Hours: %d\n", order.Hours)
	fmt.Fprintf(&b, "Total: %d %s\n\n", order.TotalPrice, settings.Currency)
	fmt.Fprintf(&b, "Date: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "Time: %s\n", now.Format("15:04"))

	return buildWhatsAppURL(settings.WhatsAppNumber, b.String())
}

// ContactLink formats a contact-form submission as a wa.me hand-off URL.
func (n *WhatsAppNotifier) ContactLink(ctx context.Context, msg *domain.ContactMessage) (string, error) {
	settings, err := n.settingsRepo.LoadAdminSettings(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load admin settings: %w", err)
	}

	var b strings.Builder
	b.WriteString("New contact message - Ufuq platform\n\n")
	fmt.Fprintf(&b, "Name: %s\n", msg.Name)
	fmt.Fprintf(&b, "Email: %s\n", msg.Email)
	if msg.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", msg.Phone)
	}
	fmt.Fprintf(&b, "Subject: %s\n\n", msg.Subject)
	b.WriteString(msg.Message)

	return buildWhatsAppURL(settings.WhatsAppNumber, b.String())
}

// buildWhatsAppURL assembles https://wa.me/<digits>?text=<encoded>. The number
// is reduced to digits only; wa.me rejects formatted numbers.
func buildWhatsAppURL(number, text string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		return "", fmt.Errorf("no WhatsApp number configured")
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(text)), nil
}
