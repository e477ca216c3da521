package service

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ufuqacademy/ufuq/internal/domain"
)

func TestOrderLinkFormat(t *testing.T) {
	settings := newFakeSettingsRepo()
	admin, _ := settings.LoadAdminSettings(context.Background())
	admin.WhatsAppNumber = "+966 50 123 4567"
	require.NoError(t, settings.SaveAdminSettings(context.Background(), admin))

	notifier := NewWhatsAppNotifier(settings)
	link, err := notifier.OrderLink(context.Background(), &domain.Order{
		CustomerName: "Sara Ahmed",
		Email:        "sara@example.com",
		Phone:        "0501234567",
		PackageName:  "Pro package",
		Hours:        25,
		TotalPrice:   1100,
	})
	require.NoError(t, err)

	// Number collapses to digits only
	assert.True(t, strings.HasPrefix(link, "https://wa.me/966501234567?text="), link)

	// Text survives a round trip through URL encoding
	u, err := url.Parse(link)
	require.NoError(t, err)
	text := u.Query().Get("text")
	assert.Contains(t, text, "Sara Ahmed")
	assert.Contains(t, text, "Pro package")
	assert.Contains(t, text, "Hours: 25")
	assert.Contains(t, text, "Total: 1100")
}

func TestOrderLinkNoNumberConfigured(t *testing.T) {
	settings := newFakeSettingsRepo()
	admin, _ := settings.LoadAdminSettings(context.Background())
	admin.WhatsAppNumber = ""
	require.NoError(t, settings.SaveAdminSettings(context.Background(), admin))

	notifier := NewWhatsAppNotifier(settings)
	_, err := notifier.OrderLink(context.Background(), &domain.Order{})
	assert.Error(t, err)
}

func TestContactLinkFormat(t *testing.T) {
	notifier := NewWhatsAppNotifier(newFakeSettingsRepo())

	link, err := notifier.ContactLink(context.Background(), &domain.ContactMessage{
		Name:    "Omar",
		Email:   "omar@example.com",
		Subject: "Question about packages",
		Message: "Do you offer evening sessions?",
	})
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	text := u.Query().Get("text")
	assert.Contains(t, text, "Omar")
	assert.Contains(t, text, "Question about packages")
	assert.Contains(t, text, "Do you offer evening sessions?")
}
