package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ufuqacademy/ufuq/internal/config"
	"github.com/ufuqacademy/ufuq/internal/repository"
	"github.com/ufuqacademy/ufuq/internal/server"
)

// The flow below walks the whole public booking wizard and then the admin side
// against a real Mongo container. Responses are decoded into maps so the test
// tracks the wire format rather than internal structs.

func TestGoldenPath(t *testing.T) {
	// 1. Setup Infrastructure
	// MongoDB (Container)
	db := SetupTestDB(t)

	// Redis (Miniredis for speed/simplicity, or Container)
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	// Config (Minimal)
	cfg := &config.Config{}
	cfg.Server.MaxUploadSizeMB = 10
	cfg.JWT.Secret = "test-secret-key-123"
	cfg.JWT.AccessTokenExpiry = 15 * time.Minute
	cfg.JWT.RefreshTokenExpiry = 24 * time.Hour
	cfg.Booking.DraftTTL = time.Hour
	cfg.Booking.IdempotencyTTL = 10 * time.Minute

	// Seed the catalog the way cmd/main.go does on boot
	ctx := context.Background()
	require.NoError(t, repository.NewMongoPackageRepository(db).SeedDefaults(ctx))
	require.NoError(t, repository.NewMongoSpecialtyRepository(db).SeedDefaults(ctx))

	// 2. Initialize App
	app := server.NewApp(server.AppDependencies{
		Config:      cfg,
		MongoDB:     db,
		RedisClient: redisClient,
		FileRepo:    NewMemoryFileRepo(),
	})

	// Helper for requests
	request := func(method, path, token string, body interface{}, headers ...map[string]string) *http.Response {
		var bodyReader io.Reader
		if body != nil {
			jsonBytes, _ := json.Marshal(body)
			bodyReader = bytes.NewReader(jsonBytes)
		}
		req, _ := http.NewRequest(method, path, bodyReader)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		for _, h := range headers {
			for k, v := range h {
				req.Header.Set(k, v)
			}
		}
		resp, err := app.Test(req, -1) // -1 disables timeout
		require.NoError(t, err)
		return resp
	}
	decode := func(resp *http.Response) map[string]interface{} {
		var data map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
		return data
	}

	// ==========================================
	// STEP 1: Public catalog is visible
	// ==========================================
	resp := request("GET", "/v1/packages", "", nil)
	assert.Equal(t, 200, resp.StatusCode)

	var packages []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&packages))
	require.Len(t, packages, 4)

	resp = request("GET", "/v1/specialties", "", nil)
	assert.Equal(t, 200, resp.StatusCode)

	fmt.Println("✓ Public catalog served")

	// ==========================================
	// STEP 2: Booking wizard, start to submit
	// ==========================================
	resp = request("POST", "/v1/booking/drafts", "", nil)
	require.Equal(t, 201, resp.StatusCode)
	draft := decode(resp)
	draftID := draft["id"].(string)
	require.NotEmpty(t, draftID)
	assert.Equal(t, float64(1), draft["step"])

	// Advancing without a selection is a no-op
	resp = request("POST", "/v1/booking/drafts/"+draftID+"/next", "", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(1), decode(resp)["step"])

	// Pick the Advanced Package
	resp = request("PUT", "/v1/booking/drafts/"+draftID+"/selection", "", map[string]interface{}{
		"kind":       "fixed",
		"package_id": "2",
	})
	require.Equal(t, 200, resp.StatusCode)

	resp = request("POST", "/v1/booking/drafts/"+draftID+"/next", "", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(2), decode(resp)["step"])

	// Invalid customer details keep the draft on step 2 with field errors
	resp = request("POST", "/v1/booking/drafts/"+draftID+"/next", "", nil)
	require.Equal(t, 200, resp.StatusCode)
	draft = decode(resp)
	assert.Equal(t, float64(2), draft["step"])
	require.NotNil(t, draft["errors"])

	resp = request("PUT", "/v1/booking/drafts/"+draftID+"/customer", "", map[string]string{
		"name":                    "Sara Ahmed",
		"email":                   "sara@example.com",
		"phone":                   "+966 50 123 4567",
		"health_authority_number": "HA-12345",
		"specialty":               "Nursing",
	})
	require.Equal(t, 200, resp.StatusCode)

	// Quote preview matches the catalog price
	resp = request("GET", "/v1/booking/drafts/"+draftID+"/quote", "", nil)
	require.Equal(t, 200, resp.StatusCode)
	quote := decode(resp)
	assert.Equal(t, float64(25), quote["hours"])
	assert.Equal(t, float64(1100), quote["price"])

	resp = request("POST", "/v1/booking/drafts/"+draftID+"/next", "", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(3), decode(resp)["step"])

	// Submit, with a correlation id so a duplicate click replays instead of double-booking
	correlationID := "e2e-submit-1"
	resp = request("POST", "/v1/booking/drafts/"+draftID+"/submit", "", nil,
		map[string]string{"X-Correlation-ID": correlationID})
	require.Equal(t, 201, resp.StatusCode)
	result := decode(resp)
	order := result["order"].(map[string]interface{})
	orderID := order["id"].(string)
	require.NotEmpty(t, orderID)
	assert.Equal(t, "pending", order["status"])
	assert.Equal(t, float64(1100), order["total_price"])
	assert.Contains(t, result["whatsapp_url"], "https://wa.me/")

	fmt.Println("✓ Booking submitted:", orderID)

	// Replay with the same correlation id returns the cached response. The
	// cache write is fire-and-forget, so give it a moment to land.
	time.Sleep(100 * time.Millisecond)
	resp = request("POST", "/v1/booking/drafts/"+draftID+"/submit", "", nil,
		map[string]string{"X-Correlation-ID": correlationID})
	require.Equal(t, 201, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("X-Idempotent-Replay"))
	replay := decode(resp)
	assert.Equal(t, orderID, replay["order"].(map[string]interface{})["id"])

	// The draft is gone once the order exists
	resp = request("GET", "/v1/booking/drafts/"+draftID, "", nil)
	assert.Equal(t, 404, resp.StatusCode)

	fmt.Println("✓ Duplicate submit replayed, draft consumed")

	// ==========================================
	// STEP 3: Visitor leaves a contact message
	// ==========================================
	resp = request("POST", "/v1/contact", "", map[string]string{
		"name":    "Khalid",
		"message": "Do you offer evening sessions?",
	})
	require.Equal(t, 201, resp.StatusCode)

	// ==========================================
	// STEP 4: Admin login and order management
	// ==========================================
	// Admin routes reject anonymous callers
	resp = request("GET", "/v1/admin/orders", "", nil)
	assert.Equal(t, 401, resp.StatusCode)

	resp = request("POST", "/v1/auth/login", "", map[string]string{
		"password": "admin123",
	})
	require.Equal(t, 200, resp.StatusCode)
	loginData := decode(resp)
	adminToken := loginData["token"].(string)
	require.NotEmpty(t, adminToken)

	fmt.Println("✓ Admin logged in")

	resp = request("GET", "/v1/admin/orders", "", nil, map[string]string{
		"Authorization": "Bearer " + adminToken,
	})
	require.Equal(t, 200, resp.StatusCode)
	var orders []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "Sara Ahmed", orders[0]["customer_name"])

	resp = request("PATCH", "/v1/admin/orders/"+orderID+"/status", adminToken, map[string]string{
		"status": "confirmed",
	})
	require.Equal(t, 200, resp.StatusCode)

	resp = request("PATCH", "/v1/admin/orders/"+orderID+"/status", adminToken, map[string]string{
		"status": "teleported",
	})
	assert.Equal(t, 400, resp.StatusCode)

	// Any known status may follow any other, backward moves included
	for _, status := range []string{"completed", "pending", "cancelled", "confirmed"} {
		resp = request("PATCH", "/v1/admin/orders/"+orderID+"/status", adminToken, map[string]string{
			"status": status,
		})
		require.Equal(t, 200, resp.StatusCode)
	}

	fmt.Println("✓ Order confirmed")

	// ==========================================
	// STEP 5: Dashboard reflects the confirmed order
	// ==========================================
	resp = request("GET", "/v1/admin/stats", adminToken, nil)
	require.Equal(t, 200, resp.StatusCode)
	stats := decode(resp)
	assert.Equal(t, float64(1), stats["total_orders"])
	assert.Equal(t, float64(1100), stats["total_revenue"])
	assert.Equal(t, float64(1), stats["unread_messages"])

	fmt.Println("✓ Dashboard aggregated")

	// ==========================================
	// STEP 6: Admin edits pricing settings
	// ==========================================
	resp = request("GET", "/v1/admin/settings", adminToken, nil)
	require.Equal(t, 200, resp.StatusCode)
	settings := decode(resp)
	assert.Equal(t, float64(50), settings["hourly_rate"])

	resp = request("PUT", "/v1/admin/settings", adminToken, map[string]interface{}{
		"hourly_rate":     75,
		"currency":        "SAR",
		"whatsapp_number": "+966 50 000 0000",
	})
	require.Equal(t, 200, resp.StatusCode)

	// A custom booking now prices at the new rate
	resp = request("POST", "/v1/booking/drafts", "", nil)
	require.Equal(t, 201, resp.StatusCode)
	draftID = decode(resp)["id"].(string)

	resp = request("PUT", "/v1/booking/drafts/"+draftID+"/selection", "", map[string]interface{}{
		"kind":  "custom",
		"hours": 20,
	})
	require.Equal(t, 200, resp.StatusCode)

	resp = request("GET", "/v1/booking/drafts/"+draftID+"/quote", "", nil)
	require.Equal(t, 200, resp.StatusCode)
	quote = decode(resp)
	assert.Equal(t, float64(20*75), quote["price"])

	fmt.Println("✓ Rate change priced a custom booking")
}
