package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dj-booking-sync/config"
	"dj-booking-sync/constants"
	"dj-booking-sync/container"
	"dj-booking-sync/middleware"
	bookingModel "dj-booking-sync/models/booking"
	log_model "dj-booking-sync/models/log"
	"dj-booking-sync/testutil"
)

const adminSecret = "route-test-secret"

type crmStub struct {
	mu    sync.Mutex
	calls []string
}

func (s *crmStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.calls = append(s.calls, r.Method+" "+r.URL.Path)
	s.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/contacts/":
		_, _ = w.Write([]byte(`{"contacts":[]}`))
	case r.Method == http.MethodPost && r.URL.Path == "/contacts/":
		_, _ = w.Write([]byte(`{"contact":{"id":"c-1"}}`))
	case r.Method == http.MethodPost && r.URL.Path == "/opportunities/":
		_, _ = w.Write([]byte(`{"opportunity":{"id":"o-1"}}`))
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/opportunities/"):
		w.WriteHeader(http.StatusOK)
	case strings.HasPrefix(r.URL.Path, "/hooks/"):
		w.WriteHeader(http.StatusOK)
	case r.URL.Path == "/locations/loc-1":
		_, _ = w.Write([]byte(`{"location":{"id":"loc-1","name":"Bass Drop DJs"}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *crmStub) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

type stack struct {
	app  *fiber.App
	c    *container.Container
	stub *crmStub
}

func newStack(t *testing.T) *stack {
	t.Helper()
	stub := &crmStub{}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		App: config.AppConfig{FrontendURL: "*", AdminSecret: adminSecret},
		CRM: config.CRMConfig{
			APIKey:     "key",
			LocationID: "loc-1",
			Enabled:    true,
			BaseURL:    srv.URL,
			Timeout:    5 * time.Second,
		},
		Stripe: config.StripeConfig{TestMode: true, Currency: "GBP"},
	}
	c := container.NewContainer(cfg, testutil.NewSQLiteDB(t))
	go c.Audit.ProcessLog()

	app := fiber.New()
	SetupRoutes(app, c)
	return &stack{app: app, c: c, stub: stub}
}

func token(t *testing.T, permissions ...string) string {
	t.Helper()
	tok, err := middleware.IssueToken(adminSecret, "test", permissions, time.Hour)
	require.NoError(t, err)
	return tok
}

func (s *stack) request(t *testing.T, method, path, bearer, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newStack(t)
	defer s.c.Audit.Close()

	status, body := s.request(t, http.MethodPost, "/api/admin/sync-all", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])

	status, _ = s.request(t, http.MethodPost, "/api/admin/sync-all", token(t, constants.PermEventsPublish), "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.request(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status)
}

func TestBookingLifecycleThroughRoutes(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)

	b := &bookingModel.Booking{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		EventDate: "2026-09-12",
		EventType: "Wedding",
		TotalCost: 900,
		Status:    bookingModel.BookingStatusPending,
	}
	require.NoError(t, s.c.Bookings.Create(ctx, b))

	status, _ := s.request(t, http.MethodPost, "/api/bookings/1/events", token(t, constants.PermEventsPublish),
		`{"event":"booking_created"}`)
	require.Equal(t, http.StatusOK, status)

	got, err := s.c.Bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.True(t, got.HasContact())
	require.True(t, got.HasOpportunity())
	assert.Equal(t, "c-1", *got.RemoteContactID)
	assert.Equal(t, "o-1", *got.RemoteOpportunityID)
	assert.Equal(t, []string{
		"GET /contacts/",
		"POST /contacts/",
		"POST /opportunities/",
		"POST /hooks/booking-received",
	}, s.stub.Calls())

	status, _ = s.request(t, http.MethodPost, "/api/bookings/1/events", token(t, constants.PermEventsPublish),
		`{"event":"booking_status_changed","status":"cancelled"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, s.stub.Calls(), "PUT /opportunities/o-1")

	admin := token(t, constants.AdminPermissions...)
	status, body := s.request(t, http.MethodGet, "/api/admin/sync-status", admin, "")
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["synced_today"])
	assert.Equal(t, float64(0), data["unsynced"])

	status, body = s.request(t, http.MethodPost, "/api/admin/process-payment", admin, `{"booking_id":1,"amount":150}`)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, body["message"], "Stripe is not configured")

	status, body = s.request(t, http.MethodPost, "/api/admin/test-connection", admin, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["message"], "Bass Drop DJs")

	s.c.Audit.Close()

	var rows []log_model.Log
	require.NoError(t, s.c.DB.Order("id").Find(&rows).Error)
	require.Len(t, rows, 5)
	assert.Equal(t, "/api/bookings/1/events", rows[0].URL)
	assert.Equal(t, http.StatusOK, rows[0].StatusCode)
	assert.Equal(t, "test", rows[0].Actor)
	assert.NotContains(t, rows[0].RequestHeaders, "Bearer ")
}
