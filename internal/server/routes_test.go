package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"petlove/internal/config"
	"petlove/internal/middlewares"
	"petlove/internal/models"
	"petlove/internal/utils"
)

// MockDBService is a mock implementation of database.Service for testing
type MockDBService struct{}

func (m *MockDBService) Health() map[string]string {
	return map[string]string{"status": "up", "message": "Mock DB is healthy"}
}

func (m *MockDBService) Client() *mongo.Client {
	return nil
}

func (m *MockDBService) Database() *mongo.Database {
	return nil
}

func (m *MockDBService) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (m *MockDBService) Close(ctx context.Context) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Env:            "test",
		LogLevel:       "info",
		Port:           5000,
		AllowedOrigins: "*",
		JWTSecret:      "test-secret",
		JWTExpiry:      time.Hour,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		SMTPPort:       587,
	}
}

func newTestServer() *Server {
	return newServer(testConfig(), &MockDBService{})
}

func TestRootHandler(t *testing.T) {
	srv := httptest.NewServer(newTestServer().RegisterRoutes())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"PetLove API Running!"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestRoutesAreRegistered(t *testing.T) {
	s := newTestServer()
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()
	s.registerUserRoutes(api)
	s.registerPetRoutes(api)
	s.registerOrderRoutes(api)
	s.registerAdoptionRoutes(api)
	s.registerAppointmentRoutes(api)
	s.registerVisitRoutes(api)
	s.registerStatsRoutes(api)

	id := models.NewID().Hex()
	tests := []struct {
		method, path string
	}{
		{http.MethodPost, "/api/users/register"},
		{http.MethodPost, "/api/users/login"},
		{http.MethodPost, "/api/users/forgot-password"},
		{http.MethodPost, "/api/users/reset-password"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodPatch, "/api/users/me"},
		{http.MethodGet, "/api/users"},
		{http.MethodPost, "/api/users/"},
		{http.MethodDelete, "/api/users/" + id},
		{http.MethodGet, "/api/pets"},
		{http.MethodGet, "/api/pets/"},
		{http.MethodPost, "/api/pets"},
		{http.MethodPut, "/api/pets/" + id},
		{http.MethodGet, "/api/orders"},
		{http.MethodPatch, "/api/orders/" + id + "/status"},
		{http.MethodDelete, "/api/orders/" + id},
		{http.MethodPost, "/api/adoptions/"},
		{http.MethodPatch, "/api/adoptions/" + id + "/status"},
		{http.MethodGet, "/api/appointments"},
		{http.MethodPatch, "/api/appointments/" + id + "/status"},
		{http.MethodGet, "/api/visits/" + id},
		{http.MethodPatch, "/api/visits/" + id},
		{http.MethodGet, "/api/stats"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var match mux.RouteMatch
			req := httptest.NewRequest(tt.method, tt.path, nil)
			assert.True(t, router.Match(req, &match), "no route for %s %s", tt.method, tt.path)
			assert.NoError(t, match.MatchErr)
		})
	}
}

func TestMalformedIDIsRejected(t *testing.T) {
	h := newTestServer().RegisterRoutes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pets/not-an-id", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid ID format"}`, rec.Body.String())
}

func TestMeRequiresToken(t *testing.T) {
	h := newTestServer().RegisterRoutes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStatsRequiresToken(t *testing.T) {
	h := newTestServer().RegisterRoutes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserWritesRequireOwnerOrAdmin(t *testing.T) {
	h := newTestServer().RegisterRoutes()
	owner := &models.User{Base: models.NewBase(), Role: models.RoleCustomer}
	stranger := &models.User{Base: models.NewBase(), Role: models.RoleCustomer}
	token, err := utils.GenerateJWT(stranger, testConfig().JWTSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		method string
		auth   string
		want   int
	}{
		{http.MethodPut, "", http.StatusUnauthorized},
		{http.MethodPatch, "", http.StatusUnauthorized},
		{http.MethodDelete, "", http.StatusUnauthorized},
		{http.MethodPut, "Bearer " + token, http.StatusForbidden},
		{http.MethodPatch, "Bearer " + token, http.StatusForbidden},
		{http.MethodDelete, "Bearer " + token, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %d", tt.method, tt.want), func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/users/"+owner.ID.Hex(), strings.NewReader(`{"name":"Mallory"}`))
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAllowedOriginsFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.AllowedOrigins = "https://shop.petlove.example, https://admin.petlove.example"
	h := newServer(cfg, &MockDBService{}).RegisterRoutes()

	tests := []struct {
		origin string
		want   string
	}{
		{"https://shop.petlove.example", "https://shop.petlove.example"},
		{"https://admin.petlove.example", "https://admin.petlove.example"},
		{"https://evil.example", ""},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/pets", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestPreflight(t *testing.T) {
	h := newTestServer().RegisterRoutes()

	req := httptest.NewRequest(http.MethodOptions, "/api/pets", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRouteIsJSON(t *testing.T) {
	h := newTestServer().RegisterRoutes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer().RegisterRoutes()

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRecoveredPanicIsLoggedAndCounted(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	s := newTestServer()
	r := mux.NewRouter()
	r.Use(middlewares.Instrument)
	r.Use(middlewares.Recover)
	r.HandleFunc("/api/explode", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	before := testutil.ToFloat64(utils.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/explode", "500"))

	rec := httptest.NewRecorder()
	s.wrap(r).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/explode", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(utils.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/explode", "500")))

	var accessLine map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["message"] == "HTTP request" {
			accessLine = entry
		}
	}
	require.NotNil(t, accessLine, "no access log line for the panicking request")
	assert.Equal(t, float64(http.StatusInternalServerError), accessLine["status"])
	assert.Equal(t, "error", accessLine["level"])
	assert.Equal(t, rec.Header().Get("X-Request-ID"), accessLine["request_id"])
}

func TestSwaggerDocs(t *testing.T) {
	h := newTestServer().RegisterRoutes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Info struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "PetLove API", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	assert.Contains(t, doc.Paths["/api/users/{id}"], "delete")
	assert.Contains(t, doc.Paths["/api/appointments"], "get")
	assert.Contains(t, doc.Paths["/api/stats"], "get")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "swagger-ui")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
}
