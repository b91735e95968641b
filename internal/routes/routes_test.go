package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-panel/internal/audit"
	"github.com/BruksfildServices01/booking-panel/internal/backend"
	"github.com/BruksfildServices01/booking-panel/internal/config"
	"github.com/BruksfildServices01/booking-panel/internal/handlers"
	infraRepo "github.com/BruksfildServices01/booking-panel/internal/infra/repository"
	"github.com/BruksfildServices01/booking-panel/internal/metrics"
	"github.com/BruksfildServices01/booking-panel/internal/middleware"
	"github.com/BruksfildServices01/booking-panel/internal/validators"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validators.Register(); err != nil {
		panic(err)
	}
	m.Run()
}

// ======================================================
// FAKE BACKEND
// ======================================================

type fakeBackend struct {
	mu     sync.Mutex
	calls  map[string]int
	bodies map[string]string
	auth   map[string]string

	role   string
	status string
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	fb := &fakeBackend{
		calls:  map[string]int{},
		bodies: map[string]string{},
		auth:   map[string]string{},
		role:   "owner",
		status: "Waiting",
	}
	srv := httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(srv.Close)
	return fb, srv
}

func (fb *fakeBackend) count(key string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.calls[key]
}

func (fb *fakeBackend) body(key string) string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.bodies[key]
}

func (fb *fakeBackend) authOf(key string) string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.auth[key]
}

func (fb *fakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	raw, _ := io.ReadAll(r.Body)

	fb.mu.Lock()
	fb.calls[key]++
	fb.bodies[key] = string(raw)
	fb.auth[key] = r.Header.Get("Authorization")
	role, status := fb.role, fb.status
	fb.mu.Unlock()

	reply := func(v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	switch key {
	case "GET /cities/1":
		reply(map[string]any{
			"business_name": "Acme",
			"branches": map[string]any{
				"Kyiv": []map[string]any{{"id": 5, "name": "Main", "locality": "Kyiv", "address": "Khreshchatyk 1"}},
			},
		})
	case "GET /branches/5/services_by_position":
		reply([]map[string]any{{
			"position_id":   2,
			"position_name": "Barber",
			"services":      []map[string]any{{"id": 9, "name": "Haircut", "duration": 30}},
		}})
	case "GET /branches/5/services/9/workers":
		reply([]map[string]any{{"id": 7, "name": "Ivan", "position_id": 2}})
	case "GET /workers/7/services/9/available_slots":
		reply(map[string][]string{"2024-06-10": {"10:00", "11:00"}, "2024-06-11": {"09:00"}})
	case "POST /appointments":
		reply(map[string]any{"message": "Appointment created", "appointment_id": 42})
	case "GET /appointments/42":
		reply(map[string]any{
			"id":       42,
			"worker":   map[string]any{"id": 7, "name": "Ivan"},
			"service":  map[string]any{"id": 9, "name": "Haircut", "duration": 30},
			"branch":   map[string]any{"id": 5, "name": "Main", "locality": "Kyiv", "address": "Khreshchatyk 1"},
			"datetime": "2024-06-10T10:00:00",
			"status":   status,
			"price":    300,
		})
	case "PATCH /appointments/42/cancel":
		w.WriteHeader(http.StatusOK)
	case "POST /login":
		reply(map[string]any{"access_token": signedToken(time.Hour), "role": role, "id": 3})
	case "GET /owner/businesses":
		reply([]map[string]any{{"id": 1, "name": "Acme"}})
	case "POST /owner/businesses":
		w.WriteHeader(http.StatusCreated)
		reply(map[string]any{"message": "created", "id": 2})
	case "GET /owner/branches/5/positions":
		reply([]map[string]any{{"id": 2, "name": "Barber"}})
	default:
		http.NotFound(w, r)
	}
}

func signedToken(ttl time.Duration) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "3",
		"exp": time.Now().Add(ttl).Unix(),
	})
	s, _ := tok.SignedString([]byte("backend-secret"))
	return s
}

// ======================================================
// ROUTER
// ======================================================

func newRouter(t *testing.T, backendURL string) *gin.Engine {
	t.Helper()

	logger := zerolog.Nop()
	dispatcher := audit.NewDispatcher(audit.NewLogSink(logger), logger, 16)
	t.Cleanup(dispatcher.Close)

	cfg := &config.Config{
		WizardTTL:         time.Hour,
		SessionTTL:        time.Hour,
		Timezone:          "Europe/Kyiv",
		DefaultBusinessID: 1,
	}

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config:  cfg,
		Logger:  logger,
		Backend: backend.New(backendURL, 2*time.Second, logger),
		Store:   infraRepo.NewMemoryStore(),
		Audit:   dispatcher,
		Metrics: metrics.New(nil),
		Health:  map[string]handlers.Pinger{},
	})
	return r
}

type request struct {
	method string
	path   string
	body   string
	cookie []*http.Cookie
}

func do(r *gin.Engine, req request) *httptest.ResponseRecorder {
	var body io.Reader
	if req.body != "" {
		body = strings.NewReader(req.body)
	}
	httpReq := httptest.NewRequest(req.method, req.path, body)
	if req.body != "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for _, c := range req.cookie {
		httpReq.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httpReq)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// ======================================================
// PUBLIC BOOKING
// ======================================================

func TestServiceFirstBookingEndToEnd(t *testing.T) {
	fb, srv := newFakeBackend(t)
	r := newRouter(t, srv.URL)

	w := do(r, request{method: http.MethodPost, path: "/api/public/wizard", body: `{"branch_id":5}`})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	visitor := w.Result().Cookies()
	id := decode(t, w)["id"].(string)
	base := "/api/public/wizard/" + id

	steps := []struct {
		path string
		body string
	}{
		{"/flow", `{"flow":"B"}`},
		{"/service", `{"service_id":9,"position_id":2}`},
		{"/worker", `{"worker_id":7}`},
		{"/date", `{"date":"2024-06-10"}`},
		{"/slot", `{"slot":"10:00"}`},
	}
	for _, s := range steps {
		w = do(r, request{method: http.MethodPost, path: base + s.path, body: s.body, cookie: visitor})
		require.Equal(t, http.StatusOK, w.Code, "%s: %s", s.path, w.Body.String())
	}

	w = do(r, request{method: http.MethodPost, path: base + "/submit", body: `{"customer_name":" John ","customer_phone":"123"}`, cookie: visitor})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	out := decode(t, w)
	assert.EqualValues(t, 42, out["appointment_id"])
	assert.Equal(t, "/api/public/appointments/42", out["confirmation_url"])

	assert.JSONEq(t, `{
		"worker_id": 7,
		"service_id": 9,
		"datetime": "2024-06-10T10:00:00",
		"customer_name": "John",
		"customer_phone": "123",
		"branch_id": 5
	}`, fb.body("POST /appointments"))
}

func TestWizardGuardsAnswerWithMessages(t *testing.T) {
	fb, srv := newFakeBackend(t)
	r := newRouter(t, srv.URL)

	w := do(r, request{method: http.MethodPost, path: "/api/public/wizard", body: `{"branch_id":5}`})
	require.Equal(t, http.StatusCreated, w.Code)
	base := "/api/public/wizard/" + decode(t, w)["id"].(string)

	w = do(r, request{method: http.MethodPost, path: base + "/date", body: `{"date":"2024-06-10"}`})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_step", decode(t, w)["error_code"])

	for _, s := range []struct{ path, body string }{
		{"/flow", `{"flow":"service"}`},
		{"/service", `{"service_id":9,"position_id":2}`},
		{"/worker", `{"worker_id":7}`},
	} {
		w = do(r, request{method: http.MethodPost, path: base + s.path, body: s.body})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w = do(r, request{method: http.MethodPost, path: base + "/date", body: `{"date":"2024-06-12"}`})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "date_unavailable", decode(t, w)["error_code"])

	w = do(r, request{method: http.MethodPost, path: base + "/date", body: `{"date":"2024-06-10"}`})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, request{method: http.MethodPost, path: base + "/slot", body: `{"slot":"09:00"}`})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please select a date and time slot", decode(t, w)["message"])

	w = do(r, request{method: http.MethodPost, path: base + "/slot", body: `{"slot":"10:00"}`})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, request{method: http.MethodPost, path: base + "/submit", body: `{"customer_name":"  ","customer_phone":"123"}`})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please fill in all fields", decode(t, w)["message"])

	assert.Zero(t, fb.count("POST /appointments"))
}

func TestWizardCalendarMarksSelectableDays(t *testing.T) {
	_, srv := newFakeBackend(t)
	r := newRouter(t, srv.URL)

	w := do(r, request{method: http.MethodPost, path: "/api/public/wizard", body: `{"branch_id":5}`})
	base := "/api/public/wizard/" + decode(t, w)["id"].(string)
	for _, s := range []struct{ path, body string }{
		{"/flow", `{"flow":"B"}`},
		{"/service", `{"service_id":9,"position_id":2}`},
		{"/worker", `{"worker_id":7}`},
	} {
		require.Equal(t, http.StatusOK, do(r, request{method: http.MethodPost, path: base + s.path, body: s.body}).Code)
	}

	w = do(r, request{method: http.MethodGet, path: base + "/calendar"})
	require.Equal(t, http.StatusOK, w.Code)

	var cal struct {
		Month string `json:"month"`
		Days  []struct {
			Date       string `json:"date"`
			Selectable bool   `json:"selectable"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cal))
	assert.Equal(t, "2024-06", cal.Month)
	require.Len(t, cal.Days, 30)

	selectable := map[string]bool{}
	for _, d := range cal.Days {
		if d.Selectable {
			selectable[d.Date] = true
		}
	}
	assert.Equal(t, map[string]bool{"2024-06-10": true, "2024-06-11": true}, selectable)

	w = do(r, request{method: http.MethodGet, path: base + "/calendar?month=June"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownWizardAndBranch(t *testing.T) {
	_, srv := newFakeBackend(t)
	r := newRouter(t, srv.URL)

	w := do(r, request{method: http.MethodGet, path: "/api/public/wizard/nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "wizard_not_found", decode(t, w)["error_code"])

	w = do(r, request{method: http.MethodPost, path: "/api/public/wizard", body: `{"branch_id":99}`})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "branch_not_found", decode(t, w)["error_code"])
}

func TestBackendFailureKeepsUserMessage(t *testing.T) {
	_, srv := newFakeBackend(t)
	r := newRouter(t, srv.URL)

	w := do(r, request{method: http.MethodPost, path: "/api/public/wizard", body: `{"branch_id":5}`})
	base := "/api/public/wizard/" + decode(t, w)["id"].(string)

	// the fake backend has no /branches/5/workers route
	w = do(r, request{method: http.MethodPost, path: base + "/flow", body: `{"flow":"A"}`})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	out := decode(t, w)
	assert.Equal(t, "load_workers", out["error_code"])
	assert.Equal(t, "Failed to load workers", out["message"])

	w = do(r, request{method: http.MethodGet, path: base})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "choose_flow", decode(t, w)["step"])
}

// ======================================================
// CONFIRMATION
// ======================================================

func TestConfirmationCancelOnce(t *testing.T) {
	fb, srv := newFakeBackend(t)
	r := newRouter(t, srv.URL)

	w := do(r, request{method: http.MethodGet, path: "/api/public/appointments/42"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	visitor := w.Result().Cookies()
	view := decode(t, w)
	assert.Equal(t, "Ivan", view["worker_name"])
	assert.Equal(t, true, view["can_cancel"])

	w = do(r, request{method: http.MethodPost, path: "/api/public/appointments/42/cancel", cookie: visitor})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Canceled", decode(t, w)["status"])

	w = do(r, request{method: http.MethodPost, path: "/api/public/appointments/42/cancel", cookie: visitor})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_canceled", decode(t, w)["error_code"])

	assert.Equal(t, 1, fb.count("PATCH /appointments/42/cancel"))
}

func TestConfirmationRejectsBadID(t *testing.T) {
	_, srv := newFakeBackend(t)
	r := newRouter(t, srv.URL)

	w := do(r, request{method: http.MethodGet, path: "/api/public/appointments/abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ======================================================
// PANELS
// ======================================================

func login(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()
	w := do(r, request{method: http.MethodPost, path: "/login", body: `{"email":"owner@example.com","password":"secret"}`})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return w.Result().Cookies()
}

func TestPanelsRedirectWithoutSession(t *testing.T) {
	_, srv := newFakeBackend(t)
	r := newRouter(t, srv.URL)

	for _, path := range []string{"/owner/businesses", "/manager/branches", "/worker/appointments", "/developer/audit-logs"} {
		w := do(r, request{method: http.MethodGet, path: path})
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"), path)
	}
}

func TestOwnerLoginAndBusinesses(t *testing.T) {
	fb, srv := newFakeBackend(t)
	r := newRouter(t, srv.URL)

	w := do(r, request{method: http.MethodPost, path: "/login", body: `{"email":"owner@example.com","password":"secret"}`})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "/owner/businesses", decode(t, w)["redirect"])
	cookies := w.Result().Cookies()

	w = do(r, request{method: http.MethodGet, path: "/owner/businesses", cookie: cookies})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 1, decode(t, w)["total"])
	assert.True(t, strings.HasPrefix(fb.authOf("GET /owner/businesses"), "Bearer "))

	w = do(r, request{method: http.MethodPost, path: "/owner/businesses", body: `{"name":"Beta"}`, cookie: cookies})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	out := decode(t, w)
	assert.EqualValues(t, 2, out["id"])
	assert.EqualValues(t, 1, out["total"])
	assert.Equal(t, 2, fb.count("GET /owner/businesses"))

	w = do(r, request{method: http.MethodPost, path: "/owner/businesses", body: `{}`, cookie: cookies})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, request{method: http.MethodGet, path: "/owner/branches/5/positions", cookie: cookies})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, request{method: http.MethodGet, path: "/manager/branches", cookie: cookies})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOwnerBackendFailureMessage(t *testing.T) {
	_, srv := newFakeBackend(t)
	r := newRouter(t, srv.URL)
	cookies := login(t, r)

	w := do(r, request{method: http.MethodGet, path: "/owner/managers", cookie: cookies})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Failed to load managers", decode(t, w)["message"])
}

func TestLogoutEndsSession(t *testing.T) {
	_, srv := newFakeBackend(t)
	r := newRouter(t, srv.URL)
	cookies := login(t, r)

	w := do(r, request{method: http.MethodPost, path: "/logout", cookie: cookies})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, request{method: http.MethodGet, path: "/owner/businesses", cookie: cookies})
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestFailedLogin(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.role = "superuser"
	r := newRouter(t, srv.URL)

	w := do(r, request{method: http.MethodPost, path: "/login", body: `{"email":"x@example.com","password":"secret"}`})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

// ======================================================
// OPS
// ======================================================

func TestHealthAndMetrics(t *testing.T) {
	_, srv := newFakeBackend(t)
	r := newRouter(t, srv.URL)

	w := do(r, request{method: http.MethodGet, path: "/health"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	do(r, request{method: http.MethodGet, path: "/api/public/cities/1"})

	w = do(r, request{method: http.MethodGet, path: "/metrics"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "booking_panel_http_requests_total")
}
