package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-panel/internal/backend"
	"github.com/BruksfildServices01/booking-panel/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSessions struct {
	sessions map[string]*session.Session
	valid    map[string]bool
	dropped  []string
}

func (f *fakeSessions) Get(_ context.Context, id string) (*session.Session, error) {
	return f.sessions[id], nil
}

func (f *fakeSessions) Logout(_ context.Context, id string) error {
	f.dropped = append(f.dropped, id)
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessions) TokenValid(token string) bool {
	return f.valid[token]
}

func guardedRouter(store SessionStore) *gin.Engine {
	r := gin.New()
	owner := r.Group("/owner", RouteGuard(store, zerolog.Nop()), RequireRole(backend.RoleOwner))
	owner.GET("/businesses", func(c *gin.Context) {
		c.String(http.StatusOK, "hello %s", CurrentSession(c).Role)
	})
	return r
}

func get(r http.Handler, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouteGuard(t *testing.T) {
	store := &fakeSessions{
		sessions: map[string]*session.Session{
			"live":    {ID: "live", Token: "good", Role: backend.RoleOwner},
			"expired": {ID: "expired", Token: "old", Role: backend.RoleOwner},
			"worker":  {ID: "worker", Token: "good", Role: backend.RoleWorker},
		},
		valid: map[string]bool{"good": true},
	}
	r := guardedRouter(store)

	t.Run("NoCookie", func(t *testing.T) {
		rec := get(r, "/owner/businesses", "")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("UnknownSession", func(t *testing.T) {
		rec := get(r, "/owner/businesses", "nope")
		assert.Equal(t, http.StatusFound, rec.Code)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		rec := get(r, "/owner/businesses", "expired")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
		assert.Equal(t, []string{"expired"}, store.dropped)
	})

	t.Run("ValidToken", func(t *testing.T) {
		rec := get(r, "/owner/businesses", "live")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello owner", rec.Body.String())
	})

	t.Run("WrongRole", func(t *testing.T) {
		rec := get(r, "/owner/businesses", "worker")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "forbidden_role")
	})
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://book.acme.io"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://book.acme.io")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://book.acme.io", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

type httpObs struct {
	route  string
	status int
}

func (o *httpObs) ObserveHTTP(_ string, route string, status int, _ time.Duration) {
	o.route, o.status = route, status
}

func TestRequestIDAndAccessLog(t *testing.T) {
	var buf bytes.Buffer
	obs := &httpObs{}
	r := gin.New()
	r.Use(RequestID(), AccessLog(zerolog.New(&buf), obs))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	req := httptest.NewRequest(http.MethodGet, "/items/3", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "/items/:id", obs.route)
	assert.Equal(t, http.StatusTeapot, obs.status)
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/4", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestVisitorCookie(t *testing.T) {
	r := gin.New()
	r.Use(Visitor(false))
	r.GET("/v", func(c *gin.Context) { c.String(http.StatusOK, VisitorID(c)) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, VisitorCookie, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, rec.Body.String())
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/v", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, cookies[0].Value, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.POST("/book", NewRateLimiter(1, 2).Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/book", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/book", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterDisabled(t *testing.T) {
	r := gin.New()
	r.POST("/book", NewRateLimiter(0, 1).Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/book", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
