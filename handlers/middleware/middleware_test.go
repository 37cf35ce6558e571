package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"social-server/auth"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubValidator map[string]string

func (s stubValidator) ValidateToken(token string) (*auth.Claims, error) {
	id, ok := s[token]
	if !ok {
		return nil, errors.New("nope")
	}
	return &auth.Claims{UserID: id, Username: "user-" + id}, nil
}

func newRouter(handlers ...gin.HandlerFunc) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	reached := false
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	handlers = append(handlers, func(c *gin.Context) {
		reached = true
		c.JSON(http.StatusOK, gin.H{"userId": UserID(c), "username": Username(c)})
	})
	r.GET("/private", handlers...)
	return r, &reached
}

func TestAuthMiddleware(t *testing.T) {
	tokens := stubValidator{"good": "u1"}

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{name: "bearer header", header: "Bearer good", wantStatus: http.StatusOK},
		{name: "query token ignored", query: "?token=good", wantStatus: http.StatusUnauthorized},
		{name: "missing", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", wantStatus: http.StatusUnauthorized},
		{name: "invalid", header: "Bearer bad", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, reached := newRouter(AuthMiddleware(tokens))
			req := httptest.NewRequest(http.MethodGet, "/private"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, *reached)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"userId":"u1","username":"user-u1"}`, w.Body.String())
			}
		})
	}
}

func TestWebsocketAuthAcceptsQueryToken(t *testing.T) {
	tokens := stubValidator{"good": "u1"}

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{name: "query token", query: "?token=good", wantStatus: http.StatusOK},
		{name: "bearer header", header: "Bearer good", wantStatus: http.StatusOK},
		{name: "header wins over query", header: "Bearer bad", query: "?token=good", wantStatus: http.StatusUnauthorized},
		{name: "invalid query token", query: "?token=bad", wantStatus: http.StatusUnauthorized},
		{name: "missing", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, reached := newRouter(WebsocketAuth(tokens))
			req := httptest.NewRequest(http.MethodGet, "/private"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, *reached)
		})
	}
}

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(0, 2)
	r, _ := newRouter(rl.Middleware())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// another client has its own bucket
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterForgetsIdleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(0, 1)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	now = now.Add(rl.idle + time.Second)
	assert.True(t, rl.Allow("b"))
	assert.True(t, rl.Allow("a"))
}

func TestRateLimiterSweepsAtMostTwicePerIdleWindow(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = start.Add(rl.idle/2 + 2*time.Second)
	rl.Allow("b")
	swept := rl.lastSweep

	// "a" is past idle but the last sweep is too recent to run another
	now = start.Add(rl.idle + time.Second)
	rl.Allow("c")
	assert.Len(t, rl.visitors, 3)
	assert.Equal(t, swept, rl.lastSweep)

	now = swept.Add(rl.idle / 2)
	rl.Allow("c")
	assert.Len(t, rl.visitors, 2)
	assert.NotContains(t, rl.visitors, "a")
}
