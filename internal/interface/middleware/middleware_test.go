package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/internal/domain/policy"
	"github.com/hawkcentral/campus-events/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWT() *helpers.JWTManager {
	return helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
}

func authRouter(jwt *helpers.JWTManager) *gin.Engine {
	r := gin.New()
	r.GET("/me", Auth(nil, jwt), func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": caller.ID.String(), "role": string(caller.Role)})
	})
	return r
}

func TestAuth(t *testing.T) {
	jwt := newJWT()
	r := authRouter(jwt)

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bearer token sets caller", func(t *testing.T) {
		tok, _, err := jwt.GenerateAccessToken("7", "super_admin", "sid")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"7","role":"super_admin"}`, w.Body.String())
	})

	t.Run("cookie token", func(t *testing.T) {
		tok, _, err := jwt.GenerateAccessToken("8", "normal_user", "sid")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: tok})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"8","role":"normal_user"}`, w.Body.String())
	})

	t.Run("unknown role degrades to normal_user", func(t *testing.T) {
		tok, _, err := jwt.GenerateAccessToken("8", "root", "sid")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.JSONEq(t, `{"id":"8","role":"normal_user"}`, w.Body.String())
	})

	t.Run("token signed with another key", func(t *testing.T) {
		other := helpers.NewJWTManager("other", "other", time.Minute, time.Hour)
		tok, _, err := other.GenerateAccessToken("1", "super_admin", "sid")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non numeric subject", func(t *testing.T) {
		tok, _, err := jwt.GenerateAccessToken("abc", "super_admin", "sid")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCallerFromWithoutAuth(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := CallerFrom(c)
	assert.False(t, ok)

	SetCaller(c, policy.Caller{ID: 1, Role: entity.RoleITAdmin})
	caller, ok := CallerFrom(c)
	require.True(t, ok)
	assert.Equal(t, entity.ID(1), caller.ID)
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, ClientIP(c)) })

	cases := map[string]struct {
		header, value, want string
	}{
		"cloudflare":      {"CF-Connecting-IP", "203.0.113.9", "203.0.113.9"},
		"forwarded chain": {"X-Forwarded-For", "198.51.100.4, 10.0.0.1", "198.51.100.4"},
		"garbage":         {"X-Forwarded-For", "nope", "192.0.2.1"},
		"x-real-ip":       {"X-Real-IP", "2001:db8::1", "2001:db8::1"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			req.Header.Set(tc.header, tc.value)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Body.String())
		})
	}
}

func TestClientIPWithoutRealIP(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "192.0.2.7:4000"

	assert.Equal(t, "192.0.2.7", ClientIP(c))
	assert.Equal(t, "192.0.2.7", ipFromCtx(c))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Body.String())
}

func TestRateLimitWithoutRedisIsNoop(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(nil, 1, time.Minute, KeyByIP(), nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	for ip, want := range map[string]bool{"10.1.2.3": true, "127.0.0.1": true, "8.8.8.8": false} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set(RealIPKey, ip)
		assert.Equal(t, want, allow(c), ip)
	}
}
