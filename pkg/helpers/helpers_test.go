package helpers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	tok, exp, err := m.GenerateAccessToken("42", "super_admin", "sid-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "super_admin", claims.Role)
	assert.Equal(t, "sid-1", claims.SessionID)

	_, err = m.ParseRefreshToken(tok)
	assert.Error(t, err, "access token must not verify with the refresh secret")
}

func TestJWTRejectsTamperedAndExpired(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, time.Hour)
	tok, _, err := m.GenerateAccessToken("42", "normal_user", "sid")
	require.NoError(t, err)
	_, err = m.ParseAccessToken(tok)
	assert.Error(t, err)

	other := NewJWTManager("different", "refresh", time.Minute, time.Hour)
	tok, _, err = other.GenerateAccessToken("42", "super_admin", "sid")
	require.NoError(t, err)
	_, err = NewJWTManager("access", "refresh", time.Minute, time.Hour).ParseAccessToken(tok)
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, CompareHashAndPassword(hash, "correct horse"))
	assert.False(t, CompareHashAndPassword(hash, "wrong horse"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	_, err = HashPassword(strings.Repeat("é", 40), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestRandomHex(t *testing.T) {
	a, err := RandomHex(32)
	require.NoError(t, err)
	b, err := RandomHex(32)
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestBearerOrCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer abc")
	c.Request.AddCookie(&http.Cookie{Name: AccessCookie, Value: "cookie"})
	assert.Equal(t, "abc", BearerOrCookie(c, AccessCookie))

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: AccessCookie, Value: "cookie"})
	assert.Equal(t, "cookie", BearerOrCookie(c, AccessCookie))

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, BearerOrCookie(c, AccessCookie))
}
