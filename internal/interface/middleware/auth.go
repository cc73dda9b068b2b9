package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/hawkcentral/campus-events/internal/domain/entity"
	"github.com/hawkcentral/campus-events/internal/domain/policy"
	"github.com/hawkcentral/campus-events/pkg/helpers"
	"github.com/hawkcentral/campus-events/pkg/response"
)

const callerKey = "caller"

// Auth verifies the access token (Bearer header or cookie) and, when redis is
// configured, that the token belongs to the live session. The verified
// identity is stored as a policy.Caller; request bodies are never trusted for it.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := helpers.BearerOrCookie(c, helpers.AccessCookie)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		id, err := entity.ParseID(claims.UserID)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}

		if rdb != nil {
			sid, err := rdb.HGet(c.Request.Context(), helpers.SessionKey(id.String()), "sid").Result()
			if errors.Is(err, redis.Nil) || (err == nil && sid != claims.SessionID) {
				response.Error[any](c, http.StatusUnauthorized, "session expired", nil)
				c.Abort()
				return
			}
			if err != nil {
				response.Error[any](c, http.StatusServiceUnavailable, "session store unavailable", nil)
				c.Abort()
				return
			}
		}

		c.Set(callerKey, policy.Caller{ID: id, Role: entity.ParseRole(claims.Role)})
		c.Next()
	}
}

// CallerFrom returns the identity set by Auth. ok is false on public routes.
func CallerFrom(c *gin.Context) (policy.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return policy.Caller{}, false
	}
	caller, ok := v.(policy.Caller)
	return caller, ok
}

// SetCaller is used by tests and internal tooling to inject an identity.
func SetCaller(c *gin.Context, caller policy.Caller) {
	c.Set(callerKey, caller)
}
