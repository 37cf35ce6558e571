package middleware

import (
	"net/http"
	"strings"

	"social-server/auth"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userID"
	usernameKey = "username"
)

type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// caller's id in the gin context.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return authenticate(tokens, false)
}

// WebsocketAuth also accepts the token as a "token" query parameter, since
// browsers cannot set headers on a websocket handshake. Query strings end up
// in access logs, so only the upgrade route uses it.
func WebsocketAuth(tokens TokenValidator) gin.HandlerFunc {
	return authenticate(tokens, true)
}

func authenticate(tokens TokenValidator, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" && allowQuery {
			tokenStr = c.Query("token")
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}

		claims, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(usernameKey, claims.Username)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// UserID returns the authenticated caller, or "" outside AuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func Username(c *gin.Context) string {
	return c.GetString(usernameKey)
}

// SetUser is used by tests to impersonate a caller.
func SetUser(c *gin.Context, userID, username string) {
	c.Set(userIDKey, userID)
	c.Set(usernameKey, username)
}
