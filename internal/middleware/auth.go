package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lalith-99/flocknest/internal/auth"
)

// Context keys for values the middleware stores in gin.Context.
// Constants rather than inline strings so a typo is a compile error,
// not a silent nil.
const (
	ContextKeyUserID = "user_id"
	ContextKeyToken  = "token"
)

// SessionResolver is the slice of the session registry the middleware
// needs: token in, user ID out. The store satisfies it.
type SessionResolver interface {
	Resolve(token string) (int64, error)
}

// AuthMiddleware authenticates requests in two steps. First the token
// must parse: valid HS256 signature, not expired. Then the session
// registry must still know it — a logged-out token fails here no
// matter what its expiry says. Only then does the request reach a
// handler, with the user ID in the context.
func AuthMiddleware(secret string, sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization format, expected: Bearer <token>",
			})
			return
		}
		tokenString := parts[1]

		if _, err := auth.ParseToken(tokenString, secret); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		// The registry is the authority on whether the session is
		// still alive.
		userID, err := sessions.Resolve(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "session is not active",
			})
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyToken, tokenString)
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the request
// context, or 0 if the middleware never ran.
func GetUserID(c *gin.Context) int64 {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0
	}
	id, ok := val.(int64)
	if !ok {
		return 0
	}
	return id
}

// GetToken returns the raw bearer token from the request context.
func GetToken(c *gin.Context) string {
	val, exists := c.Get(ContextKeyToken)
	if !exists {
		return ""
	}
	token, ok := val.(string)
	if !ok {
		return ""
	}
	return token
}
