package middleware

import "github.com/gin-gonic/gin"

// contextKey is a private type for context values set by middleware.
// Using a custom type prevents collisions with other packages.
type contextKey string

const (
	// userIDKey stores the authenticated user's ID.
	userIDKey = contextKey("userID")
	// loggerCtxKey stores the request-scoped logger in the standard context.
	loggerCtxKey = contextKey("logger")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context, falling back to the request's standard context. It returns the
// user ID and whether it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if val, exists := c.Get(string(userIDKey)); exists {
		if userID, ok := val.(string); ok {
			return userID, true
		}
		return "", false
	}
	if val := c.Request.Context().Value(userIDKey); val != nil {
		if userID, ok := val.(string); ok {
			return userID, true
		}
	}
	return "", false
}
