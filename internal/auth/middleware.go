package auth

import (
	"net/http"
	"strings"

	"bookstore-service/internal/models"
	"bookstore-service/internal/store"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie is the cookie carrying the opaque session token
	SessionCookie = "session_token"

	contextUserKey = "currentUser"
)

// Middleware resolves session tokens into a request-scoped user
// identity. Handlers read the identity from the gin context and never
// consult ambient session state.
type Middleware struct {
	sessions *SessionManager
	store    *store.Store
}

// NewMiddleware creates the auth middleware
func NewMiddleware(sessions *SessionManager, store *store.Store) *Middleware {
	return &Middleware{sessions: sessions, store: store}
}

// TokenFromRequest extracts the session token from the cookie or the
// Authorization header.
func TokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireAuth rejects requests without a valid session resolving to an
// existing user, and injects that user into the request context.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		userID, ok, err := m.sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		user, err := m.store.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireAdmin rejects authenticated users without the admin flag.
// Must run after RequireAuth.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user injected by RequireAuth
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}
