package handlers

import (
	"net/http"
	"strings"
	"time"

	"library_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	tokenCookieName = "token"
	userCtxKey      = "user"
)

// requestLogger tags every request with an id and logs the outcome.
func (h *Handler) requestLogger(c *gin.Context) {
	requestID := uuid.NewString()
	c.Set("requestId", requestID)
	c.Header("X-Request-Id", requestID)

	start := time.Now()
	c.Next()

	if h.log != nil {
		h.log.Infow("http_request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// authenticate resolves the session token to a user record and stores it in
// the Gin context. The token travels as an httpOnly cookie; a Bearer header
// is accepted as a fallback for non-browser clients.
func (h *Handler) authenticate(c *gin.Context) {
	token := tokenFromRequest(c)
	if token == "" {
		abortWithMessage(c, http.StatusUnauthorized, "missing authentication token")
		return
	}

	userID, err := h.services.ParseToken(token)
	if err != nil {
		abortWithMessage(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	user, err := h.services.UserByID(userID)
	if err != nil {
		abortWithMessage(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	c.Set(userCtxKey, user)
	c.Next()
}

// admin requires authenticate to have run first.
func (h *Handler) admin(c *gin.Context) {
	user := currentUser(c)
	if user == nil || !user.IsAdmin {
		abortWithMessage(c, http.StatusForbidden, "admin privileges required")
		return
	}
	c.Next()
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(tokenCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// currentUser returns the authenticated user stored by the middleware, or
// nil when the request is unauthenticated.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
