package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"postboard/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = "userId"

	errMissingToken = "Missing authentication token. Authorization failed."
	errInvalidToken = "Invalid authentication token. Authorization failed."
)

// authMiddleware resolves the caller from the session token header and stores
// the user id in the gin context. Requests without a valid token stop here.
func (h *Handler) authMiddleware(c *gin.Context) {
	token, err := h.extractToken(c.GetHeader(h.authHeader))
	if err == nil {
		var userID string
		userID, err = h.services.ParseToken(token)
		if err == nil {
			c.Set(userIDKey, userID)
			c.Next()
			return
		}
	}

	msg := errInvalidToken
	if errors.Is(err, auth.ErrTokenMissing) {
		msg = errMissingToken
	}
	// same {"error": ...} body as every other failure in the API
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: msg})
}

// extractToken pulls the raw token out of the header value according to the
// configured scheme.
func (h *Handler) extractToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", auth.ErrTokenMissing
	}
	if h.authScheme == "" {
		return header, nil
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], h.authScheme) {
		return "", auth.ErrTokenInvalid
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", auth.ErrTokenInvalid
	}
	return token, nil
}

// currentUserID returns the identity stored by authMiddleware.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// requestLogger logs one line per request. Headers are never logged.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	if h.log == nil {
		return
	}
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"client_ip", c.ClientIP(),
	)
}
