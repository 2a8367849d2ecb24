package httpapi

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/nichedigital/leaddesk/internal/logging"
)

// BasicAuth guards the admin group with HTTP Basic credentials. Username and
// password are compared in constant time; when a bcrypt hash is configured it
// is used instead of the plaintext password.
func BasicAuth(creds AdminCredentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || !credentialsMatch(creds, username, password) {
			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
			return
		}
		c.Next()
	}
}

func credentialsMatch(creds AdminCredentials, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(username)) == 1

	var passOK bool
	if creds.PasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(creds.Password), []byte(password)) == 1
	}

	return userOK && passOK
}

// RequestLogger logs one line per request: method, path, status, duration.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	log := logger.With("module", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
