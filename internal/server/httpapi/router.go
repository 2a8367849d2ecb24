// Package httpapi exposes the submission service over HTTP: the public
// contact endpoint and the basic-auth-protected admin API consumed by the
// console.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/nichedigital/leaddesk/internal/logging"
	"github.com/nichedigital/leaddesk/internal/server/submissions"
)

// AdminCredentials is the single admin account guarding /api/admin.
// PasswordHash, when non-empty, is a bcrypt hash and wins over Password.
type AdminCredentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Handlers carries the dependencies shared by all route handlers.
type Handlers struct {
	svc    *submissions.Service
	logger logging.Logger
}

func NewHandlers(svc *submissions.Service, logger logging.Logger) *Handlers {
	return &Handlers{svc: svc, logger: logger.With("module", "httpapi")}
}

// BuildRouter wires the gin engine: recovery, request logging, the public
// contact endpoint, and the admin group behind basic auth.
func BuildRouter(h *Handlers, creds AdminCredentials, logger logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	api := r.Group("/api")
	api.GET("/", h.Root)
	api.POST("/contact", h.SubmitContact)

	admin := api.Group("/admin")
	admin.Use(BasicAuth(creds))
	admin.GET("/stats", h.Stats)
	admin.GET("/submissions", h.ListSubmissions)
	admin.PUT("/submissions/:id/status", h.UpdateStatus)
	admin.GET("/submissions/export", h.ExportCSV)

	return r
}
