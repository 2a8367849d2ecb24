package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nichedigital/leaddesk/internal/common"
	"github.com/nichedigital/leaddesk/internal/server/models"
	"github.com/nichedigital/leaddesk/internal/server/submissions"
)

const (
	successMessage    = "Thank you! We'll get back to you within 24 hours."
	rateLimitedDetail = "Too many requests. Please try again later."
	internalDetail    = "An error occurred while processing your request. Please try again."
	exportFilePrefix  = "niche_submissions"
)

// Root handles GET /api/.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "NICHE Digital Marketing API - Ready to grow your business!"})
}

// contactRequest is the expected JSON body for POST /api/contact.
type contactRequest struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Service      string `json:"service"`
	Message      string `json:"message"`
}

// contactResponse mirrors the public contract: success flag, user-facing
// message, and the stored submission id when one was created.
type contactResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SubmissionID string `json:"submission_id,omitempty"`
}

// SubmitContact handles POST /api/contact. Rate limiting and validation
// failures answer with a detail field; likely spam is answered exactly like
// success so senders cannot probe the filter.
func (h *Handlers) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	sub := &models.Submission{
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Phone:        req.Phone,
		Service:      req.Service,
		Message:      req.Message,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	}

	res, err := h.svc.Create(c.Request.Context(), sub)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"detail": rateLimitedDetail})
		case errors.Is(err, common.ErrorValidation):
			var verr *submissions.ValidationError
			errors.As(err, &verr)
			c.JSON(http.StatusBadRequest, gin.H{"detail": verr.Detail})
		default:
			h.logger.Error(c.Request.Context(), "contact submission failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"detail": internalDetail})
		}
		return
	}

	c.JSON(http.StatusOK, contactResponse{
		Success:      true,
		Message:      successMessage,
		SubmissionID: res.ID,
	})
}

// Stats handles GET /api/admin/stats.
func (h *Handlers) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error(c.Request.Context(), "stats failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": internalDetail})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListSubmissions handles GET /api/admin/submissions.
// Absent search/status query params mean "no filter".
func (h *Handlers) ListSubmissions(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", submissions.DefaultPageSize)
	search := c.Query("search")
	status := models.Status(c.Query("status"))

	res, err := h.svc.List(c.Request.Context(), page, limit, search, status)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid status"})
			return
		}
		h.logger.Error(c.Request.Context(), "list failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": internalDetail})
		return
	}
	c.JSON(http.StatusOK, res)
}

type statusRequest struct {
	Status models.Status `json:"status"`
}

// UpdateStatus handles PUT /api/admin/submissions/:id/status.
func (h *Handlers) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request body"})
		return
	}

	err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid status"})
		case errors.Is(err, common.ErrorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"detail": "Submission not found"})
		default:
			h.logger.Error(c.Request.Context(), "status update failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"detail": internalDetail})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

// ExportCSV handles GET /api/admin/submissions/export. The CSV is rendered
// into memory first so a storage failure never leaks a partial file.
func (h *Handlers) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.WriteCSV(c.Request.Context(), &buf); err != nil {
		h.logger.Error(c.Request.Context(), "export failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"detail": internalDetail})
		return
	}

	filename := exportFilePrefix + "_" + time.Now().UTC().Format("20060102") + ".csv"
	c.Header("Content-Disposition", `attachment; filename=`+filename)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
