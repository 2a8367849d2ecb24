package submissions

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/nichedigital/leaddesk/internal/common"
	"github.com/nichedigital/leaddesk/internal/logging"
	"github.com/nichedigital/leaddesk/internal/server/models"
	"github.com/nichedigital/leaddesk/internal/server/spam"
)

const (
	maxNameLength     = 100
	maxBusinessLength = 100
	maxMessageLength  = 2000
	minPhoneDigits    = 8
	maxPhoneDigits    = 15

	// DefaultPageSize and MaxPageSize bound the listing page size.
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ValidationError carries a user-facing detail message for a rejected field.
// It matches common.ErrorValidation under errors.Is.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

func (e *ValidationError) Is(target error) bool { return target == common.ErrorValidation }

// CreateResult reports the outcome of a public submission. Stored is false
// when the submission was silently dropped as likely spam; the caller must
// still answer with the standard success message.
type CreateResult struct {
	Stored    bool
	ID        string
	SpamScore float64
}

// ListResult is one page of submissions plus pagination metadata, in the
// exact shape the admin listing endpoint serves.
type ListResult struct {
	Submissions []*models.Submission `json:"submissions"`
	Total       int                  `json:"total"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
}

// Service implements the submission use cases on top of a Repository.
type Service struct {
	repo     Repository
	detector *spam.Detector
	limiter  *spam.RateLimiter
	logger   logging.Logger
	now      func() time.Time
}

func NewService(repo Repository, detector *spam.Detector, limiter *spam.RateLimiter, logger logging.Logger) *Service {
	return &Service{
		repo:     repo,
		detector: detector,
		limiter:  limiter,
		logger:   logger.With("module", "submissions"),
		now:      time.Now,
	}
}

// Create handles one public contact-form submission: rate limiting, field
// validation, spam scoring, then persistence. Likely-spam submissions are
// accepted without being stored so the sender cannot tell they were caught.
func (s *Service) Create(ctx context.Context, sub *models.Submission) (*CreateResult, error) {
	now := s.now().UTC()

	if !s.limiter.Allow(sub.IPAddress, strings.ToLower(sub.Email), now) {
		s.logger.Warn(ctx, "rate limit exceeded", "ip", sub.IPAddress)
		return nil, common.ErrorRateLimited
	}

	if err := validate(sub); err != nil {
		return nil, err
	}
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Service = models.NormalizeService(sub.Service)

	score, reasons := s.detector.Score(sub)
	sub.SpamScore = score
	if s.detector.LikelySpam(score) {
		s.logger.Warn(ctx, "submission dropped as likely spam",
			"email", sub.Email, "score", score, "reasons", strings.Join(reasons, "; "))
		return &CreateResult{Stored: false, SpamScore: score}, nil
	}

	sub.ID = uuid.NewString()
	sub.Status = models.StatusNew
	sub.CreatedAt = now
	sub.UpdatedAt = now

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}

	s.logger.Info(ctx, "submission stored", "id", sub.ID, "score", score)
	return &CreateResult{Stored: true, ID: sub.ID, SpamScore: score}, nil
}

// List returns one page of submissions. Page is clamped to >= 1 and limit
// to [1, MaxPageSize]; zero limit gets the default page size.
func (s *Service) List(ctx context.Context, page, limit int, search string, status models.Status) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if status != "" && !status.Valid() {
		return nil, &ValidationError{Detail: "Invalid status"}
	}

	opts := models.ListOptions{
		Search: strings.TrimSpace(search),
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	items, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	if items == nil {
		items = []*models.Submission{}
	}

	return &ListResult{
		Submissions: items,
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  (total + limit - 1) / limit,
	}, nil
}

// UpdateStatus transitions one submission to the given status.
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	if !status.Valid() {
		return &ValidationError{Detail: "Invalid status"}
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info(ctx, "status updated", "id", id, "status", status)
	return nil
}

// Stats computes the aggregate snapshot for the dashboard.
func (s *Service) Stats(ctx context.Context) (*models.Stats, error) {
	return s.repo.Stats(ctx, s.now())
}

var csvHeader = []string{
	"Date", "Name", "Business Name", "Email", "Phone",
	"Service", "Message", "Status", "Spam Score",
}

// WriteCSV streams every submission to w as CSV, newest first. The export
// deliberately ignores any listing filters: it is a full backup of the
// stored set.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer) error {
	all, err := s.repo.SelectAll(ctx)
	if err != nil {
		return fmt.Errorf("export submissions: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, sub := range all {
		record := []string{
			sub.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			sub.Name,
			sub.BusinessName,
			sub.Email,
			sub.Phone,
			sub.Service,
			sub.Message,
			string(sub.Status),
			fmt.Sprintf("%.2f", sub.SpamScore),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func validate(sub *models.Submission) error {
	name := strings.TrimSpace(sub.Name)
	if utf8.RuneCountInString(name) < 2 {
		return &ValidationError{Detail: "Name must be at least 2 characters long"}
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return &ValidationError{Detail: "Name must be at most 100 characters"}
	}

	if sub.Email == "" {
		return &ValidationError{Detail: "A valid email address is required"}
	}
	if addr, err := mail.ParseAddress(sub.Email); err != nil || addr.Address != sub.Email {
		return &ValidationError{Detail: "A valid email address is required"}
	}

	if sub.Phone != "" {
		digits := 0
		for _, r := range sub.Phone {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits < minPhoneDigits || digits > maxPhoneDigits {
			return &ValidationError{Detail: "Phone number must be between 8-15 digits"}
		}
	}

	if utf8.RuneCountInString(sub.BusinessName) > maxBusinessLength {
		return &ValidationError{Detail: "Business name must be at most 100 characters"}
	}
	if utf8.RuneCountInString(sub.Message) > maxMessageLength {
		return &ValidationError{Detail: "Message must be at most 2000 characters"}
	}
	return nil
}
