package submissions

import (
	"context"
	"time"

	"github.com/nichedigital/leaddesk/internal/server/models"
)

// Repository is the persistence contract for contact submissions.
type Repository interface {
	// Create inserts a new submission.
	Create(ctx context.Context, sub *models.Submission) error

	// List returns one page of submissions matching opts, newest first,
	// together with the total number of matching rows.
	List(ctx context.Context, opts models.ListOptions) ([]*models.Submission, int, error)

	// UpdateStatus sets the status of one submission.
	// Returns common.ErrorNotFound when no row matches id.
	UpdateStatus(ctx context.Context, id string, status models.Status) error

	// SelectAll returns every submission, newest first. Used by CSV export.
	SelectAll(ctx context.Context) ([]*models.Submission, error)

	// Stats computes the aggregate snapshot. The day/week/month boundaries
	// are derived from now in UTC.
	Stats(ctx context.Context, now time.Time) (*models.Stats, error)
}
