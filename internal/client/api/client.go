// Package api is the console's HTTP client for the submission backend.
// It derives the basic token from the in-memory credentials once and
// attaches it to every admin request until the credentials are cleared.
package api

import (
	"context"

	"github.com/nichedigital/leaddesk/internal/client/models"
)

type Client interface {
	// SetCredentials derives and stores the basic token. No network call.
	SetCredentials(username, password string)
	// ClearCredentials drops the stored token. No network call.
	ClearCredentials()

	Stats(ctx context.Context) (*models.Stats, error)
	ListSubmissions(ctx context.Context, page, limit int, search string, status models.Status) (*models.ListResult, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) error
	ExportCSV(ctx context.Context) ([]byte, error)
	SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.ContactResponse, error)
}
