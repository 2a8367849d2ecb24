package submissions

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nichedigital/leaddesk/internal/common"
	"github.com/nichedigital/leaddesk/internal/logging"
	"github.com/nichedigital/leaddesk/internal/server/models"
	"github.com/nichedigital/leaddesk/internal/server/spam"
)

type fakeRepo struct {
	created    []*models.Submission
	listItems  []*models.Submission
	listTotal  int
	lastOpts   models.ListOptions
	statusByID map[string]models.Status
	all        []*models.Submission
	stats      *models.Stats
	err        error
}

func (f *fakeRepo) Create(ctx context.Context, sub *models.Submission) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, sub)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, opts models.ListOptions) ([]*models.Submission, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	f.lastOpts = opts
	return f.listItems, f.listTotal, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.statusByID[id]; !ok {
		return common.ErrorNotFound
	}
	f.statusByID[id] = status
	return nil
}

func (f *fakeRepo) SelectAll(ctx context.Context) ([]*models.Submission, error) {
	return f.all, f.err
}

func (f *fakeRepo) Stats(ctx context.Context, now time.Time) (*models.Stats, error) {
	return f.stats, f.err
}

func newTestService(repo *fakeRepo) *Service {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewService(repo, spam.NewDetector(), spam.NewRateLimiter(), logger)
}

func validSubmission() *models.Submission {
	return &models.Submission{
		Name:      "Jane Cooper",
		Email:     "jane@coopersbakery.com",
		Phone:     "+66 81 234 5678",
		Service:   "Website Creation",
		Message:   "We would like a new website for our bakery.",
		IPAddress: "203.0.113.7",
	}
}

func TestCreate_StoresValidSubmission(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	res, err := svc.Create(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.True(t, res.Stored)
	assert.NotEmpty(t, res.ID)

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.Equal(t, models.StatusNew, stored.Status)
	assert.Equal(t, res.ID, stored.ID)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestCreate_UnknownServiceCoercedToOther(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	sub := validSubmission()
	sub.Service = "Skywriting"
	_, err := svc.Create(context.Background(), sub)
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "Other", repo.created[0].Service)
}

func TestCreate_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Submission)
		detail string
	}{
		{
			name:   "name too short",
			mutate: func(s *models.Submission) { s.Name = " J " },
			detail: "Name must be at least 2 characters long",
		},
		{
			name:   "missing email",
			mutate: func(s *models.Submission) { s.Email = "" },
			detail: "A valid email address is required",
		},
		{
			name:   "malformed email",
			mutate: func(s *models.Submission) { s.Email = "not-an-email" },
			detail: "A valid email address is required",
		},
		{
			name:   "phone too short",
			mutate: func(s *models.Submission) { s.Phone = "123" },
			detail: "Phone number must be between 8-15 digits",
		},
		{
			name: "message too long",
			mutate: func(s *models.Submission) {
				s.Message = string(bytes.Repeat([]byte("a"), 2001))
			},
			detail: "Message must be at most 2000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := newTestService(repo)

			sub := validSubmission()
			tt.mutate(sub)

			_, err := svc.Create(context.Background(), sub)
			require.Error(t, err)
			require.ErrorIs(t, err, common.ErrorValidation)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.detail, verr.Detail)
			assert.Empty(t, repo.created)
		})
	}
}

func TestCreate_RateLimited(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	// Email budget is 2 per hour.
	for i := 0; i < 2; i++ {
		sub := validSubmission()
		sub.IPAddress = "203.0.113." + string(rune('1'+i))
		_, err := svc.Create(context.Background(), sub)
		require.NoError(t, err)
	}

	sub := validSubmission()
	sub.IPAddress = "203.0.113.9"
	_, err := svc.Create(context.Background(), sub)
	require.ErrorIs(t, err, common.ErrorRateLimited)
	assert.Len(t, repo.created, 2)
}

func TestCreate_LikelySpamDroppedSilently(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	sub := validSubmission()
	sub.Email = "winner@mailinator.com"
	res, err := svc.Create(context.Background(), sub)
	require.NoError(t, err, "spam must not surface as an error")
	assert.False(t, res.Stored)
	assert.Empty(t, res.ID)
	assert.Empty(t, repo.created, "likely spam must not be persisted")
}

func TestList_PaginationMath(t *testing.T) {
	repo := &fakeRepo{listTotal: 25, listItems: []*models.Submission{{ID: "a"}}}
	svc := newTestService(repo)

	res, err := svc.List(context.Background(), 2, 10, "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 10, res.Limit)
	assert.Equal(t, 25, res.Total)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, 10, repo.lastOpts.Offset)
}

func TestList_ClampsPageAndLimit(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	res, err := svc.List(context.Background(), 0, 0, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, DefaultPageSize, res.Limit)
	assert.Equal(t, 0, repo.lastOpts.Offset)

	res, err = svc.List(context.Background(), 1, 500, "", "")
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, res.Limit)
}

func TestList_EmptyResultIsNotNil(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	res, err := svc.List(context.Background(), 1, 10, "", "")
	require.NoError(t, err)
	assert.NotNil(t, res.Submissions)
	assert.Empty(t, res.Submissions)
	assert.Zero(t, res.TotalPages)
}

func TestList_RejectsUnknownStatus(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	_, err := svc.List(context.Background(), 1, 10, "", models.Status("archived"))
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestUpdateStatus(t *testing.T) {
	repo := &fakeRepo{statusByID: map[string]models.Status{"42": models.StatusNew}}
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.UpdateStatus(ctx, "42", models.StatusContacted))
	assert.Equal(t, models.StatusContacted, repo.statusByID["42"])

	// setting the current value again is a no-op, not an error
	require.NoError(t, svc.UpdateStatus(ctx, "42", models.StatusContacted))

	err := svc.UpdateStatus(ctx, "missing", models.StatusClosed)
	require.ErrorIs(t, err, common.ErrorNotFound)

	err = svc.UpdateStatus(ctx, "42", models.Status("archived"))
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestWriteCSV_AllRows(t *testing.T) {
	created := time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)
	repo := &fakeRepo{all: []*models.Submission{
		{
			ID: "a", Name: "Jane Cooper", Email: "jane@coopersbakery.com",
			BusinessName: "Cooper's Bakery", Service: "Website Creation",
			Message: "hello, world", Status: models.StatusNew,
			SpamScore: 0.15, CreatedAt: created,
		},
		{
			ID: "b", Name: "Sam Arun", Email: "sam@arun.co",
			Status: models.StatusClosed, CreatedAt: created.Add(-time.Hour),
		},
	}}
	svc := newTestService(repo)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(context.Background(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two rows")

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{
		"2026-08-30 14:30:00", "Jane Cooper", "Cooper's Bakery",
		"jane@coopersbakery.com", "", "Website Creation", "hello, world",
		"new", "0.15",
	}, records[1])
	assert.Equal(t, "sam@arun.co", records[2][3])
}

func TestWriteCSV_RepoError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection reset")}
	svc := newTestService(repo)

	var buf bytes.Buffer
	err := svc.WriteCSV(context.Background(), &buf)
	require.Error(t, err)
	assert.Zero(t, buf.Len(), "no partial file on failure")
}
