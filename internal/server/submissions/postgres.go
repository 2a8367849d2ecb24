// Package submissions holds the server-side domain logic for contact
// submissions: validation, spam gating, listing, status transitions,
// CSV export and statistics, plus the PostgreSQL repository behind them.
package submissions

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nichedigital/leaddesk/internal/common"
	"github.com/nichedigital/leaddesk/internal/dbx"
	"github.com/nichedigital/leaddesk/internal/server/models"
)

// PostgresRepository implements Repository over database/sql with the
// dbx helpers.
type PostgresRepository struct {
	conn *sql.DB
	db   dbx.DBTX
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{conn: db, db: db}
}

var _ Repository = (*PostgresRepository)(nil)

const submissionColumns = `id, name, COALESCE(business_name, ''), email, COALESCE(phone, ''),
	COALESCE(service, ''), COALESCE(message, ''), status, spam_score,
	COALESCE(ip_address, ''), COALESCE(user_agent, ''), created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, sub *models.Submission) error {
	query := `
		INSERT INTO contact_submissions
			(id, name, business_name, email, phone, service, message, status,
			 spam_score, ip_address, user_agent, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''),
			NULLIF($7, ''), $8, $9, NULLIF($10, ''), NULLIF($11, ''), $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		sub.ID, sub.Name, sub.BusinessName, sub.Email, sub.Phone, sub.Service,
		sub.Message, sub.Status, sub.SpamScore, sub.IPAddress, sub.UserAgent,
		sub.CreatedAt, sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// buildFilter renders the WHERE clause for List from opts. Absent search and
// status mean no filter at all, not a match against the empty string.
func buildFilter(opts models.ListOptions) (string, []any) {
	var conditions []string
	var args []any

	if opts.Status != "" {
		args = append(args, opts.Status)
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		n := strconv.Itoa(len(args))
		conditions = append(conditions,
			"(name ILIKE $"+n+" OR email ILIKE $"+n+
				" OR business_name ILIKE $"+n+" OR message ILIKE $"+n+")")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PostgresRepository) List(ctx context.Context, opts models.ListOptions) ([]*models.Submission, int, error) {
	where, args := buildFilter(opts)

	var total int
	countQuery := "SELECT COUNT(*) FROM contact_submissions " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	limitArg := strconv.Itoa(len(args) + 1)
	offsetArg := strconv.Itoa(len(args) + 2)
	args = append(args, opts.Limit, opts.Offset)

	query := "SELECT " + submissionColumns + " FROM contact_submissions " + where +
		" ORDER BY created_at DESC LIMIT $" + limitArg + " OFFSET $" + offsetArg

	items, err := r.scanSubmissions(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contact_submissions SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Submission, error) {
	query := "SELECT " + submissionColumns + " FROM contact_submissions ORDER BY created_at DESC"
	return r.scanSubmissions(ctx, query)
}

// Stats runs its aggregate queries inside one read-only transaction so the
// totals and the service counts come from the same snapshot.
func (r *PostgresRepository) Stats(ctx context.Context, now time.Time) (*models.Stats, error) {
	var stats *models.Stats
	err := dbx.WithTx(ctx, r.conn, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx dbx.DBTX) error {
		s, err := queryStats(ctx, tx, now)
		stats = s
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func queryStats(ctx context.Context, db dbx.DBTX, now time.Time) (*models.Stats, error) {
	today := now.UTC().Truncate(24 * time.Hour)
	weekAgo := today.AddDate(0, 0, -7)
	monthAgo := today.AddDate(0, 0, -30)

	stats := &models.Stats{StatusBreakdown: make(map[models.Status]int)}

	var newCount, contactedCount, closedCount int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= $1),
			COUNT(*) FILTER (WHERE created_at >= $2),
			COUNT(*) FILTER (WHERE created_at >= $3),
			COUNT(*) FILTER (WHERE status = 'new'),
			COUNT(*) FILTER (WHERE status = 'contacted'),
			COUNT(*) FILTER (WHERE status = 'closed')
		FROM contact_submissions`,
		today, weekAgo, monthAgo,
	).Scan(&stats.TotalSubmissions, &stats.SubmissionsToday,
		&stats.SubmissionsThisWeek, &stats.SubmissionsThisMonth,
		&newCount, &contactedCount, &closedCount)
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}

	stats.StatusBreakdown[models.StatusNew] = newCount
	stats.StatusBreakdown[models.StatusContacted] = contactedCount
	stats.StatusBreakdown[models.StatusClosed] = closedCount

	rows, err := db.QueryContext(ctx, `
		SELECT service, COUNT(*) AS cnt FROM contact_submissions
		WHERE service IS NOT NULL AND service <> ''
		GROUP BY service ORDER BY cnt DESC, service LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("service stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sc models.ServiceCount
		if err := rows.Scan(&sc.Service, &sc.Count); err != nil {
			return nil, err
		}
		stats.PopularServices = append(stats.PopularServices, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *PostgresRepository) scanSubmissions(ctx context.Context, query string, args ...any) ([]*models.Submission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select submissions: %w", err)
	}
	defer rows.Close()

	var result []*models.Submission
	for rows.Next() {
		var s models.Submission
		if err := rows.Scan(
			&s.ID, &s.Name, &s.BusinessName, &s.Email, &s.Phone, &s.Service,
			&s.Message, &s.Status, &s.SpamScore, &s.IPAddress, &s.UserAgent,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
