package console

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nichedigital/leaddesk/internal/client/models"
)

const failedToLoadMsg = "Failed to load submissions. Please try again."

var errNotLoggedIn = fmt.Errorf("not logged in")

// beginListRequest assigns the next sequence number to an issued list
// request. Numbers grow monotonically per session.
func (a *App) beginListRequest() uint64 {
	a.seq++
	return a.seq
}

// applyListResult applies res only if seq belongs to the newest issued
// request. A stale response never overwrites a newer one.
func (a *App) applyListResult(seq uint64, res *models.ListResult) bool {
	if seq != a.seq {
		return false
	}
	a.items = res.Submissions
	a.total = res.Total
	a.totalPages = res.TotalPages
	if res.Page >= 1 {
		a.query.page = res.Page
	}
	return true
}

func clampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages >= 1 && page > totalPages {
		return totalPages
	}
	return page
}

// reload fetches the listing for the current (page, search, status) triple.
// The page is clamped before the request is issued. On failure the previous
// item list is kept.
func (a *App) reload(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	a.query.page = clampPage(a.query.page, a.totalPages)

	seq := a.beginListRequest()
	a.inFlight = true
	res, err := a.api.ListSubmissions(ctx, a.query.page, pageSize, a.query.search, a.query.status)
	a.inFlight = false
	if err != nil {
		return err
	}

	// The requested page may no longer exist, e.g. the last item of the
	// final page changed status under a filter. Re-request a valid page
	// instead of silently wrapping.
	if res.TotalPages >= 1 && a.query.page > res.TotalPages {
		a.query.page = res.TotalPages
		seq = a.beginListRequest()
		a.inFlight = true
		res, err = a.api.ListSubmissions(ctx, a.query.page, pageSize, a.query.search, a.query.status)
		a.inFlight = false
		if err != nil {
			return err
		}
	}

	a.applyListResult(seq, res)
	return nil
}

func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}
	if err := a.reload(ctx); err != nil {
		printlnFn(failedToLoadMsg)
		return err
	}
	a.renderList()
	return nil
}

// GoToPage jumps to the requested page. Out-of-range pages are clamped
// before any request is issued.
func (a *App) GoToPage(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: page <n>")
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		printlnFn("Usage: page <n>")
		return nil
	}

	a.query.page = clampPage(n, a.totalPages)
	if err := a.reload(ctx); err != nil {
		printlnFn(failedToLoadMsg)
		return err
	}
	a.renderList()
	return nil
}

func (a *App) NextPage(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}
	if a.totalPages >= 1 && a.query.page >= a.totalPages {
		printlnFn("Already on the last page")
		return nil
	}
	a.query.page++
	if err := a.reload(ctx); err != nil {
		printlnFn(failedToLoadMsg)
		return err
	}
	a.renderList()
	return nil
}

func (a *App) PrevPage(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}
	if a.query.page <= 1 {
		printlnFn("Already on the first page")
		return nil
	}
	a.query.page--
	if err := a.reload(ctx); err != nil {
		printlnFn(failedToLoadMsg)
		return err
	}
	a.renderList()
	return nil
}

// Search prompts for search text and applies it. The search only takes
// effect through this explicit action and always resets to page 1.
func (a *App) Search(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}
	term, err := getSimpleText(a.reader, "Enter search text (empty to clear)", a.out)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	a.query.search = term
	a.query.page = 1
	if err := a.reload(ctx); err != nil {
		printlnFn(failedToLoadMsg)
		return err
	}
	a.renderList()
	return nil
}

// Filter sets the status filter and always resets to page 1.
func (a *App) Filter(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: filter <new|contacted|closed|all>")
		return nil
	}

	var status models.Status
	switch args[0] {
	case "all", "none":
		status = ""
	default:
		status = models.Status(args[0])
		if !status.Valid() {
			printlnFn("Usage: filter <new|contacted|closed|all>")
			return nil
		}
	}

	a.query.status = status
	a.query.page = 1
	if err := a.reload(ctx); err != nil {
		printlnFn(failedToLoadMsg)
		return err
	}
	a.renderList()
	return nil
}

func (a *App) renderList() {
	if len(a.items) == 0 {
		printlnFn("No submissions found")
	}
	for _, sub := range a.items {
		badge := models.StatusBadges[sub.Status]
		printlnFn(fmt.Sprintf("%s %s  %-10s %-25s %-25s %s",
			badge.Marker, sub.CreatedAt.Format("2006-01-02"), badge.Label, sub.Name, sub.Email, sub.Service))
		printlnFn("    id:", sub.ID)
	}
	printlnFn(a.paginationFooter())
}

// paginationFooter renders the page position, a bounded window of page
// numbers and the available navigation directions. Prev/next hints are
// suppressed at the edges.
func (a *App) paginationFooter() string {
	totalPages := a.totalPages
	if totalPages < 1 {
		totalPages = 1
	}

	footer := fmt.Sprintf("Page %d of %d (%d total)  ", a.query.page, totalPages, a.total)

	last := totalPages
	if last > pageWindow {
		last = pageWindow
	}
	for p := 1; p <= last; p++ {
		if p == a.query.page {
			footer += fmt.Sprintf("[%d] ", p)
		} else {
			footer += fmt.Sprintf("%d ", p)
		}
	}

	if a.query.page > 1 {
		footer += "<prev "
	}
	if a.query.page < totalPages {
		footer += "next>"
	}
	return footer
}
