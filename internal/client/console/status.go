package console

import (
	"context"

	"github.com/nichedigital/leaddesk/internal/client/models"
)

const failedToUpdateMsg = "Failed to update status. Please try again."

// SetStatus sends one targeted status update, then re-runs the last
// (page, search, status) listing so the view reflects server truth rather
// than a local guess. The stats snapshot is not refreshed.
func (a *App) SetStatus(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}
	if len(args) < 2 {
		printlnFn("Usage: status <id> <new|contacted|closed>")
		return nil
	}

	id := args[0]
	status := models.Status(args[1])
	if !status.Valid() {
		printlnFn("Usage: status <id> <new|contacted|closed>")
		return nil
	}

	a.inFlight = true
	err := a.api.UpdateStatus(ctx, id, status)
	a.inFlight = false
	if err != nil {
		printlnFn(failedToUpdateMsg)
		return err
	}

	// Keep an open detail view current without waiting for the reload.
	if a.detail != nil && a.detail.ID == id {
		a.detail.Status = status
	}
	printlnFn("Status updated")

	if err := a.reload(ctx); err != nil {
		printlnFn(failedToLoadMsg)
		return nil
	}
	a.renderList()
	return nil
}

// Show opens a detail view for one submission from the current page.
func (a *App) Show(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}
	if len(args) == 0 {
		printlnFn("Usage: show <id>")
		return nil
	}

	for i := range a.items {
		if a.items[i].ID == args[0] {
			sub := a.items[i]
			a.detail = &sub
			a.renderDetail()
			return nil
		}
	}
	printlnFn("No submission with id", args[0], "on the current page")
	return nil
}

func (a *App) renderDetail() {
	sub := a.detail
	badge := models.StatusBadges[sub.Status]
	printlnFn("id:          ", sub.ID)
	printlnFn("created:     ", sub.CreatedAt.Format("2006-01-02 15:04:05"))
	printlnFn("status:      ", badge.Marker, badge.Label)
	printlnFn("name:        ", sub.Name)
	if sub.BusinessName != "" {
		printlnFn("business:    ", sub.BusinessName)
	}
	printlnFn("email:       ", sub.Email)
	if sub.Phone != "" {
		printlnFn("phone:       ", sub.Phone)
	}
	if sub.Service != "" {
		printlnFn("service:     ", sub.Service)
	}
	if sub.Message != "" {
		printlnFn("message:     ", sub.Message)
	}
}
