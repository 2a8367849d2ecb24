package console

import (
	"context"
	"errors"

	"github.com/nichedigital/leaddesk/internal/client/api"
	"github.com/nichedigital/leaddesk/internal/client/models"
)

const (
	invalidCredentialsMsg = "Invalid credentials. Please check your username and password."
	authUnavailableMsg    = "Server unavailable. Please try again later."
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Login prompts for credentials, derives the basic token and probes the
// statistics endpoint. Only a successful probe authenticates the session;
// on success the snapshot is cached and page 1 is loaded unfiltered.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	a.api.SetCredentials(userName, string(password))

	stats, err := a.api.Stats(ctx)
	if err != nil {
		a.api.ClearCredentials()
		if errors.Is(err, api.ErrInvalidCredentials) {
			printlnFn(invalidCredentialsMsg)
		} else {
			printlnFn(authUnavailableMsg)
		}
		return err
	}

	a.authenticated = true
	a.userName = userName
	a.stats = stats
	a.query = queryState{page: 1}
	a.totalPages = 0
	printlnFn("Login successful")
	a.printStats()

	if err := a.reload(ctx); err != nil {
		printlnFn(failedToLoadMsg)
		return nil
	}
	a.renderList()
	return nil
}

// Logout is a pure local transition: it clears the authenticated flag and
// the stored token without any network call.
func (a *App) Logout(ctx context.Context) error {
	a.api.ClearCredentials()
	a.authenticated = false
	a.userName = ""
	a.stats = nil
	a.query = queryState{page: 1}
	a.totalPages = 0
	a.total = 0
	a.items = nil
	a.detail = nil
	printlnFn("Logged out")
	return nil
}

// Stats prints the snapshot cached at login. It is not refetched; a fresh
// snapshot requires logging in again.
func (a *App) Stats(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}
	a.printStats()
	return nil
}

func (a *App) printStats() {
	if a.stats == nil {
		return
	}
	printlnFn("Submissions:", a.stats.TotalSubmissions,
		"| today:", a.stats.SubmissionsToday,
		"| this week:", a.stats.SubmissionsThisWeek,
		"| this month:", a.stats.SubmissionsThisMonth)
	for _, status := range []models.Status{models.StatusNew, models.StatusContacted, models.StatusClosed} {
		badge := models.StatusBadges[status]
		printlnFn(" ", badge.Marker, badge.Label+":", a.stats.StatusBreakdown[status])
	}
	for _, sc := range a.stats.PopularServices {
		printlnFn("  service:", sc.Service, "-", sc.Count)
	}
}
