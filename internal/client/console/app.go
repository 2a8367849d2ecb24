// Package console implements the interactive admin console: a session gate
// over the backend's basic auth, a paginated and filterable submission
// listing, status mutations and CSV export, driven by a small REPL.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nichedigital/leaddesk/internal/client/api"
	"github.com/nichedigital/leaddesk/internal/client/config"
	"github.com/nichedigital/leaddesk/internal/client/models"
)

const (
	// pageSize is fixed; the backend returns at most this many items per page.
	pageSize = 10
	// pageWindow bounds how many page-number buttons the footer renders.
	pageWindow = 5
)

// queryState is the (page, search, status) triple driving the listing view.
// Changing search or status resets page to 1.
type queryState struct {
	page   int
	search string
	status models.Status
}

type App struct {
	config *config.Config
	api    api.Client
	reader *bufio.Reader
	out    io.Writer

	authenticated bool
	userName      string
	stats         *models.Stats

	query      queryState
	totalPages int
	total      int
	items      []models.Submission
	detail     *models.Submission

	// seq is the sequence number of the most recently issued list request.
	// A response is applied only if its request is still the newest issued.
	seq      uint64
	inFlight bool
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewHTTPClient(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		query:  queryState{page: 1},
	}
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Lead Desk admin console (type 'help' for commands)")
	_ = a.Login(ctx)
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.authenticated
}

func (a *App) isBusy() bool {
	return a.inFlight
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}
