package console

import (
	"context"
	"os"
	"time"
)

const failedToExportMsg = "Failed to export. Please try again."

// Test seams for the filesystem write and the filename date.
var (
	writeFile = os.WriteFile
	nowFn     = time.Now
)

// Export downloads the full CSV, ignoring the current search, filter and
// page, and writes it next to the binary. Nothing is written on failure.
func (a *App) Export(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}

	a.inFlight = true
	data, err := a.api.ExportCSV(ctx)
	a.inFlight = false
	if err != nil {
		printlnFn(failedToExportMsg)
		return err
	}

	filename := a.config.ExportPrefix + "_" + nowFn().Format("2006-01-02") + ".csv"
	if err := writeFile(filename, data, 0o644); err != nil {
		printlnFn(failedToExportMsg)
		return err
	}

	printlnFn("Exported to", filename)
	return nil
}
