package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/habitlog/internal/backup"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/tracker"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
	// Backups is nil when the store is not a local SQLite file.
	Backups *backup.Manager
	Owner   string
	Addr    string
}

// RequireOwner returns the configured owner or an error pointing at the flag.
func (c *Context) RequireOwner() (string, error) {
	owner := strings.TrimSpace(c.Owner)
	if owner == "" {
		return "", errors.New("no owner configured: pass --owner or set HABITLOG_OWNER")
	}
	return owner, nil
}

// PerformAutomaticBackup snapshots the database, logging instead of failing.
func (c *Context) PerformAutomaticBackup(reason string) {
	if c.Backups != nil {
		c.Backups.Automatic(reason)
	}
}

// FormatCadence renders a habit's schedule for listings.
func FormatCadence(h models.Habit) string {
	if h.Cadence == models.CadenceWeekly {
		return fmt.Sprintf("weekly (%d/7)", h.Frequency)
	}
	return "daily"
}
