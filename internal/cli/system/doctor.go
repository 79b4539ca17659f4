package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/keyring"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
	"github.com/julianstephens/habitlog/internal/utils"
	"github.com/julianstephens/habitlog/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(*cli.Context) error
	needsDB  bool
	gatesDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable, gatesDB: true},
	{name: "Schema version", run: checkSchema, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Habit integrity", run: checkHabitIntegrity, needsDB: true},
	{name: "OS keyring", run: checkKeyring, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
			if c.gatesDB {
				dbReachable = true
			}
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		return errors.New("one or more checks failed")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	return ctx.Store.Load()
}

func checkSchema(ctx *cli.Context) error {
	status, err := ctx.Store.SchemaStatus()
	if err != nil {
		return err
	}
	if !status.UpToDate() {
		return fmt.Errorf("schema version %d, latest %d (%d pending); run 'habitlog migrate'",
			status.Current, status.Latest, len(status.Pending))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok || ctx.Backups == nil {
		return errors.New("backups are only managed for SQLite storage")
	}
	backups, err := ctx.Backups.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s; run 'habitlog backup create'", ctx.Backups.BackupDir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	if ctx.Tracker == nil {
		return errors.New("tracker not configured")
	}
	now := time.Now()
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	loc := ctx.Tracker.Location()
	fmt.Printf("   Today is %s in %s\n", utils.FormatDay(ctx.Tracker.Today()), loc)
	return nil
}

// checkHabitIntegrity validates every stored habit of the current owner and
// its report history.
func checkHabitIntegrity(ctx *cli.Context) error {
	owner, err := ctx.RequireOwner()
	if err != nil {
		return err
	}
	habits, err := ctx.Tracker.ListHabits(owner)
	if err != nil {
		return err
	}

	var problems []error
	for _, h := range habits {
		if err := validation.ValidateHabit(h); err != nil {
			problems = append(problems, fmt.Errorf("habit %s: %w", h.ID, err))
		}
		d, err := ctx.Tracker.HabitDetail(owner, h.ID)
		if err != nil {
			problems = append(problems, fmt.Errorf("habit %s: %w", h.ID, err))
			continue
		}
		for i := 1; i < len(d.Reports); i++ {
			if d.Reports[i].Day <= d.Reports[i-1].Day {
				problems = append(problems, fmt.Errorf("habit %s: reports out of order at %s", h.ID, d.Reports[i].Day))
				break
			}
		}
	}
	return errors.Join(problems...)
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
