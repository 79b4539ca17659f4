package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitlog/internal/backup"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage/sqlite"
	"github.com/julianstephens/habitlog/internal/tracker"
)

func setupContext(t *testing.T) (*Context, *time.Time) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitlog.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	now := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	mgr := backup.NewManager(dbPath)
	tr := tracker.New(store,
		tracker.WithClock(func() time.Time { return now }),
		tracker.WithLocation(time.UTC),
		tracker.WithBackups(mgr),
	)
	return &Context{Store: store, Tracker: tr, Backups: mgr, Owner: "alice"}, &now
}

func onlyHabit(t *testing.T, ctx *Context) models.Habit {
	t.Helper()
	habits, err := ctx.Tracker.ListHabits("alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}
	return habits[0]
}

func TestRequireOwner(t *testing.T) {
	ctx := &Context{Owner: "  "}
	if _, err := ctx.RequireOwner(); err == nil {
		t.Error("expected error for blank owner")
	}
	for _, cmd := range []interface{ Run(*Context) error }{
		&HabitAddCmd{Title: "Read", Cadence: "daily", Frequency: 1},
		&HabitListCmd{},
		&ReportCmd{HabitID: "x", Status: "completed"},
	} {
		if err := cmd.Run(ctx); err == nil {
			t.Errorf("%T ran without an owner", cmd)
		}
	}
}

func TestHabitAddCmd(t *testing.T) {
	tests := []struct {
		name    string
		cmd     HabitAddCmd
		wantErr bool
	}{
		{name: "daily", cmd: HabitAddCmd{Title: "Read", Cadence: "daily", Frequency: 1}},
		{name: "weekly alias", cmd: HabitAddCmd{Title: "Gym", Cadence: "week", Frequency: 3}},
		{name: "bad cadence", cmd: HabitAddCmd{Title: "Gym", Cadence: "monthly", Frequency: 3}, wantErr: true},
		{name: "daily with frequency", cmd: HabitAddCmd{Title: "Walk", Cadence: "daily", Frequency: 2}, wantErr: true},
		{name: "empty title", cmd: HabitAddCmd{Title: " ", Cadence: "daily", Frequency: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupContext(t)
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			h := onlyHabit(t, ctx)
			if h.Title != tt.cmd.Title || h.Frequency != tt.cmd.Frequency || h.Streak != 0 {
				t.Errorf("stored habit = %+v", h)
			}
			if err := (&HabitListCmd{}).Run(ctx); err != nil {
				t.Errorf("list failed: %v", err)
			}
			if err := (&HabitShowCmd{ID: h.ID}).Run(ctx); err != nil {
				t.Errorf("show failed: %v", err)
			}
		})
	}
}

func TestReportAndEditCmds(t *testing.T) {
	ctx, now := setupContext(t)
	if err := (&HabitAddCmd{Title: "Gym", Cadence: "weekly", Frequency: 2}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	h := onlyHabit(t, ctx)

	if err := (&ReportCmd{HabitID: h.ID, Status: "completed", Comment: "legs"}).Run(ctx); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if err := (&ReportCmd{HabitID: h.ID, Status: "incomplete"}).Run(ctx); err == nil {
		t.Error("second report on the same day succeeded")
	}

	*now = now.AddDate(0, 0, 3)
	if err := (&ReportCmd{HabitID: h.ID, Status: "completed"}).Run(ctx); err != nil {
		t.Fatalf("report after gap failed: %v", err)
	}
	d, err := ctx.Tracker.HabitDetail("alice", h.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Reports) != 4 {
		t.Fatalf("expected 4 reports including backfill, got %d", len(d.Reports))
	}

	title := "Gym sessions"
	if err := (&HabitEditCmd{ID: h.ID, Title: &title}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if d, _ := ctx.Tracker.HabitDetail("alice", h.ID); len(d.Reports) != 4 || d.Habit.Title != title {
		t.Errorf("title edit changed history: %+v", d)
	}

	freq := 4
	if err := (&HabitEditCmd{ID: h.ID, Frequency: &freq}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	d, _ = ctx.Tracker.HabitDetail("alice", h.ID)
	if len(d.Reports) != 0 || d.Habit.Streak != 0 || d.Habit.Frequency != 4 {
		t.Errorf("frequency edit did not reset: %+v", d)
	}

	bad := "hourly"
	if err := (&HabitEditCmd{ID: h.ID, Cadence: &bad}).Run(ctx); err == nil {
		t.Error("expected error for invalid cadence")
	}
}

func TestHabitDeleteCmd(t *testing.T) {
	ctx, _ := setupContext(t)
	if err := (&HabitAddCmd{Title: "Read", Cadence: "daily", Frequency: 1}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	h := onlyHabit(t, ctx)

	other := &Context{Store: ctx.Store, Tracker: ctx.Tracker, Owner: "bob"}
	if err := (&HabitDeleteCmd{ID: h.ID, Yes: true}).Run(other); err == nil {
		t.Error("bob deleted alice's habit")
	}

	if err := (&HabitDeleteCmd{ID: h.ID, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if habits, _ := ctx.Tracker.ListHabits("alice"); len(habits) != 0 {
		t.Errorf("habit still listed after delete")
	}
	if backups, _ := ctx.Backups.ListBackups(); len(backups) == 0 {
		t.Error("delete did not take an automatic backup")
	}
}

func TestFormatCadence(t *testing.T) {
	if got := FormatCadence(models.Habit{Cadence: models.CadenceDaily, Frequency: 1}); got != "daily" {
		t.Errorf("FormatCadence(daily) = %q", got)
	}
	if got := FormatCadence(models.Habit{Cadence: models.CadenceWeekly, Frequency: 3}); got != "weekly (3/7)" {
		t.Errorf("FormatCadence(weekly) = %q", got)
	}
}
