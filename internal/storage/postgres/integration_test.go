package postgres

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

// Set POSTGRES_TEST_URL to run, e.g.
// POSTGRES_TEST_URL="postgres://habitlog@localhost:5432/habitlog_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	id := "it-" + time.Now().Format("150405.000000000")
	habit := models.Habit{
		ID:        id,
		Owner:     "integration",
		Title:     "Integration habit",
		Cadence:   models.CadenceDaily,
		Frequency: 1,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit() error = %v", err)
	}
	t.Cleanup(func() { _ = store.DeleteHabit(id) })

	t.Run("Habits", func(t *testing.T) {
		got, err := store.GetHabit(id)
		if err != nil {
			t.Fatalf("GetHabit() error = %v", err)
		}
		if got.Title != habit.Title || got.Cadence != models.CadenceDaily {
			t.Errorf("GetHabit() = %+v", got)
		}
		if _, err := store.GetHabit("missing-" + id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetHabit() missing error = %v, want ErrNotFound", err)
		}
	})

	t.Run("Reports", func(t *testing.T) {
		err := store.WithTx(func(repo storage.Repository) error {
			for i, day := range []string{"2026-01-03", "2026-01-01", "2026-01-02"} {
				rep := models.Report{ID: id + "-" + day, HabitID: id, Status: models.StatusCompleted, Day: day, CreatedAt: time.Now().Add(time.Duration(i) * time.Second)}
				if err := repo.InsertReport(rep); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			t.Fatalf("WithTx() error = %v", err)
		}

		reports, err := store.ListReports(id)
		if err != nil {
			t.Fatalf("ListReports() error = %v", err)
		}
		if len(reports) != 3 || reports[0].Day != "2026-01-01" || reports[2].Day != "2026-01-03" {
			t.Errorf("ListReports() = %+v", reports)
		}

		dup := models.Report{ID: id + "-dup", HabitID: id, Status: models.StatusIncomplete, Day: "2026-01-01", CreatedAt: time.Now()}
		if err := store.InsertReport(dup); !errors.Is(err, storage.ErrDuplicate) {
			t.Errorf("InsertReport() duplicate error = %v, want ErrDuplicate", err)
		}
	})
}
