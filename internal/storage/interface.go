package storage

import (
	"github.com/julianstephens/habitlog/internal/migration"
	"github.com/julianstephens/habitlog/internal/models"
)

// Repository is the set of reads and writes the tracker performs. It is
// implemented both by a Provider and by the handle passed to WithTx.
type Repository interface {
	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	// ListHabits returns the owner's habits, newest first.
	ListHabits(owner string) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error

	// Reports
	// ListReports returns a habit's reports oldest first, ordered by
	// (day, created_at, id).
	ListReports(habitID string) ([]models.Report, error)
	InsertReport(models.Report) error
	DeleteReports(habitID string) (int64, error)
}

type Provider interface {
	Repository

	// Lifecycle
	Init() error
	Load() error
	Close() error

	// WithTx runs fn inside a single transaction. The transaction commits when
	// fn returns nil and rolls back otherwise.
	WithTx(fn func(Repository) error) error

	// Migrate applies pending migrations and returns how many ran.
	Migrate() (int, error)

	// SchemaStatus reports the applied and available migrations.
	SchemaStatus() (migration.Status, error)

	// Utils
	GetConfigPath() string
}
