package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

// timeLayout keeps created_at sortable as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type repo struct {
	q dbtx
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	var cadence, createdAt string
	if err := row.Scan(&h.ID, &h.Owner, &h.Title, &h.Purpose, &cadence, &h.Frequency, &h.Streak, &createdAt); err != nil {
		return models.Habit{}, err
	}
	h.Cadence = models.Cadence(cadence)

	var err error
	h.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	return h, nil
}

const habitColumns = `id, owner, title, purpose, cadence, frequency, streak, created_at`

func (r repo) AddHabit(h models.Habit) error {
	_, err := r.q.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Owner, h.Title, h.Purpose, string(h.Cadence), h.Frequency, h.Streak, formatTime(h.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	return nil
}

func (r repo) GetHabit(id string) (models.Habit, error) {
	row := r.q.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to get habit: %w", err)
	}
	return h, nil
}

func (r repo) ListHabits(owner string) ([]models.Habit, error) {
	rows, err := r.q.Query(`
		SELECT `+habitColumns+`
		FROM habits WHERE owner = ?
		ORDER BY created_at DESC, id`, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (r repo) UpdateHabit(h models.Habit) error {
	res, err := r.q.Exec(`
		UPDATE habits
		SET title = ?, purpose = ?, cadence = ?, frequency = ?, streak = ?
		WHERE id = ?`,
		h.Title, h.Purpose, string(h.Cadence), h.Frequency, h.Streak, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireRow(res, "habit", h.ID)
}

func (r repo) DeleteHabit(id string) error {
	res, err := r.q.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return requireRow(res, "habit", id)
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
