package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	pq "github.com/lib/pq"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

const uniqueViolation = pq.ErrorCode("23505")

type dbtx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type repo struct {
	q dbtx
}

type scanner interface {
	Scan(dest ...any) error
}

const habitColumns = `id, owner, title, purpose, cadence, frequency, streak, created_at`

func scanHabit(row scanner) (models.Habit, error) {
	var h models.Habit
	var cadence string
	if err := row.Scan(&h.ID, &h.Owner, &h.Title, &h.Purpose, &cadence, &h.Frequency, &h.Streak, &h.CreatedAt); err != nil {
		return models.Habit{}, err
	}
	h.Cadence = models.Cadence(cadence)
	return h, nil
}

func (r repo) AddHabit(h models.Habit) error {
	_, err := r.q.Exec(`
INSERT INTO habits (`+habitColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		h.ID, h.Owner, h.Title, h.Purpose, string(h.Cadence), h.Frequency, h.Streak, h.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	return nil
}

func (r repo) GetHabit(id string) (models.Habit, error) {
	h, err := scanHabit(r.q.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = $1`, id))
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
FROM habits WHERE owner = $1
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
SET title = $1, purpose = $2, cadence = $3, frequency = $4, streak = $5
WHERE id = $6`,
		h.Title, h.Purpose, string(h.Cadence), h.Frequency, h.Streak, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireRow(res, "habit", h.ID)
}

func (r repo) DeleteHabit(id string) error {
	res, err := r.q.Exec(`DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return requireRow(res, "habit", id)
}

func (r repo) ListReports(habitID string) ([]models.Report, error) {
	rows, err := r.q.Query(`
SELECT id, habit_id, status, to_char(day, 'YYYY-MM-DD'), comment, created_at
FROM reports WHERE habit_id = $1
ORDER BY day, created_at, id`, habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		var rep models.Report
		var status string
		if err := rows.Scan(&rep.ID, &rep.HabitID, &status, &rep.Day, &rep.Comment, &rep.CreatedAt); err != nil {
			return nil, err
		}
		rep.Status = models.Status(status)
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r repo) InsertReport(rep models.Report) error {
	_, err := r.q.Exec(`
INSERT INTO reports (id, habit_id, status, day, comment, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
		rep.ID, rep.HabitID, string(rep.Status), rep.Day, rep.Comment, rep.CreatedAt.UTC())
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("report for %s: %w", rep.Day, storage.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert report for %s: %w", rep.Day, err)
	}
	return nil
}

func (r repo) DeleteReports(habitID string) (int64, error) {
	res, err := r.q.Exec(`DELETE FROM reports WHERE habit_id = $1`, habitID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reports: %w", err)
	}
	return res.RowsAffected()
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
