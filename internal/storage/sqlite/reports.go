package sqlite

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

func (r repo) ListReports(habitID string) ([]models.Report, error) {
	rows, err := r.q.Query(`
		SELECT id, habit_id, status, day, comment, created_at
		FROM reports WHERE habit_id = ?
		ORDER BY day, created_at, id`, habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []models.Report{}
	for rows.Next() {
		var rep models.Report
		var status, createdAt string
		if err := rows.Scan(&rep.ID, &rep.HabitID, &status, &rep.Day, &rep.Comment, &createdAt); err != nil {
			return nil, err
		}
		rep.Status = models.Status(status)
		rep.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for report %s: %w", rep.ID, err)
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r repo) InsertReport(rep models.Report) error {
	_, err := r.q.Exec(`
		INSERT INTO reports (id, habit_id, status, day, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rep.ID, rep.HabitID, string(rep.Status), rep.Day, rep.Comment, formatTime(rep.CreatedAt))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("report for %s: %w", rep.Day, storage.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert report for %s: %w", rep.Day, err)
	}
	return nil
}

func (r repo) DeleteReports(habitID string) (int64, error) {
	res, err := r.q.Exec(`DELETE FROM reports WHERE habit_id = ?`, habitID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reports: %w", err)
	}
	return res.RowsAffected()
}
