package tracker

import (
	"github.com/julianstephens/habitlog/internal/engine"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/validation"
)

// HabitInput holds the user-editable fields of a new habit
type HabitInput struct {
	Title     string         `json:"title"`
	Purpose   string         `json:"purpose"`
	Cadence   models.Cadence `json:"cadence"`
	Frequency int            `json:"frequency"`
}

// HabitPatch changes only the fields that are set
type HabitPatch struct {
	Title     *string         `json:"title,omitempty"`
	Purpose   *string         `json:"purpose,omitempty"`
	Cadence   *models.Cadence `json:"cadence,omitempty"`
	Frequency *int            `json:"frequency,omitempty"`
}

// Detail is a habit with its history. Weekly habits also carry their blocks.
type Detail struct {
	Habit         models.Habit    `json:"habit"`
	Reports       []models.Report `json:"reports"`
	Blocks        []models.Block  `json:"blocks,omitempty"`
	ReportedToday bool            `json:"reported_today"`
}

type UpdateResult struct {
	Habit  models.Habit `json:"habit"`
	Reset  bool         `json:"reset"`
	Purged int64        `json:"purged_reports"`
}

func (t *Tracker) CreateHabit(owner string, in HabitInput) (models.Habit, error) {
	if owner == "" {
		return models.Habit{}, ErrOwnerRequired
	}

	h := validation.NormalizeHabit(models.Habit{
		ID:        t.newID(),
		Owner:     owner,
		Title:     in.Title,
		Purpose:   in.Purpose,
		Cadence:   in.Cadence,
		Frequency: in.Frequency,
		CreatedAt: t.now(),
	})
	if err := validation.ValidateHabit(h); err != nil {
		return models.Habit{}, err
	}
	if err := t.store.AddHabit(h); err != nil {
		return models.Habit{}, err
	}

	logger.Info("habit created", "habit", h.ID, "cadence", h.Cadence, "frequency", h.Frequency)
	return h, nil
}

func (t *Tracker) ListHabits(owner string) ([]models.Habit, error) {
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	return t.store.ListHabits(owner)
}

func (t *Tracker) GetHabit(owner, id string) (models.Habit, error) {
	return ownedHabit(t.store, owner, id)
}

func (t *Tracker) HabitDetail(owner, id string) (Detail, error) {
	h, err := ownedHabit(t.store, owner, id)
	if err != nil {
		return Detail{}, err
	}
	reports, err := t.store.ListReports(id)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{Habit: h, Reports: reports}
	if h.Cadence == models.CadenceWeekly {
		d.Blocks = engine.Partition(reports)
	}
	if n := len(reports); n > 0 {
		d.ReportedToday = reports[n-1].Day == t.todayString()
	}
	return d, nil
}

// apply returns h with the patch's fields set, normalized and validated.
func (p HabitPatch) apply(h models.Habit) (models.Habit, error) {
	if p.Title != nil {
		h.Title = *p.Title
	}
	if p.Purpose != nil {
		h.Purpose = *p.Purpose
	}
	if p.Cadence != nil {
		h.Cadence = *p.Cadence
		if h.Cadence == models.CadenceDaily && p.Frequency == nil {
			h.Frequency = 1
		}
	}
	if p.Frequency != nil {
		h.Frequency = *p.Frequency
	}
	h = validation.NormalizeHabit(h)
	if err := validation.ValidateHabit(h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// UpdateHabit applies patch. Changing cadence or frequency purges the habit's
// reports and zeroes its streak in the same transaction. The habit is re-read
// inside the transaction so a concurrent submission's streak is not overwritten.
func (t *Tracker) UpdateHabit(owner, id string, patch HabitPatch) (UpdateResult, error) {
	current, err := ownedHabit(t.store, owner, id)
	if err != nil {
		return UpdateResult{}, err
	}
	preview, err := patch.apply(current)
	if err != nil {
		return UpdateResult{}, err
	}
	if engine.RequiresReset(current, preview) && t.backups != nil {
		t.backups.Automatic("habit-edit")
	}

	var res UpdateResult
	err = t.store.WithTx(func(repo storage.Repository) error {
		old, err := ownedHabit(repo, owner, id)
		if err != nil {
			return err
		}
		updated, err := patch.apply(old)
		if err != nil {
			return err
		}

		res = UpdateResult{Reset: engine.RequiresReset(old, updated)}
		if res.Reset {
			n, err := repo.DeleteReports(id)
			if err != nil {
				return err
			}
			res.Purged = n
			updated.Streak = 0
		}
		if err := repo.UpdateHabit(updated); err != nil {
			return err
		}
		res.Habit = updated
		return nil
	})
	if err != nil {
		return UpdateResult{}, err
	}

	if res.Reset {
		logger.Info("habit history reset", "habit", id, "purged", res.Purged,
			"cadence", res.Habit.Cadence, "frequency", res.Habit.Frequency)
	}
	return res, nil
}

// DeleteHabit removes the habit and every report it owns.
func (t *Tracker) DeleteHabit(owner, id string) error {
	if _, err := ownedHabit(t.store, owner, id); err != nil {
		return err
	}
	err := t.store.WithTx(func(repo storage.Repository) error {
		if _, err := repo.DeleteReports(id); err != nil {
			return err
		}
		return repo.DeleteHabit(id)
	})
	if err != nil {
		return err
	}
	logger.Info("habit deleted", "habit", id)
	return nil
}
