// Package tracker runs habit operations against storage: habit CRUD, the edit
// guard and the report submission pipeline. Each mutating operation executes
// inside a single storage transaction.
package tracker

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/utils"
)

// Snapshotter takes a best-effort backup before destructive edits.
type Snapshotter interface {
	Automatic(reason string)
}

type Tracker struct {
	store   storage.Provider
	now     func() time.Time
	loc     *time.Location
	newID   func() string
	backups Snapshotter
}

type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLocation sets the timezone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

func WithBackups(s Snapshotter) Option {
	return func(t *Tracker) { t.backups = s }
}

func WithIDs(newID func() string) Option {
	return func(t *Tracker) { t.newID = newID }
}

func New(store storage.Provider, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		now:   time.Now,
		loc:   time.Local,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Today returns midnight of the current calendar day in the tracker's timezone.
func (t *Tracker) Today() time.Time {
	return utils.StartOfDay(t.now().In(t.loc))
}

func (t *Tracker) Location() *time.Location { return t.loc }

// ownedHabit loads a habit and hides it unless owner owns it.
func ownedHabit(repo storage.Repository, owner, id string) (models.Habit, error) {
	if owner == "" {
		return models.Habit{}, ErrOwnerRequired
	}
	h, err := repo.GetHabit(id)
	if err != nil {
		return models.Habit{}, err
	}
	if !h.OwnedBy(owner) {
		logger.Debug("habit requested by non-owner", "habit", id, "owner", owner)
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, storage.ErrNotFound)
	}
	return h, nil
}
