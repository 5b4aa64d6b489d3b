// Package persist provides snapshot adapters for the in-memory store. The
// in-memory maps stay the source of truth during a run; adapters dump them to
// durable storage after each mutation and reload them at start-up.
package persist

import "github.com/mtlahti/choreboard/internal/model"

// Snapshot is a point-in-time copy of the three persisted maps, each keyed by
// its natural key (date, user id, content key).
type Snapshot struct {
	DayPlans map[string]model.DayPlan `json:"day_plans"`
	Users    map[string]model.User    `json:"users"`
	Content  map[string]model.Content `json:"content"`
}

// NewSnapshot returns an empty snapshot with all maps allocated.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		DayPlans: make(map[string]model.DayPlan),
		Users:    make(map[string]model.User),
		Content:  make(map[string]model.Content),
	}
}

// Adapter is a pluggable durable sink. Saves are per-map so each mutation
// writes only the map it touched. Implementations must tolerate Load before
// any Save (returning an empty snapshot).
type Adapter interface {
	Load() (*Snapshot, error)
	SaveDayPlans(plans map[string]model.DayPlan) error
	SaveUsers(users map[string]model.User) error
	SaveContent(content map[string]model.Content) error
	Close() error
}
