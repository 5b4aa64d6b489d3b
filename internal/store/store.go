// Package store defines the capability interfaces the request layer depends
// on. The in-memory implementation lives in store/memory; durable snapshot
// adapters live in store/persist.
package store

import (
	"time"

	"github.com/mtlahti/choreboard/internal/model"
)

// DayPlans holds one record per calendar date (YYYY-MM-DD). Point lookups
// return (nil, nil) for dates never written; every mutator lazily creates the
// default record for an unseen date, so no separate create step exists.
type DayPlans interface {
	GetByDate(date string) (*model.DayPlan, error)

	// GetRange returns one plan per input date in the same order. Dates with
	// no stored record get a transient all-empty plan with a fresh id; these
	// synthesized plans are not persisted.
	GetRange(dates []string) ([]model.DayPlan, error)

	// Upsert shallow-merges the patch over the existing record, creating a
	// default record first if the date is unseen. Provided fields win,
	// omitted fields keep their prior value.
	Upsert(date string, patch model.DayPlanPatch) (*model.DayPlan, error)

	AssignTask(date string, kind model.TaskKind, assignee *string) (*model.DayPlan, error)
	SetAloneInKitchen(date string, value *string) (*model.DayPlan, error)
	SetDishOfTheDay(date string, value *string) (*model.DayPlan, error)

	// ResetTasks wipes all mutable fields back to their defaults, keeping
	// date and id. It is idempotent and never deletes the record.
	ResetTasks(date string) (*model.DayPlan, error)

	AddShoppingItem(date, item string) (*model.DayPlan, error)

	// RemoveShoppingItem removes the element at the 0-based index. An
	// out-of-range index is a silent no-op.
	RemoveShoppingItem(date string, index int) (*model.DayPlan, error)

	ReplaceShoppingList(date string, items []string) (*model.DayPlan, error)

	// EnsureDates creates and persists default records for any of the given
	// dates that don't exist yet. Used to pre-populate the current week at
	// start-up.
	EnsureDates(dates []string) error
}

// Users holds profile records keyed by opaque id.
type Users interface {
	GetByID(id string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)

	// Upsert creates the user with defaults for omitted fields if id is
	// unseen, otherwise merges the patch over the existing record. CreatedAt
	// is set once and never touched again; UpdatedAt refreshes every call.
	Upsert(id string, patch model.UserPatch) (*model.User, error)

	Count() (int, error)
}

// Contents holds admin-editable UI text keyed by content key.
type Contents interface {
	Get(key string) (*model.Content, error)
	GetAll() ([]model.Content, error)

	// Upsert keeps the original id when the key already exists, mints a new
	// one otherwise, and always refreshes UpdatedAt.
	Upsert(key, value string, description *string) (*model.Content, error)

	// Delete reports whether a record existed and was removed.
	Delete(key string) (bool, error)

	// SeedDefaults inserts the fixed set of known keys that are absent.
	SeedDefaults() error
}

// Sessions are ephemeral per process run and never snapshotted.
type Sessions interface {
	Create(userID string, ttl time.Duration) (*model.Session, error)
	GetByToken(token string) (*model.Session, error)
	Delete(token string) error
	DeleteExpired() int
}

// PushSubscriptions holds web-push endpoints for the daily chore digest.
type PushSubscriptions interface {
	Create(endpoint, p256dhKey, authKey string) (*model.PushSubscription, error)
	List() ([]model.PushSubscription, error)
	Delete(id string) (bool, error)
}
