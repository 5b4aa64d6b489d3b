// Package memory implements the store interfaces on process-local maps,
// optionally mirrored to a persist.Adapter after each mutation. The maps are
// the source of truth during a run; adapter failures are logged and never
// surfaced to the caller of a mutating operation.
package memory

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/mtlahti/choreboard/internal/model"
	"github.com/mtlahti/choreboard/internal/store/persist"
)

// Store holds the shared state behind the per-entity store types. A single
// RWMutex serializes all mutations, which is the whole concurrency model:
// every mutation is a read-modify-write under the write lock, last write
// wins, no cross-record transactions.
type Store struct {
	mu       sync.RWMutex
	plans    map[string]*model.DayPlan
	users    map[string]*model.User
	content  map[string]*model.Content
	sessions map[string]*model.Session
	subs     map[string]*model.PushSubscription
	adapter  persist.Adapter
	logger   *slog.Logger
}

// Open creates a Store, loading prior state from the adapter when one is
// given. A nil adapter means pure in-memory operation.
func Open(adapter persist.Adapter, logger *slog.Logger) (*Store, error) {
	s := &Store{
		plans:    make(map[string]*model.DayPlan),
		users:    make(map[string]*model.User),
		content:  make(map[string]*model.Content),
		sessions: make(map[string]*model.Session),
		subs:     make(map[string]*model.PushSubscription),
		adapter:  adapter,
		logger:   logger,
	}

	if adapter != nil {
		snap, err := adapter.Load()
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		for date, p := range snap.DayPlans {
			plan := p
			s.plans[date] = &plan
		}
		for id, u := range snap.Users {
			user := u
			s.users[id] = &user
		}
		for key, c := range snap.Content {
			content := c
			s.content[key] = &content
		}
	}

	return s, nil
}

// Snapshot returns a deep copy of the persisted maps, for backups.
func (s *Store) Snapshot() *persist.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := persist.NewSnapshot()
	for date, p := range s.plans {
		snap.DayPlans[date] = *p.Clone()
	}
	for id, u := range s.users {
		snap.Users[id] = *cloneUser(u)
	}
	for key, c := range s.content {
		snap.Content[key] = *cloneContent(c)
	}
	return snap
}

// persistDayPlans mirrors the day-plan map to the adapter. Must be called
// with the write lock held. Errors are logged, not returned: durability is
// best-effort and the in-memory mutation already succeeded.
func (s *Store) persistDayPlans() {
	if s.adapter == nil {
		return
	}
	out := make(map[string]model.DayPlan, len(s.plans))
	for date, p := range s.plans {
		out[date] = *p.Clone()
	}
	if err := s.adapter.SaveDayPlans(out); err != nil {
		s.logger.Error("persist day plans", "error", err)
	}
}

func (s *Store) persistUsers() {
	if s.adapter == nil {
		return
	}
	out := make(map[string]model.User, len(s.users))
	for id, u := range s.users {
		out[id] = *cloneUser(u)
	}
	if err := s.adapter.SaveUsers(out); err != nil {
		s.logger.Error("persist users", "error", err)
	}
}

func (s *Store) persistContent() {
	if s.adapter == nil {
		return
	}
	out := make(map[string]model.Content, len(s.content))
	for key, c := range s.content {
		out[key] = *cloneContent(c)
	}
	if err := s.adapter.SaveContent(out); err != nil {
		s.logger.Error("persist content", "error", err)
	}
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneUser(u *model.User) *model.User {
	c := *u
	c.Email = cloneString(u.Email)
	c.FirstName = cloneString(u.FirstName)
	c.LastName = cloneString(u.LastName)
	c.ProfileImageURL = cloneString(u.ProfileImageURL)
	return &c
}

func cloneContent(c *model.Content) *model.Content {
	out := *c
	out.Description = cloneString(c.Description)
	return &out
}
