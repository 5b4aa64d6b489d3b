package memory

import (
	"fmt"
	"time"

	"github.com/mtlahti/choreboard/internal/model"
)

type UserStore struct {
	s *Store
}

func NewUserStore(s *Store) *UserStore {
	return &UserStore{s: s}
}

func (us *UserStore) GetByID(id string) (*model.User, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()

	u, ok := us.s.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (us *UserStore) GetByEmail(email string) (*model.User, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()

	for _, u := range us.s.users {
		if u.Email != nil && *u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (us *UserStore) Count() (int, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()
	return len(us.s.users), nil
}

func (us *UserStore) Upsert(id string, patch model.UserPatch) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user id is required")
	}

	us.s.mu.Lock()
	defer us.s.mu.Unlock()

	now := time.Now().UTC()
	u, ok := us.s.users[id]
	if !ok {
		u = &model.User{ID: id, CreatedAt: now}
		us.s.users[id] = u
	}

	if patch.Email != nil {
		u.Email = cloneString(patch.Email)
	}
	if patch.FirstName != nil {
		u.FirstName = cloneString(patch.FirstName)
	}
	if patch.LastName != nil {
		u.LastName = cloneString(patch.LastName)
	}
	if patch.ProfileImageURL != nil {
		u.ProfileImageURL = cloneString(patch.ProfileImageURL)
	}
	if patch.AdminSet {
		u.IsAdmin = patch.IsAdmin
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	u.UpdatedAt = now

	us.s.persistUsers()
	return cloneUser(u), nil
}
