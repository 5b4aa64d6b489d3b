package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/mtlahti/choreboard/internal/model"
)

type PushStore struct {
	s *Store
}

func NewPushStore(s *Store) *PushStore {
	return &PushStore{s: s}
}

// Create registers a browser's push endpoint. Re-subscribing an endpoint
// replaces the old record rather than duplicating it.
func (ps *PushStore) Create(endpoint, p256dhKey, authKey string) (*model.PushSubscription, error) {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	for id, sub := range ps.s.subs {
		if sub.Endpoint == endpoint {
			delete(ps.s.subs, id)
		}
	}

	sub := &model.PushSubscription{
		ID:        uuid.NewString(),
		Endpoint:  endpoint,
		P256dhKey: p256dhKey,
		AuthKey:   authKey,
		CreatedAt: time.Now().UTC(),
	}
	ps.s.subs[sub.ID] = sub

	out := *sub
	return &out, nil
}

func (ps *PushStore) List() ([]model.PushSubscription, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	subs := make([]model.PushSubscription, 0, len(ps.s.subs))
	for _, sub := range ps.s.subs {
		subs = append(subs, *sub)
	}
	return subs, nil
}

func (ps *PushStore) Delete(id string) (bool, error) {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	if _, ok := ps.s.subs[id]; !ok {
		return false, nil
	}
	delete(ps.s.subs, id)
	return true, nil
}
