package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/mtlahti/choreboard/internal/model"
)

// seedContent is inserted at start-up for any key not already present.
var seedContent = []model.Content{
	{
		Key:         "app.title",
		Value:       "Choreboard",
		Description: strPtr("Application title shown in the page header"),
	},
	{
		Key:         "onboarding.welcome",
		Value:       "Welcome! Pick a day and sign up for a chore.",
		Description: strPtr("Greeting shown to first-time visitors"),
	},
	{
		Key:         "dishwashing.notice",
		Value:       "Everyone rinses their own plate; the day's washer handles the shared dishes.",
		Description: strPtr("Notice shown next to the wash-dishes slot"),
	},
}

func strPtr(s string) *string { return &s }

type ContentStore struct {
	s *Store
}

func NewContentStore(s *Store) *ContentStore {
	return &ContentStore{s: s}
}

func (cs *ContentStore) Get(key string) (*model.Content, error) {
	cs.s.mu.RLock()
	defer cs.s.mu.RUnlock()

	c, ok := cs.s.content[key]
	if !ok {
		return nil, nil
	}
	return cloneContent(c), nil
}

func (cs *ContentStore) GetAll() ([]model.Content, error) {
	cs.s.mu.RLock()
	defer cs.s.mu.RUnlock()

	all := make([]model.Content, 0, len(cs.s.content))
	for _, c := range cs.s.content {
		all = append(all, *cloneContent(c))
	}
	return all, nil
}

func (cs *ContentStore) Upsert(key, value string, description *string) (*model.Content, error) {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	c, ok := cs.s.content[key]
	if !ok {
		c = &model.Content{ID: uuid.NewString(), Key: key}
		cs.s.content[key] = c
	}
	// id is stable per key across edits
	c.Value = value
	c.Description = cloneString(description)
	c.UpdatedAt = time.Now().UTC()

	cs.s.persistContent()
	return cloneContent(c), nil
}

func (cs *ContentStore) Delete(key string) (bool, error) {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	if _, ok := cs.s.content[key]; !ok {
		return false, nil
	}
	delete(cs.s.content, key)

	cs.s.persistContent()
	return true, nil
}

func (cs *ContentStore) SeedDefaults() error {
	cs.s.mu.Lock()
	defer cs.s.mu.Unlock()

	seeded := false
	for _, def := range seedContent {
		if _, ok := cs.s.content[def.Key]; ok {
			continue
		}
		c := def
		c.ID = uuid.NewString()
		c.Description = cloneString(def.Description)
		c.UpdatedAt = time.Now().UTC()
		cs.s.content[c.Key] = &c
		seeded = true
	}
	if seeded {
		cs.s.persistContent()
	}
	return nil
}
