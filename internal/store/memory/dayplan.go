package memory

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mtlahti/choreboard/internal/model"
)

type DayPlanStore struct {
	s *Store
}

func NewDayPlanStore(s *Store) *DayPlanStore {
	return &DayPlanStore{s: s}
}

// newDayPlan is the one place the default record shape is defined: all four
// task slots unassigned, no kitchen preference, no dish, empty shopping list.
func newDayPlan(date string) *model.DayPlan {
	return &model.DayPlan{
		ID:           uuid.NewString(),
		Date:         date,
		ShoppingList: []string{},
	}
}

// getOrCreate returns the stored plan for date, creating the default record
// first if the date has never been written. Every mutator goes through here,
// which is what makes all of them safe on a fresh date. Callers must hold
// the write lock.
func (ds *DayPlanStore) getOrCreate(date string) *model.DayPlan {
	if p, ok := ds.s.plans[date]; ok {
		return p
	}
	p := newDayPlan(date)
	ds.s.plans[date] = p
	return p
}

func (ds *DayPlanStore) GetByDate(date string) (*model.DayPlan, error) {
	ds.s.mu.RLock()
	defer ds.s.mu.RUnlock()

	p, ok := ds.s.plans[date]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (ds *DayPlanStore) GetRange(dates []string) ([]model.DayPlan, error) {
	ds.s.mu.RLock()
	defer ds.s.mu.RUnlock()

	plans := make([]model.DayPlan, 0, len(dates))
	for _, date := range dates {
		if p, ok := ds.s.plans[date]; ok {
			plans = append(plans, *p.Clone())
			continue
		}
		// Transient default for the gap; deliberately not stored.
		plans = append(plans, *newDayPlan(date))
	}
	return plans, nil
}

func (ds *DayPlanStore) Upsert(date string, patch model.DayPlanPatch) (*model.DayPlan, error) {
	ds.s.mu.Lock()
	defer ds.s.mu.Unlock()

	p := ds.getOrCreate(date)
	if patch.Tasks != nil {
		p.Tasks = model.TaskSet{
			Cook:       cloneString(patch.Tasks.Cook),
			Shop:       cloneString(patch.Tasks.Shop),
			SetTable:   cloneString(patch.Tasks.SetTable),
			WashDishes: cloneString(patch.Tasks.WashDishes),
		}
	}
	if patch.AloneSet {
		p.AloneInKitchen = cloneString(patch.AloneInKitchen)
	}
	if patch.DishSet {
		p.DishOfTheDay = cloneString(patch.DishOfTheDay)
	}
	if patch.ShoppingSet {
		p.ShoppingList = append([]string{}, patch.ShoppingList...)
	}

	ds.s.persistDayPlans()
	return p.Clone(), nil
}

func (ds *DayPlanStore) AssignTask(date string, kind model.TaskKind, assignee *string) (*model.DayPlan, error) {
	ds.s.mu.Lock()
	defer ds.s.mu.Unlock()

	p := ds.getOrCreate(date)
	p.Tasks.SetAssignee(kind, cloneString(assignee))

	ds.s.persistDayPlans()
	return p.Clone(), nil
}

func (ds *DayPlanStore) SetAloneInKitchen(date string, value *string) (*model.DayPlan, error) {
	ds.s.mu.Lock()
	defer ds.s.mu.Unlock()

	p := ds.getOrCreate(date)
	p.AloneInKitchen = cloneString(value)

	ds.s.persistDayPlans()
	return p.Clone(), nil
}

func (ds *DayPlanStore) SetDishOfTheDay(date string, value *string) (*model.DayPlan, error) {
	ds.s.mu.Lock()
	defer ds.s.mu.Unlock()

	p := ds.getOrCreate(date)
	p.DishOfTheDay = cloneString(value)

	ds.s.persistDayPlans()
	return p.Clone(), nil
}

func (ds *DayPlanStore) ResetTasks(date string) (*model.DayPlan, error) {
	ds.s.mu.Lock()
	defer ds.s.mu.Unlock()

	// Wipe, not delete: date and id survive.
	p := ds.getOrCreate(date)
	p.Tasks = model.TaskSet{}
	p.AloneInKitchen = nil
	p.DishOfTheDay = nil
	p.ShoppingList = []string{}

	ds.s.persistDayPlans()
	return p.Clone(), nil
}

func (ds *DayPlanStore) AddShoppingItem(date, item string) (*model.DayPlan, error) {
	item = strings.TrimSpace(item)

	ds.s.mu.Lock()
	defer ds.s.mu.Unlock()

	p := ds.getOrCreate(date)
	if item != "" {
		p.ShoppingList = append(p.ShoppingList, item)
	}

	ds.s.persistDayPlans()
	return p.Clone(), nil
}

func (ds *DayPlanStore) RemoveShoppingItem(date string, index int) (*model.DayPlan, error) {
	ds.s.mu.Lock()
	defer ds.s.mu.Unlock()

	// Filter rather than splice: an out-of-range index drops nothing.
	p := ds.getOrCreate(date)
	kept := make([]string, 0, len(p.ShoppingList))
	for i, item := range p.ShoppingList {
		if i == index {
			continue
		}
		kept = append(kept, item)
	}
	p.ShoppingList = kept

	ds.s.persistDayPlans()
	return p.Clone(), nil
}

func (ds *DayPlanStore) ReplaceShoppingList(date string, items []string) (*model.DayPlan, error) {
	ds.s.mu.Lock()
	defer ds.s.mu.Unlock()

	p := ds.getOrCreate(date)
	// Blank entries are dropped; survivors are kept verbatim (only
	// AddShoppingItem trims).
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		kept = append(kept, item)
	}
	p.ShoppingList = kept

	ds.s.persistDayPlans()
	return p.Clone(), nil
}

func (ds *DayPlanStore) EnsureDates(dates []string) error {
	ds.s.mu.Lock()
	defer ds.s.mu.Unlock()

	created := false
	for _, date := range dates {
		if _, ok := ds.s.plans[date]; !ok {
			ds.s.plans[date] = newDayPlan(date)
			created = true
		}
	}
	if created {
		ds.s.persistDayPlans()
	}
	return nil
}
