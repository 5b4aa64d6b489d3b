package model

// TaskKind identifies one of the four fixed daily chores.
type TaskKind string

const (
	TaskCook       TaskKind = "cook"
	TaskShop       TaskKind = "shop"
	TaskSetTable   TaskKind = "setTable"
	TaskWashDishes TaskKind = "washDishes"
)

// TaskKinds lists every valid task kind in display order.
var TaskKinds = []TaskKind{TaskCook, TaskShop, TaskSetTable, TaskWashDishes}

// Valid reports whether k is one of the four known task kinds.
func (k TaskKind) Valid() bool {
	switch k {
	case TaskCook, TaskShop, TaskSetTable, TaskWashDishes:
		return true
	}
	return false
}

// TaskSet holds the assignee for each of the four task slots. A nil entry
// means the slot is unassigned. Using a struct rather than a map guarantees
// all four slots are always present in the JSON shape.
type TaskSet struct {
	Cook       *string `json:"cook"`
	Shop       *string `json:"shop"`
	SetTable   *string `json:"setTable"`
	WashDishes *string `json:"washDishes"`
}

// Assignee returns the assignee for the given kind, or nil if unassigned or
// the kind is unknown.
func (t *TaskSet) Assignee(kind TaskKind) *string {
	switch kind {
	case TaskCook:
		return t.Cook
	case TaskShop:
		return t.Shop
	case TaskSetTable:
		return t.SetTable
	case TaskWashDishes:
		return t.WashDishes
	}
	return nil
}

// SetAssignee replaces exactly one slot. Unknown kinds are ignored; callers
// validate against TaskKinds before reaching the store.
func (t *TaskSet) SetAssignee(kind TaskKind, assignee *string) {
	switch kind {
	case TaskCook:
		t.Cook = assignee
	case TaskShop:
		t.Shop = assignee
	case TaskSetTable:
		t.SetTable = assignee
	case TaskWashDishes:
		t.WashDishes = assignee
	}
}

// DayPlan is one day's chore assignments, kitchen preference, planned dish,
// and shopping list. Date (YYYY-MM-DD) is the unique lookup key; ID is an
// opaque identifier assigned at creation and stable across mutations.
type DayPlan struct {
	ID             string   `json:"id"`
	Date           string   `json:"date"`
	Tasks          TaskSet  `json:"tasks"`
	AloneInKitchen *string  `json:"aloneInKitchen"`
	DishOfTheDay   *string  `json:"dishOfTheDay"`
	ShoppingList   []string `json:"shoppingList"`
}

// Clone returns a deep copy so callers can't mutate stored state through
// shared pointers or the shopping list slice.
func (p *DayPlan) Clone() *DayPlan {
	c := *p
	c.Tasks.Cook = cloneStringPtr(p.Tasks.Cook)
	c.Tasks.Shop = cloneStringPtr(p.Tasks.Shop)
	c.Tasks.SetTable = cloneStringPtr(p.Tasks.SetTable)
	c.Tasks.WashDishes = cloneStringPtr(p.Tasks.WashDishes)
	c.AloneInKitchen = cloneStringPtr(p.AloneInKitchen)
	c.DishOfTheDay = cloneStringPtr(p.DishOfTheDay)
	c.ShoppingList = append([]string(nil), p.ShoppingList...)
	return &c
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// DayPlanPatch describes a partial update for Upsert. A field is applied only
// when its Set flag is true, so callers can distinguish "leave unchanged"
// from "set to null".
type DayPlanPatch struct {
	Tasks          *TaskSet
	AloneInKitchen *string
	AloneSet       bool
	DishOfTheDay   *string
	DishSet        bool
	ShoppingList   []string
	ShoppingSet    bool
}
