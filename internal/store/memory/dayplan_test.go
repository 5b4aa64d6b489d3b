package memory

import (
	"io"
	"log/slog"
	"testing"

	"github.com/mtlahti/choreboard/internal/model"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func strp(s string) *string { return &s }

func TestGetByDateAbsent(t *testing.T) {
	ds := NewDayPlanStore(setupStore(t))

	p, err := ds.GetByDate("2026-03-02")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for never-written date, got %+v", p)
	}
}

func TestAssignTaskCreatesDefaultRecord(t *testing.T) {
	ds := NewDayPlanStore(setupStore(t))

	p, err := ds.AssignTask("2026-03-02", model.TaskCook, strp("Anna"))
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if p.ID == "" {
		t.Error("expected a generated id")
	}
	if p.Date != "2026-03-02" {
		t.Errorf("date = %q, want 2026-03-02", p.Date)
	}
	if p.Tasks.Cook == nil || *p.Tasks.Cook != "Anna" {
		t.Errorf("cook = %v, want Anna", p.Tasks.Cook)
	}
	if p.Tasks.Shop != nil || p.Tasks.SetTable != nil || p.Tasks.WashDishes != nil {
		t.Error("other task slots should stay unassigned")
	}
	if p.ShoppingList == nil || len(p.ShoppingList) != 0 {
		t.Errorf("shopping list = %v, want empty non-nil slice", p.ShoppingList)
	}

	// The record must now exist for point lookups.
	got, err := ds.GetByDate("2026-03-02")
	if err != nil || got == nil {
		t.Fatalf("get after assign: %v, %v", got, err)
	}
	if got.ID != p.ID {
		t.Errorf("id changed between calls: %q vs %q", got.ID, p.ID)
	}
}

func TestAssignTaskUnassign(t *testing.T) {
	ds := NewDayPlanStore(setupStore(t))

	ds.AssignTask("2026-03-02", model.TaskShop, strp("Ben"))
	p, err := ds.AssignTask("2026-03-02", model.TaskShop, nil)
	if err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if p.Tasks.Shop != nil {
		t.Errorf("shop = %v, want nil after unassign", p.Tasks.Shop)
	}
}

func TestGetRangeSynthesizesGaps(t *testing.T) {
	ds := NewDayPlanStore(setupStore(t))

	stored, _ := ds.AssignTask("2026-03-03", model.TaskCook, strp("Anna"))

	plans, err := ds.GetRange([]string{"2026-03-02", "2026-03-03", "2026-03-04"})
	if err != nil {
		t.Fatalf("get range: %v", err)
	}
	if len(plans) != 3 {
		t.Fatalf("len = %d, want 3", len(plans))
	}
	for i, date := range []string{"2026-03-02", "2026-03-03", "2026-03-04"} {
		if plans[i].Date != date {
			t.Errorf("plans[%d].Date = %q, want %q", i, plans[i].Date, date)
		}
	}
	if plans[1].ID != stored.ID {
		t.Errorf("stored plan id = %q, want %q", plans[1].ID, stored.ID)
	}
	if plans[0].Tasks.Cook != nil {
		t.Error("synthesized plan should have no assignments")
	}

	// Synthesized gaps must not be written back.
	if p, _ := ds.GetByDate("2026-03-02"); p != nil {
		t.Error("GetRange must not persist synthesized plans")
	}

	// A second read of the same gap gets a fresh id.
	again, _ := ds.GetRange([]string{"2026-03-02"})
	if again[0].ID == plans[0].ID {
		t.Error("synthesized plans should get fresh ids per read")
	}
}

func TestUpsertShallowMerge(t *testing.T) {
	ds := NewDayPlanStore(setupStore(t))

	ds.Upsert("2026-03-02", model.DayPlanPatch{
		Tasks:        &model.TaskSet{Cook: strp("Anna")},
		DishOfTheDay: strp("Pasta"),
		DishSet:      true,
	})

	// Patch only the shopping list; tasks and dish must survive.
	p, err := ds.Upsert("2026-03-02", model.DayPlanPatch{
		ShoppingList: []string{"milk"},
		ShoppingSet:  true,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if p.Tasks.Cook == nil || *p.Tasks.Cook != "Anna" {
		t.Error("tasks should be untouched by a shopping-only patch")
	}
	if p.DishOfTheDay == nil || *p.DishOfTheDay != "Pasta" {
		t.Error("dish should be untouched by a shopping-only patch")
	}
	if len(p.ShoppingList) != 1 || p.ShoppingList[0] != "milk" {
		t.Errorf("shopping list = %v, want [milk]", p.ShoppingList)
	}

	// Tasks replace wholesale: patching tasks with only shop set clears cook.
	p, _ = ds.Upsert("2026-03-02", model.DayPlanPatch{
		Tasks: &model.TaskSet{Shop: strp("Ben")},
	})
	if p.Tasks.Cook != nil {
		t.Error("tasks patch replaces the whole set")
	}
	if p.Tasks.Shop == nil || *p.Tasks.Shop != "Ben" {
		t.Errorf("shop = %v, want Ben", p.Tasks.Shop)
	}

	// Explicit null clears dish.
	p, _ = ds.Upsert("2026-03-02", model.DayPlanPatch{DishSet: true})
	if p.DishOfTheDay != nil {
		t.Error("explicit null should clear dish of the day")
	}
}

func TestResetTasksKeepsIdentity(t *testing.T) {
	ds := NewDayPlanStore(setupStore(t))

	before, _ := ds.Upsert("2026-03-02", model.DayPlanPatch{
		Tasks:          &model.TaskSet{Cook: strp("Anna"), WashDishes: strp("Ben")},
		AloneInKitchen: strp("Anna"),
		AloneSet:       true,
		DishOfTheDay:   strp("Soup"),
		DishSet:        true,
		ShoppingList:   []string{"eggs", "milk"},
		ShoppingSet:    true,
	})

	p, err := ds.ResetTasks("2026-03-02")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if p.ID != before.ID {
		t.Errorf("id = %q, want %q kept across reset", p.ID, before.ID)
	}
	if p.Date != "2026-03-02" {
		t.Errorf("date = %q, want kept", p.Date)
	}
	if p.Tasks != (model.TaskSet{}) {
		t.Errorf("tasks = %+v, want all unassigned", p.Tasks)
	}
	if p.AloneInKitchen != nil || p.DishOfTheDay != nil {
		t.Error("alone/dish should be cleared")
	}
	if len(p.ShoppingList) != 0 {
		t.Errorf("shopping list = %v, want empty", p.ShoppingList)
	}

	// Resetting a fresh date just materializes the default record.
	p2, err := ds.ResetTasks("2026-03-09")
	if err != nil {
		t.Fatalf("reset fresh: %v", err)
	}
	if p2.ID == "" || p2.Date != "2026-03-09" {
		t.Errorf("fresh reset plan = %+v", p2)
	}
}

func TestAddShoppingItemTrims(t *testing.T) {
	ds := NewDayPlanStore(setupStore(t))

	p, err := ds.AddShoppingItem("2026-03-02", "  milk  ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(p.ShoppingList) != 1 || p.ShoppingList[0] != "milk" {
		t.Errorf("list = %v, want [milk]", p.ShoppingList)
	}

	// Whitespace-only items are dropped but the record is still created.
	p, _ = ds.AddShoppingItem("2026-03-03", "   ")
	if len(p.ShoppingList) != 0 {
		t.Errorf("list = %v, want empty for blank item", p.ShoppingList)
	}
	if stored, _ := ds.GetByDate("2026-03-03"); stored == nil {
		t.Error("blank add should still materialize the record")
	}
}

func TestRemoveShoppingItem(t *testing.T) {
	ds := NewDayPlanStore(setupStore(t))

	ds.ReplaceShoppingList("2026-03-02", []string{"a", "b", "c"})

	p, err := ds.RemoveShoppingItem("2026-03-02", 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(p.ShoppingList) != 2 || p.ShoppingList[0] != "a" || p.ShoppingList[1] != "c" {
		t.Errorf("list = %v, want [a c]", p.ShoppingList)
	}

	// Out of range is a silent no-op.
	p, err = ds.RemoveShoppingItem("2026-03-02", 99)
	if err != nil {
		t.Fatalf("remove out of range: %v", err)
	}
	if len(p.ShoppingList) != 2 {
		t.Errorf("list = %v, want unchanged", p.ShoppingList)
	}
}

func TestReplaceShoppingListFiltersBlanks(t *testing.T) {
	ds := NewDayPlanStore(setupStore(t))

	p, err := ds.ReplaceShoppingList("2026-03-02", []string{" milk ", "", "   ", "eggs"})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	// Blanks go, survivors keep their whitespace.
	if len(p.ShoppingList) != 2 {
		t.Fatalf("list = %v, want 2 items", p.ShoppingList)
	}
	if p.ShoppingList[0] != " milk " {
		t.Errorf("item[0] = %q, want untrimmed %q", p.ShoppingList[0], " milk ")
	}
	if p.ShoppingList[1] != "eggs" {
		t.Errorf("item[1] = %q, want eggs", p.ShoppingList[1])
	}
}

func TestEnsureDates(t *testing.T) {
	ds := NewDayPlanStore(setupStore(t))

	existing, _ := ds.AssignTask("2026-03-02", model.TaskCook, strp("Anna"))

	if err := ds.EnsureDates([]string{"2026-03-02", "2026-03-03"}); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	// Existing record untouched.
	p, _ := ds.GetByDate("2026-03-02")
	if p.ID != existing.ID || p.Tasks.Cook == nil {
		t.Error("existing record should survive EnsureDates")
	}

	// Missing date materialized as the default record.
	p, _ = ds.GetByDate("2026-03-03")
	if p == nil {
		t.Fatal("missing date should have been created")
	}
	if p.Tasks != (model.TaskSet{}) || len(p.ShoppingList) != 0 {
		t.Errorf("created record should be the default shape, got %+v", p)
	}
}

func TestWeekScenario(t *testing.T) {
	ds := NewDayPlanStore(setupStore(t))

	// Plan Monday: Anna cooks, add groceries, note the dish.
	ds.AssignTask("2026-03-02", model.TaskCook, strp("Anna"))
	ds.AddShoppingItem("2026-03-02", "tomatoes")
	ds.AddShoppingItem("2026-03-02", "basil")
	ds.SetDishOfTheDay("2026-03-02", strp("Margherita"))
	ds.SetAloneInKitchen("2026-03-02", strp("Anna"))

	// Tuesday only gets a dishwasher.
	ds.AssignTask("2026-03-03", model.TaskWashDishes, strp("Ben"))

	week := []string{
		"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05",
		"2026-03-06", "2026-03-07", "2026-03-08",
	}
	plans, err := ds.GetRange(week)
	if err != nil {
		t.Fatalf("get week: %v", err)
	}
	if len(plans) != 7 {
		t.Fatalf("len = %d, want 7", len(plans))
	}

	mon := plans[0]
	if mon.Tasks.Cook == nil || *mon.Tasks.Cook != "Anna" {
		t.Error("monday cook lost")
	}
	if len(mon.ShoppingList) != 2 {
		t.Errorf("monday shopping list = %v", mon.ShoppingList)
	}
	if mon.DishOfTheDay == nil || *mon.DishOfTheDay != "Margherita" {
		t.Error("monday dish lost")
	}

	if plans[1].Tasks.WashDishes == nil {
		t.Error("tuesday dishes lost")
	}

	// Wednesday through Sunday are transient defaults.
	for i := 2; i < 7; i++ {
		if plans[i].Tasks != (model.TaskSet{}) {
			t.Errorf("plans[%d] should be a default plan", i)
		}
	}

	// Reset Monday and confirm Tuesday is untouched.
	ds.ResetTasks("2026-03-02")
	p, _ := ds.GetByDate("2026-03-03")
	if p.Tasks.WashDishes == nil || *p.Tasks.WashDishes != "Ben" {
		t.Error("reset of one date must not touch another")
	}
}
