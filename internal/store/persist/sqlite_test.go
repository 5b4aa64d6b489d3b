package persist

import (
	"path/filepath"
	"testing"
)

func setupSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := setupSQLite(t)

	want := sampleSnapshot()
	if err := s.SaveDayPlans(want.DayPlans); err != nil {
		t.Fatalf("save day plans: %v", err)
	}
	if err := s.SaveUsers(want.Users); err != nil {
		t.Fatalf("save users: %v", err)
	}
	if err := s.SaveContent(want.Content); err != nil {
		t.Fatalf("save content: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	plan, ok := got.DayPlans["2026-03-02"]
	if !ok {
		t.Fatal("day plan missing after round trip")
	}
	if plan.Tasks.Cook == nil || *plan.Tasks.Cook != "Anna" {
		t.Errorf("cook = %v, want Anna", plan.Tasks.Cook)
	}
	if plan.Tasks.WashDishes != nil {
		t.Error("unassigned slot should come back nil")
	}
	if plan.DishOfTheDay == nil || *plan.DishOfTheDay != "Soup" {
		t.Errorf("dish = %v, want Soup", plan.DishOfTheDay)
	}
	if len(plan.ShoppingList) != 2 || plan.ShoppingList[1] != "eggs" {
		t.Errorf("shopping list = %v", plan.ShoppingList)
	}

	user, ok := got.Users["u1"]
	if !ok {
		t.Fatal("user missing after round trip")
	}
	if !user.IsAdmin {
		t.Error("admin flag lost")
	}
	if user.Email == nil || *user.Email != "anna@example.com" {
		t.Errorf("email = %v", user.Email)
	}
	if user.LastName != nil {
		t.Error("absent last name should come back nil")
	}
	if !user.CreatedAt.Equal(want.Users["u1"].CreatedAt) {
		t.Errorf("created at = %v, want %v", user.CreatedAt, want.Users["u1"].CreatedAt)
	}

	content, ok := got.Content["app.title"]
	if !ok {
		t.Fatal("content missing after round trip")
	}
	if content.ID != "c1" || content.Value != "Choreboard" {
		t.Errorf("content = %+v", content)
	}
	if content.Description != nil {
		t.Error("absent description should come back nil")
	}
}

func TestSQLiteSaveReplacesRows(t *testing.T) {
	s := setupSQLite(t)

	first := sampleSnapshot()
	if err := s.SaveDayPlans(first.DayPlans); err != nil {
		t.Fatalf("first save: %v", err)
	}

	// A later save with a different map must fully replace the table.
	second := NewSnapshot()
	second.DayPlans["2026-03-09"] = sampleDayPlan("plan-2", "2026-03-09")
	if err := s.SaveDayPlans(second.DayPlans); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.DayPlans) != 1 {
		t.Fatalf("len = %d, want 1", len(got.DayPlans))
	}
	if _, ok := got.DayPlans["2026-03-09"]; !ok {
		t.Error("replacement row missing")
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SaveContent(sampleSnapshot().Content); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Content["app.title"].Value != "Choreboard" {
		t.Error("data lost across reopen")
	}
}
