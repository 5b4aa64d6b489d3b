package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mtlahti/choreboard/internal/model"
)

const (
	dayPlansFile = "day_plans.json"
	usersFile    = "users.json"
	contentFile  = "content.json"
)

// Files persists each map as an independent JSON document in a directory.
// Writes go through a temp file and rename so a crash mid-write never leaves
// a truncated document behind.
type Files struct {
	dir string
}

// NewFiles creates the directory if needed and returns a file adapter.
func NewFiles(dir string) (*Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Files{dir: dir}, nil
}

func (f *Files) Load() (*Snapshot, error) {
	snap := NewSnapshot()
	if err := readDoc(filepath.Join(f.dir, dayPlansFile), &snap.DayPlans); err != nil {
		return nil, fmt.Errorf("load day plans: %w", err)
	}
	if err := readDoc(filepath.Join(f.dir, usersFile), &snap.Users); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if err := readDoc(filepath.Join(f.dir, contentFile), &snap.Content); err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return snap, nil
}

func (f *Files) SaveDayPlans(plans map[string]model.DayPlan) error {
	return writeDoc(filepath.Join(f.dir, dayPlansFile), plans)
}

func (f *Files) SaveUsers(users map[string]model.User) error {
	return writeDoc(filepath.Join(f.dir, usersFile), users)
}

func (f *Files) SaveContent(content map[string]model.Content) error {
	return writeDoc(filepath.Join(f.dir, contentFile), content)
}

func (f *Files) Close() error { return nil }

// readDoc unmarshals path into v. A missing file leaves v untouched.
func readDoc(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeDoc(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(tmp), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
