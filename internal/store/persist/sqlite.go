package persist

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/mtlahti/choreboard/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLite dumps the snapshot maps into SQLite tables. Each save replaces the
// table's rows inside a transaction; this is a snapshot sink, not an
// incremental store.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and runs migrations.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Load() (*Snapshot, error) {
	snap := NewSnapshot()

	if err := s.loadDayPlans(snap); err != nil {
		return nil, fmt.Errorf("load day plans: %w", err)
	}
	if err := s.loadUsers(snap); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if err := s.loadContent(snap); err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return snap, nil
}

const dayPlanCols = `date, id, cook, shop, set_table, wash_dishes, alone_in_kitchen, dish_of_the_day, shopping_list`

func (s *SQLite) loadDayPlans(snap *Snapshot) error {
	rows, err := s.db.Query(`SELECT ` + dayPlanCols + ` FROM day_plans`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p model.DayPlan
		var cook, shop, setTable, washDishes, alone, dish sql.NullString
		var list string
		if err := rows.Scan(&p.Date, &p.ID, &cook, &shop, &setTable, &washDishes, &alone, &dish, &list); err != nil {
			return fmt.Errorf("scan day plan: %w", err)
		}
		p.Tasks.Cook = fromNullString(cook)
		p.Tasks.Shop = fromNullString(shop)
		p.Tasks.SetTable = fromNullString(setTable)
		p.Tasks.WashDishes = fromNullString(washDishes)
		p.AloneInKitchen = fromNullString(alone)
		p.DishOfTheDay = fromNullString(dish)
		p.ShoppingList = []string{}
		if err := json.Unmarshal([]byte(list), &p.ShoppingList); err != nil {
			return fmt.Errorf("decode shopping list for %s: %w", p.Date, err)
		}
		snap.DayPlans[p.Date] = p
	}
	return rows.Err()
}

const userCols = `id, email, first_name, last_name, profile_image_url, is_admin, password_hash, created_at, updated_at`

func (s *SQLite) loadUsers(snap *Snapshot) error {
	rows, err := s.db.Query(`SELECT ` + userCols + ` FROM users`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u model.User
		var email, firstName, lastName, imageURL sql.NullString
		var isAdmin int
		if err := rows.Scan(&u.ID, &email, &firstName, &lastName, &imageURL, &isAdmin, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return fmt.Errorf("scan user: %w", err)
		}
		u.Email = fromNullString(email)
		u.FirstName = fromNullString(firstName)
		u.LastName = fromNullString(lastName)
		u.ProfileImageURL = fromNullString(imageURL)
		u.IsAdmin = isAdmin != 0
		snap.Users[u.ID] = u
	}
	return rows.Err()
}

const contentCols = `key, id, value, description, updated_at`

func (s *SQLite) loadContent(snap *Snapshot) error {
	rows, err := s.db.Query(`SELECT ` + contentCols + ` FROM app_content`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c model.Content
		var description sql.NullString
		if err := rows.Scan(&c.Key, &c.ID, &c.Value, &description, &c.UpdatedAt); err != nil {
			return fmt.Errorf("scan content: %w", err)
		}
		c.Description = fromNullString(description)
		snap.Content[c.Key] = c
	}
	return rows.Err()
}

func (s *SQLite) SaveDayPlans(plans map[string]model.DayPlan) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM day_plans`); err != nil {
		return fmt.Errorf("clear day plans: %w", err)
	}
	for _, p := range plans {
		list, err := json.Marshal(p.ShoppingList)
		if err != nil {
			return fmt.Errorf("encode shopping list for %s: %w", p.Date, err)
		}
		_, err = tx.Exec(
			`INSERT INTO day_plans (`+dayPlanCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Date, p.ID,
			toNullString(p.Tasks.Cook), toNullString(p.Tasks.Shop),
			toNullString(p.Tasks.SetTable), toNullString(p.Tasks.WashDishes),
			toNullString(p.AloneInKitchen), toNullString(p.DishOfTheDay),
			string(list),
		)
		if err != nil {
			return fmt.Errorf("insert day plan %s: %w", p.Date, err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) SaveUsers(users map[string]model.User) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	for _, u := range users {
		isAdmin := 0
		if u.IsAdmin {
			isAdmin = 1
		}
		_, err := tx.Exec(
			`INSERT INTO users (`+userCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			u.ID, toNullString(u.Email), toNullString(u.FirstName), toNullString(u.LastName),
			toNullString(u.ProfileImageURL), isAdmin, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert user %s: %w", u.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) SaveContent(content map[string]model.Content) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM app_content`); err != nil {
		return fmt.Errorf("clear content: %w", err)
	}
	for _, c := range content {
		_, err := tx.Exec(
			`INSERT INTO app_content (`+contentCols+`) VALUES (?, ?, ?, ?, ?)`,
			c.Key, c.ID, c.Value, toNullString(c.Description), c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert content %s: %w", c.Key, err)
		}
	}
	return tx.Commit()
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
