// Package store persists budget snapshots and goals in a local SQLite
// database.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dylanratti/grain/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// inputKey namespaces the budget input snapshot so future record kinds can
// share the table.
const inputKey = "grain.budget_input"

// Store provides SQLite-backed snapshot persistence.
type Store struct {
	db *sql.DB
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "grain")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "grain")
}

// DBPath returns the full path to the snapshot database.
func DBPath() string {
	return filepath.Join(DataDir(), "grain.db")
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the snapshot database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveInput stores the budget input as one flat record under its key.
func (s *Store) SaveInput(in model.BudgetInput) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding input: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(`INSERT OR REPLACE INTO snapshots (key, body, updated_at)
		VALUES (?, ?, ?)`, inputKey, string(body), now)
	return err
}

// inputSnapshot mirrors model.BudgetInput with pointer fields so a restore
// can tell "absent" from "zero" and merge field by field onto the defaults.
// Snapshots written by older builds simply leave their missing fields nil.
type inputSnapshot struct {
	Income       *float64          `json:"income"`
	Fixed        *fixedSnapshot    `json:"fixed"`
	Variable     *variableSnapshot `json:"variable"`
	Debts        []model.Debt      `json:"debts"`
	RiskProfile  *string           `json:"risk_profile"`
	CryptoCapPct *float64          `json:"crypto_cap_pct"`
	WhatIfBoost  *float64          `json:"what_if_boost"`
}

type fixedSnapshot struct {
	Rent          *float64 `json:"rent"`
	Utilities     *float64 `json:"utilities"`
	Insurance     *float64 `json:"insurance"`
	Subscriptions *float64 `json:"subscriptions"`
}

type variableSnapshot struct {
	Transport *float64 `json:"transport"`
	Groceries *float64 `json:"groceries"`
	Dining    *float64 `json:"dining"`
	Other     *float64 `json:"other"`
}

// LoadInput restores the budget input, merging stored fields onto the
// defaults. The bool reports whether a usable snapshot existed; corrupt
// records degrade to defaults rather than failing the launch.
func (s *Store) LoadInput() (model.BudgetInput, bool, error) {
	in := model.DefaultInput()

	var body string
	err := s.db.QueryRow(`SELECT body FROM snapshots WHERE key = ?`, inputKey).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return in, false, nil
	}
	if err != nil {
		return in, false, err
	}

	var snap inputSnapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		return in, false, nil
	}

	mergeInput(&in, snap)
	return in.Sanitize(), true, nil
}

func mergeInput(in *model.BudgetInput, snap inputSnapshot) {
	if snap.Income != nil {
		in.Income = *snap.Income
	}

	if f := snap.Fixed; f != nil {
		if f.Rent != nil {
			in.Fixed.Rent = *f.Rent
		}
		if f.Utilities != nil {
			in.Fixed.Utilities = *f.Utilities
		}
		if f.Insurance != nil {
			in.Fixed.Insurance = *f.Insurance
		}
		if f.Subscriptions != nil {
			in.Fixed.Subscriptions = *f.Subscriptions
		}
	}

	if v := snap.Variable; v != nil {
		if v.Transport != nil {
			in.Variable.Transport = *v.Transport
		}
		if v.Groceries != nil {
			in.Variable.Groceries = *v.Groceries
		}
		if v.Dining != nil {
			in.Variable.Dining = *v.Dining
		}
		if v.Other != nil {
			in.Variable.Other = *v.Other
		}
	}

	if snap.Debts != nil {
		in.Debts = snap.Debts
	}
	if snap.RiskProfile != nil {
		in.RiskProfile = model.ParseRiskProfile(*snap.RiskProfile)
	}
	if snap.CryptoCapPct != nil {
		in.CryptoCapPct = *snap.CryptoCapPct
	}
	if snap.WhatIfBoost != nil {
		in.WhatIfBoost = *snap.WhatIfBoost
	}
}

// InputUpdatedAt returns when the input snapshot was last written.
func (s *Store) InputUpdatedAt() (time.Time, bool) {
	var ts string
	err := s.db.QueryRow(`SELECT updated_at FROM snapshots WHERE key = ?`, inputKey).Scan(&ts)
	if err != nil {
		return time.Time{}, false
	}

	at, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// SaveGoals replaces the stored goal list in one transaction, preserving
// the given order.
func (s *Store) SaveGoals(goals []model.Goal) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM goals`); err != nil {
		return err
	}

	for i, g := range goals {
		_, err := tx.Exec(`INSERT INTO goals (id, name, target_amount, saved_amount, position)
			VALUES (?, ?, ?, ?, ?)`, g.ID, g.Name, g.Target, g.Saved, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadGoals returns stored goals in saved order.
func (s *Store) LoadGoals() ([]model.Goal, error) {
	rows, err := s.db.Query(`SELECT id, name, target_amount, saved_amount
		FROM goals ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.Name, &g.Target, &g.Saved); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// GoalCount returns the number of stored goals.
func (s *Store) GoalCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM goals`).Scan(&count)
	return count, err
}
