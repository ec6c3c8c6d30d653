package store

import (
	"path/filepath"
	"testing"

	"github.com/dylanratti/grain/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "grain.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func insertSnapshot(t *testing.T, s *Store, body string) {
	t.Helper()
	_, err := s.db.Exec(`INSERT OR REPLACE INTO snapshots (key, body, updated_at)
		VALUES (?, ?, ?)`, inputKey, body, "2026-01-15T09:30:00Z")
	if err != nil {
		t.Fatalf("insert snapshot: %v", err)
	}
}

func TestSaveLoadInputRoundTrip(t *testing.T) {
	s := openTestStore(t)

	in := model.BudgetInput{
		Income: 4000,
		Fixed: model.FixedExpenses{
			Rent:          2000,
			Utilities:     180,
			Insurance:     120,
			Subscriptions: 45,
		},
		Variable: model.VariableExpenses{
			Transport: 160,
			Groceries: 420,
			Dining:    220,
			Other:     120,
		},
		Debts:        []model.Debt{{Name: "Visa", Balance: 1200, AnnualRatePct: 19.99}},
		RiskProfile:  model.RiskGrowth,
		CryptoCapPct: 8,
		WhatIfBoost:  300,
	}
	if err := s.SaveInput(in); err != nil {
		t.Fatalf("SaveInput: %v", err)
	}

	got, found, err := s.LoadInput()
	if err != nil {
		t.Fatalf("LoadInput: %v", err)
	}
	if !found {
		t.Fatal("LoadInput found = false after save")
	}
	if got.Income != 4000 {
		t.Fatalf("Income = %v, want 4000", got.Income)
	}
	if got.Fixed.Rent != 2000 || got.Variable.Dining != 220 {
		t.Fatalf("expenses did not round-trip: %+v", got)
	}
	if len(got.Debts) != 1 || got.Debts[0].AnnualRatePct != 19.99 {
		t.Fatalf("debts did not round-trip: %+v", got.Debts)
	}
	if got.RiskProfile != model.RiskGrowth {
		t.Fatalf("RiskProfile = %q, want growth", got.RiskProfile)
	}
	if got.CryptoCapPct != 8 || got.WhatIfBoost != 300 {
		t.Fatalf("cap/boost did not round-trip: %+v", got)
	}
}

func TestLoadInputMissingReturnsDefaults(t *testing.T) {
	s := openTestStore(t)

	in, found, err := s.LoadInput()
	if err != nil {
		t.Fatalf("LoadInput: %v", err)
	}
	if found {
		t.Fatal("LoadInput found = true on an empty store")
	}
	if in.RiskProfile != model.RiskBalanced {
		t.Fatalf("RiskProfile = %q, want the balanced default", in.RiskProfile)
	}
	if in.CryptoCapPct != 5 {
		t.Fatalf("CryptoCapPct = %v, want the default 5", in.CryptoCapPct)
	}
}

func TestLoadInputPartialSnapshotKeepsDefaults(t *testing.T) {
	s := openTestStore(t)

	// A snapshot from an older build: only income and rent present.
	insertSnapshot(t, s, `{"income": 4000, "fixed": {"rent": 2000}}`)

	in, found, err := s.LoadInput()
	if err != nil {
		t.Fatalf("LoadInput: %v", err)
	}
	if !found {
		t.Fatal("LoadInput found = false for a partial snapshot")
	}
	if in.Income != 4000 || in.Fixed.Rent != 2000 {
		t.Fatalf("stored fields lost: %+v", in)
	}
	if in.Fixed.Utilities != 0 {
		t.Fatalf("Utilities = %v, want the default 0", in.Fixed.Utilities)
	}
	if in.RiskProfile != model.RiskBalanced {
		t.Fatalf("RiskProfile = %q, want the balanced default", in.RiskProfile)
	}
	if in.CryptoCapPct != 5 {
		t.Fatalf("CryptoCapPct = %v, want the default 5", in.CryptoCapPct)
	}
}

func TestLoadInputIgnoresUnknownFields(t *testing.T) {
	s := openTestStore(t)

	insertSnapshot(t, s, `{"income": 3200, "a_future_field": {"nested": true}}`)

	in, found, err := s.LoadInput()
	if err != nil {
		t.Fatalf("LoadInput: %v", err)
	}
	if !found || in.Income != 3200 {
		t.Fatalf("LoadInput = (%+v, %v), want income 3200", in, found)
	}
}

func TestLoadInputCorruptSnapshotFallsBack(t *testing.T) {
	s := openTestStore(t)

	insertSnapshot(t, s, `{"income": not even json`)

	in, found, err := s.LoadInput()
	if err != nil {
		t.Fatalf("LoadInput: %v", err)
	}
	if found {
		t.Fatal("LoadInput found = true for a corrupt snapshot")
	}
	if in.RiskProfile != model.RiskBalanced {
		t.Fatalf("RiskProfile = %q, want the balanced default", in.RiskProfile)
	}
}

func TestLoadInputSanitizesStoredValues(t *testing.T) {
	s := openTestStore(t)

	insertSnapshot(t, s, `{"income": -500, "crypto_cap_pct": 60, "risk_profile": "degen"}`)

	in, _, err := s.LoadInput()
	if err != nil {
		t.Fatalf("LoadInput: %v", err)
	}
	if in.Income != 0 {
		t.Fatalf("Income = %v, want 0 after sanitizing", in.Income)
	}
	if in.CryptoCapPct != 10 {
		t.Fatalf("CryptoCapPct = %v, want the 10 clamp", in.CryptoCapPct)
	}
	if in.RiskProfile != model.RiskBalanced {
		t.Fatalf("RiskProfile = %q, want the balanced fallback", in.RiskProfile)
	}
}

func TestInputUpdatedAt(t *testing.T) {
	s := openTestStore(t)

	if _, ok := s.InputUpdatedAt(); ok {
		t.Fatal("InputUpdatedAt ok = true on an empty store")
	}

	if err := s.SaveInput(model.DefaultInput()); err != nil {
		t.Fatalf("SaveInput: %v", err)
	}

	at, ok := s.InputUpdatedAt()
	if !ok {
		t.Fatal("InputUpdatedAt ok = false after save")
	}
	if at.IsZero() {
		t.Fatal("InputUpdatedAt returned the zero time")
	}
}

func TestSaveGoalsReplacesAndPreservesOrder(t *testing.T) {
	s := openTestStore(t)

	first := []model.Goal{
		{ID: "g1", Name: "House deposit", Target: 25000, Saved: 8200},
		{ID: "g2", Name: "New laptop", Target: 1800, Saved: 300},
	}
	if err := s.SaveGoals(first); err != nil {
		t.Fatalf("SaveGoals: %v", err)
	}

	// Replace the whole list: g2 dropped, g3 added, order swapped.
	second := []model.Goal{
		{ID: "g3", Name: "Vacation", Target: 3000, Saved: 0},
		{ID: "g1", Name: "House deposit", Target: 25000, Saved: 8500},
	}
	if err := s.SaveGoals(second); err != nil {
		t.Fatalf("SaveGoals: %v", err)
	}

	got, err := s.LoadGoals()
	if err != nil {
		t.Fatalf("LoadGoals: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(goals) = %d, want 2", len(got))
	}
	if got[0].ID != "g3" || got[1].ID != "g1" {
		t.Fatalf("goal order = [%s %s], want [g3 g1]", got[0].ID, got[1].ID)
	}
	if got[1].Saved != 8500 {
		t.Fatalf("g1 Saved = %v, want the updated 8500", got[1].Saved)
	}

	count, err := s.GoalCount()
	if err != nil {
		t.Fatalf("GoalCount: %v", err)
	}
	if count != 2 {
		t.Fatalf("GoalCount = %d, want 2", count)
	}
}

func TestLoadGoalsEmpty(t *testing.T) {
	s := openTestStore(t)

	goals, err := s.LoadGoals()
	if err != nil {
		t.Fatalf("LoadGoals: %v", err)
	}
	if len(goals) != 0 {
		t.Fatalf("LoadGoals on empty store = %v, want none", goals)
	}
}
