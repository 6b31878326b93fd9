package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/billdue/internal/model"

	"github.com/shopspring/decimal"
)

func openSQLiteStore(t *testing.T, path string) *Store {
	t.Helper()
	backend, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	s := New(backend, WithIDFunc(seqIDs()))
	t.Cleanup(func() { _ = s.Close() })
	if err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestSQLite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "bills.db")
	s := openSQLiteStore(t, path)
	if s.Len() != 0 {
		t.Fatalf("fresh db Len = %d, want 0", s.Len())
	}

	today := mustDate(t, "2025-04-01")
	f := fields("Phone", 4, 30, "55.25")
	f.Cycle = model.Every30Days
	phone, err := s.Add(f, today)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add(fields("Rent", 4, 1, "900"), today); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.TogglePaid(0, today); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := openSQLiteStore(t, path)
	bills := reopened.Bills()
	if len(bills) != 2 {
		t.Fatalf("len = %d, want 2", len(bills))
	}
	if bills[0].Name != "Rent" || !bills[0].Paid {
		t.Errorf("bills[0] = %+v, want Rent paid", bills[0])
	}
	if !bills[1].Equal(phone) {
		t.Errorf("bills[1] = %+v, want %+v", bills[1], phone)
	}
	if !bills[1].Amount.Equal(decimal.RequireFromString("55.25")) {
		t.Errorf("amount = %s", bills[1].Amount)
	}
}

func TestSQLite_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.db")
	if err := os.WriteFile(path, []byte(strings.Repeat("not a database ", 100)), 0o600); err != nil {
		t.Fatal(err)
	}

	backend, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer func() { _ = backend.Close() }()

	if err := New(backend).Load(); !errors.Is(err, ErrCorruptData) {
		t.Fatalf("Load err = %v, want ErrCorruptData", err)
	}

	s := New(backend, WithRecoverCorrupt(true))
	if err := s.Load(); err != nil {
		t.Fatalf("recovering Load: %v", err)
	}
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Fatalf("corrupt db not preserved: %v", err)
	}
	if _, err := s.Add(fields("Rent", 4, 1, "900"), mustDate(t, "2025-04-01")); err != nil {
		t.Fatalf("Add after recovery: %v", err)
	}

	// A second quarantine leaves the first copy alone.
	moved, err := backend.Quarantine()
	if err != nil {
		t.Fatalf("second Quarantine: %v", err)
	}
	if moved != path+".corrupt.1" {
		t.Errorf("moved to %s, want %s", moved, path+".corrupt.1")
	}
	data, err := os.ReadFile(path + ".corrupt")
	if err != nil || !strings.HasPrefix(string(data), "not a database") {
		t.Errorf("first quarantined copy overwritten: %v", err)
	}
}
