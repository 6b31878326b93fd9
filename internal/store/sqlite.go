package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/billdue/internal/model"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

var _ Backend = (*SQLiteBackend)(nil)

// SQLiteBackend stores bills in a SQLite database, one row per bill.
type SQLiteBackend struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens the database at dbPath, creating its directory. The
// schema is created lazily so that a damaged file surfaces from Read as
// ErrCorruptData rather than from here.
func OpenSQLite(dbPath string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	return &SQLiteBackend{path: dbPath, db: db}, nil
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening bill db: %w", err)
	}
	return db, nil
}

func (s *SQLiteBackend) ensureSchema() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("%w: creating schema: %v", ErrCorruptData, err)
	}
	return nil
}

// Read implements Backend.
func (s *SQLiteBackend) Read() ([]model.Bill, error) {
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`SELECT id, name, due_day, due_month, cycle_type, amount, paid
		FROM bills ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	defer func() { _ = rows.Close() }()

	bills := []model.Bill{}
	for rows.Next() {
		var (
			b             model.Bill
			cycle, amount string
			paid          int
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.DueDay, &b.DueMonth, &cycle, &amount, &paid); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
		}
		if err := checkRange(b.DueDay, b.DueMonth); err != nil {
			return nil, fmt.Errorf("%w: bill %s: %v", ErrCorruptData, b.ID, err)
		}
		if b.Cycle, err = model.ParseCycleType(cycle); err != nil {
			return nil, fmt.Errorf("%w: bill %s: %v", ErrCorruptData, b.ID, err)
		}
		if b.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("%w: bill %s: amount: %v", ErrCorruptData, b.ID, err)
		}
		b.Paid = paid != 0
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return bills, nil
}

// Write implements Backend. The table is replaced in one transaction.
func (s *SQLiteBackend) Write(bills []model.Bill) error {
	if err := s.ensureSchema(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM bills"); err != nil {
		return fmt.Errorf("clearing bills: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	stmt, err := tx.Prepare(`INSERT INTO bills
		(id, position, name, due_day, due_month, cycle_type, amount, paid, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, b := range bills {
		paid := 0
		if b.Paid {
			paid = 1
		}
		if _, err := stmt.Exec(b.ID, i, b.Name, b.DueDay, b.DueMonth,
			b.Cycle.String(), b.Amount.String(), paid, now); err != nil {
			return fmt.Errorf("inserting bill %s: %w", b.ID, err)
		}
	}

	return tx.Commit()
}

// Quarantine implements Backend. The database file is closed, renamed to
// <path>.corrupt (or <path>.corrupt.N if that is taken) and a fresh one is
// opened in its place.
func (s *SQLiteBackend) Quarantine() (string, error) {
	dst, err := quarantinePath(s.path)
	if err != nil {
		return "", err
	}
	_ = s.db.Close()

	if err := os.Rename(s.path, dst); err != nil {
		return "", fmt.Errorf("moving corrupt bill db: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(s.path + suffix)
	}

	db, err := openDB(s.path)
	if err != nil {
		return "", err
	}
	s.db = db
	return dst, nil
}

// Close implements Backend.
func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
