// Package store owns the bill collection and its persistence.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/billdue/internal/model"
	"github.com/theirongolddev/billdue/internal/schedule"

	"github.com/google/uuid"
)

var (
	// ErrNoSelection is returned when an operation names no existing bill.
	ErrNoSelection = errors.New("no bill selected")
	// ErrCorruptData is returned when stored bills cannot be parsed.
	ErrCorruptData = errors.New("bill data is corrupt")
)

// Backend reads and writes the whole bill collection.
//
// Read returns an empty collection when nothing has been stored yet, and an
// error wrapping ErrCorruptData when stored content cannot be parsed.
type Backend interface {
	Read() ([]model.Bill, error)
	Write(bills []model.Bill) error
	// Quarantine moves unreadable storage aside and returns where it went.
	Quarantine() (string, error)
	Close() error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for rollovers and migrations.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithRecoverCorrupt makes Load start from an empty collection when stored
// data is corrupt, after moving the bad data aside.
func WithRecoverCorrupt(enabled bool) Option {
	return func(s *Store) { s.recoverCorrupt = enabled }
}

// WithIDFunc overrides how new bill IDs are generated.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Store holds the bill collection in display order. It is not safe for
// concurrent use.
type Store struct {
	backend        Backend
	bills          []model.Bill
	log            *slog.Logger
	recoverCorrupt bool
	newID          func() string
}

// New returns a Store over backend. Call Load before using it.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		log:     slog.Default(),
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Load replaces the in-memory collection with the stored one, sorted by due
// date. Bills stored without an ID are given one; the IDs are written out by
// the next save.
func (s *Store) Load() error {
	bills, err := s.backend.Read()
	if err != nil {
		if !errors.Is(err, ErrCorruptData) || !s.recoverCorrupt {
			return err
		}
		moved, qerr := s.backend.Quarantine()
		if qerr != nil {
			return fmt.Errorf("%w (quarantine failed: %v)", err, qerr)
		}
		s.log.Warn("bill data unreadable, starting empty", "err", err, "moved_to", moved)
		bills = nil
	}

	migrated := 0
	for i := range bills {
		if bills[i].ID == "" {
			bills[i].ID = s.newID()
			migrated++
		}
	}
	if migrated > 0 {
		s.log.Info("assigned ids to legacy bills", "count", migrated)
	}

	schedule.Sort(bills)
	s.bills = bills
	return nil
}

// Save writes the collection to the backend.
func (s *Store) Save() error {
	if err := s.backend.Write(s.bills); err != nil {
		return fmt.Errorf("saving bills: %w", err)
	}
	return nil
}

// Len returns the number of bills.
func (s *Store) Len() int {
	return len(s.bills)
}

// Bills returns a copy of the collection in display order.
func (s *Store) Bills() []model.Bill {
	return slices.Clone(s.bills)
}

// At returns the bill at a display position.
func (s *Store) At(index int) (model.Bill, error) {
	if index < 0 || index >= len(s.bills) {
		return model.Bill{}, ErrNoSelection
	}
	return s.bills[index], nil
}

// Add validates f against today's year and appends it as a new bill. A bill
// added already paid has its due month moved to the next one still ahead,
// after the entered date has been validated.
func (s *Store) Add(f model.Fields, today time.Time) (model.Bill, error) {
	if err := schedule.Validate(f, today.Year()); err != nil {
		return model.Bill{}, err
	}
	if f.Paid {
		f.DueMonth = schedule.PaidDueMonth(f.DueDay, today)
	}

	b := fromFields(s.newID(), f)
	prev := slices.Clone(s.bills)
	s.bills = append(s.bills, b)
	schedule.Sort(s.bills)
	if err := s.commit(prev); err != nil {
		return model.Bill{}, err
	}
	s.log.Debug("bill added", "id", b.ID, "name", b.Name)
	return b, nil
}

// Import appends bills read from another collection. Bills are held to the
// same checks as loaded ones, so a day past the end of its month (left by a
// rollover) is kept. Each bill keeps its ID unless that ID is empty or
// already in use. Nothing is stored if any bill is invalid.
func (s *Store) Import(bills []model.Bill) (int, error) {
	seen := make(map[string]bool, len(s.bills)+len(bills))
	for _, b := range s.bills {
		seen[b.ID] = true
	}

	added := make([]model.Bill, 0, len(bills))
	for _, b := range bills {
		if err := checkRange(b.DueDay, b.DueMonth); err != nil {
			return 0, fmt.Errorf("%w: bill %q: %v", schedule.ErrValidation, b.Name, err)
		}
		if b.Amount.IsNegative() {
			return 0, fmt.Errorf("%w: bill %q: amount %s is negative", schedule.ErrValidation, b.Name, b.Amount)
		}
		if b.ID == "" || seen[b.ID] {
			b.ID = s.newID()
		}
		seen[b.ID] = true
		added = append(added, b)
	}

	prev := slices.Clone(s.bills)
	s.bills = append(s.bills, added...)
	schedule.Sort(s.bills)
	if err := s.commit(prev); err != nil {
		return 0, err
	}
	return len(added), nil
}

// Update replaces the fields of the bill with the given ID. Editing always
// clears the paid flag. It reports false when no bill has that ID.
func (s *Store) Update(id string, f model.Fields, today time.Time) (model.Bill, bool, error) {
	return s.update(func(b model.Bill) bool { return b.ID == id }, f, today)
}

// UpdateByName is Update keyed on the first bill named name.
func (s *Store) UpdateByName(name string, f model.Fields, today time.Time) (model.Bill, bool, error) {
	return s.update(func(b model.Bill) bool { return b.Name == name }, f, today)
}

func (s *Store) update(match func(model.Bill) bool, f model.Fields, today time.Time) (model.Bill, bool, error) {
	if err := schedule.Validate(f, today.Year()); err != nil {
		return model.Bill{}, false, err
	}

	i := slices.IndexFunc(s.bills, match)
	if i < 0 {
		return model.Bill{}, false, nil
	}

	f.Paid = false
	b := fromFields(s.bills[i].ID, f)
	prev := slices.Clone(s.bills)
	s.bills[i] = b
	schedule.Sort(s.bills)
	if err := s.commit(prev); err != nil {
		return model.Bill{}, false, err
	}
	return b, true, nil
}

// Delete removes the bill with the given ID. Deleting a missing bill is not
// an error; the result reports whether anything was removed.
func (s *Store) Delete(id string) (bool, error) {
	return s.remove(func(b model.Bill) bool { return b.ID == id })
}

// DeleteRecord removes the first bill equal to b in every field.
func (s *Store) DeleteRecord(b model.Bill) (bool, error) {
	return s.remove(b.Equal)
}

func (s *Store) remove(match func(model.Bill) bool) (bool, error) {
	i := slices.IndexFunc(s.bills, match)
	if i < 0 {
		return false, nil
	}
	prev := slices.Clone(s.bills)
	s.bills = slices.Delete(s.bills, i, i+1)
	if err := s.commit(prev); err != nil {
		return false, err
	}
	return true, nil
}

// TogglePaid flips the paid flag of the bill at a display position, then
// rolls it over if it is now paid and past due. The second result reports a
// rollover, in which case the returned bill is already unpaid for its next
// due date.
func (s *Store) TogglePaid(index int, today time.Time) (model.Bill, bool, error) {
	if index < 0 || index >= len(s.bills) {
		return model.Bill{}, false, ErrNoSelection
	}

	prev := slices.Clone(s.bills)
	b := s.bills[index]
	b.Paid = !b.Paid
	b, rolled := schedule.Rollover(b, today)
	s.bills[index] = b
	schedule.Sort(s.bills)
	if err := s.commit(prev); err != nil {
		return model.Bill{}, false, err
	}
	if rolled {
		s.log.Debug("bill rolled over", "id", b.ID, "name", b.Name, "due_month", b.DueMonth)
	}
	return b, rolled, nil
}

// List runs the display pass: each bill is classified and, when paid and
// past due, rolled to the next month. The collection is re-sorted and saved.
// The returned entries are in display order and valid even when err reports
// a failed save.
func (s *Store) List(today time.Time) ([]schedule.Entry, error) {
	entries := make([]schedule.Entry, 0, len(s.bills))
	rolled := 0
	for _, b := range s.bills {
		e, changed := schedule.Evaluate(b, today)
		if changed {
			rolled++
			s.log.Debug("bill rolled over", "id", b.ID, "name", b.Name, "due_month", e.Bill.DueMonth)
		}
		entries = append(entries, e)
	}
	if rolled > 0 {
		s.log.Info("rolled over paid bills", "count", rolled)
	}
	schedule.SortEntries(entries)

	s.bills = s.bills[:0]
	for _, e := range entries {
		s.bills = append(s.bills, e.Bill)
	}

	if err := s.Save(); err != nil {
		return entries, err
	}
	return entries, nil
}

// Resolve maps a user selector to a display position. The selector is
// tried as a 1-based position, then an exact bill name, then a unique ID
// prefix. An out-of-range number falls through to the later forms so that an
// all-digit ID prefix still resolves.
func (s *Store) Resolve(selector string) (int, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return -1, ErrNoSelection
	}

	n, numErr := strconv.Atoi(selector)
	if numErr == nil && n >= 1 && n <= len(s.bills) {
		return n - 1, nil
	}

	if i := slices.IndexFunc(s.bills, func(b model.Bill) bool { return b.Name == selector }); i >= 0 {
		return i, nil
	}

	found := -1
	for i, b := range s.bills {
		if strings.HasPrefix(b.ID, selector) {
			if found >= 0 {
				return -1, fmt.Errorf("%w: id prefix %q is ambiguous", ErrNoSelection, selector)
			}
			found = i
		}
	}
	if found >= 0 {
		return found, nil
	}

	if numErr == nil {
		return -1, fmt.Errorf("%w: position %d out of range 1-%d", ErrNoSelection, n, len(s.bills))
	}
	return -1, fmt.Errorf("%w: %q", ErrNoSelection, selector)
}

// commit saves the collection, restoring prev if the write fails.
func (s *Store) commit(prev []model.Bill) error {
	if err := s.Save(); err != nil {
		s.bills = prev
		return err
	}
	return nil
}

func fromFields(id string, f model.Fields) model.Bill {
	return model.Bill{
		ID:       id,
		Name:     f.Name,
		DueDay:   f.DueDay,
		DueMonth: f.DueMonth,
		Cycle:    f.Cycle,
		Amount:   f.Amount,
		Paid:     f.Paid,
	}
}
