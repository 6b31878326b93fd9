// Package schedule holds the due-date rules for bills: validation, urgency
// classification and the paid-bill rollover.
//
// Every function takes "today" explicitly. Callers obtain it once per pass
// with Today so that all decisions in a pass agree on the date.
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/theirongolddev/billdue/internal/model"
)

// ErrValidation is returned when a bill's due date or amount is invalid.
var ErrValidation = errors.New("invalid bill")

// Today truncates t to its calendar date. The result is expressed in UTC so
// day arithmetic is not skewed by DST transitions.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in month for year.
func DaysIn(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextMonth returns the month after m, wrapping December to January.
func NextMonth(m int) int {
	return m%12 + 1
}

// Validate checks fields against the calendar of year.
func Validate(f model.Fields, year int) error {
	if f.DueMonth < 1 || f.DueMonth > 12 {
		return fmt.Errorf("%w: due month %d is not between 1 and 12", ErrValidation, f.DueMonth)
	}
	if max := DaysIn(f.DueMonth, year); f.DueDay < 1 || f.DueDay > max {
		return fmt.Errorf("%w: due day %d is not valid for %s %d (1-%d)",
			ErrValidation, f.DueDay, time.Month(f.DueMonth), year, max)
	}
	if f.Amount.IsNegative() {
		return fmt.Errorf("%w: amount %s is negative", ErrValidation, f.Amount)
	}
	return nil
}

// CheckDate is the bill's due date placed in today's year. A due day past
// the end of the month, which a rollover can leave behind, is read as the
// month's last day.
func CheckDate(b model.Bill, today time.Time) time.Time {
	year := today.Year()
	day := b.DueDay
	if max := DaysIn(b.DueMonth, year); day > max {
		day = max
	}
	return time.Date(year, time.Month(b.DueMonth), day, 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the whole days from today to the bill's check date.
// Negative values mean the date has passed.
func DaysUntil(b model.Bill, today time.Time) int {
	return int(CheckDate(b, today).Sub(Today(today)).Hours() / 24)
}

// Classify maps a day difference for an unpaid bill to its urgency.
func Classify(diff int) model.Urgency {
	switch {
	case diff <= -2:
		return model.UrgencyOverdue
	case diff <= 0:
		return model.UrgencyCritical
	case diff <= 3:
		return model.UrgencyUrgent
	case diff <= 7:
		return model.UrgencySoon
	default:
		return model.UrgencyNormal
	}
}

// UrgencyOf returns the urgency of b as of today.
func UrgencyOf(b model.Bill, today time.Time) model.Urgency {
	if b.Paid {
		return model.UrgencyPaid
	}
	return Classify(DaysUntil(b, today))
}

// NeedsRollover reports whether b is paid and its due date has passed.
func NeedsRollover(b model.Bill, today time.Time) bool {
	return b.Paid && CheckDate(b, today).Before(Today(today))
}

// Rollover advances a paid, past-due bill to the next month and clears its
// paid flag. The due day and year are left alone and the cycle type is not
// consulted. The second result reports whether b changed.
func Rollover(b model.Bill, today time.Time) (model.Bill, bool) {
	if !NeedsRollover(b, today) {
		return b, false
	}
	b.DueMonth = NextMonth(b.DueMonth)
	b.Paid = false
	return b, true
}

// Entry is a bill prepared for display.
type Entry struct {
	Bill      model.Bill
	Urgency   model.Urgency
	DaysUntil int
}

// Evaluate runs one bill through a display pass. The urgency reflects the
// bill as it was handed in, so a bill that rolls over during this pass still
// shows as paid. The returned entry carries the rolled bill.
func Evaluate(b model.Bill, today time.Time) (Entry, bool) {
	urgency := UrgencyOf(b, today)
	rolled, changed := Rollover(b, today)
	return Entry{
		Bill:      rolled,
		Urgency:   urgency,
		DaysUntil: DaysUntil(rolled, today),
	}, changed
}

// Sort orders bills by due month then due day. Ties keep their order.
// The year plays no part, so January always sorts before December.
func Sort(bills []model.Bill) {
	sort.SliceStable(bills, func(i, j int) bool {
		return dueBefore(bills[i], bills[j])
	})
}

// SortEntries orders entries the same way Sort orders bills.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return dueBefore(entries[i].Bill, entries[j].Bill)
	})
}

func dueBefore(a, b model.Bill) bool {
	if a.DueMonth != b.DueMonth {
		return a.DueMonth < b.DueMonth
	}
	return a.DueDay < b.DueDay
}

// PaidDueMonth is the due month given to a bill created already paid: the
// current month while its due day has not passed, otherwise the next one.
func PaidDueMonth(dueDay int, today time.Time) int {
	if today.Day() <= dueDay {
		return int(today.Month())
	}
	return NextMonth(int(today.Month()))
}
