package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/theirongolddev/billdue/internal/model"

	"github.com/shopspring/decimal"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func bill(month, day int, paid bool) model.Bill {
	return model.Bill{
		ID:       "b1",
		Name:     "Power",
		DueMonth: month,
		DueDay:   day,
		Amount:   decimal.RequireFromString("42.50"),
		Paid:     paid,
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		diff int
		want model.Urgency
	}{
		{-30, model.UrgencyOverdue},
		{-2, model.UrgencyOverdue},
		{-1, model.UrgencyCritical},
		{0, model.UrgencyCritical},
		{1, model.UrgencyUrgent},
		{3, model.UrgencyUrgent},
		{4, model.UrgencySoon},
		{7, model.UrgencySoon},
		{8, model.UrgencyNormal},
		{200, model.UrgencyNormal},
	}
	for _, tt := range tests {
		if got := Classify(tt.diff); got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.diff, got, tt.want)
		}
	}
}

func TestUrgencyOf_FromDates(t *testing.T) {
	today := mustDate(t, "2025-06-10")
	tests := []struct {
		day  int
		want string
	}{
		{8, "black"},
		{9, "red"},
		{10, "red"},
		{11, "orange"},
		{13, "orange"},
		{14, "yellow"},
		{17, "yellow"},
		{18, "gray"},
	}
	for _, tt := range tests {
		got := UrgencyOf(bill(6, tt.day, false), today).Color()
		if got != tt.want {
			t.Errorf("June %d on June 10 = %s, want %s", tt.day, got, tt.want)
		}
	}
}

func TestUrgencyOf_PaidIsAlwaysGreen(t *testing.T) {
	today := mustDate(t, "2025-06-10")
	for _, day := range []int{1, 10, 30} {
		if got := UrgencyOf(bill(6, day, true), today); got != model.UrgencyPaid {
			t.Errorf("paid bill due June %d = %s, want paid", day, got)
		}
	}
}

func TestOneDayLateIsCritical(t *testing.T) {
	today := mustDate(t, "2025-03-16")
	b := bill(3, 15, false)

	if diff := DaysUntil(b, today); diff != -1 {
		t.Fatalf("DaysUntil = %d, want -1", diff)
	}
	if got := UrgencyOf(b, today); got != model.UrgencyCritical {
		t.Fatalf("urgency = %s, want critical", got)
	}
}

func TestPaidBillRollsButShowsGreen(t *testing.T) {
	today := mustDate(t, "2025-01-11")

	entry, rolled := Evaluate(bill(1, 10, true), today)
	if !rolled {
		t.Fatal("expected rollover")
	}
	if entry.Bill.DueMonth != 2 || entry.Bill.DueDay != 10 {
		t.Errorf("due = %d/%d, want 2/10", entry.Bill.DueMonth, entry.Bill.DueDay)
	}
	if entry.Bill.Paid {
		t.Error("paid flag not cleared by rollover")
	}
	if entry.Urgency != model.UrgencyPaid {
		t.Errorf("urgency = %s, want paid for the rolling pass", entry.Urgency)
	}

	// The next pass sees the fresh due date.
	next, rolled := Evaluate(entry.Bill, today)
	if rolled {
		t.Error("second pass rolled again")
	}
	if next.Urgency != model.UrgencyNormal {
		t.Errorf("next pass urgency = %s, want normal", next.Urgency)
	}
}

func TestDecemberWrapsToJanuary(t *testing.T) {
	today := mustDate(t, "2025-12-26")

	got, changed := Rollover(bill(12, 25, true), today)
	if !changed {
		t.Fatal("expected rollover")
	}
	if got.DueMonth != 1 {
		t.Errorf("DueMonth = %d, want 1", got.DueMonth)
	}
	if got.DueDay != 25 {
		t.Errorf("DueDay = %d, want 25", got.DueDay)
	}
	if got.Paid {
		t.Error("paid flag not cleared")
	}
	// The year is not carried: January now reads as long past.
	if CheckDate(got, today).Year() != 2025 {
		t.Errorf("check date year = %d, want 2025", CheckDate(got, today).Year())
	}
}

func TestRollover_Idempotent(t *testing.T) {
	today := mustDate(t, "2025-05-20")

	once, changed := Rollover(bill(5, 1, true), today)
	if !changed {
		t.Fatal("first pass did not roll")
	}
	twice, changed := Rollover(once, today)
	if changed {
		t.Fatal("second pass rolled again")
	}
	if !twice.Equal(once) {
		t.Fatalf("second pass changed bill: %+v -> %+v", once, twice)
	}
}

func TestRollover_NotOnDueDate(t *testing.T) {
	today := mustDate(t, "2025-05-20")
	if _, changed := Rollover(bill(5, 20, true), today); changed {
		t.Fatal("bill paid on its due date rolled the same day")
	}
	if _, changed := Rollover(bill(5, 19, false), today); changed {
		t.Fatal("unpaid bill rolled")
	}
}

func TestRollover_KeepsDay31(t *testing.T) {
	today := mustDate(t, "2025-04-02")

	got, changed := Rollover(bill(3, 31, true), today)
	if !changed {
		t.Fatal("expected rollover")
	}
	if got.DueMonth != 4 || got.DueDay != 31 {
		t.Fatalf("due = %d/%d, want 4/31", got.DueMonth, got.DueDay)
	}
	// April 31 is read as April 30 for comparisons.
	if want := mustDate(t, "2025-04-30"); !CheckDate(got, today).Equal(want) {
		t.Fatalf("CheckDate = %v, want %v", CheckDate(got, today), want)
	}
	if diff := DaysUntil(got, today); diff != 28 {
		t.Fatalf("DaysUntil = %d, want 28", diff)
	}
}

func TestRollover_IgnoresCycleType(t *testing.T) {
	today := mustDate(t, "2025-08-15")
	for _, c := range model.CycleTypes {
		b := bill(8, 1, true)
		b.Cycle = c
		got, changed := Rollover(b, today)
		if !changed || got.DueMonth != 9 {
			t.Errorf("%s: changed=%v month=%d, want rolled to 9", c, changed, got.DueMonth)
		}
	}
}

func TestValidate(t *testing.T) {
	ok := model.Fields{Name: "Rent", DueDay: 29, DueMonth: 2, Amount: decimal.NewFromInt(900)}
	if err := Validate(ok, 2024); err != nil {
		t.Fatalf("Feb 29 2024: unexpected error %v", err)
	}
	if err := Validate(ok, 2025); !errors.Is(err, ErrValidation) {
		t.Fatalf("Feb 29 2025: err = %v, want ErrValidation", err)
	}

	bad := []model.Fields{
		{DueDay: 31, DueMonth: 4},
		{DueDay: 0, DueMonth: 1},
		{DueDay: 1, DueMonth: 13},
		{DueDay: 1, DueMonth: 0},
		{DueDay: 1, DueMonth: 1, Amount: decimal.NewFromInt(-1)},
	}
	for _, f := range bad {
		if err := Validate(f, 2025); !errors.Is(err, ErrValidation) {
			t.Errorf("Validate(%+v) = %v, want ErrValidation", f, err)
		}
	}
}

func TestSort_YearUnaware(t *testing.T) {
	bills := []model.Bill{
		{Name: "dec", DueMonth: 12, DueDay: 1},
		{Name: "jan-15", DueMonth: 1, DueDay: 15},
		{Name: "jan-2", DueMonth: 1, DueDay: 2},
		{Name: "jan-2b", DueMonth: 1, DueDay: 2},
	}
	Sort(bills)

	want := []string{"jan-2", "jan-2b", "jan-15", "dec"}
	for i, name := range want {
		if bills[i].Name != name {
			t.Fatalf("bills[%d] = %s, want %s", i, bills[i].Name, name)
		}
	}
}

func TestPaidDueMonth(t *testing.T) {
	tests := []struct {
		today string
		day   int
		want  int
	}{
		{"2025-03-10", 15, 3},
		{"2025-03-10", 10, 3},
		{"2025-03-10", 5, 4},
		{"2025-12-20", 5, 1},
	}
	for _, tt := range tests {
		if got := PaidDueMonth(tt.day, mustDate(t, tt.today)); got != tt.want {
			t.Errorf("PaidDueMonth(%d, %s) = %d, want %d", tt.day, tt.today, got, tt.want)
		}
	}
}

func TestToday_DropsClock(t *testing.T) {
	loc := time.FixedZone("X", -5*3600)
	got := Today(time.Date(2025, 3, 9, 23, 59, 0, 0, loc))
	if want := mustDate(t, "2025-03-09"); !got.Equal(want) {
		t.Fatalf("Today = %v, want %v", got, want)
	}
}

func TestSummarize(t *testing.T) {
	today := mustDate(t, "2025-06-10")
	var entries []Entry
	for _, b := range []model.Bill{
		bill(6, 1, false),  // overdue
		bill(6, 12, false), // urgent
		bill(6, 30, false), // normal
		bill(6, 20, true),  // paid
	} {
		e, _ := Evaluate(b, today)
		entries = append(entries, e)
	}

	s := Summarize(entries)
	if s.Bills != 4 || s.Paid != 1 || s.Overdue != 1 || s.DueThisWeek != 1 {
		t.Fatalf("Summary = %+v", s)
	}
	if want := decimal.RequireFromString("127.50"); !s.UnpaidTotal.Equal(want) {
		t.Fatalf("UnpaidTotal = %s, want %s", s.UnpaidTotal, want)
	}
}
