package schedule

import (
	"github.com/theirongolddev/billdue/internal/model"

	"github.com/shopspring/decimal"
)

// Summary totals a display pass.
type Summary struct {
	Bills       int
	Paid        int
	Overdue     int
	DueThisWeek int // unpaid and due within 7 days, overdue excluded
	UnpaidTotal decimal.Decimal
}

// Summarize aggregates entries produced by Evaluate.
func Summarize(entries []Entry) Summary {
	s := Summary{Bills: len(entries), UnpaidTotal: decimal.Zero}
	for _, e := range entries {
		switch e.Urgency {
		case model.UrgencyPaid:
			s.Paid++
			continue
		case model.UrgencyOverdue:
			s.Overdue++
		case model.UrgencyCritical, model.UrgencyUrgent, model.UrgencySoon:
			s.DueThisWeek++
		}
		s.UnpaidTotal = s.UnpaidTotal.Add(e.Bill.Amount)
	}
	return s
}
