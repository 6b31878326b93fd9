// Package model defines domain types for billdue bills.
package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CycleType describes how often a bill recurs. It is recorded for display
// only; rollover math is the same for every cycle.
type CycleType int

const (
	MonthlyOnFixedDay CycleType = iota
	Every30Days
	OneTime
)

// Labels as they appear in bill files and the editor.
const (
	labelMonthly = "Every Month"
	label30Days  = "Every 30 Days"
	labelOneTime = "One Time Payment"
)

// CycleTypes lists every cycle in editor order.
var CycleTypes = []CycleType{MonthlyOnFixedDay, Every30Days, OneTime}

func (c CycleType) String() string {
	switch c {
	case Every30Days:
		return label30Days
	case OneTime:
		return labelOneTime
	default:
		return labelMonthly
	}
}

// ParseCycleType maps a stored label back to a CycleType. An empty label is
// treated as monthly, matching records written before cycle types existed.
func ParseCycleType(s string) (CycleType, error) {
	switch s {
	case "", labelMonthly:
		return MonthlyOnFixedDay, nil
	case label30Days:
		return Every30Days, nil
	case labelOneTime:
		return OneTime, nil
	}
	return MonthlyOnFixedDay, fmt.Errorf("unknown cycle type %q", s)
}

// MarshalJSON implements json.Marshaler.
func (c CycleType) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CycleType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCycleType(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Bill is one tracked household bill.
type Bill struct {
	ID       string
	Name     string
	DueDay   int
	DueMonth int
	Cycle    CycleType
	Amount   decimal.Decimal
	Paid     bool
}

// Equal reports whether two bills hold the same values in every field.
func (b Bill) Equal(o Bill) bool {
	return b.ID == o.ID &&
		b.Name == o.Name &&
		b.DueDay == o.DueDay &&
		b.DueMonth == o.DueMonth &&
		b.Cycle == o.Cycle &&
		b.Amount.Equal(o.Amount) &&
		b.Paid == o.Paid
}

// Fields holds the user-editable parts of a bill, as entered in an editor.
type Fields struct {
	Name     string
	DueDay   int
	DueMonth int
	Cycle    CycleType
	Amount   decimal.Decimal
	Paid     bool
}

// Fields returns the editable view of b.
func (b Bill) Fields() Fields {
	return Fields{
		Name:     b.Name,
		DueDay:   b.DueDay,
		DueMonth: b.DueMonth,
		Cycle:    b.Cycle,
		Amount:   b.Amount,
		Paid:     b.Paid,
	}
}
