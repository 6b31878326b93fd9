package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/billdue/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

// FormValues holds the raw text of the bill editor.
type FormValues struct {
	Name   string
	Day    string
	Month  string
	Amount string
	Cycle  model.CycleType
	Paid   bool
}

// NewFormValues returns editor defaults for a new bill: due today, monthly.
func NewFormValues(today time.Time) FormValues {
	return FormValues{
		Day:   strconv.Itoa(today.Day()),
		Month: strconv.Itoa(int(today.Month())),
		Cycle: model.MonthlyOnFixedDay,
	}
}

// FormValuesFrom fills the editor from an existing bill.
func FormValuesFrom(b model.Bill) FormValues {
	return FormValues{
		Name:   b.Name,
		Day:    strconv.Itoa(b.DueDay),
		Month:  strconv.Itoa(b.DueMonth),
		Amount: b.Amount.StringFixed(2),
		Cycle:  b.Cycle,
		Paid:   b.Paid,
	}
}

// Fields parses the editor text. Calendar checks against the year are left
// to the store.
func (v FormValues) Fields() (model.Fields, error) {
	name := strings.TrimSpace(v.Name)
	if name == "" {
		return model.Fields{}, errors.New("name is required")
	}
	day, err := parseInt("due day", v.Day)
	if err != nil {
		return model.Fields{}, err
	}
	month, err := parseInt("due month", v.Month)
	if err != nil {
		return model.Fields{}, err
	}
	amount, err := parseAmount(v.Amount)
	if err != nil {
		return model.Fields{}, err
	}
	return model.Fields{
		Name:     name,
		DueDay:   day,
		DueMonth: month,
		Cycle:    v.Cycle,
		Amount:   amount,
		Paid:     v.Paid,
	}, nil
}

func parseInt(label, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", label)
	}
	return n, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, errors.New("amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q is not a number", s)
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("amount cannot be negative")
	}
	return d, nil
}

func validateRange(label string, lo, hi int) func(string) error {
	return func(s string) error {
		n, err := parseInt(label, s)
		if err != nil {
			return err
		}
		if n < lo || n > hi {
			return fmt.Errorf("%s must be %d-%d", label, lo, hi)
		}
		return nil
	}
}

// NewBillForm builds the add/edit form bound to v. The paid toggle is only
// offered for new bills since editing always clears it.
func NewBillForm(v *FormValues, editing bool) *huh.Form {
	cycles := make([]huh.Option[model.CycleType], 0, len(model.CycleTypes))
	for _, c := range model.CycleTypes {
		cycles = append(cycles, huh.NewOption(c.String(), c))
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Value(&v.Name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("name is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Due day").
			Value(&v.Day).
			Validate(validateRange("due day", 1, 31)),
		huh.NewInput().
			Title("Due month").
			Value(&v.Month).
			Validate(validateRange("due month", 1, 12)),
		huh.NewSelect[model.CycleType]().
			Title("Cycle").
			Options(cycles...).
			Value(&v.Cycle),
		huh.NewInput().
			Title("Amount").
			Prompt("$ ").
			Value(&v.Amount).
			Validate(func(s string) error {
				_, err := parseAmount(s)
				return err
			}),
	}
	if !editing {
		fields = append(fields, huh.NewConfirm().
			Title("Already paid?").
			Value(&v.Paid))
	}

	title := "New bill"
	if editing {
		title = "Edit bill"
	}
	return huh.NewForm(
		huh.NewGroup(fields...).Title(title),
	).WithShowHelp(true)
}
