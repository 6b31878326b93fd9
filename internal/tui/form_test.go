package tui

import (
	"testing"
	"time"

	"github.com/theirongolddev/billdue/internal/config"
	"github.com/theirongolddev/billdue/internal/model"

	"github.com/shopspring/decimal"
)

func TestFormValuesFields(t *testing.T) {
	v := FormValues{Name: "  Rent ", Day: "1", Month: " 3", Amount: "$1,200.5", Cycle: model.Every30Days}
	f, err := v.Fields()
	if err != nil {
		t.Fatalf("Fields: %v", err)
	}
	if f.Name != "Rent" || f.DueDay != 1 || f.DueMonth != 3 || f.Cycle != model.Every30Days {
		t.Errorf("Fields = %+v", f)
	}
	if !f.Amount.Equal(decimal.RequireFromString("1200.5")) {
		t.Errorf("Amount = %s", f.Amount)
	}
}

func TestFormValuesFields_Errors(t *testing.T) {
	base := FormValues{Name: "Rent", Day: "1", Month: "3", Amount: "10"}
	tests := map[string]func(*FormValues){
		"blank name":      func(v *FormValues) { v.Name = " " },
		"non-numeric day": func(v *FormValues) { v.Day = "first" },
		"blank month":     func(v *FormValues) { v.Month = "" },
		"bad amount":      func(v *FormValues) { v.Amount = "ten" },
		"negative amount": func(v *FormValues) { v.Amount = "-4" },
		"blank amount":    func(v *FormValues) { v.Amount = "" },
	}
	for name, mutate := range tests {
		v := base
		mutate(&v)
		if _, err := v.Fields(); err == nil {
			t.Errorf("%s: no error", name)
		}
	}
}

func TestFormValuesRoundTrip(t *testing.T) {
	b := model.Bill{Name: "Phone", DueDay: 15, DueMonth: 7, Cycle: model.OneTime,
		Amount: decimal.RequireFromString("55.25"), Paid: true}
	f, err := FormValuesFrom(b).Fields()
	if err != nil {
		t.Fatal(err)
	}
	if !f.Amount.Equal(b.Amount) {
		t.Errorf("Amount = %s, want %s", f.Amount, b.Amount)
	}
	if f.Name != b.Name || f.DueDay != 15 || f.DueMonth != 7 || f.Cycle != model.OneTime || !f.Paid {
		t.Errorf("round trip = %+v", f)
	}
}

func TestNewFormValuesDefaultsToToday(t *testing.T) {
	v := NewFormValues(time.Date(2024, 11, 28, 0, 0, 0, 0, time.UTC))
	if v.Day != "28" || v.Month != "11" || v.Cycle != model.MonthlyOnFixedDay {
		t.Errorf("NewFormValues = %+v", v)
	}
}

func TestValidateRange(t *testing.T) {
	check := validateRange("due day", 1, 31)
	for _, ok := range []string{"1", "31", " 15 "} {
		if err := check(ok); err != nil {
			t.Errorf("%q rejected: %v", ok, err)
		}
	}
	for _, bad := range []string{"0", "32", "x"} {
		if err := check(bad); err == nil {
			t.Errorf("%q accepted", bad)
		}
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := SetupValuesFrom(cfg)
	v.Backend = config.BackendSQLite
	v.OnCorrupt = config.OnCorruptEmpty
	v.Theme = "tokyo-night"

	got := v.Apply(cfg)
	if got.General.Backend != config.BackendSQLite || got.General.OnCorrupt != config.OnCorruptEmpty ||
		got.Appearance.Theme != "tokyo-night" {
		t.Errorf("Apply = %+v", got)
	}
	if NewSetupForm(&v) == nil {
		t.Fatal("NewSetupForm returned nil")
	}
}
