package budget

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/julianstephens/norton/internal/models"
)

func TestCurrentUsage(t *testing.T) {
	tests := []struct {
		name          string
		budget, spent float64
		wantPercent   float64
		wantRemaining float64
	}{
		{"under budget", 5000, 1250, 25, 3750},
		{"exactly spent", 200, 200, 100, 0},
		{"overspent caps percent", 5000, 6000, 100, -1000},
		{"zero budget", 0, 0, 100, 0},
		{"zero budget with spending", 0, 40, 100, -40},
		{"negative budget", -10, 5, 100, -15},
		{"nothing spent", 800, 0, 0, 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := CurrentUsage(tt.budget, tt.spent)
			if u.Percent != tt.wantPercent {
				t.Errorf("Percent = %v, want %v", u.Percent, tt.wantPercent)
			}
			if u.Remaining != tt.wantRemaining {
				t.Errorf("Remaining = %v, want %v", u.Remaining, tt.wantRemaining)
			}
			if u.Percent < 0 || u.Percent > 100 {
				t.Errorf("Percent %v outside [0,100]", u.Percent)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := map[string]float64{
		"5000":      5000,
		"  1200.5":  1200.5,
		"1200abc":   1200,
		"3.":        3,
		".5":        0.5,
		"-20":       -20,
		"1e3":       1000,
		"abc":       0,
		"":          0,
		"1e999":     math.Inf(1),
		"-1e999":    math.Inf(-1),
		"Infinity":  math.Inf(1),
		"+Infinity": math.Inf(1),
		"-Infinity": math.Inf(-1),
		"Infinityx": math.Inf(1),
		"infinity":  0,
		"1e-999":    0,
	}

	for in, want := range tests {
		if got := ParseAmount(in); got != want {
			t.Errorf("ParseAmount(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInfiniteBudgetIsNeverUsedUp(t *testing.T) {
	tr := New("Infinity")
	u := tr.Usage([]models.Transaction{
		{Amount: 300, Type: models.TransactionExpense, Date: time.Now().UnixMilli()},
	}, time.Now())

	if u.Percent != 0 {
		t.Errorf("Percent = %v, want 0", u.Percent)
	}
	if !math.IsInf(u.Remaining, 1) || u.Overspent() {
		t.Errorf("Remaining = %v, Overspent = %v", u.Remaining, u.Overspent())
	}

	if u := CurrentUsage(math.Inf(-1), 10); u.Percent != 100 || !u.Overspent() {
		t.Errorf("negative infinite budget usage = %+v", u)
	}
}

func TestTrackerDefaultsAndPersists(t *testing.T) {
	var saved []string
	tr := New("", WithOnChange(func(raw string) error {
		saved = append(saved, raw)
		return nil
	}))

	if tr.Raw() != "5000" || tr.Value() != 5000 {
		t.Fatalf("default budget = %q / %v", tr.Raw(), tr.Value())
	}

	if err := tr.SetRaw("12x"); err != nil {
		t.Fatalf("SetRaw failed: %v", err)
	}
	if tr.Raw() != "12x" || tr.Value() != 12 {
		t.Errorf("raw value = %q / %v", tr.Raw(), tr.Value())
	}

	if err := tr.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if len(saved) != 2 || saved[1] != "5000" {
		t.Errorf("saved = %v", saved)
	}
}

func TestTrackerPersistError(t *testing.T) {
	writeErr := errors.New("locked")
	tr := New("100", WithOnChange(func(string) error { return writeErr }))

	if err := tr.SetRaw("200"); !errors.Is(err, writeErr) {
		t.Errorf("SetRaw error = %v", err)
	}
}

func TestTrackerUsageUsesCurrentMonthExpenses(t *testing.T) {
	now := time.Date(2024, time.May, 15, 10, 0, 0, 0, time.Local)
	lastMonth := time.Date(2024, time.April, 30, 10, 0, 0, 0, time.Local)

	txs := []models.Transaction{
		{Amount: 1000, Type: models.TransactionExpense, Date: now.UnixMilli()},
		{Amount: 250, Type: models.TransactionExpense, Date: now.Add(-time.Hour).UnixMilli()},
		{Amount: 9000, Type: models.TransactionIncome, Date: now.UnixMilli()},
		{Amount: 700, Type: models.TransactionExpense, Date: lastMonth.UnixMilli()},
	}

	u := New("5000").Usage(txs, now)
	if u.Spent != 1250 || u.Percent != 25 || u.Remaining != 3750 {
		t.Errorf("Usage() = %+v", u)
	}
}
