package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestPriorityRank(t *testing.T) {
	tests := []struct {
		p    Priority
		want int
	}{
		{PriorityHigh, 3},
		{PriorityMedium, 2},
		{PriorityLow, 1},
		{Priority("urgent"), 0},
		{Priority(""), 0},
	}

	for _, tt := range tests {
		if got := tt.p.Rank(); got != tt.want {
			t.Errorf("Priority(%q).Rank() = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority(" HIGH ")
	if err != nil || p != PriorityHigh {
		t.Errorf("ParsePriority(HIGH) = %q, %v", p, err)
	}
	p, err = ParsePriority("")
	if err != nil || p != PriorityMedium {
		t.Errorf("ParsePriority(\"\") = %q, %v, want medium", p, err)
	}
	if _, err := ParsePriority("urgent"); err != ErrInvalidPriority {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestTaskCategoryEffective(t *testing.T) {
	if got := TaskCategory("").Effective(); got != TaskCategoryOther {
		t.Errorf("empty category effective = %q, want other", got)
	}
	if got := TaskCategoryStudy.Effective(); got != TaskCategoryStudy {
		t.Errorf("study effective = %q", got)
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"food", CategoryFood},
		{"  Salary ", CategorySalary},
		{"", CategoryOther},
		{"Gifts", Category("Gifts")},
	}

	for _, tt := range tests {
		if got := NormalizeCategory(tt.in); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if Category("Gifts").Known() {
		t.Error("unknown category reported as known")
	}
}

func TestValidAmount(t *testing.T) {
	valid := []float64{0.01, 45, 15000}
	invalid := []float64{0, -1, math.Inf(1), math.Inf(-1), math.NaN()}

	for _, a := range valid {
		if !ValidAmount(a) {
			t.Errorf("ValidAmount(%v) = false", a)
		}
	}
	for _, a := range invalid {
		if ValidAmount(a) {
			t.Errorf("ValidAmount(%v) = true", a)
		}
	}
}

func TestTaskValidate(t *testing.T) {
	base := Task{ID: "x", Text: "write", Priority: PriorityLow, Date: "2024-02-03"}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}

	blank := base
	blank.Text = "   "
	if err := blank.Validate(); err != ErrEmptyText {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}

	badDate := base
	badDate.Date = "2024-2-3"
	if err := badDate.Validate(); err != ErrInvalidDate {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestTaskJSONFieldNames(t *testing.T) {
	data := []byte(`{"id":"1","text":"a","completed":true,"period":"day","priority":"low","date":"2024-01-01","createdAt":42}`)

	var task Task
	if err := json.Unmarshal(data, &task); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !task.Completed || task.CreatedAt != 42 || task.Category != "" {
		t.Errorf("unexpected task: %+v", task)
	}
}

func TestSeedData(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.Local)

	tasks := SeedTasks(now)
	if len(tasks) != 4 {
		t.Fatalf("expected 4 seed tasks, got %d", len(tasks))
	}
	if tasks[2].Date != "2024-02-29" {
		t.Errorf("yesterday task date = %q, want 2024-02-29", tasks[2].Date)
	}
	for _, task := range tasks {
		if err := task.Validate(); err != nil {
			t.Errorf("seed task %s invalid: %v", task.ID, err)
		}
	}

	txs := SeedTransactions(now)
	if len(txs) != 5 {
		t.Fatalf("expected 5 seed transactions, got %d", len(txs))
	}
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			t.Errorf("seed transaction %s invalid: %v", tx.ID, err)
		}
	}
}
