package ledger

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/julianstephens/norton/internal/models"
)

func setupTestStore(t *testing.T, seed []models.Transaction) (*Store, *int) {
	t.Helper()
	saves := 0
	n := 0
	clock := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.Local)

	s := New(seed,
		WithClock(func() time.Time { return clock }),
		WithIDs(func() string { n++; return fmt.Sprintf("x%d", n) }),
		WithLabeler(func(c models.Category) string { return "label:" + string(c) }),
		WithOnChange(func([]models.Transaction) error { saves++; return nil }),
	)
	return s, &saves
}

func TestAddTransactionDefaults(t *testing.T) {
	s, saves := setupTestStore(t, nil)

	tx, err := s.AddTransaction(45, models.TransactionExpense, models.CategoryFood, "  ")
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	if tx.Description != "label:Food" {
		t.Errorf("description = %q, want category label", tx.Description)
	}
	if tx.Date != time.Date(2024, time.May, 10, 12, 0, 0, 0, time.Local).UnixMilli() {
		t.Errorf("date = %d, want clock instant", tx.Date)
	}

	blankCat, _ := s.AddTransaction(3, models.TransactionExpense, "", "")
	if blankCat.Category != models.CategoryOther || blankCat.Description != "label:Other" {
		t.Errorf("blank category = %+v", blankCat)
	}

	custom, _ := s.AddTransaction(12, models.TransactionIncome, "Gifts", "birthday")
	if custom.Category != "Gifts" {
		t.Errorf("unknown category not preserved: %q", custom.Category)
	}

	txs := s.Transactions()
	if txs[0].ID != custom.ID || txs[2].ID != tx.ID {
		t.Error("expected newest first")
	}
	if *saves != 3 {
		t.Errorf("expected 3 saves, got %d", *saves)
	}
}

func TestAddTransactionRejectsInvalid(t *testing.T) {
	s, saves := setupTestStore(t, nil)

	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		if _, err := s.AddTransaction(amount, models.TransactionExpense, models.CategoryFood, ""); !errors.Is(err, models.ErrInvalidAmount) {
			t.Errorf("amount %v error = %v", amount, err)
		}
	}
	if _, err := s.AddTransaction(10, models.TransactionType("refund"), models.CategoryFood, ""); !errors.Is(err, models.ErrInvalidType) {
		t.Errorf("type error = %v", err)
	}
	if len(s.Transactions()) != 0 || *saves != 0 {
		t.Error("invalid adds must not change or persist state")
	}
}

func TestAddUpdatesTotalByType(t *testing.T) {
	s, _ := setupTestStore(t, models.SeedTransactions(time.Now()))

	beforeExpense := TotalByType(models.TransactionExpense, s.Transactions())
	beforeIncome := TotalByType(models.TransactionIncome, s.Transactions())

	if _, err := s.AddTransaction(19.99, models.TransactionExpense, models.CategoryEntertainment, ""); err != nil {
		t.Fatal(err)
	}

	afterExpense := TotalByType(models.TransactionExpense, s.Transactions())
	afterIncome := TotalByType(models.TransactionIncome, s.Transactions())

	if math.Abs(afterExpense-beforeExpense-19.99) > 1e-9 {
		t.Errorf("expense total moved by %v, want 19.99", afterExpense-beforeExpense)
	}
	if afterIncome != beforeIncome {
		t.Errorf("income total changed from %v to %v", beforeIncome, afterIncome)
	}
}

func TestTotalByTypeIsExactForDecimals(t *testing.T) {
	var txs []models.Transaction
	for i := 0; i < 10; i++ {
		txs = append(txs, models.Transaction{Amount: 0.1, Type: models.TransactionExpense})
	}
	if got := TotalByType(models.TransactionExpense, txs); got != 1 {
		t.Errorf("TotalByType() = %v, want exactly 1", got)
	}
}

func TestEditTransactionPreservesIDAndDate(t *testing.T) {
	s, _ := setupTestStore(t, []models.Transaction{
		{ID: "a", Amount: 10, Type: models.TransactionExpense, Category: models.CategoryFood, Description: "lunch", Date: 1000},
	})

	edited, err := s.EditTransaction("a", 25, models.TransactionIncome, models.CategorySalary, "")
	if err != nil {
		t.Fatalf("EditTransaction failed: %v", err)
	}
	if edited.ID != "a" || edited.Date != 1000 {
		t.Errorf("identity changed: %+v", edited)
	}
	if edited.Amount != 25 || edited.Type != models.TransactionIncome || edited.Description != "label:Salary" {
		t.Errorf("fields not replaced: %+v", edited)
	}

	if _, err := s.EditTransaction("a", -1, models.TransactionIncome, "", ""); !errors.Is(err, models.ErrInvalidAmount) {
		t.Errorf("invalid edit error = %v", err)
	}
	if got, _ := s.Get("a"); got.Amount != 25 {
		t.Error("invalid edit must not change the entry")
	}
	if _, err := s.EditTransaction("zzz", 1, models.TransactionIncome, "", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id error = %v", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	s, _ := setupTestStore(t, []models.Transaction{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	if ok, err := s.DeleteTransaction("b"); !ok || err != nil {
		t.Fatalf("DeleteTransaction = %v, %v", ok, err)
	}
	txs := s.Transactions()
	if len(txs) != 2 || txs[0].ID != "a" || txs[1].ID != "c" {
		t.Errorf("unexpected order after delete: %+v", txs)
	}
	if ok, _ := s.DeleteTransaction("b"); ok {
		t.Error("second delete should report false")
	}
}

func TestTotalForMonth(t *testing.T) {
	may := time.Date(2024, time.May, 31, 23, 30, 0, 0, time.Local).UnixMilli()
	june := time.Date(2024, time.June, 1, 0, 30, 0, 0, time.Local).UnixMilli()

	txs := []models.Transaction{
		{Amount: 100, Type: models.TransactionExpense, Date: may},
		{Amount: 50, Type: models.TransactionExpense, Date: june},
		{Amount: 900, Type: models.TransactionIncome, Date: may},
	}

	if got := TotalForMonth(txs, models.TransactionExpense, 2024, time.May); got != 100 {
		t.Errorf("May expense = %v, want 100", got)
	}
	if got := TotalForMonth(txs, models.TransactionExpense, 2024, time.June); got != 50 {
		t.Errorf("June expense = %v, want 50", got)
	}
	if got := TotalForMonth(txs, models.TransactionIncome, 2024, time.May); got != 900 {
		t.Errorf("May income = %v, want 900", got)
	}
}

func TestSortForDisplay(t *testing.T) {
	txs := []models.Transaction{
		{ID: "old", Date: 1},
		{ID: "new", Date: 3},
		{ID: "mid-a", Date: 2},
		{ID: "mid-b", Date: 2},
	}
	SortForDisplay(txs)

	want := []string{"new", "mid-a", "mid-b", "old"}
	for i, id := range want {
		if txs[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, txs[i].ID, id)
		}
	}
}
