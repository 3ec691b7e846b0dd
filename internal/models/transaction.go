package models

import (
	"errors"
	"math"
	"strings"
	"time"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// Category is a transaction category key. Keys outside the known
// vocabulary are kept as-is and rendered literally.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryHousing       Category = "Housing"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategorySalary        Category = "Salary"
	CategoryInvestment    Category = "Investment"
	CategoryOther         Category = "Other"
)

var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryHousing,
	CategoryShopping,
	CategoryEntertainment,
	CategorySalary,
	CategoryInvestment,
	CategoryOther,
}

func (c Category) Known() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// NormalizeCategory matches s case-insensitively against the known
// vocabulary. Blank input becomes Other; unknown input is returned trimmed.
func NormalizeCategory(s string) Category {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryOther
	}
	for _, k := range Categories {
		if strings.EqualFold(s, string(k)) {
			return k
		}
	}
	return Category(s)
}

var (
	ErrInvalidAmount = errors.New("amount must be a positive number")
	ErrInvalidType   = errors.New("type must be income or expense")
)

// Transaction is a single ledger entry. Amount is always a positive
// magnitude; Type carries the sign. Date is the creation instant.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	Date        int64           `json:"date"` // epoch milliseconds
}

// Time returns the transaction instant in local time.
func (t Transaction) Time() time.Time {
	return time.UnixMilli(t.Date)
}

// ValidAmount reports whether a is usable as a transaction amount.
func ValidAmount(a float64) bool {
	return a > 0 && !math.IsInf(a, 0) && !math.IsNaN(a)
}

func (t Transaction) Validate() error {
	if !ValidAmount(t.Amount) {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}
