package budget

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/julianstephens/norton/internal/constants"
	"github.com/julianstephens/norton/internal/ledger"
	"github.com/julianstephens/norton/internal/models"
)

// Usage is the state of the monthly budget. Remaining goes negative when
// the budget is overspent; Percent is capped at 100.
type Usage struct {
	Budget    float64
	Spent     float64
	Remaining float64
	Percent   float64
}

// Overspent reports whether spending exceeded the budget.
func (u Usage) Overspent() bool {
	return u.Remaining < 0
}

// CurrentUsage derives usage from a budget and the month's expense total.
// A non-positive budget counts as fully used.
func CurrentUsage(budget, spent float64) Usage {
	percent := 100.0
	if budget > 0 {
		percent = math.Min(100, spent/budget*100)
	}
	return Usage{
		Budget:    budget,
		Spent:     spent,
		Remaining: budget - spent,
		Percent:   percent,
	}
}

var numericPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// ParseAmount reads the longest leading decimal number in s, ignoring
// leading whitespace, so "1200abc" is 1200. Input without a numeric prefix
// yields 0. "Infinity" and values too large for a float64 yield ±Inf, which
// CurrentUsage treats as a budget that is never used up.
func ParseAmount(s string) float64 {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return v
}

type Option func(*Tracker)

// WithOnChange registers a hook that receives the raw value after every
// change.
func WithOnChange(fn func(string) error) Option {
	return func(t *Tracker) { t.onChange = fn }
}

// Tracker holds the budget exactly as the user entered it. The string is
// only interpreted on read.
type Tracker struct {
	mu       sync.Mutex
	raw      string
	onChange func(string) error
}

// New creates a tracker. An empty raw value starts at the default budget.
func New(raw string, opts ...Option) *Tracker {
	if raw == "" {
		raw = constants.DefaultBudget
	}
	t := &Tracker{raw: raw}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Raw() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.raw
}

// Value is the numeric budget.
func (t *Tracker) Value() float64 {
	return ParseAmount(t.Raw())
}

// SetRaw stores raw as entered and persists it.
func (t *Tracker) SetRaw(raw string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.raw = raw
	return t.changed()
}

// Reset restores the default budget.
func (t *Tracker) Reset() error {
	return t.SetRaw(constants.DefaultBudget)
}

// Usage reports this month's expense total against the budget. The month is
// the local calendar month of now.
func (t *Tracker) Usage(txs []models.Transaction, now time.Time) Usage {
	now = now.Local()
	spent := ledger.TotalForMonth(txs, models.TransactionExpense, now.Year(), now.Month())
	return CurrentUsage(t.Value(), spent)
}

func (t *Tracker) changed() error {
	if t.onChange == nil {
		return nil
	}
	return t.onChange(t.raw)
}
