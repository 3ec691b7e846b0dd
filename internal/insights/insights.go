package insights

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/norton/internal/budget"
	"github.com/julianstephens/norton/internal/constants"
	"github.com/julianstephens/norton/internal/ledger"
	"github.com/julianstephens/norton/internal/models"
	"github.com/julianstephens/norton/internal/planner"
	"github.com/julianstephens/norton/internal/utils"
)

type CategoryTotal struct {
	Category models.Category
	Amount   float64
}

type Totals struct {
	Income  float64
	Expense float64
	Balance float64
}

// ExpenseByCategory sums expenses per category in order of first
// appearance. Income never contributes.
func ExpenseByCategory(txs []models.Transaction) []CategoryTotal {
	index := map[models.Category]int{}
	var sums []decimal.Decimal
	var out []CategoryTotal

	for _, tx := range txs {
		if tx.Type != models.TransactionExpense {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, CategoryTotal{Category: tx.Category})
			sums = append(sums, decimal.Zero)
		}
		sums[i] = sums[i].Add(decimal.NewFromFloat(tx.Amount))
	}

	for i := range out {
		out[i].Amount = sums[i].InexactFloat64()
	}
	return out
}

// IncomeExpenseTotals returns both totals and their difference.
func IncomeExpenseTotals(txs []models.Transaction) Totals {
	income := decimal.Zero
	expense := decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionIncome:
			income = income.Add(decimal.NewFromFloat(tx.Amount))
		case models.TransactionExpense:
			expense = expense.Add(decimal.NewFromFloat(tx.Amount))
		}
	}
	return Totals{
		Income:  income.InexactFloat64(),
		Expense: expense.InexactFloat64(),
		Balance: income.Sub(expense).InexactFloat64(),
	}
}

// PendingTaskCount counts incomplete tasks on dateKey.
func PendingTaskCount(tasks []models.Task, dateKey string) int {
	n := 0
	for _, t := range tasks {
		if t.Date == dateKey && !t.Completed {
			n++
		}
	}
	return n
}

// PendingTexts returns the text of incomplete tasks on dateKey in display
// order.
func PendingTexts(tasks []models.Task, dateKey string) []string {
	var day []models.Task
	for _, t := range tasks {
		if t.Date == dateKey && !t.Completed {
			day = append(day, t)
		}
	}
	planner.SortForDisplay(day)

	texts := make([]string, len(day))
	for i, t := range day {
		texts[i] = t.Text
	}
	return texts
}

// SortTasksForDisplay returns a sorted copy; the input is not modified.
func SortTasksForDisplay(tasks []models.Task) []models.Task {
	out := append([]models.Task{}, tasks...)
	planner.SortForDisplay(out)
	return out
}

// SortTransactionsForDisplay returns a copy sorted newest first.
func SortTransactionsForDisplay(txs []models.Transaction) []models.Transaction {
	out := append([]models.Transaction{}, txs...)
	ledger.SortForDisplay(out)
	return out
}

// Dashboard is the summary shown on the stats screen.
type Dashboard struct {
	Totals       Totals
	Breakdown    []CategoryTotal
	PendingToday int
	PendingTotal int
	Preview      []models.Task
	Budget       budget.Usage
}

// Summarize builds the dashboard from store snapshots. Preview holds the
// first tasks in storage order, newest first.
func Summarize(tasks []models.Task, txs []models.Transaction, tracker *budget.Tracker, now time.Time) Dashboard {
	pending := 0
	for _, t := range tasks {
		if !t.Completed {
			pending++
		}
	}

	n := min(len(tasks), constants.DashboardTaskPreview)

	d := Dashboard{
		Totals:       IncomeExpenseTotals(txs),
		Breakdown:    ExpenseByCategory(txs),
		PendingToday: PendingTaskCount(tasks, utils.DateKey(now)),
		PendingTotal: pending,
		Preview:      append([]models.Task{}, tasks[:n]...),
	}
	if tracker != nil {
		d.Budget = tracker.Usage(txs, now)
	}
	return d
}

// Day is one cell of a month grid. Zero-value days pad the first week.
type Day struct {
	Key     string
	Number  int
	Pending bool
	Today   bool
}

// MonthCalendar lays out a month as Sunday-first weeks, flagging days with
// pending tasks.
func MonthCalendar(year int, month time.Month, pending map[string]struct{}, now time.Time) [][]Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysIn := first.AddDate(0, 1, -1).Day()
	today := utils.DateKey(now)

	var weeks [][]Day
	week := make([]Day, int(first.Weekday()))
	for d := 1; d <= daysIn; d++ {
		key := utils.DateKey(time.Date(year, month, d, 0, 0, 0, 0, time.Local))
		_, has := pending[key]
		week = append(week, Day{Key: key, Number: d, Pending: has, Today: key == today})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = nil
		}
	}
	if len(week) > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}
