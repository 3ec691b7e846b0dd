package models

import (
	"time"

	"github.com/julianstephens/norton/internal/utils"
)

const day = 24 * time.Hour

// SeedTasks returns the sample tasks used when the tasks slot is absent or
// unreadable. Dates are relative to now.
func SeedTasks(now time.Time) []Task {
	today := utils.DateKey(now)
	yesterday := utils.DateKey(now.AddDate(0, 0, -1))
	ms := now.UnixMilli()

	return []Task{
		{ID: "1", Text: "完成项目报告", Priority: PriorityHigh, Category: TaskCategoryWork, Date: today, CreatedAt: ms},
		{ID: "2", Text: "健身房锻炼", Completed: true, Priority: PriorityMedium, Category: TaskCategoryHealth, Date: today, CreatedAt: ms - 10000},
		{ID: "3", Text: "超市采购", Priority: PriorityLow, Category: TaskCategoryLife, Date: yesterday, CreatedAt: ms},
		{ID: "4", Text: "准备周会材料", Priority: PriorityHigh, Category: TaskCategoryWork, Date: today, CreatedAt: ms},
	}
}

// SeedTransactions returns the sample ledger used when the transactions slot
// is absent or unreadable.
func SeedTransactions(now time.Time) []Transaction {
	at := func(d time.Duration) int64 { return now.Add(-d).UnixMilli() }

	return []Transaction{
		{ID: "1", Amount: 15000, Type: TransactionIncome, Category: CategorySalary, Description: "三月工资", Date: at(2 * day)},
		{ID: "2", Amount: 45, Type: TransactionExpense, Category: CategoryFood, Description: "午餐", Date: at(0)},
		{ID: "3", Amount: 2400, Type: TransactionExpense, Category: CategoryHousing, Description: "房租", Date: at(day)},
		{ID: "4", Amount: 320, Type: TransactionExpense, Category: CategoryTransport, Description: "地铁充值", Date: at(0)},
		{ID: "5", Amount: 580, Type: TransactionExpense, Category: CategoryShopping, Description: "买衣服", Date: at(5 * day)},
	}
}
