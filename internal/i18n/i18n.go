package i18n

import (
	"errors"
	"strings"

	"github.com/julianstephens/norton/internal/models"
)

type Language string

const (
	Chinese Language = "zh"
	English Language = "en"
)

const DefaultLanguage = Chinese

var ErrUnknownLanguage = errors.New("language must be zh or en")

func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zh", "zh-cn", "cn", "chinese":
		return Chinese, nil
	case "en", "en-us", "english":
		return English, nil
	}
	return "", ErrUnknownLanguage
}

// Messages holds the user-facing strings of one language.
type Messages struct {
	Categories     map[models.Category]string
	Types          map[models.TransactionType]string
	Priorities     map[models.Priority]string
	TaskCategories map[models.TaskCategory]string
	Weekdays       [7]string

	AdviceEmpty  string
	AdviceFailed string
	TipEmpty     string
	TipFailed    string

	Income, Expense, Balance string
	Budget, Spent, Remaining string
	Used                     string
	PendingToday             string
	Tasks, NoTasks           string
	NoTransactions           string
	Expenses                 string
	AIInsight                string
	AITip                    string
	Analyzing, Thinking      string
	RecognitionFailed        string
	Recorded                 string
	Cleared                  string
	ConfirmClear             string
	ConfirmMessage           string
	Confirm, Cancel          string
	DailyPlan                string
	Finance                  string
	Stats                    string
}

var catalog = map[Language]*Messages{
	Chinese: {
		Categories: map[models.Category]string{
			models.CategoryFood:          "餐饮",
			models.CategoryTransport:     "交通",
			models.CategoryHousing:       "居住",
			models.CategoryShopping:      "购物",
			models.CategoryEntertainment: "娱乐",
			models.CategorySalary:        "工资",
			models.CategoryInvestment:    "理财",
			models.CategoryOther:         "其他",
		},
		Types: map[models.TransactionType]string{
			models.TransactionIncome:  "收入",
			models.TransactionExpense: "支出",
		},
		Priorities: map[models.Priority]string{
			models.PriorityHigh:   "重要",
			models.PriorityMedium: "普通",
			models.PriorityLow:    "日常",
		},
		TaskCategories: map[models.TaskCategory]string{
			models.TaskCategoryWork:   "工作",
			models.TaskCategoryLife:   "生活",
			models.TaskCategoryStudy:  "学习",
			models.TaskCategoryHealth: "健康",
			models.TaskCategoryOther:  "其他",
		},
		Weekdays: [7]string{"日", "一", "二", "三", "四", "五", "六"},

		AdviceEmpty:  "持续追踪支出以改善财务健康！",
		AdviceFailed: "暂时无法分析数据。",
		TipEmpty:     "保持专注，一步一个脚印。",
		TipFailed:    "效率至上！",

		Income:            "收入",
		Expense:           "支出",
		Balance:           "结余",
		Budget:            "本月预算",
		Spent:             "已支出",
		Remaining:         "剩余",
		Used:              "使用率",
		PendingToday:      "今日剩余任务",
		Tasks:             "待办概览",
		NoTasks:           "当日暂无安排",
		NoTransactions:    "还没有交易记录",
		Expenses:          "支出构成",
		AIInsight:         "AI 财务洞察",
		AITip:             "AI 建议",
		Analyzing:         "正在分析您的消费习惯...",
		Thinking:          "思考中...",
		RecognitionFailed: "AI 无法识别，请尝试更清晰的描述。",
		Recorded:          "已记录: ",
		Cleared:           "数据已清除",
		ConfirmClear:      "确认操作",
		ConfirmMessage:    "此操作无法撤销，确定要清空吗？",
		Confirm:           "确认清除",
		Cancel:            "取消",
		DailyPlan:         "每日计划",
		Finance:           "记账",
		Stats:             "报表",
	},
	English: {
		Categories: map[models.Category]string{
			models.CategoryFood:          "Food",
			models.CategoryTransport:     "Transport",
			models.CategoryHousing:       "Housing",
			models.CategoryShopping:      "Shopping",
			models.CategoryEntertainment: "Fun",
			models.CategorySalary:        "Salary",
			models.CategoryInvestment:    "Invest",
			models.CategoryOther:         "Other",
		},
		Types: map[models.TransactionType]string{
			models.TransactionIncome:  "Income",
			models.TransactionExpense: "Expense",
		},
		Priorities: map[models.Priority]string{
			models.PriorityHigh:   "High",
			models.PriorityMedium: "Medium",
			models.PriorityLow:    "Low",
		},
		TaskCategories: map[models.TaskCategory]string{
			models.TaskCategoryWork:   "Work",
			models.TaskCategoryLife:   "Life",
			models.TaskCategoryStudy:  "Study",
			models.TaskCategoryHealth: "Health",
			models.TaskCategoryOther:  "Other",
		},
		Weekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},

		AdviceEmpty:  "Keep tracking your expenses to improve financial health!",
		AdviceFailed: "Data analysis unavailable at the moment.",
		TipEmpty:     "Stay focused and take it one step at a time.",
		TipFailed:    "Productivity is key!",

		Income:            "Income",
		Expense:           "Expense",
		Balance:           "Balance",
		Budget:            "Monthly Budget",
		Spent:             "Spent",
		Remaining:         "Left",
		Used:              "Used",
		PendingToday:      "Pending Tasks",
		Tasks:             "Tasks",
		NoTasks:           "No tasks for today",
		NoTransactions:    "No transactions yet",
		Expenses:          "Expenses",
		AIInsight:         "AI Insight",
		AITip:             "AI Tips",
		Analyzing:         "Analyzing your spending habits...",
		Thinking:          "Thinking...",
		RecognitionFailed: "AI could not understand. Please try again.",
		Recorded:          "Recorded: ",
		Cleared:           "Data Cleared",
		ConfirmClear:      "Are you sure?",
		ConfirmMessage:    "This action cannot be undone.",
		Confirm:           "Confirm",
		Cancel:            "Cancel",
		DailyPlan:         "Daily Plan",
		Finance:           "Finance",
		Stats:             "Stats",
	},
}

// For returns the messages of lang, falling back to the default language.
func For(lang Language) *Messages {
	if m, ok := catalog[lang]; ok {
		return m
	}
	return catalog[DefaultLanguage]
}

// CategoryLabel renders a transaction category. Unknown keys render as-is.
func CategoryLabel(lang Language, c models.Category) string {
	if l, ok := For(lang).Categories[c]; ok {
		return l
	}
	return string(c)
}

func TypeLabel(lang Language, t models.TransactionType) string {
	if l, ok := For(lang).Types[t]; ok {
		return l
	}
	return string(t)
}

func PriorityLabel(lang Language, p models.Priority) string {
	if l, ok := For(lang).Priorities[p]; ok {
		return l
	}
	return string(p)
}

// TaskCategoryLabel renders a task category. An unset category renders as
// other.
func TaskCategoryLabel(lang Language, c models.TaskCategory) string {
	c = c.Effective()
	if l, ok := For(lang).TaskCategories[c]; ok {
		return l
	}
	return string(c)
}
