package constants

import "time"

const (
	AppName            = "norton"
	DefaultKeyringUser = "assistant-api-key"
	DefaultConfigPath  = "~/.config/norton/norton.db"
	Version            = "v0.3.0"

	// DateFormat is the date key format for tasks (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Slot names. Each slot is persisted independently.
	SlotTasks        = "tasks"
	SlotTransactions = "transactions"
	SlotGreeting     = "greeting"
	SlotBudget       = "budget"

	// DefaultBudget is the seed value of the budget slot and the value a
	// transaction clear resets it to.
	DefaultBudget = "5000"

	DefaultGreetingEmoji = "☀️"
	DefaultGreetingText  = "早安, 开始高效的一天。"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "norton-"

	// Assistant defaults
	DefaultAssistantModel   = "gpt-4o-mini"
	DefaultAssistantTimeout = 20 * time.Second
	DashboardTaskPreview    = 3
)

// Slots lists every persisted slot in load order.
var Slots = []string{SlotTasks, SlotTransactions, SlotGreeting, SlotBudget}
