package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/norton/internal/assistant"
	"github.com/julianstephens/norton/internal/budget"
	"github.com/julianstephens/norton/internal/constants"
	"github.com/julianstephens/norton/internal/i18n"
	"github.com/julianstephens/norton/internal/insights"
	"github.com/julianstephens/norton/internal/ledger"
	"github.com/julianstephens/norton/internal/logger"
	"github.com/julianstephens/norton/internal/models"
	"github.com/julianstephens/norton/internal/planner"
	"github.com/julianstephens/norton/internal/storage"
	"github.com/julianstephens/norton/internal/utils"
)

var (
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrRecognitionFailed    = errors.New("could not recognize a transaction in the text")
	ErrEmptyGreeting        = errors.New("greeting text cannot be empty")
	ErrUnknownScope         = errors.New("scope must be tasks, transactions or all")
)

// Scope selects what Clear removes.
type Scope string

const (
	ScopeTasks        Scope = "tasks"
	ScopeTransactions Scope = "transactions"
	ScopeAll          Scope = "all"
)

func ParseScope(s string) (Scope, error) {
	switch sc := Scope(strings.ToLower(strings.TrimSpace(s))); sc {
	case ScopeTasks, ScopeTransactions, ScopeAll:
		return sc, nil
	}
	return "", ErrUnknownScope
}

// ConfirmFunc asks the user to approve a destructive clear.
type ConfirmFunc func(Scope) (bool, error)

type options struct {
	now   func() time.Time
	newID func() string
	lang  i18n.Language
}

type Option func(*options)

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithIDs(next func() string) Option {
	return func(o *options) { o.newID = next }
}

func WithLanguage(lang i18n.Language) Option {
	return func(o *options) { o.lang = lang }
}

// App holds the domain state shared by the CLI and TUI. Every mutation is
// written to its slot before the call returns.
type App struct {
	Tasks  *planner.Store
	Ledger *ledger.Store
	Budget *budget.Tracker

	store storage.Provider
	now   func() time.Time

	mu       sync.Mutex
	greeting models.Greeting
	lang     i18n.Language
}

// Open hydrates each slot from store independently. A missing or unreadable
// slot falls back to its seed.
func Open(store storage.Provider, opts ...Option) *App {
	o := options{now: time.Now, newID: uuid.NewString, lang: i18n.DefaultLanguage}
	for _, opt := range opts {
		opt(&o)
	}
	now := o.now()

	a := &App{
		store:    store,
		now:      o.now,
		lang:     o.lang,
		greeting: storage.Load(store, constants.SlotGreeting, models.DefaultGreeting()),
	}

	tasks := storage.Load(store, constants.SlotTasks, models.SeedTasks(now))
	a.Tasks = planner.New(tasks,
		planner.WithClock(o.now),
		planner.WithIDs(o.newID),
		planner.WithOnChange(func(tasks []models.Task) error {
			return storage.Save(store, constants.SlotTasks, tasks)
		}),
	)

	txs := storage.Load(store, constants.SlotTransactions, models.SeedTransactions(now))
	a.Ledger = ledger.New(txs,
		ledger.WithClock(o.now),
		ledger.WithIDs(o.newID),
		ledger.WithLabeler(a.categoryLabel(o.lang)),
		ledger.WithOnChange(func(txs []models.Transaction) error {
			return storage.Save(store, constants.SlotTransactions, txs)
		}),
	)

	a.Budget = budget.New(
		storage.LoadRaw(store, constants.SlotBudget, constants.DefaultBudget),
		budget.WithOnChange(func(raw string) error {
			return storage.SaveRaw(store, constants.SlotBudget, raw)
		}),
	)

	logger.Debug("App state loaded",
		"store", store.GetConfigPath(),
		"tasks", len(tasks),
		"transactions", len(txs))
	return a
}

func (a *App) categoryLabel(lang i18n.Language) ledger.Labeler {
	return func(c models.Category) string { return i18n.CategoryLabel(lang, c) }
}

func (a *App) Store() storage.Provider { return a.store }

func (a *App) Now() time.Time { return a.now() }

// Today is the local date key of the current day.
func (a *App) Today() string { return utils.DateKey(a.now()) }

func (a *App) Language() i18n.Language {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lang
}

func (a *App) Messages() *i18n.Messages { return i18n.For(a.Language()) }

// SetLanguage switches labels, fallbacks and default descriptions.
func (a *App) SetLanguage(lang i18n.Language) {
	a.mu.Lock()
	a.lang = lang
	a.mu.Unlock()
	a.Ledger.SetLabeler(a.categoryLabel(lang))
}

func (a *App) Greeting() models.Greeting {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.greeting
}

// SetGreeting replaces the header. A blank emoji keeps the current one.
func (a *App) SetGreeting(emoji, text string) (models.Greeting, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Greeting{}, ErrEmptyGreeting
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	g := models.Greeting{Emoji: strings.TrimSpace(emoji), Text: text}
	if g.Emoji == "" {
		g.Emoji = a.greeting.Emoji
	}
	a.greeting = g
	return g, storage.Save(a.store, constants.SlotGreeting, g)
}

// Clear empties the selected collections after confirm approves. Clearing
// transactions also resets the budget; the greeting is never touched.
func (a *App) Clear(scope Scope, confirm ConfirmFunc) (bool, error) {
	if _, err := ParseScope(string(scope)); err != nil {
		return false, err
	}
	if confirm == nil {
		return false, ErrConfirmationRequired
	}
	ok, err := confirm(scope)
	if err != nil || !ok {
		return false, err
	}

	if scope == ScopeTasks || scope == ScopeAll {
		if err := a.Tasks.Replace(nil); err != nil {
			return true, err
		}
	}
	if scope == ScopeTransactions || scope == ScopeAll {
		if err := a.Ledger.Replace(nil); err != nil {
			return true, err
		}
		if err := a.Budget.Reset(); err != nil {
			return true, err
		}
	}
	logger.ForScope(string(scope)).Info("Cleared data")
	return true, nil
}

// QuickAddTransaction asks gw to parse text and records the draft. On any
// parse failure nothing is recorded.
func (a *App) QuickAddTransaction(ctx context.Context, gw assistant.Gateway, text string) (models.Transaction, error) {
	draft, ok := gw.ParseTransactionText(ctx, text, a.Language())
	if !ok {
		return models.Transaction{}, ErrRecognitionFailed
	}
	tx, err := a.Ledger.AddTransaction(draft.Amount, draft.Type, draft.Category, draft.Description)
	if err != nil {
		return tx, fmt.Errorf("failed to record transaction: %w", err)
	}
	return tx, nil
}

// PendingToday returns the texts of today's incomplete tasks.
func (a *App) PendingToday() []string {
	return a.PendingOn(a.Today())
}

func (a *App) PendingOn(dateKey string) []string {
	return insights.PendingTexts(a.Tasks.Tasks(), dateKey)
}

func (a *App) Dashboard() insights.Dashboard {
	return insights.Summarize(a.Tasks.Tasks(), a.Ledger.Transactions(), a.Budget, a.now())
}

// BudgetUsage reports this month's spending against the budget.
func (a *App) BudgetUsage() budget.Usage {
	return a.Budget.Usage(a.Ledger.Transactions(), a.now())
}
