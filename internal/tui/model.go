package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/norton/internal/app"
	"github.com/julianstephens/norton/internal/assistant"
	"github.com/julianstephens/norton/internal/insights"
	"github.com/julianstephens/norton/internal/tui/components/tasklist"
	"github.com/julianstephens/norton/internal/tui/components/txlist"
)

type Tab int

const (
	TabPlanner Tab = iota
	TabFinance
	TabDashboard
	tabCount
)

type SessionState int

const (
	StateBrowsing SessionState = iota
	StateEditing
)

type formKind int

const (
	formNone formKind = iota
	formAddTask
	formEditTask
	formAddTx
	formEditTx
	formQuick
	formBudget
	formGreeting
	formClear
)

type Model struct {
	app   *app.App
	gw    assistant.Gateway
	tab   Tab
	state SessionState
	keys  KeyMap
	help  help.Model

	taskList tasklist.Model
	txList   txlist.Model
	date     string

	form     *huh.Form
	formKind formKind
	fields   *formFields
	editTxID string

	budgetBar   progress.Model
	overBar     progress.Model
	advice, tip string
	status      string
	statusErr   bool

	quickFlight  *assistant.InFlight
	tipFlight    *assistant.InFlight
	adviceFlight *assistant.InFlight

	quitting bool
	width    int
	height   int
}

func NewModel(a *app.App, gw assistant.Gateway) Model {
	lang := a.Language()
	msgs := a.Messages()

	m := Model{
		app:            a,
		gw:             gw,
		tab:            TabPlanner,
		state:          StateBrowsing,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		date:           a.Today(),
		budgetBar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		overBar:        progress.New(progress.WithSolidFill("196"), progress.WithoutPercentage()),
		quickFlight:    &assistant.InFlight{},
		tipFlight:      &assistant.InFlight{},
		adviceFlight:   &assistant.InFlight{},
		fields:         &formFields{},
	}
	m.taskList = tasklist.New(nil, lang, 0, 0)
	m.taskList.SetEmptyText(msgs.NoTasks)
	m.txList = txlist.New(nil, lang, 0, 0)
	m.txList.SetEmptyText(msgs.NoTransactions)
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads both lists from the stores.
func (m *Model) refresh() {
	m.taskList.SetTasks(m.app.Tasks.TasksForDate(m.date))
	m.txList.SetTransactions(insights.SortTransactionsForDisplay(m.app.Ledger.Transactions()))
}

func (m *Model) resize() {
	// tabs, greeting, date line, status, help
	h := m.height - 12
	if m.tab == TabFinance {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	m.taskList.SetSize(w, h)
	m.txList.SetSize(w, h)
	m.help.Width = m.width

	bar := min(max(m.width/3, 10), 40)
	m.budgetBar.Width = bar
	m.overBar.Width = bar
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.tab {
	case TabPlanner:
		tk := m.taskList.Keys()
		keys = append(keys, tk.Add, tk.Toggle, m.keys.PrevDay, m.keys.NextDay, m.keys.Tip)
	case TabFinance:
		fk := m.txList.Keys()
		keys = append(keys, fk.Add, m.keys.Quick, m.keys.Budget)
	case TabDashboard:
		keys = append(keys, m.keys.Refresh)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Language, m.keys.Clear}

	var actions []key.Binding
	switch m.tab {
	case TabPlanner:
		tk := m.taskList.Keys()
		actions = []key.Binding{tk.Add, tk.Edit, tk.Delete, tk.Toggle, m.keys.PrevDay, m.keys.NextDay, m.keys.Today, m.keys.Tip, m.keys.Greeting}
	case TabFinance:
		fk := m.txList.Keys()
		actions = []key.Binding{fk.Add, fk.Edit, fk.Delete, m.keys.Quick, m.keys.Budget}
	case TabDashboard:
		actions = []key.Binding{m.keys.Refresh}
	}

	return [][]key.Binding{global, actions}
}
