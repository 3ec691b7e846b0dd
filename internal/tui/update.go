package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/norton/internal/app"
	"github.com/julianstephens/norton/internal/assistant"
	"github.com/julianstephens/norton/internal/i18n"
	"github.com/julianstephens/norton/internal/models"
	"github.com/julianstephens/norton/internal/tui/components/tasklist"
	"github.com/julianstephens/norton/internal/tui/components/txlist"
	"github.com/julianstephens/norton/internal/utils"
)

var errBusy = errors.New("still working on the previous request")

type quickParsedMsg struct {
	draft assistant.Draft
	ok    bool
}

// tipMsg carries a planning tip for the day it was requested on.
type tipMsg struct {
	date string
	text string
}

type adviceMsg struct {
	text string
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case quickParsedMsg:
		m.quickFlight.Done()
		m.recordDraft(msg)
		return m, nil

	case tipMsg:
		m.tipFlight.Done()
		if msg.date == m.date {
			m.tip = msg.text
		}
		return m, nil

	case adviceMsg:
		m.adviceFlight.Done()
		m.advice = msg.text
		return m, nil

	case tasklist.AddTaskMsg:
		return m, m.openTaskForm("")

	case tasklist.EditTaskMsg:
		return m, m.openTaskForm(msg.ID)

	case tasklist.ToggleTaskMsg:
		if _, _, err := m.app.Tasks.ToggleTask(msg.ID); err != nil {
			m.setError(err)
		}
		m.refresh()
		return m, nil

	case tasklist.DeleteTaskMsg:
		if _, err := m.app.Tasks.DeleteTask(msg.ID); err != nil {
			m.setError(err)
		}
		m.refresh()
		return m, nil

	case txlist.AddTransactionMsg:
		return m, m.openTransactionForm("")

	case txlist.EditTransactionMsg:
		return m, m.openTransactionForm(msg.ID)

	case txlist.DeleteTransactionMsg:
		if _, err := m.app.Ledger.DeleteTransaction(msg.ID); err != nil {
			m.setError(err)
		}
		m.refresh()
		return m, nil
	}

	if m.state == StateEditing {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			return m, m.switchTab((m.tab + 1) % tabCount)
		case key.Matches(msg, m.keys.ShiftTab):
			return m, m.switchTab((m.tab - 1 + tabCount) % tabCount)
		case key.Matches(msg, m.keys.Language):
			m.toggleLanguage()
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			*m.fields = formFields{Scope: app.ScopeAll}
			return m, m.openForm(formClear, newClearForm(m.app.Language(), m.fields))
		}

		var (
			cmd     tea.Cmd
			handled bool
		)
		switch m.tab {
		case TabPlanner:
			cmd, handled = m.plannerKey(msg)
		case TabFinance:
			cmd, handled = m.financeKey(msg)
		case TabDashboard:
			cmd, handled = m.dashboardKey(msg)
		}
		if handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.tab {
	case TabPlanner:
		m.taskList, cmd = m.taskList.Update(msg)
	case TabFinance:
		m.txList, cmd = m.txList.Update(msg)
	}
	return m, cmd
}

func (m *Model) plannerKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.PrevDay):
		m.setDate(utils.ShiftDateKey(m.date, -1))
	case key.Matches(msg, m.keys.NextDay):
		m.setDate(utils.ShiftDateKey(m.date, 1))
	case key.Matches(msg, m.keys.Today):
		m.setDate(m.app.Today())
	case key.Matches(msg, m.keys.Tip):
		return m.requestTip(), true
	case key.Matches(msg, m.keys.Greeting):
		g := m.app.Greeting()
		*m.fields = formFields{Emoji: g.Emoji, Text: g.Text}
		return m.openForm(formGreeting, newGreetingForm(m.fields)), true
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) financeKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quick):
		*m.fields = formFields{}
		return m.openForm(formQuick, newQuickForm(m.app.Language(), m.fields)), true
	case key.Matches(msg, m.keys.Budget):
		*m.fields = formFields{Amount: m.app.Budget.Raw()}
		return m.openForm(formBudget, newBudgetForm(m.app.Language(), m.fields)), true
	}
	return nil, false
}

func (m *Model) dashboardKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, m.keys.Refresh) {
		return m.requestAdvice(), true
	}
	return nil, false
}

func (m *Model) switchTab(t Tab) tea.Cmd {
	m.tab = t
	m.status = ""
	m.refresh()
	m.resize()
	if t == TabDashboard {
		return m.requestAdvice()
	}
	return nil
}

func (m *Model) setDate(dateKey string) {
	m.date = dateKey
	m.tip = ""
	m.refresh()
}

func (m *Model) toggleLanguage() {
	lang := i18n.English
	if m.app.Language() == i18n.English {
		lang = i18n.Chinese
	}
	m.app.SetLanguage(lang)
	msgs := i18n.For(lang)
	m.taskList.SetLanguage(lang)
	m.taskList.SetEmptyText(msgs.NoTasks)
	m.txList.SetLanguage(lang)
	m.txList.SetEmptyText(msgs.NoTransactions)
	m.advice = ""
	m.tip = ""
}

func (m *Model) requestTip() tea.Cmd {
	if !m.tipFlight.TryStart() {
		return nil
	}
	m.tip = m.app.Messages().Thinking
	gw, lang, date := m.gw, m.app.Language(), m.date
	pending := m.app.PendingOn(date)
	return func() tea.Msg {
		return tipMsg{date: date, text: gw.PlanningTip(context.Background(), pending, lang)}
	}
}

// requestAdvice asks for budget advice. Nothing is requested while the
// ledger is empty.
func (m *Model) requestAdvice() tea.Cmd {
	txs := m.app.Ledger.Transactions()
	if len(txs) == 0 {
		m.advice = ""
		return nil
	}
	if !m.adviceFlight.TryStart() {
		return nil
	}
	m.advice = m.app.Messages().Analyzing
	gw, lang := m.gw, m.app.Language()
	return func() tea.Msg {
		return adviceMsg{text: assistant.FetchAdvice(context.Background(), gw, txs, lang)}
	}
}

func (m *Model) requestParse(text string) tea.Cmd {
	if !m.quickFlight.TryStart() {
		m.setError(errBusy)
		return nil
	}
	m.setStatus(m.app.Messages().Analyzing)
	gw, lang := m.gw, m.app.Language()
	return func() tea.Msg {
		d, ok := gw.ParseTransactionText(context.Background(), text, lang)
		return quickParsedMsg{draft: d, ok: ok}
	}
}

func (m *Model) recordDraft(msg quickParsedMsg) {
	msgs := m.app.Messages()
	if !msg.ok {
		m.setError(errors.New(msgs.RecognitionFailed))
		return
	}
	d := msg.draft
	tx, err := m.app.Ledger.AddTransaction(d.Amount, d.Type, d.Category, d.Description)
	if err != nil {
		m.setError(err)
		return
	}
	lang := m.app.Language()
	m.setStatus(fmt.Sprintf("%s%s %s (%s)", msgs.Recorded,
		i18n.TypeLabel(lang, tx.Type), i18n.FormatMoney(lang, tx.Amount), tx.Description))
	m.refresh()
}

func (m *Model) openForm(kind formKind, form *huh.Form) tea.Cmd {
	m.form = form
	m.formKind = kind
	m.state = StateEditing
	m.status = ""
	return m.form.Init()
}

func (m *Model) openTaskForm(id string) tea.Cmd {
	lang := m.app.Language()
	if id == "" {
		*m.fields = formFields{Priority: models.PriorityMedium, TaskCategory: models.TaskCategoryOther}
		return m.openForm(formAddTask, newTaskForm(lang, m.fields, "New task"))
	}
	t, err := m.app.Tasks.BeginEdit(id)
	if err != nil {
		m.setError(err)
		return nil
	}
	*m.fields = formFields{Text: t.Text, Priority: t.Priority, TaskCategory: t.Category.Effective()}
	return m.openForm(formEditTask, newTaskForm(lang, m.fields, "Edit task"))
}

func (m *Model) openTransactionForm(id string) tea.Cmd {
	lang := m.app.Language()
	if id == "" {
		*m.fields = formFields{Type: models.TransactionExpense, Category: models.CategoryFood}
		m.editTxID = ""
		return m.openForm(formAddTx, newTransactionForm(lang, m.fields, "New transaction"))
	}
	tx, ok := m.app.Ledger.Get(id)
	if !ok {
		m.refresh()
		return nil
	}
	*m.fields = formFields{
		Amount:      strconv.FormatFloat(tx.Amount, 'f', -1, 64),
		Type:        tx.Type,
		Category:    tx.Category,
		Description: tx.Description,
	}
	m.editTxID = id
	return m.openForm(formEditTx, newTransactionForm(lang, m.fields, "Edit transaction"))
}

func (m *Model) closeForm() {
	if m.formKind == formEditTask {
		if _, open := m.app.Tasks.Editing(); open {
			m.app.Tasks.CancelEdit()
		}
	}
	m.form = nil
	m.formKind = formNone
	m.editTxID = ""
	m.state = StateBrowsing
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Back) {
		m.closeForm()
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		cmds = append(cmds, m.submitForm())
		m.closeForm()
		m.refresh()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, tea.Batch(cmds...)
}

// submitForm applies the completed form to the stores.
func (m *Model) submitForm() tea.Cmd {
	f := m.fields
	msgs := m.app.Messages()

	var err error
	switch m.formKind {
	case formAddTask:
		_, err = m.app.Tasks.AddTask(f.Text, f.Priority, f.TaskCategory, m.date)
	case formEditTask:
		_, err = m.app.Tasks.SaveEdit(f.Text, f.Priority, f.TaskCategory)
	case formAddTx, formEditTx:
		amount, perr := strconv.ParseFloat(strings.TrimSpace(f.Amount), 64)
		if perr != nil {
			err = models.ErrInvalidAmount
			break
		}
		if m.formKind == formAddTx {
			_, err = m.app.Ledger.AddTransaction(amount, f.Type, f.Category, f.Description)
		} else {
			_, err = m.app.Ledger.EditTransaction(m.editTxID, amount, f.Type, f.Category, f.Description)
		}
	case formQuick:
		return m.requestParse(f.Text)
	case formBudget:
		err = m.app.Budget.SetRaw(f.Amount)
	case formGreeting:
		_, err = m.app.SetGreeting(f.Emoji, f.Text)
	case formClear:
		var cleared bool
		cleared, err = m.app.Clear(f.Scope, func(app.Scope) (bool, error) { return f.Confirmed, nil })
		if err == nil && cleared {
			m.setStatus(msgs.Cleared)
			m.advice = ""
			m.tip = ""
		}
	}
	if err != nil {
		m.setError(err)
	}
	return nil
}
