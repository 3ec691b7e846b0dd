package txlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/norton/internal/i18n"
	"github.com/julianstephens/norton/internal/models"
)

type AddTransactionMsg struct{}

type EditTransactionMsg struct {
	ID string
}

type DeleteTransactionMsg struct {
	ID string
}

type Item struct {
	Tx   models.Transaction
	Lang i18n.Language
}

func (i Item) Title() string {
	sign := "-"
	if i.Tx.Type == models.TransactionIncome {
		sign = "+"
	}
	return fmt.Sprintf("%s%s  %s", sign, i18n.FormatMoney(i.Lang, i.Tx.Amount), i18n.CategoryLabel(i.Lang, i.Tx.Category))
}

func (i Item) Description() string {
	date := i.Tx.Time().Format("2006-01-02 15:04")
	if i.Tx.Description == "" {
		return date
	}
	return i.Tx.Description + " | " + date
}

func (i Item) FilterValue() string { return i.Tx.Description }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	lang  i18n.Language
	empty string
}

func New(txs []models.Transaction, lang i18n.Language, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}

	m := Model{list: l, keys: keys, lang: lang}
	m.SetTransactions(txs)
	return m
}

func (m *Model) SetTransactions(txs []models.Transaction) {
	items := make([]list.Item, len(txs))
	for i, t := range txs {
		items[i] = Item{Tx: t, Lang: m.lang}
	}
	m.list.SetItems(items)
}

func (m *Model) SetLanguage(lang i18n.Language) {
	m.lang = lang
	txs := make([]models.Transaction, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		txs = append(txs, it.(Item).Tx)
	}
	m.SetTransactions(txs)
}

func (m *Model) SetEmptyText(s string) {
	m.empty = s
}

func (m Model) Selected() (models.Transaction, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Tx, true
	}
	return models.Transaction{}, false
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTransactionMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditTransactionMsg{ID: t.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteTransactionMsg{ID: t.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  " + m.empty + "\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
