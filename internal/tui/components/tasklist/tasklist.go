package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/norton/internal/i18n"
	"github.com/julianstephens/norton/internal/models"
)

type AddTaskMsg struct{}

type EditTaskMsg struct {
	ID string
}

type DeleteTaskMsg struct {
	ID string
}

type ToggleTaskMsg struct {
	ID string
}

type Item struct {
	Task models.Task
	Lang i18n.Language
}

func (i Item) Title() string {
	box := "[ ]"
	if i.Task.Completed {
		box = "[x]"
	}
	return box + " " + i.Task.Text
}

func (i Item) Description() string {
	desc := i18n.PriorityLabel(i.Lang, i.Task.Priority)
	if i.Task.Category != "" {
		desc = fmt.Sprintf("%s | %s", desc, i18n.TaskCategoryLabel(i.Lang, i.Task.Category))
	}
	return desc
}

func (i Item) FilterValue() string { return i.Task.Text }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Toggle key.Binding
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
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "toggle"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	lang  i18n.Language
	empty string
}

func New(tasks []models.Task, lang i18n.Language, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Toggle}
	}

	m := Model{list: l, keys: keys, lang: lang}
	m.SetTasks(tasks)
	return m
}

func (m *Model) SetTasks(tasks []models.Task) {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = Item{Task: t, Lang: m.lang}
	}
	m.list.SetItems(items)
}

// SetLanguage relabels the current items.
func (m *Model) SetLanguage(lang i18n.Language) {
	m.lang = lang
	tasks := make([]models.Task, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		tasks = append(tasks, it.(Item).Task)
	}
	m.SetTasks(tasks)
}

// SetEmptyText sets the line shown when there are no tasks.
func (m *Model) SetEmptyText(s string) {
	m.empty = s
}

func (m Model) Selected() (models.Task, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Task, true
	}
	return models.Task{}, false
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
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditTaskMsg{ID: t.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteTaskMsg{ID: t.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			if t, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleTaskMsg{ID: t.ID} }
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
