package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/norton/internal/app"
	"github.com/julianstephens/norton/internal/assistant"
	"github.com/julianstephens/norton/internal/constants"
	"github.com/julianstephens/norton/internal/i18n"
	"github.com/julianstephens/norton/internal/models"
	"github.com/julianstephens/norton/internal/storage"
	"github.com/julianstephens/norton/internal/tui/components/tasklist"
	"github.com/julianstephens/norton/internal/tui/components/txlist"
)

var testNow = time.Date(2024, time.May, 10, 9, 30, 0, 0, time.Local)

type stubGateway struct {
	draft assistant.Draft
	ok    bool
}

func (s stubGateway) ParseTransactionText(context.Context, string, i18n.Language) (assistant.Draft, bool) {
	return s.draft, s.ok
}

func (stubGateway) BudgetAdvice(context.Context, []models.Transaction, i18n.Language) string {
	return "spend less"
}

func (stubGateway) PlanningTip(_ context.Context, pending []string, _ i18n.Language) string {
	return fmt.Sprintf("%d to go", len(pending))
}

func setupTestModel(t *testing.T, gw assistant.Gateway) Model {
	t.Helper()
	store := storage.NewMemoryStore()
	_ = store.Put(constants.SlotTasks, "[]")
	_ = store.Put(constants.SlotTransactions, "[]")

	n := 0
	a := app.Open(store,
		app.WithClock(func() time.Time { return testNow }),
		app.WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
		app.WithLanguage(i18n.English),
	)
	return NewModel(a, gw)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTabCycling(t *testing.T) {
	m := setupTestModel(t, stubGateway{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != TabFinance {
		t.Fatalf("tab = %d, want finance", m.tab)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != TabPlanner {
		t.Fatalf("tab = %d, want planner", m.tab)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != TabDashboard {
		t.Fatalf("tab = %d, want dashboard", m.tab)
	}
}

type countingGateway struct {
	stubGateway
	advice, tips int
}

func (g *countingGateway) BudgetAdvice(ctx context.Context, txs []models.Transaction, lang i18n.Language) string {
	g.advice++
	return g.stubGateway.BudgetAdvice(ctx, txs, lang)
}

func (g *countingGateway) PlanningTip(ctx context.Context, pending []string, lang i18n.Language) string {
	g.tips++
	return g.stubGateway.PlanningTip(ctx, pending, lang)
}

func TestDashboardRequestsAdviceOnly(t *testing.T) {
	gw := &countingGateway{}
	m := setupTestModel(t, gw)
	if _, err := m.app.Ledger.AddTransaction(30, models.TransactionExpense, models.CategoryFood, "lunch"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.app.Tasks.AddTask("write report", models.PriorityHigh, "", m.app.Today()); err != nil {
		t.Fatal(err)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if cmd == nil {
		t.Fatal("entering the dashboard should request advice")
	}
	if !m.adviceFlight.Busy() {
		t.Error("advice request should be marked in flight")
	}

	// A second request while one is running is dropped.
	if again := m.requestAdvice(); again != nil {
		t.Error("expected no second advice request")
	}

	m, _ = update(t, m, cmd())
	if m.advice != "spend less" {
		t.Errorf("advice = %q", m.advice)
	}
	if m.adviceFlight.Busy() {
		t.Error("advice request should be released")
	}
	if gw.advice != 1 || gw.tips != 0 {
		t.Errorf("calls: advice=%d tips=%d, want 1 and 0", gw.advice, gw.tips)
	}
	if strings.Contains(m.View(), i18n.For(i18n.English).AITip) {
		t.Error("dashboard should not show a planning tip")
	}
}

func TestDashboardSkipsAdviceWithoutTransactions(t *testing.T) {
	gw := &countingGateway{}
	m := setupTestModel(t, gw)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != TabDashboard {
		t.Fatalf("tab = %d, want dashboard", m.tab)
	}
	if cmd != nil {
		t.Error("no advice should be requested for an empty ledger")
	}
	if m.advice != "" || gw.advice != 0 || gw.tips != 0 {
		t.Errorf("advice = %q, calls: advice=%d tips=%d", m.advice, gw.advice, gw.tips)
	}
}

func TestPlannerTipForSelectedDay(t *testing.T) {
	gw := &countingGateway{}
	m := setupTestModel(t, gw)
	if _, err := m.app.Tasks.AddTask("write report", models.PriorityHigh, "", m.app.Today()); err != nil {
		t.Fatal(err)
	}

	m, cmd := update(t, m, runes("i"))
	if cmd == nil {
		t.Fatal("tip key should request a tip")
	}
	m, _ = update(t, m, cmd())
	if m.tip != "1 to go" {
		t.Errorf("tip = %q", m.tip)
	}
	if gw.tips != 1 {
		t.Errorf("tip calls = %d, want 1", gw.tips)
	}
}

func TestPlannerTipDroppedAfterDayChange(t *testing.T) {
	m := setupTestModel(t, stubGateway{})
	if _, err := m.app.Tasks.AddTask("write report", models.PriorityHigh, "", m.app.Today()); err != nil {
		t.Fatal(err)
	}

	m, cmd := update(t, m, runes("i"))
	if cmd == nil {
		t.Fatal("tip key should request a tip")
	}
	m, _ = update(t, m, runes("]"))
	if m.tip != "" {
		t.Fatalf("changing day should clear the tip, got %q", m.tip)
	}

	m, _ = update(t, m, cmd())
	if m.tip != "" {
		t.Errorf("tip for the previous day leaked onto %s: %q", m.date, m.tip)
	}
	if m.tipFlight.Busy() {
		t.Error("tip request should be released")
	}
}

func TestPlannerDayNavigation(t *testing.T) {
	m := setupTestModel(t, stubGateway{})
	today := m.app.Today()
	if _, err := m.app.Tasks.AddTask("tomorrow's task", models.PriorityLow, "", "2024-05-11"); err != nil {
		t.Fatal(err)
	}

	m, _ = update(t, m, runes("]"))
	if m.date != "2024-05-11" {
		t.Fatalf("date = %q", m.date)
	}
	if m.taskList.Len() != 1 {
		t.Errorf("tasks on 2024-05-11 = %d, want 1", m.taskList.Len())
	}

	m, _ = update(t, m, runes("["))
	m, _ = update(t, m, runes("["))
	if m.date != "2024-05-09" {
		t.Errorf("date = %q", m.date)
	}

	m, _ = update(t, m, runes("."))
	if m.date != today {
		t.Errorf("date = %q, want %q", m.date, today)
	}
}

func TestTaskMessages(t *testing.T) {
	m := setupTestModel(t, stubGateway{})
	task, err := m.app.Tasks.AddTask("stretch", models.PriorityMedium, models.TaskCategoryHealth, m.app.Today())
	if err != nil {
		t.Fatal(err)
	}

	m, _ = update(t, m, tasklist.ToggleTaskMsg{ID: task.ID})
	if got, _ := m.app.Tasks.Get(task.ID); !got.Completed {
		t.Error("task should be completed after toggle")
	}

	m, _ = update(t, m, tasklist.DeleteTaskMsg{ID: task.ID})
	if _, ok := m.app.Tasks.Get(task.ID); ok {
		t.Error("task should be deleted")
	}
	if m.taskList.Len() != 0 {
		t.Errorf("list still shows %d tasks", m.taskList.Len())
	}
}

func TestEditFormCancelClosesSession(t *testing.T) {
	m := setupTestModel(t, stubGateway{})
	task, err := m.app.Tasks.AddTask("stretch", models.PriorityMedium, "", m.app.Today())
	if err != nil {
		t.Fatal(err)
	}

	m, _ = update(t, m, tasklist.EditTaskMsg{ID: task.ID})
	if m.state != StateEditing || m.formKind != formEditTask {
		t.Fatalf("state = %d kind = %d, want edit form", m.state, m.formKind)
	}
	if id, open := m.app.Tasks.Editing(); !open || id != task.ID {
		t.Fatalf("editing = %q %v", id, open)
	}
	if m.fields.TaskCategory != models.TaskCategoryOther {
		t.Errorf("blank category should edit as other, got %q", m.fields.TaskCategory)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateBrowsing {
		t.Error("esc should close the form")
	}
	if _, open := m.app.Tasks.Editing(); open {
		t.Error("esc should cancel the edit session")
	}
}

func TestSubmitForms(t *testing.T) {
	m := setupTestModel(t, stubGateway{})

	m.formKind = formAddTask
	*m.fields = formFields{Text: "read", Priority: models.PriorityHigh, TaskCategory: models.TaskCategoryStudy}
	m.submitForm()
	tasks := m.app.Tasks.TasksForDate(m.app.Today())
	if len(tasks) != 1 || tasks[0].Text != "read" {
		t.Fatalf("tasks = %+v", tasks)
	}

	m.formKind = formAddTx
	*m.fields = formFields{Amount: "12.5", Type: models.TransactionExpense, Category: models.CategoryFood, Description: "tea"}
	m.submitForm()
	txs := m.app.Ledger.Transactions()
	if len(txs) != 1 || txs[0].Amount != 12.5 {
		t.Fatalf("transactions = %+v", txs)
	}

	m.formKind = formEditTx
	m.editTxID = txs[0].ID
	*m.fields = formFields{Amount: "20", Type: models.TransactionIncome, Category: models.CategorySalary, Description: "bonus"}
	m.submitForm()
	if got, _ := m.app.Ledger.Get(txs[0].ID); got.Amount != 20 || got.Type != models.TransactionIncome {
		t.Errorf("edited transaction = %+v", got)
	}

	m.formKind = formAddTx
	*m.fields = formFields{Amount: "abc", Type: models.TransactionExpense, Category: models.CategoryFood}
	m.submitForm()
	if !m.statusErr {
		t.Error("non-numeric amount should report an error")
	}

	m.formKind = formBudget
	*m.fields = formFields{Amount: "4200"}
	m.submitForm()
	if m.app.Budget.Raw() != "4200" {
		t.Errorf("budget = %q", m.app.Budget.Raw())
	}

	m.formKind = formGreeting
	*m.fields = formFields{Emoji: "🌙", Text: "Evening"}
	m.submitForm()
	if g := m.app.Greeting(); g.Emoji != "🌙" || g.Text != "Evening" {
		t.Errorf("greeting = %+v", g)
	}
}

func TestClearForm(t *testing.T) {
	m := setupTestModel(t, stubGateway{})
	if _, err := m.app.Tasks.AddTask("read", models.PriorityHigh, "", m.app.Today()); err != nil {
		t.Fatal(err)
	}
	if _, err := m.app.Ledger.AddTransaction(5, models.TransactionExpense, models.CategoryFood, ""); err != nil {
		t.Fatal(err)
	}

	m.formKind = formClear
	*m.fields = formFields{Scope: app.ScopeAll, Confirmed: false}
	m.submitForm()
	if len(m.app.Tasks.Tasks()) != 1 {
		t.Fatal("declined clear should keep tasks")
	}

	*m.fields = formFields{Scope: app.ScopeTasks, Confirmed: true}
	m.submitForm()
	if len(m.app.Tasks.Tasks()) != 0 {
		t.Error("tasks should be cleared")
	}
	if len(m.app.Ledger.Transactions()) != 1 {
		t.Error("transactions should be kept")
	}
	if m.status != i18n.For(i18n.English).Cleared {
		t.Errorf("status = %q", m.status)
	}
}

func TestQuickEntry(t *testing.T) {
	draft := assistant.Draft{Amount: 35, Type: models.TransactionExpense, Category: models.CategoryTransport, Description: "taxi"}
	m := setupTestModel(t, stubGateway{draft: draft, ok: true})

	cmd := m.requestParse("taxi 35")
	if cmd == nil {
		t.Fatal("expected a parse command")
	}
	if again := m.requestParse("taxi 35"); again != nil || !m.statusErr {
		t.Error("a second parse while one is running should be refused")
	}

	m, _ = update(t, m, cmd())
	if m.quickFlight.Busy() {
		t.Error("parse should be released")
	}
	txs := m.app.Ledger.Transactions()
	if len(txs) != 1 || txs[0].Category != models.CategoryTransport {
		t.Fatalf("transactions = %+v", txs)
	}
	if !strings.HasPrefix(m.status, "Recorded: ") || m.statusErr {
		t.Errorf("status = %q", m.status)
	}
}

func TestQuickEntryUnrecognized(t *testing.T) {
	m := setupTestModel(t, stubGateway{ok: false})

	m, _ = update(t, m, quickParsedMsg{ok: false})
	if !m.statusErr || m.status != i18n.For(i18n.English).RecognitionFailed {
		t.Errorf("status = %q err=%v", m.status, m.statusErr)
	}
	if len(m.app.Ledger.Transactions()) != 0 {
		t.Error("nothing should be recorded")
	}
}

func TestTransactionMessages(t *testing.T) {
	m := setupTestModel(t, stubGateway{})
	tx, err := m.app.Ledger.AddTransaction(8, models.TransactionExpense, "Pets", "kibble")
	if err != nil {
		t.Fatal(err)
	}
	m.refresh()

	m, _ = update(t, m, txlist.EditTransactionMsg{ID: tx.ID})
	if m.formKind != formEditTx || m.fields.Category != "Pets" || m.fields.Amount != "8" {
		t.Errorf("edit form fields = %+v", m.fields)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m, _ = update(t, m, txlist.DeleteTransactionMsg{ID: tx.ID})
	if m.txList.Len() != 0 {
		t.Errorf("list still shows %d transactions", m.txList.Len())
	}
}

func TestLanguageToggle(t *testing.T) {
	m := setupTestModel(t, stubGateway{})

	m, _ = update(t, m, runes("L"))
	if m.app.Language() != i18n.Chinese {
		t.Fatalf("language = %q", m.app.Language())
	}
	if !strings.Contains(m.View(), i18n.For(i18n.Chinese).DailyPlan) {
		t.Error("tabs should render in Chinese")
	}
}

func TestViewAndQuit(t *testing.T) {
	m := setupTestModel(t, stubGateway{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	msgs := i18n.For(i18n.English)
	for _, want := range []string{msgs.DailyPlan, msgs.Finance, msgs.Stats, m.app.Greeting().Text} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, cmd := update(t, m, runes("q"))
	if cmd == nil || !m.quitting {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting view should be empty")
	}
}
