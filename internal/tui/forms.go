package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/norton/internal/app"
	"github.com/julianstephens/norton/internal/i18n"
	"github.com/julianstephens/norton/internal/models"
)

// formFields backs every form; only the fields of the open form are live.
type formFields struct {
	Text         string
	Priority     models.Priority
	TaskCategory models.TaskCategory

	Amount      string
	Type        models.TransactionType
	Category    models.Category
	Description string

	Emoji string

	Scope     app.Scope
	Confirmed bool
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", label)
		}
		return nil
	}
}

func validAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !models.ValidAmount(v) {
		return models.ErrInvalidAmount
	}
	return nil
}

func priorityOptions(lang i18n.Language) []huh.Option[models.Priority] {
	opts := make([]huh.Option[models.Priority], len(models.Priorities))
	for i, p := range models.Priorities {
		opts[i] = huh.NewOption(i18n.PriorityLabel(lang, p), p)
	}
	return opts
}

func taskCategoryOptions(lang i18n.Language) []huh.Option[models.TaskCategory] {
	opts := make([]huh.Option[models.TaskCategory], len(models.TaskCategories))
	for i, c := range models.TaskCategories {
		opts[i] = huh.NewOption(i18n.TaskCategoryLabel(lang, c), c)
	}
	return opts
}

func typeOptions(lang i18n.Language) []huh.Option[models.TransactionType] {
	return []huh.Option[models.TransactionType]{
		huh.NewOption(i18n.TypeLabel(lang, models.TransactionExpense), models.TransactionExpense),
		huh.NewOption(i18n.TypeLabel(lang, models.TransactionIncome), models.TransactionIncome),
	}
}

// categoryOptions lists the known categories, plus current when it is
// outside the vocabulary so an edit does not silently rewrite it.
func categoryOptions(lang i18n.Language, current models.Category) []huh.Option[models.Category] {
	var opts []huh.Option[models.Category]
	for _, c := range models.Categories {
		opts = append(opts, huh.NewOption(i18n.CategoryLabel(lang, c), c))
	}
	if current != "" && !current.Known() {
		opts = append(opts, huh.NewOption(string(current), current))
	}
	return opts
}

func scopeLabel(lang i18n.Language, s app.Scope) string {
	msgs := i18n.For(lang)
	switch s {
	case app.ScopeTasks:
		return msgs.Tasks
	case app.ScopeTransactions:
		return msgs.Finance
	}
	if lang == i18n.Chinese {
		return "全部数据"
	}
	return "Everything"
}

func newTaskForm(lang i18n.Language, f *formFields, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&f.Text).
				Validate(required("Task")),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(priorityOptions(lang)...).
				Value(&f.Priority),
			huh.NewSelect[models.TaskCategory]().
				Title("Category").
				Options(taskCategoryOptions(lang)...).
				Value(&f.TaskCategory),
		),
	).WithTheme(huh.ThemeDracula())
}

func newTransactionForm(lang i18n.Language, f *formFields, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Amount").
				Value(&f.Amount).
				Validate(validAmount),
			huh.NewSelect[models.TransactionType]().
				Title("Type").
				Options(typeOptions(lang)...).
				Value(&f.Type),
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(categoryOptions(lang, f.Category)...).
				Value(&f.Category),
			huh.NewInput().
				Title("Description").
				Value(&f.Description),
		),
	).WithTheme(huh.ThemeDracula())
}

func newQuickForm(lang i18n.Language, f *formFields) *huh.Form {
	title, placeholder := "Quick entry", "lunch $12.50"
	if lang == i18n.Chinese {
		title, placeholder = "智能记账", "打车花了35元"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(&f.Text).
				Validate(required("Text")),
		),
	).WithTheme(huh.ThemeDracula())
}

func newBudgetForm(lang i18n.Language, f *formFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(i18n.For(lang).Budget).
				Value(&f.Amount),
		),
	).WithTheme(huh.ThemeDracula())
}

func newGreetingForm(f *formFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Emoji").
				Value(&f.Emoji),
			huh.NewInput().
				Title("Greeting").
				Value(&f.Text).
				Validate(required("Greeting")),
		),
	).WithTheme(huh.ThemeDracula())
}

func newClearForm(lang i18n.Language, f *formFields) *huh.Form {
	msgs := i18n.For(lang)
	scopes := []app.Scope{app.ScopeTasks, app.ScopeTransactions, app.ScopeAll}
	opts := make([]huh.Option[app.Scope], len(scopes))
	for i, s := range scopes {
		opts[i] = huh.NewOption(scopeLabel(lang, s), s)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[app.Scope]().
				Title(msgs.ConfirmClear).
				Options(opts...).
				Value(&f.Scope),
			huh.NewConfirm().
				Title(msgs.ConfirmClear).
				Description(msgs.ConfirmMessage).
				Affirmative(msgs.Confirm).
				Negative(msgs.Cancel).
				Value(&f.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}
