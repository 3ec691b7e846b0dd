package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/norton/internal/budget"
	"github.com/julianstephens/norton/internal/i18n"
	"github.com/julianstephens/norton/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	if m.state == StateEditing && m.form != nil {
		content = docStyle.Render(m.form.View())
	} else {
		switch m.tab {
		case TabPlanner:
			content = m.viewPlanner()
		case TabFinance:
			content = m.viewFinance()
		case TabDashboard:
			content = m.viewDashboard()
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	msgs := m.app.Messages()
	var tabs []string
	for i, title := range []string{msgs.DailyPlan, msgs.Finance, msgs.Stats} {
		if m.tab == Tab(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return dangerStyle.Render("  " + m.status)
	}
	return statusStyle.Render("  " + m.status)
}

func (m Model) viewPlanner() string {
	msgs := m.app.Messages()
	g := m.app.Greeting()

	day := m.date
	if t, err := utils.ParseDateKey(m.date); err == nil {
		day = fmt.Sprintf("%s %s", m.date, msgs.Weekdays[t.Weekday()])
	}
	if m.date == m.app.Today() {
		day += mutedStyle.Render(" (today)")
	}

	parts := []string{
		greetingStyle.Render(g.Emoji + " " + g.Text),
		headerStyle.Render(day),
		m.taskList.View(),
	}
	if m.tip != "" {
		parts = append(parts, insightStyle.Render(headerStyle.Render(msgs.AITip)+"\n"+m.tip))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewFinance() string {
	lang := m.app.Language()
	msgs := m.app.Messages()
	totals := m.app.Dashboard().Totals

	summary := fmt.Sprintf("%s %s   %s %s   %s %s",
		msgs.Income, incomeStyle.Render(i18n.FormatMoney(lang, totals.Income)),
		msgs.Expense, expenseStyle.Render(i18n.FormatMoney(lang, totals.Expense)),
		msgs.Balance, headerStyle.Render(i18n.FormatMoney(lang, totals.Balance)))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.viewBudget(m.app.BudgetUsage()),
		summary,
		"",
		m.txList.View(),
	))
}

func (m Model) viewBudget(u budget.Usage) string {
	lang := m.app.Language()
	msgs := m.app.Messages()

	bar := m.budgetBar
	if u.Overspent() {
		bar = m.overBar
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", headerStyle.Render(msgs.Budget), i18n.FormatMoneyWhole(lang, u.Budget))
	fmt.Fprintf(&b, "%s %s %s\n", bar.ViewAs(u.Percent/100), i18n.FormatPercent(lang, u.Percent), msgs.Used)
	fmt.Fprintf(&b, "%s: %s   %s: %s",
		msgs.Spent, i18n.FormatMoneyWhole(lang, u.Spent),
		msgs.Remaining, i18n.FormatMoneyWhole(lang, u.Remaining))
	return b.String()
}

func (m Model) viewDashboard() string {
	lang := m.app.Language()
	msgs := m.app.Messages()
	d := m.app.Dashboard()

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render(msgs.Income+"\n"+incomeStyle.Render(i18n.FormatMoney(lang, d.Totals.Income))),
		cardStyle.Render(msgs.Expense+"\n"+expenseStyle.Render(i18n.FormatMoney(lang, d.Totals.Expense))),
		cardStyle.Render(msgs.Balance+"\n"+headerStyle.Render(i18n.FormatMoney(lang, d.Totals.Balance))),
		cardStyle.Render(msgs.PendingToday+"\n"+headerStyle.Render(fmt.Sprintf("%d / %d", d.PendingToday, d.PendingTotal))),
	)

	var breakdown strings.Builder
	breakdown.WriteString(headerStyle.Render(msgs.Expenses))
	if len(d.Breakdown) == 0 {
		breakdown.WriteString("\n" + mutedStyle.Render(msgs.NoTransactions))
	}
	for _, c := range d.Breakdown {
		share := 0.0
		if d.Totals.Expense > 0 {
			share = c.Amount / d.Totals.Expense
		}
		fmt.Fprintf(&breakdown, "\n%-12s %s %s  %s",
			i18n.CategoryLabel(lang, c.Category),
			m.budgetBar.ViewAs(share),
			i18n.FormatMoney(lang, c.Amount),
			mutedStyle.Render(i18n.FormatPercent(lang, share*100)))
	}

	var preview strings.Builder
	preview.WriteString(headerStyle.Render(msgs.Tasks))
	if len(d.Preview) == 0 {
		preview.WriteString("\n" + mutedStyle.Render(msgs.NoTasks))
	}
	for _, t := range d.Preview {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		fmt.Fprintf(&preview, "\n%s %s %s", box, t.Text, mutedStyle.Render(t.Date))
	}

	parts := []string{cards, m.viewBudget(d.Budget), breakdown.String(), preview.String()}
	if m.advice != "" {
		parts = append(parts, insightStyle.Render(headerStyle.Render(msgs.AIInsight)+"\n"+m.advice))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
