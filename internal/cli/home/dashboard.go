package home

import (
	"fmt"
	"strings"

	"github.com/julianstephens/norton/internal/assistant"
	"github.com/julianstephens/norton/internal/cli"
	"github.com/julianstephens/norton/internal/cli/finance"
	"github.com/julianstephens/norton/internal/cli/tasks"
	"github.com/julianstephens/norton/internal/i18n"
	"github.com/julianstephens/norton/internal/insights"
)

type DashboardCmd struct {
	NoAI bool `name:"no-ai" help:"Skip the generated budget advice."`
}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	a := ctx.App()
	d := a.Dashboard()
	g := a.Greeting()

	ctx.Println(cli.Header(fmt.Sprintf("%s %s", g.Emoji, g.Text)))
	ctx.Println()
	ctx.Println(RenderSummary(d, ctx.Lang))

	if c.NoAI {
		return nil
	}
	advice := assistant.FetchAdvice(ctx.Ctx(), ctx.Assistant, a.Ledger.Transactions(), ctx.Lang)
	if advice != "" {
		ctx.Println()
		ctx.Println(cli.Header(ctx.Messages().AIInsight))
		ctx.Println(advice)
	}
	return nil
}

// RenderSummary lays out totals, the budget, the expense breakdown and the
// task preview.
func RenderSummary(d insights.Dashboard, lang i18n.Language) string {
	msgs := i18n.For(lang)
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %s   %s: %s   %s: %s\n\n",
		msgs.Income, i18n.FormatMoney(lang, d.Totals.Income),
		msgs.Expense, i18n.FormatMoney(lang, d.Totals.Expense),
		msgs.Balance, i18n.FormatMoney(lang, d.Totals.Balance))

	b.WriteString(finance.RenderUsage(d.Budget, lang))
	b.WriteString("\n\n")

	b.WriteString(cli.Header(msgs.Expenses))
	b.WriteString("\n")
	if len(d.Breakdown) == 0 {
		b.WriteString(cli.Muted("  " + msgs.NoTransactions))
		b.WriteString("\n")
	}
	for _, ct := range d.Breakdown {
		share := 0.0
		if d.Totals.Expense > 0 {
			share = ct.Amount / d.Totals.Expense * 100
		}
		fmt.Fprintf(&b, "  %-12s %12s  %s\n",
			i18n.CategoryLabel(lang, ct.Category),
			i18n.FormatMoney(lang, ct.Amount),
			i18n.FormatPercent(lang, share))
	}

	fmt.Fprintf(&b, "\n%s  %s: %d\n", cli.Header(msgs.Tasks), msgs.PendingToday, d.PendingToday)
	if len(d.Preview) == 0 {
		b.WriteString(cli.Muted("  " + msgs.NoTasks))
	}
	lines := make([]string, len(d.Preview))
	for i, t := range d.Preview {
		lines[i] = tasks.FormatTask(t, lang, true)
	}
	b.WriteString(strings.Join(lines, "\n"))
	return strings.TrimRight(b.String(), "\n")
}
