package finance

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/julianstephens/norton/internal/budget"
	"github.com/julianstephens/norton/internal/cli"
	"github.com/julianstephens/norton/internal/i18n"
)

type BudgetShowCmd struct{}

func (c *BudgetShowCmd) Run(ctx *cli.Context) error {
	ctx.Println(RenderUsage(ctx.App().BudgetUsage(), ctx.Lang))
	return nil
}

// RenderUsage shows this month's spending against the budget with a bar.
func RenderUsage(u budget.Usage, lang i18n.Language) string {
	msgs := i18n.For(lang)
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage())
	if u.Overspent() {
		bar = progress.New(progress.WithSolidFill("196"), progress.WithWidth(30), progress.WithoutPercentage())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", cli.Header(msgs.Budget), i18n.FormatMoneyWhole(lang, u.Budget))
	fmt.Fprintf(&b, "%s %s  %s\n", bar.ViewAs(u.Percent/100), i18n.FormatPercent(lang, u.Percent), msgs.Used)
	fmt.Fprintf(&b, "%s: %s   %s: %s",
		msgs.Spent, i18n.FormatMoneyWhole(lang, u.Spent),
		msgs.Remaining, i18n.FormatMoneyWhole(lang, u.Remaining))
	return b.String()
}

type BudgetSetCmd struct {
	Amount string `arg:"" help:"Monthly budget, stored as entered."`
}

func (c *BudgetSetCmd) Validate() error {
	if strings.TrimSpace(c.Amount) == "" {
		return fmt.Errorf("budget cannot be empty")
	}
	return nil
}

func (c *BudgetSetCmd) Run(ctx *cli.Context) error {
	tracker := ctx.App().Budget
	if err := tracker.SetRaw(c.Amount); err != nil {
		return err
	}
	if tracker.Value() <= 0 {
		ctx.Println(cli.Warning(fmt.Sprintf("%q does not start with a positive number; the budget counts as zero", c.Amount)))
	}
	ctx.Println(cli.Success(fmt.Sprintf("%s: %s", ctx.Messages().Budget, i18n.FormatMoneyWhole(ctx.Lang, tracker.Value()))))
	return nil
}
