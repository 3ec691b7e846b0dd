package home

import (
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/norton/internal/app"
	"github.com/julianstephens/norton/internal/cli"
	"github.com/julianstephens/norton/internal/i18n"
)

// confirmPrompt asks on the terminal. Replaced in tests.
var confirmPrompt = func(lang i18n.Language, scope app.Scope) (bool, error) {
	msgs := i18n.For(lang)
	ok := false
	err := huh.NewConfirm().
		Title(msgs.ConfirmClear + " · " + string(scope)).
		Description(msgs.ConfirmMessage).
		Affirmative(msgs.Confirm).
		Negative(msgs.Cancel).
		Value(&ok).
		Run()
	return ok, err
}

type ClearCmd struct {
	Scope string `arg:"" enum:"tasks,transactions,all" help:"What to clear (tasks|transactions|all). Clearing transactions also resets the budget."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	scope, err := app.ParseScope(c.Scope)
	if err != nil {
		return err
	}

	confirm := func(s app.Scope) (bool, error) { return confirmPrompt(ctx.Lang, s) }
	if c.Yes {
		confirm = func(app.Scope) (bool, error) { return true, nil }
	}

	cleared, err := ctx.App().Clear(scope, confirm)
	if err != nil {
		return err
	}
	if !cleared {
		ctx.Println(cli.Muted("Nothing cleared."))
		return nil
	}
	ctx.Println(cli.Success(ctx.Messages().Cleared))
	return nil
}
