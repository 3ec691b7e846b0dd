package finance

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/norton/internal/app"
	"github.com/julianstephens/norton/internal/cli"
	"github.com/julianstephens/norton/internal/i18n"
	"github.com/julianstephens/norton/internal/insights"
	"github.com/julianstephens/norton/internal/models"
	"github.com/julianstephens/norton/internal/utils"
)

type TxAddCmd struct {
	Amount      float64 `arg:"" help:"Amount, always positive."`
	Type        string  `short:"t" help:"Type (income|expense)." default:"expense"`
	Category    string  `short:"c" help:"Category (Food|Transport|Housing|Shopping|Entertainment|Salary|Investment|Other)." default:"Other"`
	Description string  `short:"m" help:"Description. Defaults to the category name."`
}

func (c *TxAddCmd) Validate() error {
	if !models.ValidAmount(c.Amount) {
		return models.ErrInvalidAmount
	}
	_, err := models.ParseTransactionType(c.Type)
	return err
}

func (c *TxAddCmd) Run(ctx *cli.Context) error {
	typ, _ := models.ParseTransactionType(c.Type)
	tx, err := ctx.App().Ledger.AddTransaction(c.Amount, typ, models.NormalizeCategory(c.Category), c.Description)
	if err != nil {
		return err
	}
	ctx.Println(cli.Success(recordedMessage(ctx, tx)))
	return nil
}

// TxQuickCmd records a transaction described in free text.
type TxQuickCmd struct {
	Text string `arg:"" help:"Free text such as \"lunch 35\" or \"打车花了35元\"."`
}

func (c *TxQuickCmd) Run(ctx *cli.Context) error {
	tx, err := ctx.App().QuickAddTransaction(ctx.Ctx(), ctx.Assistant, c.Text)
	if err != nil {
		if errors.Is(err, app.ErrRecognitionFailed) {
			return errors.New(ctx.Messages().RecognitionFailed)
		}
		return err
	}
	ctx.Println(cli.Success(recordedMessage(ctx, tx)))
	return nil
}

func recordedMessage(ctx *cli.Context, tx models.Transaction) string {
	return fmt.Sprintf("%s%s %s (%s)", ctx.Messages().Recorded, tx.Description,
		i18n.FormatMoney(ctx.Lang, tx.Amount), cli.ShortID(tx.ID))
}

type TxListCmd struct {
	Month string `help:"Only show this month (YYYY-MM)."`
	Limit int    `short:"n" help:"Maximum number of rows (0 for all)." default:"0"`
}

func (c *TxListCmd) Validate() error {
	if c.Month != "" {
		if _, err := time.Parse("2006-01", c.Month); err != nil {
			return fmt.Errorf("invalid month %q, expected YYYY-MM", c.Month)
		}
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	return nil
}

func (c *TxListCmd) Run(ctx *cli.Context) error {
	txs := insights.SortTransactionsForDisplay(ctx.App().Ledger.Transactions())
	if c.Month != "" {
		m, _ := time.Parse("2006-01", c.Month)
		filtered := txs[:0]
		for _, tx := range txs {
			if utils.InMonth(tx.Date, m.Year(), m.Month()) {
				filtered = append(filtered, tx)
			}
		}
		txs = filtered
	}
	if c.Limit > 0 && len(txs) > c.Limit {
		txs = txs[:c.Limit]
	}

	msgs := ctx.Messages()
	ctx.Println(cli.Header(msgs.Finance))
	if len(txs) == 0 {
		ctx.Println(cli.Muted(msgs.NoTransactions))
		return nil
	}
	for _, tx := range txs {
		ctx.Println(FormatTransaction(tx, ctx.Lang))
	}
	return nil
}

// FormatTransaction renders one listing line with a signed amount.
func FormatTransaction(tx models.Transaction, lang i18n.Language) string {
	sign := "-"
	if tx.Type == models.TransactionIncome {
		sign = "+"
	}
	return fmt.Sprintf("  %s  %s  %s%s  %s · %s",
		cli.ShortID(tx.ID),
		tx.Time().Local().Format("2006-01-02 15:04"),
		sign, i18n.FormatMoney(lang, tx.Amount),
		i18n.CategoryLabel(lang, tx.Category),
		tx.Description)
}

type TxEditCmd struct {
	ID          string   `arg:"" help:"Transaction ID or unique prefix."`
	Amount      *float64 `short:"a" help:"New amount."`
	Type        *string  `short:"t" help:"New type (income|expense)."`
	Category    *string  `short:"c" help:"New category."`
	Description *string  `short:"m" help:"New description."`
}

func (c *TxEditCmd) Run(ctx *cli.Context) error {
	l := ctx.App().Ledger
	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	tx, _ := l.Get(id)

	amount, typ, category, desc := tx.Amount, tx.Type, tx.Category, tx.Description
	if c.Amount != nil {
		amount = *c.Amount
	}
	if c.Type != nil {
		if typ, err = models.ParseTransactionType(*c.Type); err != nil {
			return err
		}
	}
	if c.Category != nil {
		category = models.NormalizeCategory(*c.Category)
	}
	if c.Description != nil {
		desc = *c.Description
	}

	updated, err := l.EditTransaction(id, amount, typ, category, desc)
	if err != nil {
		return err
	}
	ctx.Println(cli.Success("Updated transaction"))
	ctx.Println(FormatTransaction(updated, ctx.Lang))
	return nil
}

type TxDeleteCmd struct {
	ID string `arg:"" help:"Transaction ID or unique prefix."`
}

func (c *TxDeleteCmd) Run(ctx *cli.Context) error {
	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	tx, _ := ctx.App().Ledger.Get(id)
	if _, err := ctx.App().Ledger.DeleteTransaction(id); err != nil {
		return err
	}
	ctx.Println(cli.Success(fmt.Sprintf("Deleted transaction %q", tx.Description)))
	return nil
}

func resolve(ctx *cli.Context, prefix string) (string, error) {
	txs := ctx.App().Ledger.Transactions()
	ids := make([]string, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}
	return cli.ResolveID(ids, prefix)
}
