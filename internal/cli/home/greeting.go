package home

import (
	"fmt"

	"github.com/julianstephens/norton/internal/cli"
)

type GreetingShowCmd struct{}

func (c *GreetingShowCmd) Run(ctx *cli.Context) error {
	g := ctx.App().Greeting()
	ctx.Printf("%s %s\n", g.Emoji, g.Text)
	return nil
}

type GreetingSetCmd struct {
	Text  string `arg:"" help:"Greeting text."`
	Emoji string `short:"e" help:"Emoji shown before the text. Keeps the current one when empty."`
}

func (c *GreetingSetCmd) Run(ctx *cli.Context) error {
	g, err := ctx.App().SetGreeting(c.Emoji, c.Text)
	if err != nil {
		return err
	}
	ctx.Println(cli.Success(fmt.Sprintf("Greeting set: %s %s", g.Emoji, g.Text)))
	return nil
}
