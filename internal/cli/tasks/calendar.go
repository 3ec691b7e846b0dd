package tasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/norton/internal/cli"
	"github.com/julianstephens/norton/internal/insights"
	"github.com/julianstephens/norton/internal/utils"
)

type CalendarCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarCmd) Validate() error {
	if c.Month == "" {
		return nil
	}
	if _, err := time.Parse("2006-01", c.Month); err != nil {
		return fmt.Errorf("invalid month %q, expected YYYY-MM", c.Month)
	}
	return nil
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	a := ctx.App()
	now := a.Now()
	year, month := now.Year(), now.Month()
	if c.Month != "" {
		m, _ := time.Parse("2006-01", c.Month)
		year, month = m.Year(), m.Month()
	}

	weeks := insights.MonthCalendar(year, month, a.Tasks.DatesWithPendingTasks(), now)
	ctx.Println(RenderCalendar(weeks, ctx.Messages().Weekdays, fmt.Sprintf("%d-%02d", year, month)))
	return nil
}

// RenderCalendar draws a month grid. Days with pending tasks carry a dot,
// today is bracketed.
func RenderCalendar(weeks [][]insights.Day, weekdays [7]string, title string) string {
	var b strings.Builder
	b.WriteString(cli.Header(title))
	b.WriteString("\n")
	for _, wd := range weekdays {
		fmt.Fprintf(&b, "%5s", wd)
	}
	b.WriteString("\n")

	for _, week := range weeks {
		for _, d := range week {
			if d.Number == 0 {
				b.WriteString("     ")
				continue
			}
			cell := fmt.Sprintf("%d", d.Number)
			if d.Pending {
				cell += "•"
			}
			if d.Today {
				cell = "[" + cell + "]"
			}
			fmt.Fprintf(&b, "%5s", cell)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

type TipCmd struct {
	Date string `short:"d" help:"Date whose pending tasks are used (YYYY-MM-DD). Defaults to today."`
}

func (c *TipCmd) Validate() error {
	if c.Date != "" && !utils.ValidDateKey(c.Date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", c.Date)
	}
	return nil
}

func (c *TipCmd) Run(ctx *cli.Context) error {
	a := ctx.App()
	date := c.Date
	if date == "" {
		date = a.Today()
	}

	tip := ctx.Assistant.PlanningTip(ctx.Ctx(), a.PendingOn(date), ctx.Lang)
	ctx.Println(cli.Header(ctx.Messages().AITip))
	ctx.Println(tip)
	return nil
}
