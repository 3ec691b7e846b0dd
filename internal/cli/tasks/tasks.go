package tasks

import (
	"fmt"

	"github.com/julianstephens/norton/internal/cli"
	"github.com/julianstephens/norton/internal/i18n"
	"github.com/julianstephens/norton/internal/models"
	"github.com/julianstephens/norton/internal/planner"
	"github.com/julianstephens/norton/internal/utils"
)

type TaskAddCmd struct {
	Text     string `arg:"" help:"Task text."`
	Priority string `short:"p" help:"Priority (high|medium|low)." default:"medium"`
	Category string `short:"c" help:"Category (work|life|study|health|other)."`
	Date     string `short:"d" help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *TaskAddCmd) Validate() error {
	if c.Date != "" && !utils.ValidDateKey(c.Date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", c.Date)
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	priority, err := models.ParsePriority(c.Priority)
	if err != nil {
		return err
	}
	category, err := models.ParseTaskCategory(c.Category)
	if err != nil {
		return err
	}

	a := ctx.App()
	date := c.Date
	if date == "" {
		date = a.Today()
	}

	task, err := a.Tasks.AddTask(c.Text, priority, category, date)
	if err != nil {
		return err
	}
	ctx.Println(cli.Success(fmt.Sprintf("Added task %s: %s (%s)", cli.ShortID(task.ID), task.Text, task.Date)))
	return nil
}

type TaskListCmd struct {
	Date string `short:"d" help:"Date (YYYY-MM-DD). Defaults to today."`
	All  bool   `short:"a" help:"List tasks for every date."`
}

func (c *TaskListCmd) Validate() error {
	if c.Date != "" && !utils.ValidDateKey(c.Date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", c.Date)
	}
	return nil
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	a := ctx.App()
	msgs := ctx.Messages()

	var tasks []models.Task
	title := ""
	if c.All {
		tasks = a.Tasks.Tasks()
		planner.SortForDisplay(tasks)
		title = msgs.Tasks
	} else {
		date := c.Date
		if date == "" {
			date = a.Today()
		}
		tasks = a.Tasks.TasksForDate(date)
		title = fmt.Sprintf("%s · %s", msgs.DailyPlan, date)
	}

	ctx.Println(cli.Header(title))
	if len(tasks) == 0 {
		ctx.Println(cli.Muted(msgs.NoTasks))
		return nil
	}
	for _, t := range tasks {
		ctx.Println(FormatTask(t, ctx.Lang, c.All))
	}
	return nil
}

// FormatTask renders one listing line.
func FormatTask(t models.Task, lang i18n.Language, withDate bool) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	line := fmt.Sprintf("  %s %s  %s  (%s, %s)", box, cli.ShortID(t.ID), t.Text,
		i18n.PriorityLabel(lang, t.Priority),
		i18n.TaskCategoryLabel(lang, t.Category.Effective()))
	if withDate {
		line += "  " + t.Date
	}
	if t.Completed {
		return cli.Muted(line)
	}
	return line
}

type TaskToggleCmd struct {
	ID string `arg:"" help:"Task ID or unique prefix."`
}

func (c *TaskToggleCmd) Run(ctx *cli.Context) error {
	a := ctx.App()
	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	task, _, err := a.Tasks.ToggleTask(id)
	if err != nil {
		return err
	}
	state := "pending"
	if task.Completed {
		state = "done"
	}
	ctx.Println(cli.Success(fmt.Sprintf("Marked %q as %s", task.Text, state)))
	return nil
}

type TaskEditCmd struct {
	ID       string  `arg:"" help:"Task ID or unique prefix."`
	Text     *string `short:"t" help:"New task text."`
	Priority *string `short:"p" help:"New priority (high|medium|low)."`
	Category *string `short:"c" help:"New category (work|life|study|health|other)."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	a := ctx.App()
	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	task, _ := a.Tasks.Get(id)

	text, priority, category := task.Text, task.Priority, task.Category
	if c.Text != nil {
		text = *c.Text
	}
	if c.Priority != nil {
		if priority, err = models.ParsePriority(*c.Priority); err != nil {
			return err
		}
	}
	if c.Category != nil {
		if category, err = models.ParseTaskCategory(*c.Category); err != nil {
			return err
		}
	}

	updated, err := a.Tasks.EditTask(id, text, priority, category)
	if err != nil {
		return err
	}
	ctx.Println(cli.Success(fmt.Sprintf("Updated task %s: %s", cli.ShortID(updated.ID), updated.Text)))
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID or unique prefix."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	a := ctx.App()
	id, err := resolve(ctx, c.ID)
	if err != nil {
		return err
	}
	task, _ := a.Tasks.Get(id)
	if _, err := a.Tasks.DeleteTask(id); err != nil {
		return err
	}
	ctx.Println(cli.Success(fmt.Sprintf("Deleted task %q", task.Text)))
	return nil
}

func resolve(ctx *cli.Context, prefix string) (string, error) {
	tasks := ctx.App().Tasks.Tasks()
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return cli.ResolveID(ids, prefix)
}
