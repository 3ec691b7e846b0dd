package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/norton/internal/assistant"
	"github.com/julianstephens/norton/internal/cli"
	"github.com/julianstephens/norton/internal/cli/backups"
	"github.com/julianstephens/norton/internal/cli/finance"
	"github.com/julianstephens/norton/internal/cli/home"
	"github.com/julianstephens/norton/internal/cli/system"
	"github.com/julianstephens/norton/internal/cli/tasks"
	"github.com/julianstephens/norton/internal/config"
	"github.com/julianstephens/norton/internal/constants"
	apperrors "github.com/julianstephens/norton/internal/errors"
	"github.com/julianstephens/norton/internal/logger"
	"github.com/julianstephens/norton/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Path to the TOML config file." type:"path" default:"${config_path}"`
	Store   string `help:"Store location: a SQLite file, a .json file, :memory:, or a PostgreSQL connection string without embedded credentials. Overrides the config file."`
	Lang    string `help:"Display language (zh or en). Overrides the config file."`
	Debug   bool   `help:"Mirror debug logs to stderr."`

	Init      system.InitCmd     `cmd:"" help:"Initialize norton storage."`
	Tui       system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Doctor    system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Dashboard home.DashboardCmd  `cmd:"" help:"Show the finance and task summary."`
	Calendar  tasks.CalendarCmd  `cmd:"" help:"Show a month calendar marking days with pending tasks."`
	Tip       tasks.TipCmd       `cmd:"" help:"Ask the assistant for a planning tip."`
	Clear     home.ClearCmd      `cmd:"" help:"Clear tasks, transactions, or everything."`
	Backup    struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the assistant API key in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored API key, masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored API key."`
	} `cmd:"" help:"Manage the assistant API key."`
	Task struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a new task."`
		List   tasks.TaskListCmd   `cmd:"" help:"List tasks for a day."`
		Toggle tasks.TaskToggleCmd `cmd:"" help:"Mark a task done or not done."`
		Edit   tasks.TaskEditCmd   `cmd:"" help:"Edit an existing task."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage tasks."`
	Tx struct {
		Add    finance.TxAddCmd    `cmd:"" help:"Record a transaction."`
		Quick  finance.TxQuickCmd  `cmd:"" help:"Record a transaction from free text."`
		List   finance.TxListCmd   `cmd:"" help:"List transactions."`
		Edit   finance.TxEditCmd   `cmd:"" help:"Edit a transaction."`
		Delete finance.TxDeleteCmd `cmd:"" help:"Delete a transaction."`
	} `cmd:"" help:"Manage the ledger."`
	Budget struct {
		Show finance.BudgetShowCmd `cmd:"" help:"Show this month's budget usage." default:"1"`
		Set  finance.BudgetSetCmd  `cmd:"" help:"Set the monthly budget."`
	} `cmd:"" help:"Manage the monthly budget."`
	Greeting struct {
		Show home.GreetingShowCmd `cmd:"" help:"Show the planner greeting." default:"1"`
		Set  home.GreetingSetCmd  `cmd:"" help:"Change the planner greeting."`
	} `cmd:"" help:"Manage the planner greeting."`
}

// Commands that manage their own store lifecycle.
var skipLoad = map[string]bool{
	"init":           true,
	"doctor":         true,
	"keyring set":    true,
	"keyring get":    true,
	"keyring delete": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal planner and finance ledger with an AI assistant"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": config.ConfigPath(),
		},
	)

	config.LoadDotEnv()
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.Store != "" {
		cfg.General.Store = CLI.Store
	}
	if CLI.Lang != "" {
		cfg.General.Language = CLI.Lang
	}
	if CLI.Debug {
		cfg.General.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.General.Debug, ConfigDir: config.ConfigDir()}); err != nil {
		apperrors.Fatalf("failed to initialize logger: %v", err)
	}

	store, err := cli.OpenStore(cfg.General.Store)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	command := commandPath(ctx.Command())
	if !skipLoad[command] {
		if err := loadStore(store); err != nil {
			apperrors.Fatal(err)
		}
	}

	apiKey, source := config.APIKey()
	logger.Debug("Resolved assistant key", "source", source)
	gw := assistant.New(assistant.Config{
		Enabled: cfg.Assistant.Enabled,
		APIKey:  apiKey,
		BaseURL: cfg.Assistant.BaseURL,
		Model:   cfg.Assistant.Model,
		Timeout: cfg.AssistantTimeout(),
	})

	base, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := &cli.Context{
		Config:      cfg,
		Store:       store,
		Assistant:   gw,
		Lang:        cfg.Language(),
		BaseContext: base,
	}
	logger.SetContext("command", command)
	logger.Debug("Running command", "store", store.GetConfigPath(), "lang", appCtx.Lang)

	if err := ctx.Run(appCtx); err != nil {
		stop()
		_ = store.Close()
		apperrors.Fatal(err)
	}
}

// loadStore opens the store, initializing it on first use.
func loadStore(store storage.Provider) error {
	err := store.Load()
	if !errors.Is(err, storage.ErrNotInitialized) {
		return err
	}
	logger.Info("Initializing store on first use", "path", store.GetConfigPath())
	return store.Init()
}

// commandPath drops positional placeholders from a kong command string,
// e.g. "keyring set <key>" becomes "keyring set".
func commandPath(cmd string) string {
	var parts []string
	for _, f := range strings.Fields(cmd) {
		if strings.HasPrefix(f, "<") {
			break
		}
		parts = append(parts, f)
	}
	return strings.Join(parts, " ")
}
