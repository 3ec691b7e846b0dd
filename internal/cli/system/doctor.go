package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/norton/internal/backup"
	"github.com/julianstephens/norton/internal/cli"
	"github.com/julianstephens/norton/internal/config"
	"github.com/julianstephens/norton/internal/constants"
	"github.com/julianstephens/norton/internal/keyring"
	"github.com/julianstephens/norton/internal/storage"
	"github.com/julianstephens/norton/internal/storage/sqlite"
)

var (
	listProcesses = ps.Processes
	keyringProbe  = keyring.IsAvailable
	apiKeyLookup  = config.APIKey
)

type DoctorCmd struct{}

type severity int

const (
	fatal severity = iota
	advisory
)

type check struct {
	name     string
	severity severity
	needsDB  bool
	run      func(*cli.Context) error
}

var checks = []check{
	{"Store reachable", fatal, false, checkStoreReachable},
	{"Schema version", fatal, true, checkSchemaVersion},
	{"Slots readable", advisory, true, checkSlots},
	{"Backups present", advisory, false, checkBackupsPresent},
	{"Clock/timezone", fatal, false, checkClockTimezone},
	{"OS keyring", advisory, false, checkKeyring},
	{"Assistant", advisory, false, checkAssistant},
	{"Single instance", advisory, false, checkOtherInstances},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	for i, r := range runChecks(ctx) {
		c := checks[i]
		switch {
		case r.skipped:
			ctx.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
		case r.err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.severity == advisory:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", r.err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", r.err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

type result struct {
	err     error
	skipped bool
}

// runChecks runs the store check first and the remaining checks
// concurrently. Results are in check order.
func runChecks(ctx *cli.Context) []result {
	results := make([]result, len(checks))
	results[0].err = checks[0].run(ctx)
	reachable := results[0].err == nil

	var g errgroup.Group
	for i := 1; i < len(checks); i++ {
		c := checks[i]
		if c.needsDB && !reachable {
			results[i].skipped = true
			continue
		}
		g.Go(func() error {
			results[i].err = c.run(ctx)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return errors.New("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	v, ok := ctx.Store.(storage.Versioned)
	if !ok {
		return nil
	}
	current, latest, err := v.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

// checkSlots flags slots that will be replaced by seeds on the next load.
func checkSlots(ctx *cli.Context) error {
	var bad []string
	for _, slot := range constants.Slots {
		if slot == constants.SlotBudget {
			continue
		}
		raw, ok, err := ctx.Store.Get(slot)
		if err != nil {
			return fmt.Errorf("failed to read slot %q: %w", slot, err)
		}
		if ok && !json.Valid([]byte(raw)) {
			bad = append(bad, slot)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("corrupt slots will fall back to sample data: %s", strings.Join(bad, ", "))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := backup.NewManager(ctx.Store.GetConfigPath())
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'norton backup create'")
	}
	return nil
}

func checkClockTimezone(*cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkKeyring(*cli.Context) error {
	if !keyringProbe() {
		return errors.New("OS keyring is not available; use the NORTON_AI_API_KEY environment variable instead")
	}
	return nil
}

func checkAssistant(ctx *cli.Context) error {
	if !ctx.Config.Assistant.Enabled {
		return errors.New("assistant disabled in config; offline rules are used")
	}
	if _, src := apiKeyLookup(); src == config.KeySourceNone {
		return errors.New("no API key in environment or keyring; offline rules are used")
	}
	return nil
}

// checkOtherInstances warns when another norton process may be writing the
// same store.
func checkOtherInstances(*cli.Context) error {
	procs, err := listProcesses()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}
	self := os.Getpid()
	count := 0
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(p.Executable()), ".exe")
		if name == constants.AppName {
			count++
		}
	}
	if count > 0 {
		return fmt.Errorf("%d other %s process(es) running; concurrent writers may overwrite each other", count, constants.AppName)
	}
	return nil
}
