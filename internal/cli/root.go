package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/norton/internal/app"
	"github.com/julianstephens/norton/internal/assistant"
	"github.com/julianstephens/norton/internal/backup"
	"github.com/julianstephens/norton/internal/config"
	"github.com/julianstephens/norton/internal/i18n"
	"github.com/julianstephens/norton/internal/logger"
	"github.com/julianstephens/norton/internal/storage"
	"github.com/julianstephens/norton/internal/storage/postgres"
	"github.com/julianstephens/norton/internal/storage/sqlite"
)

// Context is handed to every command's Run method.
type Context struct {
	Config    config.Config
	Store     storage.Provider
	Assistant assistant.Gateway
	Lang      i18n.Language
	Out       io.Writer

	// BaseContext is cancelled on interrupt. Nil means context.Background.
	BaseContext context.Context

	app *app.App
}

func (c *Context) Ctx() context.Context {
	if c.BaseContext == nil {
		return context.Background()
	}
	return c.BaseContext
}

// App hydrates the domain state on first use. The store must already be
// loaded.
func (c *Context) App() *app.App {
	if c.app == nil {
		c.app = app.Open(c.Store, app.WithLanguage(c.Lang))
	}
	return c.app
}

// SetApp injects a prebuilt App. Used by tests.
func (c *Context) SetApp(a *app.App) { c.app = a }

func (c *Context) Messages() *i18n.Messages { return i18n.For(c.Lang) }

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := backup.NewManager(c.Store.GetConfigPath())
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// OpenStore picks a Provider for location: a PostgreSQL connection string, a
// .json file, ":memory:", or otherwise a SQLite file.
func OpenStore(location string) (storage.Provider, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, fmt.Errorf("no store configured")
	case postgres.IsConnString(location):
		if err := postgres.ValidateConnString(location); err != nil {
			return nil, err
		}
		return postgres.New(location), nil
	case location == ":memory:":
		return storage.NewMemoryStore(), nil
	}

	path, err := ExpandHome(location)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ExpandHome resolves a leading ~ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

func Success(s string) string { return successStyle.Render("✓ " + s) }
func Warning(s string) string { return warnStyle.Render("⚠ " + s) }
func Muted(s string) string   { return mutedStyle.Render(s) }
func Header(s string) string  { return headerStyle.Render(s) }

// ShortID is the prefix of an id shown in listings.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ResolveID finds the unique id in ids that equals or starts with prefix.
func ResolveID(ids []string, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("id cannot be empty")
	}
	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no item matches id %q", prefix)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("id %q is ambiguous (%d matches)", prefix, len(matches))
}
