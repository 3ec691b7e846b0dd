package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/norton/internal/backup"
	"github.com/julianstephens/norton/internal/config"
	"github.com/julianstephens/norton/internal/keyring"
	"github.com/julianstephens/norton/internal/logger"
	"github.com/julianstephens/norton/internal/storage/postgres"
)

// hints pairs sentinel errors with a follow-up printed under the message.
var hints = []struct {
	target error
	hint   string
}{
	{keyring.ErrKeyringUnavailable, "set " + config.EnvAPIKey + " in the environment or a .env file instead"},
	{postgres.ErrEmbeddedCredentials, "put the password in PGPASSWORD or ~/.pgpass and drop it from --store"},
	{backup.ErrUnsupported, "point --store at a .db or .json file to use backups"},
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns the suggestion registered for err, or "".
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

func report(w io.Writer, err error) {
	fmt.Fprintln(w, Format(err))
	if h := Hint(err); h != "" {
		fmt.Fprintf(w, "Hint: %s\n", h)
	}
}

// Fatal logs err, prints it with any hint and exits with status 1.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		report(os.Stderr, err)
		os.Exit(1)
	}
}

func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}
