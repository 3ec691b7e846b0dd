package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/norton/internal/constants"
)

// Logger is the process-wide logger. It stays nil until Init is called, and
// every helper in this package is a no-op until then.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
}

// Path returns the log file location under configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// Init writes logfmt records to Path(cfg.ConfigDir), rotated by size. Debug
// mode lowers the level and mirrors human-readable output to stderr.
func Init(cfg Config) error {
	path := Path(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var writer io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	opts := log.Options{
		ReportTimestamp: true,
		Formatter:       log.LogfmtFormatter,
		Level:           log.WarnLevel,
	}
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, writer)
		opts.Formatter = log.TextFormatter
		opts.Level = log.DebugLevel
		opts.Prefix = constants.AppName
	}

	Logger = log.NewWithOptions(writer, opts)
	return nil
}

// InitWriter points the logger at an arbitrary writer. Used by tests.
func InitWriter(w io.Writer, level log.Level) {
	Logger = log.NewWithOptions(w, log.Options{Level: level, Formatter: log.LogfmtFormatter})
}

// SetContext attaches keyvals to every later record, e.g. the running
// command and store.
func SetContext(keyvals ...interface{}) {
	if Logger != nil {
		Logger = Logger.With(keyvals...)
	}
}

// Entry carries fields for one area of the app. The zero Entry is valid.
type Entry struct {
	keyvals []interface{}
}

func With(keyvals ...interface{}) Entry {
	return Entry{keyvals: keyvals}
}

// ForSlot tags records with the storage slot they concern.
func ForSlot(slot string) Entry {
	return With("slot", slot)
}

// ForScope tags records with a clear scope.
func ForScope(scope string) Entry {
	return With("scope", scope)
}

func (e Entry) Debug(msg string, keyvals ...interface{}) { e.emit(log.DebugLevel, msg, keyvals) }
func (e Entry) Info(msg string, keyvals ...interface{})  { e.emit(log.InfoLevel, msg, keyvals) }
func (e Entry) Warn(msg string, keyvals ...interface{})  { e.emit(log.WarnLevel, msg, keyvals) }
func (e Entry) Error(msg string, keyvals ...interface{}) { e.emit(log.ErrorLevel, msg, keyvals) }

func (e Entry) emit(level log.Level, msg string, keyvals []interface{}) {
	if Logger == nil {
		return
	}
	kv := make([]interface{}, 0, len(e.keyvals)+len(keyvals))
	kv = append(kv, e.keyvals...)
	kv = append(kv, keyvals...)
	Logger.Log(level, msg, kv...)
}

func Debug(msg string, keyvals ...interface{}) { Entry{}.emit(log.DebugLevel, msg, keyvals) }
func Info(msg string, keyvals ...interface{})  { Entry{}.emit(log.InfoLevel, msg, keyvals) }
func Warn(msg string, keyvals ...interface{})  { Entry{}.emit(log.WarnLevel, msg, keyvals) }
func Error(msg string, keyvals ...interface{}) { Entry{}.emit(log.ErrorLevel, msg, keyvals) }
