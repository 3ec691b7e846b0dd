package assistant

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/julianstephens/norton/internal/i18n"
	"github.com/julianstephens/norton/internal/logger"
	"github.com/julianstephens/norton/internal/models"
)

// Config selects and configures a Gateway.
type Config struct {
	Enabled bool
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// New returns a model-backed Gateway when the assistant is enabled and a
// key is available, and the offline Rules gateway otherwise.
func New(cfg Config) Gateway {
	if !cfg.Enabled {
		logger.Debug("Assistant disabled, using offline rules")
		return NewRules()
	}
	completer, err := NewOpenAICompleter(OpenAIConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
	})
	if err != nil {
		logger.Info("Assistant unavailable, using offline rules", "reason", err)
		return NewRules()
	}
	return NewAssistant(completer, cfg.Timeout)
}

// InFlight guards a single outstanding request. Callers that fail to
// acquire it should ignore the trigger.
type InFlight struct {
	busy atomic.Bool
}

func (f *InFlight) TryStart() bool { return f.busy.CompareAndSwap(false, true) }
func (f *InFlight) Done()          { f.busy.Store(false) }
func (f *InFlight) Busy() bool     { return f.busy.Load() }

// FetchAdvice requests budget advice for the dashboard. No call is made and
// "" is returned when there are no transactions to analyze.
func FetchAdvice(ctx context.Context, gw Gateway, txs []models.Transaction, lang i18n.Language) string {
	if len(txs) == 0 {
		return ""
	}
	return gw.BudgetAdvice(ctx, txs, lang)
}
