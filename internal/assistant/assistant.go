package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/julianstephens/norton/internal/constants"
	"github.com/julianstephens/norton/internal/i18n"
	"github.com/julianstephens/norton/internal/logger"
	"github.com/julianstephens/norton/internal/models"
)

// Draft is a transaction proposed from free text. It is not recorded until
// the caller adds it to the ledger.
type Draft struct {
	Amount      float64                `json:"amount"`
	Type        models.TransactionType `json:"type"`
	Category    models.Category        `json:"category"`
	Description string                 `json:"description"`
}

// Gateway is the contract the rest of the application relies on. None of
// its methods fail: parsing reports ok=false and the advice methods return
// a localized fallback.
type Gateway interface {
	ParseTransactionText(ctx context.Context, text string, lang i18n.Language) (Draft, bool)
	BudgetAdvice(ctx context.Context, txs []models.Transaction, lang i18n.Language) string
	PlanningTip(ctx context.Context, pending []string, lang i18n.Language) string
}

// Request is one prompt sent to a Completer. A non-nil Schema asks for a
// JSON object matching it.
type Request struct {
	Prompt     string
	SchemaName string
	Schema     *jsonschema.Definition
}

// Completer sends a prompt to a language model and returns its text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

var ErrEmptyInput = errors.New("nothing to parse")

// Assistant implements Gateway on top of a Completer.
type Assistant struct {
	completer Completer
	timeout   time.Duration
}

func NewAssistant(c Completer, timeout time.Duration) *Assistant {
	if timeout <= 0 {
		timeout = constants.DefaultAssistantTimeout
	}
	return &Assistant{completer: c, timeout: timeout}
}

var draftSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"amount":      {Type: jsonschema.Number},
		"type":        {Type: jsonschema.String, Enum: []string{string(models.TransactionIncome), string(models.TransactionExpense)}},
		"category":    {Type: jsonschema.String, Enum: categoryKeys()},
		"description": {Type: jsonschema.String},
	},
	Required:             []string{"amount", "type", "category", "description"},
	AdditionalProperties: false,
}

func categoryKeys() []string {
	keys := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		keys[i] = string(c)
	}
	return keys
}

func (a *Assistant) ParseTransactionText(ctx context.Context, text string, lang i18n.Language) (Draft, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Draft{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	out, err := a.completer.Complete(ctx, Request{
		Prompt:     parsePrompt(text, lang),
		SchemaName: "transaction",
		Schema:     &draftSchema,
	})
	if err != nil {
		logger.Warn("Transaction parse failed", "error", err)
		return Draft{}, false
	}

	draft, err := decodeDraft(out)
	if err != nil {
		logger.Warn("Transaction parse returned unusable output", "error", err, "output", out)
		return Draft{}, false
	}
	return draft, true
}

func (a *Assistant) BudgetAdvice(ctx context.Context, txs []models.Transaction, lang i18n.Language) string {
	msgs := i18n.For(lang)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	out, err := a.completer.Complete(ctx, Request{Prompt: advicePrompt(txs, lang)})
	if err != nil {
		logger.Warn("Budget advice failed", "error", err)
		return msgs.AdviceFailed
	}
	if out = strings.TrimSpace(out); out == "" {
		return msgs.AdviceEmpty
	}
	return out
}

func (a *Assistant) PlanningTip(ctx context.Context, pending []string, lang i18n.Language) string {
	msgs := i18n.For(lang)

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	out, err := a.completer.Complete(ctx, Request{Prompt: tipPrompt(pending, lang)})
	if err != nil {
		logger.Warn("Planning tip failed", "error", err)
		return msgs.TipFailed
	}
	if out = strings.TrimSpace(out); out == "" {
		return msgs.TipEmpty
	}
	return out
}

var fence = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

type rawDraft struct {
	Amount      *float64 `json:"amount"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
}

// decodeDraft validates model output. Amount and type must be usable;
// an unknown category becomes Other.
func decodeDraft(out string) (Draft, error) {
	out = strings.TrimSpace(out)
	if m := fence.FindStringSubmatch(out); m != nil {
		out = m[1]
	}
	if out == "" {
		return Draft{}, errors.New("empty response")
	}

	var raw rawDraft
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return Draft{}, fmt.Errorf("malformed draft: %w", err)
	}
	return normalizeDraft(raw)
}

func normalizeDraft(raw rawDraft) (Draft, error) {
	if raw.Amount == nil || !models.ValidAmount(*raw.Amount) {
		return Draft{}, models.ErrInvalidAmount
	}
	typ, err := models.ParseTransactionType(raw.Type)
	if err != nil {
		return Draft{}, err
	}
	category := models.NormalizeCategory(raw.Category)
	if !category.Known() {
		category = models.CategoryOther
	}
	return Draft{
		Amount:      *raw.Amount,
		Type:        typ,
		Category:    category,
		Description: strings.TrimSpace(raw.Description),
	}, nil
}

func parsePrompt(text string, lang i18n.Language) string {
	cats := strings.Join(categoryKeys(), ", ")
	if lang == i18n.English {
		return fmt.Sprintf("Extract transaction details from this text: %q. If no currency is given, assume the usual one for the context. "+
			"Classify type as income or expense. Category must be exactly one of: %s.", text, cats)
	}
	return fmt.Sprintf("从这段文本中提取交易详情: %q。如果未指定货币，假设与上下文一致。将 type 分类为 income (收入) 或 expense (支出)。"+
		"类别必须严格为以下之一: %s。", text, cats)
}

func advicePrompt(txs []models.Transaction, lang i18n.Language) string {
	parts := make([]string, len(txs))
	for i, tx := range txs {
		parts[i] = fmt.Sprintf("%s: %g (%s)", tx.Type, tx.Amount, tx.Category)
	}
	summary := strings.Join(parts, ", ")

	if lang == i18n.English {
		return "Analyze these transactions and give a very short, two-sentence financial tip or observation " +
			"suitable for a dashboard widget. Answer in English: " + summary
	}
	return "分析这些交易并提供一个非常简短的、两句话的财务建议或观察，适合显示在仪表板上。使用中文回答: " + summary
}

func tipPrompt(pending []string, lang i18n.Language) string {
	list := strings.Join(pending, ", ")
	if lang == i18n.English {
		return "I am planning my day. Here are my pending tasks: " + list +
			". Give me a short motivating quote or a quick productivity tip related to these tasks. Answer in English."
	}
	return "我正在规划我的一天。这是我当前的待办任务: " + list + "。给我一个简短的、激励性的名言或关于这些任务的快速效率建议。使用中文回答。"
}
