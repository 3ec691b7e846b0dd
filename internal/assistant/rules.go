package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/julianstephens/norton/internal/i18n"
	"github.com/julianstephens/norton/internal/insights"
	"github.com/julianstephens/norton/internal/models"
)

// Rules is an offline Gateway. It extracts drafts with keyword tables and
// derives advice from the transactions themselves.
type Rules struct{}

func NewRules() *Rules { return &Rules{} }

var (
	amountRe   = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	currencyRe = regexp.MustCompile(`(?i)(?:[¥$￥]|\b(?:usd|cny|rmb|dollars?|bucks)\b|元|块钱|块)`)
)

var incomeKeywords = []string{
	"工资", "收入", "奖金", "报销", "到账", "收到", "赚",
	"salary", "income", "paycheck", "bonus", "refund", "earned", "received", "got paid",
}

type categoryRule struct {
	category models.Category
	keywords []string
}

// Ordered: the first matching rule wins.
var categoryRules = []categoryRule{
	{models.CategorySalary, []string{"工资", "薪水", "薪资", "salary", "paycheck", "wage"}},
	{models.CategoryInvestment, []string{"股票", "基金", "理财", "分红", "利息", "stock", "dividend", "interest", "invest"}},
	{models.CategoryHousing, []string{"房租", "水电", "物业", "房贷", "rent", "utilities", "mortgage", "electricity"}},
	{models.CategoryTransport, []string{"打车", "地铁", "公交", "出租", "加油", "高铁", "机票", "taxi", "uber", "bus", "subway", "metro", "train", "fuel", "gas", "flight"}},
	{models.CategoryFood, []string{"饭", "餐", "咖啡", "外卖", "菜", "奶茶", "lunch", "dinner", "breakfast", "coffee", "food", "grocer", "restaurant", "snack"}},
	{models.CategoryEntertainment, []string{"电影", "游戏", "演唱会", "ktv", "movie", "game", "concert", "netflix", "cinema"}},
	{models.CategoryShopping, []string{"买", "购物", "衣服", "鞋", "shopping", "clothes", "shoes", "amazon", "bought"}},
}

const maxDescriptionRunes = 64

func (r *Rules) ParseTransactionText(ctx context.Context, text string, lang i18n.Language) (Draft, bool) {
	text = strings.TrimSpace(text)
	if text == "" || ctx.Err() != nil {
		return Draft{}, false
	}

	match := amountRe.FindString(text)
	if match == "" {
		return Draft{}, false
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil || !models.ValidAmount(amount) {
		return Draft{}, false
	}

	lower := strings.ToLower(text)
	category := guessCategory(lower)
	typ := models.TransactionExpense
	if category == models.CategorySalary || containsAny(lower, incomeKeywords) {
		typ = models.TransactionIncome
	}

	return Draft{
		Amount:      amount,
		Type:        typ,
		Category:    category,
		Description: describe(text, match),
	}, true
}

func guessCategory(lower string) models.Category {
	for _, rule := range categoryRules {
		if containsAny(lower, rule.keywords) {
			return rule.category
		}
	}
	return models.CategoryOther
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// describe strips the amount and currency words and keeps a short label.
func describe(text, amount string) string {
	desc := strings.Replace(text, amount, "", 1)
	desc = currencyRe.ReplaceAllString(desc, "")
	desc = strings.Join(strings.Fields(desc), " ")
	desc = strings.Trim(desc, " ,.，。:：")
	if utf8.RuneCountInString(desc) > maxDescriptionRunes {
		desc = string([]rune(desc)[:maxDescriptionRunes])
	}
	return desc
}

func (r *Rules) BudgetAdvice(ctx context.Context, txs []models.Transaction, lang i18n.Language) string {
	msgs := i18n.For(lang)
	if ctx.Err() != nil {
		return msgs.AdviceFailed
	}

	totals := insights.IncomeExpenseTotals(txs)
	breakdown := insights.ExpenseByCategory(txs)
	if len(breakdown) == 0 {
		return msgs.AdviceEmpty
	}

	top := breakdown[0]
	for _, ct := range breakdown[1:] {
		if ct.Amount > top.Amount {
			top = ct
		}
	}
	label := i18n.CategoryLabel(lang, top.Category)
	amount := i18n.FormatMoney(lang, top.Amount)

	if lang == i18n.English {
		if totals.Balance < 0 {
			return fmt.Sprintf("Spending is ahead of income by %s. %s is your largest expense at %s.",
				i18n.FormatMoney(lang, -totals.Balance), label, amount)
		}
		return fmt.Sprintf("%s is your largest expense at %s. Keep an eye on it to stay on budget.", label, amount)
	}
	if totals.Balance < 0 {
		return fmt.Sprintf("支出已超过收入 %s。最大支出类别是%s，共 %s。",
			i18n.FormatMoney(lang, -totals.Balance), label, amount)
	}
	return fmt.Sprintf("最大支出类别是%s，共 %s。留意这一项，保持预算平衡。", label, amount)
}

func (r *Rules) PlanningTip(ctx context.Context, pending []string, lang i18n.Language) string {
	msgs := i18n.For(lang)
	if ctx.Err() != nil {
		return msgs.TipFailed
	}
	if len(pending) == 0 {
		return msgs.TipEmpty
	}

	first := pending[0]
	rest := len(pending) - 1
	if lang == i18n.English {
		if rest == 0 {
			return fmt.Sprintf("Start with %q and give it your full attention.", first)
		}
		return fmt.Sprintf("Start with %q, then work through the other %d one at a time.", first, rest)
	}
	if rest == 0 {
		return fmt.Sprintf("先专心完成「%s」。", first)
	}
	return fmt.Sprintf("先完成「%s」，再逐一处理其余 %d 项。", first, rest)
}
