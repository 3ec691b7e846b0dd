package i18n

import (
	"math"
	"strings"
	"testing"

	"golang.org/x/text/currency"

	"github.com/julianstephens/norton/internal/models"
)

func TestParseLanguage(t *testing.T) {
	tests := map[string]Language{
		"":      Chinese,
		"zh":    Chinese,
		"ZH-CN": Chinese,
		"en":    English,
		" En ":  English,
	}
	for in, want := range tests {
		got, err := ParseLanguage(in)
		if err != nil || got != want {
			t.Errorf("ParseLanguage(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseLanguage("fr"); err != ErrUnknownLanguage {
		t.Errorf("ParseLanguage(fr) error = %v", err)
	}
}

func TestLabelsFallBackToKey(t *testing.T) {
	if got := CategoryLabel(Chinese, models.CategoryFood); got != "餐饮" {
		t.Errorf("zh Food = %q", got)
	}
	if got := CategoryLabel(English, models.CategoryEntertainment); got != "Fun" {
		t.Errorf("en Entertainment = %q", got)
	}
	if got := CategoryLabel(English, "Pets"); got != "Pets" {
		t.Errorf("unknown category = %q, want literal key", got)
	}
	if got := PriorityLabel(Chinese, models.PriorityHigh); got != "重要" {
		t.Errorf("zh high = %q", got)
	}
	if got := PriorityLabel(English, "someday"); got != "someday" {
		t.Errorf("unknown priority = %q, want literal key", got)
	}
	if got := TaskCategoryLabel(English, ""); got != "Other" {
		t.Errorf("unset task category = %q, want Other", got)
	}
	if got := TypeLabel(Chinese, models.TransactionIncome); got != "收入" {
		t.Errorf("zh income = %q", got)
	}
}

func TestEveryKnownKeyHasALabel(t *testing.T) {
	for _, lang := range []Language{Chinese, English} {
		m := For(lang)
		for _, c := range models.Categories {
			if m.Categories[c] == "" {
				t.Errorf("%s: missing label for %s", lang, c)
			}
		}
		for _, p := range models.Priorities {
			if m.Priorities[p] == "" {
				t.Errorf("%s: missing label for %s", lang, p)
			}
		}
		for _, c := range models.TaskCategories {
			if m.TaskCategories[c] == "" {
				t.Errorf("%s: missing label for %s", lang, c)
			}
		}
	}
}

func TestForUnknownLanguageUsesDefault(t *testing.T) {
	if For(Language("xx")) != For(DefaultLanguage) {
		t.Error("unknown language should use default messages")
	}
}

func TestCurrency(t *testing.T) {
	if Chinese.Currency() != currency.CNY {
		t.Errorf("zh currency = %v", Chinese.Currency())
	}
	if English.Currency() != currency.USD {
		t.Errorf("en currency = %v", English.Currency())
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		lang   Language
		amount float64
		prefix string
		suffix string
	}{
		{English, 45.5, "$", "45.50"},
		{English, -12, "-$", "12.00"},
		{Chinese, 15000, "¥", "000.00"},
		{English, 0, "$", "0.00"},
		{English, math.Inf(1), "$", "∞"},
		{Chinese, math.Inf(-1), "-¥", "∞"},
	}

	for _, tt := range tests {
		got := FormatMoney(tt.lang, tt.amount)
		if !strings.HasPrefix(got, tt.prefix) || !strings.HasSuffix(got, tt.suffix) {
			t.Errorf("FormatMoney(%s, %v) = %q", tt.lang, tt.amount, got)
		}
	}

	if got := FormatMoneyWhole(Chinese, 320.4); got != "¥320" {
		t.Errorf("FormatMoneyWhole = %q, want ¥320", got)
	}
	if got := FormatMoneyWhole(English, -0.2); strings.HasPrefix(got, "-") {
		t.Errorf("rounded zero should not carry a sign: %q", got)
	}
}
