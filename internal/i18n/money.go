package i18n

import (
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

func (l Language) Tag() language.Tag {
	if l == English {
		return language.AmericanEnglish
	}
	return language.SimplifiedChinese
}

// Currency is the display currency of the language's region.
func (l Language) Currency() currency.Unit {
	unit, conf := currency.FromTag(l.Tag())
	if conf == language.No {
		if l == English {
			return currency.USD
		}
		return currency.CNY
	}
	return unit
}

var symbols = map[currency.Unit]string{
	currency.CNY: "¥",
	currency.USD: "$",
}

// Symbol returns the narrow currency symbol, or the ISO code when unknown.
func Symbol(unit currency.Unit) string {
	if s, ok := symbols[unit]; ok {
		return s
	}
	return unit.String() + " "
}

// FormatMoney renders amount with the language's currency and two decimals,
// e.g. ¥15,000.00 or -$45.50.
func FormatMoney(lang Language, amount float64) string {
	return formatMoney(lang, amount, 2)
}

// FormatMoneyWhole renders amount rounded to whole units, as used on the
// budget card.
func FormatMoneyWhole(lang Language, amount float64) string {
	return formatMoney(lang, amount, 0)
}

func formatMoney(lang Language, amount float64, decimals int) string {
	if math.IsNaN(amount) {
		amount = 0
	}
	if math.IsInf(amount, 0) {
		if amount < 0 {
			return "-" + Symbol(lang.Currency()) + "∞"
		}
		return Symbol(lang.Currency()) + "∞"
	}
	sign := ""
	if amount < 0 && math.Abs(amount) >= 0.5*math.Pow10(-decimals) {
		sign = "-"
	}

	p := message.NewPrinter(lang.Tag())
	digits := p.Sprint(number.Decimal(math.Abs(amount),
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
	return sign + Symbol(lang.Currency()) + digits
}

// FormatPercent renders a usage percentage with no decimals.
func FormatPercent(lang Language, pct float64) string {
	p := message.NewPrinter(lang.Tag())
	return p.Sprint(number.Decimal(pct, number.MaxFractionDigits(0))) + "%"
}
