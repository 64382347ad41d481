// Package format renders amounts, percentages and dates for a display locale.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/iwvelando/inflation-estimator/pkg/datetime"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// Locale describes how numbers are written for one display locale.
type Locale struct {
	Tag       language.Tag
	Symbol    string
	Thousands string
	Decimal   string
	// SymbolSpace separates the symbol from the digits ("$ 1.234,56").
	SymbolSpace bool
}

var locales = []Locale{
	{Tag: language.MustParse("es-AR"), Symbol: "$", Thousands: ".", Decimal: ",", SymbolSpace: true},
	{Tag: language.AmericanEnglish, Symbol: "$", Thousands: ",", Decimal: "."},
}

var matcher = language.NewMatcher(func() []language.Tag {
	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = l.Tag
	}
	return tags
}())

// DefaultLocale returns the es-AR locale.
func DefaultLocale() Locale {
	return locales[0]
}

// LookupLocale matches tag against the supported locales. The second return
// value is false, and the default locale returned, when tag is invalid or no
// supported locale is a reasonable match.
func LookupLocale(tag string) (Locale, bool) {
	if strings.TrimSpace(tag) == "" {
		return DefaultLocale(), false
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return DefaultLocale(), false
	}
	_, index, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return DefaultLocale(), false
	}
	return locales[index], true
}

// MustLocale returns the locale for tag, falling back to the default.
func MustLocale(tag string) Locale {
	l, _ := LookupLocale(tag)
	return l
}

// String returns the BCP 47 tag of the locale.
func (l Locale) String() string {
	return l.Tag.String()
}

// Language returns the base language subtag, e.g. "es".
func (l Locale) Language() string {
	base, _ := l.Tag.Base()
	return base.String()
}

// CurrencyCode returns the ISO 4217 code of the locale's region.
func (l Locale) CurrencyCode() string {
	unit, ok := currency.FromTag(l.Tag)
	if ok == language.No {
		return "ARS"
	}
	return unit.String()
}

// Currency returns a currency string with the locale's symbol and separators
// (e.g. "$ 1.234,56" for es-AR, "-$1,234.56" for en-US).
func (l Locale) Currency(amount float64) string {
	formatted := l.number(math.Abs(amount), 2)
	symbol := l.Symbol
	if l.SymbolSpace {
		symbol += " "
	}
	if amount < 0 {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func (l Locale) NumericCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	return sign + l.number(math.Abs(amount), 2)
}

// Percent renders value, already expressed in percent, with two decimals.
func (l Locale) Percent(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
	}
	return sign + l.number(math.Abs(value), 2) + "%"
}

// Date renders t in long form for the locale's language.
func (l Locale) Date(t time.Time) string {
	return datetime.FormatLongDate(t, l.Language())
}

// Months renders a whole number of months.
func (l Locale) Months(n int) string {
	if l.Language() == "es" {
		if n == 1 {
			return "1 mes"
		}
		return fmt.Sprintf("%d meses", n)
	}
	if n == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", n)
}

func (l Locale) number(value float64, decimals int) string {
	formatted := fmt.Sprintf("%.*f", decimals, value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := strings.Repeat("0", decimals)
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteString(l.Thousands)
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if decimals == 0 {
		return intPart
	}
	return intPart + l.Decimal + decPart
}
