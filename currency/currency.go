// Package currency converts base-asset amounts into display currencies and
// renders them for confirmation screens.
//
// Crypto currencies are rendered with their glyph and at most eight fractional
// digits. Fiat currencies go through CLDR data from golang.org/x/text, keyed
// by the caller's language tag.
package currency

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/AlexZinkM/wallet-txcore/market"
)

const (
	// CryptoPrecision is the maximum number of fractional digits shown for crypto amounts.
	CryptoPrecision = 8
	// ConversionPrecision is the number of decimals kept by Convert.
	ConversionPrecision = 5
)

// ErrPriceUnavailable is market.ErrPriceUnavailable, re-exported for callers
// that only deal with formatting.
var ErrPriceUnavailable = market.ErrPriceUnavailable

var (
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrInvalidAmount       = errors.New("invalid amount")
)

// cryptoGlyphs lists the crypto currencies rendered with a glyph instead of CLDR data.
var cryptoGlyphs = map[string]string{
	"btc": "Ƀ",
	"ark": "Ѧ",
	"eth": "Ξ",
	"sol": "◎",
}

// Context is everything a render needs. It is supplied per call and never mutated.
type Context struct {
	CurrencyCode string
	LanguageTag  string
	Prices       market.PriceTable
}

// IsCrypto reports whether code is rendered as a crypto currency.
func IsCrypto(code string) bool {
	_, ok := cryptoGlyphs[strings.ToLower(code)]
	return ok
}

// Glyph returns the display glyph of a crypto currency.
func Glyph(code string) (string, bool) {
	g, ok := cryptoGlyphs[strings.ToLower(code)]
	return g, ok
}

// Format renders amount in ctx's currency. A nil or zero amount renders as "0".
func Format(amount *decimal.Decimal, ctx Context) (string, error) {
	if amount == nil || amount.IsZero() {
		return "0", nil
	}

	if glyph, ok := Glyph(ctx.CurrencyCode); ok {
		return glyph + " " + formatCrypto(*amount), nil
	}
	return formatFiat(*amount, ctx)
}

// FormatFloat is Format for float inputs. NaN and infinities are rejected.
func FormatFloat(amount float64, ctx Context) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	d := decimal.NewFromFloat(amount)
	return Format(&d, ctx)
}

// formatCrypto rounds to CryptoPrecision only when the amount carries more
// fractional digits than that; shorter amounts keep their own precision.
func formatCrypto(amount decimal.Decimal) string {
	if -amount.Exponent() > CryptoPrecision {
		amount = amount.Round(CryptoPrecision)
	}
	return amount.String()
}

func formatFiat(amount decimal.Decimal, ctx Context) (string, error) {
	tag, err := ParseLanguage(ctx.LanguageTag)
	if err != nil {
		return "", err
	}

	unit, err := xcurrency.ParseISO(strings.ToUpper(strings.TrimSpace(ctx.CurrencyCode)))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, ctx.CurrencyCode)
	}

	p := message.NewPrinter(tag)
	symbol := p.Sprint(xcurrency.Symbol(unit))
	scale, _ := xcurrency.Standard.Rounding(unit)
	sep := separatorsOf(p)

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	whole, frac, _ := strings.Cut(amount.StringFixed(int32(scale)), ".")
	digits := groupDigits(whole, sep.group)
	if frac != "" {
		digits += sep.decimal + frac
	}

	place := placementOf(tag)
	space := ""
	if place.spaced {
		space = "\u00a0"
	}
	if place.suffix {
		return sign + digits + space + symbol, nil
	}
	return sign + symbol + space + digits, nil
}

type separators struct {
	group   string
	decimal string
}

// separatorsOf reads the locale's grouping and decimal separators from a
// rendered sample, falling back to "," and "." for non-Latin digits.
func separatorsOf(p *message.Printer) separators {
	fallback := separators{group: ",", decimal: "."}

	rest, ok := strings.CutPrefix(p.Sprint(number.Decimal(1234567.5, number.Scale(1))), "1")
	if !ok {
		return fallback
	}
	group, rest, ok := strings.Cut(rest, "234")
	if !ok {
		return fallback
	}
	_, rest, ok = strings.Cut(rest, "567")
	if !ok {
		return fallback
	}
	point, ok := strings.CutSuffix(rest, "5")
	if !ok || point == "" {
		return fallback
	}
	return separators{group: group, decimal: point}
}

func groupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// placement is where a locale writes the currency symbol.
type placement struct {
	suffix bool
	spaced bool
}

// placements follows the CLDR standard currency patterns. Locales not listed
// use the English "¤#,##0.00" form.
var placements = map[string]placement{
	"cs":    {suffix: true, spaced: true},
	"da":    {suffix: true, spaced: true},
	"de":    {suffix: true, spaced: true},
	"de-AT": {spaced: true},
	"de-CH": {spaced: true},
	"es":    {suffix: true, spaced: true},
	"fi":    {suffix: true, spaced: true},
	"fr":    {suffix: true, spaced: true},
	"it":    {suffix: true, spaced: true},
	"nb":    {suffix: true, spaced: true},
	"nl":    {spaced: true},
	"pl":    {suffix: true, spaced: true},
	"pt":    {spaced: true},
	"pt-PT": {suffix: true, spaced: true},
	"ru":    {suffix: true, spaced: true},
	"sv":    {suffix: true, spaced: true},
	"uk":    {suffix: true, spaced: true},
}

func placementOf(tag language.Tag) placement {
	for t := tag; ; t = t.Parent() {
		if p, ok := placements[t.String()]; ok {
			return p
		}
		if t.IsRoot() {
			return placement{}
		}
	}
}

// ParseLanguage accepts both "en_US" and "en-US" forms.
func ParseLanguage(raw string) (language.Tag, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), "_", "-")
	if raw == "" {
		return language.AmericanEnglish, nil
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, raw)
	}
	return tag, nil
}

// Convert prices amount in ctx's currency using ctx.Prices, rounded to
// ConversionPrecision decimals. A missing price is ErrPriceUnavailable.
func Convert(amount decimal.Decimal, ctx Context) (decimal.Decimal, error) {
	if amount.IsZero() {
		return decimal.Zero, nil
	}

	price, err := ctx.Prices.Price(ctx.CurrencyCode)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(price).Round(ConversionPrecision), nil
}

// FromBaseUnits turns an integer amount of the smallest unit into whole coins.
func FromBaseUnits(units uint64) decimal.Decimal {
	return decimal.NewFromUint64(units).Shift(-CryptoPrecision)
}

// ToBaseUnits turns whole coins into the smallest unit, rounding half away
// from zero. Negative amounts are rejected.
func ToBaseUnits(amount decimal.Decimal) (uint64, error) {
	if amount.IsNegative() {
		return 0, fmt.Errorf("negative amount %s", amount)
	}
	units := amount.Shift(CryptoPrecision).Round(0)
	if !units.BigInt().IsUint64() {
		return 0, fmt.Errorf("amount %s out of range", amount)
	}
	return units.BigInt().Uint64(), nil
}
