package currency

import (
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/wallet-txcore/market"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestFormat_ZeroAndAbsent(t *testing.T) {
	t.Parallel()

	contexts := []Context{
		{CurrencyCode: "btc", LanguageTag: "en_US"},
		{CurrencyCode: "usd", LanguageTag: "en_US"},
		{CurrencyCode: "eur", LanguageTag: "de_DE"},
		{CurrencyCode: "ark", LanguageTag: "fr_FR"},
	}

	for _, ctx := range contexts {
		out, err := Format(nil, ctx)
		require.NoError(t, err)
		assert.Equal(t, "0", out, "absent amount in %s", ctx.CurrencyCode)

		out, err = Format(dec("0"), ctx)
		require.NoError(t, err)
		assert.Equal(t, "0", out, "zero amount in %s", ctx.CurrencyCode)

		out, err = FormatFloat(0, ctx)
		require.NoError(t, err)
		assert.Equal(t, "0", out)
	}
}

func TestFormat_Crypto(t *testing.T) {
	t.Parallel()

	ctx := Context{CurrencyCode: "btc", LanguageTag: "en_US"}

	tests := []struct {
		name   string
		amount *decimal.Decimal
		want   string
	}{
		{"rounds beyond eight digits", dec("1.123456789"), "Ƀ 1.12345679"},
		{"keeps short precision", dec("1.1"), "Ƀ 1.1"},
		{"keeps exactly eight digits", dec("0.12345678"), "Ƀ 0.12345678"},
		{"trims trailing zeros", dec("2.50"), "Ƀ 2.5"},
		{"whole amount", dec("3"), "Ƀ 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Format(tt.amount, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	out, err := FormatFloat(1.123456789, ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ƀ 1.12345679", out)

	out, err = Format(dec("1.5"), Context{CurrencyCode: "ARK"})
	require.NoError(t, err)
	assert.Equal(t, "Ѧ 1.5", out)
}

func TestFormat_Fiat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount string
		ctx    Context
		want   string
	}{
		{"en prefix", "1234.5", Context{CurrencyCode: "usd", LanguageTag: "en_US"}, "$1,234.50"},
		{"de suffix", "1234.5", Context{CurrencyCode: "EUR", LanguageTag: "de_DE"}, "1.234,50\u00a0€"},
		{"de-AT prefix", "1234.5", Context{CurrencyCode: "EUR", LanguageTag: "de_AT"}, "€\u00a01.234,50"},
		{"negative", "-3", Context{CurrencyCode: "usd", LanguageTag: "en-US"}, "-$3.00"},
		{"negative suffix", "-3", Context{CurrencyCode: "eur", LanguageTag: "de"}, "-3,00\u00a0€"},
		{"beyond float precision", "12345678901234567.89", Context{CurrencyCode: "usd", LanguageTag: "en_US"}, "$12,345,678,901,234,567.89"},
		{"rounds to currency scale", "0.005", Context{CurrencyCode: "usd", LanguageTag: "en_US"}, "$0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := Format(dec(tt.amount), tt.ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	out, err := Format(dec("1234.5"), Context{CurrencyCode: "eur", LanguageTag: "fr_FR"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "234,50\u00a0€"), out)
	assert.False(t, strings.HasPrefix(out, "€"), out)

	out, err = Format(dec("1234"), Context{CurrencyCode: "jpy", LanguageTag: "en_US"})
	require.NoError(t, err)
	assert.NotContains(t, out, ".")
	assert.Contains(t, out, "1,234")
}

func TestFormatFloat_NonFinite(t *testing.T) {
	t.Parallel()

	ctx := Context{CurrencyCode: "usd", LanguageTag: "en_US"}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.NotPanics(t, func() {
			_, err := FormatFloat(v, ctx)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestFormat_FiatSupportedPairsNeverFail(t *testing.T) {
	t.Parallel()

	languages := []string{"en_US", "en_GB", "de_DE", "fr_FR", "ja_JP", "pt_BR", "nl", "it_IT"}
	codes := []string{"usd", "eur", "gbp", "jpy", "aud", "chf"}

	for _, lang := range languages {
		for _, code := range codes {
			out, err := Format(dec("42.42"), Context{CurrencyCode: code, LanguageTag: lang})
			require.NoError(t, err, "%s/%s", lang, code)
			assert.NotEmpty(t, out)
		}
	}

	symbols := []struct{ lang, code, iso, symbol string }{
		{"en_US", "usd", "USD", "$"},
		{"en_GB", "gbp", "GBP", "£"},
		{"de_DE", "eur", "EUR", "€"},
		{"fr_FR", "eur", "EUR", "€"},
		{"nl", "eur", "EUR", "€"},
	}
	for _, s := range symbols {
		out, err := Format(dec("42.42"), Context{CurrencyCode: s.code, LanguageTag: s.lang})
		require.NoError(t, err)
		assert.Contains(t, out, s.symbol, "%s/%s", s.lang, s.code)
		assert.NotContains(t, out, s.iso, "%s/%s", s.lang, s.code)
	}
}

func TestFormat_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := Format(dec("1"), Context{CurrencyCode: "zzz", LanguageTag: "en_US"})
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)

	_, err = Format(dec("1"), Context{CurrencyCode: "usd", LanguageTag: "not a tag!"})
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestParseLanguage(t *testing.T) {
	t.Parallel()

	tag, err := ParseLanguage("en_US")
	require.NoError(t, err)
	assert.Equal(t, "en-US", tag.String())

	tag, err = ParseLanguage("")
	require.NoError(t, err)
	assert.Equal(t, "en-US", tag.String())
}

func TestConvert(t *testing.T) {
	t.Parallel()

	ctx := Context{
		CurrencyCode: "USD",
		Prices:       market.NewPriceTable(map[string]float64{"usd": 0.2345678}),
	}

	got, err := Convert(decimal.RequireFromString("3"), ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.70370", got.StringFixed(5))
	assert.True(t, got.Equal(decimal.RequireFromString("0.7037")))

	got, err = Convert(decimal.Zero, ctx)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = Convert(decimal.RequireFromString("3"), Context{CurrencyCode: "gbp", Prices: ctx.Prices})
	assert.ErrorIs(t, err, ErrPriceUnavailable)

	_, err = Convert(decimal.RequireFromString("3"), Context{CurrencyCode: "usd"})
	assert.ErrorIs(t, err, ErrPriceUnavailable)
}

func TestBaseUnits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.1", FromBaseUnits(10000000).String())
	assert.Equal(t, "50", FromBaseUnits(5000000000).String())

	units, err := ToBaseUnits(decimal.RequireFromString("0.123456785"))
	require.NoError(t, err)
	assert.Equal(t, uint64(12345679), units)

	_, err = ToBaseUnits(decimal.RequireFromString("-1"))
	assert.Error(t, err)
}
