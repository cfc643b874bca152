package transaction

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/wallet-txcore/currency"
	"github.com/AlexZinkM/wallet-txcore/market"
)

func u64(v uint64) *uint64 { return &v }

func TestComputeFee(t *testing.T) {
	t.Parallel()

	d := Descriptor{StaticFee: 500, MinimumFee: 100, MaximumFee: 1000}

	tests := []struct {
		name    string
		mode    FeeMode
		value   *uint64
		want    uint64
		wantErr error
	}{
		{"fixed ignores user value", FeeModeFixed, u64(5), 500, nil},
		{"fixed without value", FeeModeFixed, nil, 500, nil},
		{"advanced in range", FeeModeAdvanced, u64(250), 250, nil},
		{"advanced at minimum", FeeModeAdvanced, u64(100), 100, nil},
		{"advanced at maximum", FeeModeAdvanced, u64(1000), 1000, nil},
		{"advanced below minimum", FeeModeAdvanced, u64(99), 0, ErrFeeOutOfRange},
		{"advanced above maximum", FeeModeAdvanced, u64(1001), 0, ErrFeeOutOfRange},
		{"advanced without value", FeeModeAdvanced, nil, 0, ErrFeeRequired},
		{"unknown mode", FeeMode("DYNAMIC"), u64(1), 0, ErrUnknownMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFee(d, tt.mode, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ComputeFee(d, FeeModeAdvanced, u64(1))
	var fe *FeeError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, FeeError{Value: 1, Minimum: 100, Maximum: 1000}, *fe)
}

func TestComputeFiatFee(t *testing.T) {
	t.Parallel()

	d := Descriptor{StaticFee: 10000000, MinimumFee: 1, MaximumFee: 10000000}
	ctx := currency.Context{
		CurrencyCode: "usd",
		LanguageTag:  "en_US",
		Prices:       market.NewPriceTable(map[string]float64{"usd": 0.25}),
	}

	fee, err := ComputeFiatFee(d, decimal.RequireFromString("0.02"), ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(8000000), fee)

	_, err = ComputeFiatFee(d, decimal.RequireFromString("1"), ctx)
	assert.ErrorIs(t, err, ErrFeeOutOfRange)

	_, err = ComputeFiatFee(d, decimal.RequireFromString("0.02"), currency.Context{CurrencyCode: "eur", Prices: ctx.Prices})
	assert.ErrorIs(t, err, market.ErrPriceUnavailable)

	_, err = ComputeFiatFee(d, decimal.RequireFromString("-0.02"), ctx)
	assert.ErrorIs(t, err, ErrFeeOutOfRange)

	for _, rate := range []string{"0", "-1"} {
		zero := currency.Context{CurrencyCode: "usd", Prices: market.PriceTable{"usd": decimal.RequireFromString(rate)}}
		assert.NotPanics(t, func() {
			_, err = ComputeFiatFee(d, decimal.RequireFromString("0.02"), zero)
			assert.ErrorIs(t, err, market.ErrPriceUnavailable, "rate %s", rate)
		})
	}
}

func TestParseFeeMode(t *testing.T) {
	t.Parallel()

	m, err := ParseFeeMode("advanced")
	require.NoError(t, err)
	assert.True(t, m.IsAdvanced())

	m, err = ParseFeeMode("")
	require.NoError(t, err)
	assert.Equal(t, FeeModeFixed, m)

	_, err = ParseFeeMode("cheap")
	assert.Error(t, err)
}
