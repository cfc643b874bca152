package transaction

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AlexZinkM/wallet-txcore/currency"
)

// ComputeFee returns the fee for a draft of kind d. FIXED ignores userValue.
func ComputeFee(d Descriptor, mode FeeMode, userValue *uint64) (uint64, error) {
	switch mode {
	case FeeModeFixed:
		return d.StaticFee, nil
	case FeeModeAdvanced:
		if userValue == nil {
			return 0, ErrFeeRequired
		}
		return checkFee(d, *userValue)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// ComputeFiatFee converts an advanced fee entered in the display currency
// into base units at the context's price and checks it against d's bounds.
func ComputeFiatFee(d Descriptor, fiat decimal.Decimal, ctx currency.Context) (uint64, error) {
	if fiat.IsNegative() {
		return 0, &FeeError{Minimum: d.MinimumFee, Maximum: d.MaximumFee}
	}

	price, err := ctx.Prices.Price(ctx.CurrencyCode)
	if err != nil {
		return 0, err
	}

	decimals := d.FeeDecimals()
	units := fiat.DivRound(price, decimals+4).Shift(decimals).Round(0)
	if !units.BigInt().IsUint64() {
		return 0, fmt.Errorf("failed to convert fiat fee: %s out of range", units)
	}
	return checkFee(d, units.BigInt().Uint64())
}

func checkFee(d Descriptor, value uint64) (uint64, error) {
	if value < d.MinimumFee || value > d.MaximumFee {
		return 0, &FeeError{Value: value, Minimum: d.MinimumFee, Maximum: d.MaximumFee}
	}
	return value, nil
}
