// Package market holds the price view of the connected peer.
//
// An Oracle keeps the latest PriceTable snapshot. A Refresher replaces that
// snapshot from a Feed on its own cadence; readers never cache a price across
// calls and always see whatever snapshot is current when they ask.
package market

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// ErrPriceUnavailable is returned when the price table has no entry for a currency.
// It is recoverable: callers show a placeholder instead of aborting.
var ErrPriceUnavailable = errors.New("price unavailable")

// PriceTable maps a lowercase currency code to the price of one base-asset unit.
type PriceTable map[string]decimal.Decimal

// NewPriceTable builds a table from raw rates, normalizing codes to lowercase.
// Non-positive rates are dropped.
func NewPriceTable(rates map[string]float64) PriceTable {
	table := make(PriceTable, len(rates))
	for code, rate := range rates {
		if rate <= 0 {
			continue
		}
		table[normalize(code)] = decimal.NewFromFloat(rate)
	}
	return table
}

// Price returns the rate for code. The lookup is case-insensitive and a
// non-positive rate counts as missing.
func (t PriceTable) Price(code string) (decimal.Decimal, error) {
	price, ok := t[normalize(code)]
	if !ok || !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrPriceUnavailable, normalize(code))
	}
	return price, nil
}

// Currencies returns the sorted list of codes present in the table.
func (t PriceTable) Currencies() []string {
	return slices.Sorted(maps.Keys(t))
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// Snapshot is an immutable price table with the time it was taken.
type Snapshot struct {
	Prices    PriceTable
	Source    string
	UpdatedAt time.Time
}

// Oracle is a read-only view over the latest snapshot.
type Oracle struct {
	current atomic.Pointer[Snapshot]
}

// NewOracle creates an oracle with an empty snapshot.
func NewOracle() *Oracle {
	o := &Oracle{}
	o.current.Store(&Snapshot{Prices: PriceTable{}})
	return o
}

// Update replaces the current snapshot. The table is copied so later
// mutations by the caller do not leak into readers.
func (o *Oracle) Update(source string, prices PriceTable, at time.Time) {
	o.current.Store(&Snapshot{
		Prices:    maps.Clone(prices),
		Source:    source,
		UpdatedAt: at,
	})
}

// Snapshot returns the current snapshot.
func (o *Oracle) Snapshot() Snapshot {
	return *o.current.Load()
}

// Prices returns the current price table.
func (o *Oracle) Prices() PriceTable {
	return o.current.Load().Prices
}

// Price returns the current rate for code.
func (o *Oracle) Price(code string) (decimal.Decimal, error) {
	return o.Prices().Price(code)
}
