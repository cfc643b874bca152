package market

import (
	"context"
	"errors"
	"strings"
)

// Fallback returns a feed that asks each feed in order and returns the first
// non-empty table.
func Fallback(feeds ...Feed) Feed {
	return fallbackFeed(feeds)
}

type fallbackFeed []Feed

func (f fallbackFeed) Name() string {
	names := make([]string, len(f))
	for i, feed := range f {
		names[i] = feed.Name()
	}
	return strings.Join(names, "|")
}

func (f fallbackFeed) FetchPrices(ctx context.Context) (PriceTable, error) {
	var errs []error
	for _, feed := range f {
		prices, err := feed.FetchPrices(ctx)
		if err == nil && len(prices) > 0 {
			return prices, nil
		}
		if err == nil {
			err = errors.New(feed.Name() + ": no prices")
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, errors.Join(errs...)
}
