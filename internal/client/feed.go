package client

import "github.com/AlexZinkM/wallet-txcore/market"

// PriceFeed asks the connected peer first and falls back to CoinGecko when
// the peer has no market endpoint or returns no rates.
func PriceFeed(peer *PeerClient, coingecko *CoinGeckoClient) market.Feed {
	return market.Fallback(peer, coingecko)
}
