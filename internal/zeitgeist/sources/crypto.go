package sources

import (
	"context"
	"fmt"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// CryptoProvider reads spot prices and 24h changes from CoinGecko.
type CryptoProvider struct {
	endpoint
	baseURL string
}

func NewCryptoProvider(cfg HTTPClientConfig) *CryptoProvider {
	return &CryptoProvider{
		endpoint: newEndpoint("coingecko", cfg),
		baseURL:  "https://api.coingecko.com/api/v3/simple/price",
	}
}

func (p *CryptoProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceCrypto }

type coinQuote struct {
	USD    *float64 `json:"usd"`
	Change *float64 `json:"usd_24h_change"`
}

func (q coinQuote) coin() *zeitgeist.Coin {
	if q.USD == nil {
		return nil
	}
	return &zeitgeist.Coin{Price: *q.USD, Change24h: q.Change}
}

func (p *CryptoProvider) Fetch(ctx context.Context, _ zeitgeist.Daily) (zeitgeist.Result, error) {
	u := p.baseURL + "?ids=bitcoin,ethereum,dogecoin&vs_currencies=usd&include_24hr_change=true"

	var payload map[string]coinQuote
	if err := p.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}
	btc := payload["bitcoin"].coin()
	if btc == nil {
		return nil, fmt.Errorf("%w: missing bitcoin price", errMalformed)
	}
	eth := payload["ethereum"].coin()

	return zeitgeist.CryptoReading{
		Bitcoin:          *btc,
		Ethereum:         eth,
		Dogecoin:         payload["dogecoin"].coin(),
		OverallSentiment: CryptoSentiment(change(btc), change(eth)),
	}, nil
}

func change(c *zeitgeist.Coin) float64 {
	if c == nil || c.Change24h == nil {
		return 0
	}
	return *c.Change24h
}

// CryptoSentiment labels the average 24h change of bitcoin and ethereum.
func CryptoSentiment(btcChange, ethChange float64) string {
	avg := (btcChange + ethChange) / 2
	switch {
	case avg > 5:
		return "euphoric"
	case avg > 2:
		return "bullish"
	case avg > -2:
		return "neutral"
	case avg > -5:
		return "bearish"
	default:
		return "panicked"
	}
}
