package sources

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// Per-source timeouts that differ from zeitgeist.DefaultTimeout.
const (
	NewsTimeout   = 6 * time.Second
	QuoteTimeout  = 3 * time.Second
	NumberTimeout = 2 * time.Second
)

// Config wires the production adapters.
type Config struct {
	Client *http.Client
	// RatePerSecond and Burst bound outbound requests per provider. A zero
	// rate disables limiting.
	RatePerSecond float64
	Burst         int
	MaxBody       int64

	NASAAPIKey  string
	WeatherKeys WeatherKeys
	FeedURL     string
	Rand       zeitgeist.Rand
}

func (c Config) httpConfig() HTTPClientConfig {
	hc := HTTPClientConfig{Client: c.Client, MaxBody: c.MaxBody}
	if c.RatePerSecond > 0 {
		burst := c.Burst
		if burst <= 0 {
			burst = 1
		}
		hc.Limiter = rate.NewLimiter(rate.Limit(c.RatePerSecond), burst)
	}
	return hc
}

// Defaults returns every production source with its timeout and fallback.
func Defaults(cfg Config) []zeitgeist.Source {
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.Rand == nil {
		cfg.Rand = zeitgeist.GlobalRand()
	}

	zero := 0.0
	return []zeitgeist.Source{
		{
			Provider: NewWeatherProvider(cfg.httpConfig(), cfg.WeatherKeys),
			Fallback: func(d zeitgeist.Daily) zeitgeist.Result {
				return zeitgeist.WeatherReading{City: d.City.Name, Temperature: 20, IsDay: true, Mood: zeitgeist.WeatherNeutral}
			},
		},
		{
			Provider: NewCryptoProvider(cfg.httpConfig()),
			Fallback: zeitgeist.Static(zeitgeist.CryptoReading{
				Bitcoin:          zeitgeist.Coin{Change24h: &zero},
				OverallSentiment: "neutral",
			}),
		},
		{
			Provider: NewNewsProvider(cfg.httpConfig()),
			Timeout:  NewsTimeout,
			Fallback: zeitgeist.Static(zeitgeist.NewsReading{
				Provider:     "offline",
				TopStories:   []zeitgeist.Story{},
				AnxietyLevel: 50,
				Keywords:     []string{},
			}),
		},
		{Provider: NewNASAProvider(cfg.httpConfig(), cfg.NASAAPIKey)},
		{Provider: NewSunProvider(cfg.httpConfig())},
		{Provider: NewQuakeProvider(cfg.httpConfig())},
		{Provider: NewJokeProvider(cfg.httpConfig())},
		{
			Provider: NewQuoteProvider(cfg.httpConfig()),
			Timeout:  QuoteTimeout,
			Fallback: func(d zeitgeist.Daily) zeitgeist.Result { return d.Quote },
		},
		{
			Provider: NewAdviceProvider(cfg.httpConfig()),
			Fallback: zeitgeist.Static(zeitgeist.AdviceReading{Advice: "Trust the process."}),
		},
		{
			Provider: NewWordProvider(cfg.httpConfig()),
			Fallback: zeitgeist.Static(zeitgeist.WordReading{Word: "mysterious", Definition: "full of mystery"}),
		},
		{
			Provider: NewNumberProvider(cfg.httpConfig()),
			Timeout:  NumberTimeout,
			Fallback: func(d zeitgeist.Daily) zeitgeist.Result { return LocalNumberFact(d.LuckyNumber) },
		},
		{Provider: NewPokemonProvider(cfg.httpConfig(), cfg.Rand)},
		{
			Provider: NewBookProvider(cfg.httpConfig(), cfg.Rand),
			Fallback: func(d zeitgeist.Daily) zeitgeist.Result {
				return zeitgeist.BookReading{
					Title:   "The Hitchhiker's Guide to the Galaxy",
					Author:  "Douglas Adams",
					Subject: d.BookSubject,
				}
			},
		},
		{
			Provider: NewCocktailProvider(cfg.httpConfig()),
			Fallback: zeitgeist.Static(zeitgeist.CocktailReading{
				Name:         "Water",
				Category:     "Essential",
				Glass:        "Any glass",
				Instructions: "Pour. Drink. Hydrate.",
			}),
		},
		{Provider: NewWaybackProvider(cfg.httpConfig())},
		{
			Provider: NewAgeProvider(cfg.httpConfig()),
			Fallback: func(d zeitgeist.Daily) zeitgeist.Result {
				return zeitgeist.AgeReading{Name: d.AgeName, PredictedAge: 25, MaturityLevel: zeitgeist.MaturityEternal}
			},
		},
		{Provider: NewHeadlinesProvider(cfg.httpConfig(), cfg.FeedURL)},
	}
}

// NewRegistry validates Defaults(cfg) into a registry.
func NewRegistry(cfg Config) (*zeitgeist.Registry, error) {
	return zeitgeist.NewRegistry(Defaults(cfg)...)
}
