package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tfs2006/the-zeitgeist-pet/internal/config"
	"github.com/tfs2006/the-zeitgeist-pet/internal/metrics"
	"github.com/tfs2006/the-zeitgeist-pet/internal/store"
	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist/sources"
)

// app is the wired object graph shared by serve and scan.
type app struct {
	service *zeitgeist.Service
	metrics *metrics.Metrics
	close   func() error
}

func newApp(ctx context.Context, cfg *config.AppConfig) (*app, error) {
	registry, err := sources.NewRegistry(sources.Config{
		Client:        &http.Client{Timeout: cfg.HTTPTimeout},
		RatePerSecond: cfg.OutboundRate,
		Burst:         cfg.OutboundBurst,
		NASAAPIKey:    cfg.NASAAPIKey,
		WeatherKeys: sources.WeatherKeys{
			OpenWeather: cfg.OpenWeatherAPIKey,
			WeatherAPI:  cfg.WeatherAPIKey,
		},
		FeedURL:       cfg.NewsFeedURL,
	})
	if err != nil {
		return nil, fmt.Errorf("build source registry: %w", err)
	}

	interactions, closeStore, err := openInteractions(ctx, cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.MustNewMetrics(prometheus.NewRegistry())
	svc := zeitgeist.NewService(
		zeitgeist.NewFetcher(registry, m),
		zeitgeist.NewScorer(cfg.Scoring(), nil),
		interactions,
		zeitgeist.Options{CacheTTL: cfg.CacheTTL, Clock: cfg.Now, Observer: m},
	)
	return &app{service: svc, metrics: m, close: closeStore}, nil
}

func openInteractions(ctx context.Context, cfg *config.AppConfig) (zeitgeist.InteractionStore, func() error, error) {
	switch cfg.InteractionStore {
	case "sqlite":
		s, err := store.OpenSQLite(ctx, cfg.InteractionDBPath, cfg.Now())
		if err != nil {
			return nil, nil, fmt.Errorf("open interaction store: %w", err)
		}
		return s, s.Close, nil
	default:
		return store.NewMemoryStore(cfg.Now()), func() error { return nil }, nil
	}
}
