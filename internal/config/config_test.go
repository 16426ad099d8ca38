package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, time.Duration(0), cfg.CacheWarmInterval)
	assert.Equal(t, time.Hour, cfg.InteractionResetInterval)
	assert.True(t, cfg.InteractionAutoReset)
	assert.Equal(t, "memory", cfg.InteractionStore)
	assert.Equal(t, "DEMO_KEY", cfg.NASAAPIKey)
	assert.Empty(t, cfg.OpenWeatherAPIKey)
	assert.Empty(t, cfg.WeatherAPIKey)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, zeitgeist.DefaultScoringConfig(), cfg.Scoring())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("INTERACTION_STORE", "sqlite")
	t.Setenv("INTERACTION_AUTO_RESET", "false")
	t.Setenv("WEIGHT_CRYPTO", "0")
	t.Setenv("CHAOS_THRESHOLD", "500")
	t.Setenv("TIMEZONE", "Europe/Paris")
	t.Setenv("OPENWEATHER_API_KEY", "ow-key")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "sqlite", cfg.InteractionStore)
	assert.False(t, cfg.InteractionAutoReset)
	assert.Equal(t, 0.0, cfg.Scoring().Weights.Crypto)
	assert.Equal(t, int64(500), cfg.Scoring().Influence.ChaosThreshold)
	assert.Equal(t, "Europe/Paris", cfg.Location.String())
	assert.Equal(t, "ow-key", cfg.OpenWeatherAPIKey)
	assert.Empty(t, cfg.WeatherAPIKey)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":              "http",
		"CACHE_TTL":         "soon",
		"INTERACTION_STORE": "redis",
		"LOG_LEVEL":         "loud",
		"NEWS_FEED_URL":     "not a url",
		"WEIGHT_NEWS":       "-1",
		"CHAOS_THRESHOLD":   "10",
		"TIMEZONE":          "Mars/Olympus_Mons",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load(New())
			assert.Error(t, err)
		})
	}
}
