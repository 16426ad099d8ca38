package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tfs2006/the-zeitgeist-pet/internal/logging"
	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

type AppConfig struct {
	Port        string        `mapstructure:"port" validate:"required,numeric"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout" validate:"gt=0"`

	// CacheTTL is how long a fetched bundle is served before refetching.
	CacheTTL time.Duration `mapstructure:"cache_ttl" validate:"gt=0"`
	// CacheWarmInterval refreshes the bundle in the background; 0 disables it.
	CacheWarmInterval time.Duration `mapstructure:"cache_warm_interval" validate:"gte=0"`

	InteractionResetInterval time.Duration `mapstructure:"interaction_reset_interval" validate:"gt=0"`
	InteractionAutoReset     bool          `mapstructure:"interaction_auto_reset"`
	InteractionStore         string        `mapstructure:"interaction_store" validate:"oneof=memory sqlite"`
	InteractionDBPath        string        `mapstructure:"interaction_db_path" validate:"required_if=InteractionStore sqlite"`

	NASAAPIKey  string `mapstructure:"nasa_api_key"`
	NewsFeedURL string `mapstructure:"news_feed_url" validate:"omitempty,url"`

	// Keyed weather stations join Open-Meteo only when their key is set.
	OpenWeatherAPIKey string `mapstructure:"openweather_api_key"`
	WeatherAPIKey     string `mapstructure:"weatherapi_api_key"`

	OutboundRate  float64 `mapstructure:"outbound_rate" validate:"gte=0"`
	OutboundBurst int     `mapstructure:"outbound_burst" validate:"gte=0"`

	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=text json logfmt"`
	Timezone  string `mapstructure:"timezone" validate:"required"`

	WeightWeather     float64 `mapstructure:"weight_weather" validate:"gte=0"`
	WeightCrypto      float64 `mapstructure:"weight_crypto" validate:"gte=0"`
	WeightNews        float64 `mapstructure:"weight_news" validate:"gte=0"`
	WeightEarthquakes float64 `mapstructure:"weight_earthquakes" validate:"gte=0"`
	WeightSolar       float64 `mapstructure:"weight_solar" validate:"gte=0"`
	WeightCosmic      float64 `mapstructure:"weight_cosmic" validate:"gte=0"`
	WeightMaturity    float64 `mapstructure:"weight_maturity" validate:"gte=0"`

	ComfortPerClick   float64 `mapstructure:"comfort_per_click" validate:"gte=0"`
	AgitatePerClick   float64 `mapstructure:"agitate_per_click" validate:"gte=0"`
	MaxComfortBonus   float64 `mapstructure:"max_comfort_bonus" validate:"gte=0"`
	MaxAgitateEffect  float64 `mapstructure:"max_agitate_effect" validate:"gte=0"`
	VolatileThreshold int64   `mapstructure:"volatile_threshold" validate:"gte=0"`
	ChaosThreshold    int64   `mapstructure:"chaos_threshold" validate:"gtefield=VolatileThreshold"`

	Location *time.Location `mapstructure:"-"`
}

// New returns a viper instance reading the environment (after an optional
// .env file) with every default set. Callers may bind flags before Load.
func New() *viper.Viper {
	if err := godotenv.Load(); err != nil {
		logging.Debug("no .env file loaded", "error", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	defaults := zeitgeist.DefaultScoringConfig()
	w, in := defaults.Weights, defaults.Influence

	v.SetDefault("port", "8080")
	v.SetDefault("http_timeout", "10s")
	v.SetDefault("cache_ttl", zeitgeist.DefaultCacheTTL.String())
	v.SetDefault("cache_warm_interval", "0s")
	v.SetDefault("interaction_reset_interval", "1h")
	v.SetDefault("interaction_auto_reset", true)
	v.SetDefault("interaction_store", "memory")
	v.SetDefault("interaction_db_path", "zeitgeist.db")
	v.SetDefault("nasa_api_key", "DEMO_KEY")
	v.SetDefault("openweather_api_key", "")
	v.SetDefault("weatherapi_api_key", "")
	v.SetDefault("news_feed_url", "")
	v.SetDefault("outbound_rate", 5.0)
	v.SetDefault("outbound_burst", 10)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("timezone", "UTC")

	v.SetDefault("weight_weather", w.Weather)
	v.SetDefault("weight_crypto", w.Crypto)
	v.SetDefault("weight_news", w.News)
	v.SetDefault("weight_earthquakes", w.Earthquakes)
	v.SetDefault("weight_solar", w.Solar)
	v.SetDefault("weight_cosmic", w.Cosmic)
	v.SetDefault("weight_maturity", w.Maturity)

	v.SetDefault("comfort_per_click", in.ComfortPerClick)
	v.SetDefault("agitate_per_click", in.AgitatePerClick)
	v.SetDefault("max_comfort_bonus", in.MaxComfortBonus)
	v.SetDefault("max_agitate_effect", in.MaxAgitateEffect)
	v.SetDefault("volatile_threshold", in.VolatileThreshold)
	v.SetDefault("chaos_threshold", in.ChaosThreshold)
	return v
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc
	return cfg, nil
}

// Scoring returns the weight table and influence settings.
func (c *AppConfig) Scoring() zeitgeist.ScoringConfig {
	return zeitgeist.ScoringConfig{
		Weights: zeitgeist.Weights{
			Weather:     c.WeightWeather,
			Crypto:      c.WeightCrypto,
			News:        c.WeightNews,
			Earthquakes: c.WeightEarthquakes,
			Solar:       c.WeightSolar,
			Cosmic:      c.WeightCosmic,
			Maturity:    c.WeightMaturity,
		},
		Influence: zeitgeist.InfluenceConfig{
			ComfortPerClick:   c.ComfortPerClick,
			AgitatePerClick:   c.AgitatePerClick,
			MaxComfortBonus:   c.MaxComfortBonus,
			MaxAgitateEffect:  c.MaxAgitateEffect,
			VolatileThreshold: c.VolatileThreshold,
			ChaosThreshold:    c.ChaosThreshold,
		},
	}
}

// Now returns the current time in the configured timezone.
func (c *AppConfig) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}
