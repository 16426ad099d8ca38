package sources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// openWeatherStation reads current conditions from OpenWeatherMap.
type openWeatherStation struct {
	endpoint
	apiKey  string
	baseURL string
}

func newOpenWeatherStation(cfg HTTPClientConfig, apiKey string) *openWeatherStation {
	return &openWeatherStation{
		endpoint: newEndpoint("openweather", cfg),
		apiKey:   apiKey,
		baseURL:  "https://api.openweathermap.org/data/2.5/weather",
	}
}

func (s *openWeatherStation) current(ctx context.Context, city zeitgeist.City) (StationReading, error) {
	values := url.Values{}
	values.Set("appid", s.apiKey)
	values.Set("units", "metric")
	values.Set("lat", fmt.Sprintf("%f", city.Lat))
	values.Set("lon", fmt.Sprintf("%f", city.Lon))

	var payload struct {
		Dt   int64 `json:"dt"`
		Main *struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Sys struct {
			Sunrise int64 `json:"sunrise"`
			Sunset  int64 `json:"sunset"`
		} `json:"sys"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	}
	if err := s.getJSON(ctx, s.baseURL+"?"+values.Encode(), &payload); err != nil {
		return StationReading{}, err
	}
	if payload.Main == nil {
		return StationReading{}, fmt.Errorf("%w: missing main", errMalformed)
	}

	cond := ""
	if len(payload.Weather) > 0 {
		cond = payload.Weather[0].Main
	}
	return StationReading{
		Temperature: payload.Main.Temp,
		// metric units report wind in m/s
		WindSpeed: payload.Wind.Speed * 3.6,
		IsDay:     payload.Dt >= payload.Sys.Sunrise && payload.Dt < payload.Sys.Sunset,
		Mood:      openWeatherMood(cond),
	}, nil
}

// openWeatherMood maps the OpenWeatherMap condition group. Clouds count as
// sunny, like WMO codes 1 to 3.
func openWeatherMood(main string) zeitgeist.WeatherMood {
	switch main {
	case "Clear", "Clouds":
		return zeitgeist.WeatherSunny
	case "Mist", "Fog", "Haze", "Smoke", "Dust", "Sand":
		return zeitgeist.WeatherFoggy
	case "Rain", "Drizzle":
		return zeitgeist.WeatherRainy
	case "Snow":
		return zeitgeist.WeatherSnowy
	case "Thunderstorm", "Squall", "Tornado":
		return zeitgeist.WeatherStormy
	default:
		return zeitgeist.WeatherNeutral
	}
}
