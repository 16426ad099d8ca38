package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tfs2006/the-zeitgeist-pet/internal/common"
	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// weatherAPIStation reads current conditions from WeatherAPI.com.
type weatherAPIStation struct {
	endpoint
	apiKey  string
	baseURL string
}

func newWeatherAPIStation(cfg HTTPClientConfig, apiKey string) *weatherAPIStation {
	return &weatherAPIStation{
		endpoint: newEndpoint("weatherapi", cfg),
		apiKey:   apiKey,
		baseURL:  "https://api.weatherapi.com/v1/current.json",
	}
}

func (s *weatherAPIStation) current(ctx context.Context, city zeitgeist.City) (StationReading, error) {
	values := url.Values{}
	values.Set("key", s.apiKey)
	// WeatherAPI takes "lat,lon" in q.
	values.Set("q", fmt.Sprintf("%f,%f", city.Lat, city.Lon))

	var payload struct {
		Current *struct {
			TempC     float64 `json:"temp_c"`
			WindKph   float64 `json:"wind_kph"`
			IsDay     int     `json:"is_day"`
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}
	if err := s.getJSON(ctx, s.baseURL+"?"+values.Encode(), &payload); err != nil {
		return StationReading{}, err
	}
	if payload.Current == nil {
		return StationReading{}, fmt.Errorf("%w: missing current", errMalformed)
	}

	c := payload.Current
	return StationReading{
		Temperature: c.TempC,
		WindSpeed:   c.WindKph,
		IsDay:       c.IsDay == 1,
		Mood:        weatherAPIMood(c.Condition.Text),
	}, nil
}

// weatherAPIMood maps WeatherAPI's free-text condition. Thunder wins over
// rain, so "Patchy light rain with thunder" is stormy.
func weatherAPIMood(text string) zeitgeist.WeatherMood {
	t := strings.ToLower(text)
	switch {
	case t == "":
		return zeitgeist.WeatherNeutral
	case common.HasAny(t, "thunder", "storm"):
		return zeitgeist.WeatherStormy
	case common.HasAny(t, "snow", "sleet", "blizzard", "ice"):
		return zeitgeist.WeatherSnowy
	case common.HasAny(t, "rain", "shower", "drizzle"):
		return zeitgeist.WeatherRainy
	case common.HasAny(t, "fog", "mist"):
		return zeitgeist.WeatherFoggy
	case common.HasAny(t, "sunny", "clear", "cloud", "overcast"):
		return zeitgeist.WeatherSunny
	default:
		return zeitgeist.WeatherNeutral
	}
}
