package sources

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/tfs2006/the-zeitgeist-pet/internal/logging"
	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// WeatherKeys enables the keyed weather stations. An empty key leaves its
// station out; Open-Meteo needs no key and is always queried.
type WeatherKeys struct {
	OpenWeather string
	WeatherAPI  string
}

// StationReading is one station's view of the daily city's sky.
type StationReading struct {
	Station     string
	Temperature float64
	WindSpeed   float64 // km/h
	WeatherCode *int    // WMO code, Open-Meteo only
	IsDay       bool
	Mood        zeitgeist.WeatherMood
}

// WeatherProvider queries every configured station concurrently and folds
// the readings that arrive into one WeatherReading.
type WeatherProvider struct {
	endpoint
	baseURL string

	openWeather *openWeatherStation
	weatherAPI  *weatherAPIStation
}

func NewWeatherProvider(cfg HTTPClientConfig, keys WeatherKeys) *WeatherProvider {
	p := &WeatherProvider{
		endpoint: newEndpoint("openmeteo", cfg),
		baseURL:  "https://api.open-meteo.com/v1/forecast",
	}
	if keys.OpenWeather != "" {
		p.openWeather = newOpenWeatherStation(cfg, keys.OpenWeather)
	}
	if keys.WeatherAPI != "" {
		p.weatherAPI = newWeatherAPIStation(cfg, keys.WeatherAPI)
	}
	return p
}

func (p *WeatherProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceWeather }

type stationFunc struct {
	name    string
	current func(ctx context.Context, city zeitgeist.City) (StationReading, error)
}

func (p *WeatherProvider) stations() []stationFunc {
	out := []stationFunc{{name: "openmeteo", current: p.openMeteo}}
	if p.openWeather != nil {
		out = append(out, stationFunc{name: "openweathermap", current: p.openWeather.current})
	}
	if p.weatherAPI != nil {
		out = append(out, stationFunc{name: "weatherapi", current: p.weatherAPI.current})
	}
	return out
}

func (p *WeatherProvider) Fetch(ctx context.Context, daily zeitgeist.Daily) (zeitgeist.Result, error) {
	stations := p.stations()
	readings := make([]*StationReading, len(stations))
	errs := make([]error, len(stations))

	var wg sync.WaitGroup
	for i, st := range stations {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := st.current(ctx, daily.City)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", st.name, err)
				return
			}
			r.Station = st.name
			readings[i] = &r
		}()
	}
	wg.Wait()

	var ok []StationReading
	for _, r := range readings {
		if r == nil {
			continue
		}
		ok = append(ok, *r)
	}
	if len(ok) == 0 {
		return nil, errors.Join(errs...)
	}
	if len(ok) < len(stations) {
		logging.Warn("weather station failed", "error", errors.Join(errs...), "reporting", len(ok), "configured", len(stations))
	}

	r := FoldWeather(ok)
	r.City = daily.City.Name
	return r, nil
}

// FoldWeather averages temperature and wind across readings and takes the
// majority mood. Ties go to the station listed first; neutral only wins when
// no station reported anything else. readings must not be empty.
func FoldWeather(readings []StationReading) zeitgeist.WeatherReading {
	var sumTemp, sumWind float64
	counts := make(map[zeitgeist.WeatherMood]int, len(readings))
	order := make([]zeitgeist.WeatherMood, 0, len(readings))
	names := make([]string, 0, len(readings))

	for _, r := range readings {
		sumTemp += r.Temperature
		sumWind += r.WindSpeed
		if counts[r.Mood] == 0 {
			order = append(order, r.Mood)
		}
		counts[r.Mood]++
		names = append(names, r.Station)
	}

	// Pick majority mood.
	best := zeitgeist.WeatherNeutral
	bestCount := 0
	for _, m := range order {
		if m == zeitgeist.WeatherNeutral {
			continue
		}
		if counts[m] > bestCount {
			best, bestCount = m, counts[m]
		}
	}

	n := float64(len(readings))
	out := zeitgeist.WeatherReading{
		Temperature: sumTemp / n,
		WindSpeed:   sumWind / n,
		IsDay:       readings[0].IsDay,
		Mood:        best,
		Stations:    names,
	}
	for _, r := range readings {
		if r.WeatherCode != nil {
			out.WeatherCode = *r.WeatherCode
			break
		}
	}
	return out
}

func (p *WeatherProvider) openMeteo(ctx context.Context, city zeitgeist.City) (StationReading, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", city.Lat))
	values.Set("longitude", fmt.Sprintf("%f", city.Lon))
	values.Set("current_weather", "true")

	var payload struct {
		CurrentWeather *struct {
			Temperature float64 `json:"temperature"`
			WindSpeed   float64 `json:"windspeed"`
			WeatherCode int     `json:"weathercode"`
			IsDay       int     `json:"is_day"`
		} `json:"current_weather"`
	}
	if err := p.getJSON(ctx, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return StationReading{}, err
	}
	cw := payload.CurrentWeather
	if cw == nil {
		return StationReading{}, fmt.Errorf("%w: missing current_weather", errMalformed)
	}

	code := cw.WeatherCode
	return StationReading{
		Temperature: cw.Temperature,
		WindSpeed:   cw.WindSpeed,
		WeatherCode: &code,
		IsDay:       cw.IsDay == 1,
		Mood:        WeatherMood(cw.WeatherCode),
	}, nil
}

// WeatherMood maps a WMO weather code onto the entity's weather mood.
// Code 0 (clear sky) is sunny.
func WeatherMood(code int) zeitgeist.WeatherMood {
	switch {
	case code < 0:
		return zeitgeist.WeatherNeutral
	case code <= 3:
		return zeitgeist.WeatherSunny
	case code <= 49:
		return zeitgeist.WeatherFoggy
	case code <= 69:
		return zeitgeist.WeatherRainy
	case code <= 79:
		return zeitgeist.WeatherSnowy
	case code <= 99:
		return zeitgeist.WeatherStormy
	default:
		return zeitgeist.WeatherNeutral
	}
}
