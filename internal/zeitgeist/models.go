package zeitgeist

import (
	"time"
)

// SourceID names one registered data source. It is also the key of the
// source's entry in a Bundle.
type SourceID string

const (
	SourceWeather     SourceID = "weather"
	SourceCrypto      SourceID = "crypto"
	SourceNews        SourceID = "news"
	SourceNASA        SourceID = "nasa"
	SourceSun         SourceID = "sunriseSunset"
	SourceEarthquakes SourceID = "earthquakes"
	SourceJoke        SourceID = "joke"
	SourceQuote       SourceID = "quote"
	SourceAdvice      SourceID = "advice"
	SourceWord        SourceID = "wordOfDay"
	SourceNumber      SourceID = "numberFact"
	SourcePokemon     SourceID = "pokemon"
	SourceBook        SourceID = "book"
	SourceCocktail    SourceID = "cocktail"
	SourceWayback     SourceID = "wayback"
	SourceAge         SourceID = "age"
	SourceHeadlines   SourceID = "headlines"
)

// WeatherMood is the categorical reading of the city-of-the-day's sky.
type WeatherMood string

const (
	WeatherSunny   WeatherMood = "sunny"
	WeatherRainy   WeatherMood = "rainy"
	WeatherStormy  WeatherMood = "stormy"
	WeatherFoggy   WeatherMood = "foggy"
	WeatherSnowy   WeatherMood = "snowy"
	WeatherNeutral WeatherMood = "neutral"
)

// SolarPhase is the position of the sun over the city of the day.
type SolarPhase string

const (
	SolarDawn      SolarPhase = "dawn"
	SolarMorning   SolarPhase = "morning"
	SolarAfternoon SolarPhase = "afternoon"
	SolarDusk      SolarPhase = "dusk"
	SolarNight     SolarPhase = "night"
)

// CosmicMood is derived from the title of the astronomy picture of the day.
type CosmicMood string

const (
	CosmicNihilistic CosmicMood = "nihilistic"
	CosmicIntense    CosmicMood = "intense"
	CosmicCreative   CosmicMood = "creative"
	CosmicGrounded   CosmicMood = "grounded"
	CosmicWonder     CosmicMood = "wonder"
)

// Maturity is the age band predicted for the entity's name of the day.
type Maturity string

const (
	MaturityYouthful Maturity = "youthful"
	MaturityMature   Maturity = "mature"
	MaturityWise     Maturity = "wise"
	MaturityEternal  Maturity = "eternal"
)

// Mode describes which branch of the interaction adjustment produced a score.
type Mode string

const (
	ModeCalm     Mode = "calm"
	ModeVolatile Mode = "volatile"
	ModeChaos    Mode = "chaos"
)

// InteractionKind is one of the two user actions that perturb the score.
type InteractionKind string

const (
	InteractionComfort InteractionKind = "comfort"
	InteractionAgitate InteractionKind = "agitate"
)

// Valid reports whether k is a known interaction kind.
func (k InteractionKind) Valid() bool {
	return k == InteractionComfort || k == InteractionAgitate
}

// InteractionState is the process-wide comfort/agitate tally.
type InteractionState struct {
	Comfort   int64     `json:"comfort"`
	Agitate   int64     `json:"agitate"`
	LastReset time.Time `json:"lastReset"`
}

// City is a candidate for the city of the day.
type City struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone"`
}

// Location resolves the city's timezone, falling back to UTC.
func (c City) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// MoodBand is one of the ten fixed score ranges.
type MoodBand struct {
	Min        int    `json:"min"`
	Max        int    `json:"max"`
	Name       string `json:"name"`
	Emoji      string `json:"emoji"`
	Color      string `json:"color"`
	Background string `json:"backgroundPrompt"`
}

// Contains reports whether score falls inside the band (inclusive).
func (m MoodBand) Contains(score int) bool {
	return score >= m.Min && score <= m.Max
}
