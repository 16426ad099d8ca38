package zeitgeist

import "time"

// Result is the normalized value one source contributes to a Bundle.
// Each source has its own concrete type; `validate` tags describe the shape a
// live provider response must have to be accepted.
type Result interface {
	Source() SourceID
}

type WeatherReading struct {
	City        string      `json:"city"`
	Temperature float64     `json:"temperature" validate:"gte=-90,lte=60"`
	WeatherCode int         `json:"weatherCode" validate:"gte=0,lte=99"`
	WindSpeed   float64     `json:"windSpeed" validate:"gte=0"`
	IsDay       bool        `json:"isDay"`
	Mood        WeatherMood `json:"mood" validate:"required,oneof=sunny rainy stormy foggy snowy neutral"`
	Stations    []string    `json:"stations,omitempty"`
}

func (WeatherReading) Source() SourceID { return SourceWeather }

// Coin is a spot price with its 24h change in percent. Change24h is nil when
// the provider omitted it.
type Coin struct {
	Price     float64  `json:"price" validate:"gt=0"`
	Change24h *float64 `json:"change24h"`
}

type CryptoReading struct {
	Bitcoin          Coin   `json:"bitcoin"`
	Ethereum         *Coin  `json:"ethereum,omitempty" validate:"omitempty"`
	Dogecoin         *Coin  `json:"dogecoin,omitempty" validate:"omitempty"`
	OverallSentiment string `json:"overallSentiment" validate:"required"`
}

func (CryptoReading) Source() SourceID { return SourceCrypto }

type Story struct {
	Title string `json:"title"`
	Score int    `json:"score"`
}

type NewsReading struct {
	Provider     string   `json:"source"`
	TopStories   []Story  `json:"topStories" validate:"min=1"`
	AnxietyLevel int      `json:"anxietyLevel" validate:"gte=0,lte=100"`
	Keywords     []string `json:"keywords"`
}

func (NewsReading) Source() SourceID { return SourceNews }

type NASAReading struct {
	Title       string     `json:"title" validate:"required"`
	Explanation string     `json:"explanation"`
	ImageURL    string     `json:"imageUrl"`
	CosmicMood  CosmicMood `json:"cosmicMood" validate:"required,oneof=nihilistic intense creative grounded wonder"`
	Date        string     `json:"date"`
	Keyless     bool       `json:"keyless,omitempty"`
}

func (NASAReading) Source() SourceID { return SourceNASA }

type SunReading struct {
	City       string     `json:"city"`
	Sunrise    time.Time  `json:"sunrise"`
	Sunset     time.Time  `json:"sunset"`
	DayLength  int        `json:"dayLength" validate:"gte=0"`
	IsDaytime  bool       `json:"isDaytime"`
	SolarPhase SolarPhase `json:"solarPhase" validate:"required,oneof=dawn morning afternoon dusk night"`
}

func (SunReading) Source() SourceID { return SourceSun }

type Quake struct {
	Place     string    `json:"place"`
	Magnitude float64   `json:"magnitude"`
	Time      time.Time `json:"time"`
}

type QuakeReading struct {
	Count        int     `json:"count" validate:"gte=0"`
	MaxMagnitude float64 `json:"maxMagnitude" validate:"gte=0,lte=10"`
	Recent       []Quake `json:"recent"`
	Nervousness  string  `json:"nervousness" validate:"required"`
}

func (QuakeReading) Source() SourceID { return SourceEarthquakes }

type JokeReading struct {
	Type     string `json:"type"`
	Joke     string `json:"joke" validate:"required"`
	Category string `json:"category"`
}

func (JokeReading) Source() SourceID { return SourceJoke }

type QuoteReading struct {
	Content string   `json:"content" validate:"required"`
	Author  string   `json:"author" validate:"required"`
	Tags    []string `json:"tags,omitempty"`
}

func (QuoteReading) Source() SourceID { return SourceQuote }

type AdviceReading struct {
	Advice string `json:"advice" validate:"required"`
	ID     int    `json:"id,omitempty"`
}

func (AdviceReading) Source() SourceID { return SourceAdvice }

type WordReading struct {
	Word         string `json:"word" validate:"required"`
	Definition   string `json:"definition" validate:"required"`
	PartOfSpeech string `json:"partOfSpeech,omitempty"`
	Phonetic     string `json:"phonetic,omitempty"`
}

func (WordReading) Source() SourceID { return SourceWord }

type NumberReading struct {
	Number int    `json:"number" validate:"gte=0,lte=100"`
	Fact   string `json:"fact" validate:"required"`
	Type   string `json:"type"`
}

func (NumberReading) Source() SourceID { return SourceNumber }

type PokemonReading struct {
	Name   string   `json:"name" validate:"required"`
	ID     int      `json:"id" validate:"gt=0"`
	Sprite string   `json:"sprite"`
	Types  []string `json:"types"`
	Color  string   `json:"color"`
}

func (PokemonReading) Source() SourceID { return SourcePokemon }

type BookReading struct {
	Title    string `json:"title" validate:"required"`
	Author   string `json:"author"`
	Subject  string `json:"subject"`
	CoverID  int    `json:"coverId,omitempty"`
	CoverURL string `json:"coverUrl,omitempty"`
}

func (BookReading) Source() SourceID { return SourceBook }

type CocktailReading struct {
	Name         string `json:"name" validate:"required"`
	Category     string `json:"category,omitempty"`
	Glass        string `json:"glass,omitempty"`
	Instructions string `json:"instructions"`
	Image        string `json:"image,omitempty"`
	IsAlcoholic  bool   `json:"isAlcoholic"`
}

func (CocktailReading) Source() SourceID { return SourceCocktail }

type WaybackReading struct {
	OriginalSite string `json:"originalSite" validate:"required"`
	ArchiveURL   string `json:"archiveUrl"`
	ArchiveDate  string `json:"archiveDate"`
	Available    bool   `json:"available"`
}

func (WaybackReading) Source() SourceID { return SourceWayback }

type AgeReading struct {
	Name          string   `json:"name"`
	PredictedAge  int      `json:"predictedAge" validate:"gt=0"`
	MaturityLevel Maturity `json:"maturityLevel" validate:"required,oneof=youthful mature wise eternal"`
}

func (AgeReading) Source() SourceID { return SourceAge }

type Headline struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
}

type HeadlinesReading struct {
	Feed  string     `json:"feed"`
	Items []Headline `json:"items" validate:"min=1"`
}

func (HeadlinesReading) Source() SourceID { return SourceHeadlines }
