package zeitgeist

import (
	"fmt"
	"net/url"
	"time"
)

// EntityState is the derived, display-ready view of the pet. It is rebuilt
// from a bundle, its base breakdown and the live interaction counters.
type EntityState struct {
	BaseVibeScore    int      `json:"baseVibeScore"`
	VibeScore        int      `json:"vibeScore"`
	Mode             Mode     `json:"mode"`
	Mood             string   `json:"mood"`
	MoodEmoji        string   `json:"moodEmoji"`
	MoodColor        string   `json:"moodColor"`
	BackgroundPrompt string   `json:"backgroundPrompt"`
	Factors          []Factor `json:"factors"`

	Name       string `json:"name"`
	Age        int    `json:"age"`
	Maturity   string `json:"maturity"`
	AvatarSeed string `json:"avatarSeed"`
	AvatarURL  string `json:"avatarUrl"`

	CurrentCity string          `json:"currentCity"`
	Weather     *WeatherReading `json:"weather"`
	SolarPhase  string          `json:"solarPhase"`
	IsDaytime   bool            `json:"isDaytime"`

	CryptoSentiment string   `json:"cryptoSentiment"`
	BitcoinChange   *float64 `json:"bitcoinChange"`

	CosmicMood string `json:"cosmicMood"`
	NASAImage  string `json:"nasaImage,omitempty"`
	NASATitle  string `json:"nasaTitle,omitempty"`

	EarthquakeNervousness string  `json:"earthquakeNervousness"`
	RecentQuakes          []Quake `json:"recentQuakes"`
	ShouldShake           bool    `json:"shouldShake"`

	Thought             string           `json:"thought"`
	Joke                string           `json:"joke,omitempty"`
	Quote               *QuoteReading    `json:"quote"`
	Advice              string           `json:"advice,omitempty"`
	WordOfDay           *WordReading     `json:"wordOfDay"`
	NumberFact          *NumberReading   `json:"numberFact"`
	SpiritPokemon       *PokemonReading  `json:"spiritPokemon"`
	BookRecommendation  *BookReading     `json:"bookRecommendation"`
	DrinkRecommendation *CocktailReading `json:"drinkRecommendation"`
	PastLife            *WaybackReading  `json:"pastLife"`

	NewsAnxiety  int        `json:"newsAnxiety"`
	NewsKeywords []string   `json:"newsKeywords"`
	TopStories   []Story    `json:"topStories"`
	Headlines    []Headline `json:"headlines"`

	UserInteractions InteractionState `json:"userInteractions"`

	CycleID     string    `json:"cycleId"`
	LastUpdated time.Time `json:"lastUpdated"`
	NextUpdate  time.Time `json:"nextUpdate"`
}

// MoodCard is the shareable summary of the current entity state.
type MoodCard struct {
	Date             string       `json:"date"`
	VibeScore        int          `json:"vibeScore"`
	Mood             string       `json:"mood"`
	MoodEmoji        string       `json:"moodEmoji"`
	Thought          string       `json:"thought"`
	WordOfDay        *WordReading `json:"wordOfDay"`
	BackgroundPrompt string       `json:"backgroundPrompt"`
	ShareText        string       `json:"shareText"`
}

func ptr[T Result](b *Bundle, id SourceID) *T {
	if r, ok := Get[T](b, id); ok {
		return &r
	}
	return nil
}

// BuildEntity assembles the entity view. vibe and mode come from Scorer.Apply.
func BuildEntity(b *Bundle, bd Breakdown, vibe int, mode Mode, st InteractionState, rng Rand, now time.Time) EntityState {
	band := MoodFor(vibe)

	e := EntityState{
		BaseVibeScore:    bd.Base,
		VibeScore:        vibe,
		Mode:             mode,
		Mood:             band.Name,
		MoodEmoji:        band.Emoji,
		MoodColor:        band.Color,
		BackgroundPrompt: band.Background,
		Factors:          bd.Factors,

		Name:     b.Daily.EntityName,
		Age:      25,
		Maturity: "mysterious",

		CurrentCity: b.City.Name,
		SolarPhase:  "eternal",
		IsDaytime:   true,

		CryptoSentiment:       "unknown",
		CosmicMood:            string(CosmicWonder),
		EarthquakeNervousness: "stable",
		RecentQuakes:          []Quake{},
		NewsAnxiety:           50,
		NewsKeywords:          []string{},
		TopStories:            []Story{},
		Headlines:             []Headline{},

		Thought:             Thought(band.Name, rng),
		Quote:               ptr[QuoteReading](b, SourceQuote),
		WordOfDay:           ptr[WordReading](b, SourceWord),
		NumberFact:          ptr[NumberReading](b, SourceNumber),
		SpiritPokemon:       ptr[PokemonReading](b, SourcePokemon),
		BookRecommendation:  ptr[BookReading](b, SourceBook),
		DrinkRecommendation: ptr[CocktailReading](b, SourceCocktail),
		PastLife:            ptr[WaybackReading](b, SourceWayback),
		Weather:             ptr[WeatherReading](b, SourceWeather),

		UserInteractions: st,
		CycleID:          b.CycleID,
		LastUpdated:      b.FetchedAt,
		NextUpdate:       now.Truncate(time.Hour).Add(time.Hour),
	}
	if e.CurrentCity == "" {
		e.CurrentCity = "The Void"
	}

	if r, ok := Get[AgeReading](b, SourceAge); ok {
		e.Age = r.PredictedAge
		e.Maturity = string(r.MaturityLevel)
	}
	if r, ok := Get[SunReading](b, SourceSun); ok {
		e.SolarPhase = string(r.SolarPhase)
		e.IsDaytime = r.IsDaytime
	}
	if r, ok := Get[CryptoReading](b, SourceCrypto); ok {
		e.CryptoSentiment = r.OverallSentiment
		e.BitcoinChange = r.Bitcoin.Change24h
	}
	if r, ok := Get[NASAReading](b, SourceNASA); ok {
		e.CosmicMood = string(r.CosmicMood)
		e.NASAImage = r.ImageURL
		e.NASATitle = r.Title
	}
	if r, ok := Get[QuakeReading](b, SourceEarthquakes); ok {
		e.EarthquakeNervousness = r.Nervousness
		if r.Recent != nil {
			e.RecentQuakes = r.Recent
		}
		e.ShouldShake = r.MaxMagnitude > 5
	}
	if r, ok := Get[JokeReading](b, SourceJoke); ok {
		e.Joke = r.Joke
	}
	if r, ok := Get[AdviceReading](b, SourceAdvice); ok {
		e.Advice = r.Advice
	}
	if r, ok := Get[NewsReading](b, SourceNews); ok {
		e.NewsAnxiety = r.AnxietyLevel
		if r.Keywords != nil {
			e.NewsKeywords = r.Keywords
		}
		if r.TopStories != nil {
			e.TopStories = r.TopStories
		}
	}
	if r, ok := Get[HeadlinesReading](b, SourceHeadlines); ok {
		if r.Items != nil {
			e.Headlines = r.Items
		}
	}

	e.AvatarSeed = fmt.Sprintf("%s-%s-%s-%d", now.Format("2006-01-02"), cityOrVoid(b.City.Name), band.Name, vibe)
	e.AvatarURL = robohashURL(e.AvatarSeed, vibe)
	return e
}

// Card derives the shareable mood card from an entity state.
func (e EntityState) Card(now time.Time) MoodCard {
	return MoodCard{
		Date:             now.Format("2006-01-02"),
		VibeScore:        e.VibeScore,
		Mood:             e.Mood,
		MoodEmoji:        e.MoodEmoji,
		Thought:          e.Thought,
		WordOfDay:        e.WordOfDay,
		BackgroundPrompt: e.BackgroundPrompt,
		ShareText: fmt.Sprintf("The Zeitgeist Pet is feeling %s today (%d/100). %s",
			e.Mood, e.VibeScore, e.Thought),
	}
}

func cityOrVoid(name string) string {
	if name == "" {
		return "void"
	}
	return name
}

// robohashURL picks monsters when gloomy and kittens when happy.
func robohashURL(seed string, vibe int) string {
	set := 1
	switch {
	case vibe < 20:
		set = 2
	case vibe > 80:
		set = 4
	}
	return fmt.Sprintf("https://robohash.org/%s?set=set%d&size=300x300", url.PathEscape(seed), set)
}
