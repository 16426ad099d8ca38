package zeitgeist

import "time"

// Cities is the candidate list for the city of the day.
var Cities = []City{
	{Name: "Tokyo", Lat: 35.6762, Lon: 139.6503, Timezone: "Asia/Tokyo"},
	{Name: "London", Lat: 51.5074, Lon: -0.1278, Timezone: "Europe/London"},
	{Name: "New York", Lat: 40.7128, Lon: -74.0060, Timezone: "America/New_York"},
	{Name: "Sydney", Lat: -33.8688, Lon: 151.2093, Timezone: "Australia/Sydney"},
	{Name: "Paris", Lat: 48.8566, Lon: 2.3522, Timezone: "Europe/Paris"},
	{Name: "Berlin", Lat: 52.5200, Lon: 13.4050, Timezone: "Europe/Berlin"},
	{Name: "Mumbai", Lat: 19.0760, Lon: 72.8777, Timezone: "Asia/Kolkata"},
	{Name: "Cairo", Lat: 30.0444, Lon: 31.2357, Timezone: "Africa/Cairo"},
	{Name: "Rio de Janeiro", Lat: -22.9068, Lon: -43.1729, Timezone: "America/Sao_Paulo"},
	{Name: "Moscow", Lat: 55.7558, Lon: 37.6173, Timezone: "Europe/Moscow"},
	{Name: "Singapore", Lat: 1.3521, Lon: 103.8198, Timezone: "Asia/Singapore"},
	{Name: "Dubai", Lat: 25.2048, Lon: 55.2708, Timezone: "Asia/Dubai"},
}

var (
	moodWords = []string{
		"serendipity", "melancholy", "ephemeral", "luminous", "ethereal",
		"resilient", "enigmatic", "nostalgic", "euphoria", "solitude",
		"wanderlust", "sublime", "tranquil", "tempest", "zenith",
	}
	ageNames     = []string{"Zeitgeist", "Data", "Pixel", "Binary", "Cloud", "Cyber", "Neo"}
	bookSubjects = []string{"philosophy", "science_fiction", "poetry", "psychology", "adventure"}
	waybackSites = []string{"google.com", "twitter.com", "reddit.com", "youtube.com", "amazon.com"}
	namePrefixes = []string{"Zei", "Geo", "Neo", "Axi", "Lux", "Nox", "Pix", "Qua"}
	nameSuffixes = []string{"tron", "mos", "byte", "flux", "wave", "core", "link", "sync"}
)

// CuratedQuotes back the quote source when its provider is unreachable.
var CuratedQuotes = []QuoteReading{
	{Content: "The only true wisdom is in knowing you know nothing.", Author: "Socrates"},
	{Content: "In the middle of difficulty lies opportunity.", Author: "Albert Einstein"},
	{Content: "We are what we repeatedly do. Excellence is not an act, but a habit.", Author: "Aristotle"},
	{Content: "The unexamined life is not worth living.", Author: "Socrates"},
	{Content: "Happiness is not something ready made. It comes from your own actions.", Author: "Dalai Lama"},
	{Content: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
	{Content: "In three words I can sum up everything I've learned about life: it goes on.", Author: "Robert Frost"},
	{Content: "The mind is everything. What you think you become.", Author: "Buddha"},
	{Content: "Life is what happens when you're busy making other plans.", Author: "John Lennon"},
	{Content: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt"},
	{Content: "It is during our darkest moments that we must focus to see the light.", Author: "Aristotle"},
	{Content: "The only impossible journey is the one you never begin.", Author: "Tony Robbins"},
	{Content: "Everything you've ever wanted is on the other side of fear.", Author: "George Addair"},
	{Content: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt"},
	{Content: "The best time to plant a tree was 20 years ago. The second best time is now.", Author: "Chinese Proverb"},
}

// Daily holds the date-seeded choices for one aggregation cycle. Two calls
// with instants in the same calendar day (or the same hour, for the
// hour-projected fields) produce identical values.
type Daily struct {
	Now         time.Time    `json:"now"`
	City        City         `json:"city"`
	Word        string       `json:"word"`
	AgeName     string       `json:"ageName"`
	BookSubject string       `json:"bookSubject"`
	WaybackSite string       `json:"waybackSite"`
	EntityName  string       `json:"entityName"`
	Quote       QuoteReading `json:"quote"`
	LuckyNumber int          `json:"luckyNumber"`
}

// NewDaily derives the daily context from now, interpreted in now's location.
func NewDaily(now time.Time) Daily {
	day, month, year := now.Day(), int(now.Month()), now.Year()

	return Daily{
		Now:         now,
		City:        pick(Cities, year*10000+month*100+day),
		Word:        pick(moodWords, day+month-1),
		AgeName:     pick(ageNames, day),
		BookSubject: pick(bookSubjects, int(now.Weekday())),
		WaybackSite: pick(waybackSites, day),
		EntityName:  pick(namePrefixes, day) + pick(nameSuffixes, month-1),
		Quote:       pick(CuratedQuotes, day+now.Hour()),
		LuckyNumber: (day*31 + now.Hour()) % 100,
	}
}

// pick indexes list with seed modulo its length. The list must not be empty.
func pick[T any](list []T, seed int) T {
	if len(list) == 0 {
		panic("zeitgeist: pick from empty candidate list")
	}
	i := seed % len(list)
	if i < 0 {
		i += len(list)
	}
	return list[i]
}
