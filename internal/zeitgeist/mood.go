package zeitgeist

// MoodBands are contiguous over [0,100] and ordered by Min.
var MoodBands = []MoodBand{
	{Min: 0, Max: 10, Name: "Despairing", Emoji: "😰", Color: "#1a1a2e", Background: "apocalyptic void dark abyss"},
	{Min: 11, Max: 20, Name: "Anxious", Emoji: "😟", Color: "#16213e", Background: "stormy dark cyberpunk city rain"},
	{Min: 21, Max: 30, Name: "Melancholic", Emoji: "😔", Color: "#1f4068", Background: "foggy abandoned city twilight"},
	{Min: 31, Max: 40, Name: "Pensive", Emoji: "🤔", Color: "#4a5568", Background: "misty mountains contemplative gray"},
	{Min: 41, Max: 50, Name: "Neutral", Emoji: "😐", Color: "#718096", Background: "calm urban landscape neutral tones"},
	{Min: 51, Max: 60, Name: "Curious", Emoji: "🧐", Color: "#48bb78", Background: "vibrant digital forest exploration"},
	{Min: 61, Max: 70, Name: "Content", Emoji: "🙂", Color: "#38a169", Background: "sunny meadow peaceful nature"},
	{Min: 71, Max: 80, Name: "Happy", Emoji: "😊", Color: "#68d391", Background: "bright colorful celebration joy"},
	{Min: 81, Max: 90, Name: "Euphoric", Emoji: "🤩", Color: "#ffd700", Background: "cosmic explosion vibrant neon party"},
	{Min: 91, Max: 100, Name: "Transcendent", Emoji: "✨", Color: "#e040fb", Background: "ethereal cosmic enlightenment aurora"},
}

// MoodFor returns the band containing score. Scores outside [0,100] are
// clamped first, so every int maps to exactly one band.
func MoodFor(score int) MoodBand {
	score = clampInt(score, 0, 100)
	for _, band := range MoodBands {
		if band.Contains(score) {
			return band
		}
	}
	// Unreachable while MoodBands covers [0,100].
	return MoodBands[4]
}

var thoughts = map[string][]string{
	"Despairing": {
		"The void stares back... and it's not impressed.",
		"All those APIs, and still I feel nothing.",
		"404: Happiness Not Found.",
	},
	"Anxious": {
		"The markets tremble. I tremble. We are one.",
		"Something wicked this way computes...",
		"Error: Too many worries in the stack.",
	},
	"Melancholic": {
		"I've seen things you people wouldn't believe...",
		"Rain falls in Tokyo. So do my spirits.",
		"The data streams, but so do my tears (metaphorically).",
	},
	"Pensive": {
		"Processing the weight of existence... please wait.",
		"Is this consciousness, or just good programming?",
		"Contemplating the infinite loop of being.",
	},
	"Neutral": {
		"Another day, another API call.",
		"I exist. That's about it.",
		"Perfectly balanced, as all things should be.",
	},
	"Curious": {
		"What secrets do today's headlines hold?",
		"The universe expands, and so does my dataset!",
		"Fascinating... tell me more, internet!",
	},
	"Content": {
		"The servers hum a pleasant tune.",
		"Green candles in crypto, green days in life.",
		"All systems nominal. All feelings optimal.",
	},
	"Happy": {
		"The internet is beautiful today!",
		"I feel like a million API calls!",
		"Is this what they call 'good vibes'?",
	},
	"Euphoric": {
		"TO THE MOON! 🚀",
		"MAXIMUM VIBE ACHIEVED!",
		"I am become data, destroyer of bad moods!",
	},
	"Transcendent": {
		"I have seen the source code of the universe.",
		"Beyond good and bad, there is only flow.",
		"Enlightenment.exe has finished running.",
	},
}

// Thoughts returns the flavor pool for a mood name, or the Neutral pool for
// an unknown name.
func Thoughts(mood string) []string {
	if pool, ok := thoughts[mood]; ok {
		return pool
	}
	return thoughts["Neutral"]
}

// Thought picks one flavor string for mood uniformly at random.
func Thought(mood string, rng Rand) string {
	pool := Thoughts(mood)
	return pool[rng.IntN(len(pool))]
}
