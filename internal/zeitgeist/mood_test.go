package zeitgeist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodBandsCoverRange(t *testing.T) {
	require.Equal(t, 0, MoodBands[0].Min)
	require.Equal(t, 100, MoodBands[len(MoodBands)-1].Max)
	for i := 1; i < len(MoodBands); i++ {
		assert.Equal(t, MoodBands[i-1].Max+1, MoodBands[i].Min, MoodBands[i].Name)
	}

	for score := 0; score <= 100; score++ {
		matches := 0
		for _, band := range MoodBands {
			if band.Contains(score) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "score %d", score)
	}
}

func TestMoodFor(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{-5, "Despairing"},
		{0, "Despairing"},
		{10, "Despairing"},
		{11, "Anxious"},
		{50, "Neutral"},
		{51, "Curious"},
		{65, "Content"},
		{90, "Euphoric"},
		{91, "Transcendent"},
		{100, "Transcendent"},
		{150, "Transcendent"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MoodFor(tt.score).Name, "score %d", tt.score)
	}
}

func TestThoughts(t *testing.T) {
	for _, band := range MoodBands {
		assert.Len(t, Thoughts(band.Name), 3, band.Name)
	}
	assert.Equal(t, Thoughts("Neutral"), Thoughts("Bewildered"))

	rng := NewLockedRand(3, 4)
	for range 50 {
		assert.Contains(t, Thoughts("Happy"), Thought("Happy", rng))
	}
	assert.Equal(t, "TO THE MOON! 🚀", Thought("Euphoric", stubRand{n: 0}))
}
