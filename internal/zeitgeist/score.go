package zeitgeist

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/tfs2006/the-zeitgeist-pet/internal/logging"
)

// neutralScore is where every base score starts before contributions.
const neutralScore = 50.0

// Weights bound the magnitude of each source's contribution to the base score.
// A weight of zero disables the source's influence.
type Weights struct {
	Weather     float64
	Crypto      float64
	News        float64
	Earthquakes float64
	Solar       float64
	Cosmic      float64
	Maturity    float64
}

// InfluenceConfig controls how the interaction counters perturb a base score.
type InfluenceConfig struct {
	ComfortPerClick   float64
	AgitatePerClick   float64
	MaxComfortBonus   float64
	MaxAgitateEffect  float64
	VolatileThreshold int64 // agitate above this flips a coin for the sign of the effect
	ChaosThreshold    int64 // agitate above this replaces the score with noise
}

type ScoringConfig struct {
	Weights   Weights
	Influence InfluenceConfig
}

// DefaultScoringConfig returns the frozen weight table.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: Weights{
			Weather:     15,
			Crypto:      20,
			News:        15,
			Earthquakes: 10,
			Solar:       5,
			Cosmic:      5,
			Maturity:    3,
		},
		Influence: InfluenceConfig{
			ComfortPerClick:   0.5,
			AgitatePerClick:   0.8,
			MaxComfortBonus:   20,
			MaxAgitateEffect:  30,
			VolatileThreshold: 100,
			ChaosThreshold:    10000,
		},
	}
}

// WeatherDelta is the fixed contribution of each weather mood.
func WeatherDelta(m WeatherMood) float64 {
	switch m {
	case WeatherSunny:
		return 15
	case WeatherSnowy:
		return 5
	case WeatherNeutral:
		return 0
	case WeatherFoggy:
		return -5
	case WeatherRainy:
		return -10
	case WeatherStormy:
		return -15
	}
	return 0
}

// SolarDelta is the fixed contribution of each solar phase.
func SolarDelta(p SolarPhase) float64 {
	switch p {
	case SolarDawn:
		return 5
	case SolarMorning:
		return 3
	case SolarAfternoon:
		return 0
	case SolarDusk:
		return -2
	case SolarNight:
		return -5
	}
	return 0
}

// CosmicDelta is the fixed contribution of each cosmic mood.
func CosmicDelta(m CosmicMood) float64 {
	switch m {
	case CosmicNihilistic:
		return -5
	case CosmicIntense:
		return 0
	case CosmicCreative:
		return 5
	case CosmicGrounded:
		return 3
	case CosmicWonder:
		return 4
	}
	return 0
}

// MaturityDelta is the fixed contribution of each maturity band.
func MaturityDelta(m Maturity) float64 {
	switch m {
	case MaturityYouthful:
		return -3
	case MaturityMature:
		return 0
	case MaturityWise:
		return 3
	case MaturityEternal:
		return 2
	}
	return 0
}

// CryptoDelta scales the bitcoin 24h change.
func CryptoDelta(change float64) float64 { return change * 2 }

// NewsDelta maps an anxiety index (0 calm, 100 panicked) around the midpoint.
func NewsDelta(anxiety int) float64 { return (50 - float64(anxiety)) / 3.33 }

// QuakeDelta penalises magnitudes above 4.
func QuakeDelta(magnitude float64) float64 {
	if magnitude <= 4 {
		return 0
	}
	return -(magnitude - 4) * 3
}

// Factor is one source's contribution to a base score.
type Factor struct {
	Source SourceID `json:"source"`
	Label  string   `json:"label"`
	Delta  float64  `json:"delta"`
}

// Breakdown explains how a base score was reached.
type Breakdown struct {
	Factors []Factor `json:"factors"`
	Raw     float64  `json:"raw"`
	Base    int      `json:"base"`
}

// Contribution returns the delta source added, if it contributed.
func (b Breakdown) Contribution(source SourceID) (float64, bool) {
	for _, f := range b.Factors {
		if f.Source == source {
			return f.Delta, true
		}
	}
	return 0, false
}

func (b Breakdown) String() string {
	parts := make([]string, 0, len(b.Factors))
	for _, f := range b.Factors {
		parts = append(parts, fmt.Sprintf("%s: %+.0f", f.Label, f.Delta))
	}
	return fmt.Sprintf("%s = %d", strings.Join(parts, ", "), b.Base)
}

// Rand is the randomness the scorer and mood mapper draw from.
// *rand.Rand from math/rand/v2 satisfies it, but is not safe for concurrent use;
// wrap it with NewLockedRand when sharing.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// GlobalRand returns the process-wide, goroutine-safe source.
func GlobalRand() Rand { return globalRand{} }

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLockedRand returns a seeded, goroutine-safe Rand.
func NewLockedRand(seed1, seed2 uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed1, seed2))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// Scorer turns bundles into base scores and applies interaction influence.
type Scorer struct {
	cfg ScoringConfig
	rng Rand
}

// NewScorer creates a Scorer. A nil rng uses the process-wide source.
func NewScorer(cfg ScoringConfig, rng Rand) *Scorer {
	if rng == nil {
		rng = globalRand{}
	}
	return &Scorer{cfg: cfg, rng: rng}
}

// Rand exposes the scorer's randomness so cosmetic picks share the same seed.
func (s *Scorer) Rand() Rand { return s.rng }

// Base computes the interaction-free score. Only non-nil entries contribute;
// fallback values count as present data.
func (s *Scorer) Base(b *Bundle) Breakdown {
	score := neutralScore
	factors := []Factor{}

	add := func(source SourceID, label string, delta, weight float64) {
		delta = clampFloat(delta, -weight, weight)
		score += delta
		factors = append(factors, Factor{Source: source, Label: label, Delta: delta})
	}

	w := s.cfg.Weights

	if r, ok := Get[WeatherReading](b, SourceWeather); ok {
		add(SourceWeather, fmt.Sprintf("Weather (%s)", r.Mood), WeatherDelta(r.Mood), w.Weather)
	}
	if r, ok := Get[CryptoReading](b, SourceCrypto); ok && r.Bitcoin.Change24h != nil {
		change := *r.Bitcoin.Change24h
		add(SourceCrypto, fmt.Sprintf("Bitcoin %+.1f%%", change), CryptoDelta(change), w.Crypto)
	}
	if r, ok := Get[NewsReading](b, SourceNews); ok {
		add(SourceNews, fmt.Sprintf("News anxiety (%d)", r.AnxietyLevel), NewsDelta(r.AnxietyLevel), w.News)
	}
	if r, ok := Get[QuakeReading](b, SourceEarthquakes); ok && r.MaxMagnitude > 4 {
		add(SourceEarthquakes, fmt.Sprintf("Seismic activity (M%.1f)", r.MaxMagnitude), QuakeDelta(r.MaxMagnitude), w.Earthquakes)
	}
	if r, ok := Get[SunReading](b, SourceSun); ok {
		add(SourceSun, fmt.Sprintf("Solar phase (%s)", r.SolarPhase), SolarDelta(r.SolarPhase), w.Solar)
	}
	if r, ok := Get[NASAReading](b, SourceNASA); ok {
		add(SourceNASA, fmt.Sprintf("Cosmic alignment (%s)", r.CosmicMood), CosmicDelta(r.CosmicMood), w.Cosmic)
	}
	if r, ok := Get[AgeReading](b, SourceAge); ok {
		add(SourceAge, fmt.Sprintf("Maturity (%s)", r.MaturityLevel), MaturityDelta(r.MaturityLevel), w.Maturity)
	}

	bd := Breakdown{
		Factors: factors,
		Raw:     score,
		Base:    int(math.Round(clampFloat(score, 0, 100))),
	}
	logging.Debug("vibe score calculated", "breakdown", bd.String())
	return bd
}

// Apply perturbs base with the interaction counters. Above the volatile and
// chaos thresholds the result is random, so only its bounds are stable.
func (s *Scorer) Apply(base int, st InteractionState) (int, Mode) {
	cfg := s.cfg.Influence

	if st.Agitate > cfg.ChaosThreshold {
		return s.rng.IntN(101), ModeChaos
	}

	comfortBonus := math.Min(cfg.MaxComfortBonus, float64(st.Comfort)*cfg.ComfortPerClick)
	agitateBonus := math.Min(cfg.MaxAgitateEffect, float64(st.Agitate)*cfg.AgitatePerClick)

	mode := ModeCalm
	effect := -agitateBonus / 2
	if st.Agitate > cfg.VolatileThreshold {
		mode = ModeVolatile
		if s.rng.Float64() > 0.5 {
			effect = agitateBonus
		} else {
			effect = -agitateBonus
		}
	}

	score := math.Round(float64(base) + comfortBonus + effect)
	return clampInt(int(score), 0, 100), mode
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
