package sources

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

// NumberProvider reads a trivia fact about the daily lucky number.
type NumberProvider struct {
	endpoint
	baseURL string
}

func NewNumberProvider(cfg HTTPClientConfig) *NumberProvider {
	return &NumberProvider{
		endpoint: newEndpoint("numbersapi", cfg),
		baseURL:  "http://numbersapi.com",
	}
}

func (p *NumberProvider) ID() zeitgeist.SourceID { return zeitgeist.SourceNumber }

func (p *NumberProvider) Fetch(ctx context.Context, daily zeitgeist.Daily) (zeitgeist.Result, error) {
	var payload struct {
		Text   string `json:"text"`
		Number int    `json:"number"`
		Type   string `json:"type"`
	}
	u := p.baseURL + "/" + strconv.Itoa(daily.LuckyNumber) + "?json"
	if err := p.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}
	return zeitgeist.NumberReading{Number: daily.LuckyNumber, Fact: payload.Text, Type: payload.Type}, nil
}

var knownNumbers = map[int]string{
	0:  "0 is the only number that is neither positive nor negative.",
	1:  "1 is the loneliest number, and the multiplicative identity.",
	7:  "7 is considered lucky in many cultures.",
	13: "13 is considered unlucky in many Western cultures.",
	42: "42 is the answer to life, the universe, and everything.",
	69: "69 reads the same upside down.",
	99: "99 is the largest two-digit number.",
}

// LocalNumberFact produces a fact about n without any network call.
func LocalNumberFact(n int) zeitgeist.NumberReading {
	fact, ok := knownNumbers[n]
	switch {
	case ok:
	case n%10 == 0:
		fact = fmt.Sprintf("%d is a nice round number.", n)
	case n%7 == 0:
		fact = fmt.Sprintf("%d is divisible by 7, which makes it extra lucky.", n)
	case isPrime(n):
		fact = fmt.Sprintf("%d is a prime number, divisible only by 1 and itself.", n)
	case n%2 == 0:
		fact = fmt.Sprintf("%d is an even number with a balanced nature.", n)
	default:
		fact = fmt.Sprintf("%d is an odd number with a mysterious aura.", n)
	}
	return zeitgeist.NumberReading{Number: n, Fact: fact, Type: "local"}
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
