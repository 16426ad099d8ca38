package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

func statusServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEndpointStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, errRateLimited},
		{http.StatusBadGateway, errServerError},
		{http.StatusNotFound, errUnexpected},
	}
	for _, tc := range cases {
		e := newEndpoint("test", testHTTP())
		_, err := e.getBody(context.Background(), statusServer(t, tc.status).URL)
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
	}
}

func TestEndpointNoClient(t *testing.T) {
	e := newEndpoint("test", HTTPClientConfig{})
	_, err := e.getBody(context.Background(), "http://example.invalid")
	assert.ErrorIs(t, err, errNoHTTPClient)
}

func TestEndpointBodyLimit(t *testing.T) {
	srv := serveJSON(t, `"`+strings.Repeat("a", 64)+`"`)

	e := newEndpoint("test", HTTPClientConfig{Client: http.DefaultClient, MaxBody: 16})
	_, err := e.getBody(context.Background(), srv.URL)
	assert.ErrorIs(t, err, errBodyTooLarge)

	e = newEndpoint("test", HTTPClientConfig{Client: http.DefaultClient})
	var s string
	require.NoError(t, e.getJSON(context.Background(), srv.URL, &s))
	assert.Len(t, s, 64)
}

func TestEndpointMalformedJSON(t *testing.T) {
	srv := serveJSON(t, `{not json`)
	e := newEndpoint("test", testHTTP())

	var out map[string]any
	err := e.getJSON(context.Background(), srv.URL, &out)
	assert.ErrorIs(t, err, errMalformed)
}

func TestEndpointCircuitOpens(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := newEndpoint("test", testHTTP())
	var err error
	for range 10 {
		_, err = e.getBody(context.Background(), srv.URL)
	}
	assert.ErrorIs(t, err, errCircuitOpen)
	assert.Less(t, hits.Load(), int32(10))
}

func TestEndpointLimiterHonoursContext(t *testing.T) {
	srv := serveJSON(t, `{}`)
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	e := newEndpoint("test", HTTPClientConfig{Client: http.DefaultClient, Limiter: limiter})

	_, err := e.getBody(context.Background(), srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = e.getBody(ctx, srv.URL)
	assert.Error(t, err)
}

func TestDefaultsRegistry(t *testing.T) {
	reg, err := NewRegistry(Config{RatePerSecond: 5, Burst: 10})
	require.NoError(t, err)
	assert.Equal(t, 17, reg.Len())

	timeouts := map[zeitgeist.SourceID]time.Duration{}
	fallbacks := map[zeitgeist.SourceID]bool{}
	daily := testDaily()
	for _, s := range reg.Sources() {
		timeouts[s.ID()] = s.Timeout
		if s.Fallback != nil {
			r := s.Fallback(daily)
			require.NotNil(t, r, s.ID())
			assert.Equal(t, s.ID(), r.Source())
			fallbacks[s.ID()] = true
		}
	}

	assert.Equal(t, NewsTimeout, timeouts[zeitgeist.SourceNews])
	assert.Equal(t, QuoteTimeout, timeouts[zeitgeist.SourceQuote])
	assert.Equal(t, NumberTimeout, timeouts[zeitgeist.SourceNumber])
	assert.Equal(t, zeitgeist.DefaultTimeout, timeouts[zeitgeist.SourceWeather])

	for _, id := range []zeitgeist.SourceID{
		zeitgeist.SourceNASA, zeitgeist.SourceSun, zeitgeist.SourceEarthquakes,
		zeitgeist.SourcePokemon, zeitgeist.SourceWayback, zeitgeist.SourceHeadlines,
		zeitgeist.SourceJoke,
	} {
		assert.False(t, fallbacks[id], "%s should have no fallback", id)
	}
	assert.Len(t, fallbacks, 10)
}
