package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfs2006/the-zeitgeist-pet/internal/metrics"
	"github.com/tfs2006/the-zeitgeist-pet/internal/store"
	"github.com/tfs2006/the-zeitgeist-pet/internal/zeitgeist"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func testSources() []zeitgeist.Source {
	return []zeitgeist.Source{
		{
			Provider: zeitgeist.ProviderFunc{
				SourceID: zeitgeist.SourceWeather,
				Fn: func(_ context.Context, d zeitgeist.Daily) (zeitgeist.Result, error) {
					return zeitgeist.WeatherReading{City: d.City.Name, Temperature: 22, Mood: zeitgeist.WeatherSunny}, nil
				},
			},
		},
		{
			Provider: zeitgeist.ProviderFunc{
				SourceID: zeitgeist.SourceNASA,
				Fn: func(context.Context, zeitgeist.Daily) (zeitgeist.Result, error) {
					return nil, errors.New("apod down")
				},
			},
		},
	}
}

func newTestApp(t *testing.T, interactions zeitgeist.InteractionStore) *fiber.App {
	t.Helper()
	reg, err := zeitgeist.NewRegistry(testSources()...)
	require.NoError(t, err)

	m := metrics.MustNewMetrics(prometheus.NewRegistry())
	svc := zeitgeist.NewService(
		zeitgeist.NewFetcher(reg, m),
		zeitgeist.NewScorer(zeitgeist.DefaultScoringConfig(), zeitgeist.NewLockedRand(1, 2)),
		interactions,
		zeitgeist.Options{Clock: func() time.Time { return fixedNow }, Observer: m},
	)
	return NewApp(svc, m.Handler())
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, store.NewMemoryStore(fixedNow))

	code, body := doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestEntity(t *testing.T) {
	app := newTestApp(t, store.NewMemoryStore(fixedNow))

	code, body := doJSON(t, app, http.MethodGet, "/api/entity", "")
	require.Equal(t, http.StatusOK, code)

	// 50 + 15 for sunny weather, with no interactions: calm, -0.
	assert.Equal(t, 65.0, body["baseVibeScore"])
	assert.Equal(t, 65.0, body["vibeScore"])
	assert.Equal(t, "calm", body["mode"])
	assert.Equal(t, "Content", body["mood"])
	assert.NotEmpty(t, body["currentCity"])
	assert.Equal(t, "wonder", body["cosmicMood"])
	assert.NotEmpty(t, body["thought"])
}

type brokenStore struct{ store.MemoryStore }

func (*brokenStore) State(context.Context) (zeitgeist.InteractionState, error) {
	return zeitgeist.InteractionState{}, errors.New("disk on fire")
}

func TestEntityFailureIsReportedAsCrisis(t *testing.T) {
	app := newTestApp(t, &brokenStore{})

	code, body := doJSON(t, app, http.MethodGet, "/api/entity", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, true, body["error"])
	assert.Equal(t, msgEntityFailed, body["message"])
}

func TestInteract(t *testing.T) {
	app := newTestApp(t, store.NewMemoryStore(fixedNow))

	code, body := doJSON(t, app, http.MethodPost, "/api/interact", `{"action":"comfort"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, msgComfort, body["message"])
	assert.Equal(t, 1.0, body["totalComfort"])
	assert.Equal(t, 0.0, body["totalAgitate"])

	code, body = doJSON(t, app, http.MethodPost, "/api/interact", `{"action":"agitate"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, msgAgitate, body["message"])
	assert.Equal(t, 1.0, body["totalAgitate"])

	code, body = doJSON(t, app, http.MethodGet, "/api/interactions", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1.0, body["comfort"])
	assert.Equal(t, 1.0, body["agitate"])
}

func TestInteractRejectsInvalidActions(t *testing.T) {
	app := newTestApp(t, store.NewMemoryStore(fixedNow))

	for _, body := range []string{`{"action":"poke"}`, `{}`, `{"action":`} {
		code, out := doJSON(t, app, http.MethodPost, "/api/interact", body)
		assert.Equal(t, http.StatusBadRequest, code, body)
		assert.Equal(t, msgInvalidAction, out["message"], body)
	}

	_, out := doJSON(t, app, http.MethodGet, "/api/interactions", "")
	assert.Equal(t, 0.0, out["comfort"])
	assert.Equal(t, 0.0, out["agitate"])
}

func TestResetInteractions(t *testing.T) {
	app := newTestApp(t, store.NewMemoryStore(fixedNow.Add(-time.Hour)))

	doJSON(t, app, http.MethodPost, "/api/interact", `{"action":"agitate"}`)
	code, body := doJSON(t, app, http.MethodPost, "/api/interactions/reset", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0.0, body["agitate"])
	assert.Equal(t, fixedNow.Format(time.RFC3339), body["lastReset"])
}

func TestBrainScan(t *testing.T) {
	app := newTestApp(t, store.NewMemoryStore(fixedNow))

	code, body := doJSON(t, app, http.MethodGet, "/api/brain-scan", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, msgBrainScan, body["message"])

	raw, ok := body["rawInputs"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, raw, "weather")
	assert.Nil(t, raw["nasa"])
	assert.NotEmpty(t, raw["cycleId"])

	status, ok := body["sourceStatus"].(map[string]any)
	require.True(t, ok)
	nasa := status["nasa"].(map[string]any)
	assert.Equal(t, "failed", nasa["state"])
	assert.Equal(t, "apod down", nasa["error"])

	code, _ = doJSON(t, app, http.MethodGet, "/api/brain-scan?fresh=maybe", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestBrainScanServesCachedBundleUnlessFresh(t *testing.T) {
	app := newTestApp(t, store.NewMemoryStore(fixedNow))

	_, first := doJSON(t, app, http.MethodGet, "/api/brain-scan", "")
	_, cached := doJSON(t, app, http.MethodGet, "/api/brain-scan", "")
	_, fresh := doJSON(t, app, http.MethodGet, "/api/brain-scan?fresh=true", "")

	id := func(body map[string]any) any { return body["rawInputs"].(map[string]any)["cycleId"] }
	assert.Equal(t, id(first), id(cached))
	assert.NotEqual(t, id(first), id(fresh))
}

func TestMoodCard(t *testing.T) {
	app := newTestApp(t, store.NewMemoryStore(fixedNow))

	code, body := doJSON(t, app, http.MethodGet, "/api/mood-card", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2024-03-15", body["date"])
	assert.Equal(t, 65.0, body["vibeScore"])
	assert.Contains(t, body["shareText"], "The Zeitgeist Pet is feeling Content today (65/100).")
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, store.NewMemoryStore(fixedNow))
	doJSON(t, app, http.MethodGet, "/api/entity", "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `zeitgeist_source_fetch_total{source="nasa",state="failed"} 1`)
	assert.Contains(t, string(body), "zeitgeist_vibe_score 65")
}

func TestUnexpectedErrorsAreNotLeaked(t *testing.T) {
	app := newTestApp(t, store.NewMemoryStore(fixedNow))
	app.Get("/boom", func(*fiber.Ctx) error { panic("secret stack detail") })
	app.Get("/raw", func(*fiber.Ctx) error { return errors.New("dsn=postgres://admin:hunter2") })

	for _, path := range []string{"/boom", "/raw"} {
		code, body := doJSON(t, app, http.MethodGet, path, "")
		assert.Equal(t, http.StatusInternalServerError, code, path)
		assert.Equal(t, true, body["error"], path)
		assert.Equal(t, msgUnavailable, body["message"], path)
	}

	code, body := doJSON(t, app, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body["message"], "Cannot GET /nowhere")
}
