package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// DefaultMaxBody caps how much of a response body an adapter will read.
const DefaultMaxBody int64 = 1 << 20

const userAgent = "zeitgeist-pet/1.0 (+https://github.com/tfs2006/the-zeitgeist-pet)"

// HTTPClientConfig bundles the HTTP client and per-provider outbound limits.
type HTTPClientConfig struct {
	Client  *http.Client
	Limiter *rate.Limiter
	MaxBody int64
}

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
	errBodyTooLarge = errors.New("response body too large")
	errMalformed    = errors.New("malformed payload")
)

// endpoint is the shared transport of one provider: its client settings and
// its own circuit breaker.
type endpoint struct {
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func newEndpoint(name string, cfg HTTPClientConfig) endpoint {
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = DefaultMaxBody
	}
	return endpoint{
		httpCfg: cfg,
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

// doRequest executes one GET through the limiter and the circuit breaker.
// There are no retries: a slow or failing source falls back within its own
// timeout instead. The caller owns the returned body.
func (e endpoint) doRequest(ctx context.Context, rawURL string) (*http.Response, error) {
	if e.httpCfg.Client == nil {
		return nil, errNoHTTPClient
	}
	if e.httpCfg.Limiter != nil {
		if err := e.httpCfg.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	result, err := e.circuit.Execute(func() (interface{}, error) {
		resp, execErr := e.httpCfg.Client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			return nil, errRateLimited
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

// getBody fetches rawURL and returns at most MaxBody bytes of its body.
func (e endpoint) getBody(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := e.doRequest(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.httpCfg.MaxBody+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > e.httpCfg.MaxBody {
		return nil, fmt.Errorf("%w: more than %d bytes", errBodyTooLarge, e.httpCfg.MaxBody)
	}
	return body, nil
}

// getJSON fetches rawURL and decodes the body into out. The content type is
// not checked: some providers send JSON as text/html.
func (e endpoint) getJSON(ctx context.Context, rawURL string, out any) error {
	body, err := e.getBody(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	return nil
}
