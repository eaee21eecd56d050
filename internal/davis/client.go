// FilePath: internal/davis/client.go
package davis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"github.com/terrasense/meteohub/internal/config"
	"github.com/terrasense/meteohub/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

// maxHistoricRangeSeconds is the widest time window the archive endpoint
// accepts in a single call.
const maxHistoricRangeSeconds = 86400

// StationAPI fetches station payloads from the WeatherLink cloud.
type StationAPI interface {
	Current(ctx context.Context) (*StationPayload, error)
	Historic(ctx context.Context, start, end int64) (*StationPayload, error)
}

// Client talks to the WeatherLink v2 API behind a circuit breaker, so a
// flapping upstream does not keep every scheduler tick waiting on timeouts.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	baseURL    string
	apiKey     string
	apiSecret  string
	stationID  int64
}

// NewClient creates a WeatherLink API client.
func NewClient(cfg config.DavisConfig) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "weatherlink",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			nuts.L.Infof("[DavisClient] Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		stationID:  cfg.StationID,
	}
}

// Current fetches the live station snapshot.
func (c *Client) Current(ctx context.Context) (*StationPayload, error) {
	endpoint := fmt.Sprintf("%s/current/%d", c.baseURL, c.stationID)
	return c.fetch(ctx, endpoint, nil)
}

// Historic fetches archived samples for the half-open range [start, end).
// Range validation happens in the service before any network traffic.
func (c *Client) Historic(ctx context.Context, start, end int64) (*StationPayload, error) {
	endpoint := fmt.Sprintf("%s/historic/%d", c.baseURL, c.stationID)
	params := url.Values{
		"start-timestamp": []string{strconv.FormatInt(start, 10)},
		"end-timestamp":   []string{strconv.FormatInt(end, 10)},
	}
	return c.fetch(ctx, endpoint, params)
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) (*StationPayload, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api-key", c.apiKey)
	requestURL := endpoint + "?" + params.Encode()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-Api-Secret", c.apiSecret)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("weatherlink returned %d: %s", resp.StatusCode, body)
		}

		var payload StationPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decoding weatherlink response: %w", err)
		}
		return &payload, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, errors.NewUnavailableError("weatherlink API circuit open", err)
		}
		return nil, errors.NewUpstreamError("failed to fetch station data from WeatherLink", err)
	}
	return result.(*StationPayload), nil
}
