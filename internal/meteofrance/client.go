// FilePath: internal/meteofrance/client.go
package meteofrance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"github.com/terrasense/meteohub/internal/config"
	"github.com/terrasense/meteohub/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

// ObservationAPI fetches infra-hourly observations for a station.
type ObservationAPI interface {
	Infrahoraire(ctx context.Context, stationID string) ([]Observation, error)
}

// Client talks to the DPObs API behind a circuit breaker.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	baseURL    string
	apiKey     string
	format     string
}

func NewClient(cfg config.MeteoFranceConfig) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "meteofrance",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			nuts.L.Infof("[MeteoFranceClient] Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		format:     cfg.Format,
	}
}

// Infrahoraire fetches the latest 6-minute observations for a station.
func (c *Client) Infrahoraire(ctx context.Context, stationID string) ([]Observation, error) {
	params := url.Values{
		"id_station": []string{stationID},
		"format":     []string{c.format},
	}
	requestURL := fmt.Sprintf("%s/station/infrahoraire-6m?%s", c.baseURL, params.Encode())

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("apikey", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("meteofrance returned %d: %s", resp.StatusCode, body)
		}

		var observations []Observation
		if err := json.NewDecoder(resp.Body).Decode(&observations); err != nil {
			return nil, fmt.Errorf("decoding meteofrance response: %w", err)
		}
		return observations, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, errors.NewUnavailableError("meteofrance API circuit open", err)
		}
		return nil, errors.NewUpstreamError("failed to fetch data from the meteofrance API", err)
	}
	return result.([]Observation), nil
}
