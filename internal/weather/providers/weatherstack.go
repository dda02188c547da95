package providers

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"

	"github.com/i474232898/weather-records/internal/weather"
)

// DefaultWeatherstackBaseURL is the public weatherstack API root.
const DefaultWeatherstackBaseURL = "http://api.weatherstack.com"

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 1 << 20

// WeatherstackProvider implements the weather.Provider interface for weatherstack.com.
type WeatherstackProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// WeatherstackConfig holds the provider settings.
type WeatherstackConfig struct {
	// BaseURL is the API root; empty means DefaultWeatherstackBaseURL.
	BaseURL    string
	APIKey     string
	MaxRetries int
	// CircuitBreaker guards calls with a breaker shared across requests.
	CircuitBreaker bool
}

// NewWeatherstackProvider builds a weatherstack provider.
func NewWeatherstackProvider(client *http.Client, cfg WeatherstackConfig) *WeatherstackProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultWeatherstackBaseURL
	}

	p := &WeatherstackProvider{
		name:    "weatherstack",
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/") + "/current",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      cfg.MaxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
	}
	if cfg.CircuitBreaker {
		p.circuit = newCircuitBreaker("weatherstack")
	}
	return p
}

func (p *WeatherstackProvider) Name() string {
	return p.name
}

// Current returns the "current" object weatherstack reports for query.
func (p *WeatherstackProvider) Current(ctx context.Context, query string) (weather.CurrentConditions, error) {
	if p.apiKey == "" {
		return nil, weather.ErrMissingCredential
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("access_key", p.apiKey)
		values.Set("query", query)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", weather.ErrUpstream, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("weatherstack returned malformed JSON")
	}

	current := gjson.GetBytes(body, "current")
	if !current.IsObject() {
		// weatherstack answers 200 with {"success": false, "error": {...}} for bad queries.
		if info := gjson.GetBytes(body, "error.info"); info.Exists() {
			log.Printf("INFO: weatherstack rejected query %q: %s", query, info.String())
		}
		return nil, weather.ErrNoCurrentConditions
	}

	return weather.CurrentConditions(current.Raw), nil
}
