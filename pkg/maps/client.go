package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/formosafoodlab/nightmarket-atlas/pkg/errors"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/geo"
)

const (
	defaultBaseURL             = "https://api.mapbox.com"
	requestBodyReadLimit int64 = 1024
)

var errTokenRequired = errors.New("mapbox access token is required")

// Client wraps the Mapbox APIs used for token verification and forward
// geocoding of market addresses during seeding.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured Mapbox base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the Mapbox client given an access token.
func NewClient(token string, opts ...Option) (*Client, error) {
	trimmedToken := strings.TrimSpace(token)
	if trimmedToken == "" {
		return nil, errTokenRequired
	}

	client := &Client{
		token:      trimmedToken,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}

	return client, nil
}

// ValidateToken checks the configured token against the Mapbox tokens API.
func (c *Client) ValidateToken(ctx context.Context) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "mapbox client not configured")
	}

	endpoint := fmt.Sprintf("%s/tokens/v2?access_token=%s", strings.TrimRight(c.baseURL, "/"), url.QueryEscape(c.token))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build token check request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute token check request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, requestBodyReadLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "token check failed")
	}

	var apiResp struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode token check response")
	}
	if apiResp.Code != "TokenValid" {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("mapbox token rejected: %s", apiResp.Code))
	}

	return nil
}

// GeocodeResult is the normalized data returned by the geocoding API.
type GeocodeResult struct {
	PlaceName string
	Location  geo.Point
	Relevance float64
}

// Geocode resolves a free-text query (e.g. a market address) to coordinates,
// biased to the given country code.
func (c *Client) Geocode(ctx context.Context, query, country string) ([]GeocodeResult, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "mapbox client not configured")
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "geocode query is required")
	}

	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json", strings.TrimRight(c.baseURL, "/"), url.PathEscape(trimmed))
	params := url.Values{}
	params.Set("access_token", c.token)
	params.Set("limit", "5")
	if country != "" {
		params.Set("country", country)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build geocode request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute geocode request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, requestBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "geocode request failed")
	}

	var apiResp struct {
		Features []struct {
			PlaceName string    `json:"place_name"`
			Center    []float64 `json:"center"`
			Relevance float64   `json:"relevance"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode geocode response")
	}

	results := make([]GeocodeResult, 0, len(apiResp.Features))
	for _, f := range apiResp.Features {
		if len(f.Center) != 2 {
			continue
		}
		results = append(results, GeocodeResult{
			PlaceName: f.PlaceName,
			Location:  geo.Point{Lng: f.Center[0], Lat: f.Center[1]},
			Relevance: f.Relevance,
		})
	}

	return results, nil
}
