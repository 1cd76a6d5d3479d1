package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Client proxies the Yahoo geocoder API. Results are cached in memory
// so repeated lookups for the same address do not burn API quota.
type Client struct {
	baseURL string
	appId   string
	http    *http.Client
	cache   *gocache.Cache
}

type Option func(*Client)

// WithBaseURL overrides the API endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

func NewClient(appId string, opts ...Option) *Client {
	c := &Client{
		baseURL: "https://map.yahooapis.jp",
		appId:   appId,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   gocache.New(24*time.Hour, time.Hour),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is a single geocoder hit.
type Result struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type apiResponse struct {
	Feature []struct {
		Geometry struct {
			Coordinates string `json:"Coordinates"`
		} `json:"Geometry"`
		Property struct {
			Address string `json:"Address"`
		} `json:"Property"`
	} `json:"Feature"`
}

// Forward resolves a free-form query to coordinates.
func (c *Client) Forward(ctx context.Context, query string) ([]Result, error) {
	key := "fwd:" + query
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]Result), nil
	}

	params := url.Values{}
	params.Set("appid", c.appId)
	params.Set("query", query)
	params.Set("output", "json")

	results, err := c.fetch(ctx, c.baseURL+"/geocode/V1/geoCoder?"+params.Encode())
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, results)
	return results, nil
}

// Reverse resolves coordinates to an address.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) ([]Result, error) {
	key := fmt.Sprintf("rev:%.6f,%.6f", lat, lng)
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]Result), nil
	}

	params := url.Values{}
	params.Set("appid", c.appId)
	params.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', 6, 64))
	params.Set("output", "json")

	results, err := c.fetch(ctx, c.baseURL+"/geoapi/V1/reverseGeoCoder?"+params.Encode())
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, results)
	return results, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("geocoder returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %w", err)
	}

	results := make([]Result, 0, len(parsed.Feature))
	for _, f := range parsed.Feature {
		// Coordinates come back as "lng,lat".
		parts := strings.SplitN(f.Geometry.Coordinates, ",", 2)
		if len(parts) != 2 {
			continue
		}
		lng, errLng := strconv.ParseFloat(parts[0], 64)
		lat, errLat := strconv.ParseFloat(parts[1], 64)
		if errLng != nil || errLat != nil {
			continue
		}
		results = append(results, Result{
			Address: f.Property.Address,
			Lat:     lat,
			Lng:     lng,
		})
	}
	return results, nil
}
