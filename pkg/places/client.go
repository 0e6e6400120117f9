// Package places wraps the Google Maps Places and Geocoding web services
// (nearby search, place details, photos, forward geocoding).
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

// ErrZeroResults is returned by Geocode when the provider finds no match.
var ErrZeroResults = errors.New("places: zero results")

// Client performs Places API operations.
type Client interface {
	// NearbySearch fetches one page of nearby results. A non-success
	// provider status other than ZERO_RESULTS is an error.
	NearbySearch(ctx context.Context, req NearbyRequest) (*NearbyResponse, error)

	// Details fetches the extended record for one place.
	Details(ctx context.Context, placeID string) (*PlaceDetails, error)

	// Geocode resolves a free-text address to coordinates.
	// Returns ErrZeroResults when the provider has no match.
	Geocode(ctx context.Context, address string) (*LatLng, error)

	// PhotoURL builds the display URL for a photo reference.
	PhotoURL(ref string) string
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the default client-side throttle (10 req/s).
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
		} else {
			c.limiter = nil
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Places API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(10, 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *httpClient) NearbySearch(ctx context.Context, req NearbyRequest) (*NearbyResponse, error) {
	q := url.Values{}
	if req.PageToken != "" {
		// A page token encodes the original query; other parameters are ignored.
		q.Set("pagetoken", req.PageToken)
	} else {
		q.Set("location", fmt.Sprintf("%f,%f", req.Location.Latitude, req.Location.Longitude))
		q.Set("radius", strconv.Itoa(req.Radius))
		if req.Type != "" {
			q.Set("type", req.Type)
		}
		if req.Keyword != "" {
			q.Set("keyword", req.Keyword)
		}
	}

	var resp NearbyResponse
	if err := c.getJSON(ctx, "/place/nearbysearch/json", q, &resp); err != nil {
		return nil, err
	}

	if resp.Status != StatusOK && resp.Status != StatusZeroResults {
		return nil, eris.Errorf("places: nearby search status %s: %s", resp.Status, resp.ErrorMessage)
	}
	return &resp, nil
}

func (c *httpClient) Details(ctx context.Context, placeID string) (*PlaceDetails, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "place_id,name,formatted_address,formatted_phone_number,international_phone_number,website,url,rating,user_ratings_total,opening_hours,business_status,price_level,types,photos")

	var resp detailsResponse
	if err := c.getJSON(ctx, "/place/details/json", q, &resp); err != nil {
		return nil, err
	}

	if resp.Status != StatusOK || resp.Result == nil {
		return nil, eris.Errorf("places: details status %s for %s: %s", resp.Status, placeID, resp.ErrorMessage)
	}
	return resp.Result, nil
}

func (c *httpClient) Geocode(ctx context.Context, address string) (*LatLng, error) {
	q := url.Values{}
	q.Set("address", address)

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/geocode/json", q, &resp); err != nil {
		return nil, err
	}

	if resp.Status != StatusOK || len(resp.Results) == 0 {
		return nil, ErrZeroResults
	}
	loc := resp.Results[0].Geometry.Location
	return &loc, nil
}

func (c *httpClient) PhotoURL(ref string) string {
	q := url.Values{}
	q.Set("maxwidth", "400")
	q.Set("photoreference", ref)
	q.Set("key", c.apiKey)
	return c.baseURL + "/place/photo?" + q.Encode()
}

func (c *httpClient) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	if err := c.wait(ctx); err != nil {
		return eris.Wrap(err, "places: rate limit")
	}

	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return eris.Wrap(err, "places: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "places: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "places: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("places: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "places: unmarshal response")
	}
	return nil
}
