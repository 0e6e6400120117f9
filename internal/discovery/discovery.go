// Package discovery implements the multi-strategy lead search pipeline:
// geocode, typed nearby search, progressively broadened fallback searches,
// per-place detail enrichment, verification scoring, and result caching.
package discovery

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/apperr"
	"github.com/leadscout/leadscout/internal/cache"
	"github.com/leadscout/leadscout/internal/geocoder"
	"github.com/leadscout/leadscout/internal/model"
	"github.com/leadscout/leadscout/pkg/places"
)

const (
	// broadenThreshold gates the fallback strategies: each broader search
	// runs only while the accumulated unique set is below this count.
	broadenThreshold = 20

	// maxPagesPerStrategy bounds pagination within one strategy.
	maxPagesPerStrategy = 3

	// defaultPageDelay is the provider-mandated wait before a next-page
	// token becomes valid.
	defaultPageDelay = 2 * time.Second

	// MaxResults is the hard cap on leads returned by one search.
	MaxResults = 100

	// leadSource tags each lead's provenance.
	leadSource = "Google Places (Real Data)"
)

// Service orchestrates lead discovery. Strategies, pagination pages, and
// detail fetches run strictly sequentially; the provider's page-token
// activation delay forbids parallel pagination, and sequential detail
// fetches bound the request rate.
type Service struct {
	places    places.Client
	geocoder  *geocoder.Geocoder
	cache     *cache.Cache
	leadsTTL  time.Duration
	pageDelay time.Duration
}

// Option configures the Service.
type Option func(*Service)

// WithLeadsTTL overrides the cache TTL for assembled lead lists.
func WithLeadsTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.leadsTTL = ttl
	}
}

// WithPageDelay overrides the pagination token-activation wait, for tests.
func WithPageDelay(d time.Duration) Option {
	return func(s *Service) {
		s.pageDelay = d
	}
}

// NewService creates a discovery Service.
func NewService(p places.Client, g *geocoder.Geocoder, c *cache.Cache, opts ...Option) *Service {
	s := &Service{
		places:    p,
		geocoder:  g,
		cache:     c,
		leadsTTL:  time.Hour,
		pageDelay: defaultPageDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// strategyParams parametrizes one nearby-search strategy.
type strategyParams struct {
	name    string
	typ     string
	keyword string
	radius  int
}

// Search runs the full pipeline for (sector, location) and returns up to
// maxResults leads. forceRefresh bypasses the cache read but still writes.
// Fails with apperr.KindInternal only when every strategy yields nothing.
func (s *Service) Search(ctx context.Context, sector, location string, maxResults int, forceRefresh bool) ([]model.Lead, error) {
	if maxResults <= 0 || maxResults > MaxResults {
		maxResults = MaxResults
	}

	key := fmt.Sprintf("leads_%s_%s_%d", sector, location, maxResults)
	if !forceRefresh {
		if v, ok := s.cache.Get(key); ok {
			if leads, ok := v.([]model.Lead); ok {
				zap.L().Debug("lead cache hit", zap.String("key", key))
				return leads, nil
			}
		}
	}

	coords, err := s.geocoder.Geocode(ctx, location)
	if err != nil {
		return nil, err
	}

	candidates, err := s.collectCandidates(ctx, sector, location, coords, maxResults)
	if err != nil {
		return nil, err
	}
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	leads := make([]model.Lead, 0, len(candidates))
	for _, cand := range candidates {
		lead, ok := s.enrich(ctx, cand, sector, location)
		if !ok {
			continue
		}
		leads = append(leads, lead)
	}

	s.cache.SetTTL(key, leads, s.leadsTTL)

	zap.L().Info("lead search complete",
		zap.String("sector", sector),
		zap.String("location", location),
		zap.Int("candidates", len(candidates)),
		zap.Int("leads", len(leads)),
	)
	return leads, nil
}

// collectCandidates runs the four search strategies in order, each gated by
// the broaden threshold, merging results by unique place id in insertion
// order. Progressive broadening (type+keyword, keyword-only, generic term,
// wider radius) trades precision for recall only when the previous step
// under-delivered.
func (s *Service) collectCandidates(ctx context.Context, sector, location string, coords model.Coordinates, maxResults int) ([]places.NearbyPlace, error) {
	placeType := MapSectorToType(sector)

	genericTerm := "store"
	if sector == "Retail" {
		genericTerm = "shop"
	}

	strategies := []strategyParams{
		{name: "typed_keyword", typ: placeType, keyword: sector, radius: 20000},
		{name: "keyword_only", keyword: sector, radius: 25000},
		{name: "generic_term", keyword: genericTerm, radius: 25000},
		{name: "wide_radius", keyword: sector, radius: 50000},
	}

	var merged []places.NearbyPlace
	seen := make(map[string]bool)

	for i, params := range strategies {
		if i > 0 && len(merged) >= broadenThreshold {
			break
		}

		found := s.runStrategy(ctx, params, coords, maxResults-len(merged))

		var added int
		for _, p := range found {
			if seen[p.PlaceID] {
				continue
			}
			seen[p.PlaceID] = true
			merged = append(merged, p)
			added++
		}

		zap.L().Debug("strategy finished",
			zap.String("strategy", params.name),
			zap.Int("found", len(found)),
			zap.Int("added", added),
			zap.Int("unique_total", len(merged)),
		)
	}

	if len(merged) == 0 {
		return nil, apperr.Internalf("No results found for %s in %s", sector, location)
	}
	return merged, nil
}

// runStrategy executes one nearby search with pagination. Page errors abort
// the remaining pages silently; results gathered so far are kept.
func (s *Service) runStrategy(ctx context.Context, params strategyParams, coords model.Coordinates, budget int) []places.NearbyPlace {
	if budget <= 0 {
		budget = MaxResults
	}

	log := zap.L().With(zap.String("strategy", params.name))

	var collected []places.NearbyPlace
	var pageToken string

	for page := 0; page < maxPagesPerStrategy; page++ {
		if page > 0 {
			// Next-page tokens only activate after a short server-side delay.
			select {
			case <-ctx.Done():
				return collected
			case <-time.After(s.pageDelay):
			}
		}

		resp, err := s.places.NearbySearch(ctx, places.NearbyRequest{
			Location:  places.LatLng{Latitude: coords.Latitude, Longitude: coords.Longitude},
			Radius:    params.radius,
			Type:      params.typ,
			Keyword:   params.keyword,
			PageToken: pageToken,
		})
		if err != nil {
			log.Warn("page fetch failed, stopping pagination", zap.Int("page", page), zap.Error(err))
			return collected
		}

		collected = append(collected, resp.Results...)

		if resp.NextPageToken == "" || len(collected) >= budget {
			break
		}
		pageToken = resp.NextPageToken
	}

	return collected
}
