package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/leadscout/leadscout/internal/cache"
	"github.com/leadscout/leadscout/internal/discovery"
	"github.com/leadscout/leadscout/internal/geocoder"
	"github.com/leadscout/leadscout/internal/store"
	"github.com/leadscout/leadscout/pkg/places"
)

// buildService wires the discovery pipeline from config: Places client,
// geocoder, shared result cache.
func buildService() (*discovery.Service, *cache.Cache, error) {
	if err := cfg.Validate("search"); err != nil {
		return nil, nil, err
	}

	client := places.NewClient(cfg.Google.Key,
		places.WithBaseURL(cfg.Google.BaseURL),
		places.WithRateLimit(cfg.Google.RatePerSecond),
	)

	leadsTTL := time.Duration(cfg.Cache.LeadsTTLMinutes) * time.Minute
	geocodeTTL := time.Duration(cfg.Cache.GeocodeTTLMinutes) * time.Minute
	c := cache.New(geocodeTTL)

	svc := discovery.NewService(client, geocoder.New(client, c), c,
		discovery.WithLeadsTTL(leadsTTL),
		discovery.WithPageDelay(time.Duration(cfg.Search.PageDelaySecs)*time.Second),
	)
	return svc, c, nil
}

func sweepInterval() time.Duration {
	if cfg.Cache.SweepSecs <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(cfg.Cache.SweepSecs) * time.Second
}

func initStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initMigratedStore opens the configured store and applies migrations.
func initMigratedStore(ctx context.Context) (store.Store, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}
