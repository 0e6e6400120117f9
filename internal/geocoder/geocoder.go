// Package geocoder resolves free-text location names to coordinates,
// preferring a static city table before calling the geocoding API.
package geocoder

import (
	"context"
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/leadscout/leadscout/internal/apperr"
	"github.com/leadscout/leadscout/internal/cache"
	"github.com/leadscout/leadscout/internal/model"
	"github.com/leadscout/leadscout/pkg/places"
)

// countryQualifier disambiguates bare city names for the geocoding API.
const countryQualifier = "India"

// knownCities maps normalized city names to coordinates. These cover the
// locations the product targets, avoiding external calls and keeping the
// common cases deterministic.
var knownCities = map[string]model.Coordinates{
	"chennai":         {Latitude: 13.0827, Longitude: 80.2707},
	"madurai":         {Latitude: 9.9252, Longitude: 78.1198},
	"coimbatore":      {Latitude: 11.0168, Longitude: 76.9558},
	"tiruchirappalli": {Latitude: 10.7905, Longitude: 78.7047},
	"salem":           {Latitude: 11.6643, Longitude: 78.1460},
	"tirunelveli":     {Latitude: 8.7139, Longitude: 77.7567},
	"vellore":         {Latitude: 12.9165, Longitude: 79.1325},
	"erode":           {Latitude: 11.3410, Longitude: 77.7172},
	"thanjavur":       {Latitude: 10.7870, Longitude: 79.1378},
	"dindigul":        {Latitude: 10.3673, Longitude: 77.9803},
	"kanchipuram":     {Latitude: 12.8342, Longitude: 79.7036},
	"kochi":           {Latitude: 9.9312, Longitude: 76.2673},
	"bangalore":       {Latitude: 12.9716, Longitude: 77.5946},
	"bengaluru":       {Latitude: 12.9716, Longitude: 77.5946},
	"hyderabad":       {Latitude: 17.3850, Longitude: 78.4867},
	"mumbai":          {Latitude: 19.0760, Longitude: 72.8777},
	"delhi":           {Latitude: 28.7041, Longitude: 77.1025},
	"kolkata":         {Latitude: 22.5726, Longitude: 88.3639},
	"pune":            {Latitude: 18.5204, Longitude: 73.8567},
	"ahmedabad":       {Latitude: 23.0225, Longitude: 72.5714},
	"jaipur":          {Latitude: 26.9124, Longitude: 75.7873},
	"lucknow":         {Latitude: 26.8467, Longitude: 80.9462},
	"nagpur":          {Latitude: 21.1458, Longitude: 79.0882},
	"visakhapatnam":   {Latitude: 17.6868, Longitude: 83.2185},
}

// Geocoder resolves location names, memoizing results in the shared cache.
type Geocoder struct {
	client places.Client
	cache  *cache.Cache
}

// New creates a Geocoder backed by the given provider client and cache.
func New(client places.Client, c *cache.Cache) *Geocoder {
	return &Geocoder{client: client, cache: c}
}

// Geocode resolves locationName to coordinates. A provider no-match is an
// apperr.KindNotFound error; transport failures propagate as internal errors.
// No retries are attempted.
func (g *Geocoder) Geocode(ctx context.Context, locationName string) (model.Coordinates, error) {
	key := "geocode_" + locationName
	if v, ok := g.cache.Get(key); ok {
		if coords, ok := v.(model.Coordinates); ok {
			return coords, nil
		}
	}

	normalized := strings.ToLower(strings.TrimSpace(locationName))
	if coords, ok := knownCities[normalized]; ok {
		g.cache.Set(key, coords)
		return coords, nil
	}

	query := locationName
	if !strings.Contains(strings.ToLower(query), strings.ToLower(countryQualifier)) {
		query += ", " + countryQualifier
	}

	loc, err := g.client.Geocode(ctx, query)
	if err != nil {
		if errors.Is(err, places.ErrZeroResults) {
			return model.Coordinates{}, apperr.NotFoundf("Location %q not found", locationName)
		}
		return model.Coordinates{}, eris.Wrapf(err, "geocoder: resolve %q", locationName)
	}

	coords := model.Coordinates{Latitude: loc.Latitude, Longitude: loc.Longitude}
	g.cache.Set(key, coords)

	zap.L().Debug("geocoded location",
		zap.String("location", locationName),
		zap.Float64("lat", coords.Latitude),
		zap.Float64("lng", coords.Longitude),
	)
	return coords, nil
}
