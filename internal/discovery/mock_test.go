package discovery

import (
	"context"
	"fmt"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/leadscout/leadscout/pkg/places"
)

// mockPlaces implements places.Client, recording every call.
type mockPlaces struct {
	mu sync.Mutex

	nearbyCalls []places.NearbyRequest
	nearbyFn    func(req places.NearbyRequest) (*places.NearbyResponse, error)

	detailsCalls []string
	detailsFn    func(placeID string) (*places.PlaceDetails, error)

	geocodeCalls int
	geocodeFn    func(address string) (*places.LatLng, error)
}

func (m *mockPlaces) NearbySearch(_ context.Context, req places.NearbyRequest) (*places.NearbyResponse, error) {
	m.mu.Lock()
	m.nearbyCalls = append(m.nearbyCalls, req)
	m.mu.Unlock()
	if m.nearbyFn == nil {
		return &places.NearbyResponse{Status: places.StatusOK}, nil
	}
	return m.nearbyFn(req)
}

func (m *mockPlaces) Details(_ context.Context, placeID string) (*places.PlaceDetails, error) {
	m.mu.Lock()
	m.detailsCalls = append(m.detailsCalls, placeID)
	m.mu.Unlock()
	if m.detailsFn == nil {
		return &places.PlaceDetails{PlaceID: placeID, Name: "Place " + placeID}, nil
	}
	return m.detailsFn(placeID)
}

func (m *mockPlaces) Geocode(_ context.Context, address string) (*places.LatLng, error) {
	m.mu.Lock()
	m.geocodeCalls++
	m.mu.Unlock()
	if m.geocodeFn == nil {
		return nil, eris.New("geocode not stubbed")
	}
	return m.geocodeFn(address)
}

func (m *mockPlaces) PhotoURL(ref string) string {
	return "https://photos.test/" + ref
}

// nPlaces builds n distinct nearby places with ids prefix-0..prefix-(n-1).
func nPlaces(prefix string, n int) []places.NearbyPlace {
	out := make([]places.NearbyPlace, n)
	for i := range out {
		out[i] = places.NearbyPlace{
			PlaceID: fmt.Sprintf("%s-%d", prefix, i),
			Name:    fmt.Sprintf("Shop %s %d", prefix, i),
		}
	}
	return out
}
