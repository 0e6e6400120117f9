package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadscout/leadscout/internal/apperr"
	"github.com/leadscout/leadscout/internal/cache"
	"github.com/leadscout/leadscout/internal/geocoder"
	"github.com/leadscout/leadscout/pkg/places"
)

func newTestService(mock *mockPlaces) *Service {
	c := cache.New(time.Minute)
	return NewService(mock, geocoder.New(mock, c), c, WithPageDelay(0))
}

func TestSearch_Strategy1SufficientSkipsFallbacks(t *testing.T) {
	mock := &mockPlaces{
		nearbyFn: func(_ places.NearbyRequest) (*places.NearbyResponse, error) {
			return &places.NearbyResponse{Status: places.StatusOK, Results: nPlaces("s1", 25)}, nil
		},
	}
	svc := newTestService(mock)

	leads, err := svc.Search(context.Background(), "Electronics", "chennai", 20, false)
	require.NoError(t, err)
	assert.Len(t, leads, 20, "result truncated to maxResults")

	require.Len(t, mock.nearbyCalls, 1, "strategies 2-4 must not run when strategy 1 yields enough")
	first := mock.nearbyCalls[0]
	assert.Equal(t, "electronics_store", first.Type)
	assert.Equal(t, "Electronics", first.Keyword)
	assert.Equal(t, 20000, first.Radius)
	assert.InDelta(t, 13.0827, first.Location.Latitude, 0.0001)
	assert.Equal(t, 0, mock.geocodeCalls, "chennai resolves from the static table")
}

func TestSearch_BroadensWhenUnderThreshold(t *testing.T) {
	mock := &mockPlaces{}
	mock.nearbyFn = func(req places.NearbyRequest) (*places.NearbyResponse, error) {
		switch len(mock.nearbyCalls) {
		case 1: // strategy 1: typed + keyword
			return &places.NearbyResponse{Status: places.StatusOK, Results: nPlaces("s1", 5)}, nil
		case 2: // strategy 2: keyword only
			assert.Empty(t, req.Type)
			assert.Equal(t, "Retail", req.Keyword)
			assert.Equal(t, 25000, req.Radius)
			return &places.NearbyResponse{Status: places.StatusOK, Results: nPlaces("s2", 5)}, nil
		case 3: // strategy 3: generic term, "shop" for Retail
			assert.Equal(t, "shop", req.Keyword)
			assert.Equal(t, 25000, req.Radius)
			return &places.NearbyResponse{Status: places.StatusOK, Results: nPlaces("s3", 5)}, nil
		default: // strategy 4: original keyword, wider radius
			assert.Equal(t, "Retail", req.Keyword)
			assert.Equal(t, 50000, req.Radius)
			return &places.NearbyResponse{Status: places.StatusOK, Results: nPlaces("s4", 5)}, nil
		}
	}
	svc := newTestService(mock)

	leads, err := svc.Search(context.Background(), "Retail", "chennai", 100, false)
	require.NoError(t, err)
	assert.Len(t, leads, 20)
	assert.Len(t, mock.nearbyCalls, 4, "all four strategies run while below threshold")
}

func TestSearch_StopsBroadeningOnceThresholdMet(t *testing.T) {
	mock := &mockPlaces{}
	mock.nearbyFn = func(_ places.NearbyRequest) (*places.NearbyResponse, error) {
		if len(mock.nearbyCalls) == 1 {
			return &places.NearbyResponse{Status: places.StatusOK, Results: nPlaces("s1", 5)}, nil
		}
		return &places.NearbyResponse{Status: places.StatusOK, Results: nPlaces("s2", 30)}, nil
	}
	svc := newTestService(mock)

	leads, err := svc.Search(context.Background(), "Electronics", "chennai", 100, false)
	require.NoError(t, err)
	assert.Len(t, leads, 35)
	assert.Len(t, mock.nearbyCalls, 2, "strategies 3-4 skipped once the set reaches the threshold")
}

func TestSearch_DeduplicatesAcrossStrategies(t *testing.T) {
	shared := nPlaces("dup", 5)
	mock := &mockPlaces{}
	mock.nearbyFn = func(_ places.NearbyRequest) (*places.NearbyResponse, error) {
		// Every strategy returns the same five places.
		return &places.NearbyResponse{Status: places.StatusOK, Results: shared}, nil
	}
	svc := newTestService(mock)

	leads, err := svc.Search(context.Background(), "Electronics", "chennai", 100, false)
	require.NoError(t, err)
	assert.Len(t, leads, 5)

	ids := make(map[string]bool)
	for _, l := range leads {
		assert.False(t, ids[l.ID], "duplicate id %s", l.ID)
		ids[l.ID] = true
	}
}

func TestSearch_Pagination(t *testing.T) {
	mock := &mockPlaces{}
	mock.nearbyFn = func(req places.NearbyRequest) (*places.NearbyResponse, error) {
		switch req.PageToken {
		case "":
			return &places.NearbyResponse{Status: places.StatusOK, Results: nPlaces("p1", 20), NextPageToken: "tok-2"}, nil
		case "tok-2":
			return &places.NearbyResponse{Status: places.StatusOK, Results: nPlaces("p2", 20), NextPageToken: "tok-3"}, nil
		case "tok-3":
			return &places.NearbyResponse{Status: places.StatusOK, Results: nPlaces("p3", 20), NextPageToken: "tok-4"}, nil
		default:
			t.Fatalf("unexpected page token %q", req.PageToken)
			return nil, nil
		}
	}
	svc := newTestService(mock)

	leads, err := svc.Search(context.Background(), "Electronics", "chennai", 100, false)
	require.NoError(t, err)
	assert.Len(t, leads, 60, "three pages of twenty, never a fourth")
	assert.Len(t, mock.nearbyCalls, 3)
}

func TestSearch_PageErrorAbortsPaginationSilently(t *testing.T) {
	mock := &mockPlaces{}
	mock.nearbyFn = func(req places.NearbyRequest) (*places.NearbyResponse, error) {
		if req.PageToken == "" {
			return &places.NearbyResponse{Status: places.StatusOK, Results: nPlaces("p1", 20), NextPageToken: "tok-2"}, nil
		}
		return nil, eris.New("token not ready")
	}
	svc := newTestService(mock)

	leads, err := svc.Search(context.Background(), "Electronics", "chennai", 100, false)
	require.NoError(t, err, "a page failure must not fail the search")
	assert.Len(t, leads, 20)
}

func TestSearch_AllStrategiesEmptyIsInternalError(t *testing.T) {
	mock := &mockPlaces{
		nearbyFn: func(_ places.NearbyRequest) (*places.NearbyResponse, error) {
			return &places.NearbyResponse{Status: places.StatusZeroResults}, nil
		},
	}
	svc := newTestService(mock)

	leads, err := svc.Search(context.Background(), "Electronics", "chennai", 20, false)
	require.Error(t, err)
	assert.Nil(t, leads)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "No results found for Electronics in chennai")
	assert.Len(t, mock.nearbyCalls, 4, "all strategies exhausted before failing")
}

func TestSearch_DetailFailureSkipsCandidate(t *testing.T) {
	mock := &mockPlaces{
		nearbyFn: func(_ places.NearbyRequest) (*places.NearbyResponse, error) {
			return &places.NearbyResponse{Status: places.StatusOK, Results: nPlaces("s1", 10)}, nil
		},
		detailsFn: func(placeID string) (*places.PlaceDetails, error) {
			if placeID == "s1-3" {
				return nil, eris.New("places: details status NOT_FOUND")
			}
			return &places.PlaceDetails{PlaceID: placeID, Name: "Place " + placeID}, nil
		},
	}
	svc := newTestService(mock)

	leads, err := svc.Search(context.Background(), "Electronics", "chennai", 10, false)
	require.NoError(t, err)
	assert.Len(t, leads, 9, "one failed detail fetch drops exactly one lead")
	for _, l := range leads {
		assert.NotEqual(t, "s1-3", l.ID)
	}
}

func TestSearch_CacheHitAndForceRefresh(t *testing.T) {
	mock := &mockPlaces{
		nearbyFn: func(_ places.NearbyRequest) (*places.NearbyResponse, error) {
			return &places.NearbyResponse{Status: places.StatusOK, Results: nPlaces("s1", 25)}, nil
		},
	}
	svc := newTestService(mock)

	_, err := svc.Search(context.Background(), "Electronics", "chennai", 20, false)
	require.NoError(t, err)
	callsAfterFirst := len(mock.nearbyCalls)

	_, err = svc.Search(context.Background(), "Electronics", "chennai", 20, false)
	require.NoError(t, err)
	assert.Equal(t, callsAfterFirst, len(mock.nearbyCalls), "second search served from cache")

	_, err = svc.Search(context.Background(), "Electronics", "chennai", 20, true)
	require.NoError(t, err)
	assert.Greater(t, len(mock.nearbyCalls), callsAfterFirst, "forceRefresh bypasses the cache read")
}

func TestSearch_MaxResultsClamped(t *testing.T) {
	mock := &mockPlaces{
		nearbyFn: func(_ places.NearbyRequest) (*places.NearbyResponse, error) {
			return &places.NearbyResponse{Status: places.StatusOK, Results: nPlaces("s1", 30)}, nil
		},
	}
	svc := newTestService(mock)

	leads, err := svc.Search(context.Background(), "Electronics", "chennai", 500, false)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(leads), MaxResults)
}
