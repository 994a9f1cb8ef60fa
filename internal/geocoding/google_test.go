package geocoding_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UnknownOlympus/geocmp/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

// mockGoogleAPIClient is a mock implementation of GoogleAPIClient.
type mockGoogleAPIClient struct {
	mock.Mock
}

func (m *mockGoogleAPIClient) Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	args := m.Called(ctx, r)
	results, _ := args.Get(0).([]maps.GeocodingResult)
	return results, args.Error(1)
}

func TestGeocode(t *testing.T) {
	mockClient := &mockGoogleAPIClient{}
	provider := geocoding.NewGoogleProvider(mockClient, slog.Default())
	ctx := t.Context()

	t.Run("api returns error", func(t *testing.T) {
		address := "some invalid place"
		req := &maps.GeocodingRequest{Address: address}

		mockClient.On("Geocode", ctx, req).Return(nil, assert.AnError).Once()

		_, err := provider.Geocode(ctx, address)

		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
		mockClient.AssertExpectations(t)
	})

	t.Run("api return empty response", func(t *testing.T) {
		address := "some invalid place"
		req := &maps.GeocodingRequest{Address: address}

		mockClient.On("Geocode", ctx, req).Return(nil, nil).Once()

		coords, err := provider.Geocode(ctx, address)

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrEmptyResponse)
		mockClient.AssertExpectations(t)
	})

	t.Run("successfull geocoding", func(t *testing.T) {
		address := "1600 Amphitheatre Parkway, Mountain View, CA"
		req := &maps.GeocodingRequest{Address: address}
		mockReponse := []maps.GeocodingResult{
			{Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: 37.42, Lng: -122.08}}},
			{Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: 1, Lng: 2}}},
		}

		mockClient.On("Geocode", ctx, req).Return(mockReponse, nil).Once()

		coords, err := provider.Geocode(ctx, address)

		require.NoError(t, err)
		require.NotNil(t, coords)
		require.InEpsilon(t, 37.42, coords.Latitude, 0.01)
		require.InEpsilon(t, -122.08, coords.Longitude, 0.01)
		mockClient.AssertExpectations(t)
	})
}

func TestGoogleProvider_MapsClient(t *testing.T) {
	var userAgent, address, key string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		address = r.URL.Query().Get("address")
		key = r.URL.Query().Get("key")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(googleOKBody))
	}))
	defer server.Close()

	provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderTypeGoogle,
		BaseURL:   server.URL,
		APIKey:    "test-api-key",
		UserAgent: "geocmp-test",
		Logger:    slog.Default(),
	})
	require.NoError(t, err)

	coords, err := provider.Geocode(t.Context(), "1600 Amphitheatre Parkway, Mountain View, CA")

	require.NoError(t, err)
	require.NotNil(t, coords)
	assert.InDelta(t, 37.4224, coords.Latitude, 1e-9)
	assert.InDelta(t, -122.0842, coords.Longitude, 1e-9)
	assert.Equal(t, "geocmp-test", userAgent)
	assert.Equal(t, "1600 Amphitheatre Parkway, Mountain View, CA", address)
	assert.Equal(t, "test-api-key", key)
}
