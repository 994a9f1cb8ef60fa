package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/UnknownOlympus/geocmp/internal/models"
)

// NominatimBaseURL is the public OpenStreetMap Nominatim search endpoint.
const NominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// NominatimProvider implements the Provider interface using OpenStreetMap's Nominatim API.
// This is a free geocoding service with usage limits (1 request/second for fair use).
type NominatimProvider struct {
	fetcher *Fetcher     // fetcher sends requests with the identifying User-Agent
	baseURL string       // Base URL for the Nominatim API
	log     *slog.Logger // Logger for logging operations
}

// nominatimResponse represents one entry of the JSON response from Nominatim API.
type nominatimResponse struct {
	Lat *string `json:"lat"` // Latitude as string
	Lon *string `json:"lon"` // Longitude as string
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimMissingCoords = errors.New("nominatim API returned no coordinates")
	ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")
)

// NewNominatimProvider creates a new Nominatim geocoding provider for the search endpoint at baseURL.
func NewNominatimProvider(fetcher *Fetcher, baseURL string, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{fetcher: fetcher, baseURL: baseURL, log: log}
}

// Geocode converts an address to geographic coordinates using the first Nominatim match.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	fullURL := np.baseURL + "?format=json&q=" + url.QueryEscape(address)
	np.log.DebugContext(ctx, "Geocoding using Nominatim", "url", fullURL)

	var results []nominatimResponse
	if err := np.fetcher.GetJSON(ctx, fullURL, &results); err != nil {
		np.log.WarnContext(ctx, "Geocoding returned a bad response", "url", fullURL)
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	if len(results) == 0 {
		np.log.WarnContext(ctx, "Geocoding returned no results", "url", fullURL)
		return nil, ErrNominatimEmptyResponse
	}

	info := results[0]
	if info.Lat == nil || info.Lon == nil {
		np.log.WarnContext(ctx, "Geocoding returned no coordinates", "url", fullURL)
		return nil, ErrNominatimMissingCoords
	}

	np.log.DebugContext(ctx, "Nominatim found result", "lat", *info.Lat, "lon", *info.Lon)

	lat, err := strconv.ParseFloat(*info.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, *info.Lat)
	}
	lon, err := strconv.ParseFloat(*info.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, *info.Lon)
	}

	return &models.Coordinates{
		Latitude:  lat,
		Longitude: lon,
	}, nil
}
