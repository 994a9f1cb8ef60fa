package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/UnknownOlympus/geocmp/internal/models"
)

const (
	// GoogleBaseURL is the public Google Maps host.
	GoogleBaseURL = "https://maps.googleapis.com"
	// DSTKBaseURL is the Data Science Toolkit host, which mirrors the Google geocoding API.
	DSTKBaseURL = "http://www.datasciencetoolkit.org"

	googleGeocodePath = "/maps/api/geocode/json"
	googleStatusOK    = "OK"
)

// Common errors for Google-compatible providers.
var (
	ErrGoogleMissingStatus   = errors.New("geocoding response has no status")
	ErrGoogleBadStatus       = errors.New("geocoding returned a bad status")
	ErrGoogleEmptyResults    = errors.New("geocoding returned no results")
	ErrGoogleMissingLocation = errors.New("geocoding returned no location")
)

// googleLikeResponse is the subset of the Google geocoding response we read.
type googleLikeResponse struct {
	Status  *string `json:"status"`
	Results []struct {
		Geometry struct {
			Location *struct {
				Lat *float64 `json:"lat"`
				Lng *float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// GoogleLikeProvider geocodes against any host that speaks the Google
// geocoding JSON API, such as Google itself or the Data Science Toolkit.
type GoogleLikeProvider struct {
	fetcher *Fetcher
	baseURL string
	log     *slog.Logger
}

// NewGoogleLikeProvider creates a provider for the Google-compatible API at baseURL.
func NewGoogleLikeProvider(fetcher *Fetcher, baseURL string, log *slog.Logger) *GoogleLikeProvider {
	return &GoogleLikeProvider{
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

// Geocode returns the location of the first result; the API has no
// confidence value to rank results by.
func (gp *GoogleLikeProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	fullURL := gp.baseURL + googleGeocodePath + "?sensor=false&address=" + url.QueryEscape(address)
	gp.log.DebugContext(ctx, "Geocoding using Google-compatible API", "url", fullURL)

	var response googleLikeResponse
	if err := gp.fetcher.GetJSON(ctx, fullURL, &response); err != nil {
		gp.log.WarnContext(ctx, "Geocoding returned a bad response", "url", fullURL)
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	if response.Status == nil {
		gp.log.WarnContext(ctx, "Geocoding returned no status", "url", fullURL)
		return nil, ErrGoogleMissingStatus
	}

	if *response.Status != googleStatusOK {
		gp.log.WarnContext(ctx, "Geocoding returned a bad status", "status", *response.Status, "url", fullURL)
		return nil, fmt.Errorf("%w '%s'", ErrGoogleBadStatus, *response.Status)
	}

	if len(response.Results) == 0 {
		gp.log.WarnContext(ctx, "Geocoding returned no results", "url", fullURL)
		return nil, ErrGoogleEmptyResults
	}

	location := response.Results[0].Geometry.Location
	if location == nil || location.Lat == nil || location.Lng == nil {
		gp.log.WarnContext(ctx, "Geocoding returned no coordinates", "url", fullURL)
		return nil, ErrGoogleMissingLocation
	}

	return &models.Coordinates{Latitude: *location.Lat, Longitude: *location.Lng}, nil
}
