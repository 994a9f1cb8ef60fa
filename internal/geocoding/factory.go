package geocoding

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents Google Maps geocoding provider, the reference for comparisons.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeDSTK represents the Data Science Toolkit, a Google-compatible geocoder.
	ProviderTypeDSTK ProviderType = "dstk"
	// ProviderTypeNominatim represents OpenStreetMap Nominatim geocoding provider.
	ProviderTypeNominatim ProviderType = "nominatim"
)

// AllProviderTypes lists every provider compared by geocmp, in lookup order.
var AllProviderTypes = []ProviderType{ProviderTypeGoogle, ProviderTypeDSTK, ProviderTypeNominatim}

// DefaultBaseURL returns the public endpoint of a provider type.
func DefaultBaseURL(pt ProviderType) string {
	switch pt {
	case ProviderTypeGoogle:
		return GoogleBaseURL
	case ProviderTypeDSTK:
		return DSTKBaseURL
	case ProviderTypeNominatim:
		return NominatimBaseURL
	default:
		return ""
	}
}

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type      ProviderType  // Type of provider to create
	BaseURL   string        // Endpoint override, DefaultBaseURL(Type) when empty
	APIKey    string        // API key (switches the Google provider to the Maps SDK)
	UserAgent string        // User-Agent sent with every request
	Timeout   time.Duration // Per-request timeout, zero for none
	Logger    *slog.Logger  // Logger for the provider
}

// NewProvider creates a geocoding provider based on the provided configuration.
// It applies the Factory pattern to decouple provider instantiation from business logic.
//
// Supported provider types:
// - "google": Google Maps Geocoding API (Maps SDK when an API key is given)
// - "dstk": Data Science Toolkit, Google-compatible API
// - "nominatim": OpenStreetMap Nominatim API (free, no API key required)
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL(config.Type)
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeDSTK:
		return NewGoogleLikeProvider(newFetcher(config), config.BaseURL, config.Logger), nil
	case ProviderTypeNominatim:
		return NewNominatimProvider(newFetcher(config), config.BaseURL, config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

func newFetcher(config ProviderConfig) *Fetcher {
	return NewFetcher(config.UserAgent, config.Timeout, config.Logger)
}

// newGoogleProvider creates a Google Maps geocoding provider.
// Without an API key it talks to the JSON endpoint directly, like any other Google-compatible host.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return NewGoogleLikeProvider(newFetcher(config), config.BaseURL, config.Logger), nil
	}

	httpClient := &http.Client{
		Timeout: config.Timeout,
		Transport: &userAgentTransport{
			transport: http.DefaultTransport,
			userAgent: config.UserAgent,
		},
	}

	client, err := maps.NewClient(
		maps.WithAPIKey(config.APIKey),
		maps.WithBaseURL(config.BaseURL),
		maps.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}
