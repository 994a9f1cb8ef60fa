package models

// Coordinates represents a geographical point defined by its longitude and latitude.
type Coordinates struct {
	Latitude  float64 // Latitude of the geographical point, in decimal degrees.
	Longitude float64 // Longitude of the geographical point, in decimal degrees.
}

// ProviderResult maps a provider name to the location it returned for one address.
// A nil value means the provider could not geocode the address.
type ProviderResult map[string]*Coordinates
