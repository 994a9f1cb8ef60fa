package models

// ComparisonResult is the verdict for one provider on one address.
type ComparisonResult struct {
	Passed   bool         // Passed is true when Distance is strictly below the threshold.
	Distance *float64     // Distance from the reference location in meters, nil when unknown.
	Location *Coordinates // Location returned by the provider, nil on failure.
}
