package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. GEOCMP_DISTANCE.
const EnvPrefix = "GEOCMP"

// Configuration keys. Each matches a command-line flag of the same name.
const (
	KeyInput         = "input"
	KeyDistance      = "distance"
	KeyVerbose       = "verbose"
	KeyShowDistances = "showdistances"
	KeyShowLocations = "showlocations"
	KeyFormat        = "format"
	KeyLogFormat     = "log-format"
	KeyProgress      = "progress"
	KeyMetricsFile   = "metrics-file"
	KeyTimeout       = "timeout"
	KeyUserAgent     = "user-agent"
	KeyGoogleAPIKey  = "google-api-key"
	KeyGoogleURL     = "google-url"
	KeyDSTKURL       = "dstk-url"
	KeyNominatimURL  = "nominatim-url"
)

// Default values.
const (
	DefaultDistance  = 100
	DefaultTimeout   = 10 * time.Second
	DefaultFormat    = "csv"
	DefaultLogFormat = "text"
)

// ErrMissingInput is returned when no input file was given.
var ErrMissingInput = errors.New("missing required input file")

// Config holds the settings for one geocmp run.
type Config struct {
	Input         string        // Input is the path of the address file, one address per line.
	Distance      int           // Distance is the pass threshold in meters.
	Verbose       bool          // Verbose enables diagnostics on stderr.
	ShowDistances bool          // ShowDistances prints distances instead of pass/fail.
	ShowLocations bool          // ShowLocations prints locations instead of pass/fail.
	Format        string        // Format is the table format: csv or markdown.
	LogFormat     string        // LogFormat is the diagnostics format: text or json.
	Progress      bool          // Progress shows a spinner on an interactive stderr.
	MetricsFile   string        // MetricsFile receives the prometheus metrics after the run.
	Timeout       time.Duration // Timeout bounds each HTTP request, zero for none.
	UserAgent     string        // UserAgent identifies geocmp to the providers.
	GoogleAPIKey  string        // GoogleAPIKey switches the google provider to the Maps SDK.
	Endpoints     Endpoints     // Endpoints override the providers' public hosts.
}

// Endpoints holds per-provider base URLs. Empty values mean the public default.
type Endpoints struct {
	Google    string
	DSTK      string
	Nominatim string
}

// New returns a viper instance with defaults and environment binding in place.
// A .env file in the working directory is loaded first if present.
func New() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDistance, DefaultDistance)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyFormat, DefaultFormat)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)

	return v
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Input:         v.GetString(KeyInput),
		Distance:      v.GetInt(KeyDistance),
		Verbose:       v.GetBool(KeyVerbose),
		ShowDistances: v.GetBool(KeyShowDistances),
		ShowLocations: v.GetBool(KeyShowLocations),
		Format:        strings.ToLower(v.GetString(KeyFormat)),
		LogFormat:     strings.ToLower(v.GetString(KeyLogFormat)),
		Progress:      v.GetBool(KeyProgress),
		MetricsFile:   v.GetString(KeyMetricsFile),
		Timeout:       v.GetDuration(KeyTimeout),
		UserAgent:     v.GetString(KeyUserAgent),
		GoogleAPIKey:  v.GetString(KeyGoogleAPIKey),
		Endpoints: Endpoints{
			Google:    v.GetString(KeyGoogleURL),
			DSTK:      v.GetString(KeyDSTKURL),
			Nominatim: v.GetString(KeyNominatimURL),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings that would make a run meaningless.
func (c *Config) Validate() error {
	if c.Input == "" {
		return ErrMissingInput
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}

	return nil
}
