package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/UnknownOlympus/geocmp/internal/config"
	"github.com/UnknownOlympus/geocmp/internal/geocoding"
	"github.com/UnknownOlympus/geocmp/internal/metrics"
	"github.com/UnknownOlympus/geocmp/internal/report"
	"github.com/UnknownOlympus/geocmp/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags.
var Version = "0.1.0"

// NewRootCmd creates the geocmp command.
func NewRootCmd() *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "geocmp --input FILE",
		Short: "Measures the quality of address to coordinate results across multiple services",
		Long: `geocmp geocodes every address in the input file with Google, the Data Science
Toolkit and OpenStreetMap Nominatim, then prints one row per address telling
whether each service landed within --distance meters of Google's answer.

Every flag can also be set through a GEOCMP_ environment variable, for example
GEOCMP_GOOGLE_API_KEY or GEOCMP_DISTANCE, or from a .env file.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				if errors.Is(err, config.ErrMissingInput) {
					_ = cmd.Usage()
				}
				return err
			}

			return run(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringP(config.KeyInput, "i", "", "input file (one address per line)")
	flags.IntP(config.KeyDistance, "d", config.DefaultDistance, "test distance in meters")
	flags.BoolP(config.KeyVerbose, "v", false, "output debugging information to stderr")
	flags.BoolP(config.KeyShowDistances, "s", false, "output distances rather than pass/fail information")
	flags.BoolP(config.KeyShowLocations, "l", false, "output locations rather than pass/fail information")
	flags.StringP(config.KeyFormat, "f", config.DefaultFormat, "output format: csv or markdown")
	flags.String(config.KeyLogFormat, config.DefaultLogFormat, "diagnostics format: text or json")
	flags.Bool(config.KeyProgress, false, "show a progress spinner when stderr is a terminal")
	flags.String(config.KeyMetricsFile, "", "write prometheus metrics to this file after the run")
	flags.Duration(config.KeyTimeout, config.DefaultTimeout, "timeout for each HTTP request (0 for none)")
	flags.String(config.KeyUserAgent, geocoding.DefaultUserAgent, "User-Agent sent to every service")
	flags.String(config.KeyGoogleAPIKey, "", "Google Maps API key (uses the Maps SDK client)")
	flags.String(config.KeyGoogleURL, geocoding.GoogleBaseURL, "Google geocoding host")
	flags.String(config.KeyDSTKURL, geocoding.DSTKBaseURL, "Data Science Toolkit host")
	flags.String(config.KeyNominatimURL, geocoding.NominatimBaseURL, "Nominatim search endpoint")

	if err := v.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("failed to bind flags: %v", err))
	}

	return cmd
}

// run evaluates every address of cfg.Input and writes the table to stdout.
func run(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	logger := setupLogger(stderr, cfg.Verbose, cfg.LogFormat)

	input, err := os.Open(cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer input.Close()

	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)

	providers, err := newProviders(cfg, logger)
	if err != nil {
		return err
	}

	comparator := service.NewComparator(logger, providers, string(geocoding.ProviderTypeGoogle), appMetrics)

	mode := report.ModeFromFlags(cfg.ShowDistances, cfg.ShowLocations)
	writer, err := report.NewWriter(cfg.Format, stdout, mode, comparator.Names())
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Comparing geocoders",
		"input", cfg.Input, "distance", cfg.Distance, "google_sdk", cfg.GoogleAPIKey != "")

	bar := newProgressBar(cfg.Progress, stderr)
	var progress func()
	if bar != nil {
		progress = func() { _ = bar.Add(1) }
	}

	evalErr := comparator.Evaluate(ctx, input, float64(cfg.Distance), writer, progress)

	if bar != nil {
		_ = bar.Finish()
	}
	if err = writer.Flush(); err != nil {
		return err
	}
	if cfg.MetricsFile != "" {
		if err = prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			logger.ErrorContext(ctx, "Failed to write metrics file", "path", cfg.MetricsFile, "error", err)
		}
	}

	return evalErr
}

// newProviders builds one provider per known type, in lookup order.
func newProviders(cfg *config.Config, logger *slog.Logger) ([]service.NamedProvider, error) {
	endpoints := map[geocoding.ProviderType]string{
		geocoding.ProviderTypeGoogle:    cfg.Endpoints.Google,
		geocoding.ProviderTypeDSTK:      cfg.Endpoints.DSTK,
		geocoding.ProviderTypeNominatim: cfg.Endpoints.Nominatim,
	}

	providers := make([]service.NamedProvider, 0, len(geocoding.AllProviderTypes))
	for _, pt := range geocoding.AllProviderTypes {
		provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
			Type:      pt,
			BaseURL:   endpoints[pt],
			APIKey:    cfg.GoogleAPIKey,
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout,
			Logger:    logger.With("provider", string(pt)),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s provider: %w", pt, err)
		}
		providers = append(providers, service.NamedProvider{Name: string(pt), Provider: provider})
	}

	return providers, nil
}

// newProgressBar returns a spinner on stderr, or nil when progress is off or
// stderr is not an interactive terminal.
func newProgressBar(enabled bool, stderr io.Writer) *progressbar.ProgressBar {
	if !enabled {
		return nil
	}

	file, ok := stderr.(*os.File)
	if !ok || !(isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())) {
		return nil
	}

	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Geocoding addresses"),
		progressbar.OptionSetWriter(stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
