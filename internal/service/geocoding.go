package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/UnknownOlympus/geocmp/internal/geo"
	"github.com/UnknownOlympus/geocmp/internal/geocoding"
	"github.com/UnknownOlympus/geocmp/internal/metrics"
	"github.com/UnknownOlympus/geocmp/internal/models"
)

// NamedProvider pairs a geocoding provider with the name it is reported under.
type NamedProvider struct {
	Name     string
	Provider geocoding.Provider
}

// RowSink receives the comparison results for each evaluated address, in input order.
type RowSink interface {
	WriteRow(address string, results map[string]models.ComparisonResult) error
}

// Comparator runs every provider against the same address and judges each
// answer by its distance from the reference provider's answer.
type Comparator struct {
	log       *slog.Logger     // Logger for logging service activities
	providers []NamedProvider  // Providers in lookup order
	reference string           // Name of the provider treated as ground truth
	metrics   *metrics.Metrics // Metrics for tracking lookups and verdicts
}

// NewComparator creates a new Comparator. The reference must name one of the providers
// for any address to pass.
func NewComparator(
	log *slog.Logger,
	providers []NamedProvider,
	reference string,
	metrics *metrics.Metrics,
) *Comparator {
	return &Comparator{
		log:       log,
		providers: providers,
		reference: reference,
		metrics:   metrics,
	}
}

// Names returns the provider names in sorted order.
func (c *Comparator) Names() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name)
	}
	slices.Sort(names)

	return names
}

// Locate geocodes the address with every provider, one after another.
// A provider failure is recorded as a nil location and never stops the others.
func (c *Comparator) Locate(ctx context.Context, address string) models.ProviderResult {
	result := make(models.ProviderResult, len(c.providers))

	for _, p := range c.providers {
		startTime := time.Now()
		coords, err := p.Provider.Geocode(ctx, address)
		c.metrics.RequestSeconds.WithLabelValues(p.Name).Observe(time.Since(startTime).Seconds())

		if err != nil {
			c.log.DebugContext(ctx, "Failed to geocode", "provider", p.Name, "address", address, "error", err)
			c.metrics.Lookups.WithLabelValues(p.Name, "failure").Inc()
			result[p.Name] = nil
			continue
		}

		c.metrics.Lookups.WithLabelValues(p.Name, "success").Inc()
		result[p.Name] = coords
	}

	return result
}

// Compare geocodes the address and scores every provider, the reference included,
// against the reference location. A provider passes only when its distance is
// strictly below threshold meters.
func (c *Comparator) Compare(
	ctx context.Context,
	address string,
	threshold float64,
) map[string]models.ComparisonResult {
	locations := c.Locate(ctx, address)

	authoritative := locations[c.reference]
	if authoritative == nil {
		c.log.WarnContext(ctx, "Reference provider couldn't geocode address",
			"provider", c.reference, "address", address)
	}

	results := make(map[string]models.ComparisonResult, len(locations))
	for name, location := range locations {
		result := models.ComparisonResult{Location: location}

		if authoritative != nil && location != nil {
			distance := geo.Distance(*location, *authoritative)
			result.Distance = &distance
			result.Passed = distance < threshold
		}

		verdict := "fail"
		if result.Passed {
			verdict = "pass"
		}
		c.metrics.Comparisons.WithLabelValues(name, verdict).Inc()

		results[name] = result
	}

	return results
}

// Evaluate compares every line of input as an address, in file order, and hands
// the results to sink. The trailing line break is not part of the address.
// The optional progress callback runs after each address.
func (c *Comparator) Evaluate(
	ctx context.Context,
	input io.Reader,
	threshold float64,
	sink RowSink,
	progress func(),
) error {
	reader := bufio.NewReader(input)
	lineNum := 0

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("evaluation interrupted after %d addresses: %w", lineNum, err)
		}

		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("failed to read input: %w", readErr)
		}
		if line == "" && readErr != nil {
			return nil
		}

		lineNum++
		address := strings.TrimRight(line, "\r\n")
		c.log.DebugContext(ctx, "Evaluating address", "line", lineNum, "address", address)

		results := c.Compare(ctx, address, threshold)
		c.metrics.AddressesProcessed.Inc()

		if err := sink.WriteRow(address, results); err != nil {
			return fmt.Errorf("failed to write results for line %d: %w", lineNum, err)
		}
		if progress != nil {
			progress()
		}

		if readErr != nil {
			return nil
		}
	}
}
