package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// Constants for the supported log formats.
const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// main is the entry point of the application.
func main() {
	// Cancel the run on an interrupt so the current address finishes cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogger initializes and returns a logger writing to w.
// Verbose mode shows every diagnostic; otherwise only errors get through,
// which keeps per-address failures silent.
func setupLogger(w io.Writer, verbose bool, format string) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && !verbose {
				return slog.Attr{}
			}
			return a
		},
	}

	switch format {
	case logFormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts))
	case logFormatText, "":
		return slog.New(slog.NewTextHandler(w, opts))
	default:
		log := slog.New(slog.NewTextHandler(w, opts))
		log.Error("The log format is invalid, falling back to text.",
			slog.String("log_format", format),
			slog.String("available_formats", "text, json"))
		return log
	}
}
