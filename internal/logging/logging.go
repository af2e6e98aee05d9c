// Package logging configures the process-wide slog default. All
// packages log through slog-context handles, so the default handler
// set here is what they write to.
package logging

import (
	"log/slog"
	"os"
	"strings"

	slogctx "github.com/veqryn/slog-context"

	"github.com/Mitch2826/Hostel-Hunt/internal/config"
)

// Setup installs the default logger from config. Logs go to stderr so
// command output on stdout stays clean.
func Setup(cfg config.Logger) {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(slogctx.NewHandler(handler, nil)))
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
