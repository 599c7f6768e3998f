package mcpserver

import (
	"log/slog"

	"github.com/erraggy/oasurl/internal/settings"
)

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASURL_* environment variables.
// Invalid values log a warning and fall back to the defaults.
func loadConfig() *settings.Settings {
	s, err := settings.Load()
	if err != nil {
		slog.Warn("invalid OASURL_* environment, using defaults", "error", err)
		return settings.Default()
	}
	return s
}
