package models

import (
	"os"
	"strconv"
	"time"

	"github.com/rohanthewiz/serr"
)

// ============================================================================
// Sync Configuration
//
// Loads remote sync settings from environment variables. Sync is enabled
// only when both the endpoint URL and the API key are present; otherwise
// the app runs in local-only mode and every remote operation is a no-op.
// ============================================================================

// SyncConfig holds the configuration for the remote sync client.
// All values are loaded from environment variables to keep deployment
// configuration external to the binary.
type SyncConfig struct {
	EndpointURL string        // URL of the spreadsheet proxy endpoint (LIFELINE_SYNC_URL)
	APIKey      string        // Shared secret the endpoint expects in the payload (LIFELINE_SYNC_API_KEY)
	SheetName   string        // Sub-collection / sheet tab holding the rows (LIFELINE_SYNC_SHEET)
	SyncOnLoad  bool          // Fetch from the remote at startup (LIFELINE_SYNC_ON_LOAD)
	Interval    time.Duration // Background sync interval, 0 disables (LIFELINE_SYNC_INTERVAL)
}

// defaultSheetName matches the remote endpoint's default tab.
const defaultSheetName = "Events"

// defaultSyncInterval balances freshness with network overhead for a
// single-user setup.
const defaultSyncInterval = 5 * time.Minute

// LoadSyncConfig reads sync configuration from environment variables.
// Always returns a config so callers can inspect state without nil checks.
func LoadSyncConfig() (*SyncConfig, error) {
	cfg := &SyncConfig{
		EndpointURL: os.Getenv("LIFELINE_SYNC_URL"),
		APIKey:      os.Getenv("LIFELINE_SYNC_API_KEY"),
		SheetName:   defaultSheetName,
		SyncOnLoad:  true,
		Interval:    defaultSyncInterval,
	}

	if sheet := os.Getenv("LIFELINE_SYNC_SHEET"); sheet != "" {
		cfg.SheetName = sheet
	}

	if onLoadStr := os.Getenv("LIFELINE_SYNC_ON_LOAD"); onLoadStr != "" {
		onLoad, err := strconv.ParseBool(onLoadStr)
		if err != nil {
			return nil, serr.Wrap(err, "invalid LIFELINE_SYNC_ON_LOAD value, expected true/false")
		}
		cfg.SyncOnLoad = onLoad
	}

	// Interval "0" disables the periodic background sync entirely
	if intervalStr := os.Getenv("LIFELINE_SYNC_INTERVAL"); intervalStr != "" {
		if intervalStr == "0" {
			cfg.Interval = 0
		} else {
			interval, err := time.ParseDuration(intervalStr)
			if err != nil {
				return nil, serr.Wrap(err, "invalid LIFELINE_SYNC_INTERVAL value, expected duration like '5m' or '30s'")
			}
			cfg.Interval = interval
		}
	}

	return cfg, nil
}

// Enabled reports whether remote sync is configured. Both the endpoint and
// the key are required; a partial configuration stays in local-only mode.
func (c *SyncConfig) Enabled() bool {
	return c.EndpointURL != "" && c.APIKey != ""
}

// Validate checks the optional knobs when sync is enabled. Called at startup
// to fail fast on misconfiguration rather than mid-cycle.
func (c *SyncConfig) Validate() error {
	if !c.Enabled() {
		return nil // Nothing to validate in local-only mode
	}
	if c.SheetName == "" {
		return serr.New("LIFELINE_SYNC_SHEET must not be empty when sync is enabled")
	}
	if c.Interval != 0 && c.Interval < 10*time.Second {
		return serr.New("LIFELINE_SYNC_INTERVAL must be at least 10s (or 0 to disable)")
	}
	return nil
}
