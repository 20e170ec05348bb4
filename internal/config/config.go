// Package config loads and persists tally's settings and resolves the paths
// used for configuration, data, and logs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
)

const Version = "v0.1.0"

type (
	// Config holds all configuration settings.
	Config struct {
		Tracking TrackingConfig
		Calendar CalendarConfig
		Display  DisplayConfig
	}

	// TrackingConfig holds aggregation-related settings.
	TrackingConfig struct {
		// TopicID selects the tracked topic. Storage is keyed by id, so
		// pointing this at a new id starts a fresh topic.
		TopicID uuid.UUID
		// ClampActiveSession clamps the running session's contribution to
		// interval query bounds. Off by default.
		ClampActiveSession bool
	}

	// CalendarConfig holds calendar and timezone settings.
	CalendarConfig struct {
		Timezone     string
		FirstWeekday time.Weekday
		Location     *time.Location
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme bool
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

var (
	configDir      = "tally"
	configFileName = "config.yml"
	dbFileName     = "tally.db"
	logFileName    = "tally.log"
	dbFilePath     string
	configFilePath string
	logFilePath    string
)

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

// InitializePaths resolves the xdg locations for the config file, database,
// and log file. A TALLY_ENV value suffixes the file names so alternate
// profiles never touch the default data.
func InitializePaths() {
	tallyEnv := strings.TrimSpace(os.Getenv("TALLY_ENV"))
	if tallyEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", tallyEnv)
		dbFileName = fmt.Sprintf("tally_%s.db", tallyEnv)
		logFileName = fmt.Sprintf("tally_%s.log", tallyEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)
}

// New creates a new Config with default values and applies options.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("config option error: %w", err)
		}
	}

	return cfg, nil
}
