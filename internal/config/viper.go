package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper
// counterparts.
const (
	keyTopicID            = "tracking.topic_id"
	keyClampActiveSession = "tracking.clamp_active_session"
	keyTimezone           = "calendar.timezone"
	keyFirstWeekday       = "calendar.first_weekday"
	keyDarkTheme          = "display.dark_theme"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// WithViperConfig returns an Option that loads configuration from Viper,
// writing the default config file first when none exists.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading config file failed: %w", err)
		}

		if err := v.WriteConfig(); err != nil {
			return fmt.Errorf("writing default config failed: %w", err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults.
func setupViper(v *viper.Viper) {
	v.SetDefault(keyTopicID, uuid.Nil.String())
	v.SetDefault(keyClampActiveSession, false)
	v.SetDefault(keyTimezone, "")
	v.SetDefault(keyFirstWeekday, "sunday")
	v.SetDefault(keyDarkTheme, true)
}

// loadViperConfig reads the values from Viper into the Config, resolving the
// timezone and first weekday.
func loadViperConfig(v *viper.Viper, c *Config) error {
	topicID, err := uuid.Parse(v.GetString(keyTopicID))
	if err != nil {
		return fmt.Errorf("invalid topic id %q: %w", v.GetString(keyTopicID), err)
	}

	c.Tracking.TopicID = topicID
	c.Tracking.ClampActiveSession = v.GetBool(keyClampActiveSession)

	c.Calendar.Timezone = v.GetString(keyTimezone)

	loc := time.Local

	if c.Calendar.Timezone != "" {
		loc, err = time.LoadLocation(c.Calendar.Timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Calendar.Timezone, err)
		}
	}

	c.Calendar.Location = loc

	weekdayName := strings.ToLower(v.GetString(keyFirstWeekday))

	weekday, ok := weekdayNames[weekdayName]
	if !ok {
		return fmt.Errorf("invalid first weekday %q", v.GetString(keyFirstWeekday))
	}

	c.Calendar.FirstWeekday = weekday

	c.Display.DarkTheme = v.GetBool(keyDarkTheme)

	return nil
}
