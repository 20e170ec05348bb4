package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-cli/tally/internal/config"
)

func TestWithViperConfigDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, uuid.Nil, cfg.Tracking.TopicID)
	assert.False(t, cfg.Tracking.ClampActiveSession)
	assert.Empty(t, cfg.Calendar.Timezone)
	assert.Equal(t, time.Local, cfg.Calendar.Location)
	assert.Equal(t, time.Sunday, cfg.Calendar.FirstWeekday)
	assert.True(t, cfg.Display.DarkTheme)

	// The default file is written on first load so the user can edit it.
	_, err = os.Stat(configPath)
	require.NoError(t, err)
}

func TestWithViperConfigCustomValues(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	topicID := uuid.New()

	contents := `tracking:
  topic_id: ` + topicID.String() + `
  clamp_active_session: true
calendar:
  timezone: America/New_York
  first_weekday: Monday
display:
  dark_theme: false
`

	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0o644))

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	assert.Equal(t, topicID, cfg.Tracking.TopicID)
	assert.True(t, cfg.Tracking.ClampActiveSession)
	assert.Equal(t, "America/New_York", cfg.Calendar.Timezone)
	assert.Equal(t, "America/New_York", cfg.Calendar.Location.String())
	assert.Equal(t, time.Monday, cfg.Calendar.FirstWeekday)
	assert.False(t, cfg.Display.DarkTheme)
}

func TestWithViperConfigInvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad topic id": `tracking:
  topic_id: not-a-uuid
`,
		"bad timezone": `calendar:
  timezone: Mars/Olympus_Mons
`,
		"bad weekday": `calendar:
  first_weekday: someday
`,
	}

	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yml")
			require.NoError(
				t,
				os.WriteFile(configPath, []byte(contents), 0o644),
			)

			_, err := config.New(config.WithViperConfig(configPath))
			assert.Error(t, err)
		})
	}
}
