package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file gives defaults", func(t *testing.T) {
		config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, "settings.json", config.Files.SettingsPath)
		assert.Equal(t, time.Second, config.Tick())
		assert.Equal(t, time.Local, config.Location())
		assert.Equal(t, 15, config.Export.IntervalSeconds)
	})

	t.Run("file values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
[files]
settings_path = "/var/lib/examboard/settings.json"
exams_path = "exams.json"

[display]
tick_interval = "500ms"
timezone = "Asia/Shanghai"

[export]
textfile_path = "/tmp/examboard.prom"
interval_seconds = 30
`), 0o644))

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/var/lib/examboard/settings.json", config.Files.SettingsPath)
		assert.Equal(t, "exams.json", config.Files.ExamsPath)
		assert.Equal(t, 500*time.Millisecond, config.Tick())
		assert.Equal(t, "Asia/Shanghai", config.Location().String())
		assert.Equal(t, "15:04:05", config.Display.ClockFormat)
		assert.Equal(t, 30, config.Export.IntervalSeconds)
	})

	t.Run("environment overrides paths", func(t *testing.T) {
		t.Setenv(envSettingsPath, "from-env.json")
		t.Setenv(envExamsPath, "exams-from-env.json")

		config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, "from-env.json", config.Files.SettingsPath)
		assert.Equal(t, "exams-from-env.json", config.Files.ExamsPath)
	})

	t.Run("bad values are rejected", func(t *testing.T) {
		for _, content := range []string{
			"[display]\ntick_interval = \"often\"\n",
			"[display]\ntick_interval = \"-1s\"\n",
			"[display]\ntimezone = \"Mars/Olympus\"\n",
			"[files\n",
		} {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			_, err := LoadConfig(path)
			assert.Error(t, err, content)
		}
	})
}
