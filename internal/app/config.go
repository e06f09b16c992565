package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"
)

const (
	envSettingsPath = "EXAMBOARD_SETTINGS_PATH"
	envExamsPath    = "EXAMBOARD_EXAMS_PATH"
)

type Config struct {
	Files struct {
		SettingsPath string `toml:"settings_path"`
		ExamsPath    string `toml:"exams_path"`
	} `toml:"files"`

	Display struct {
		TickInterval string `toml:"tick_interval"`
		Timezone     string `toml:"timezone"`
		ClockFormat  string `toml:"clock_format"`
	} `toml:"display"`

	Export struct {
		TextfilePath    string `toml:"textfile_path"`
		IntervalSeconds int    `toml:"interval_seconds"`
	} `toml:"export"`

	Log struct {
		Debug bool `toml:"debug"`
	} `toml:"log"`

	tick     time.Duration
	location *time.Location
}

func DefaultConfig() *Config {
	var config Config
	config.Files.SettingsPath = "settings.json"
	config.Display.TickInterval = "1s"
	config.Display.ClockFormat = "15:04:05"
	config.Export.IntervalSeconds = 15
	return &config
}

// LoadConfig reads the TOML config. A missing file is fine, every key has a default.
// Environment variables (optionally from .env) override the file paths.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Error.Printf("Failed to read .env: %v", err)
	}

	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Debug.Printf("Config %s not found, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("error reading config file: %w", err)
	default:
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf(
				"error reading config file %s\n> Error: %w\n> Content:\n%s",
				path,
				err,
				string(data),
			)
		}
	}

	if v := os.Getenv(envSettingsPath); v != "" {
		config.Files.SettingsPath = v
	}
	if v := os.Getenv(envExamsPath); v != "" {
		config.Files.ExamsPath = v
	}

	if err := config.Resolve(); err != nil {
		return nil, err
	}

	logger.Debug.Printf("Loaded config: %+v", *config)

	return config, nil
}

// Resolve checks and parses the display settings, LoadConfig calls it.
func (c *Config) Resolve() error {
	if c.Files.SettingsPath == "" {
		return fmt.Errorf("settings path is not specified in config, use a value like settings.json")
	}

	if c.Display.TickInterval == "" {
		c.Display.TickInterval = "1s"
	}
	tick, err := time.ParseDuration(c.Display.TickInterval)
	if err != nil {
		return fmt.Errorf("invalid display.tick_interval %q: %w", c.Display.TickInterval, err)
	}
	if tick <= 0 {
		return fmt.Errorf("display.tick_interval must be positive, got %s", tick)
	}
	c.tick = tick

	c.location = time.Local
	if c.Display.Timezone != "" {
		loc, err := time.LoadLocation(c.Display.Timezone)
		if err != nil {
			return fmt.Errorf("invalid display.timezone %q: %w", c.Display.Timezone, err)
		}
		c.location = loc
	}

	if c.Display.ClockFormat == "" {
		c.Display.ClockFormat = "15:04:05"
	}
	if c.Export.IntervalSeconds <= 0 {
		c.Export.IntervalSeconds = 15
	}

	return nil
}

func (c *Config) Tick() time.Duration {
	if c.tick <= 0 {
		return time.Second
	}
	return c.tick
}

func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// ApplyLogLevel silences debug output unless [log] debug is set.
func (c *Config) ApplyLogLevel() {
	if !c.Log.Debug {
		logger.Debug.SetOutput(io.Discard)
	}
}
