// internal/settings/store.go
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examboard/internal/models"
)

// ErrMalformed is returned together with default settings when the file cannot be decoded.
var ErrMalformed = errors.New("malformed settings file")

// naive ISO-8601 layouts, as written by tools that don't record a zone
var expiryLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

type Store interface {
	Load() (models.Settings, error)
	Save(settings models.Settings) error
	Path() string
}

type FileStore struct {
	path  string
	clock func() time.Time
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, clock: time.Now}
}

// document mirrors the file layout; the expiry is kept raw so a bad value can't fail the whole decode.
type document struct {
	TimeOffset    int             `json:"time_offset"`
	ExamRoom      string          `json:"exam_room"`
	ZoomFactor    float64         `json:"zoom_factor"`
	IsDarkMode    bool            `json:"is_dark_mode"`
	CustomMessage string          `json:"custom_message"`
	MessageExpiry json.RawMessage `json:"message_expiry"`
}

func (s *FileStore) Path() string {
	return s.path
}

// Load reads the settings file. A missing file yields defaults and no error,
// an unreadable or malformed one yields defaults and an error for the caller to report.
func (s *FileStore) Load() (models.Settings, error) {
	defaults := models.DefaultSettings()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug.Printf("Settings file %s not found, using defaults", s.path)
		return defaults, nil
	}
	if err != nil {
		return defaults, fmt.Errorf("error reading settings file %s: %w", s.path, err)
	}

	doc := document{
		TimeOffset: defaults.TimeOffset,
		ExamRoom:   defaults.ExamRoom,
		ZoomFactor: defaults.ZoomFactor,
		IsDarkMode: defaults.IsDarkMode,
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return defaults, fmt.Errorf("%w %s: %v", ErrMalformed, s.path, err)
	}

	settings := models.Settings{
		TimeOffset:    doc.TimeOffset,
		ExamRoom:      doc.ExamRoom,
		ZoomFactor:    doc.ZoomFactor,
		IsDarkMode:    doc.IsDarkMode,
		CustomMessage: doc.CustomMessage,
	}

	if settings.TimeOffset < models.MinTimeOffset || settings.TimeOffset > models.MaxTimeOffset {
		clamped := min(max(settings.TimeOffset, models.MinTimeOffset), models.MaxTimeOffset)
		logger.Info.Printf("Warning: time_offset %d out of range, using %d", settings.TimeOffset, clamped)
		settings.TimeOffset = clamped
	}
	if !models.IsZoomFactor(settings.ZoomFactor) {
		logger.Info.Printf("Warning: unsupported zoom_factor %v, using %v", settings.ZoomFactor, models.DefaultZoomFactor)
		settings.ZoomFactor = models.DefaultZoomFactor
	}

	if raw := bytes.TrimSpace(doc.MessageExpiry); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		expiry, err := decodeExpiry(raw)
		switch {
		case errors.Is(err, errNoExpiry):
			// "" is the same as null
		case err != nil:
			logger.Info.Printf("Warning: unreadable message_expiry %s, dropping message", raw)
			settings.CustomMessage = ""
			settings.CustomMessage = ""
		case s.clock().After(expiry):
			logger.Debug.Printf("Custom message expired at %s, clearing", expiry.Format(time.RFC3339))
			settings.CustomMessage = ""
		default:
			settings.MessageExpiry = &expiry
		}
	}

	return settings, nil
}

// Save overwrites the settings file with all fields.
func (s *FileStore) Save(settings models.Settings) error {
	doc := document{
		TimeOffset:    settings.TimeOffset,
		ExamRoom:      settings.ExamRoom,
		ZoomFactor:    settings.ZoomFactor,
		IsDarkMode:    settings.IsDarkMode,
		CustomMessage: settings.CustomMessage,
	}
	if settings.MessageExpiry != nil {
		formatted, err := json.Marshal(settings.MessageExpiry.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to encode message_expiry: %w", err)
		}
		doc.MessageExpiry = formatted
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to save settings to %s: %w", s.path, err)
	}

	logger.Debug.Printf("Saved settings to %s", s.path)
	return nil
}

// SetMessage replaces the announcement and restarts its expiry clock, even for an empty text.
func SetMessage(settings models.Settings, text string, now time.Time) models.Settings {
	expiry := now.Add(models.MessageLifetime)
	settings.CustomMessage = text
	settings.MessageExpiry = &expiry
	return settings
}

var errNoExpiry = errors.New("empty message_expiry")

// decodeExpiry accepts only a JSON string; numbers, booleans and objects are unreadable.
func decodeExpiry(raw json.RawMessage) (time.Time, error) {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return time.Time{}, fmt.Errorf("message_expiry is not a string: %w", err)
	}
	if value == "" {
		return time.Time{}, errNoExpiry
	}
	return parseExpiry(value)
}

func parseExpiry(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	for _, layout := range expiryLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}
