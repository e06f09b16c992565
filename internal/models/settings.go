package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultExamRoom   = "Default Room"
	DefaultZoomFactor = 1.0
	MinTimeOffset     = -3600
	MaxTimeOffset     = 3600
	MessageLifetime   = 3 * 24 * time.Hour
)

var ZoomFactors = []float64{0.8, 0.9, 1.0, 1.1, 1.2, 1.5, 2.0}

// Settings are the operator preferences persisted between runs.
type Settings struct {
	TimeOffset    int        `json:"time_offset" validate:"min=-3600,max=3600"`
	ExamRoom      string     `json:"exam_room"`
	ZoomFactor    float64    `json:"zoom_factor" validate:"zoom"`
	IsDarkMode    bool       `json:"is_dark_mode"`
	CustomMessage string     `json:"custom_message"`
	MessageExpiry *time.Time `json:"message_expiry"`
}

func DefaultSettings() Settings {
	return Settings{
		TimeOffset: 0,
		ExamRoom:   DefaultExamRoom,
		ZoomFactor: DefaultZoomFactor,
		IsDarkMode: false,
	}
}

func (s *Settings) Validate() error {
	return Validator().Struct(s)
}

// Offset is TimeOffset as a duration.
func (s Settings) Offset() time.Duration {
	return time.Duration(s.TimeOffset) * time.Second
}

func IsZoomFactor(f float64) bool {
	for _, z := range ZoomFactors {
		if z == f {
			return true
		}
	}
	return false
}

func isZoomFactor(fl validator.FieldLevel) bool {
	return IsZoomFactor(fl.Field().Float())
}
