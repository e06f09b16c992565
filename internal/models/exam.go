package models

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	dateTimeLayout = DateLayout + " " + TimeLayout
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the custom rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		if err := validate.RegisterValidation("zoom", isZoomFactor); err != nil {
			panic(fmt.Sprintf("register zoom validation: %v", err))
		}
	})
	return validate
}

// Exam is one scheduled slot as declared in the exam configuration file.
// Start and End are derived once from the raw strings and never change.
type Exam struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Period    string `json:"period"`
	Subject   string `json:"subject"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (e *Exam) Validate() error {
	return Validator().Struct(e)
}

// Resolve fills Start and End from the raw date and time strings in loc.
func (e *Exam) Resolve(loc *time.Location) error {
	start, err := time.ParseInLocation(dateTimeLayout, e.Date+" "+e.StartTime, loc)
	if err != nil {
		return fmt.Errorf("invalid start %q %q: %w", e.Date, e.StartTime, err)
	}
	end, err := time.ParseInLocation(dateTimeLayout, e.Date+" "+e.EndTime, loc)
	if err != nil {
		return fmt.Errorf("invalid end %q %q: %w", e.Date, e.EndTime, err)
	}
	e.Start = start
	e.End = end
	return nil
}

// Valid reports whether the slot ends after it starts.
func (e Exam) Valid() bool {
	return e.Start.Before(e.End)
}
