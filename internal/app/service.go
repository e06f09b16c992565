package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examboard/internal/metrics"
	"github.com/shrimpsizemoose/examboard/internal/models"
	"github.com/shrimpsizemoose/examboard/internal/schedule"
	"github.com/shrimpsizemoose/examboard/internal/settings"
	"github.com/shrimpsizemoose/examboard/internal/timeline"
)

var ErrInvalidSettings = errors.New("invalid settings")

// State is everything the dashboard shows. It is owned by a single goroutine.
type State struct {
	Exams    []models.Exam
	Settings models.Settings
}

type Service struct {
	Config *Config
	Store  settings.Store
	State  State

	// Warnings collects start-up problems for the shell to show.
	Warnings []error

	clock func() time.Time
}

// NewService loads the config, the persisted settings and the optional start-up schedule.
// Only a broken config is fatal; settings and schedule problems end up in Warnings.
func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.ApplyLogLevel()

	svc := NewServiceWithStore(config, settings.NewFileStore(config.Files.SettingsPath))

	if config.Files.ExamsPath != "" {
		if err := svc.LoadExams(config.Files.ExamsPath); err != nil {
			logger.Error.Printf("Failed to load exams: %v", err)
			svc.Warnings = append(svc.Warnings, err)
		}
	}

	return svc, nil
}

func NewServiceWithStore(config *Config, store settings.Store) *Service {
	svc := &Service{
		Config: config,
		Store:  store,
		clock:  time.Now,
	}

	loaded, err := store.Load()
	if err != nil {
		logger.Error.Printf("Failed to load settings: %v", err)
		svc.Warnings = append(svc.Warnings, err)
	}
	svc.State.Settings = loaded

	return svc
}

// SetClock replaces the wall clock, tests freeze time with it.
func (s *Service) SetClock(clock func() time.Time) {
	s.clock = clock
}

// ReferenceTime is the wall clock shifted by the operator's offset.
func (s *Service) ReferenceTime() time.Time {
	return s.clock().In(s.Config.Location()).Add(s.State.Settings.Offset())
}

// Tick evaluates the schedule at the current reference time.
func (s *Service) Tick() (timeline.Result, time.Time) {
	ref := s.ReferenceTime()
	res := timeline.Classify(s.State.Exams, ref)

	if len(res.Overlapping) > 0 {
		logger.Debug.Printf("Exams %v are in progress at the same time, showing the last one", res.Overlapping)
	}
	metrics.Observe(res, ref)

	return res, ref
}

// LoadExams replaces the schedule wholesale. On error the previous schedule stays.
func (s *Service) LoadExams(path string) error {
	exams, err := schedule.Load(path, s.Config.Location())
	if err != nil {
		metrics.ScheduleLoadsTotal.WithLabelValues("error").Inc()
		return err
	}

	s.State.Exams = exams
	metrics.ScheduleLoadsTotal.WithLabelValues("ok").Inc()
	logger.Info.Printf("Loaded %d exams from %s", len(exams), path)
	return nil
}

// UpdateSettings applies fn to a copy, validates it, keeps it and saves it.
// A failed save is returned but the in-memory change is not rolled back.
func (s *Service) UpdateSettings(fn func(*models.Settings)) error {
	next := s.State.Settings
	fn(&next)

	if err := next.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	s.State.Settings = next
	if err := s.Store.Save(next); err != nil {
		return err
	}
	return nil
}

// SetMessage sets the announcement with a fresh three day expiry and saves.
func (s *Service) SetMessage(text string) error {
	updated := settings.SetMessage(s.State.Settings, text, s.clock())
	return s.UpdateSettings(func(st *models.Settings) {
		*st = updated
	})
}
