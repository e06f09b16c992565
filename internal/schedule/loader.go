package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/examboard/internal/models"
)

// ErrMissingExams means the document has no top-level "exams" key.
var ErrMissingExams = errors.New("no exam schedule found in config file")

func Load(path string, loc *time.Location) ([]models.Exam, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading exam config %s: %w", path, err)
	}

	exams, err := Parse(data, loc)
	if err != nil {
		return nil, fmt.Errorf("error loading exam config %s: %w", path, err)
	}
	return exams, nil
}

// Parse decodes an exam configuration document. On any error nothing is returned,
// so the caller can keep whatever schedule it already had.
func Parse(data []byte, loc *time.Location) ([]models.Exam, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed exam config: %w", err)
	}

	raw, ok := doc["exams"]
	if !ok {
		return nil, ErrMissingExams
	}

	var exams []models.Exam
	if err := json.Unmarshal(raw, &exams); err != nil {
		return nil, fmt.Errorf("malformed exams list: %w", err)
	}

	if exams == nil {
		exams = []models.Exam{}
	}

	for i := range exams {
		if err := exams[i].Validate(); err != nil {
			return nil, fmt.Errorf("exam #%d (%s): %w", i+1, exams[i].Subject, err)
		}
		if err := exams[i].Resolve(loc); err != nil {
			return nil, fmt.Errorf("exam #%d (%s): %w", i+1, exams[i].Subject, err)
		}
		if !exams[i].Valid() {
			logger.Info.Printf(
				"Warning: exam #%d (%s) on %s ends at %s, not after its start %s",
				i+1,
				exams[i].Subject,
				exams[i].Date,
				exams[i].EndTime,
				exams[i].StartTime,
			)
		}
	}

	return exams, nil
}
