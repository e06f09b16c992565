// internal/timeline/engine.go
package timeline

import (
	"fmt"
	"time"

	"github.com/shrimpsizemoose/examboard/internal/models"
)

type Status int

const (
	NotStarted Status = iota
	InProgress
	Ended
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "NOT_STARTED"
	case InProgress:
		return "IN_PROGRESS"
	case Ended:
		return "ENDED"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

type Target int

const (
	ToEnd Target = iota
	ToStart
)

type Result struct {
	Statuses []Status
	Current  *models.Exam
	Next     *models.Exam
	// Overlapping holds the indices of all in-progress exams when there is more than one.
	Overlapping []int
}

// StatusOf classifies a single exam. The in-progress interval is closed on both ends.
func StatusOf(exam models.Exam, now time.Time) Status {
	switch {
	case now.Before(exam.Start):
		return NotStarted
	case now.After(exam.End):
		return Ended
	default:
		return InProgress
	}
}

// Classify scans exams once in list order. Next is the earliest not-started exam,
// the first one wins on equal start. Current is the last in-progress exam scanned.
func Classify(exams []models.Exam, now time.Time) Result {
	res := Result{Statuses: make([]Status, len(exams))}

	var inProgress []int
	for i := range exams {
		exam := &exams[i]
		status := StatusOf(*exam, now)
		res.Statuses[i] = status

		switch status {
		case NotStarted:
			if res.Next == nil || exam.Start.Before(res.Next.Start) {
				res.Next = exam
			}
		case InProgress:
			res.Current = exam
			inProgress = append(inProgress, i)
		}
	}

	if len(inProgress) > 1 {
		res.Overlapping = inProgress
	}

	return res
}

// Counts tallies statuses, every status is present in the map.
func Counts(res Result) map[Status]int {
	counts := map[Status]int{NotStarted: 0, InProgress: 0, Ended: 0}
	for _, s := range res.Statuses {
		counts[s]++
	}
	return counts
}

type Countdown struct {
	Seconds int64
	Hours   int64
	Minutes int64
	Secs    int64
}

func (c Countdown) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hours, c.Minutes, c.Secs)
}

// Remaining is the truncated number of whole seconds from now to the exam bound.
func Remaining(exam models.Exam, now time.Time, towards Target) Countdown {
	target := exam.End
	if towards == ToStart {
		target = exam.Start
	}

	secs := int64(target.Sub(now) / time.Second)
	return Countdown{
		Seconds: secs,
		Hours:   secs / 3600,
		Minutes: (secs % 3600) / 60,
		Secs:    secs % 60,
	}
}
