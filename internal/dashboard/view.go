package dashboard

import (
	"fmt"
	"time"

	"github.com/shrimpsizemoose/examboard/internal/app"
	"github.com/shrimpsizemoose/examboard/internal/timeline"
)

const messagePlaceholder = "(no message, use: msg <text>)"

type Kind int

const (
	KindIdle Kind = iota
	KindWaiting
	KindRunning
	KindFinished
)

type Row struct {
	Date    string
	Period  string
	Subject string
	Start   string
	End     string
	Status  timeline.Status
}

// View is everything one frame of the board shows.
type View struct {
	Clock      string
	Headline   string
	StatusLine string
	Kind       Kind
	Rows       []Row
	Room       string
	Message    string
	Dark       bool
	Zoom       float64
	Warnings   []string
}

func BuildView(state app.State, res timeline.Result, ref time.Time, clockFormat string) View {
	v := View{
		Clock:    ref.Format(clockFormat),
		Headline: "Exam status",
		Room:     state.Settings.ExamRoom,
		Message:  state.Settings.CustomMessage,
		Dark:     state.Settings.IsDarkMode,
		Zoom:     state.Settings.ZoomFactor,
	}
	if v.Message == "" {
		v.Message = messagePlaceholder
	}

	for i, exam := range state.Exams {
		v.Rows = append(v.Rows, Row{
			Date:    exam.Date,
			Period:  exam.Period,
			Subject: exam.Subject,
			Start:   exam.StartTime,
			End:     exam.EndTime,
			Status:  res.Statuses[i],
		})
	}

	if len(res.Overlapping) > 0 {
		v.Warnings = append(v.Warnings, fmt.Sprintf("%d exams are in progress at the same time", len(res.Overlapping)))
	}

	switch {
	case len(state.Exams) == 0:
		v.StatusLine = "No exams scheduled"
		v.Kind = KindIdle
	case res.Current != nil:
		left := timeline.Remaining(*res.Current, ref, timeline.ToEnd)
		v.Headline = "Current subject: " + res.Current.Subject
		v.StatusLine = fmt.Sprintf("In progress - %s remaining", left)
		v.Kind = KindRunning
	case res.Next != nil:
		wait := timeline.Remaining(*res.Next, ref, timeline.ToStart)
		v.Headline = "Next subject: " + res.Next.Subject
		v.StatusLine = fmt.Sprintf("Waiting - starts in %s", wait)
		v.Kind = KindWaiting
	default:
		v.StatusLine = "All exams have ended"
		v.Kind = KindFinished
	}

	return v
}
