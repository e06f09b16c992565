package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/examboard/internal/models"
)

func exam(t *testing.T, subject, date, start, end string) models.Exam {
	t.Helper()
	e := models.Exam{Date: date, Subject: subject, StartTime: start, EndTime: end}
	require.NoError(t, e.Resolve(time.UTC))
	return e
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func twoExams(t *testing.T) []models.Exam {
	return []models.Exam{
		exam(t, "Math", "2024-01-01", "09:00", "11:00"),
		exam(t, "Physics", "2024-01-01", "13:00", "15:00"),
	}
}

func TestStatusOf(t *testing.T) {
	e := exam(t, "Math", "2024-01-01", "09:00", "11:00")

	testCases := []struct {
		name     string
		now      time.Time
		expected Status
	}{
		{
			name:     "One second before start",
			now:      e.Start.Add(-1 * time.Second),
			expected: NotStarted,
		},
		{
			name:     "Exactly at start counts as in progress",
			now:      e.Start,
			expected: InProgress,
		},
		{
			name:     "Middle of the slot",
			now:      at(10, 0),
			expected: InProgress,
		},
		{
			name:     "Exactly at end is still in progress",
			now:      e.End,
			expected: InProgress,
		},
		{
			name:     "One nanosecond after end",
			now:      e.End.Add(time.Nanosecond),
			expected: Ended,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StatusOf(e, tc.now))
		})
	}
}

func TestClassify(t *testing.T) {
	exams := twoExams(t)

	t.Run("during the first exam", func(t *testing.T) {
		now := at(10, 0)
		res := Classify(exams, now)

		assert.Equal(t, []Status{InProgress, NotStarted}, res.Statuses)
		require.NotNil(t, res.Current)
		require.NotNil(t, res.Next)
		assert.Same(t, &exams[0], res.Current)
		assert.Same(t, &exams[1], res.Next)
		assert.Empty(t, res.Overlapping)
		assert.Equal(t, "01:00:00", Remaining(*res.Current, now, ToEnd).String())
	})

	t.Run("before everything", func(t *testing.T) {
		now := at(8, 0)
		res := Classify(exams, now)

		assert.Nil(t, res.Current)
		require.NotNil(t, res.Next)
		assert.Same(t, &exams[0], res.Next)
		assert.Equal(t, "01:00:00", Remaining(*res.Next, now, ToStart).String())
	})

	t.Run("after everything", func(t *testing.T) {
		res := Classify(exams, at(16, 0))

		assert.Nil(t, res.Current)
		assert.Nil(t, res.Next)
		assert.Equal(t, []Status{Ended, Ended}, res.Statuses)
	})

	t.Run("empty schedule", func(t *testing.T) {
		res := Classify(nil, at(10, 0))

		assert.Nil(t, res.Current)
		assert.Nil(t, res.Next)
		assert.Empty(t, res.Statuses)
	})
}

func TestClassify_NextIsEarliestRegardlessOfOrder(t *testing.T) {
	exams := []models.Exam{
		exam(t, "Late", "2024-01-02", "09:00", "11:00"),
		exam(t, "Early", "2024-01-01", "13:00", "15:00"),
		exam(t, "Middle", "2024-01-01", "17:00", "18:00"),
	}

	res := Classify(exams, at(12, 0))

	require.NotNil(t, res.Next)
	assert.Equal(t, "Early", res.Next.Subject)
}

func TestClassify_EqualStartKeepsFirst(t *testing.T) {
	exams := []models.Exam{
		exam(t, "First", "2024-01-01", "13:00", "15:00"),
		exam(t, "Second", "2024-01-01", "13:00", "14:00"),
	}

	res := Classify(exams, at(12, 0))

	require.NotNil(t, res.Next)
	assert.Same(t, &exams[0], res.Next)
}

func TestClassify_OverlapKeepsLastAndReports(t *testing.T) {
	exams := []models.Exam{
		exam(t, "Chemistry", "2024-01-01", "09:00", "12:00"),
		exam(t, "Biology", "2024-01-01", "10:00", "11:00"),
		exam(t, "History", "2024-01-01", "13:00", "14:00"),
	}

	res := Classify(exams, at(10, 30))

	require.NotNil(t, res.Current)
	assert.Equal(t, "Biology", res.Current.Subject)
	assert.Equal(t, []int{0, 1}, res.Overlapping)
}

func TestClassify_DuplicatesTrackedIndependently(t *testing.T) {
	exams := []models.Exam{
		exam(t, "Math", "2024-01-01", "09:00", "11:00"),
		exam(t, "Math", "2024-01-01", "09:00", "11:00"),
	}

	res := Classify(exams, at(8, 0))

	assert.Equal(t, []Status{NotStarted, NotStarted}, res.Statuses)
	assert.Same(t, &exams[0], res.Next)
}

func TestCounts(t *testing.T) {
	exams := append(twoExams(t), exam(t, "Art", "2023-12-31", "09:00", "10:00"))

	counts := Counts(Classify(exams, at(10, 0)))

	assert.Equal(t, map[Status]int{NotStarted: 1, InProgress: 1, Ended: 1}, counts)
}

func TestRemaining(t *testing.T) {
	e := exam(t, "Math", "2024-01-01", "09:00", "11:00")

	testCases := []struct {
		name     string
		now      time.Time
		towards  Target
		expected Countdown
	}{
		{
			name:     "Ninety minutes and five seconds to end",
			now:      at(9, 29).Add(55 * time.Second),
			towards:  ToEnd,
			expected: Countdown{Seconds: 5405, Hours: 1, Minutes: 30, Secs: 5},
		},
		{
			name:     "Sub-second remainder is truncated",
			now:      at(8, 59).Add(500 * time.Millisecond),
			towards:  ToStart,
			expected: Countdown{Seconds: 59, Hours: 0, Minutes: 0, Secs: 59},
		},
		{
			name:     "Multiple days ahead",
			now:      at(9, 0).Add(-26 * time.Hour),
			towards:  ToStart,
			expected: Countdown{Seconds: 93600, Hours: 26, Minutes: 0, Secs: 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Remaining(e, tc.now, tc.towards))
		})
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "NOT_STARTED", NotStarted.String())
	assert.Equal(t, "IN_PROGRESS", InProgress.String())
	assert.Equal(t, "ENDED", Ended.String())
}
