package syncer

import (
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/kawunus/mslu-schedule-parser/timetable"
)

// The source publishes wall-clock times for UTC+3 year round, no DST.
var minsk = time.FixedZone("Europe/Minsk", 3*60*60)

const timeZoneName = "Europe/Minsk"

const wallClockFormat = timetable.DateFormat + " 15:04"

// timeRangeSeparator is the en dash the feed puts between start and end time.
const timeRangeSeparator = "–"

// Projection carries the calendar-facing fields derived from one lesson.
// Every field is in its final comparable form, so the reconciler can match it
// against an existing event without further conversions.
type Projection struct {
	ID          string
	Summary     string
	Description string
	Location    string
	StartISO    string
	EndISO      string
	ColorID     string
}

// Project computes the event fields for a lesson on the given date. colors
// maps discipline types to calendar color codes; a type with no mapping
// leaves the event colorless rather than defaulting.
func Project(date string, l timetable.Lesson, colors map[string]string) (Projection, error) {
	startISO, endISO, err := parseTimeRange(date, l.TimeRange)
	if err != nil {
		return Projection{}, err
	}

	id := Identity(date, l.TimeRange, l.Teacher, l.Classroom)

	parts := make([]string, 0, 2)
	if l.Classroom != "" && !strings.Contains(l.Classroom, "не найден") {
		parts = append(parts, "В "+l.Classroom)
	}
	if l.Teacher != "" {
		parts = append(parts, "Препод: "+l.Teacher)
	}

	return Projection{
		ID:          id,
		Summary:     fmt.Sprintf("%s (%s)", l.Discipline, l.DisciplineType),
		Description: id + " " + AutoTag,
		Location:    strings.Join(parts, ". "),
		StartISO:    startISO,
		EndISO:      endISO,
		ColorID:     colors[l.DisciplineType],
	}, nil
}

// Event builds the full calendar event body for inserts and patches. Patches
// always carry the whole projection, never a partial diff.
func (p Projection) Event() *calendar.Event {
	ev := calendar.Event{
		Summary:     p.Summary,
		Description: p.Description,
		Location:    p.Location,
		Start:       &calendar.EventDateTime{DateTime: p.StartISO, TimeZone: timeZoneName},
		End:         &calendar.EventDateTime{DateTime: p.EndISO, TimeZone: timeZoneName},
		Reminders: &calendar.EventReminders{
			UseDefault:      false,
			Overrides:       []*calendar.EventReminder{{Method: "popup", Minutes: 10}},
			ForceSendFields: []string{"UseDefault"},
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{propertyKey: p.ID},
		},
	}
	if p.ColorID != "" {
		ev.ColorId = p.ColorID
	}
	return &ev
}

func parseTimeRange(date, timeRange string) (string, string, error) {
	in, out, found := strings.Cut(timeRange, timeRangeSeparator)
	if !found {
		return "", "", fmt.Errorf("unparseable time range %q", timeRange)
	}
	start, err := time.ParseInLocation(wallClockFormat, date+" "+in, minsk)
	if err != nil {
		return "", "", fmt.Errorf("unparseable lesson start: %w", err)
	}
	end, err := time.ParseInLocation(wallClockFormat, date+" "+out, minsk)
	if err != nil {
		return "", "", fmt.Errorf("unparseable lesson end: %w", err)
	}
	return start.Format(time.RFC3339), end.Format(time.RFC3339), nil
}
