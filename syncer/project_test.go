package syncer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kawunus/mslu-schedule-parser/timetable"
)

var testColors = map[string]string{"Сем": "9", "Практ": "10", "Лек": "11"}

func mathLesson() timetable.Lesson {
	return timetable.Lesson{
		LessonNumber:   1,
		TimeRange:      "09:00–10:30",
		Discipline:     "Математика",
		DisciplineType: "Лек",
		Teacher:        "Петров П.П.",
		Day:            "Понедельник",
		Classroom:      "305",
	}
}

func TestProject(t *testing.T) {
	p, err := Project("01.09.2025", mathLesson(), testColors)
	require.NoError(t, err)

	assert.Equal(t, "01.09.2025|09:00–10:30|Петров П.П.|305", p.ID)
	assert.Equal(t, "Математика (Лек)", p.Summary)
	assert.Equal(t, p.ID+" "+AutoTag, p.Description)
	assert.Equal(t, "В 305. Препод: Петров П.П.", p.Location)
	assert.Equal(t, "2025-09-01T09:00:00+03:00", p.StartISO)
	assert.Equal(t, "2025-09-01T10:30:00+03:00", p.EndISO)
	assert.Equal(t, "11", p.ColorID)
}

func TestProjectColorOmittedForUnknownType(t *testing.T) {
	l := mathLesson()
	l.DisciplineType = "Конс"
	p, err := Project("01.09.2025", l, testColors)
	require.NoError(t, err)
	assert.Empty(t, p.ColorID, "an unmapped discipline type must stay colorless")

	ev := p.Event()
	assert.Empty(t, ev.ColorId)
}

func TestProjectLocationVariants(t *testing.T) {
	tests := []struct {
		name      string
		teacher   string
		classroom string
		want      string
	}{
		{name: "both", teacher: "Петров П.П.", classroom: "305", want: "В 305. Препод: Петров П.П."},
		{name: "no teacher", teacher: "", classroom: "305", want: "В 305"},
		{name: "placeholder room", teacher: "Петров П.П.", classroom: timetable.RoomPlaceholder, want: "Препод: Петров П.П."},
		{name: "nothing", teacher: "", classroom: timetable.RoomPlaceholder, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := mathLesson()
			l.Teacher = tc.teacher
			l.Classroom = tc.classroom
			p, err := Project("01.09.2025", l, testColors)
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.Location)
		})
	}
}

func TestProjectRejectsBrokenTimeRange(t *testing.T) {
	l := mathLesson()
	l.TimeRange = "09:00-10:30" // hyphen, not the feed's en dash
	_, err := Project("01.09.2025", l, testColors)
	assert.Error(t, err)
}

func TestProjectionEvent(t *testing.T) {
	p, err := Project("01.09.2025", mathLesson(), testColors)
	require.NoError(t, err)

	ev := p.Event()
	require.NotNil(t, ev.Start)
	require.NotNil(t, ev.End)
	assert.Equal(t, p.StartISO, ev.Start.DateTime)
	assert.Equal(t, p.EndISO, ev.End.DateTime)
	assert.Equal(t, "Europe/Minsk", ev.Start.TimeZone)

	require.NotNil(t, ev.ExtendedProperties)
	assert.Equal(t, p.ID, ev.ExtendedProperties.Private["lesson_id"])
	assert.Equal(t, p.ID, IdentityOf(ev), "a projected event must round-trip its identity")

	require.NotNil(t, ev.Reminders)
	assert.False(t, ev.Reminders.UseDefault)
	require.Len(t, ev.Reminders.Overrides, 1)
	assert.Equal(t, "popup", ev.Reminders.Overrides[0].Method)
	assert.EqualValues(t, 10, ev.Reminders.Overrides[0].Minutes)
}
