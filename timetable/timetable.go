package timetable

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateFormat is the display format used for lesson dates everywhere in the
// application, including the identity keys embedded into calendar events.
// Changing it would orphan every event created by previous versions.
const DateFormat = "02.01.2006"

// Lesson is one class occurrence on one date, already normalized.
type Lesson struct {
	LessonNumber   int
	TimeRange      string
	Discipline     string
	DisciplineType string
	Teacher        string
	Day            string
	Classroom      string
}

// Day groups the lessons of one calendar date, ordered by lesson number.
type Day struct {
	Date    string
	Day     string
	Lessons []Lesson
}

type Schedule []Day

func (s Schedule) Lessons() int {
	n := 0
	for _, d := range s {
		n += len(d.Lessons)
	}
	return n
}

func (s Schedule) String() string {
	return s.GoString()
}

func (s Schedule) GoString() string {
	b := strings.Builder{}
	for _, d := range s {
		fmt.Fprintf(&b, "%s %s\n", d.Date, d.Day)
		for _, l := range d.Lessons {
			fmt.Fprintf(&b, "\t%d. %s %s (%s) %s %s\n", l.LessonNumber, l.TimeRange, l.Discipline, l.DisciplineType, l.Teacher, l.Classroom)
		}
	}
	return b.String()
}

// group builds the ordered day list out of a date-keyed lesson map.
func group(byDate map[string][]Lesson) Schedule {
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		di, _ := time.Parse(DateFormat, dates[i])
		dj, _ := time.Parse(DateFormat, dates[j])
		return di.Before(dj)
	})

	days := make(Schedule, 0, len(dates))
	for _, date := range dates {
		lessons := byDate[date]
		sort.Slice(lessons, func(i, j int) bool {
			return lessons[i].LessonNumber < lessons[j].LessonNumber
		})
		days = append(days, Day{Date: date, Day: lessons[0].Day, Lessons: lessons})
	}
	return days
}
