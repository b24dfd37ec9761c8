package timetable

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL points at the public BSUFL timetable API.
const DefaultBaseURL = "http://www.timetable.bsufl.by/api/api/groupschedule"

// DefaultEndDate bounds the fetched window when the caller does not pass one.
const DefaultEndDate = "2025-12-31"

const apiDateFormat = "2006-01-02"

type LoggerFn func(string, ...interface{})

// record is one flat lesson entry as the feed returns it. The anchor date
// plus the 1-based day offset yield the real lesson date.
type record struct {
	DateIn         string `json:"dateIn"`
	DayNumber      int    `json:"dayNumber"`
	LessonNumber   int    `json:"lessonNumber"`
	TimeIn         string `json:"timeIn"`
	TimeOut        string `json:"timeOut"`
	Discipline     string `json:"discipline"`
	DisciplineType string `json:"disciplineType"`
	TeacherF       string `json:"teacherF"`
	TeacherN       string `json:"teacherN"`
	TeacherO       string `json:"teacherO"`
	Classroom      string `json:"classroom"`
	Day            string `json:"day"`
}

type Config struct {
	BaseURL   string
	Group     int64
	StopWords []string
	Subgroup  string
	Client    *http.Client
	LogFn     LoggerFn
	ErrFn     LoggerFn
}

type fetcher struct {
	baseURL   string
	group     int64
	stopWords []string
	subgroup  string
	client    *http.Client
	log       LoggerFn
	err       LoggerFn
}

// New returns a schedule fetcher for one group.
func New(c Config) *fetcher {
	f := fetcher{
		baseURL:   c.BaseURL,
		group:     c.Group,
		stopWords: c.StopWords,
		subgroup:  c.Subgroup,
		client:    c.Client,
		log:       func(string, ...interface{}) {},
		err:       func(string, ...interface{}) {},
	}
	if f.baseURL == "" {
		f.baseURL = DefaultBaseURL
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: time.Minute}
	}
	if c.LogFn != nil {
		f.log = c.LogFn
	}
	if c.ErrFn != nil {
		f.err = c.ErrFn
	}
	return &f
}

// Fetch loads the timetable between startDate and endDate (both in the API's
// YYYY-MM-DD form) and returns it grouped by day. An empty startDate means
// today, an empty endDate means DefaultEndDate. One call, no retries; a
// malformed individual record is logged and skipped, everything else fails
// the whole fetch.
func (f *fetcher) Fetch(ctx context.Context, startDate, endDate string) (Schedule, error) {
	if startDate == "" {
		startDate = time.Now().Format(apiDateFormat)
	}
	if endDate == "" {
		endDate = DefaultEndDate
	}
	if err := validRange(startDate, endDate); err != nil {
		return nil, err
	}

	records, err := f.load(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]Lesson)
	for _, it := range records {
		if f.filtered(it) {
			continue
		}
		date, lesson, err := f.normalize(it)
		if err != nil {
			f.err("skipping malformed record for %q: %s", it.Discipline, err)
			continue
		}
		byDate[date] = append(byDate[date], lesson)
	}
	return group(byDate), nil
}

func (f *fetcher) load(ctx context.Context, startDate, endDate string) ([]record, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	q.Set("idGroup", strconv.FormatInt(f.group, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("unable to build timetable request: %w", err)
	}
	origin := originOf(f.baseURL)
	req.Header.Set("Origin", origin)
	req.Header.Set("Referer", origin+"/schedule")
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("X-Request-Id", fmt.Sprintf("%s--%s", randomID(10), randomID(15)))
	req.Header.Set("X-Request-Origin", origin)
	req.Header.Set("X-Timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to load timetable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("timetable request failed: %s", resp.Status)
	}

	var records []record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("unable to decode timetable response: %w", err)
	}
	f.log("loaded %d raw records for group %d", len(records), f.group)
	return records, nil
}

// filtered reports whether the record should be dropped entirely, either
// because a stop word matches or because it belongs to another subgroup.
func (f *fetcher) filtered(it record) bool {
	for _, w := range f.stopWords {
		lw := strings.ToLower(w)
		if strings.Contains(strings.ToLower(it.Discipline), lw) {
			return true
		}
		if strings.Contains(strings.ToLower(it.TeacherF), lw) {
			return true
		}
	}
	if f.subgroup != "" && strings.Contains(it.Discipline, "п/г") && !strings.Contains(it.Discipline, f.subgroup) {
		return true
	}
	return false
}

func (f *fetcher) normalize(it record) (string, Lesson, error) {
	anchor, err := time.Parse(apiDateFormat, it.DateIn)
	if err != nil {
		return "", Lesson{}, fmt.Errorf("bad anchor date %q: %w", it.DateIn, err)
	}
	if it.DayNumber < 1 {
		return "", Lesson{}, fmt.Errorf("bad day offset %d", it.DayNumber)
	}
	if it.LessonNumber < 1 {
		return "", Lesson{}, fmt.Errorf("bad lesson number %d", it.LessonNumber)
	}
	if it.TimeIn == "" || it.TimeOut == "" {
		return "", Lesson{}, fmt.Errorf("missing time window %q-%q", it.TimeIn, it.TimeOut)
	}

	date := anchor.AddDate(0, 0, it.DayNumber-1).Format(DateFormat)
	return date, Lesson{
		LessonNumber:   it.LessonNumber,
		TimeRange:      fmt.Sprintf("%s–%s", it.TimeIn, it.TimeOut),
		Discipline:     it.Discipline,
		DisciplineType: it.DisciplineType,
		Teacher:        NormalizeTeacher(it.TeacherF, it.TeacherN, it.TeacherO),
		Day:            it.Day,
		Classroom:      NormalizeClassroom(it.Classroom),
	}, nil
}

func validRange(startDate, endDate string) error {
	start, err := time.Parse(apiDateFormat, startDate)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	end, err := time.Parse(apiDateFormat, endDate)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	if end.Before(start) {
		return fmt.Errorf("end date %s precedes start date %s", endDate, startDate)
	}
	return nil
}

func originOf(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	return u.Scheme + "://" + strings.TrimPrefix(u.Host, "www.")
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomID(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}
