package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/calendar/v3"

	"github.com/kawunus/mslu-schedule-parser/timetable"
)

type LoggerFn func(string, ...interface{})

// Fetcher loads the source timetable for a date window.
type Fetcher interface {
	Fetch(ctx context.Context, startDate, endDate string) (timetable.Schedule, error)
}

// Calendar is the slice of the calendar backend the syncer needs. The
// concrete client owns the calendar id and the authorized transport.
type Calendar interface {
	Events(ctx context.Context, timeMin string) ([]*calendar.Event, error)
	Insert(ctx context.Context, ev *calendar.Event) (*calendar.Event, error)
	Patch(ctx context.Context, eventID string, ev *calendar.Event) (*calendar.Event, error)
	Delete(ctx context.Context, eventID string) error
}

type Config struct {
	Fetcher  Fetcher
	Calendar Calendar
	// Colors maps discipline types to calendar color codes.
	Colors map[string]string
	// Pause is inserted between consecutive mutating calls.
	Pause  time.Duration
	DryRun bool
	LogFn  LoggerFn
	ErrFn  LoggerFn
}

type Syncer struct {
	fetcher  Fetcher
	calendar Calendar
	colors   map[string]string
	pause    time.Duration
	dryRun   bool

	// one run at a time, however the caller schedules them
	mu sync.Mutex

	log LoggerFn
	err LoggerFn
}

func New(c Config) *Syncer {
	s := Syncer{
		fetcher:  c.Fetcher,
		calendar: c.Calendar,
		colors:   c.Colors,
		pause:    c.Pause,
		dryRun:   c.DryRun,
		log:      func(string, ...interface{}) {},
		err:      func(string, ...interface{}) {},
	}
	if c.LogFn != nil {
		s.log = c.LogFn
	}
	if c.ErrFn != nil {
		s.err = c.ErrFn
	}
	return &s
}

// Run performs one full reconciliation pass: load the schedule and the
// existing events concurrently, diff them, apply the plan. Failures of the
// fetch or the listing abort the run; per-operation failures during apply do
// not. startDate and endDate bound the source window and may be empty for
// the defaults.
func (s *Syncer) Run(ctx context.Context, startDate, endDate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if startDate == "" {
		startDate = time.Now().In(minsk).Format("2006-01-02")
	}
	timeMin, err := listBound(startDate)
	if err != nil {
		return err
	}

	var (
		schedule timetable.Schedule
		events   []*calendar.Event
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		s.log("fetching the schedule from the timetable server")
		if schedule, err = s.fetcher.Fetch(gctx, startDate, endDate); err != nil {
			return fmt.Errorf("unable to fetch schedule: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		s.log("loading existing events starting at %s", timeMin)
		if events, err = s.calendar.Events(gctx, timeMin); err != nil {
			return fmt.Errorf("unable to list existing events: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if schedule.Lessons() == 0 {
		s.log("the schedule came back empty, leaving the calendar untouched")
		return nil
	}

	existing := s.existingByIdentity(events)
	s.log("found %d managed events on the calendar", len(existing))

	fresh, err := s.freshByIdentity(schedule)
	if err != nil {
		return err
	}
	s.log("found %d lessons in the schedule", len(fresh))

	plan := Reconcile(existing, fresh)
	s.log("plan: %s", plan)
	if plan.Empty() {
		return nil
	}
	if s.dryRun {
		s.printPlan(plan)
		return nil
	}
	s.Apply(ctx, plan)
	return nil
}

// existingByIdentity indexes managed events by their identity. Events without
// one are not ours and stay invisible to the reconciler. A duplicated
// identity means the calendar holds two events for one lesson; the run keeps
// the one seen last and says so, the earlier duplicate becomes an ordinary
// stale event on a later pass.
func (s *Syncer) existingByIdentity(events []*calendar.Event) map[string]*calendar.Event {
	existing := make(map[string]*calendar.Event, len(events))
	for _, ev := range events {
		id := IdentityOf(ev)
		if id == "" {
			continue
		}
		if _, seen := existing[id]; seen {
			s.err("calendar holds duplicate events for %s, keeping the last one", id)
		}
		existing[id] = ev
	}
	return existing
}

func (s *Syncer) freshByIdentity(schedule timetable.Schedule) (map[string]Projection, error) {
	fresh := make(map[string]Projection, schedule.Lessons())
	for _, day := range schedule {
		for _, lesson := range day.Lessons {
			p, err := Project(day.Date, lesson, s.colors)
			if err != nil {
				return nil, fmt.Errorf("unable to project lesson on %s: %w", day.Date, err)
			}
			fresh[p.ID] = p
		}
	}
	return fresh, nil
}

func (s *Syncer) printPlan(plan Plan) {
	for _, op := range plan.Delete {
		s.log("would delete %s (%s)", op.Summary, op.ID)
	}
	for _, op := range plan.Create {
		s.log("would create %s (%s)", op.Summary, op.ID)
	}
	for _, op := range plan.Update {
		s.log("would update %s (%s)", op.Summary, op.ID)
	}
}

func listBound(startDate string) (string, error) {
	d, err := time.ParseInLocation("2006-01-02", startDate, minsk)
	if err != nil {
		return "", fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	return d.Format(time.RFC3339), nil
}
