package syncer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/api/calendar/v3"

	"github.com/kawunus/mslu-schedule-parser/timetable"
)

func projection(t *testing.T, date string, l timetable.Lesson) Projection {
	t.Helper()
	p, err := Project(date, l, testColors)
	require.NoError(t, err)
	return p
}

// existingEvent fakes what the calendar would return after a faithful insert
// of the projection.
func existingEvent(p Projection, eventID string) *calendar.Event {
	ev := p.Event()
	ev.Id = eventID
	return ev
}

func TestReconcilePartition(t *testing.T) {
	lesson := mathLesson()

	kept := projection(t, "01.09.2025", lesson)

	changed := projection(t, "02.09.2025", lesson)
	changedEv := existingEvent(changed, "ev-changed")
	changedEv.Location = "В 417. Препод: Петров П.П."

	stale := projection(t, "03.09.2025", lesson)
	created := projection(t, "04.09.2025", lesson)

	existing := map[string]*calendar.Event{
		kept.ID:    existingEvent(kept, "ev-kept"),
		changed.ID: changedEv,
		stale.ID:   existingEvent(stale, "ev-stale"),
	}
	fresh := map[string]Projection{
		kept.ID:    kept,
		changed.ID: changed,
		created.ID: created,
	}

	plan := Reconcile(existing, fresh)

	require.Len(t, plan.Create, 1)
	assert.Equal(t, created.ID, plan.Create[0].ID)

	require.Len(t, plan.Update, 1)
	assert.Equal(t, changed.ID, plan.Update[0].ID)
	assert.Equal(t, "ev-changed", plan.Update[0].EventID)

	require.Len(t, plan.Delete, 1)
	assert.Equal(t, stale.ID, plan.Delete[0].ID)
	assert.Equal(t, "ev-stale", plan.Delete[0].EventID)

	assert.Equal(t, 1, plan.Unchanged)

	// every identity lands in exactly one bucket
	seen := map[string]int{}
	for _, op := range plan.Create {
		seen[op.ID]++
	}
	for _, op := range plan.Update {
		seen[op.ID]++
	}
	for _, op := range plan.Delete {
		seen[op.ID]++
	}
	for id, n := range seen {
		assert.Equalf(t, 1, n, "identity %s classified %d times", id, n)
	}
	total := len(plan.Create) + len(plan.Update) + len(plan.Delete) + plan.Unchanged
	assert.Equal(t, 4, total, "universe of identities not fully covered")
}

func TestReconcileRoundTripIsANoOp(t *testing.T) {
	lesson := mathLesson()
	fresh := map[string]Projection{}
	existing := map[string]*calendar.Event{}
	for i := 0; i < 5; i++ {
		p := projection(t, fmt.Sprintf("0%d.09.2025", i+1), lesson)
		fresh[p.ID] = p
		existing[p.ID] = existingEvent(p, fmt.Sprintf("ev-%d", i))
	}

	plan := Reconcile(existing, fresh)
	assert.True(t, plan.Empty(), "round-tripped input produced operations: %s", plan)
	assert.Equal(t, len(fresh), plan.Unchanged)
}

func TestReconcileEmptyScheduleDeletesNothing(t *testing.T) {
	lesson := mathLesson()
	existing := map[string]*calendar.Event{}
	for i := 0; i < 3; i++ {
		p := projection(t, fmt.Sprintf("0%d.09.2025", i+1), lesson)
		existing[p.ID] = existingEvent(p, fmt.Sprintf("ev-%d", i))
	}

	plan := Reconcile(existing, map[string]Projection{})
	assert.True(t, plan.Empty(), "an empty schedule must not produce deletions")
	assert.Empty(t, plan.Delete)
}

func TestReconcileDetectsColorDrift(t *testing.T) {
	p := projection(t, "01.09.2025", mathLesson())
	ev := existingEvent(p, "ev-1")
	ev.ColorId = "5"

	plan := Reconcile(map[string]*calendar.Event{p.ID: ev}, map[string]Projection{p.ID: p})
	require.Len(t, plan.Update, 1, "a color-only difference must still be an update")
	assert.Empty(t, plan.Create)
	assert.Empty(t, plan.Delete)
}

func TestReconcileStaleColorAgainstColorlessProjection(t *testing.T) {
	l := mathLesson()
	l.DisciplineType = "Конс" // no configured color
	p := projection(t, "01.09.2025", l)
	require.Empty(t, p.ColorID)

	// leftover color from a run when the type still had a mapping
	ev := existingEvent(p, "ev-1")
	ev.ColorId = "11"
	plan := Reconcile(map[string]*calendar.Event{p.ID: ev}, map[string]Projection{p.ID: p})
	assert.Len(t, plan.Update, 1)

	// absent on both sides compares equal
	ev.ColorId = ""
	plan = Reconcile(map[string]*calendar.Event{p.ID: ev}, map[string]Projection{p.ID: p})
	assert.True(t, plan.Empty())
}

func TestReconcileTimeDrift(t *testing.T) {
	p := projection(t, "01.09.2025", mathLesson())
	ev := existingEvent(p, "ev-1")
	ev.Start.DateTime = "2025-09-01T09:15:00+03:00"

	plan := Reconcile(map[string]*calendar.Event{p.ID: ev}, map[string]Projection{p.ID: p})
	require.Len(t, plan.Update, 1)
	assert.Equal(t, p.StartISO, plan.Update[0].StartISO)
}
