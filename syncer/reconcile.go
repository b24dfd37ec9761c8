package syncer

import (
	"fmt"

	"google.golang.org/api/calendar/v3"
)

// CreateOp inserts a brand new event for a lesson with no calendar match.
type CreateOp struct {
	Projection
}

// UpdateOp patches an existing event whose content drifted from the source.
type UpdateOp struct {
	Projection
	EventID string
}

// DeleteOp removes an event whose lesson disappeared from the source.
type DeleteOp struct {
	ID      string
	EventID string
	Summary string
}

// Plan is the outcome of one reconciliation: three disjoint operation sets
// plus a count of events that matched and need nothing. Every identity on
// either side lands in exactly one of the four buckets.
type Plan struct {
	Create    []CreateOp
	Update    []UpdateOp
	Delete    []DeleteOp
	Unchanged int
}

func (p Plan) Empty() bool {
	return len(p.Create) == 0 && len(p.Update) == 0 && len(p.Delete) == 0
}

func (p Plan) String() string {
	return fmt.Sprintf("%d to create, %d to update, %d to delete, %d unchanged",
		len(p.Create), len(p.Update), len(p.Delete), p.Unchanged)
}

// Reconcile partitions the lesson identities of the fetched schedule against
// the events already on the calendar. An empty fresh map yields an empty
// plan: a feed that suddenly returns nothing is far more likely a transient
// upstream fault than a term-wide cancellation, so nothing gets deleted on
// its account.
func Reconcile(existing map[string]*calendar.Event, fresh map[string]Projection) Plan {
	plan := Plan{}
	if len(fresh) == 0 {
		return plan
	}

	for id, ev := range existing {
		if _, ok := fresh[id]; !ok {
			plan.Delete = append(plan.Delete, DeleteOp{ID: id, EventID: ev.Id, Summary: ev.Summary})
		}
	}
	for id, p := range fresh {
		ev, ok := existing[id]
		if !ok {
			plan.Create = append(plan.Create, CreateOp{Projection: p})
			continue
		}
		if changed(ev, p) {
			plan.Update = append(plan.Update, UpdateOp{Projection: p, EventID: ev.Id})
		} else {
			plan.Unchanged++
		}
	}
	return plan
}

// changed compares an event field by field against the fresh projection.
// Times and color are compared in their string form; an event without a
// color matches a projection without one.
func changed(ev *calendar.Event, p Projection) bool {
	var start, end string
	if ev.Start != nil {
		start = ev.Start.DateTime
	}
	if ev.End != nil {
		end = ev.End.DateTime
	}
	return start != p.StartISO ||
		end != p.EndISO ||
		ev.Summary != p.Summary ||
		ev.Description != p.Description ||
		ev.Location != p.Location ||
		ev.ColorId != p.ColorID
}
