package syncer

import (
	"context"
	"time"
)

// Apply executes a plan sequentially: deletions, then inserts, then patches.
// Every operation is isolated; a failure is logged with the lesson identity
// and summary and the rest of the plan still runs, so the next scheduled
// pass can retry whatever is left. The configured pause between mutating
// calls keeps the backend's per-minute quota happy.
func (s *Syncer) Apply(ctx context.Context, plan Plan) {
	for _, op := range plan.Delete {
		if err := s.calendar.Delete(ctx, op.EventID); err != nil {
			s.err("unable to delete '%s' (%s): %s", op.Summary, op.ID, err)
		} else {
			s.log("deleted stale event: %s (%s)", op.Summary, op.ID)
		}
		if !s.pauseBetween(ctx) {
			return
		}
	}
	for _, op := range plan.Create {
		if _, err := s.calendar.Insert(ctx, op.Event()); err != nil {
			s.err("unable to create '%s' (%s): %s", op.Summary, op.ID, err)
		} else {
			s.log("created event: %s (%s)", op.Summary, op.ID)
		}
		if !s.pauseBetween(ctx) {
			return
		}
	}
	for _, op := range plan.Update {
		if _, err := s.calendar.Patch(ctx, op.EventID, op.Event()); err != nil {
			s.err("unable to update '%s' (%s): %s", op.Summary, op.ID, err)
		} else {
			s.log("updated event: %s (%s)", op.Summary, op.ID)
		}
		if !s.pauseBetween(ctx) {
			return
		}
	}
}

func (s *Syncer) pauseBetween(ctx context.Context) bool {
	if s.pause <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(s.pause):
		return true
	}
}
