package syncer

import (
	"strings"

	"google.golang.org/api/calendar/v3"
)

// AutoTag marks an event as owned by the syncer. Events created before the
// private extended property existed carry only this tag in their description,
// with the identity immediately before it.
const AutoTag = "[AUTO-UNI]"

// propertyKey is the private extended-property that carries the identity.
const propertyKey = "lesson_id"

// Identity derives the join key between a source lesson and a calendar
// event. The same real-world lesson yields the same key on every fetch, so it
// must depend only on the fields below, never on fetch order or timestamps.
// "|" does not occur in any of them.
func Identity(date, timeRange, teacher, classroom string) string {
	return date + "|" + timeRange + "|" + teacher + "|" + classroom
}

// IdentityOf extracts the identity of an existing calendar event. The
// extended property is the source of truth; the description tag is a fallback
// for events created by older versions. An empty result means the event is
// not managed by the syncer and must be left alone.
func IdentityOf(ev *calendar.Event) string {
	if ev.ExtendedProperties != nil {
		if id := ev.ExtendedProperties.Private[propertyKey]; id != "" {
			return id
		}
	}
	if i := strings.Index(ev.Description, AutoTag); i >= 0 {
		return strings.TrimSpace(ev.Description[:i])
	}
	return ""
}
