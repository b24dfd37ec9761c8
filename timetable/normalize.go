package timetable

import "strings"

// RoomPlaceholder is what a lesson gets as classroom when the source feed has
// not published one yet. The exact text is part of the event identity for such
// lessons, so it must stay stable between releases.
const RoomPlaceholder = "Кабинет не найден, но скоро появится..."

const roomAbbreviation = "ауд"

// NormalizeTeacher renders name parts as a display name: the first non-empty
// part in full, every following one abbreviated to a space-separated initial
// with a period. ("Ivanov", "Ivan", "Ivanovich") becomes "Ivanov I. I.".
// The result feeds identity keys of already created events, so the exact
// spacing must not change.
func NormalizeTeacher(parts ...string) string {
	full := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			full = append(full, p)
		}
	}
	if len(full) == 0 {
		return ""
	}
	name := strings.Builder{}
	name.WriteString(full[0])
	for _, p := range full[1:] {
		name.WriteString(" ")
		name.WriteString(string([]rune(p)[:1]))
		name.WriteString(".")
	}
	return name.String()
}

// NormalizeClassroom strips the two-letter building prefix from a raw
// classroom value, or substitutes the placeholder when the feed carries
// nothing usable, which is either an empty value or a bare "ауд" marker.
func NormalizeClassroom(raw string) string {
	if raw == "" || strings.HasPrefix(strings.ToLower(raw), roomAbbreviation) {
		return RoomPlaceholder
	}
	r := []rune(raw)
	if len(r) <= 2 {
		return RoomPlaceholder
	}
	return string(r[2:])
}
