package timetable

import "testing"

func TestNormalizeTeacher(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  string
	}{
		{name: "full name", parts: []string{"Ivanov", "Ivan", "Ivanovich"}, want: "Ivanov I. I."},
		{name: "surname only", parts: []string{"Ivanov", "", ""}, want: "Ivanov"},
		{name: "no parts", parts: []string{"", "", ""}, want: ""},
		{name: "gap in the middle", parts: []string{"Ivanov", "", "Ivanovich"}, want: "Ivanov I."},
		{name: "cyrillic initials", parts: []string{"Петров", "Пётр", "Петрович"}, want: "Петров П. П."},
		// the space before each initial is load-bearing: it is embedded in
		// the identity keys of every event created so far
		{name: "initials stay space separated", parts: []string{"Smith", "John", "Henry", "Jr"}, want: "Smith J. H. J."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeTeacher(tc.parts...); got != tc.want {
				t.Errorf("NormalizeTeacher(%v) = %q, want %q", tc.parts, got, tc.want)
			}
		})
	}
}

func TestNormalizeClassroom(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "prefixed room", raw: "ка305", want: "305"},
		{name: "empty", raw: "", want: RoomPlaceholder},
		{name: "bare abbreviation", raw: "ауд", want: RoomPlaceholder},
		{name: "abbreviation with number", raw: "ауд305", want: RoomPlaceholder},
		{name: "abbreviation mixed case", raw: "Ауд", want: RoomPlaceholder},
		{name: "too short to strip", raw: "ка", want: RoomPlaceholder},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeClassroom(tc.raw); got != tc.want {
				t.Errorf("NormalizeClassroom(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

// The placeholder text is embedded in identity keys of already created
// events; changing it would orphan them all.
func TestRoomPlaceholderIsStable(t *testing.T) {
	if RoomPlaceholder != "Кабинет не найден, но скоро появится..." {
		t.Errorf("RoomPlaceholder changed to %q", RoomPlaceholder)
	}
}
