package domain

import "testing"

func TestParseStatus(t *testing.T) {
	cases := []struct {
		raw   string
		want  Status
		known bool
	}{
		{"publish", StatusPublished, true},
		{" Published ", StatusPublished, true},
		{"future", StatusScheduled, true},
		{"", StatusDraft, true},
		{"trash", StatusArchived, true},
		{"inherit", Status("inherit"), false},
	}
	for _, tc := range cases {
		got, known := ParseStatus(tc.raw)
		if got != tc.want || known != tc.known {
			t.Fatalf("ParseStatus(%q) = (%q, %v), want (%q, %v)", tc.raw, got, known, tc.want, tc.known)
		}
	}
}
