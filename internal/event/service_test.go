package event

import (
	"testing"
	"time"
)

func TestParseISOTime(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-03-01T10:15:30.123456Z", time.Date(2026, 3, 1, 10, 15, 30, 123456000, time.UTC)},
		{"2026-03-01T10:15:30Z", time.Date(2026, 3, 1, 10, 15, 30, 0, time.UTC)},
		{"2026-03-01T15:45:30+05:30", time.Date(2026, 3, 1, 10, 15, 30, 0, time.UTC)},
		{"2026-03-01T10:15:30", time.Date(2026, 3, 1, 10, 15, 30, 0, time.UTC)},
		{"2026-03-01T10:15:30.5", time.Date(2026, 3, 1, 10, 15, 30, 500000000, time.UTC)},
		{"2026-03-01", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, err := ParseISOTime(tc.in)
		if err != nil {
			t.Errorf("ParseISOTime(%q): %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseISOTime(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if got.Location() != time.UTC {
			t.Errorf("ParseISOTime(%q) not in UTC", tc.in)
		}
	}

	for _, bad := range []string{"", "03/01/2026", "yesterday", "2026-13-40T99:00:00Z"} {
		if _, err := ParseISOTime(bad); err == nil {
			t.Errorf("ParseISOTime(%q): expected error", bad)
		}
	}
}
