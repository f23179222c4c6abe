package schedule

import (
	"errors"
	"testing"
)

func TestParseTimeOfDay_RoundTrip(t *testing.T) {
	for _, text := range []string{"00:00", "00:01", "09:00", "12:30", "14:05", "23:59"} {
		tod, err := ParseTimeOfDay(text)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q): %v", text, err)
		}
		if got := tod.String(); got != text {
			t.Fatalf("format(parse(%q)) = %q", text, got)
		}
	}
}

func TestParseTimeOfDay_Values(t *testing.T) {
	cases := []struct {
		text string
		want TimeOfDay
	}{
		{"00:00", 0},
		{"01:00", 60},
		{"09:30", 570},
		{"23:59", 1439},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.text)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q): %v", c.text, err)
		}
		if got != c.want {
			t.Fatalf("ParseTimeOfDay(%q) = %d, want %d", c.text, got, c.want)
		}
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, text := range []string{
		"", "9:00", "09:0", "0900", "09-00", "24:00", "23:60", "99:99",
		"ab:cd", " 9:00", "09:00 ", "12:3a", "-1:00",
	} {
		if _, err := ParseTimeOfDay(text); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("ParseTimeOfDay(%q): expected ErrInvalidFormat, got %v", text, err)
		}
	}
}

func TestNewInterval(t *testing.T) {
	iv, err := NewInterval(540, 60) // 09:00 + 60m
	if err != nil {
		t.Fatalf("NewInterval: %v", err)
	}
	if iv.Start != 540 || iv.End != 600 {
		t.Fatalf("NewInterval = %v", iv)
	}

	// Ends exactly at midnight: allowed, End is exclusive.
	if _, err := NewInterval(1380, 60); err != nil { // 23:00 + 60m
		t.Fatalf("interval ending at midnight should be valid: %v", err)
	}

	// Crosses midnight: rejected.
	if _, err := NewInterval(1380, 61); !errors.Is(err, ErrOutsideAvailability) {
		t.Fatalf("expected ErrOutsideAvailability for midnight crossing, got %v", err)
	}

	if _, err := NewInterval(540, 0); err == nil {
		t.Fatal("expected error for zero duration")
	}
}

func TestOverlaps(t *testing.T) {
	mk := func(start, end TimeOfDay) Interval { return Interval{Start: start, End: end} }
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"identical", mk(540, 600), mk(540, 600), true},
		{"contained", mk(540, 660), mk(570, 600), true},
		{"partial", mk(540, 600), mk(570, 630), true},
		{"adjacent", mk(540, 600), mk(600, 660), false},
		{"disjoint", mk(540, 600), mk(720, 780), false},
		{"one minute shared", mk(540, 601), mk(600, 660), true},
	}
	for _, c := range cases {
		if got := c.a.Overlaps(c.b); got != c.want {
			t.Fatalf("%s: Overlaps(%v, %v) = %v, want %v", c.name, c.a, c.b, got, c.want)
		}
		// Symmetry.
		if got := c.b.Overlaps(c.a); got != c.want {
			t.Fatalf("%s: Overlaps(%v, %v) = %v, want %v", c.name, c.b, c.a, got, c.want)
		}
	}
}

func TestContains(t *testing.T) {
	outer := Interval{Start: 540, End: 1020} // 09:00-17:00
	cases := []struct {
		name  string
		inner Interval
		want  bool
	}{
		{"fully inside", Interval{Start: 600, End: 660}, true},
		{"equal", Interval{Start: 540, End: 1020}, true},
		{"touching start", Interval{Start: 540, End: 600}, true},
		{"touching end", Interval{Start: 960, End: 1020}, true},
		{"starts before", Interval{Start: 510, End: 600}, false},
		{"ends after", Interval{Start: 990, End: 1050}, false},
		{"outside", Interval{Start: 60, End: 120}, false},
	}
	for _, c := range cases {
		if got := outer.Contains(c.inner); got != c.want {
			t.Fatalf("%s: Contains(%v) = %v, want %v", c.name, c.inner, got, c.want)
		}
	}
}
