package schedule

import "testing"

func TestParseMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"10:60", 0, false},
		{"1030", 0, false},
		{"", 0, false},
		{"ab:cd", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseMinutes(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseMinutes(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseMinutes(%q) should fail", tc.in)
		}
	}
}

func TestOverlapSymmetry(t *testing.T) {
	windows := [][2]int{{600, 720}, {660, 780}, {720, 840}, {0, 1440}, {300, 301}}
	for _, a := range windows {
		for _, b := range windows {
			if Overlaps(a[0], a[1], b[0], b[1]) != Overlaps(b[0], b[1], a[0], a[1]) {
				t.Fatalf("overlap not symmetric for %v and %v", a, b)
			}
		}
	}
}

func TestBackToBackWindowsDoNotOverlap(t *testing.T) {
	got, err := TimesOverlap("10:00", "12:00", "12:00", "14:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Fatal("back-to-back windows must not overlap")
	}
}

func TestOverlappingWindows(t *testing.T) {
	got, err := TimesOverlap("10:00", "12:00", "11:00", "13:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Fatal("expected overlap")
	}
}

func TestTimesOverlapRejectsMalformedInput(t *testing.T) {
	if _, err := TimesOverlap("10:00", "12:00", "noon", "14:00"); err == nil {
		t.Fatal("expected parse error")
	}
}
