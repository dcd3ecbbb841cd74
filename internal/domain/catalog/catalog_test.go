package catalog

import "testing"

func TestFuzzyMatch(t *testing.T) {
	cases := []struct {
		requested, offered string
		want               bool
	}{
		{"Babysitting", "babysitting", true},
		{"evening babysitting", "Babysitting", true},
		{"care", "Child Care", true},
		{"Child Care", "care", true},
		{"dog walking", "babysitting", false},
		{"", "babysitting", false},
		{"babysitting", "  ", false},
	}
	for _, tc := range cases {
		if got := FuzzyMatch(tc.requested, tc.offered); got != tc.want {
			t.Fatalf("FuzzyMatch(%q, %q) = %v, want %v", tc.requested, tc.offered, got, tc.want)
		}
	}
}

func TestFindMatchReturnsFirstHit(t *testing.T) {
	offered := []PricedService{
		{Label: "dog walking", UnitPriceCents: 1500},
		{Label: "babysitting", UnitPriceCents: 2200},
		{Label: "night babysitting", UnitPriceCents: 3000},
	}
	svc, ok := FindMatch("Babysitting", offered, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if svc.UnitPriceCents != 2200 {
		t.Fatalf("expected first matching service, got %+v", svc)
	}
}

func TestFindMatchSwappablePredicate(t *testing.T) {
	offered := []PricedService{{Label: "babysitting"}}
	exact := func(requested, offered string) bool { return requested == offered }
	if _, ok := FindMatch("Babysitting", offered, exact); ok {
		t.Fatal("exact predicate should not match differing case")
	}
}

func TestTotal(t *testing.T) {
	if got := Total(2200, 3); got != 6600 {
		t.Fatalf("Total = %d, want 6600", got)
	}
	if got := Total(2200, 0); got != 2200 {
		t.Fatalf("zero quantity should count as one, got %d", got)
	}
}
