package recon

import "testing"

func strPtr(s string) *string { return &s }

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Cement 40kg", "cement 40kg"},
		{"  Rebar 16mm  ", "rebar 16mm"},
		{"SAND", "sand"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestKeyForComparable(t *testing.T) {
	a := KeyFor(strPtr("1.2.3"), "Cement")
	b := KeyFor(strPtr("1.2.3"), "  CEMENT ")
	if a != b {
		t.Errorf("keys with same WBS and normalized description should be equal: %v vs %v", a, b)
	}

	c := KeyFor(nil, "Cement")
	if a == c {
		t.Error("keyed and keyless entries must not collide")
	}

	// Usable as a map key
	m := map[Key]float64{a: 10}
	if m[b] != 10 {
		t.Error("expected map lookup by equivalent key to succeed")
	}
}

func TestKeyNoDelimiterCollision(t *testing.T) {
	a := KeyFor(nil, "null|cement")
	b := KeyFor(strPtr("null"), "cement")
	if a == b {
		t.Error("description containing 'null|' must not collide with a WBS key")
	}
}

func TestMatchesItemWithWBS(t *testing.T) {
	k := KeyFor(strPtr("1.2.3"), "Cement 40kg")

	if !k.MatchesItem(strPtr("1.2.3"), "anything at all") {
		t.Error("item with equal WBS should match regardless of description")
	}
	if k.MatchesItem(strPtr("9.9.9"), "Cement 40kg") {
		t.Error("item with different WBS must not match, even with equal description")
	}
	if !k.MatchesItem(nil, "  CEMENT 40kg ") {
		t.Error("item without a WBS should match a keyed entry by normalized description")
	}
	if k.MatchesItem(nil, "Gravel 3/4") {
		t.Error("item without a WBS and a different description must not match")
	}
}

func TestMatchesItemWithoutWBS(t *testing.T) {
	k := KeyFor(nil, "Gravel 3/4")

	if !k.MatchesItem(nil, "  gravel 3/4 ") {
		t.Error("keyless item should match keyless entry by normalized description")
	}
	if k.MatchesItem(strPtr("1.1"), "Gravel 3/4") {
		t.Error("keyed item must not match a keyless entry")
	}
	if k.MatchesItem(nil, "Gravel 1/2") {
		t.Error("different description must not match")
	}
}

func TestKeyString(t *testing.T) {
	if got := KeyFor(nil, "Sand").String(); got != "null|sand" {
		t.Errorf("String() = %q, want %q", got, "null|sand")
	}
	if got := KeyFor(strPtr("2.1"), "Sand").String(); got != "2.1|sand" {
		t.Errorf("String() = %q, want %q", got, "2.1|sand")
	}
}
