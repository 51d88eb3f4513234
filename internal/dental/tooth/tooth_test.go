package tooth

import (
	"reflect"
	"testing"
)

func TestDisplayID_RemapsWhenInPrimarySet(t *testing.T) {
	primary := map[string]bool{"11": true, "45": true}
	if got := DisplayID("11", primary); got != "51" {
		t.Errorf("DisplayID(11) = %q, want 51", got)
	}
	if got := DisplayID("45", primary); got != "85" {
		t.Errorf("DisplayID(45) = %q, want 85", got)
	}
}

func TestDisplayID_UnchangedWhenNotInSet(t *testing.T) {
	primary := map[string]bool{"11": true}
	if got := DisplayID("12", primary); got != "12" {
		t.Errorf("DisplayID(12) = %q, want 12", got)
	}
	if got := DisplayID("12", nil); got != "12" {
		t.Errorf("DisplayID(12, nil) = %q, want 12", got)
	}
}

func TestDisplayID_NonRemappableIgnoredEvenWhenListed(t *testing.T) {
	// Molars have no primary counterpart; a primary-set entry for one must
	// be a no-op, not an error.
	primary := map[string]bool{"16": true, "48": true}
	if got := DisplayID("16", primary); got != "16" {
		t.Errorf("DisplayID(16) = %q, want 16", got)
	}
	if got := DisplayID("48", primary); got != "48" {
		t.Errorf("DisplayID(48) = %q, want 48", got)
	}
}

func TestRoundTrip_AllRemappable(t *testing.T) {
	for _, id := range Permanent {
		if !IsRemappable(id) {
			continue
		}
		prim := DisplayID(id, map[string]bool{id: true})
		if prim == id {
			t.Errorf("expected %s to remap", id)
			continue
		}
		back, ok := PermanentOf(prim)
		if !ok || back != id {
			t.Errorf("PermanentOf(%s) = %q, %v; want %s", prim, back, ok, id)
		}
	}
}

func TestRemappableCount(t *testing.T) {
	n := 0
	for _, id := range Permanent {
		if IsRemappable(id) {
			n++
		}
	}
	if n != 20 {
		t.Errorf("remappable permanent teeth = %d, want 20", n)
	}
}

func TestPermanentUniverse(t *testing.T) {
	if len(Permanent) != PermanentCount {
		t.Fatalf("len(Permanent) = %d, want %d", len(Permanent), PermanentCount)
	}
	seen := map[string]bool{}
	for _, id := range Permanent {
		if seen[id] {
			t.Errorf("duplicate identifier %s", id)
		}
		seen[id] = true
		if !IsPermanent(id) {
			t.Errorf("IsPermanent(%s) = false", id)
		}
	}
	if IsPermanent("55") {
		t.Error("primary tooth 55 reported as permanent")
	}
}

func TestSortIDs(t *testing.T) {
	got := SortIDs([]string{"48", "11", "26", "13"})
	want := []string{"11", "13", "26", "48"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortIDs = %v, want %v", got, want)
	}
}

func TestQuadrant(t *testing.T) {
	cases := map[string]string{
		"11": "upper-right", "26": "upper-left",
		"38": "lower-left", "44": "lower-right",
		"55": "upper-right", "85": "lower-right",
		"xx": "", "1": "",
	}
	for id, want := range cases {
		if got := Quadrant(id); got != want {
			t.Errorf("Quadrant(%s) = %q, want %q", id, got, want)
		}
	}
}

func TestSurfaceLabel(t *testing.T) {
	if got := SurfaceLabel("M"); got != "Mesial" {
		t.Errorf("SurfaceLabel(M) = %q", got)
	}
	if got := SurfaceLabel("Z"); got != "Z" {
		t.Errorf("unknown surface should pass through, got %q", got)
	}
}
