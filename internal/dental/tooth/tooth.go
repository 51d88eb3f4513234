// Package tooth holds the static FDI dentition vocabulary shared by every
// chart normalizer: the permanent/primary identifier mapping, the full
// permanent arch, surface codes, and quadrant helpers.
package tooth

import (
	"sort"
	"strconv"
)

// permanentToPrimary maps the 20 permanent FDI identifiers that have a
// primary-dentition counterpart (incisors, canines, premolars). Molars
// (x6–x8) have no primary counterpart and are never remapped.
var permanentToPrimary = map[string]string{
	"11": "51", "12": "52", "13": "53", "14": "54", "15": "55",
	"21": "61", "22": "62", "23": "63", "24": "64", "25": "65",
	"31": "71", "32": "72", "33": "73", "34": "74", "35": "75",
	"41": "81", "42": "82", "43": "83", "44": "84", "45": "85",
}

var primaryToPermanent = func() map[string]string {
	m := make(map[string]string, len(permanentToPrimary))
	for perm, prim := range permanentToPrimary {
		m[prim] = perm
	}
	return m
}()

// IsRemappable reports whether id is one of the 20 permanent identifiers
// eligible for primary-notation substitution.
func IsRemappable(id string) bool {
	_, ok := permanentToPrimary[id]
	return ok
}

// PrimaryOf returns the primary counterpart of a permanent identifier.
func PrimaryOf(id string) (string, bool) {
	p, ok := permanentToPrimary[id]
	return p, ok
}

// PermanentOf returns the permanent identifier behind a primary one.
func PermanentOf(id string) (string, bool) {
	p, ok := primaryToPermanent[id]
	return p, ok
}

// DisplayID returns the primary counterpart of id when the chart marks it as
// displayed under primary numbering, and the input unchanged otherwise. A
// primarySet entry for a non-remappable tooth is silently ignored; the
// mapping table simply has no row for it.
func DisplayID(id string, primarySet map[string]bool) string {
	if primarySet[id] {
		if prim, ok := permanentToPrimary[id]; ok {
			return prim
		}
	}
	return id
}

// Permanent lists the 32 permanent FDI identifiers in ascending numeric
// order. Chart code treats this as the universe of tooth keys.
var Permanent = []string{
	"11", "12", "13", "14", "15", "16", "17", "18",
	"21", "22", "23", "24", "25", "26", "27", "28",
	"31", "32", "33", "34", "35", "36", "37", "38",
	"41", "42", "43", "44", "45", "46", "47", "48",
}

// PermanentCount is the fixed size of the adult arch.
const PermanentCount = 32

var permanentSet = func() map[string]bool {
	m := make(map[string]bool, len(Permanent))
	for _, id := range Permanent {
		m[id] = true
	}
	return m
}()

// IsPermanent reports whether id is one of the 32 permanent identifiers.
func IsPermanent(id string) bool { return permanentSet[id] }

// SortIDs orders tooth identifiers numerically in place and returns the
// slice. Non-numeric identifiers sort after numeric ones, lexically.
func SortIDs(ids []string) []string {
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return ids[i] < ids[j]
		}
	})
	return ids
}

// Surface codes per tooth face.
const (
	SurfaceMesial   = "M"
	SurfaceDistal   = "D"
	SurfaceLingual  = "L"
	SurfaceBuccal   = "B"
	SurfaceOcclusal = "O"
)

var surfaceLabels = map[string]string{
	SurfaceMesial:   "Mesial",
	SurfaceDistal:   "Distal",
	SurfaceLingual:  "Lingual",
	SurfaceBuccal:   "Buccal",
	SurfaceOcclusal: "Occlusal",
}

// SurfaceLabel expands a one-letter surface code; unknown codes come back
// unchanged so stored data is never hidden.
func SurfaceLabel(code string) string {
	if l, ok := surfaceLabels[code]; ok {
		return l
	}
	return code
}

// Quadrant names a tooth's quadrant ("upper-right", "upper-left",
// "lower-left", "lower-right") or "" for identifiers outside FDI notation.
func Quadrant(id string) string {
	if len(id) != 2 {
		return ""
	}
	switch id[0] {
	case '1', '5':
		return "upper-right"
	case '2', '6':
		return "upper-left"
	case '3', '7':
		return "lower-left"
	case '4', '8':
		return "lower-right"
	}
	return ""
}
