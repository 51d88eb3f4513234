// Package chart normalizes the free-form assessment and treatment payloads
// written by the mobile charting screens over several generations of the
// on-disk format, and renders them as stable human-readable summaries.
//
// Every payload is classified exactly once into a tagged schema variant
// (newest shape first, older shapes as historical-compatibility fallbacks)
// before any formatting happens. Parsing is total: malformed input degrades
// to a fixed fallback summary and never surfaces an error to the caller.
package chart

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Assessment kinds recorded by the charting screens.
const (
	KindDentition   = "dentition"
	KindHygiene     = "hygiene"
	KindFillings    = "fillings"
	KindExtractions = "extractions"
	KindDenture     = "denture"
	KindImplant     = "implant"
)

// Summary is the rendered form of one assessment record: a one-line summary
// plus ordered detail lines for expandable display. Empty finding groups are
// rendered as "<Label> (0): None" rather than omitted; viewers rely on
// stable line presence.
type Summary struct {
	Summary string   `json:"summary"`
	Details []string `json:"details"`
}

// ParseAssessmentData decodes a persisted assessment payload and produces
// its display summary. It never fails: payloads that are not JSON objects
// yield the universal fallback, and structurally unrecognized objects yield
// a kind-titled generic summary.
func ParseAssessmentData(raw string, kind string) Summary {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload == nil {
		return Summary{
			Summary: "Assessment completed",
			Details: []string{"Unable to parse details"},
		}
	}

	switch kind {
	case KindDentition:
		return summarizeDentition(normalizeDentition(payload))
	case KindHygiene:
		return summarizeHygiene(normalizeHygiene(payload))
	case KindFillings:
		return summarizeFillings(normalizeFillings(payload))
	case KindExtractions:
		return summarizeExtractions(normalizeExtractions(payload))
	case KindDenture:
		return summarizeDenture(normalizeDenture(payload))
	case KindImplant:
		return summarizeImplant(normalizeImplant(payload))
	default:
		return Summary{
			Summary: "Assessment completed",
			Details: []string{"No details recorded"},
		}
	}
}

// genericSummary is the per-kind fallback for payloads that decoded to a
// JSON object but match none of the known schema shapes.
func genericSummary(kind string) Summary {
	return Summary{
		Summary: titleWords(kind) + " assessment completed",
		Details: []string{"No details recorded"},
	}
}

// formatGroup renders one finding group as "<Label> (<count>): <ids>",
// with "None" standing in for an empty group.
func formatGroup(label string, ids []string) string {
	if len(ids) == 0 {
		return fmt.Sprintf("%s (0): None", label)
	}
	return fmt.Sprintf("%s (%d): %s", label, len(ids), strings.Join(ids, ", "))
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// titleWords capitalizes the first letter of each space- or hyphen-separated
// word. Used for display of free-string enums like timing modes.
func titleWords(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	upper := true
	for _, r := range s {
		switch {
		case r == ' ' || r == '-' || r == '_':
			upper = true
			b.WriteRune(r)
		case upper && r >= 'a' && r <= 'z':
			b.WriteRune(r - 32)
			upper = false
		default:
			b.WriteRune(r)
			upper = false
		}
	}
	return b.String()
}
