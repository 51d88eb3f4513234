package chart

import (
	"fmt"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/dental/tooth"
)

// Extraction states. "none" marks a tooth explicitly cleared on the screen;
// such teeth are excluded from every derived list and count.
const (
	ExtractionNone           = "none"
	ExtractionLoose          = "loose"
	ExtractionRootTip        = "root-tip"
	ExtractionNonRestorable  = "non-restorable"
)

// ExtractionFinding groups teeth marked for extraction by indication.
type ExtractionFinding struct {
	Loose         []string
	RootTips      []string
	NonRestorable []string
}

// Total counts all teeth marked for extraction.
func (f ExtractionFinding) Total() int {
	return len(f.Loose) + len(f.RootTips) + len(f.NonRestorable)
}

func normalizeExtractions(payload map[string]interface{}) ExtractionFinding {
	states := childMap(payload, "extractions")
	if states == nil {
		states = childMap(payload, "extractionStates")
	}

	var f ExtractionFinding
	for id, state := range stringValues(states) {
		switch state {
		case ExtractionLoose:
			f.Loose = append(f.Loose, id)
		case ExtractionRootTip:
			f.RootTips = append(f.RootTips, id)
		case ExtractionNonRestorable:
			f.NonRestorable = append(f.NonRestorable, id)
		}
		// ExtractionNone and unknown states fall through: not marked.
	}
	tooth.SortIDs(f.Loose)
	tooth.SortIDs(f.RootTips)
	tooth.SortIDs(f.NonRestorable)
	return f
}

func summarizeExtractions(f ExtractionFinding) Summary {
	n := f.Total()
	return Summary{
		Summary: fmt.Sprintf("%d %s marked for extraction", n, plural(n, "tooth", "teeth")),
		Details: []string{
			formatGroup("Loose", f.Loose),
			formatGroup("Root Tips", f.RootTips),
			formatGroup("Non-Restorable", f.NonRestorable),
		},
	}
}
