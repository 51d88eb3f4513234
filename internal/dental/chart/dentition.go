package chart

import (
	"fmt"
	"strings"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/dental/tooth"
)

// Dentition tooth states.
const (
	StatePresent      = "present"
	StateCrownMissing = "crown-missing"
	StateRootsOnly    = "roots-only"
	StateFullyMissing = "fully-missing"
)

// dentitionSchema tags which historical payload shape a dentition record
// was written under.
type dentitionSchema int

const (
	dentitionUnknown dentitionSchema = iota
	// dentitionOptimized stores only the teeth deviating from an implicit
	// default of present, under an "exceptions" map.
	dentitionOptimized
	// dentitionLegacyPrimary is the full 32-entry map saved together with
	// primary-numbering state ("savedWithPrimaryNumbers" + "originalToothStates").
	dentitionLegacyPrimary
	// dentitionLegacyFlat is the oldest full map ("toothStates"), with no
	// primary-tooth tracking.
	dentitionLegacyFlat
)

// DentitionFinding partitions the 32 permanent teeth by recorded state.
// Identifier keys are always permanent FDI; primary numbering applies at
// display time only.
type DentitionFinding struct {
	Schema       dentitionSchema
	Present      []string
	CrownMissing []string
	RootsOnly    []string
	FullyMissing []string
	PrimaryTeeth map[string]bool
}

func classifyDentition(payload map[string]interface{}) dentitionSchema {
	if _, ok := payload["exceptions"]; ok {
		return dentitionOptimized
	}
	if boolVal(payload, "savedWithPrimaryNumbers") && payload["originalToothStates"] != nil {
		return dentitionLegacyPrimary
	}
	if _, ok := payload["toothStates"]; ok {
		return dentitionLegacyFlat
	}
	return dentitionUnknown
}

func normalizeDentition(payload map[string]interface{}) DentitionFinding {
	f := DentitionFinding{
		Schema:       classifyDentition(payload),
		PrimaryTeeth: strSet(payload, "primaryTeeth"),
	}

	switch f.Schema {
	case dentitionOptimized:
		exceptions := stringValues(childMap(payload, "exceptions"))
		for _, id := range tooth.Permanent {
			switch exceptions[id] {
			case StateCrownMissing:
				f.CrownMissing = append(f.CrownMissing, id)
			case StateRootsOnly:
				f.RootsOnly = append(f.RootsOnly, id)
			case StateFullyMissing:
				f.FullyMissing = append(f.FullyMissing, id)
			default:
				// Absent from exceptions, or an unknown state: present.
				f.Present = append(f.Present, id)
			}
		}
	case dentitionLegacyPrimary:
		f.partitionStates(stringValues(childMap(payload, "originalToothStates")))
	case dentitionLegacyFlat:
		f.PrimaryTeeth = map[string]bool{}
		f.partitionStates(stringValues(childMap(payload, "toothStates")))
	}

	return f
}

// partitionStates distributes a full tooth→state map over the four state
// sets. Teeth absent from the map, or with unknown states, count as present.
func (f *DentitionFinding) partitionStates(states map[string]string) {
	for _, id := range tooth.Permanent {
		switch states[id] {
		case StateCrownMissing:
			f.CrownMissing = append(f.CrownMissing, id)
		case StateRootsOnly:
			f.RootsOnly = append(f.RootsOnly, id)
		case StateFullyMissing:
			f.FullyMissing = append(f.FullyMissing, id)
		default:
			f.Present = append(f.Present, id)
		}
	}
}

func summarizeDentition(f DentitionFinding) Summary {
	if f.Schema == dentitionUnknown {
		return genericSummary(KindDentition)
	}

	parts := []string{
		fmt.Sprintf("%d present", len(f.Present)),
		fmt.Sprintf("%d missing", len(f.FullyMissing)),
	}
	if n := len(f.CrownMissing); n > 0 {
		parts = append(parts, fmt.Sprintf("%d crown missing", n))
	}
	if n := len(f.RootsOnly); n > 0 {
		parts = append(parts, fmt.Sprintf("%d roots only", n))
	}

	return Summary{
		Summary: strings.Join(parts, ", "),
		Details: []string{
			formatGroup("Present", f.display(f.Present)),
			formatGroup("Crown Missing", f.display(f.CrownMissing)),
			formatGroup("Roots Only", f.display(f.RootsOnly)),
			formatGroup("Missing", f.display(f.FullyMissing)),
		},
	}
}

// display converts permanent identifiers to their primary-notation display
// form where the chart was saved under primary numbering.
func (f DentitionFinding) display(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = tooth.DisplayID(id, f.PrimaryTeeth)
	}
	return out
}
