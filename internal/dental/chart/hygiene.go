package chart

import (
	"fmt"
	"strings"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/dental/tooth"
)

type hygieneSchema int

const (
	hygieneUnknown hygieneSchema = iota
	// hygieneOptimized nests calculus/plaque/probingDepths sub-objects.
	hygieneOptimized
	// hygieneLegacyFlat stores bare "calculusLevel"/"plaqueLevel" strings.
	hygieneLegacyFlat
)

// DepositFinding describes a calculus or plaque observation: a severity
// level plus an optional distribution with affected quadrants.
type DepositFinding struct {
	Level        string // none | light | moderate | heavy
	Distribution string // "" | generalized | localized
	Quadrants    []string
}

// ProbingFinding holds periodontal probing depths: a chart-wide default and
// per-tooth exceptions in millimeters.
type ProbingFinding struct {
	Recorded   bool
	Default    float64
	Exceptions map[string]float64
}

// HygieneFinding is the normalized hygiene assessment.
type HygieneFinding struct {
	Schema        hygieneSchema
	Calculus      DepositFinding
	Plaque        DepositFinding
	Probing       ProbingFinding
	BleedingTeeth []string
	AAPStage      int    // 1–4, 0 when unrecorded
	AAPGrade      string // A–D, "" when unrecorded
}

func classifyHygiene(payload map[string]interface{}) hygieneSchema {
	if payload["calculus"] != nil || payload["plaque"] != nil || payload["probingDepths"] != nil {
		return hygieneOptimized
	}
	if payload["calculusLevel"] != nil || payload["plaqueLevel"] != nil {
		return hygieneLegacyFlat
	}
	return hygieneUnknown
}

func normalizeHygiene(payload map[string]interface{}) HygieneFinding {
	f := HygieneFinding{Schema: classifyHygiene(payload)}

	switch f.Schema {
	case hygieneOptimized:
		f.Calculus = depositFrom(childMap(payload, "calculus"))
		f.Plaque = depositFrom(childMap(payload, "plaque"))
		if pd := childMap(payload, "probingDepths"); pd != nil {
			f.Probing = ProbingFinding{
				Recorded:   true,
				Default:    num(pd, "default", 3),
				Exceptions: numberValues(childMap(pd, "exceptions")),
			}
		}
		f.BleedingTeeth = tooth.SortIDs(strList(payload, "bleedingTeeth"))
		if aap := childMap(payload, "aap"); aap != nil {
			f.AAPStage = int(num(aap, "stage", 0))
			f.AAPGrade = str(aap, "grade", "")
		}
	case hygieneLegacyFlat:
		f.Calculus = DepositFinding{Level: str(payload, "calculusLevel", "none")}
		f.Plaque = DepositFinding{Level: str(payload, "plaqueLevel", "none")}
	}

	return f
}

func depositFrom(m map[string]interface{}) DepositFinding {
	if m == nil {
		return DepositFinding{Level: "none"}
	}
	d := DepositFinding{
		Level:        str(m, "level", "none"),
		Distribution: str(m, "distribution", ""),
	}
	if d.Distribution == "localized" {
		d.Quadrants = strList(m, "quadrants")
	}
	return d
}

// Probing-depth severity bands in millimeters. Healthy teeth (≤3mm) are
// omitted from detail output, present only through the default depth.
const (
	probingSevereMin   = 7
	probingModerateMin = 5
	probingMildDepth   = 4
)

func summarizeHygiene(f HygieneFinding) Summary {
	if f.Schema == hygieneUnknown {
		return genericSummary(KindHygiene)
	}

	summary := fmt.Sprintf("Calculus: %s, Plaque: %s", f.Calculus.Level, f.Plaque.Level)

	details := []string{
		depositLine("Calculus", f.Calculus),
		depositLine("Plaque", f.Plaque),
	}

	if f.Probing.Recorded {
		details = append(details, fmt.Sprintf("Default probing depth: %smm", trimMM(f.Probing.Default)))
		var severe, moderate, mild []string
		for id, depth := range f.Probing.Exceptions {
			switch {
			case depth >= probingSevereMin:
				severe = append(severe, id)
			case depth >= probingModerateMin:
				moderate = append(moderate, id)
			case depth >= probingMildDepth:
				mild = append(mild, id)
			}
		}
		details = append(details,
			formatGroup("Severe pockets (7mm+)", tooth.SortIDs(severe)),
			formatGroup("Moderate pockets (5-6mm)", tooth.SortIDs(moderate)),
			formatGroup("Mild pockets (4mm)", tooth.SortIDs(mild)),
		)
	}

	if f.Schema == hygieneOptimized {
		details = append(details, formatGroup("Bleeding on probing", f.BleedingTeeth))
		if f.AAPStage > 0 || f.AAPGrade != "" {
			details = append(details, aapLine(f.AAPStage, f.AAPGrade))
		}
	}

	return Summary{Summary: summary, Details: details}
}

func depositLine(label string, d DepositFinding) string {
	line := fmt.Sprintf("%s: %s", label, d.Level)
	switch d.Distribution {
	case "generalized":
		line += ", generalized"
	case "localized":
		if len(d.Quadrants) > 0 {
			line += fmt.Sprintf(", localized (%s)", strings.Join(d.Quadrants, ", "))
		} else {
			line += ", localized"
		}
	}
	return line
}

func aapLine(stage int, grade string) string {
	parts := []string{}
	if stage > 0 {
		parts = append(parts, fmt.Sprintf("Stage %d", stage))
	}
	if grade != "" {
		parts = append(parts, fmt.Sprintf("Grade %s", grade))
	}
	return "AAP classification: " + strings.Join(parts, ", ")
}

// trimMM formats a depth without a trailing ".0" for whole millimeters.
func trimMM(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("%d", int(v))
	}
	return strings.TrimRight(fmt.Sprintf("%.1f", v), "0")
}
