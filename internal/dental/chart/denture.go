package chart

import (
	"fmt"
	"strings"
)

// Denture types offered on the assessment screen.
var DentureTypes = []string{
	"none",
	"full-upper",
	"full-lower",
	"full-both",
	"partial-upper",
	"partial-lower",
	"partial-both",
}

// Reline service option keys.
const (
	OptionUpperSoftReline = "upper-soft-reline"
	OptionLowerSoftReline = "lower-soft-reline"
)

// DentureFinding is the normalized denture assessment.
type DentureFinding struct {
	Type    string
	Options []string // enabled reline services, stable order
	Notes   string
}

func normalizeDenture(payload map[string]interface{}) DentureFinding {
	f := DentureFinding{
		Type:  str(payload, "selectedDentureType", "none"),
		Notes: str(payload, "notes", ""),
	}
	opts := childMap(payload, "dentureOptions")
	for _, key := range []string{OptionUpperSoftReline, OptionLowerSoftReline} {
		if boolVal(opts, key) {
			f.Options = append(f.Options, key)
		}
	}
	return f
}

func summarizeDenture(f DentureFinding) Summary {
	summary := "No denture planned"
	if f.Type != "none" {
		summary = fmt.Sprintf("Denture: %s", f.Type)
	}

	details := []string{
		fmt.Sprintf("Type: %s", f.Type),
		formatServiceGroup("Reline services", f.Options),
	}
	if f.Notes != "" {
		details = append(details, "Notes: "+f.Notes)
	}
	return Summary{Summary: summary, Details: details}
}

// formatServiceGroup mirrors formatGroup for non-tooth lists.
func formatServiceGroup(label string, items []string) string {
	if len(items) == 0 {
		return fmt.Sprintf("%s (0): None", label)
	}
	return fmt.Sprintf("%s (%d): %s", label, len(items), strings.Join(items, ", "))
}
