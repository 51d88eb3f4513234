package chart

import (
	"fmt"
	"strings"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/dental/tooth"
)

type fillingsSchema int

const (
	fillingsUnknown fillingsSchema = iota
	// fillingsOptimized stores a sparse "teethWithIssues" map; a sub-key is
	// present only when that finding applies.
	fillingsOptimized
	// fillingsLegacyDense stores a full record per tooth under
	// "originalTeethStates", with boolean gates paired to detail fields.
	fillingsLegacyDense
)

// Root-canal diagnosis vocabularies. Stored verbatim; display passes them
// through unchanged.
var (
	PulpDiagnoses = []string{
		"REVERSIBLE PULPITIS",
		"SYMPTOMATIC IRREVERSIBLE PULPITIS",
		"ASYMPTOMATIC IRREVERSIBLE PULPITIS",
		"PULP NECROSIS",
	}
	ApicalDiagnoses = []string{
		"NORMAL APICAL TISSUES",
		"SYMPTOMATIC APICAL PERIODONTITIS",
		"ASYMPTOMATIC APICAL PERIODONTITIS",
		"CHRONIC APICAL ABSCESS",
		"ACUTE APICAL ABSCESS",
	}
)

// ToothIssues collects the independent restorative findings for one tooth.
// A surface-based finding counts only when its surface list is non-empty;
// a present-but-empty list is not a finding.
type ToothIssues struct {
	FillingType     string
	FillingSurfaces []string
	CrownMaterial   string
	ExistingRootCanal bool
	NeedsRootCanal  bool
	PulpDiagnosis   string
	ApicalDiagnosis string
	CavitySurfaces  []string
	BrokenSurfaces  []string
}

// HasFilling reports an existing filling (gated on surfaces).
func (t ToothIssues) HasFilling() bool { return len(t.FillingSurfaces) > 0 }

// HasCrown reports an existing crown.
func (t ToothIssues) HasCrown() bool { return t.CrownMaterial != "" }

// HasCavities reports cavities (gated on surfaces).
func (t ToothIssues) HasCavities() bool { return len(t.CavitySurfaces) > 0 }

// IsBroken reports fracture findings (gated on surfaces).
func (t ToothIssues) IsBroken() bool { return len(t.BrokenSurfaces) > 0 }

// Any reports whether the tooth carries at least one finding.
func (t ToothIssues) Any() bool {
	return t.HasFilling() || t.HasCrown() || t.HasCavities() || t.IsBroken() ||
		t.ExistingRootCanal || t.NeedsRootCanal
}

// FillingsFinding is the normalized restorative assessment: only teeth with
// at least one gated finding are kept.
type FillingsFinding struct {
	Schema       fillingsSchema
	Teeth        map[string]ToothIssues
	PrimaryTeeth map[string]bool
}

func classifyFillings(payload map[string]interface{}) fillingsSchema {
	if payload["teethWithIssues"] != nil {
		return fillingsOptimized
	}
	if boolVal(payload, "savedWithPrimaryNumbers") && payload["originalTeethStates"] != nil {
		return fillingsLegacyDense
	}
	return fillingsUnknown
}

func normalizeFillings(payload map[string]interface{}) FillingsFinding {
	f := FillingsFinding{
		Schema:       classifyFillings(payload),
		Teeth:        map[string]ToothIssues{},
		PrimaryTeeth: strSet(payload, "primaryTeeth"),
	}

	switch f.Schema {
	case fillingsOptimized:
		for id, raw := range childMap(payload, "teethWithIssues") {
			entry, ok := raw.(map[string]interface{})
			if !ok || !tooth.IsPermanent(id) {
				continue
			}
			issues := sparseIssues(entry)
			if issues.Any() {
				f.Teeth[id] = issues
			}
		}
	case fillingsLegacyDense:
		for id, raw := range childMap(payload, "originalTeethStates") {
			entry, ok := raw.(map[string]interface{})
			if !ok || !tooth.IsPermanent(id) {
				continue
			}
			issues := denseIssues(entry)
			if issues.Any() {
				f.Teeth[id] = issues
			}
		}
	}

	return f
}

// sparseIssues reads the optimized shape, where each finding is a nested
// object present only when it applies.
func sparseIssues(entry map[string]interface{}) ToothIssues {
	var t ToothIssues
	if fill := childMap(entry, "fillings"); fill != nil {
		t.FillingSurfaces = strList(fill, "surfaces")
		if t.HasFilling() {
			t.FillingType = str(fill, "type", "Unknown")
		}
	}
	if crown := childMap(entry, "crown"); crown != nil {
		t.CrownMaterial = str(crown, "material", "Unknown")
	}
	if rc := childMap(entry, "rootCanal"); rc != nil {
		t.ExistingRootCanal = boolVal(rc, "existing")
		t.NeedsRootCanal = boolVal(rc, "needed")
		t.PulpDiagnosis = str(rc, "pulpDiagnosis", "")
		t.ApicalDiagnosis = str(rc, "apicalDiagnosis", "")
	}
	if cav := childMap(entry, "cavities"); cav != nil {
		t.CavitySurfaces = strList(cav, "surfaces")
	}
	if br := childMap(entry, "broken"); br != nil {
		t.BrokenSurfaces = strList(br, "surfaces")
	}
	return t
}

// denseIssues reads the legacy shape, where every tooth carries the full
// record and boolean gates decide which detail fields apply.
func denseIssues(entry map[string]interface{}) ToothIssues {
	var t ToothIssues
	if boolVal(entry, "hasFillings") {
		t.FillingSurfaces = strList(entry, "fillingSurfaces")
		if t.HasFilling() {
			t.FillingType = str(entry, "fillingType", "Unknown")
		}
	}
	if boolVal(entry, "hasCrowns") {
		t.CrownMaterial = str(entry, "crownMaterial", "Unknown")
	}
	t.ExistingRootCanal = boolVal(entry, "hasExistingRootCanal")
	if boolVal(entry, "hasCavities") {
		t.CavitySurfaces = strList(entry, "cavitySurfaces")
	}
	if boolVal(entry, "isBroken") {
		t.BrokenSurfaces = strList(entry, "brokenSurfaces")
	}
	if boolVal(entry, "needsRootCanal") {
		t.NeedsRootCanal = true
		t.PulpDiagnosis = str(entry, "pulpDiagnosis", "")
		t.ApicalDiagnosis = str(entry, "apicalDiagnosis", "")
	}
	return t
}

func summarizeFillings(f FillingsFinding) Summary {
	if f.Schema == fillingsUnknown {
		return genericSummary(KindFillings)
	}

	ids := make([]string, 0, len(f.Teeth))
	for id := range f.Teeth {
		ids = append(ids, id)
	}
	tooth.SortIDs(ids)

	display := make([]string, len(ids))
	for i, id := range ids {
		display[i] = tooth.DisplayID(id, f.PrimaryTeeth)
	}

	if len(ids) == 0 {
		return Summary{
			Summary: "No restorative issues found",
			Details: []string{formatGroup("Teeth with issues", nil)},
		}
	}

	details := []string{formatGroup("Teeth with issues", display)}
	for i, id := range ids {
		details = append(details, toothIssueLine(display[i], f.Teeth[id]))
	}

	return Summary{
		Summary: fmt.Sprintf("%d %s with restorative issues", len(ids), plural(len(ids), "tooth", "teeth")),
		Details: details,
	}
}

func toothIssueLine(displayID string, t ToothIssues) string {
	var parts []string
	if t.HasFilling() {
		parts = append(parts, fmt.Sprintf("existing filling (%s: %s)", t.FillingType, strings.Join(t.FillingSurfaces, ", ")))
	}
	if t.HasCrown() {
		parts = append(parts, fmt.Sprintf("crown (%s)", t.CrownMaterial))
	}
	if t.ExistingRootCanal {
		parts = append(parts, "existing root canal")
	}
	if t.HasCavities() {
		parts = append(parts, fmt.Sprintf("cavities (%s)", strings.Join(t.CavitySurfaces, ", ")))
	}
	if t.IsBroken() {
		parts = append(parts, fmt.Sprintf("broken (%s)", strings.Join(t.BrokenSurfaces, ", ")))
	}
	if t.NeedsRootCanal {
		line := "root canal needed"
		var dx []string
		if t.PulpDiagnosis != "" {
			dx = append(dx, t.PulpDiagnosis)
		}
		if t.ApicalDiagnosis != "" {
			dx = append(dx, t.ApicalDiagnosis)
		}
		if len(dx) > 0 {
			line += fmt.Sprintf(" (%s)", strings.Join(dx, "; "))
		}
		parts = append(parts, line)
	}
	return fmt.Sprintf("Tooth %s: %s", displayID, strings.Join(parts, "; "))
}
