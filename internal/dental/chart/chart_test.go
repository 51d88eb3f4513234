package chart

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestParseAssessmentData_OptimizedDentition(t *testing.T) {
	raw := `{"exceptions": {"16": "fully-missing", "26": "crown-missing"}, "primaryTeeth": []}`
	got := ParseAssessmentData(raw, KindDentition)
	if got.Summary != "30 present, 1 missing, 1 crown missing" {
		t.Errorf("summary = %q", got.Summary)
	}
	if len(got.Details) != 4 {
		t.Fatalf("expected 4 detail lines, got %d: %v", len(got.Details), got.Details)
	}
	if !strings.HasPrefix(got.Details[1], "Crown Missing (1): 26") {
		t.Errorf("crown-missing line = %q", got.Details[1])
	}
	if got.Details[2] != "Roots Only (0): None" {
		t.Errorf("roots-only line = %q", got.Details[2])
	}
	if got.Details[3] != "Missing (1): 16" {
		t.Errorf("missing line = %q", got.Details[3])
	}
}

func TestDentitionPartitionInvariant(t *testing.T) {
	payloads := []string{
		`{"exceptions": {}}`,
		`{"exceptions": {"16": "fully-missing", "26": "crown-missing", "36": "roots-only"}}`,
		`{"exceptions": {"11":"fully-missing","12":"fully-missing","13":"crown-missing"}}`,
	}
	for _, raw := range payloads {
		var payload = mustDecode(t, raw)
		f := normalizeDentition(payload)
		total := len(f.Present) + len(f.CrownMissing) + len(f.RootsOnly) + len(f.FullyMissing)
		if total != 32 {
			t.Errorf("partition total = %d for %s", total, raw)
		}
	}
}

func TestDentition_LegacyPrimaryNumbers(t *testing.T) {
	raw := `{
		"savedWithPrimaryNumbers": true,
		"originalToothStates": {"16": "fully-missing"},
		"primaryTeeth": ["11"]
	}`
	got := ParseAssessmentData(raw, KindDentition)
	if got.Summary != "31 present, 1 missing" {
		t.Errorf("summary = %q", got.Summary)
	}
	// Tooth 11 displays under its primary identifier 51.
	if !strings.Contains(got.Details[0], "51") {
		t.Errorf("present line should show primary id 51: %q", got.Details[0])
	}
	if strings.Contains(got.Details[0], "11,") || strings.HasSuffix(got.Details[0], " 11") {
		t.Errorf("present line should not show permanent id 11: %q", got.Details[0])
	}
}

func TestDentition_LegacyFlat(t *testing.T) {
	raw := `{"toothStates": {"18": "roots-only"}}`
	got := ParseAssessmentData(raw, KindDentition)
	if got.Summary != "31 present, 0 missing, 1 roots only" {
		t.Errorf("summary = %q", got.Summary)
	}
}

func TestDentition_UnrecognizedShape(t *testing.T) {
	got := ParseAssessmentData(`{"somethingElse": 1}`, KindDentition)
	if got.Summary != "Dentition assessment completed" {
		t.Errorf("summary = %q", got.Summary)
	}
	if !reflect.DeepEqual(got.Details, []string{"No details recorded"}) {
		t.Errorf("details = %v", got.Details)
	}
}

func TestParseAssessmentData_Extractions(t *testing.T) {
	raw := `{"extractions": {"18": "loose", "28": "none", "38": "root-tip"}}`
	got := ParseAssessmentData(raw, KindExtractions)
	if got.Summary != "2 teeth marked for extraction" {
		t.Errorf("summary = %q", got.Summary)
	}
	want := []string{
		"Loose (1): 18",
		"Root Tips (1): 38",
		"Non-Restorable (0): None",
	}
	if !reflect.DeepEqual(got.Details, want) {
		t.Errorf("details = %v, want %v", got.Details, want)
	}
	for _, line := range got.Details {
		if strings.Contains(line, "28") {
			t.Errorf("cleared tooth 28 leaked into %q", line)
		}
	}
}

func TestExtractions_LegacyKeyAndSingular(t *testing.T) {
	got := ParseAssessmentData(`{"extractionStates": {"48": "non-restorable"}}`, KindExtractions)
	if got.Summary != "1 tooth marked for extraction" {
		t.Errorf("summary = %q", got.Summary)
	}
	if got.Details[2] != "Non-Restorable (1): 48" {
		t.Errorf("non-restorable line = %q", got.Details[2])
	}
}

func TestParseAssessmentData_HygieneOptimized(t *testing.T) {
	raw := `{
		"calculus": {"level": "heavy", "distribution": "localized", "quadrants": ["upper-right"]},
		"plaque": {"level": "none"}
	}`
	got := ParseAssessmentData(raw, KindHygiene)
	if got.Summary != "Calculus: heavy, Plaque: none" {
		t.Errorf("summary = %q", got.Summary)
	}
	if got.Details[0] != "Calculus: heavy, localized (upper-right)" {
		t.Errorf("calculus line = %q", got.Details[0])
	}
}

func TestHygiene_ProbingBands(t *testing.T) {
	raw := `{
		"probingDepths": {"default": 3, "exceptions": {"17": 8, "16": 5, "15": 4, "14": 3}},
		"bleedingTeeth": ["16", "15"],
		"aap": {"stage": 2, "grade": "B"}
	}`
	got := ParseAssessmentData(raw, KindHygiene)
	joined := strings.Join(got.Details, "\n")
	for _, want := range []string{
		"Default probing depth: 3mm",
		"Severe pockets (7mm+) (1): 17",
		"Moderate pockets (5-6mm) (1): 16",
		"Mild pockets (4mm) (1): 15",
		"Bleeding on probing (2): 15, 16",
		"AAP classification: Stage 2, Grade B",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("details missing %q:\n%s", want, joined)
		}
	}
	// 3mm is healthy: only reachable through the default line.
	if strings.Contains(joined, "14") {
		t.Errorf("healthy tooth 14 leaked into details:\n%s", joined)
	}
}

func TestHygiene_LegacyFlat(t *testing.T) {
	got := ParseAssessmentData(`{"calculusLevel": "moderate", "plaqueLevel": "light"}`, KindHygiene)
	if got.Summary != "Calculus: moderate, Plaque: light" {
		t.Errorf("summary = %q", got.Summary)
	}
	// Legacy records carry reduced detail: the two level lines only.
	if len(got.Details) != 2 {
		t.Errorf("expected 2 detail lines, got %v", got.Details)
	}
}

func TestFillings_EmptySurfacesSuppressed(t *testing.T) {
	raw := `{"teethWithIssues": {"14": {"cavities": {"surfaces": []}}}}`
	got := ParseAssessmentData(raw, KindFillings)
	if got.Summary != "No restorative issues found" {
		t.Errorf("summary = %q", got.Summary)
	}
	if !reflect.DeepEqual(got.Details, []string{"Teeth with issues (0): None"}) {
		t.Errorf("details = %v", got.Details)
	}
}

func TestFillings_Optimized(t *testing.T) {
	raw := `{"teethWithIssues": {
		"14": {"cavities": {"surfaces": ["M", "O"]}, "fillings": {"type": "amalgam", "surfaces": ["D"]}},
		"27": {"rootCanal": {"needed": true, "pulpDiagnosis": "PULP NECROSIS"}}
	}}`
	got := ParseAssessmentData(raw, KindFillings)
	if got.Summary != "2 teeth with restorative issues" {
		t.Errorf("summary = %q", got.Summary)
	}
	if got.Details[0] != "Teeth with issues (2): 14, 27" {
		t.Errorf("group line = %q", got.Details[0])
	}
	if !strings.Contains(got.Details[1], "existing filling (amalgam: D)") ||
		!strings.Contains(got.Details[1], "cavities (M, O)") {
		t.Errorf("tooth 14 line = %q", got.Details[1])
	}
	if !strings.Contains(got.Details[2], "root canal needed (PULP NECROSIS)") {
		t.Errorf("tooth 27 line = %q", got.Details[2])
	}
}

func TestFillings_LegacyDenseGating(t *testing.T) {
	raw := `{
		"savedWithPrimaryNumbers": true,
		"primaryTeeth": [],
		"originalTeethStates": {
			"11": {"hasCavities": true, "cavitySurfaces": ["B"], "hasFillings": false},
			"12": {"hasCavities": true, "cavitySurfaces": [], "hasFillings": false},
			"13": {"hasFillings": true, "fillingSurfaces": ["M"], "fillingType": "composite"}
		}
	}`
	got := ParseAssessmentData(raw, KindFillings)
	if got.Summary != "2 teeth with restorative issues" {
		t.Errorf("summary = %q", got.Summary)
	}
	joined := strings.Join(got.Details, "\n")
	if strings.Contains(joined, "Tooth 12") {
		t.Errorf("tooth 12 has an empty surface list and must be suppressed:\n%s", joined)
	}
	if !strings.Contains(joined, "existing filling (composite: M)") {
		t.Errorf("tooth 13 filling missing:\n%s", joined)
	}
}

func TestDenture(t *testing.T) {
	raw := `{
		"selectedDentureType": "full-upper",
		"dentureOptions": {"upper-soft-reline": true, "lower-soft-reline": false},
		"notes": "delivery next trip"
	}`
	got := ParseAssessmentData(raw, KindDenture)
	if got.Summary != "Denture: full-upper" {
		t.Errorf("summary = %q", got.Summary)
	}
	want := []string{
		"Type: full-upper",
		"Reline services (1): upper-soft-reline",
		"Notes: delivery next trip",
	}
	if !reflect.DeepEqual(got.Details, want) {
		t.Errorf("details = %v", got.Details)
	}
}

func TestDenture_None(t *testing.T) {
	got := ParseAssessmentData(`{"selectedDentureType": "none"}`, KindDenture)
	if got.Summary != "No denture planned" {
		t.Errorf("summary = %q", got.Summary)
	}
	if got.Details[1] != "Reline services (0): None" {
		t.Errorf("options line = %q", got.Details[1])
	}
}

func TestImplant(t *testing.T) {
	raw := `{
		"singleImplantTeeth": ["14"],
		"bridgeImplantTeeth": ["35", "37"],
		"boneGraftingPlanned": true,
		"timingMode": "delayed placement"
	}`
	got := ParseAssessmentData(raw, KindImplant)
	if got.Summary != "Implants: 1 single, 2 bridge" {
		t.Errorf("summary = %q", got.Summary)
	}
	want := []string{
		"Single implants (1): 14",
		"Bridge implants (2): 35, 37",
		"Bone grafting: planned",
		"Timing: Delayed Placement",
	}
	if !reflect.DeepEqual(got.Details, want) {
		t.Errorf("details = %v", got.Details)
	}
}

func TestParseAssessmentData_MalformedJSON(t *testing.T) {
	for _, raw := range []string{"not valid json", "", "[1,2,3]", "null", `"a string"`} {
		for _, kind := range []string{KindDentition, KindHygiene, KindFillings, KindExtractions, KindDenture, KindImplant, "mystery"} {
			got := ParseAssessmentData(raw, kind)
			if got.Summary != "Assessment completed" {
				t.Errorf("ParseAssessmentData(%q, %s).Summary = %q", raw, kind, got.Summary)
			}
			if !reflect.DeepEqual(got.Details, []string{"Unable to parse details"}) {
				t.Errorf("ParseAssessmentData(%q, %s).Details = %v", raw, kind, got.Details)
			}
		}
	}
}

func TestParseAssessmentData_UnknownKind(t *testing.T) {
	got := ParseAssessmentData(`{"whatever": true}`, "orthodontics")
	if got.Summary != "Assessment completed" {
		t.Errorf("summary = %q", got.Summary)
	}
}

func TestParseAssessmentData_Pure(t *testing.T) {
	payloads := map[string]string{
		KindDentition:   `{"exceptions": {"16": "fully-missing"}}`,
		KindHygiene:     `{"calculus": {"level": "light"}, "bleedingTeeth": ["14", "12"]}`,
		KindFillings:    `{"teethWithIssues": {"14": {"cavities": {"surfaces": ["M"]}}}}`,
		KindExtractions: `{"extractions": {"18": "loose"}}`,
		KindDenture:     `{"selectedDentureType": "partial-lower"}`,
		KindImplant:     `{"singleImplantTeeth": ["21"]}`,
	}
	for kind, raw := range payloads {
		first := ParseAssessmentData(raw, kind)
		second := ParseAssessmentData(raw, kind)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("%s: repeated parse differs:\n%v\n%v", kind, first, second)
		}
	}
}

func mustDecode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	payload := map[string]interface{}{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("bad fixture %s: %v", raw, err)
	}
	return payload
}
