package chart

import (
	"reflect"
	"testing"
)

func TestParseTreatmentDetails_HygieneStructuredNotes(t *testing.T) {
	tr := Treatment{
		Type:  TreatmentHygiene,
		Units: 1,
		Notes: `{"scaling": true, "polishing": true, "fluoride": false, "medication": "Ibuprofen 400mg", "notes": "sensitive lower left"}`,
	}
	got := ParseTreatmentDetails(tr)
	want := []string{
		"Services (2): scaling, polishing",
		"Medication: Ibuprofen 400mg",
		"Notes: sensitive lower left",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("details = %v, want %v", got, want)
	}
}

func TestParseTreatmentDetails_HygieneFallsBackToUnits(t *testing.T) {
	tr := Treatment{Type: TreatmentHygiene, Units: 2, Notes: "plain free text"}
	got := ParseTreatmentDetails(tr)
	if !reflect.DeepEqual(got, []string{"Units: 2"}) {
		t.Errorf("details = %v", got)
	}
}

func TestParseTreatmentDetails_Filling(t *testing.T) {
	tr := Treatment{
		Type:         TreatmentFilling,
		Tooth:        "14",
		Surface:      "MO",
		BillingCodes: `["D2392"]`,
	}
	got := ParseTreatmentDetails(tr)
	want := []string{
		"Tooth: 14",
		"Surfaces: Mesial, Occlusal",
		"Billing codes: D2392",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("details = %v, want %v", got, want)
	}
}

func TestParseTreatmentDetails_Extraction(t *testing.T) {
	tr := Treatment{Type: TreatmentExtraction, Tooth: "48", Notes: "impacted"}
	got := ParseTreatmentDetails(tr)
	want := []string{"Tooth: 48", "Notes: impacted"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("details = %v, want %v", got, want)
	}
}

func TestParseTreatmentDetails_UnknownType(t *testing.T) {
	tr := Treatment{Type: "sealant", Units: 4}
	got := ParseTreatmentDetails(tr)
	if !reflect.DeepEqual(got, []string{"Units: 4"}) {
		t.Errorf("details = %v", got)
	}
}

func TestDecodeBillingCodes(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{`["D1110", "D1120"]`, []string{"D1110", "D1120"}},
		{`[{"code": "D7140"}, {"code": ""}]`, []string{"D7140"}},
		{`[]`, nil},
		{``, nil},
		{`not json`, nil},
		{`{"code": "D1110"}`, nil},
	}
	for _, tc := range cases {
		if got := DecodeBillingCodes(tc.raw); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("DecodeBillingCodes(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
