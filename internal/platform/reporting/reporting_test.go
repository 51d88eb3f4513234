package reporting

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/dental/chart"
)

func TestFindMeasure(t *testing.T) {
	if m := FindMeasure("patient-count"); m == nil || m.Name != "Patient Count" {
		t.Errorf("FindMeasure(patient-count) = %v", m)
	}
	if m := FindMeasure("no-such-measure"); m != nil {
		t.Errorf("expected nil for unknown measure, got %v", m)
	}
}

func TestMeasureIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range PredefinedMeasures {
		if seen[m.ID] {
			t.Errorf("duplicate measure id %q", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestBuildWorkbook(t *testing.T) {
	report := &MeasureReport{
		MeasureID:   "treatments-by-type",
		MeasureName: "Treatments by Type",
		GeneratedAt: time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC),
		Results: []map[string]interface{}{
			{"type": "filling", "total": 12},
			{"type": "extraction", "total": 7, "value": 175.0},
		},
	}

	data, err := BuildWorkbook(report)
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook did not reopen: %v", err)
	}
	defer f.Close()

	title, err := f.GetCellValue("Report", "A1")
	if err != nil {
		t.Fatal(err)
	}
	if title != "Treatments by Type" {
		t.Errorf("A1 = %q, want measure name", title)
	}

	// Header columns are the sorted union of keys from ragged rows.
	for i, want := range []string{"total", "type", "value"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		got, err := f.GetCellValue("Report", cell)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("header %s = %q, want %q", cell, got, want)
		}
	}
}

func TestAssessmentExportRow_JoinsDetails(t *testing.T) {
	data := `{"extractions":{"18":"loose","28":"none"}}`
	row := assessmentExportRow("Ana", "Reyes", "San Pedro", "2026-feb", "extractions", data, "dr-m", time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC))

	if row["patient"] != "Ana Reyes" {
		t.Errorf("patient = %v", row["patient"])
	}
	if row["record"] != "assessment" {
		t.Errorf("record = %v", row["record"])
	}
	if row["summary"] != "1 tooth marked for extraction" {
		t.Errorf("summary = %v", row["summary"])
	}
	details, _ := row["details"].(string)
	if details == "" {
		t.Fatal("details column empty")
	}
	// Detail lines collapse into one pipe-delimited spreadsheet cell.
	if strings.Contains(details, "\n") {
		t.Errorf("details = %q, want a single pipe-joined line", details)
	}
	if row["date"] != "2026-02-14" {
		t.Errorf("date = %v", row["date"])
	}
}

func TestAssessmentExportRow_MalformedPayload(t *testing.T) {
	row := assessmentExportRow("Ana", "Reyes", "", "", "hygiene", "not json", "", time.Now())
	if row["summary"] != "Assessment completed" {
		t.Errorf("summary = %v, want fallback", row["summary"])
	}
	if row["details"] != "Unable to parse details" {
		t.Errorf("details = %v, want fallback line", row["details"])
	}
}

func TestTreatmentExportRow(t *testing.T) {
	ct := chart.Treatment{Type: "filling", Tooth: "16", Surface: "MO", Units: 1, UnitValue: 40}
	row := treatmentExportRow("Luis", "Ortega", "El Valle", "2026-feb", ct, "dr-m", time.Now())

	if row["summary"] != "filling (tooth 16)" {
		t.Errorf("summary = %v", row["summary"])
	}
	details, _ := row["details"].(string)
	if !strings.Contains(details, "Tooth: 16") {
		t.Errorf("details = %q, want tooth line", details)
	}
}

func TestColumnOrder_Empty(t *testing.T) {
	if cols := columnOrder(nil); len(cols) != 0 {
		t.Errorf("columnOrder(nil) = %v, want empty", cols)
	}
}
