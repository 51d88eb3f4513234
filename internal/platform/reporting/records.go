package reporting

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/dental/chart"
)

// ExportRecords flattens every assessment and treatment into one spreadsheet
// row alongside its patient metadata, with the parsed summary and detail
// lines joined into report columns. Ministry partners get one workbook per
// mission trip instead of raw JSON payloads.
func (h *Handler) ExportRecords(c echo.Context) error {
	ctx := c.Request().Context()
	trip := c.QueryParam("mission_trip")

	rows, err := h.collectRecordRows(ctx, trip)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("collect records: %v", err))
	}

	report := &MeasureReport{
		MeasureID:   "mission-records",
		MeasureName: "Mission Records",
		GeneratedAt: time.Now(),
		Results:     rows,
	}
	if trip != "" {
		report.MeasureName = "Mission Records: " + trip
		report.Parameters = map[string]string{"mission_trip": trip}
	}

	data, err := BuildWorkbook(report)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("build workbook: %v", err))
	}

	filename := fmt.Sprintf("%s-%s.xlsx", report.MeasureID, report.GeneratedAt.Format("2006-01-02"))
	if h.archiver != nil {
		if err := h.archiver.Put(ctx, filename, data); err != nil {
			h.logger.Error().Err(err).Str("key", filename).Msg("archive upload failed")
		}
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, workbookContentType, data)
}

func (h *Handler) collectRecordRows(ctx context.Context, trip string) ([]map[string]interface{}, error) {
	rows := []map[string]interface{}{}

	assessmentSQL := `SELECT p.first_name, p.last_name, p.village, p.mission_trip,
       a.kind, a.data, a.authored_by, a.created_at
FROM assessments a JOIN patients p ON p.id = a.patient_id`
	args := []interface{}{}
	if trip != "" {
		assessmentSQL += ` WHERE p.mission_trip = $1`
		args = append(args, trip)
	}
	assessmentSQL += ` ORDER BY a.created_at`

	ar, err := h.pool.Query(ctx, assessmentSQL, args...)
	if err != nil {
		return nil, err
	}
	defer ar.Close()
	for ar.Next() {
		var firstName, lastName, village, missionTrip, kind, data, authoredBy string
		var createdAt time.Time
		if err := ar.Scan(&firstName, &lastName, &village, &missionTrip, &kind, &data, &authoredBy, &createdAt); err != nil {
			return nil, err
		}
		rows = append(rows, assessmentExportRow(firstName, lastName, village, missionTrip, kind, data, authoredBy, createdAt))
	}
	if err := ar.Err(); err != nil {
		return nil, err
	}

	treatmentSQL := `SELECT p.first_name, p.last_name, p.village, p.mission_trip,
       t.type, t.tooth, t.surface, t.units, t.unit_value, t.billing_codes, t.notes, t.completed_by, t.created_at
FROM treatments t JOIN patients p ON p.id = t.patient_id`
	if trip != "" {
		treatmentSQL += ` WHERE p.mission_trip = $1`
	}
	treatmentSQL += ` ORDER BY t.created_at`

	tr, err := h.pool.Query(ctx, treatmentSQL, args...)
	if err != nil {
		return nil, err
	}
	defer tr.Close()
	for tr.Next() {
		var firstName, lastName, village, missionTrip, completedBy string
		var ct chart.Treatment
		var createdAt time.Time
		if err := tr.Scan(&firstName, &lastName, &village, &missionTrip,
			&ct.Type, &ct.Tooth, &ct.Surface, &ct.Units, &ct.UnitValue, &ct.BillingCodes, &ct.Notes,
			&completedBy, &createdAt); err != nil {
			return nil, err
		}
		rows = append(rows, treatmentExportRow(firstName, lastName, village, missionTrip, ct, completedBy, createdAt))
	}
	if err := tr.Err(); err != nil {
		return nil, err
	}

	return rows, nil
}

func assessmentExportRow(firstName, lastName, village, trip, kind, data, authoredBy string, createdAt time.Time) map[string]interface{} {
	parsed := chart.ParseAssessmentData(data, kind)
	return map[string]interface{}{
		"patient":      strings.TrimSpace(firstName + " " + lastName),
		"village":      village,
		"mission_trip": trip,
		"record":       "assessment",
		"kind":         kind,
		"summary":      parsed.Summary,
		"details":      strings.Join(parsed.Details, " | "),
		"recorded_by":  authoredBy,
		"date":         createdAt.Format("2006-01-02"),
	}
}

func treatmentExportRow(firstName, lastName, village, trip string, t chart.Treatment, completedBy string, createdAt time.Time) map[string]interface{} {
	summary := t.Type
	if t.Tooth != "" {
		summary += " (tooth " + t.Tooth + ")"
	}
	return map[string]interface{}{
		"patient":      strings.TrimSpace(firstName + " " + lastName),
		"village":      village,
		"mission_trip": trip,
		"record":       "treatment",
		"kind":         t.Type,
		"summary":      summary,
		"details":      strings.Join(chart.ParseTreatmentDetails(t), " | "),
		"recorded_by":  completedBy,
		"date":         createdAt.Format("2006-01-02"),
	}
}
