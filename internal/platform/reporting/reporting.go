// Package reporting serves mission outcome reports: SQL-backed measures that
// funders and ministry partners ask for, with Excel export and optional upload
// to an archive bucket.
package reporting

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/platform/auth"
)

// MeasureDefinition defines a reporting measure with its SQL query.
type MeasureDefinition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SQL         string   `json:"sql"`
	Parameters  []string `json:"parameters"`
}

// MeasureReport holds the results of evaluating a measure.
type MeasureReport struct {
	MeasureID   string                   `json:"measure_id"`
	MeasureName string                   `json:"measure_name"`
	GeneratedAt time.Time                `json:"generated_at"`
	Results     []map[string]interface{} `json:"results"`
	Parameters  map[string]string        `json:"parameters,omitempty"`
}

// PredefinedMeasures is the list of available reporting measures.
var PredefinedMeasures = []MeasureDefinition{
	{
		ID:          "patient-count",
		Name:        "Patient Count",
		Description: "Total patients registered, with counts by sex",
		SQL: `SELECT COUNT(*) AS total,
       COALESCE(SUM(CASE WHEN sex = 'female' THEN 1 ELSE 0 END), 0) AS female,
       COALESCE(SUM(CASE WHEN sex = 'male' THEN 1 ELSE 0 END), 0) AS male
FROM patients`,
		Parameters: []string{},
	},
	{
		ID:          "assessments-by-kind",
		Name:        "Assessments by Kind",
		Description: "Number of assessment records grouped by assessment kind",
		SQL:         `SELECT kind, COUNT(*) AS total FROM assessments GROUP BY kind ORDER BY total DESC`,
		Parameters:  []string{},
	},
	{
		ID:          "treatments-by-type",
		Name:        "Treatments by Type",
		Description: "Completed treatments grouped by type, with total unit value",
		SQL: `SELECT type, COUNT(*) AS total, COALESCE(SUM(units * unit_value), 0) AS value
FROM treatments GROUP BY type ORDER BY total DESC`,
		Parameters: []string{},
	},
	{
		ID:          "daily-activity",
		Name:        "Daily Activity",
		Description: "Patients seen and treatments delivered per clinic day",
		SQL: `SELECT DATE(t.created_at) AS day,
       COUNT(DISTINCT t.patient_id) AS patients_seen,
       COUNT(*) AS treatments
FROM treatments t GROUP BY DATE(t.created_at) ORDER BY day`,
		Parameters: []string{},
	},
	{
		ID:          "device-sync-status",
		Name:        "Device Sync Status",
		Description: "Registered devices with their last sync time and pushed record counts",
		SQL: `SELECT device_name, platform, last_seen_at, records_pushed
FROM sync_devices ORDER BY last_seen_at DESC NULLS LAST`,
		Parameters: []string{},
	},
}

// Handler provides HTTP handlers for the reporting API.
type Handler struct {
	pool     *pgxpool.Pool
	archiver *Archiver // nil when no bucket is configured
	logger   zerolog.Logger
}

// NewHandler creates a new reporting handler. archiver may be nil.
func NewHandler(pool *pgxpool.Pool, archiver *Archiver, logger zerolog.Logger) *Handler {
	return &Handler{pool: pool, archiver: archiver, logger: logger}
}

// RegisterRoutes registers the reporting API routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	reportGroup := api.Group("/reports", auth.RequireRole(auth.RoleAdmin, auth.RoleCoordinator))
	reportGroup.GET("/measures", h.ListMeasures)
	reportGroup.GET("/measures/:id/evaluate", h.EvaluateMeasure)
	reportGroup.GET("/measures/:id/export", h.ExportMeasure)
	reportGroup.GET("/records/export", h.ExportRecords)
}

// ListMeasures returns all available measure definitions.
func (h *Handler) ListMeasures(c echo.Context) error {
	return c.JSON(http.StatusOK, PredefinedMeasures)
}

// EvaluateMeasure executes a measure's SQL and returns the results.
func (h *Handler) EvaluateMeasure(c echo.Context) error {
	report, err := h.evaluate(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// ExportMeasure evaluates a measure and returns it as an Excel workbook.
// When an archive bucket is configured the workbook is also uploaded there,
// keyed by measure and date.
func (h *Handler) ExportMeasure(c echo.Context) error {
	report, err := h.evaluate(c)
	if err != nil {
		return err
	}

	data, err := BuildWorkbook(report)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("build workbook: %v", err))
	}

	filename := fmt.Sprintf("%s-%s.xlsx", report.MeasureID, report.GeneratedAt.Format("2006-01-02"))
	if h.archiver != nil {
		if err := h.archiver.Put(c.Request().Context(), filename, data); err != nil {
			// The caller still gets their download; the archive copy can be retried.
			h.logger.Error().Err(err).Str("key", filename).Msg("archive upload failed")
		}
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, workbookContentType, data)
}

func (h *Handler) evaluate(c echo.Context) (*MeasureReport, error) {
	measure := FindMeasure(c.Param("id"))
	if measure == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "measure not found")
	}

	params := map[string]string{}
	for _, p := range measure.Parameters {
		if v := c.QueryParam(p); v != "" {
			params[p] = v
		}
	}

	results, err := h.executeSQL(c.Request().Context(), measure.SQL)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("query failed: %v", err))
	}

	return &MeasureReport{
		MeasureID:   measure.ID,
		MeasureName: measure.Name,
		GeneratedAt: time.Now(),
		Results:     results,
		Parameters:  params,
	}, nil
}

// executeSQL runs a SQL query and returns results as a slice of maps.
func (h *Handler) executeSQL(ctx context.Context, sql string) ([]map[string]interface{}, error) {
	rows, err := h.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	var results []map[string]interface{}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(fieldDescs))
		for i, fd := range fieldDescs {
			row[string(fd.Name)] = values[i]
		}
		results = append(results, row)
	}

	if results == nil {
		results = []map[string]interface{}{}
	}

	return results, nil
}

// FindMeasure looks up a measure by ID.
func FindMeasure(id string) *MeasureDefinition {
	for i := range PredefinedMeasures {
		if PredefinedMeasures[i].ID == id {
			return &PredefinedMeasures[i]
		}
	}
	return nil
}
