package assessment

import (
	"time"

	"github.com/google/uuid"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/dental/chart"
)

// Assessment maps to the assessments table. The Data column is the encoded
// JSON payload exactly as the mobile client authored it; the server never
// rewrites it, only interprets it through the chart parser. Records are
// immutable once created.
type Assessment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PatientID  uuid.UUID `db:"patient_id" json:"patient_id"`
	Kind       string    `db:"kind" json:"kind"`
	Data       string    `db:"data" json:"data"`
	AuthoredBy string    `db:"authored_by" json:"authored_by,omitempty"`
	DeviceID   string    `db:"device_id" json:"device_id,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Summarize renders the record for display.
func (a *Assessment) Summarize() chart.Summary {
	return chart.ParseAssessmentData(a.Data, a.Kind)
}

// KnownKinds are the assessment kinds the mobile app produces.
var KnownKinds = []string{
	chart.KindDentition,
	chart.KindHygiene,
	chart.KindFillings,
	chart.KindExtractions,
	chart.KindDenture,
	chart.KindImplant,
}

func IsKnownKind(kind string) bool {
	for _, k := range KnownKinds {
		if k == kind {
			return true
		}
	}
	return false
}
