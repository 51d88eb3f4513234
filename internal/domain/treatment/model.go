package treatment

import (
	"time"

	"github.com/google/uuid"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/dental/chart"
)

// Treatment maps to the treatments table. Like assessments these are
// immutable once synced; the billing_codes column holds the encoded JSON
// array the mobile app writes, decoded only at display time.
type Treatment struct {
	ID           uuid.UUID `db:"id" json:"id"`
	PatientID    uuid.UUID `db:"patient_id" json:"patient_id"`
	Type         string    `db:"type" json:"type"`
	Tooth        string    `db:"tooth" json:"tooth,omitempty"`
	Surface      string    `db:"surface" json:"surface,omitempty"`
	Units        int       `db:"units" json:"units"`
	UnitValue    float64   `db:"unit_value" json:"unit_value"`
	BillingCodes string    `db:"billing_codes" json:"billing_codes,omitempty"`
	Notes        string    `db:"notes" json:"notes,omitempty"`
	CompletedBy  string    `db:"completed_by" json:"completed_by,omitempty"`
	DeviceID     string    `db:"device_id" json:"device_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// KnownTypes are the treatment types the mobile app records.
var KnownTypes = []string{
	chart.TreatmentHygiene,
	chart.TreatmentExtraction,
	chart.TreatmentFilling,
	chart.TreatmentDenture,
	chart.TreatmentImplant,
	chart.TreatmentImplantCrown,
}

func IsKnownType(t string) bool {
	for _, k := range KnownTypes {
		if k == t {
			return true
		}
	}
	return false
}

// toChart converts the record to the chart layer's shape for detail rendering.
func (t *Treatment) toChart() chart.Treatment {
	return chart.Treatment{
		Type:         t.Type,
		Tooth:        t.Tooth,
		Surface:      t.Surface,
		Units:        t.Units,
		UnitValue:    t.UnitValue,
		BillingCodes: t.BillingCodes,
		Notes:        t.Notes,
	}
}

// Details renders the stable display lines for the record.
func (t *Treatment) Details() []string {
	return chart.ParseTreatmentDetails(t.toChart())
}

// TotalValue is the delivered value of this record.
func (t *Treatment) TotalValue() float64 {
	return float64(t.Units) * t.UnitValue
}
