package sync

import (
	"time"

	"github.com/google/uuid"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/domain/assessment"
	"github.com/tporfiris/dental-mission-mobile-sub000/internal/domain/patient"
	"github.com/tporfiris/dental-mission-mobile-sub000/internal/domain/treatment"
)

// Device maps to the sync_devices table: one row per mobile client that has
// registered with this server.
type Device struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	DeviceName    string     `db:"device_name" json:"device_name"`
	Platform      string     `db:"platform" json:"platform,omitempty"`
	RegisteredBy  string     `db:"registered_by" json:"registered_by,omitempty"`
	LastSeenAt    *time.Time `db:"last_seen_at" json:"last_seen_at,omitempty"`
	RecordsPushed int64      `db:"records_pushed" json:"records_pushed"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// PushRequest is a batch of client-authored records. IDs are minted on the
// device, so resending the same batch is safe.
type PushRequest struct {
	DeviceID    uuid.UUID               `json:"device_id"`
	Patients    []*patient.Patient      `json:"patients,omitempty"`
	Assessments []*assessment.Assessment `json:"assessments,omitempty"`
	Treatments  []*treatment.Treatment  `json:"treatments,omitempty"`
}

// Item statuses in a push result.
const (
	StatusApplied = "applied"
	StatusSkipped = "skipped" // server already has this or a newer copy
	StatusError   = "error"
)

// ItemResult reports the outcome for one record in a push batch.
type ItemResult struct {
	Resource string    `json:"resource"` // patient, assessment, treatment
	ID       uuid.UUID `json:"id"`
	Status   string    `json:"status"`
	Error    string    `json:"error,omitempty"`
}

// PushResult summarizes a processed batch.
type PushResult struct {
	Applied int          `json:"applied"`
	Skipped int          `json:"skipped"`
	Errors  int          `json:"errors"`
	Items   []ItemResult `json:"items"`
}

// PullResponse carries every record changed since the client's cursor, plus
// the next cursor to resume from.
type PullResponse struct {
	Patients    []*patient.Patient       `json:"patients"`
	Assessments []*assessment.Assessment `json:"assessments"`
	Treatments  []*treatment.Treatment   `json:"treatments"`
	Cursor      time.Time                `json:"cursor"`
}
