package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/domain/assessment"
	"github.com/tporfiris/dental-mission-mobile-sub000/internal/domain/patient"
	"github.com/tporfiris/dental-mission-mobile-sub000/internal/domain/treatment"
	"github.com/tporfiris/dental-mission-mobile-sub000/internal/platform/db"
	"github.com/tporfiris/dental-mission-mobile-sub000/internal/platform/events"
)

// pullBatchLimit caps the records returned for one resource per pull, so a
// device that has been offline for weeks catches up in pages.
const pullBatchLimit = 500

type Service struct {
	pool        *pgxpool.Pool
	devices     DeviceRepository
	patients    patient.Repository
	assessments assessment.Repository
	treatments  treatment.Repository
	pub         events.Publisher
}

// NewService wires the sync service. pool may be nil in tests; when set,
// push batches commit in a single transaction.
func NewService(pool *pgxpool.Pool, devices DeviceRepository, patients patient.Repository,
	assessments assessment.Repository, treatments treatment.Repository,
	pub events.Publisher) *Service {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &Service{
		pool:        pool,
		devices:     devices,
		patients:    patients,
		assessments: assessments,
		treatments:  treatments,
		pub:         pub,
	}
}

// inTx runs fn inside one transaction shared by every repository call,
// via the transaction the repositories pick up from the context.
func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.pool == nil {
		return fn(ctx)
	}
	return db.WithTx(ctx, s.pool, fn)
}

func (s *Service) RegisterDevice(ctx context.Context, d *Device) error {
	if d.DeviceName == "" {
		return fmt.Errorf("device_name is required")
	}
	return s.devices.Register(ctx, d)
}

func (s *Service) GetDevice(ctx context.Context, id uuid.UUID) (*Device, error) {
	return s.devices.GetByID(ctx, id)
}

func (s *Service) ListDevices(ctx context.Context) ([]*Device, error) {
	return s.devices.List(ctx)
}

// Push applies a batch of client-authored records. A malformed record
// reports an error in its slot instead of failing the batch, because the
// client deletes local copies only for acknowledged items. The upserts and
// the device counter commit in one transaction, so a crash mid-batch leaves
// nothing half-applied and the client retries the whole batch.
func (s *Service) Push(ctx context.Context, req *PushRequest) (*PushResult, error) {
	if req.DeviceID == uuid.Nil {
		return nil, fmt.Errorf("device_id is required")
	}
	if _, err := s.devices.GetByID(ctx, req.DeviceID); err != nil {
		return nil, fmt.Errorf("unknown device %s", req.DeviceID)
	}

	result := &PushResult{}
	if err := s.inTx(ctx, func(ctx context.Context) error {
		return s.applyBatch(ctx, req, result)
	}); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) applyBatch(ctx context.Context, req *PushRequest, result *PushResult) error {
	deviceID := req.DeviceID.String()

	for _, p := range req.Patients {
		item := ItemResult{Resource: "patient", ID: p.ID}
		switch {
		case p.ID == uuid.Nil:
			item.Status = StatusError
			item.Error = "missing id"
		default:
			applied, err := s.patients.Upsert(ctx, p)
			item.Status = itemStatus(applied, err, &item)
			if applied {
				s.publish(ctx, "patient.synced", p.ID.String(), p.ID.String(), deviceID)
			}
		}
		result.add(item)
	}

	for _, a := range req.Assessments {
		item := ItemResult{Resource: "assessment", ID: a.ID}
		switch {
		case a.ID == uuid.Nil || a.PatientID == uuid.Nil:
			item.Status = StatusError
			item.Error = "missing id or patient_id"
		case !assessment.IsKnownKind(a.Kind):
			item.Status = StatusError
			item.Error = fmt.Sprintf("unknown kind %q", a.Kind)
		default:
			if a.DeviceID == "" {
				a.DeviceID = deviceID
			}
			applied, err := s.assessments.Upsert(ctx, a)
			item.Status = itemStatus(applied, err, &item)
			if applied {
				s.publish(ctx, "assessment.synced", a.ID.String(), a.PatientID.String(), deviceID)
			}
		}
		result.add(item)
	}

	for _, t := range req.Treatments {
		item := ItemResult{Resource: "treatment", ID: t.ID}
		switch {
		case t.ID == uuid.Nil || t.PatientID == uuid.Nil:
			item.Status = StatusError
			item.Error = "missing id or patient_id"
		case !treatment.IsKnownType(t.Type):
			item.Status = StatusError
			item.Error = fmt.Sprintf("unknown type %q", t.Type)
		default:
			if t.DeviceID == "" {
				t.DeviceID = deviceID
			}
			applied, err := s.treatments.Upsert(ctx, t)
			item.Status = itemStatus(applied, err, &item)
			if applied {
				s.publish(ctx, "treatment.synced", t.ID.String(), t.PatientID.String(), deviceID)
			}
		}
		result.add(item)
	}

	if err := s.devices.TouchSeen(ctx, req.DeviceID, result.Applied); err != nil {
		return fmt.Errorf("update device: %w", err)
	}
	return nil
}

// Pull returns all records changed after the given cursor. The returned
// cursor is the highest updated_at seen, or the request cursor when nothing
// changed, so clients can poll with it verbatim.
func (s *Service) Pull(ctx context.Context, deviceID uuid.UUID, since time.Time) (*PullResponse, error) {
	if _, err := s.devices.GetByID(ctx, deviceID); err != nil {
		return nil, fmt.Errorf("unknown device %s", deviceID)
	}

	patients, err := s.patients.ListChangedSince(ctx, since, pullBatchLimit)
	if err != nil {
		return nil, fmt.Errorf("pull patients: %w", err)
	}
	assessments, err := s.assessments.ListChangedSince(ctx, since, pullBatchLimit)
	if err != nil {
		return nil, fmt.Errorf("pull assessments: %w", err)
	}
	treatments, err := s.treatments.ListChangedSince(ctx, since, pullBatchLimit)
	if err != nil {
		return nil, fmt.Errorf("pull treatments: %w", err)
	}

	resp := &PullResponse{
		Patients:    patients,
		Assessments: assessments,
		Treatments:  treatments,
		Cursor:      since,
	}
	for _, p := range patients {
		if p.UpdatedAt.After(resp.Cursor) {
			resp.Cursor = p.UpdatedAt
		}
	}
	for _, a := range assessments {
		if a.UpdatedAt.After(resp.Cursor) {
			resp.Cursor = a.UpdatedAt
		}
	}
	for _, t := range treatments {
		if t.UpdatedAt.After(resp.Cursor) {
			resp.Cursor = t.UpdatedAt
		}
	}

	if err := s.devices.TouchSeen(ctx, deviceID, 0); err != nil {
		return nil, fmt.Errorf("update device: %w", err)
	}
	return resp, nil
}

func (s *Service) publish(ctx context.Context, typ, resourceID, patientID, deviceID string) {
	_ = s.pub.Publish(ctx, events.Event{
		Type:       typ,
		ResourceID: resourceID,
		PatientID:  patientID,
		DeviceID:   deviceID,
	})
}

func itemStatus(applied bool, err error, item *ItemResult) string {
	if err != nil {
		item.Error = err.Error()
		return StatusError
	}
	if applied {
		return StatusApplied
	}
	return StatusSkipped
}

func (r *PushResult) add(item ItemResult) {
	switch item.Status {
	case StatusApplied:
		r.Applied++
	case StatusSkipped:
		r.Skipped++
	default:
		r.Errors++
	}
	r.Items = append(r.Items, item)
}
