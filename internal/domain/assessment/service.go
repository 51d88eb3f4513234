package assessment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/dental/chart"
	"github.com/tporfiris/dental-mission-mobile-sub000/internal/platform/events"
)

type Service struct {
	repo Repository
	pub  events.Publisher
}

func NewService(repo Repository, pub events.Publisher) *Service {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &Service{repo: repo, pub: pub}
}

// CreateAssessment stores a new immutable assessment record. The data payload
// is accepted as-is even when it does not parse; the chart layer renders the
// fallback summary for those, and rejecting them would strand records that
// the mobile app has already committed locally.
func (s *Service) CreateAssessment(ctx context.Context, a *Assessment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if !IsKnownKind(a.Kind) {
		return fmt.Errorf("unknown assessment kind %q", a.Kind)
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return err
	}

	_ = s.pub.Publish(ctx, events.Event{
		Type:       "assessment.created",
		ResourceID: a.ID.String(),
		PatientID:  a.PatientID.String(),
		DeviceID:   a.DeviceID,
	})
	return nil
}

func (s *Service) GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// Summarize renders the stored payload for display.
func (s *Service) Summarize(ctx context.Context, id uuid.UUID) (chart.Summary, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return chart.Summary{}, err
	}
	return a.Summarize(), nil
}
