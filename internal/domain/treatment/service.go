package treatment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/dental/billing"
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

// CreateTreatment stores a completed treatment. When the client did not send
// billing codes they are derived from the treatment type and surface count,
// so older app versions still produce billable records.
func (s *Service) CreateTreatment(ctx context.Context, t *Treatment) error {
	if t.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if !IsKnownType(t.Type) {
		return fmt.Errorf("unknown treatment type %q", t.Type)
	}
	if t.Units < 0 {
		return fmt.Errorf("units cannot be negative")
	}
	if t.Units == 0 {
		t.Units = 1
	}

	if t.BillingCodes == "" {
		if codes := billing.CodesFor(t.Type, surfaceCount(t.Surface)); len(codes) > 0 {
			t.BillingCodes = billing.Encode(codes)
		}
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return err
	}

	_ = s.pub.Publish(ctx, events.Event{
		Type:       "treatment.completed",
		ResourceID: t.ID.String(),
		PatientID:  t.PatientID.String(),
		DeviceID:   t.DeviceID,
	})
	return nil
}

// surfaceCount counts distinct surfaces in the stored surface field, which
// some app versions write compact ("MO") and others comma separated ("M,O").
func surfaceCount(s string) int {
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") {
		n := 0
		for _, part := range strings.Split(s, ",") {
			if strings.TrimSpace(part) != "" {
				n++
			}
		}
		return n
	}
	return len(s)
}

func (s *Service) GetTreatment(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Treatment, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// Details renders the stable display lines for one treatment.
func (s *Service) Details(ctx context.Context, id uuid.UUID) ([]string, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.Details(), nil
}
