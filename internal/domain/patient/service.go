package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

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

func (s *Service) CreatePatient(ctx context.Context, p *Patient, photoBase64 string) error {
	if p.FirstName == "" && p.LastName == "" {
		return fmt.Errorf("a first or last name is required")
	}
	if p.DateOfBirth != nil && p.DateOfBirth.After(time.Now()) {
		return fmt.Errorf("date_of_birth cannot be in the future")
	}

	if photoBase64 != "" {
		hash, err := PhotoHash(photoBase64)
		if err != nil {
			return fmt.Errorf("photo: %w", err)
		}
		p.PhotoHash = hash
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	_ = s.pub.Publish(ctx, events.Event{
		Type:       "patient.created",
		ResourceID: p.ID.String(),
		PatientID:  p.ID.String(),
	})
	return nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.FirstName == "" && p.LastName == "" {
		return fmt.Errorf("a first or last name is required")
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	_ = s.pub.Publish(ctx, events.Event{
		Type:       "patient.updated",
		ResourceID: p.ID.String(),
		PatientID:  p.ID.String(),
	})
	return nil
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) SearchPatients(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	return s.repo.Search(ctx, params, limit, offset)
}

// FindDuplicatesByPhoto hashes the supplied photo and returns patients whose
// registered photo fingerprint matches.
func (s *Service) FindDuplicatesByPhoto(ctx context.Context, photoBase64 string) ([]*Patient, error) {
	hash, err := PhotoHash(photoBase64)
	if err != nil {
		return nil, err
	}
	if hash == "" {
		return nil, fmt.Errorf("photo is required")
	}
	return s.repo.GetByPhotoHash(ctx, hash)
}
