package patient

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return fmt.Errorf("not found")
	}
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		if v := params["village"]; v != "" && p.Village != v {
			continue
		}
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockRepo) GetByPhotoHash(_ context.Context, hash string) ([]*Patient, error) {
	var result []*Patient
	for _, p := range m.patients {
		if p.PhotoHash == hash {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockRepo) ListChangedSince(_ context.Context, since time.Time, limit int) ([]*Patient, error) {
	var result []*Patient
	for _, p := range m.patients {
		if p.UpdatedAt.After(since) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockRepo) Upsert(_ context.Context, p *Patient) (bool, error) {
	existing, ok := m.patients[p.ID]
	if ok && !existing.UpdatedAt.Before(p.UpdatedAt) {
		return false, nil
	}
	m.patients[p.ID] = p
	return true, nil
}

// -- Tests --

func TestCreatePatient_RequiresName(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	err := svc.CreatePatient(context.Background(), &Patient{}, "")
	if err == nil {
		t.Fatal("expected error for patient without a name")
	}
}

func TestCreatePatient_RejectsFutureBirthDate(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	future := time.Now().Add(24 * time.Hour)
	err := svc.CreatePatient(context.Background(), &Patient{FirstName: "Ana", DateOfBirth: &future}, "")
	if err == nil {
		t.Fatal("expected error for future date of birth")
	}
}

func TestCreatePatient_HashesPhoto(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)

	photo := base64.StdEncoding.EncodeToString([]byte("intake-photo-bytes"))
	p := &Patient{FirstName: "Ana", LastName: "Reyes"}
	if err := svc.CreatePatient(context.Background(), p, photo); err != nil {
		t.Fatalf("CreatePatient: %v", err)
	}
	if p.PhotoHash == "" {
		t.Error("expected photo hash to be set")
	}

	// Same photo from another device finds the original record.
	matches, err := svc.FindDuplicatesByPhoto(context.Background(), photo)
	if err != nil {
		t.Fatalf("FindDuplicatesByPhoto: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != p.ID {
		t.Errorf("expected the registered patient as a duplicate, got %v", matches)
	}
}

func TestCreatePatient_RejectsBadPhoto(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	err := svc.CreatePatient(context.Background(), &Patient{FirstName: "Ana"}, "not base64!!!")
	if err == nil {
		t.Fatal("expected error for undecodable photo")
	}
}

func TestFindDuplicatesByPhoto_RequiresPhoto(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	if _, err := svc.FindDuplicatesByPhoto(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty photo")
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"Ana", "Reyes", "Ana Reyes"},
		{"Ana", "", "Ana"},
		{"", "Reyes", "Reyes"},
	}
	for _, tc := range cases {
		p := &Patient{FirstName: tc.first, LastName: tc.last}
		if got := p.DisplayName(); got != tc.want {
			t.Errorf("DisplayName(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestPhotoHash_Deterministic(t *testing.T) {
	photo := base64.StdEncoding.EncodeToString([]byte("same bytes"))
	h1, err := PhotoHash(photo)
	if err != nil {
		t.Fatalf("PhotoHash: %v", err)
	}
	h2, _ := PhotoHash(photo)
	if h1 != h2 {
		t.Errorf("hash not deterministic: %q vs %q", h1, h2)
	}

	other := base64.StdEncoding.EncodeToString([]byte("different bytes"))
	h3, _ := PhotoHash(other)
	if h1 == h3 {
		t.Error("different photos produced the same hash")
	}
}
