package patient

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error)
	GetByPhotoHash(ctx context.Context, hash string) ([]*Patient, error)
	ListChangedSince(ctx context.Context, since time.Time, limit int) ([]*Patient, error)
	// Upsert applies a client-authored record, last-writer-wins by
	// updated_at. Returns false when the server copy was newer.
	Upsert(ctx context.Context, p *Patient) (applied bool, err error)
}
