package treatment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *Treatment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Treatment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Treatment, int, error)
	ListChangedSince(ctx context.Context, since time.Time, limit int) ([]*Treatment, error)
	// Upsert applies a client-authored record idempotently: an existing ID
	// is left untouched because treatments are immutable.
	Upsert(ctx context.Context, t *Treatment) (applied bool, err error)
}
