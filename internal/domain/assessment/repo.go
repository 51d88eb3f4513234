package assessment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Assessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error)
	ListChangedSince(ctx context.Context, since time.Time, limit int) ([]*Assessment, error)
	// Upsert applies a client-authored record idempotently: an existing ID
	// is left untouched because assessments are immutable.
	Upsert(ctx context.Context, a *Assessment) (applied bool, err error)
}
