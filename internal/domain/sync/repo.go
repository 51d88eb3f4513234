package sync

import (
	"context"

	"github.com/google/uuid"
)

type DeviceRepository interface {
	Register(ctx context.Context, d *Device) error
	GetByID(ctx context.Context, id uuid.UUID) (*Device, error)
	List(ctx context.Context) ([]*Device, error)
	// TouchSeen updates last_seen_at and adds pushed to the running count.
	TouchSeen(ctx context.Context, id uuid.UUID, pushed int) error
}
