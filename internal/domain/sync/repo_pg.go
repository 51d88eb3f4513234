package sync

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tporfiris/dental-mission-mobile-sub000/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type deviceRepoPG struct{ pool *pgxpool.Pool }

func NewDeviceRepoPG(pool *pgxpool.Pool) DeviceRepository {
	return &deviceRepoPG{pool: pool}
}

func (r *deviceRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const deviceCols = `id, device_name, platform, registered_by, last_seen_at, records_pushed, created_at`

func scanDevice(row pgx.Row) (*Device, error) {
	var d Device
	err := row.Scan(&d.ID, &d.DeviceName, &d.Platform, &d.RegisteredBy,
		&d.LastSeenAt, &d.RecordsPushed, &d.CreatedAt)
	return &d, err
}

func (r *deviceRepoPG) Register(ctx context.Context, d *Device) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	// Re-registering is a no-op apart from refreshing the name, so the app
	// can call this on every startup.
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO sync_devices (id, device_name, platform, registered_by)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET device_name=EXCLUDED.device_name, platform=EXCLUDED.platform`,
		d.ID, d.DeviceName, d.Platform, d.RegisteredBy)
	return err
}

func (r *deviceRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Device, error) {
	return scanDevice(r.conn(ctx).QueryRow(ctx, `SELECT `+deviceCols+` FROM sync_devices WHERE id = $1`, id))
}

func (r *deviceRepoPG) List(ctx context.Context) ([]*Device, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+deviceCols+` FROM sync_devices ORDER BY last_seen_at DESC NULLS LAST`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *deviceRepoPG) TouchSeen(ctx context.Context, id uuid.UUID, pushed int) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE sync_devices SET last_seen_at = NOW(), records_pushed = records_pushed + $2
		WHERE id = $1`, id, pushed)
	return err
}
