package treatment

import (
	"context"
	"time"

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const treatmentCols = `id, patient_id, type, tooth, surface, units, unit_value,
	billing_codes, notes, completed_by, device_id, created_at, updated_at`

func scanRow(row pgx.Row) (*Treatment, error) {
	var t Treatment
	err := row.Scan(&t.ID, &t.PatientID, &t.Type, &t.Tooth, &t.Surface, &t.Units, &t.UnitValue,
		&t.BillingCodes, &t.Notes, &t.CompletedBy, &t.DeviceID, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *repoPG) Create(ctx context.Context, t *Treatment) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO treatments (id, patient_id, type, tooth, surface, units, unit_value,
			billing_codes, notes, completed_by, device_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		t.ID, t.PatientID, t.Type, t.Tooth, t.Surface, t.Units, t.UnitValue,
		t.BillingCodes, t.Notes, t.CompletedBy, t.DeviceID)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	return scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+treatmentCols+` FROM treatments WHERE id = $1`, id))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Treatment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM treatments WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+treatmentCols+` FROM treatments WHERE patient_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Treatment
	for rows.Next() {
		t, err := scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListChangedSince(ctx context.Context, since time.Time, limit int) ([]*Treatment, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+treatmentCols+` FROM treatments WHERE updated_at > $1 ORDER BY updated_at LIMIT $2`,
		since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Treatment
	for rows.Next() {
		t, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *repoPG) Upsert(ctx context.Context, t *Treatment) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO treatments (id, patient_id, type, tooth, surface, units, unit_value,
			billing_codes, notes, completed_by, device_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO NOTHING`,
		t.ID, t.PatientID, t.Type, t.Tooth, t.Surface, t.Units, t.UnitValue,
		t.BillingCodes, t.Notes, t.CompletedBy, t.DeviceID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
