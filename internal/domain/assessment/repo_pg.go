package assessment

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

const assessmentCols = `id, patient_id, kind, data, authored_by, device_id, created_at, updated_at`

func scanRow(row pgx.Row) (*Assessment, error) {
	var a Assessment
	err := row.Scan(&a.ID, &a.PatientID, &a.Kind, &a.Data, &a.AuthoredBy, &a.DeviceID,
		&a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Assessment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO assessments (id, patient_id, kind, data, authored_by, device_id)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.PatientID, a.Kind, a.Data, a.AuthoredBy, a.DeviceID)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	return scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+assessmentCols+` FROM assessments WHERE id = $1`, id))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM assessments WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+assessmentCols+` FROM assessments WHERE patient_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Assessment
	for rows.Next() {
		a, err := scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) ListChangedSince(ctx context.Context, since time.Time, limit int) ([]*Assessment, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+assessmentCols+` FROM assessments WHERE updated_at > $1 ORDER BY updated_at LIMIT $2`,
		since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Assessment
	for rows.Next() {
		a, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *repoPG) Upsert(ctx context.Context, a *Assessment) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO assessments (id, patient_id, kind, data, authored_by, device_id)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO NOTHING`,
		a.ID, a.PatientID, a.Kind, a.Data, a.AuthoredBy, a.DeviceID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
