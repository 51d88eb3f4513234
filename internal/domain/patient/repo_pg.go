package patient

import (
	"context"
	"fmt"
	"strings"
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

const patientCols = `id, first_name, last_name, date_of_birth, sex, village, mission_trip,
	phone, notes, photo_hash, created_at, updated_at`

func scanRow(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.Sex, &p.Village,
		&p.MissionTrip, &p.Phone, &p.Notes, &p.PhotoHash, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (id, first_name, last_name, date_of_birth, sex, village,
			mission_trip, phone, notes, photo_hash)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Sex, p.Village,
		p.MissionTrip, p.Phone, p.Notes, p.PhotoHash)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET first_name=$2, last_name=$3, date_of_birth=$4, sex=$5, village=$6,
			mission_trip=$7, phone=$8, notes=$9, photo_hash=$10, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Sex, p.Village,
		p.MissionTrip, p.Phone, p.Notes, p.PhotoHash)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	return err
}

// Search filters by name (prefix, case-insensitive), village and mission trip.
func (r *repoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	where := []string{"1=1"}
	var args []interface{}

	if name := params["name"]; name != "" {
		args = append(args, name+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", n, n))
	}
	if village := params["village"]; village != "" {
		args = append(args, village)
		where = append(where, fmt.Sprintf("village = $%d", len(args)))
	}
	if trip := params["mission_trip"]; trip != "" {
		args = append(args, trip)
		where = append(where, fmt.Sprintf("mission_trip = $%d", len(args)))
	}

	cond := strings.Join(where, " AND ")

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patients WHERE `+cond+
			fmt.Sprintf(` ORDER BY last_name, first_name LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		p, err := scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) GetByPhotoHash(ctx context.Context, hash string) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patients WHERE photo_hash = $1 ORDER BY created_at`, hash)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		p, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *repoPG) ListChangedSince(ctx context.Context, since time.Time, limit int) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+patientCols+` FROM patients WHERE updated_at > $1 ORDER BY updated_at LIMIT $2`,
		since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		p, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// Upsert inserts a client-authored record or, when the ID already exists,
// updates it if the incoming copy is newer. Returns false when the server
// copy is newer and the write was skipped.
func (r *repoPG) Upsert(ctx context.Context, p *Patient) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patients (id, first_name, last_name, date_of_birth, sex, village,
			mission_trip, phone, notes, photo_hash, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10, COALESCE($11, NOW()))
		ON CONFLICT (id) DO UPDATE SET
			first_name=EXCLUDED.first_name, last_name=EXCLUDED.last_name,
			date_of_birth=EXCLUDED.date_of_birth, sex=EXCLUDED.sex,
			village=EXCLUDED.village, mission_trip=EXCLUDED.mission_trip,
			phone=EXCLUDED.phone, notes=EXCLUDED.notes, photo_hash=EXCLUDED.photo_hash,
			updated_at=EXCLUDED.updated_at
		WHERE patients.updated_at < EXCLUDED.updated_at`,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Sex, p.Village,
		p.MissionTrip, p.Phone, p.Notes, p.PhotoHash, nullableTime(p.UpdatedAt))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
