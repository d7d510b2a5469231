package treatment

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zahrawi-dent/DentaCare-Pro/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Procedure Repository ===========

type procedureRepoPG struct{ pool *pgxpool.Pool }

func NewProcedureRepoPG(pool *pgxpool.Pool) ProcedureRepository { return &procedureRepoPG{pool: pool} }

func (r *procedureRepoPG) conn(ctx context.Context) queryable {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const procCols = `id, code, name, description, default_cost_cents, category, duration_minutes, created_at, updated_at`

func (r *procedureRepoPG) scanProcedure(row pgx.Row) (*Procedure, error) {
	var p Procedure
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.DefaultCostCents, &p.Category,
		&p.DurationMinutes, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *procedureRepoPG) Create(ctx context.Context, p *Procedure) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO procedures (code, name, description, default_cost_cents, category, duration_minutes)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at`,
		p.Code, p.Name, p.Description, p.DefaultCostCents, p.Category, p.DurationMinutes).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *procedureRepoPG) GetByID(ctx context.Context, id int64) (*Procedure, error) {
	return r.scanProcedure(r.conn(ctx).QueryRow(ctx, `SELECT `+procCols+` FROM procedures WHERE id = $1`, id))
}

func (r *procedureRepoPG) Update(ctx context.Context, p *Procedure) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE procedures SET code=$2, name=$3, description=$4, default_cost_cents=$5, category=$6,
			duration_minutes=$7, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Code, p.Name, p.Description, p.DefaultCostCents, p.Category, p.DurationMinutes)
	return err
}

func (r *procedureRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM procedures WHERE id = $1`, id)
	return err
}

func (r *procedureRepoPG) List(ctx context.Context, limit, offset int) ([]*Procedure, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM procedures`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+procCols+` FROM procedures ORDER BY code ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Procedure
	for rows.Next() {
		p, err := r.scanProcedure(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *procedureRepoPG) ListByCategory(ctx context.Context, category string, limit, offset int) ([]*Procedure, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM procedures WHERE category = $1`, category).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+procCols+` FROM procedures WHERE category = $1 ORDER BY code ASC LIMIT $2 OFFSET $3`, category, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Procedure
	for rows.Next() {
		p, err := r.scanProcedure(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

// =========== Treatment Repository ===========

type treatmentRepoPG struct{ pool *pgxpool.Pool }

func NewTreatmentRepoPG(pool *pgxpool.Pool) TreatmentRepository { return &treatmentRepoPG{pool: pool} }

func (r *treatmentRepoPG) conn(ctx context.Context) queryable {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const treatmentCols = `id, patient_id, dentist_id, procedure_id, appointment_id, treatment_date,
	cost_cents, tooth, status, notes, created_at, updated_at`

func (r *treatmentRepoPG) scanTreatment(row pgx.Row) (*Treatment, error) {
	var t Treatment
	err := row.Scan(&t.ID, &t.PatientID, &t.DentistID, &t.ProcedureID, &t.AppointmentID, &t.TreatmentDate,
		&t.CostCents, &t.Tooth, &t.Status, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *treatmentRepoPG) Create(ctx context.Context, t *Treatment) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO treatments (patient_id, dentist_id, procedure_id, appointment_id, treatment_date,
			cost_cents, tooth, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id, created_at, updated_at`,
		t.PatientID, t.DentistID, t.ProcedureID, t.AppointmentID, t.TreatmentDate,
		t.CostCents, t.Tooth, t.Status, t.Notes).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *treatmentRepoPG) GetByID(ctx context.Context, id int64) (*Treatment, error) {
	return r.scanTreatment(r.conn(ctx).QueryRow(ctx, `SELECT `+treatmentCols+` FROM treatments WHERE id = $1`, id))
}

func (r *treatmentRepoPG) Update(ctx context.Context, t *Treatment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE treatments SET dentist_id=$2, procedure_id=$3, appointment_id=$4, treatment_date=$5,
			cost_cents=$6, tooth=$7, status=$8, notes=$9, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.DentistID, t.ProcedureID, t.AppointmentID, t.TreatmentDate,
		t.CostCents, t.Tooth, t.Status, t.Notes)
	return err
}

func (r *treatmentRepoPG) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE treatments SET status=$2, updated_at=NOW()
		WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *treatmentRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM treatments WHERE id = $1`, id)
	return err
}

const treatmentJoinCols = `t.id, t.patient_id, t.dentist_id, t.procedure_id, t.appointment_id, t.treatment_date,
	t.cost_cents, t.tooth, t.status, t.notes, t.created_at, t.updated_at, pr.name`

func (r *treatmentRepoPG) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*TreatmentWithProcedure, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM treatments WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+treatmentJoinCols+`
		FROM treatments t JOIN procedures pr ON pr.id = t.procedure_id
		WHERE t.patient_id = $1
		ORDER BY t.treatment_date DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := scanTreatmentJoins(rows)
	return items, total, err
}

func (r *treatmentRepoPG) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*TreatmentWithProcedure, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM treatments WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+treatmentJoinCols+`
		FROM treatments t JOIN procedures pr ON pr.id = t.procedure_id
		WHERE t.status = $1
		ORDER BY t.treatment_date DESC LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := scanTreatmentJoins(rows)
	return items, total, err
}

func (r *treatmentRepoPG) ListByAppointment(ctx context.Context, appointmentID int64) ([]*TreatmentWithProcedure, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+treatmentJoinCols+`
		FROM treatments t JOIN procedures pr ON pr.id = t.procedure_id
		WHERE t.appointment_id = $1
		ORDER BY t.created_at ASC`, appointmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTreatmentJoins(rows)
}

func scanTreatmentJoins(rows pgx.Rows) ([]*TreatmentWithProcedure, error) {
	var items []*TreatmentWithProcedure
	for rows.Next() {
		var t TreatmentWithProcedure
		if err := rows.Scan(&t.ID, &t.PatientID, &t.DentistID, &t.ProcedureID, &t.AppointmentID, &t.TreatmentDate,
			&t.CostCents, &t.Tooth, &t.Status, &t.Notes, &t.CreatedAt, &t.UpdatedAt,
			&t.ProcedureName); err != nil {
			return nil, err
		}
		items = append(items, &t)
	}
	return items, rows.Err()
}
