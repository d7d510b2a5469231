package scheduling

import (
	"context"
	"fmt"

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

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) queryable {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const apptCols = `id, patient_id, dentist_id, appointment_date, start_time, end_time,
	status, type, notes, created_at, updated_at`

func (r *appointmentRepoPG) scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DentistID, &a.AppointmentDate, &a.StartTime, &a.EndTime,
		&a.Status, &a.Type, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointments (patient_id, dentist_id, appointment_date, start_time, end_time, status, type, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at`,
		a.PatientID, a.DentistID, a.AppointmentDate, a.StartTime, a.EndTime, a.Status, a.Type, a.Notes).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	return r.scanAppt(r.conn(ctx).QueryRow(ctx, `SELECT `+apptCols+` FROM appointments WHERE id = $1`, id))
}

func (r *appointmentRepoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointments SET patient_id=$2, dentist_id=$3, appointment_date=$4,
			start_time=$5, end_time=$6, status=$7, type=$8, notes=$9, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.PatientID, a.DentistID, a.AppointmentDate,
		a.StartTime, a.EndTime, a.Status, a.Type, a.Notes)
	return err
}

func (r *appointmentRepoPG) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE appointments SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appointmentRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return err
}

func (r *appointmentRepoPG) ListForDay(ctx context.Context, dentistID int64, date string) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+` FROM appointments
		WHERE dentist_id = $1 AND appointment_date = $2
		ORDER BY start_time ASC`, dentistID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppt(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *appointmentRepoPG) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointments WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+` FROM appointments WHERE patient_id = $1
		ORDER BY appointment_date DESC, start_time DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppt(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *appointmentRepoPG) ListByDentist(ctx context.Context, dentistID int64, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM appointments WHERE dentist_id = $1`, dentistID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+` FROM appointments WHERE dentist_id = $1
		ORDER BY appointment_date DESC, start_time DESC LIMIT $2 OFFSET $3`, dentistID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppt(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

const apptJoinCols = `a.id, a.patient_id, a.dentist_id, a.appointment_date, a.start_time, a.end_time,
	a.status, a.type, a.notes, a.created_at, a.updated_at,
	p.first_name || ' ' || p.last_name,
	d.first_name || ' ' || d.last_name`

func (r *appointmentRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*AppointmentWithNames, int, error) {
	query := `SELECT ` + apptJoinCols + `
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN dentists d ON d.id = a.dentist_id
		WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM appointments a WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["dentist_id"]; ok {
		query += fmt.Sprintf(` AND a.dentist_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND a.dentist_id = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["patient_id"]; ok {
		query += fmt.Sprintf(` AND a.patient_id = $%d`, idx)
		countQuery += fmt.Sprintf(` AND a.patient_id = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["status"]; ok {
		query += fmt.Sprintf(` AND a.status = $%d`, idx)
		countQuery += fmt.Sprintf(` AND a.status = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["date"]; ok {
		query += fmt.Sprintf(` AND a.appointment_date = $%d`, idx)
		countQuery += fmt.Sprintf(` AND a.appointment_date = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["from"]; ok {
		query += fmt.Sprintf(` AND a.appointment_date >= $%d`, idx)
		countQuery += fmt.Sprintf(` AND a.appointment_date >= $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["to"]; ok {
		query += fmt.Sprintf(` AND a.appointment_date <= $%d`, idx)
		countQuery += fmt.Sprintf(` AND a.appointment_date <= $%d`, idx)
		args = append(args, p)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY a.appointment_date ASC, a.start_time ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*AppointmentWithNames
	for rows.Next() {
		var a AppointmentWithNames
		if err := rows.Scan(&a.ID, &a.PatientID, &a.DentistID, &a.AppointmentDate, &a.StartTime, &a.EndTime,
			&a.Status, &a.Type, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
			&a.PatientName, &a.DentistName); err != nil {
			return nil, 0, err
		}
		items = append(items, &a)
	}
	return items, total, rows.Err()
}

func (r *appointmentRepoPG) WithBookingLock(ctx context.Context, dentistID int64, date string, fn func(ctx context.Context) error) error {
	return db.InTx(ctx, r.pool, func(txCtx context.Context) error {
		key := fmt.Sprintf("appointments:%d:%s", dentistID, date)
		if err := db.AcquireAdvisoryLock(txCtx, db.QuerierFromContext(txCtx), key); err != nil {
			return err
		}
		return fn(txCtx)
	})
}
