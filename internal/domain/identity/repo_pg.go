package identity

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

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository { return &patientRepoPG{pool: pool} }

func (r *patientRepoPG) conn(ctx context.Context) queryable {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const patientCols = `id, first_name, last_name, date_of_birth, gender, phone, email, address,
	insurance_provider, insurance_number, medical_history, allergies, notes, created_at, updated_at`

func (r *patientRepoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.Gender, &p.Phone,
		&p.Email, &p.Address, &p.InsuranceProvider, &p.InsuranceNumber,
		&p.MedicalHistory, &p.Allergies, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (first_name, last_name, date_of_birth, gender, phone, email, address,
			insurance_provider, insurance_number, medical_history, allergies, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id, created_at, updated_at`,
		p.FirstName, p.LastName, p.DateOfBirth, p.Gender, p.Phone, p.Email, p.Address,
		p.InsuranceProvider, p.InsuranceNumber, p.MedicalHistory, p.Allergies, p.Notes).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *patientRepoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET first_name=$2, last_name=$3, date_of_birth=$4, gender=$5, phone=$6,
			email=$7, address=$8, insurance_provider=$9, insurance_number=$10,
			medical_history=$11, allergies=$12, notes=$13, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Gender, p.Phone,
		p.Email, p.Address, p.InsuranceProvider, p.InsuranceNumber,
		p.MedicalHistory, p.Allergies, p.Notes)
	return err
}

func (r *patientRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	return err
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patients ORDER BY last_name ASC, first_name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *patientRepoPG) Search(ctx context.Context, term string, limit, offset int) ([]*Patient, int, error) {
	pattern := "%" + term + "%"
	where := ` WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR phone ILIKE $1 OR email ILIKE $1`
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`+where, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM patients`+where+
		` ORDER BY last_name ASC, first_name ASC LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

// =========== Dentist Repository ===========

type dentistRepoPG struct{ pool *pgxpool.Pool }

func NewDentistRepoPG(pool *pgxpool.Pool) DentistRepository { return &dentistRepoPG{pool: pool} }

func (r *dentistRepoPG) conn(ctx context.Context) queryable {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const dentistCols = `id, first_name, last_name, email, phone, specialization, license_number,
	notes, created_at, updated_at`

func (r *dentistRepoPG) scanDentist(row pgx.Row) (*Dentist, error) {
	var d Dentist
	err := row.Scan(&d.ID, &d.FirstName, &d.LastName, &d.Email, &d.Phone,
		&d.Specialization, &d.LicenseNumber, &d.Notes, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *dentistRepoPG) Create(ctx context.Context, d *Dentist) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO dentists (first_name, last_name, email, phone, specialization, license_number, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at`,
		d.FirstName, d.LastName, d.Email, d.Phone, d.Specialization, d.LicenseNumber, d.Notes).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *dentistRepoPG) GetByID(ctx context.Context, id int64) (*Dentist, error) {
	return r.scanDentist(r.conn(ctx).QueryRow(ctx, `SELECT `+dentistCols+` FROM dentists WHERE id = $1`, id))
}

func (r *dentistRepoPG) Update(ctx context.Context, d *Dentist) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE dentists SET first_name=$2, last_name=$3, email=$4, phone=$5,
			specialization=$6, license_number=$7, notes=$8, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.FirstName, d.LastName, d.Email, d.Phone, d.Specialization, d.LicenseNumber, d.Notes)
	return err
}

func (r *dentistRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM dentists WHERE id = $1`, id)
	return err
}

func (r *dentistRepoPG) List(ctx context.Context, limit, offset int) ([]*Dentist, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM dentists`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+dentistCols+` FROM dentists ORDER BY last_name ASC, first_name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Dentist
	for rows.Next() {
		d, err := r.scanDentist(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}
