package billing

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

type paymentRepoPG struct{ pool *pgxpool.Pool }

func NewPaymentRepoPG(pool *pgxpool.Pool) PaymentRepository { return &paymentRepoPG{pool: pool} }

func (r *paymentRepoPG) conn(ctx context.Context) queryable {
	if q := db.QuerierFromContext(ctx); q != nil {
		return q
	}
	return r.pool
}

const paymentCols = `id, patient_id, amount_cents, payment_date, payment_method,
	related_treatment_ids, notes, receipt_number, insurance_claim, created_at, updated_at`

func (r *paymentRepoPG) scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.PatientID, &p.AmountCents, &p.PaymentDate, &p.PaymentMethod,
		&p.RelatedTreatmentIDs, &p.Notes, &p.ReceiptNumber, &p.InsuranceClaim, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *paymentRepoPG) Create(ctx context.Context, p *Payment) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO payments (patient_id, amount_cents, payment_date, payment_method,
			related_treatment_ids, notes, receipt_number, insurance_claim)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at`,
		p.PatientID, p.AmountCents, p.PaymentDate, p.PaymentMethod,
		p.RelatedTreatmentIDs, p.Notes, p.ReceiptNumber, p.InsuranceClaim).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *paymentRepoPG) Update(ctx context.Context, p *Payment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE payments SET amount_cents=$2, payment_date=$3, payment_method=$4,
			related_treatment_ids=$5, notes=$6, receipt_number=$7, insurance_claim=$8, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.AmountCents, p.PaymentDate, p.PaymentMethod,
		p.RelatedTreatmentIDs, p.Notes, p.ReceiptNumber, p.InsuranceClaim)
	return err
}

func (r *paymentRepoPG) GetByID(ctx context.Context, id int64) (*Payment, error) {
	return r.scanPayment(r.conn(ctx).QueryRow(ctx, `SELECT `+paymentCols+` FROM payments WHERE id = $1`, id))
}

func (r *paymentRepoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return err
}

func (r *paymentRepoPG) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Payment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+paymentCols+` FROM payments WHERE patient_id = $1
		ORDER BY payment_date DESC, id DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Payment
	for rows.Next() {
		p, err := r.scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *paymentRepoPG) ListByDateRange(ctx context.Context, startDate, endDate string, limit, offset int) ([]*Payment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE payment_date >= $1 AND payment_date <= $2`,
		startDate, endDate).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+paymentCols+` FROM payments WHERE payment_date >= $1 AND payment_date <= $2
		ORDER BY payment_date DESC, id DESC LIMIT $3 OFFSET $4`, startDate, endDate, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Payment
	for rows.Next() {
		p, err := r.scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *paymentRepoPG) SumPaidByPatient(ctx context.Context, patientID int64) (int64, error) {
	var total int64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM payments WHERE patient_id = $1`, patientID).Scan(&total)
	return total, err
}

func (r *paymentRepoPG) SumTreatmentCostByPatient(ctx context.Context, patientID int64) (int64, error) {
	var total int64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COALESCE(SUM(cost_cents), 0) FROM treatments WHERE patient_id = $1`, patientID).Scan(&total)
	return total, err
}
