package billing

import "context"

type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id int64) (*Payment, error)
	Update(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id int64) error
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Payment, int, error)
	ListByDateRange(ctx context.Context, startDate, endDate string, limit, offset int) ([]*Payment, int, error)

	// SumPaidByPatient totals all payments for the patient, in cents.
	// Zero when the patient has none.
	SumPaidByPatient(ctx context.Context, patientID int64) (int64, error)

	// SumTreatmentCostByPatient totals the cost of every treatment on
	// the patient's chart, in cents. Zero when the chart is empty.
	SumTreatmentCostByPatient(ctx context.Context, patientID int64) (int64, error)
}
