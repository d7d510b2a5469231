package billing

import (
	"context"
	"fmt"
	"time"
)

var validMethods = map[string]bool{
	MethodCash: true, MethodCard: true, MethodCheck: true,
	MethodInsurance: true, MethodOther: true,
}

type Service struct {
	payments PaymentRepository
}

func NewService(payments PaymentRepository) *Service {
	return &Service{payments: payments}
}

func validatePayment(p *Payment) error {
	if p.PatientID == 0 {
		return fmt.Errorf("patient_id is required")
	}
	if p.AmountCents <= 0 {
		return fmt.Errorf("amount_cents must be positive")
	}
	if _, err := time.Parse("2006-01-02", p.PaymentDate); err != nil {
		return fmt.Errorf("invalid payment_date %q, want YYYY-MM-DD", p.PaymentDate)
	}
	if p.PaymentMethod == "" {
		p.PaymentMethod = MethodCash
	}
	if !validMethods[p.PaymentMethod] {
		return fmt.Errorf("invalid payment_method: %s", p.PaymentMethod)
	}
	return nil
}

func (s *Service) RecordPayment(ctx context.Context, p *Payment) error {
	if err := validatePayment(p); err != nil {
		return err
	}
	return s.payments.Create(ctx, p)
}

func (s *Service) UpdatePayment(ctx context.Context, p *Payment) error {
	if err := validatePayment(p); err != nil {
		return err
	}
	return s.payments.Update(ctx, p)
}

func (s *Service) GetPayment(ctx context.Context, id int64) (*Payment, error) {
	return s.payments.GetByID(ctx, id)
}

func (s *Service) DeletePayment(ctx context.Context, id int64) error {
	return s.payments.Delete(ctx, id)
}

func (s *Service) ListPaymentsByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Payment, int, error) {
	return s.payments.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListPaymentsByDateRange(ctx context.Context, startDate, endDate string, limit, offset int) ([]*Payment, int, error) {
	for _, d := range []string{startDate, endDate} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, 0, fmt.Errorf("invalid date %q, want YYYY-MM-DD", d)
		}
	}
	return s.payments.ListByDateRange(ctx, startDate, endDate, limit, offset)
}

// GetBalance sums the patient's treatment costs and payments separately
// and reports the difference. Both sums fall back to zero for a patient
// with no activity.
func (s *Service) GetBalance(ctx context.Context, patientID int64) (*Balance, error) {
	cost, err := s.payments.SumTreatmentCostByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	paid, err := s.payments.SumPaidByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return &Balance{
		TotalCostCents: cost,
		TotalPaidCents: paid,
		BalanceCents:   cost - paid,
	}, nil
}

// PatientBalance satisfies the balance lookup the patient roster needs.
func (s *Service) PatientBalance(ctx context.Context, patientID int64) (int64, int64, error) {
	b, err := s.GetBalance(ctx, patientID)
	if err != nil {
		return 0, 0, err
	}
	return b.TotalCostCents, b.TotalPaidCents, nil
}
