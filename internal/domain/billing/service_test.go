package billing

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// -- Mock Repository --

type mockPaymentRepo struct {
	payments map[int64]*Payment
	// treatmentCost is the per-patient sum the treatments table would
	// produce.
	treatmentCost map[int64]int64
	nextID        int64
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{
		payments:      make(map[int64]*Payment),
		treatmentCost: make(map[int64]int64),
		nextID:        1,
	}
}

func (m *mockPaymentRepo) Create(_ context.Context, p *Payment) error {
	p.ID = m.nextID
	m.nextID++
	p.CreatedAt = time.Now()
	m.payments[p.ID] = p
	return nil
}

func (m *mockPaymentRepo) GetByID(_ context.Context, id int64) (*Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockPaymentRepo) Delete(_ context.Context, id int64) error {
	delete(m.payments, id)
	return nil
}

func (m *mockPaymentRepo) ListByPatient(_ context.Context, patientID int64, limit, offset int) ([]*Payment, int, error) {
	var result []*Payment
	for _, p := range m.payments {
		if p.PatientID == patientID {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

func (m *mockPaymentRepo) Update(_ context.Context, p *Payment) error {
	if _, ok := m.payments[p.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.payments[p.ID] = p
	return nil
}

func (m *mockPaymentRepo) ListByDateRange(_ context.Context, startDate, endDate string, limit, offset int) ([]*Payment, int, error) {
	var result []*Payment
	for _, p := range m.payments {
		if p.PaymentDate >= startDate && p.PaymentDate <= endDate {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

func (m *mockPaymentRepo) SumPaidByPatient(_ context.Context, patientID int64) (int64, error) {
	var total int64
	for _, p := range m.payments {
		if p.PatientID == patientID {
			total += p.AmountCents
		}
	}
	return total, nil
}

func (m *mockPaymentRepo) SumTreatmentCostByPatient(_ context.Context, patientID int64) (int64, error) {
	return m.treatmentCost[patientID], nil
}

func newTestService() (*Service, *mockPaymentRepo) {
	repo := newMockPaymentRepo()
	return NewService(repo), repo
}

func pay(t *testing.T, svc *Service, patientID, cents int64) {
	t.Helper()
	p := &Payment{PatientID: patientID, AmountCents: cents, PaymentDate: "2026-03-02", PaymentMethod: MethodCash}
	if err := svc.RecordPayment(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// -- Balance --

func TestGetBalance(t *testing.T) {
	svc, repo := newTestService()
	// Two treatments at $100 and $250, one $150 payment.
	repo.treatmentCost[1] = 10000 + 25000
	pay(t, svc, 1, 15000)

	b, err := svc.GetBalance(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.TotalCostCents != 35000 {
		t.Errorf("expected total cost 35000, got %d", b.TotalCostCents)
	}
	if b.TotalPaidCents != 15000 {
		t.Errorf("expected total paid 15000, got %d", b.TotalPaidCents)
	}
	if b.BalanceCents != 20000 {
		t.Errorf("expected balance 20000, got %d", b.BalanceCents)
	}
}

func TestGetBalance_NoActivity(t *testing.T) {
	svc, _ := newTestService()
	b, err := svc.GetBalance(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.TotalCostCents != 0 || b.TotalPaidCents != 0 || b.BalanceCents != 0 {
		t.Errorf("expected all zeros, got %+v", b)
	}
}

func TestGetBalance_Overpaid(t *testing.T) {
	svc, repo := newTestService()
	repo.treatmentCost[1] = 10000
	pay(t, svc, 1, 12000)

	b, err := svc.GetBalance(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.BalanceCents != -2000 {
		t.Errorf("expected credit balance -2000, got %d", b.BalanceCents)
	}
}

func TestGetBalance_IsolatedPerPatient(t *testing.T) {
	svc, repo := newTestService()
	repo.treatmentCost[1] = 10000
	pay(t, svc, 2, 5000)

	b, err := svc.GetBalance(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.TotalPaidCents != 0 {
		t.Errorf("expected another patient's payments ignored, got %d", b.TotalPaidCents)
	}
	if b.BalanceCents != 10000 {
		t.Errorf("expected balance 10000, got %d", b.BalanceCents)
	}
}

func TestPatientBalance(t *testing.T) {
	svc, repo := newTestService()
	repo.treatmentCost[1] = 30000
	pay(t, svc, 1, 10000)

	cost, paid, err := svc.PatientBalance(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost != 30000 || paid != 10000 {
		t.Errorf("unexpected totals: cost=%d paid=%d", cost, paid)
	}
}

// -- Payments --

func TestRecordPayment_DefaultsMethod(t *testing.T) {
	svc, _ := newTestService()
	p := &Payment{PatientID: 1, AmountCents: 5000, PaymentDate: "2026-03-02"}
	if err := svc.RecordPayment(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.PaymentMethod != MethodCash {
		t.Errorf("expected default method %q, got %q", MethodCash, p.PaymentMethod)
	}
}

func TestListPaymentsByDateRange(t *testing.T) {
	svc, _ := newTestService()
	for _, date := range []string{"2026-03-02", "2026-03-15", "2026-04-01"} {
		p := &Payment{PatientID: 1, AmountCents: 5000, PaymentDate: date}
		if err := svc.RecordPayment(context.Background(), p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	items, total, err := svc.ListPaymentsByDateRange(context.Background(), "2026-03-01", "2026-03-31", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("expected 2 payments in March, got %d", len(items))
	}
	if _, _, err := svc.ListPaymentsByDateRange(context.Background(), "March 1", "2026-03-31", 20, 0); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestRecordPayment_RejectsBadInput(t *testing.T) {
	svc, _ := newTestService()
	cases := []struct {
		name string
		p    Payment
	}{
		{"missing patient", Payment{AmountCents: 5000, PaymentDate: "2026-03-02"}},
		{"zero amount", Payment{PatientID: 1, AmountCents: 0, PaymentDate: "2026-03-02"}},
		{"negative amount", Payment{PatientID: 1, AmountCents: -100, PaymentDate: "2026-03-02"}},
		{"bad date", Payment{PatientID: 1, AmountCents: 5000, PaymentDate: "03/02/2026"}},
		{"bad method", Payment{PatientID: 1, AmountCents: 5000, PaymentDate: "2026-03-02", PaymentMethod: "barter"}},
	}
	for _, tc := range cases {
		p := tc.p
		if err := svc.RecordPayment(context.Background(), &p); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
