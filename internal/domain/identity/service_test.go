package identity

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

// -- Mock Repositories --

type mockPatientRepo struct {
	patients map[int64]*Patient
	nextID   int64
	failErr  error
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[int64]*Patient), nextID: 1}
}

func (m *mockPatientRepo) Create(_ context.Context, p *Patient) error {
	p.ID = m.nextID
	m.nextID++
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id int64) (*Patient, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	p, ok := m.patients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockPatientRepo) Update(_ context.Context, p *Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) Delete(_ context.Context, id int64) error {
	delete(m.patients, id)
	return nil
}

func (m *mockPatientRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockPatientRepo) Search(_ context.Context, term string, limit, offset int) ([]*Patient, int, error) {
	term = strings.ToLower(term)
	var result []*Patient
	for _, p := range m.patients {
		email := ""
		if p.Email != nil {
			email = *p.Email
		}
		if strings.Contains(strings.ToLower(p.FullName()), term) ||
			strings.Contains(p.Phone, term) ||
			strings.Contains(strings.ToLower(email), term) {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

type mockDentistRepo struct {
	dentists map[int64]*Dentist
	nextID   int64
}

func newMockDentistRepo() *mockDentistRepo {
	return &mockDentistRepo{dentists: make(map[int64]*Dentist), nextID: 1}
}

func (m *mockDentistRepo) Create(_ context.Context, d *Dentist) error {
	d.ID = m.nextID
	m.nextID++
	m.dentists[d.ID] = d
	return nil
}

func (m *mockDentistRepo) GetByID(_ context.Context, id int64) (*Dentist, error) {
	d, ok := m.dentists[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return d, nil
}

func (m *mockDentistRepo) Update(_ context.Context, d *Dentist) error {
	m.dentists[d.ID] = d
	return nil
}

func (m *mockDentistRepo) Delete(_ context.Context, id int64) error {
	delete(m.dentists, id)
	return nil
}

func (m *mockDentistRepo) List(_ context.Context, limit, offset int) ([]*Dentist, int, error) {
	var result []*Dentist
	for _, d := range m.dentists {
		result = append(result, d)
	}
	return result, len(result), nil
}

type mockBalanceProvider struct {
	cost map[int64]int64
	paid map[int64]int64
}

func (m *mockBalanceProvider) PatientBalance(_ context.Context, patientID int64) (int64, int64, error) {
	return m.cost[patientID], m.paid[patientID], nil
}

func newTestService() (*Service, *mockBalanceProvider) {
	balances := &mockBalanceProvider{cost: map[int64]int64{}, paid: map[int64]int64{}}
	return NewService(newMockPatientRepo(), newMockDentistRepo(), balances), balances
}

func strPtr(s string) *string { return &s }

func validPatient() *Patient {
	return &Patient{
		FirstName:   "Sara",
		LastName:    "Haddad",
		DateOfBirth: "1990-04-12",
		Gender:      "female",
		Phone:       "555-0101",
		Email:       strPtr("sara@example.com"),
		Address:     strPtr("12 Cedar St"),
	}
}

// -- Patient --

func TestCreatePatient(t *testing.T) {
	svc, _ := newTestService()
	p := validPatient()
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == 0 {
		t.Error("expected patient ID to be assigned")
	}
}

func TestCreatePatient_RequiredFields(t *testing.T) {
	svc, _ := newTestService()
	for _, mutate := range []func(*Patient){
		func(p *Patient) { p.FirstName = "" },
		func(p *Patient) { p.LastName = " " },
		func(p *Patient) { p.DateOfBirth = "" },
		func(p *Patient) { p.Gender = "" },
		func(p *Patient) { p.Phone = "" },
	} {
		p := validPatient()
		mutate(p)
		if err := svc.CreatePatient(context.Background(), p); err == nil {
			t.Errorf("expected validation error for %+v", p)
		}
	}
}

func TestGetPatientWithBalance(t *testing.T) {
	svc, balances := newTestService()
	p := validPatient()
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	balances.cost[p.ID] = 35000
	balances.paid[p.ID] = 15000

	got, err := svc.GetPatientWithBalance(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalCostCents != 35000 || got.TotalPaidCents != 15000 {
		t.Errorf("unexpected totals: cost=%d paid=%d", got.TotalCostCents, got.TotalPaidCents)
	}
	if got.BalanceCents != 20000 {
		t.Errorf("expected balance 20000, got %d", got.BalanceCents)
	}
}

func TestGetPatientWithBalance_NoActivity(t *testing.T) {
	svc, _ := newTestService()
	p := validPatient()
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := svc.GetPatientWithBalance(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BalanceCents != 0 {
		t.Errorf("expected zero balance, got %d", got.BalanceCents)
	}
}

func TestSearchPatients(t *testing.T) {
	svc, _ := newTestService()
	p := validPatient()
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, total, err := svc.SearchPatients(context.Background(), "sara", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected 1 match, got %d", total)
	}
	items, _, err = svc.SearchPatients(context.Background(), "nomatch", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no matches, got %d", len(items))
	}
}

// -- Dentist --

func TestCreateDentist(t *testing.T) {
	svc, _ := newTestService()
	d := &Dentist{FirstName: "Omar", LastName: "Khalil", Email: "omar@example.com", Phone: "555-0102", LicenseNumber: "DL-4821"}
	if err := svc.CreateDentist(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID == 0 {
		t.Error("expected dentist ID to be assigned")
	}
}

func TestCreateDentist_RequiredFields(t *testing.T) {
	svc, _ := newTestService()
	d := &Dentist{FirstName: "Omar", LastName: "Khalil"}
	if err := svc.CreateDentist(context.Background(), d); err == nil {
		t.Fatal("expected validation error for missing contact details")
	}
}
