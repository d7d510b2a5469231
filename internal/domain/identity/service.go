package identity

import (
	"context"
	"fmt"
	"strings"
)

// BalanceProvider reports a patient's lifetime treatment cost and
// payments, in integer cents. Implemented by the billing service.
type BalanceProvider interface {
	PatientBalance(ctx context.Context, patientID int64) (totalCost, totalPaid int64, err error)
}

type Service struct {
	patients PatientRepository
	dentists DentistRepository
	balances BalanceProvider
}

func NewService(patients PatientRepository, dentists DentistRepository, balances BalanceProvider) *Service {
	return &Service{patients: patients, dentists: dentists, balances: balances}
}

// -- Patient --

func (s *Service) validatePatient(p *Patient) error {
	if strings.TrimSpace(p.FirstName) == "" {
		return fmt.Errorf("first_name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("last_name is required")
	}
	if p.DateOfBirth == "" {
		return fmt.Errorf("date_of_birth is required")
	}
	if strings.TrimSpace(p.Gender) == "" {
		return fmt.Errorf("gender is required")
	}
	if p.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	return nil
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if err := s.validatePatient(p); err != nil {
		return err
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

// GetPatientWithBalance folds the patient's financial position into the
// record. Balance is treatment cost minus payments; positive means the
// patient owes the practice.
func (s *Service) GetPatientWithBalance(ctx context.Context, id int64) (*PatientWithBalance, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cost, paid, err := s.balances.PatientBalance(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PatientWithBalance{
		Patient:        *p,
		TotalCostCents: cost,
		TotalPaidCents: paid,
		BalanceCents:   cost - paid,
	}, nil
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if err := s.validatePatient(p); err != nil {
		return err
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) SearchPatients(ctx context.Context, term string, limit, offset int) ([]*Patient, int, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.patients.List(ctx, limit, offset)
	}
	return s.patients.Search(ctx, term, limit, offset)
}

// -- Dentist --

func (s *Service) validateDentist(d *Dentist) error {
	if strings.TrimSpace(d.FirstName) == "" {
		return fmt.Errorf("first_name is required")
	}
	if strings.TrimSpace(d.LastName) == "" {
		return fmt.Errorf("last_name is required")
	}
	if d.Email == "" {
		return fmt.Errorf("email is required")
	}
	if d.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if strings.TrimSpace(d.LicenseNumber) == "" {
		return fmt.Errorf("license_number is required")
	}
	return nil
}

func (s *Service) CreateDentist(ctx context.Context, d *Dentist) error {
	if err := s.validateDentist(d); err != nil {
		return err
	}
	return s.dentists.Create(ctx, d)
}

func (s *Service) GetDentist(ctx context.Context, id int64) (*Dentist, error) {
	return s.dentists.GetByID(ctx, id)
}

func (s *Service) UpdateDentist(ctx context.Context, d *Dentist) error {
	if err := s.validateDentist(d); err != nil {
		return err
	}
	return s.dentists.Update(ctx, d)
}

func (s *Service) DeleteDentist(ctx context.Context, id int64) error {
	return s.dentists.Delete(ctx, id)
}

func (s *Service) ListDentists(ctx context.Context, limit, offset int) ([]*Dentist, int, error) {
	return s.dentists.List(ctx, limit, offset)
}
