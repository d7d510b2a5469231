package treatment

import (
	"context"
	"fmt"
	"strings"
	"time"
)

var validStatuses = map[string]bool{
	StatusPlanned: true, StatusInProgress: true, StatusCompleted: true,
}

type Service struct {
	procedures ProcedureRepository
	treatments TreatmentRepository
}

func NewService(procedures ProcedureRepository, treatments TreatmentRepository) *Service {
	return &Service{procedures: procedures, treatments: treatments}
}

// -- Procedure --

func validateProcedure(p *Procedure) error {
	if strings.TrimSpace(p.Code) == "" {
		return fmt.Errorf("code is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if p.DefaultCostCents < 0 {
		return fmt.Errorf("default_cost_cents must not be negative")
	}
	if p.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	return nil
}

func (s *Service) CreateProcedure(ctx context.Context, p *Procedure) error {
	if err := validateProcedure(p); err != nil {
		return err
	}
	return s.procedures.Create(ctx, p)
}

func (s *Service) GetProcedure(ctx context.Context, id int64) (*Procedure, error) {
	return s.procedures.GetByID(ctx, id)
}

func (s *Service) UpdateProcedure(ctx context.Context, p *Procedure) error {
	if err := validateProcedure(p); err != nil {
		return err
	}
	return s.procedures.Update(ctx, p)
}

func (s *Service) DeleteProcedure(ctx context.Context, id int64) error {
	return s.procedures.Delete(ctx, id)
}

func (s *Service) ListProcedures(ctx context.Context, category string, limit, offset int) ([]*Procedure, int, error) {
	if category != "" {
		return s.procedures.ListByCategory(ctx, category, limit, offset)
	}
	return s.procedures.List(ctx, limit, offset)
}

// -- Treatment --

func validDate(d string) error {
	if _, err := time.Parse("2006-01-02", d); err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", d)
	}
	return nil
}

func (s *Service) validateTreatment(ctx context.Context, t *Treatment) error {
	if t.PatientID == 0 {
		return fmt.Errorf("patient_id is required")
	}
	if t.DentistID == 0 {
		return fmt.Errorf("dentist_id is required")
	}
	if t.ProcedureID == 0 {
		return fmt.Errorf("procedure_id is required")
	}
	if t.CostCents < 0 {
		return fmt.Errorf("cost_cents must not be negative")
	}
	if t.TreatmentDate == "" {
		return fmt.Errorf("treatment_date is required")
	}
	if err := validDate(t.TreatmentDate); err != nil {
		return err
	}
	if t.Status == "" {
		t.Status = StatusPlanned
	}
	if !validStatuses[t.Status] {
		return fmt.Errorf("invalid treatment status: %s", t.Status)
	}
	return nil
}

// PlanTreatment adds a chart entry. When no cost is given the
// procedure's catalog price is copied in, so the charge survives later
// price changes.
func (s *Service) PlanTreatment(ctx context.Context, t *Treatment) error {
	if err := s.validateTreatment(ctx, t); err != nil {
		return err
	}
	if t.CostCents == 0 {
		p, err := s.procedures.GetByID(ctx, t.ProcedureID)
		if err != nil {
			return fmt.Errorf("procedure %d not found", t.ProcedureID)
		}
		t.CostCents = p.DefaultCostCents
	}
	return s.treatments.Create(ctx, t)
}

func (s *Service) GetTreatment(ctx context.Context, id int64) (*Treatment, error) {
	return s.treatments.GetByID(ctx, id)
}

func (s *Service) UpdateTreatment(ctx context.Context, t *Treatment) error {
	if err := s.validateTreatment(ctx, t); err != nil {
		return err
	}
	return s.treatments.Update(ctx, t)
}

func (s *Service) UpdateTreatmentStatus(ctx context.Context, id int64, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid treatment status: %s", status)
	}
	return s.treatments.UpdateStatus(ctx, id, status)
}

func (s *Service) DeleteTreatment(ctx context.Context, id int64) error {
	return s.treatments.Delete(ctx, id)
}

func (s *Service) ListTreatmentsByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*TreatmentWithProcedure, int, error) {
	return s.treatments.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListTreatmentsByStatus(ctx context.Context, status string, limit, offset int) ([]*TreatmentWithProcedure, int, error) {
	if !validStatuses[status] {
		return nil, 0, fmt.Errorf("invalid treatment status: %s", status)
	}
	return s.treatments.ListByStatus(ctx, status, limit, offset)
}

func (s *Service) ListTreatmentsByAppointment(ctx context.Context, appointmentID int64) ([]*TreatmentWithProcedure, error) {
	return s.treatments.ListByAppointment(ctx, appointmentID)
}
