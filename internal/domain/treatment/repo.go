package treatment

import "context"

type ProcedureRepository interface {
	Create(ctx context.Context, p *Procedure) error
	GetByID(ctx context.Context, id int64) (*Procedure, error)
	Update(ctx context.Context, p *Procedure) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Procedure, int, error)
	ListByCategory(ctx context.Context, category string, limit, offset int) ([]*Procedure, int, error)
}

type TreatmentRepository interface {
	Create(ctx context.Context, t *Treatment) error
	GetByID(ctx context.Context, id int64) (*Treatment, error)
	Update(ctx context.Context, t *Treatment) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*TreatmentWithProcedure, int, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*TreatmentWithProcedure, int, error)
	ListByAppointment(ctx context.Context, appointmentID int64) ([]*TreatmentWithProcedure, error)
}
