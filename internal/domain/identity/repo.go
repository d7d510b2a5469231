package identity

import "context"

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	// Search matches a case-insensitive term against name, phone and
	// email.
	Search(ctx context.Context, term string, limit, offset int) ([]*Patient, int, error)
}

type DentistRepository interface {
	Create(ctx context.Context, d *Dentist) error
	GetByID(ctx context.Context, id int64) (*Dentist, error)
	Update(ctx context.Context, d *Dentist) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Dentist, int, error)
}
