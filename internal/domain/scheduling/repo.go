package scheduling

import "context"

// AppointmentRepository is the storage contract for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error

	// ListForDay returns every appointment booked for the dentist on the
	// given date, regardless of status.
	ListForDay(ctx context.Context, dentistID int64, date string) ([]*Appointment, error)

	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error)
	ListByDentist(ctx context.Context, dentistID int64, limit, offset int) ([]*Appointment, int, error)
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*AppointmentWithNames, int, error)

	// WithBookingLock runs fn while holding the booking lock for the
	// dentist's day, so a conflict check and the insert it guards see a
	// stable calendar. Implementations without transactional storage may
	// run fn directly.
	WithBookingLock(ctx context.Context, dentistID int64, date string, fn func(ctx context.Context) error) error
}
