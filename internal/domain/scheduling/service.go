package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// ErrSlotConflict is returned when a booking would overlap an existing
// appointment for the same dentist on the same date.
var ErrSlotConflict = errors.New("time slot conflicts with an existing appointment")

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusCompleted: true,
	StatusCancelled: true, StatusNoShow: true,
}

type Service struct {
	appts AppointmentRepository

	// ignoreInactive drops cancelled and no-show visits from conflict
	// detection. Off by default: a blocked slot stays blocked until the
	// front desk frees it explicitly.
	ignoreInactive bool
}

func NewService(appts AppointmentRepository) *Service {
	return &Service{appts: appts}
}

// SetIgnoreInactive toggles whether cancelled and no-show appointments
// count as conflicts.
func (s *Service) SetIgnoreInactive(v bool) { s.ignoreInactive = v }

func (s *Service) validate(a *Appointment) error {
	if a.PatientID == 0 {
		return fmt.Errorf("patient_id is required")
	}
	if a.DentistID == 0 {
		return fmt.Errorf("dentist_id is required")
	}
	if err := ValidateDate(a.AppointmentDate); err != nil {
		return err
	}
	var err error
	if a.StartTime, err = NormalizeTime(a.StartTime); err != nil {
		return err
	}
	if a.EndTime, err = NormalizeTime(a.EndTime); err != nil {
		return err
	}
	if a.StartTime >= a.EndTime {
		return fmt.Errorf("start_time %s must be before end_time %s", a.StartTime, a.EndTime)
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid appointment status: %s", a.Status)
	}
	return nil
}

// hasConflict scans the dentist's calendar for the date and reports
// whether any appointment overlaps [start, end]. excludeID removes one
// appointment from consideration so a reschedule never collides with
// itself.
func (s *Service) hasConflict(ctx context.Context, dentistID int64, date, start, end string, excludeID *int64) (bool, error) {
	day, err := s.appts.ListForDay(ctx, dentistID, date)
	if err != nil {
		return false, err
	}
	for _, a := range day {
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if s.ignoreInactive && !a.IsActive() {
			continue
		}
		if a.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

// CheckConflict runs the overlap scan for a prospective slot.
func (s *Service) CheckConflict(ctx context.Context, dentistID int64, date, start, end string, excludeID *int64) (bool, error) {
	if dentistID == 0 {
		return false, fmt.Errorf("dentist_id is required")
	}
	if err := ValidateDate(date); err != nil {
		return false, err
	}
	var err error
	if start, err = NormalizeTime(start); err != nil {
		return false, err
	}
	if end, err = NormalizeTime(end); err != nil {
		return false, err
	}
	return s.hasConflict(ctx, dentistID, date, start, end, excludeID)
}

// CreateAppointment validates the booking, re-checks the calendar under
// the booking lock and inserts. Returns ErrSlotConflict when the slot is
// already taken.
func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if err := s.validate(a); err != nil {
		return err
	}
	return s.appts.WithBookingLock(ctx, a.DentistID, a.AppointmentDate, func(ctx context.Context) error {
		conflict, err := s.hasConflict(ctx, a.DentistID, a.AppointmentDate, a.StartTime, a.EndTime, nil)
		if err != nil {
			return err
		}
		if conflict {
			return ErrSlotConflict
		}
		return s.appts.Create(ctx, a)
	})
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*Appointment, error) {
	return s.appts.GetByID(ctx, id)
}

// UpdateAppointment reschedules under the booking lock, excluding the
// appointment's own slot from the conflict scan.
func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) error {
	if err := s.validate(a); err != nil {
		return err
	}
	return s.appts.WithBookingLock(ctx, a.DentistID, a.AppointmentDate, func(ctx context.Context) error {
		conflict, err := s.hasConflict(ctx, a.DentistID, a.AppointmentDate, a.StartTime, a.EndTime, &a.ID)
		if err != nil {
			return err
		}
		if conflict {
			return ErrSlotConflict
		}
		return s.appts.Update(ctx, a)
	})
}

func (s *Service) UpdateAppointmentStatus(ctx context.Context, id int64, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid appointment status: %s", status)
	}
	return s.appts.UpdateStatus(ctx, id, status)
}

func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	return s.appts.Delete(ctx, id)
}

func (s *Service) ListAppointmentsByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error) {
	return s.appts.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListAppointmentsByDentist(ctx context.Context, dentistID int64, limit, offset int) ([]*Appointment, int, error) {
	return s.appts.ListByDentist(ctx, dentistID, limit, offset)
}

// daySheetLimit bounds a single dentist's appointments in one day.
const daySheetLimit = 200

// GetDentistSchedule returns the full day sheet for one dentist with
// patient names attached, cancelled visits included.
func (s *Service) GetDentistSchedule(ctx context.Context, dentistID int64, date string) ([]*AppointmentWithNames, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	params := map[string]string{
		"dentist_id": strconv.FormatInt(dentistID, 10),
		"date":       date,
	}
	items, _, err := s.appts.Search(ctx, params, daySheetLimit, 0)
	return items, err
}

func (s *Service) SearchAppointments(ctx context.Context, params map[string]string, limit, offset int) ([]*AppointmentWithNames, int, error) {
	return s.appts.Search(ctx, params, limit, offset)
}
