package scheduling

import (
	"fmt"
	"regexp"
	"time"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

// Appointment is a booked block of chair time for one patient with one
// dentist. Dates are YYYY-MM-DD and times are zero-padded HH:MM strings,
// so string comparison matches clock order.
type Appointment struct {
	ID              int64     `json:"id"`
	PatientID       int64     `json:"patient_id"`
	DentistID       int64     `json:"dentist_id"`
	AppointmentDate string    `json:"appointment_date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	Status          string    `json:"status"`
	Type            *string   `json:"type,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AppointmentWithNames carries the joined patient and dentist display
// names for list views.
type AppointmentWithNames struct {
	Appointment
	PatientName string `json:"patient_name"`
	DentistName string `json:"dentist_name"`
}

// Overlaps reports whether the appointment shares any moment with the
// interval [start, end]. Boundaries count: a visit ending 09:30 collides
// with one starting 09:30.
func (a *Appointment) Overlaps(start, end string) bool {
	return (a.StartTime <= start && a.EndTime >= start) ||
		(a.StartTime <= end && a.EndTime >= end) ||
		(a.StartTime >= start && a.EndTime <= end)
}

// IsActive reports whether the appointment still occupies chair time.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

var (
	dateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRE = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// ValidateDate checks for the YYYY-MM-DD calendar form.
func ValidateDate(d string) error {
	if !dateRE.MatchString(d) {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", d)
	}
	if _, err := time.Parse("2006-01-02", d); err != nil {
		return fmt.Errorf("invalid date %q: %v", d, err)
	}
	return nil
}

// NormalizeTime zero-pads a clock value to HH:MM. "9:30" becomes "09:30".
func NormalizeTime(t string) (string, error) {
	if len(t) == 4 && t[1] == ':' {
		t = "0" + t
	}
	if !timeRE.MatchString(t) {
		return "", fmt.Errorf("invalid time %q, want HH:MM", t)
	}
	return t, nil
}
