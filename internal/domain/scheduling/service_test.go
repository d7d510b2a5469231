package scheduling

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

// -- Mock Repository --

type mockApptRepo struct {
	appts   map[int64]*Appointment
	nextID  int64
	failErr error
}

func newMockApptRepo() *mockApptRepo {
	return &mockApptRepo{appts: make(map[int64]*Appointment), nextID: 1}
}

func (m *mockApptRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = m.nextID
	m.nextID++
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	m.appts[a.ID] = a
	return nil
}

func (m *mockApptRepo) GetByID(_ context.Context, id int64) (*Appointment, error) {
	if m.failErr != nil {
		return nil, m.failErr
	}
	a, ok := m.appts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return a, nil
}

func (m *mockApptRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := m.appts[a.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.appts[a.ID] = a
	return nil
}

func (m *mockApptRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	a, ok := m.appts[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	a.Status = status
	return nil
}

func (m *mockApptRepo) Delete(_ context.Context, id int64) error {
	delete(m.appts, id)
	return nil
}

func (m *mockApptRepo) ListForDay(_ context.Context, dentistID int64, date string) ([]*Appointment, error) {
	var result []*Appointment
	for _, a := range m.appts {
		if a.DentistID == dentistID && a.AppointmentDate == date {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockApptRepo) ListByPatient(_ context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error) {
	var result []*Appointment
	for _, a := range m.appts {
		if a.PatientID == patientID {
			result = append(result, a)
		}
	}
	return result, len(result), nil
}

func (m *mockApptRepo) ListByDentist(_ context.Context, dentistID int64, limit, offset int) ([]*Appointment, int, error) {
	var result []*Appointment
	for _, a := range m.appts {
		if a.DentistID == dentistID {
			result = append(result, a)
		}
	}
	return result, len(result), nil
}

func (m *mockApptRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*AppointmentWithNames, int, error) {
	var result []*AppointmentWithNames
	for _, a := range m.appts {
		if p, ok := params["dentist_id"]; ok && p != strconv.FormatInt(a.DentistID, 10) {
			continue
		}
		if p, ok := params["date"]; ok && p != a.AppointmentDate {
			continue
		}
		result = append(result, &AppointmentWithNames{Appointment: *a})
	}
	return result, len(result), nil
}

func (m *mockApptRepo) WithBookingLock(ctx context.Context, _ int64, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// -- Helpers --

func newTestService() (*Service, *mockApptRepo) {
	repo := newMockApptRepo()
	return NewService(repo), repo
}

func mustBook(t *testing.T, svc *Service, dentistID int64, date, start, end string) *Appointment {
	t.Helper()
	a := &Appointment{PatientID: 1, DentistID: dentistID, AppointmentDate: date, StartTime: start, EndTime: end}
	if err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return a
}

func checkConflict(t *testing.T, svc *Service, dentistID int64, date, start, end string, excludeID *int64) bool {
	t.Helper()
	conflict, err := svc.CheckConflict(context.Background(), dentistID, date, start, end, excludeID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return conflict
}

// -- Conflict detection --

func TestCheckConflict_EmptyCalendar(t *testing.T) {
	svc, _ := newTestService()
	if checkConflict(t, svc, 1, "2026-03-02", "09:00", "09:30", nil) {
		t.Error("expected no conflict on empty calendar")
	}
}

func TestCheckConflict_ExactOverlap(t *testing.T) {
	svc, _ := newTestService()
	mustBook(t, svc, 1, "2026-03-02", "09:00", "09:30")
	if !checkConflict(t, svc, 1, "2026-03-02", "09:00", "09:30", nil) {
		t.Error("expected conflict for identical slot")
	}
}

func TestCheckConflict_PartialOverlap(t *testing.T) {
	svc, _ := newTestService()
	mustBook(t, svc, 1, "2026-03-02", "09:00", "10:00")
	if !checkConflict(t, svc, 1, "2026-03-02", "09:30", "10:30", nil) {
		t.Error("expected conflict for slot overlapping the end")
	}
	if !checkConflict(t, svc, 1, "2026-03-02", "08:30", "09:15", nil) {
		t.Error("expected conflict for slot overlapping the start")
	}
}

func TestCheckConflict_Containment(t *testing.T) {
	svc, _ := newTestService()
	mustBook(t, svc, 1, "2026-03-02", "09:00", "12:00")
	if !checkConflict(t, svc, 1, "2026-03-02", "10:00", "10:30", nil) {
		t.Error("expected conflict for slot inside an existing booking")
	}
	if !checkConflict(t, svc, 1, "2026-03-02", "08:00", "13:00", nil) {
		t.Error("expected conflict for slot containing an existing booking")
	}
}

func TestCheckConflict_BackToBackCollides(t *testing.T) {
	svc, _ := newTestService()
	mustBook(t, svc, 1, "2026-03-02", "09:00", "09:30")
	if !checkConflict(t, svc, 1, "2026-03-02", "09:30", "10:00", nil) {
		t.Error("expected conflict: shared boundary 09:30 counts as overlap")
	}
	if !checkConflict(t, svc, 1, "2026-03-02", "08:30", "09:00", nil) {
		t.Error("expected conflict: shared boundary 09:00 counts as overlap")
	}
}

func TestCheckConflict_DifferentDentist(t *testing.T) {
	svc, _ := newTestService()
	mustBook(t, svc, 1, "2026-03-02", "09:00", "09:30")
	if checkConflict(t, svc, 2, "2026-03-02", "09:00", "09:30", nil) {
		t.Error("expected no conflict for a different dentist")
	}
}

func TestCheckConflict_DifferentDate(t *testing.T) {
	svc, _ := newTestService()
	mustBook(t, svc, 1, "2026-03-02", "09:00", "09:30")
	if checkConflict(t, svc, 1, "2026-03-03", "09:00", "09:30", nil) {
		t.Error("expected no conflict on a different date")
	}
}

func TestCheckConflict_SelfExclusion(t *testing.T) {
	svc, _ := newTestService()
	a := mustBook(t, svc, 1, "2026-03-02", "09:00", "09:30")
	if checkConflict(t, svc, 1, "2026-03-02", "09:00", "09:45", &a.ID) {
		t.Error("expected no conflict when the appointment excludes itself")
	}
	if !checkConflict(t, svc, 1, "2026-03-02", "09:00", "09:45", nil) {
		t.Error("expected conflict without exclusion")
	}
}

func TestCheckConflict_CancelledStillBlocks(t *testing.T) {
	svc, _ := newTestService()
	a := mustBook(t, svc, 1, "2026-03-02", "09:00", "09:30")
	if err := svc.UpdateAppointmentStatus(context.Background(), a.ID, StatusCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !checkConflict(t, svc, 1, "2026-03-02", "09:00", "09:30", nil) {
		t.Error("expected cancelled appointment to still block the slot")
	}
}

func TestCheckConflict_IgnoreInactive(t *testing.T) {
	svc, _ := newTestService()
	svc.SetIgnoreInactive(true)
	a := mustBook(t, svc, 1, "2026-03-02", "09:00", "09:30")
	if err := svc.UpdateAppointmentStatus(context.Background(), a.ID, StatusNoShow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if checkConflict(t, svc, 1, "2026-03-02", "09:00", "09:30", nil) {
		t.Error("expected no-show appointment to free the slot when inactive visits are ignored")
	}
}

func TestCheckConflict_NormalizesTimes(t *testing.T) {
	svc, _ := newTestService()
	mustBook(t, svc, 1, "2026-03-02", "09:00", "09:30")
	if !checkConflict(t, svc, 1, "2026-03-02", "9:15", "9:45", nil) {
		t.Error("expected unpadded times to normalize and conflict")
	}
}

// -- Booking --

func TestCreateAppointment_ConflictRejected(t *testing.T) {
	svc, _ := newTestService()
	mustBook(t, svc, 1, "2026-03-02", "09:00", "10:00")
	a := &Appointment{PatientID: 2, DentistID: 1, AppointmentDate: "2026-03-02", StartTime: "09:30", EndTime: "10:30"}
	if err := svc.CreateAppointment(context.Background(), a); err != ErrSlotConflict {
		t.Fatalf("expected ErrSlotConflict, got %v", err)
	}
}

func TestCreateAppointment_DefaultsStatus(t *testing.T) {
	svc, _ := newTestService()
	a := mustBook(t, svc, 1, "2026-03-02", "09:00", "09:30")
	if a.Status != StatusScheduled {
		t.Errorf("expected status %q, got %q", StatusScheduled, a.Status)
	}
}

func TestCreateAppointment_RejectsInvertedTimes(t *testing.T) {
	svc, _ := newTestService()
	a := &Appointment{PatientID: 1, DentistID: 1, AppointmentDate: "2026-03-02", StartTime: "10:00", EndTime: "09:00"}
	if err := svc.CreateAppointment(context.Background(), a); err == nil {
		t.Fatal("expected error for start after end")
	}
	a = &Appointment{PatientID: 1, DentistID: 1, AppointmentDate: "2026-03-02", StartTime: "09:00", EndTime: "09:00"}
	if err := svc.CreateAppointment(context.Background(), a); err == nil {
		t.Fatal("expected error for zero-length slot")
	}
}

func TestCreateAppointment_RejectsBadInput(t *testing.T) {
	svc, _ := newTestService()
	cases := []struct {
		name string
		a    Appointment
	}{
		{"missing patient", Appointment{DentistID: 1, AppointmentDate: "2026-03-02", StartTime: "09:00", EndTime: "09:30"}},
		{"missing dentist", Appointment{PatientID: 1, AppointmentDate: "2026-03-02", StartTime: "09:00", EndTime: "09:30"}},
		{"bad date", Appointment{PatientID: 1, DentistID: 1, AppointmentDate: "03/02/2026", StartTime: "09:00", EndTime: "09:30"}},
		{"bad time", Appointment{PatientID: 1, DentistID: 1, AppointmentDate: "2026-03-02", StartTime: "25:00", EndTime: "26:00"}},
		{"bad status", Appointment{PatientID: 1, DentistID: 1, AppointmentDate: "2026-03-02", StartTime: "09:00", EndTime: "09:30", Status: "pending"}},
	}
	for _, tc := range cases {
		a := tc.a
		if err := svc.CreateAppointment(context.Background(), &a); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestUpdateAppointment_ReschedulesPastItself(t *testing.T) {
	svc, _ := newTestService()
	a := mustBook(t, svc, 1, "2026-03-02", "09:00", "09:30")
	a.EndTime = "10:00"
	if err := svc.UpdateAppointment(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateAppointment_ConflictWithOther(t *testing.T) {
	svc, _ := newTestService()
	mustBook(t, svc, 1, "2026-03-02", "09:00", "09:30")
	b := mustBook(t, svc, 1, "2026-03-02", "10:00", "10:30")
	b.StartTime = "09:15"
	b.EndTime = "09:45"
	if err := svc.UpdateAppointment(context.Background(), b); err != ErrSlotConflict {
		t.Fatalf("expected ErrSlotConflict, got %v", err)
	}
}

func TestUpdateAppointmentStatus_RejectsUnknown(t *testing.T) {
	svc, _ := newTestService()
	a := mustBook(t, svc, 1, "2026-03-02", "09:00", "09:30")
	if err := svc.UpdateAppointmentStatus(context.Background(), a.ID, "archived"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestGetDentistSchedule_IncludesCancelled(t *testing.T) {
	svc, _ := newTestService()
	a := mustBook(t, svc, 1, "2026-03-02", "09:00", "09:30")
	if err := svc.UpdateAppointmentStatus(context.Background(), a.ID, StatusCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	day, err := svc.GetDentistSchedule(context.Background(), 1, "2026-03-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(day) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(day))
	}
}
