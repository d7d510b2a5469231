package treatment

import "time"

const (
	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Procedure is a catalog entry: a billable dental service with a default
// price in integer cents and an estimated chair time in minutes. Codes
// are unique within the catalog.
type Procedure struct {
	ID               int64     `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Description      *string   `json:"description,omitempty"`
	DefaultCostCents int64     `json:"default_cost_cents"`
	Category         string    `json:"category"`
	DurationMinutes  int       `json:"duration_minutes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Treatment is a procedure performed or planned for a patient. Cost is
// frozen at booking time so later catalog price changes never alter a
// patient's history. Tooth holds an FDI tooth number or a range.
type Treatment struct {
	ID            int64     `json:"id"`
	PatientID     int64     `json:"patient_id"`
	DentistID     int64     `json:"dentist_id"`
	ProcedureID   int64     `json:"procedure_id"`
	AppointmentID *int64    `json:"appointment_id,omitempty"`
	TreatmentDate string    `json:"treatment_date"`
	CostCents     int64     `json:"cost_cents"`
	Tooth         *string   `json:"tooth,omitempty"`
	Status        string    `json:"status"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TreatmentWithProcedure carries the joined procedure name for chart
// views.
type TreatmentWithProcedure struct {
	Treatment
	ProcedureName string `json:"procedure_name"`
}
