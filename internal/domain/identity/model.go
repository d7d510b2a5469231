package identity

import "time"

// Patient is a person on the practice roster. Money amounts elsewhere in
// the system reference patients by ID; the record itself carries only
// demographics and clinical notes.
type Patient struct {
	ID                int64     `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	DateOfBirth       string    `json:"date_of_birth"`
	Gender            string    `json:"gender"`
	Phone             string    `json:"phone"`
	Email             *string   `json:"email,omitempty"`
	Address           *string   `json:"address,omitempty"`
	InsuranceProvider *string   `json:"insurance_provider,omitempty"`
	InsuranceNumber   *string   `json:"insurance_number,omitempty"`
	MedicalHistory    *string   `json:"medical_history,omitempty"`
	Allergies         *string   `json:"allergies,omitempty"`
	Notes             *string   `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (p *Patient) FullName() string { return p.FirstName + " " + p.LastName }

// Dentist is a practitioner who can hold appointments.
type Dentist struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Specialization *string   `json:"specialization,omitempty"`
	LicenseNumber  string    `json:"license_number"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (d *Dentist) FullName() string { return d.FirstName + " " + d.LastName }

// PatientWithBalance pairs a patient with their financial position.
// Amounts are integer cents.
type PatientWithBalance struct {
	Patient
	TotalCostCents int64 `json:"total_cost_cents"`
	TotalPaidCents int64 `json:"total_paid_cents"`
	BalanceCents   int64 `json:"balance_cents"`
}
