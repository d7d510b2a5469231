package billing

import "time"

const (
	MethodCash      = "cash"
	MethodCard      = "card"
	MethodCheck     = "check"
	MethodInsurance = "insurance"
	MethodOther     = "other"
)

// Payment is money received against a patient's account. Amounts are
// integer cents. RelatedTreatmentIDs is a comma-separated list of the
// treatments the payment settles, kept as free text the way front
// desks record split payments.
type Payment struct {
	ID                  int64     `json:"id"`
	PatientID           int64     `json:"patient_id"`
	AmountCents         int64     `json:"amount_cents"`
	PaymentDate         string    `json:"payment_date"`
	PaymentMethod       string    `json:"payment_method"`
	RelatedTreatmentIDs *string   `json:"related_treatment_ids,omitempty"`
	Notes               *string   `json:"notes,omitempty"`
	ReceiptNumber       *string   `json:"receipt_number,omitempty"`
	InsuranceClaim      *string   `json:"insurance_claim,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Balance is a patient's financial position: lifetime treatment cost
// against lifetime payments. Positive balance means the patient owes.
type Balance struct {
	TotalCostCents int64 `json:"total_cost_cents"`
	TotalPaidCents int64 `json:"total_paid_cents"`
	BalanceCents   int64 `json:"balance_cents"`
}
