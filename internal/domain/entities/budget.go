package entities

import "time"

// BudgetStatus represents the lifecycle of a budget (orçamento).
//
// Transitions:
//   - draft -> sent -> approved
//   - draft -> approved (approved at the chair, never sent)
//   - draft|sent|approved -> cancelled

type BudgetStatus string

const (
	BudgetStatusDraft     BudgetStatus = "draft"
	BudgetStatusSent      BudgetStatus = "sent"
	BudgetStatusApproved  BudgetStatus = "approved"
	BudgetStatusCancelled BudgetStatus = "cancelled"
)

// CanTransitionTo reports whether the status machine allows moving to next.
func (s BudgetStatus) CanTransitionTo(next BudgetStatus) bool {
	switch next {
	case BudgetStatusSent:
		return s == BudgetStatusDraft
	case BudgetStatusApproved:
		return s == BudgetStatusDraft || s == BudgetStatusSent
	case BudgetStatusCancelled:
		return s != BudgetStatusCancelled
	default:
		return false
	}
}

// Editable reports whether items and payment splits can still change.
func (s BudgetStatus) Editable() bool {
	return s == BudgetStatusDraft || s == BudgetStatusSent
}

type PaymentMethodType string

const (
	PaymentMethodPix        PaymentMethodType = "pix"
	PaymentMethodCreditCard PaymentMethodType = "credit_card"
	PaymentMethodBoleto     PaymentMethodType = "boleto"
	PaymentMethodCash       PaymentMethodType = "cash"
)

func (m PaymentMethodType) Valid() bool {
	switch m {
	case PaymentMethodPix, PaymentMethodCreditCard, PaymentMethodBoleto, PaymentMethodCash:
		return true
	}
	return false
}

// BudgetItem is one procedure line of a budget.
//
// DiscountAmount and TotalPrice are derived from UnitPrice, Sessions and
// DiscountPercent; see package budget.
type BudgetItem struct {
	ProcedureID     string  `json:"procedure_id,omitempty"`
	UnitPrice       float64 `json:"unit_price"`
	Sessions        int     `json:"sessions"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountAmount  float64 `json:"discount_amount"`
	TotalPrice      float64 `json:"total_price"`
}

// PaymentMethod is one split of how the budget total is collected.
//
// Installments and CardFeePercent only apply to credit_card.
type PaymentMethod struct {
	Method          PaymentMethodType `json:"method"`
	Amount          float64           `json:"amount"`
	DiscountPercent float64           `json:"discount_percent"`
	DiscountAmount  float64           `json:"discount_amount"`
	Installments    int               `json:"installments"`
	CardFeePercent  float64           `json:"card_fee_percent"`
}

// Budget is the quotation persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (patient_id-index): patient_id
//
// Subtotal and TotalWithFee are stored as computed at save time and are
// authoritative on read; nothing is re-derived from the read path.
type Budget struct {
	ID             string          `json:"id"`
	ClinicID       string          `json:"clinic_id"`
	PatientID      string          `json:"patient_id"`
	Items          []BudgetItem    `json:"items"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
	Subtotal       float64         `json:"subtotal"`
	TotalWithFee   float64         `json:"total_with_fee"`
	Status         BudgetStatus    `json:"status"`
	ValidUntil     *time.Time      `json:"valid_until,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
