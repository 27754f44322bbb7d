package entities

import (
	"encoding/json"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// BudgetPayment records the collection of one payment split of a budget.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (budget_id-index): budget_id
//
// ProviderPayloadRaw keeps the provider response body for audit. Cash splits
// are recorded without a provider call and carry no payload.
type BudgetPayment struct {
	ID           string            `json:"id"`
	BudgetID     string            `json:"budget_id"`
	SplitIndex   int               `json:"split_index"`
	Method       PaymentMethodType `json:"method"`
	Amount       float64           `json:"amount"`
	Installments int               `json:"installments"`
	Date         time.Time         `json:"date"`
	Status       PaymentStatus     `json:"status"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}
