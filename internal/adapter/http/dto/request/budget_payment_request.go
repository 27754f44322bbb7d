package request

import "encoding/json"

// BudgetPaymentChargeRequest charges one split of an approved budget.
//
// `provider_payload` is forwarded to Mercado Pago after the amount, method
// and reference are filled from the stored budget. Card splits must carry
// `token` and `payment_method_id`.

type BudgetPaymentChargeRequest struct {
	ProviderPayload json.RawMessage `json:"provider_payload"`
}
