package response

import (
	"time"

	"clinica_xpto/internal/domain/entities"
)

type BudgetPaymentResponse struct {
	ID           string    `json:"id"`
	BudgetID     string    `json:"budget_id"`
	SplitIndex   int       `json:"split_index"`
	Method       string    `json:"method"`
	Amount       float64   `json:"amount"`
	Installments int       `json:"installments"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`

	ProviderPayloadRaw string                 `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}

func FromBudgetPayment(p entities.BudgetPayment) BudgetPaymentResponse {
	return BudgetPaymentResponse{
		ID:                 p.ID,
		BudgetID:           p.BudgetID,
		SplitIndex:         p.SplitIndex,
		Method:             string(p.Method),
		Amount:             p.Amount,
		Installments:       p.Installments,
		Date:               p.Date,
		Status:             string(p.Status),
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
		ProviderPayload:    p.ProviderPayload,
	}
}

func FromBudgetPayments(ps []entities.BudgetPayment) []BudgetPaymentResponse {
	out := make([]BudgetPaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromBudgetPayment(p))
	}
	return out
}
