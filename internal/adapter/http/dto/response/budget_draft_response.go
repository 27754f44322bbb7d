package response

import (
	"clinica_xpto/internal/usecase"
)

// DraftActionResponse is the discount change parked until the user confirms
// that existing payment splits will be cleared.
type DraftActionResponse struct {
	Kind  string  `json:"kind"`
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// DraftEditResponse is the draft after an edit. Clients send phase, pending,
// items and payment_methods back with the next edit.
type DraftEditResponse struct {
	Phase   string               `json:"phase"`
	Pending *DraftActionResponse `json:"pending,omitempty"`
	BudgetCalculationResponse
}

func FromDraftEdit(e usecase.BudgetDraftEdit) DraftEditResponse {
	res := DraftEditResponse{
		Phase:                     string(e.Draft.Phase),
		BudgetCalculationResponse: FromCalculation(e.Calculation),
	}
	if p := e.Draft.Pending; p != nil {
		res.Pending = &DraftActionResponse{Kind: string(p.Kind), Index: p.Index, Value: p.Value}
	}
	return res
}
