package request

import (
	"strings"

	"clinica_xpto/internal/domain/budget"
)

// DraftActionRequest is one edit applied to a draft. Only the fields the
// kind needs are read.
type DraftActionRequest struct {
	Kind    string                `json:"kind" binding:"required,oneof=add_item update_item remove_item set_item_discount add_payment update_payment remove_payment confirm_discount_reset cancel_discount_reset"`
	Index   int                   `json:"index" binding:"min=0"`
	Field   string                `json:"field" binding:"omitempty,oneof=unit_price sessions discount_percent"`
	Value   float64               `json:"value"`
	Item    *BudgetItemRequest    `json:"item"`
	Payment *PaymentMethodRequest `json:"payment"`
}

// DraftEditRequest carries the client's current draft, including a pending
// discount change awaiting confirmation, plus the edit to apply.
type DraftEditRequest struct {
	Items          []BudgetItemRequest    `json:"items" binding:"dive"`
	PaymentMethods []PaymentMethodRequest `json:"payment_methods" binding:"dive"`
	Phase          string                 `json:"phase" binding:"omitempty,oneof=editing confirming_discount_reset edited"`
	Pending        *DraftActionRequest    `json:"pending"`
	Action         DraftActionRequest     `json:"action"`
}

func (r DraftEditRequest) ToDraft() budget.Draft {
	d := budget.Draft{
		Items:          toItems(r.Items),
		PaymentMethods: toPaymentMethods(r.PaymentMethods),
		Phase:          budget.Phase(strings.TrimSpace(r.Phase)),
	}
	if d.Phase == "" {
		d.Phase = budget.PhaseEditing
	}
	if r.Pending != nil {
		a := r.Pending.ToAction()
		d.Pending = &a
	}
	return d
}

func (r DraftActionRequest) ToAction() budget.Action {
	a := budget.Action{
		Kind:  budget.ActionKind(r.Kind),
		Index: r.Index,
		Field: budget.ItemField(r.Field),
		Value: r.Value,
	}
	if r.Item != nil {
		a.Item = toItems([]BudgetItemRequest{*r.Item})[0]
	}
	if r.Payment != nil {
		a.Payment = toPaymentMethods([]PaymentMethodRequest{*r.Payment})[0]
	}
	return a
}
