package request

import (
	"errors"
	"strings"
	"time"

	"clinica_xpto/internal/domain/entities"
)

var (
	ErrInvalidValidUntil = errors.New("invalid valid_until")
)

// BudgetItemRequest is one procedure line. `discount` is the percentage
// applied to unit_price * sessions; out-of-range values are clamped by the
// calculator, not rejected.
type BudgetItemRequest struct {
	ProcedureID string  `json:"procedure_id"`
	UnitPrice   float64 `json:"unit_price"`
	Sessions    int     `json:"sessions"`
	Discount    float64 `json:"discount"`
}

type PaymentMethodRequest struct {
	Method          string  `json:"method" binding:"required,payment_method"`
	Amount          float64 `json:"amount"`
	DiscountPercent float64 `json:"discount_percent"`
	Installments    int     `json:"installments"`
	CardFeePercent  float64 `json:"card_fee_percent"`
}

// CalculateRequest is the preview payload sent on every edit.
type CalculateRequest struct {
	Items          []BudgetItemRequest    `json:"items" binding:"dive"`
	PaymentMethods []PaymentMethodRequest `json:"payment_methods" binding:"dive"`
}

// BudgetRequest creates or replaces a budget. Required ids are checked by the
// use case so every missing field is reported at once.
type BudgetRequest struct {
	ClinicID       string                 `json:"clinic_id"`
	PatientID      string                 `json:"patient_id"`
	Items          []BudgetItemRequest    `json:"items" binding:"dive"`
	PaymentMethods []PaymentMethodRequest `json:"payment_methods" binding:"dive"`
	ValidUntil     string                 `json:"valid_until"`
	Notes          string                 `json:"notes"`
}

func (r CalculateRequest) ToItems() []entities.BudgetItem {
	return toItems(r.Items)
}

func (r CalculateRequest) ToPaymentMethods() []entities.PaymentMethod {
	return toPaymentMethods(r.PaymentMethods)
}

func (r BudgetRequest) ToItems() []entities.BudgetItem {
	return toItems(r.Items)
}

func (r BudgetRequest) ToPaymentMethods() []entities.PaymentMethod {
	return toPaymentMethods(r.PaymentMethods)
}

// ResolveValidUntil accepts a date (2006-01-02, end of day UTC) or an RFC3339
// timestamp. Empty means no expiry.
func (r BudgetRequest) ResolveValidUntil() (*time.Time, error) {
	raw := strings.TrimSpace(r.ValidUntil)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	d, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, ErrInvalidValidUntil
	}
	t := d.Add(24*time.Hour - time.Second).UTC()
	return &t, nil
}

func toItems(in []BudgetItemRequest) []entities.BudgetItem {
	out := make([]entities.BudgetItem, 0, len(in))
	for _, it := range in {
		out = append(out, entities.BudgetItem{
			ProcedureID:     strings.TrimSpace(it.ProcedureID),
			UnitPrice:       it.UnitPrice,
			Sessions:        it.Sessions,
			DiscountPercent: it.Discount,
		})
	}
	return out
}

func toPaymentMethods(in []PaymentMethodRequest) []entities.PaymentMethod {
	out := make([]entities.PaymentMethod, 0, len(in))
	for _, p := range in {
		out = append(out, entities.PaymentMethod{
			Method:          entities.PaymentMethodType(strings.ToLower(strings.TrimSpace(p.Method))),
			Amount:          p.Amount,
			DiscountPercent: p.DiscountPercent,
			Installments:    p.Installments,
			CardFeePercent:  p.CardFeePercent,
		})
	}
	return out
}
