package response

import (
	"time"

	"clinica_xpto/internal/domain/budget"
	"clinica_xpto/internal/domain/entities"
	"clinica_xpto/internal/usecase"
)

// BudgetItemResponse mirrors the stored line: discount is the percentage.
type BudgetItemResponse struct {
	ProcedureID    string  `json:"procedure_id,omitempty"`
	UnitPrice      float64 `json:"unit_price"`
	Sessions       int     `json:"sessions"`
	Discount       float64 `json:"discount"`
	DiscountAmount float64 `json:"discount_amount"`
	TotalPrice     float64 `json:"total_price"`
}

type PaymentMethodResponse struct {
	Method           string  `json:"method"`
	Amount           float64 `json:"amount"`
	DiscountPercent  float64 `json:"discount_percent"`
	DiscountAmount   float64 `json:"discount_amount"`
	Installments     int     `json:"installments"`
	CardFeePercent   float64 `json:"card_fee_percent"`
	FeeValue         float64 `json:"fee_value"`
	NetContribution  float64 `json:"net_contribution"`
	InstallmentValue float64 `json:"installment_value"`
}

type BudgetResponse struct {
	ID             string                  `json:"id"`
	ClinicID       string                  `json:"clinic_id"`
	PatientID      string                  `json:"patient_id"`
	Items          []BudgetItemResponse    `json:"items"`
	PaymentMethods []PaymentMethodResponse `json:"payment_methods"`
	Subtotal       float64                 `json:"subtotal"`
	TotalWithFee   float64                 `json:"total_with_fee"`
	Status         string                  `json:"status"`
	ValidUntil     *time.Time              `json:"valid_until,omitempty"`
	Notes          string                  `json:"notes,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

type TotalsResponse struct {
	Subtotal              float64 `json:"subtotal"`
	TotalFees             float64 `json:"total_fees"`
	TotalPaymentDiscounts float64 `json:"total_payment_discounts"`
	GrandTotal            float64 `json:"grand_total"`
	TotalPaid             float64 `json:"total_paid"`
	RemainingBalance      float64 `json:"remaining_balance"`
}

type BudgetCalculationResponse struct {
	Items          []BudgetItemResponse    `json:"items"`
	PaymentMethods []PaymentMethodResponse `json:"payment_methods"`
	Totals         TotalsResponse          `json:"totals"`
}

// FromBudget returns the stored values as-is; per-split display values are
// derived from the stored split fields and rounded to cents.
func FromBudget(b entities.Budget) BudgetResponse {
	res := BudgetResponse{
		ID:             b.ID,
		ClinicID:       b.ClinicID,
		PatientID:      b.PatientID,
		Items:          fromItems(b.Items),
		PaymentMethods: make([]PaymentMethodResponse, 0, len(b.PaymentMethods)),
		Subtotal:       b.Subtotal,
		TotalWithFee:   b.TotalWithFee,
		Status:         string(b.Status),
		ValidUntil:     b.ValidUntil,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
	for _, p := range b.PaymentMethods {
		res.PaymentMethods = append(res.PaymentMethods, fromPaymentMethod(p,
			budget.Round2(budget.FeeValue(p)),
			budget.Round2(budget.NetContribution(p)),
			budget.Round2(budget.InstallmentValue(p))))
	}
	return res
}

func FromBudgets(bs []entities.Budget) []BudgetResponse {
	out := make([]BudgetResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, FromBudget(b))
	}
	return out
}

// FromCalculation rounds every value to cents for display.
func FromCalculation(c usecase.BudgetCalculation) BudgetCalculationResponse {
	res := BudgetCalculationResponse{
		Items:          fromItems(c.Items),
		PaymentMethods: make([]PaymentMethodResponse, 0, len(c.PaymentMethods)),
		Totals: TotalsResponse{
			Subtotal:              budget.Round2(c.Totals.Subtotal),
			TotalFees:             budget.Round2(c.Totals.TotalFees),
			TotalPaymentDiscounts: budget.Round2(c.Totals.TotalPaymentDiscounts),
			GrandTotal:            budget.Round2(c.Totals.GrandTotal),
			TotalPaid:             budget.Round2(c.Totals.TotalPaid),
			RemainingBalance:      budget.Round2(c.Totals.RemainingBalance),
		},
	}
	for i := range res.Items {
		res.Items[i].DiscountAmount = budget.Round2(res.Items[i].DiscountAmount)
		res.Items[i].TotalPrice = budget.Round2(res.Items[i].TotalPrice)
	}
	for _, s := range c.PaymentMethods {
		pm := fromPaymentMethod(s.PaymentMethod, s.FeeValue, s.NetContribution, s.InstallmentValue)
		pm.DiscountAmount = budget.Round2(pm.DiscountAmount)
		pm.FeeValue = budget.Round2(pm.FeeValue)
		pm.NetContribution = budget.Round2(pm.NetContribution)
		pm.InstallmentValue = budget.Round2(pm.InstallmentValue)
		res.PaymentMethods = append(res.PaymentMethods, pm)
	}
	return res
}

func fromItems(items []entities.BudgetItem) []BudgetItemResponse {
	out := make([]BudgetItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, BudgetItemResponse{
			ProcedureID:    it.ProcedureID,
			UnitPrice:      it.UnitPrice,
			Sessions:       it.Sessions,
			Discount:       it.DiscountPercent,
			DiscountAmount: it.DiscountAmount,
			TotalPrice:     it.TotalPrice,
		})
	}
	return out
}

func fromPaymentMethod(p entities.PaymentMethod, fee, net, installment float64) PaymentMethodResponse {
	return PaymentMethodResponse{
		Method:           string(p.Method),
		Amount:           p.Amount,
		DiscountPercent:  p.DiscountPercent,
		DiscountAmount:   p.DiscountAmount,
		Installments:     p.Installments,
		CardFeePercent:   p.CardFeePercent,
		FeeValue:         fee,
		NetContribution:  net,
		InstallmentValue: installment,
	}
}
