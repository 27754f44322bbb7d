// Package budget derives every monetary field of a budget from its raw item
// and payment-split inputs. All functions are pure: they take values and
// return freshly derived values.
//
// Currency math is float64. Rounding to 2 decimals happens only for display
// and persistence (Round2); reconciliation uses an absolute tolerance.
package budget

import (
	"math"

	"clinica_xpto/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// PaymentTolerance is the absolute currency-unit tolerance between the
// payment splits and the grand total accepted at save time.
const PaymentTolerance = 0.05

// ItemField names an editable field of a budget line.
type ItemField string

const (
	FieldUnitPrice       ItemField = "unit_price"
	FieldSessions        ItemField = "sessions"
	FieldDiscountPercent ItemField = "discount_percent"
)

// Totals are the aggregates shown under a budget.
type Totals struct {
	Subtotal              float64 `json:"subtotal"`
	TotalFees             float64 `json:"total_fees"`
	TotalPaymentDiscounts float64 `json:"total_payment_discounts"`
	GrandTotal            float64 `json:"grand_total"`
	TotalPaid             float64 `json:"total_paid"`
	RemainingBalance      float64 `json:"remaining_balance"`
}

// RecomputeItem applies an edit to one field and re-derives the line.
//
// The discount percentage is held fixed: a new price or quantity re-applies
// the existing percentage to the new base. Unknown fields leave the inputs
// unchanged but still re-derive.
func RecomputeItem(item entities.BudgetItem, field ItemField, value float64) entities.BudgetItem {
	switch field {
	case FieldUnitPrice:
		item.UnitPrice = value
	case FieldSessions:
		item.Sessions = int(value)
	case FieldDiscountPercent:
		item.DiscountPercent = value
	}
	return deriveItem(item)
}

// ApplyItemDiscount sets the discount percentage off the current
// unit price times sessions.
func ApplyItemDiscount(item entities.BudgetItem, percent float64) entities.BudgetItem {
	item.DiscountPercent = percent
	return deriveItem(item)
}

// NormalizeItem clamps the inputs of a line and derives its amounts.
func NormalizeItem(item entities.BudgetItem) entities.BudgetItem {
	return deriveItem(item)
}

func deriveItem(item entities.BudgetItem) entities.BudgetItem {
	item.UnitPrice = math.Max(0, item.UnitPrice)
	if item.Sessions < 1 {
		item.Sessions = 1
	}
	item.DiscountPercent = clampPercent(item.DiscountPercent)

	base := item.UnitPrice * float64(item.Sessions)
	item.DiscountAmount = base * (item.DiscountPercent / 100)
	item.TotalPrice = math.Max(0, base-item.DiscountAmount)
	return item
}

// NormalizePaymentMethod clamps a split and derives its discount amount.
// Only credit_card keeps installments and a card fee.
func NormalizePaymentMethod(p entities.PaymentMethod) entities.PaymentMethod {
	p.Amount = math.Max(0, p.Amount)
	p.DiscountPercent = clampPercent(p.DiscountPercent)
	p.DiscountAmount = p.Amount * (p.DiscountPercent / 100)
	if p.Method == entities.PaymentMethodCreditCard {
		if p.Installments < 1 {
			p.Installments = 1
		}
		p.CardFeePercent = math.Max(0, p.CardFeePercent)
	} else {
		p.Installments = 1
		p.CardFeePercent = 0
	}
	return p
}

// FeeValue is the card surcharge of a split, computed on the amount net of
// the split discount. Non-card splits carry no fee.
func FeeValue(p entities.PaymentMethod) float64 {
	if p.Method != entities.PaymentMethodCreditCard {
		return 0
	}
	return math.Max(0, p.Amount-p.DiscountAmount) * (p.CardFeePercent / 100)
}

// NetContribution is how much a split reduces the debt: gross amount plus
// fee, minus the split discount.
func NetContribution(p entities.PaymentMethod) float64 {
	return p.Amount - p.DiscountAmount + FeeValue(p)
}

// InstallmentValue is the value of each installment of a split.
func InstallmentValue(p entities.PaymentMethod) float64 {
	n := p.Installments
	if n < 1 {
		n = 1
	}
	return NetContribution(p) / float64(n)
}

// ComputeTotals derives the aggregates from raw items and splits. Every line
// is re-derived first, so stale DiscountAmount/TotalPrice values on the
// inputs are ignored.
func ComputeTotals(items []entities.BudgetItem, payments []entities.PaymentMethod) Totals {
	var t Totals
	for _, it := range items {
		t.Subtotal += deriveItem(it).TotalPrice
	}
	for _, p := range payments {
		p = NormalizePaymentMethod(p)
		t.TotalFees += FeeValue(p)
		t.TotalPaymentDiscounts += p.DiscountAmount
		t.TotalPaid += NetContribution(p)
	}
	t.GrandTotal = t.Subtotal + t.TotalFees - t.TotalPaymentDiscounts
	t.RemainingBalance = math.Max(0, t.GrandTotal-t.TotalPaid)
	return t
}

// ValidateForSave checks the save-time invariants: at least one item and,
// when splits exist, payments reconciling to the grand total within
// PaymentTolerance.
func ValidateForSave(items []entities.BudgetItem, payments []entities.PaymentMethod) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	if len(payments) == 0 {
		return nil
	}
	t := ComputeTotals(items, payments)
	if math.Abs(t.TotalPaid-t.GrandTotal) > PaymentTolerance {
		return &PaymentMismatchError{Expected: t.GrandTotal, Actual: t.TotalPaid}
	}
	return nil
}

// Round2 rounds a currency amount to 2 decimals, half away from zero.
// Negative zero comes back as 0.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	if f == 0 {
		return 0
	}
	return f
}

func clampPercent(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
