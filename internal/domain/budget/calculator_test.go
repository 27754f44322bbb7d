package budget

import (
	"errors"
	"math"
	"testing"

	"clinica_xpto/internal/domain/entities"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRecomputeItem(t *testing.T) {
	base := entities.BudgetItem{UnitPrice: 1000, Sessions: 2, DiscountPercent: 10}

	t.Run("scenario A", func(t *testing.T) {
		got := NormalizeItem(base)
		if !almostEqual(got.DiscountAmount, 200) || !almostEqual(got.TotalPrice, 1800) {
			t.Fatalf("unexpected item: %+v", got)
		}
	})

	t.Run("price change keeps percentage", func(t *testing.T) {
		got := RecomputeItem(NormalizeItem(base), FieldUnitPrice, 500)
		if got.DiscountPercent != 10 || !almostEqual(got.DiscountAmount, 100) || !almostEqual(got.TotalPrice, 900) {
			t.Fatalf("unexpected item: %+v", got)
		}
	})

	t.Run("sessions change keeps percentage", func(t *testing.T) {
		got := RecomputeItem(NormalizeItem(base), FieldSessions, 3)
		if got.Sessions != 3 || !almostEqual(got.DiscountAmount, 300) || !almostEqual(got.TotalPrice, 2700) {
			t.Fatalf("unexpected item: %+v", got)
		}
	})

	t.Run("discount change", func(t *testing.T) {
		got := RecomputeItem(NormalizeItem(base), FieldDiscountPercent, 25)
		if !almostEqual(got.DiscountAmount, 500) || !almostEqual(got.TotalPrice, 1500) {
			t.Fatalf("unexpected item: %+v", got)
		}
	})

	t.Run("clamps", func(t *testing.T) {
		got := RecomputeItem(base, FieldUnitPrice, -50)
		if got.UnitPrice != 0 || got.TotalPrice != 0 {
			t.Fatalf("expected clamped price, got %+v", got)
		}
		got = RecomputeItem(base, FieldSessions, 0)
		if got.Sessions != 1 {
			t.Fatalf("expected sessions 1, got %d", got.Sessions)
		}
		got = RecomputeItem(base, FieldDiscountPercent, -10)
		if got.DiscountPercent != 0 || !almostEqual(got.TotalPrice, 2000) {
			t.Fatalf("expected zero discount, got %+v", got)
		}
		got = RecomputeItem(base, FieldDiscountPercent, 150)
		if got.DiscountPercent != 100 || got.TotalPrice != 0 {
			t.Fatalf("expected full discount, got %+v", got)
		}
	})
}

func TestItemTotalProperty(t *testing.T) {
	prices := []float64{0, 0.01, 19.9, 250, 1234.56}
	sessions := []int{1, 2, 7}
	discounts := []float64{0, 5, 12.5, 33.3, 100}

	for _, p := range prices {
		for _, s := range sessions {
			for _, d := range discounts {
				got := NormalizeItem(entities.BudgetItem{UnitPrice: p, Sessions: s, DiscountPercent: d})
				want := math.Max(0, p*float64(s)*(1-d/100))
				if math.Abs(got.TotalPrice-want) > 1e-6 {
					t.Fatalf("price=%v sessions=%d discount=%v: want %v got %v", p, s, d, want, got.TotalPrice)
				}
				if got.TotalPrice < 0 {
					t.Fatalf("negative total: %+v", got)
				}
			}
		}
	}
}

func TestApplyItemDiscount(t *testing.T) {
	got := ApplyItemDiscount(entities.BudgetItem{UnitPrice: 300, Sessions: 4}, 50)
	if got.DiscountPercent != 50 || !almostEqual(got.DiscountAmount, 600) || !almostEqual(got.TotalPrice, 600) {
		t.Fatalf("unexpected item: %+v", got)
	}
}

func TestPaymentMethodFees(t *testing.T) {
	t.Run("scenario B", func(t *testing.T) {
		p := NormalizePaymentMethod(entities.PaymentMethod{
			Method:         entities.PaymentMethodCreditCard,
			Amount:         1800,
			Installments:   3,
			CardFeePercent: 5,
		})
		if !almostEqual(FeeValue(p), 90) {
			t.Fatalf("expected fee 90, got %v", FeeValue(p))
		}
		if !almostEqual(NetContribution(p), 1890) {
			t.Fatalf("expected net 1890, got %v", NetContribution(p))
		}
		if Round2(InstallmentValue(p)) != 630 {
			t.Fatalf("expected installment 630.00, got %v", InstallmentValue(p))
		}
	})

	t.Run("fee on post-discount base", func(t *testing.T) {
		p := NormalizePaymentMethod(entities.PaymentMethod{
			Method:          entities.PaymentMethodCreditCard,
			Amount:          1000,
			DiscountPercent: 10,
			CardFeePercent:  4,
		})
		if !almostEqual(p.DiscountAmount, 100) {
			t.Fatalf("expected discount 100, got %v", p.DiscountAmount)
		}
		if !almostEqual(FeeValue(p), 36) {
			t.Fatalf("expected fee 36 (4%% of 900), got %v", FeeValue(p))
		}
		if !almostEqual(NetContribution(p), 936) {
			t.Fatalf("expected net 936, got %v", NetContribution(p))
		}
	})

	t.Run("non card methods carry no fee", func(t *testing.T) {
		for _, m := range []entities.PaymentMethodType{entities.PaymentMethodPix, entities.PaymentMethodBoleto, entities.PaymentMethodCash} {
			p := NormalizePaymentMethod(entities.PaymentMethod{Method: m, Amount: 500, Installments: 6, CardFeePercent: 5})
			if FeeValue(p) != 0 || p.CardFeePercent != 0 || p.Installments != 1 {
				t.Fatalf("%s: unexpected split %+v", m, p)
			}
			if !almostEqual(NetContribution(p), 500) {
				t.Fatalf("%s: expected net 500, got %v", m, NetContribution(p))
			}
		}
	})

	t.Run("installments default to one", func(t *testing.T) {
		p := NormalizePaymentMethod(entities.PaymentMethod{Method: entities.PaymentMethodCreditCard, Amount: 100})
		if p.Installments != 1 {
			t.Fatalf("expected 1 installment, got %d", p.Installments)
		}
	})
}

func reconciledInput() ([]entities.BudgetItem, []entities.PaymentMethod) {
	items := []entities.BudgetItem{
		{ProcedureID: "proc-1", UnitPrice: 1000, Sessions: 2, DiscountPercent: 10},
	}
	payments := []entities.PaymentMethod{
		{Method: entities.PaymentMethodPix, Amount: 800, DiscountPercent: 5},
		{Method: entities.PaymentMethodCreditCard, Amount: 1000, Installments: 2, CardFeePercent: 3},
	}
	return items, payments
}

func TestComputeTotals(t *testing.T) {
	items, payments := reconciledInput()
	got := ComputeTotals(items, payments)

	if !almostEqual(got.Subtotal, 1800) {
		t.Fatalf("expected subtotal 1800, got %v", got.Subtotal)
	}
	if !almostEqual(got.TotalFees, 30) {
		t.Fatalf("expected fees 30, got %v", got.TotalFees)
	}
	if !almostEqual(got.TotalPaymentDiscounts, 40) {
		t.Fatalf("expected payment discounts 40, got %v", got.TotalPaymentDiscounts)
	}
	if !almostEqual(got.GrandTotal, 1790) {
		t.Fatalf("expected grand total 1790, got %v", got.GrandTotal)
	}
	if !almostEqual(got.TotalPaid, 1790) {
		t.Fatalf("expected total paid 1790, got %v", got.TotalPaid)
	}
	if got.RemainingBalance > 1e-9 {
		t.Fatalf("expected no remaining balance, got %v", got.RemainingBalance)
	}

	if again := ComputeTotals(items, payments); again != got {
		t.Fatalf("expected identical results, got %+v and %+v", got, again)
	}
}

func TestComputeTotals_RemainingBalance(t *testing.T) {
	items := []entities.BudgetItem{{UnitPrice: 500, Sessions: 1}}
	payments := []entities.PaymentMethod{{Method: entities.PaymentMethodPix, Amount: 200}}

	got := ComputeTotals(items, payments)
	if !almostEqual(got.RemainingBalance, 300) {
		t.Fatalf("expected 300 remaining, got %v", got.RemainingBalance)
	}

	overpaid := ComputeTotals(items, []entities.PaymentMethod{{Method: entities.PaymentMethodCash, Amount: 900}})
	if overpaid.RemainingBalance != 0 {
		t.Fatalf("expected remaining clamped to zero, got %v", overpaid.RemainingBalance)
	}
}

func TestComputeTotals_IgnoresStaleDerivedFields(t *testing.T) {
	items := []entities.BudgetItem{{UnitPrice: 100, Sessions: 1, TotalPrice: 9999}}
	got := ComputeTotals(items, nil)
	if !almostEqual(got.Subtotal, 100) {
		t.Fatalf("expected subtotal 100, got %v", got.Subtotal)
	}
}

func TestValidateForSave(t *testing.T) {
	t.Run("scenario D empty items", func(t *testing.T) {
		if err := ValidateForSave(nil, nil); !errors.Is(err, ErrEmptyItems) {
			t.Fatalf("expected ErrEmptyItems, got %v", err)
		}
	})

	t.Run("no payments", func(t *testing.T) {
		items, _ := reconciledInput()
		if err := ValidateForSave(items, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("reconciled", func(t *testing.T) {
		items, payments := reconciledInput()
		if err := ValidateForSave(items, payments); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("within tolerance", func(t *testing.T) {
		items, payments := reconciledInput()
		payments[0].Amount += 0.04
		if err := ValidateForSave(items, payments); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	for i := range 2 {
		for _, delta := range []float64{0.06, -0.06, 10} {
			items, payments := reconciledInput()
			payments[i].Amount += delta

			err := ValidateForSave(items, payments)
			if !errors.Is(err, ErrPaymentMismatch) {
				t.Fatalf("split %d delta %v: expected ErrPaymentMismatch, got %v", i, delta, err)
			}
			var mismatch *PaymentMismatchError
			if !errors.As(err, &mismatch) {
				t.Fatalf("expected *PaymentMismatchError, got %T", err)
			}
			if math.Abs((mismatch.Actual-mismatch.Expected)-delta) > 1e-6 {
				t.Fatalf("split %d: expected deviation %v, got expected=%v actual=%v", i, delta, mismatch.Expected, mismatch.Actual)
			}
		}
	}
}

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		630:    630,
		1.005:  1.01,
		2.344:  2.34,
		-0.001: 0,
		99.999: 100,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Fatalf("Round2(%v): want %v, got %v", in, want, got)
		}
	}
}
