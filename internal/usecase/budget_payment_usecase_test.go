package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"clinica_xpto/internal/domain/entities"
	mock_interfaces "clinica_xpto/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func approvedBudget() entities.Budget {
	return entities.Budget{
		ID:     "b-1",
		Status: entities.BudgetStatusApproved,
		PaymentMethods: []entities.PaymentMethod{
			{Method: entities.PaymentMethodPix, Amount: 800, DiscountPercent: 5, DiscountAmount: 40, Installments: 1},
			{Method: entities.PaymentMethodCreditCard, Amount: 1800, Installments: 3, CardFeePercent: 5},
			{Method: entities.PaymentMethodCash, Amount: 100, Installments: 1},
		},
	}
}

type paymentMocks struct {
	repo    *mock_interfaces.MockIBudgetPaymentRepository
	budgets *mock_interfaces.MockIBudgetRepository
	gateway *mock_interfaces.MockIPaymentGateway
	uc      *BudgetPaymentUseCase
}

func newPaymentMocks(t *testing.T) paymentMocks {
	ctrl := gomock.NewController(t)
	m := paymentMocks{
		repo:    mock_interfaces.NewMockIBudgetPaymentRepository(ctrl),
		budgets: mock_interfaces.NewMockIBudgetRepository(ctrl),
		gateway: mock_interfaces.NewMockIPaymentGateway(ctrl),
	}
	m.uc = NewBudgetPaymentUseCase(m.repo, m.budgets, m.gateway)
	return m
}

func TestBudgetPaymentUseCase_Charge_Validations(t *testing.T) {
	t.Run("empty budget id", func(t *testing.T) {
		uc := NewBudgetPaymentUseCase(nil, nil, nil)
		_, err := uc.Charge(context.Background(), " ", 0, nil)
		if !errors.Is(err, ErrInvalidBudgetID) {
			t.Fatalf("expected ErrInvalidBudgetID, got %v", err)
		}
	})

	t.Run("negative split", func(t *testing.T) {
		uc := NewBudgetPaymentUseCase(nil, nil, nil)
		_, err := uc.Charge(context.Background(), "b-1", -1, nil)
		if !errors.Is(err, ErrInvalidSplitIndex) {
			t.Fatalf("expected ErrInvalidSplitIndex, got %v", err)
		}
	})

	t.Run("invalid json payload", func(t *testing.T) {
		uc := NewBudgetPaymentUseCase(nil, nil, nil)
		_, err := uc.Charge(context.Background(), "b-1", 0, json.RawMessage(`{`))
		if !errors.Is(err, ErrInvalidProviderPayload) {
			t.Fatalf("expected ErrInvalidProviderPayload, got %v", err)
		}
	})

	t.Run("repositories not configured", func(t *testing.T) {
		uc := NewBudgetPaymentUseCase(nil, nil, nil)
		_, err := uc.Charge(context.Background(), "b-1", 0, nil)
		if err == nil || err.Error() != "payment repositories not configured" {
			t.Fatalf("expected repositories not configured, got %v", err)
		}
	})
}

func TestBudgetPaymentUseCase_Charge_BudgetChecks(t *testing.T) {
	t.Run("budget not found", func(t *testing.T) {
		m := newPaymentMocks(t)
		m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(entities.Budget{}, nil)

		_, err := m.uc.Charge(context.Background(), "b-1", 0, nil)
		if !errors.Is(err, ErrBudgetNotFound) {
			t.Fatalf("expected ErrBudgetNotFound, got %v", err)
		}
	})

	t.Run("budget not approved", func(t *testing.T) {
		m := newPaymentMocks(t)
		b := approvedBudget()
		b.Status = entities.BudgetStatusSent
		m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(b, nil)

		_, err := m.uc.Charge(context.Background(), "b-1", 0, nil)
		if !errors.Is(err, ErrBudgetNotApproved) {
			t.Fatalf("expected ErrBudgetNotApproved, got %v", err)
		}
	})

	t.Run("split out of range", func(t *testing.T) {
		m := newPaymentMocks(t)
		m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(approvedBudget(), nil)

		_, err := m.uc.Charge(context.Background(), "b-1", 3, nil)
		if !errors.Is(err, ErrInvalidSplitIndex) {
			t.Fatalf("expected ErrInvalidSplitIndex, got %v", err)
		}
	})

	t.Run("split already paid", func(t *testing.T) {
		m := newPaymentMocks(t)
		m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(approvedBudget(), nil)
		m.repo.EXPECT().ListByBudgetID(gomock.Any(), "b-1").Return([]entities.BudgetPayment{
			{ID: "p-1", SplitIndex: 0, Status: entities.PaymentStatusApproved},
		}, nil)

		_, err := m.uc.Charge(context.Background(), "b-1", 0, nil)
		if !errors.Is(err, ErrSplitAlreadyPaid) {
			t.Fatalf("expected ErrSplitAlreadyPaid, got %v", err)
		}
	})

	t.Run("split with pending charge", func(t *testing.T) {
		m := newPaymentMocks(t)
		m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(approvedBudget(), nil)
		m.repo.EXPECT().ListByBudgetID(gomock.Any(), "b-1").Return([]entities.BudgetPayment{
			{ID: "mp-1", SplitIndex: 0, Status: entities.PaymentStatusPending},
		}, nil)

		_, err := m.uc.Charge(context.Background(), "b-1", 0, nil)
		if !errors.Is(err, ErrSplitChargePending) {
			t.Fatalf("expected ErrSplitChargePending, got %v", err)
		}
	})
}

func TestBudgetPaymentUseCase_Charge_Pix(t *testing.T) {
	m := newPaymentMocks(t)
	m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(approvedBudget(), nil)
	m.repo.EXPECT().ListByBudgetID(gomock.Any(), "b-1").Return([]entities.BudgetPayment{
		{ID: "p-0", SplitIndex: 0, Status: entities.PaymentStatusDenied},
	}, nil)
	m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
			var req map[string]any
			if err := json.Unmarshal(payload, &req); err != nil {
				t.Fatalf("invalid payload: %v", err)
			}
			if req["payment_method_id"] != "pix" {
				t.Fatalf("expected pix, got %v", req["payment_method_id"])
			}
			if req["transaction_amount"] != 760.0 {
				t.Fatalf("expected 760, got %v", req["transaction_amount"])
			}
			if req["external_reference"] != "b-1:0" {
				t.Fatalf("unexpected external_reference %v", req["external_reference"])
			}
			return "mp-1", "pending", json.RawMessage(`{"id":1,"status":"pending"}`), nil
		},
	)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p entities.BudgetPayment) (entities.BudgetPayment, error) {
			return p, nil
		},
	)

	res, err := m.uc.Charge(context.Background(), "b-1", 0, json.RawMessage(`{"payer":{"email":"p@test.com"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ID != "mp-1" || res.Status != entities.PaymentStatusPending || res.Amount != 760 {
		t.Fatalf("unexpected payment: %+v", res)
	}
	if res.ProviderPayload["status"] != "pending" {
		t.Fatalf("expected parsed provider payload, got %+v", res.ProviderPayload)
	}
}

func TestBudgetPaymentUseCase_Charge_CreditCard(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		m := newPaymentMocks(t)
		m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(approvedBudget(), nil)
		m.repo.EXPECT().ListByBudgetID(gomock.Any(), "b-1").Return(nil, nil)

		_, err := m.uc.Charge(context.Background(), "b-1", 1, json.RawMessage(`{"payment_method_id":"visa","payer":{"email":"p@test.com"}}`))
		if !errors.Is(err, ErrInvalidProviderPayload) {
			t.Fatalf("expected ErrInvalidProviderPayload, got %v", err)
		}
	})

	t.Run("gateway error mapped", func(t *testing.T) {
		m := newPaymentMocks(t)
		m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(approvedBudget(), nil)
		m.repo.EXPECT().ListByBudgetID(gomock.Any(), "b-1").Return(nil, nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New(`{"error":"unauthorized","status":401}`))

		_, err := m.uc.Charge(context.Background(), "b-1", 1, json.RawMessage(`{"token":"tok","payment_method_id":"visa","payer":{"email":"p@test.com"}}`))
		if !errors.Is(err, ErrPaymentGatewayUnauthorized) {
			t.Fatalf("expected ErrPaymentGatewayUnauthorized, got %v", err)
		}
	})

	t.Run("success with installments and fee", func(t *testing.T) {
		m := newPaymentMocks(t)
		m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(approvedBudget(), nil)
		m.repo.EXPECT().ListByBudgetID(gomock.Any(), "b-1").Return(nil, nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
				var req map[string]any
				_ = json.Unmarshal(payload, &req)
				if req["installments"] != 3.0 || req["transaction_amount"] != 1890.0 || req["payment_method_id"] != "visa" {
					t.Fatalf("unexpected request: %+v", req)
				}
				return "mp-2", "approved", json.RawMessage(`{"id":2}`), nil
			},
		)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.BudgetPayment) (entities.BudgetPayment, error) {
				return p, nil
			},
		)

		res, err := m.uc.Charge(context.Background(), "b-1", 1, json.RawMessage(`{"token":"tok","payment_method_id":"visa","payer":{"email":"p@test.com"},"transaction_amount":1}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.PaymentStatusApproved || res.Installments != 3 || res.Amount != 1890 {
			t.Fatalf("unexpected payment: %+v", res)
		}
	})
}

func TestBudgetPaymentUseCase_Charge_Cash(t *testing.T) {
	m := newPaymentMocks(t)
	m.budgets.EXPECT().GetByID(gomock.Any(), "b-1").Return(approvedBudget(), nil)
	m.repo.EXPECT().ListByBudgetID(gomock.Any(), "b-1").Return(nil, nil)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p entities.BudgetPayment) (entities.BudgetPayment, error) {
			if p.ID == "" || p.Status != entities.PaymentStatusApproved || p.Amount != 100 {
				t.Fatalf("unexpected payment: %+v", p)
			}
			return p, nil
		},
	)

	if _, err := m.uc.Charge(context.Background(), "b-1", 2, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBudgetPaymentUseCase_Getters(t *testing.T) {
	t.Run("GetByID invalid", func(t *testing.T) {
		uc := NewBudgetPaymentUseCase(nil, nil, nil)
		_, err := uc.GetByID(context.Background(), "")
		if !errors.Is(err, ErrInvalidPaymentID) {
			t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
		}
	})

	t.Run("GetByID not found", func(t *testing.T) {
		m := newPaymentMocks(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.BudgetPayment{}, nil)
		_, err := m.uc.GetByID(context.Background(), "p-1")
		if !errors.Is(err, ErrBudgetPaymentNotFound) {
			t.Fatalf("expected ErrBudgetPaymentNotFound, got %v", err)
		}
	})

	t.Run("ListByBudgetID", func(t *testing.T) {
		m := newPaymentMocks(t)
		m.repo.EXPECT().ListByBudgetID(gomock.Any(), "b-1").Return([]entities.BudgetPayment{{ID: "p-1"}}, nil)
		res, err := m.uc.ListByBudgetID(context.Background(), " b-1 ")
		if err != nil || len(res) != 1 {
			t.Fatalf("unexpected result: %+v err=%v", res, err)
		}
	})
}

func TestPaymentStatusFromProvider(t *testing.T) {
	cases := map[string]entities.PaymentStatus{
		"approved":   entities.PaymentStatusApproved,
		"rejected":   entities.PaymentStatusDenied,
		"in_process": entities.PaymentStatusPending,
		"":           entities.PaymentStatusPending,
	}
	for in, want := range cases {
		if got := paymentStatusFromProvider(in); got != want {
			t.Fatalf("%q: want %s got %s", in, want, got)
		}
	}
}
