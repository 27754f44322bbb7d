package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"clinica_xpto/internal/adapter/http/handlers/mocks"
	"clinica_xpto/internal/domain/budget"
	"clinica_xpto/internal/domain/entities"
	"clinica_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newBudgetRouter(t *testing.T) (*gin.Engine, *mocks.MockIBudgetUseCase) {
	t.Helper()
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIBudgetUseCase(ctrl)
	h := NewBudgetHandler(uc)

	r := gin.New()
	r.POST("/v1/budgets/calculate", h.Calculate)
	r.POST("/v1/budgets/edit", h.Edit)
	r.POST("/v1/budgets", h.Create)
	r.GET("/v1/budgets/:id", h.Get)
	r.PUT("/v1/budgets/:id", h.Update)
	r.GET("/v1/patients/:patient_id/budgets", h.ListByPatient)
	r.PATCH("/v1/budgets/:id/send", h.Send)
	r.PATCH("/v1/budgets/:id/approve", h.Approve)
	r.PATCH("/v1/budgets/:id/cancel", h.Cancel)
	return r, uc
}

func sampleBudget() entities.Budget {
	now := time.Now().UTC()
	return entities.Budget{
		ID:        "b1",
		ClinicID:  "c1",
		PatientID: "p1",
		Items: []entities.BudgetItem{
			{UnitPrice: 100, Sessions: 3, DiscountPercent: 10, DiscountAmount: 30, TotalPrice: 270},
		},
		PaymentMethods: []entities.PaymentMethod{{Method: entities.PaymentMethodPix, Amount: 270, Installments: 1}},
		Subtotal:       270,
		TotalWithFee:   270,
		Status:         entities.BudgetStatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestBudgetHandler_Edit(t *testing.T) {
	t.Run("discount change parked while splits exist", func(t *testing.T) {
		r, uc := newBudgetRouter(t)

		uc.EXPECT().Edit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(d budget.Draft, a budget.Action) (usecase.BudgetDraftEdit, error) {
				if d.Phase != budget.PhaseEditing || len(d.Items) != 1 || len(d.PaymentMethods) != 1 {
					t.Fatalf("unexpected draft %+v", d)
				}
				if a.Kind != budget.ActionSetItemDiscount || a.Index != 0 || a.Value != 10 {
					t.Fatalf("unexpected action %+v", a)
				}
				next := d
				next.Phase = budget.PhaseConfirmingDiscountReset
				next.Pending = &a
				return usecase.BudgetDraftEdit{Draft: next}, nil
			})

		w := doRequest(r, http.MethodPost, "/v1/budgets/edit",
			`{"items":[{"unit_price":100,"sessions":2}],"payment_methods":[{"method":"pix","amount":200}],"action":{"kind":"set_item_discount","index":0,"value":10}}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var body struct {
			Phase   string `json:"phase"`
			Pending *struct {
				Kind  string  `json:"kind"`
				Value float64 `json:"value"`
			} `json:"pending"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.Phase != "confirming_discount_reset" || body.Pending == nil || body.Pending.Value != 10 {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("pending confirmation blocks other edits", func(t *testing.T) {
		r, uc := newBudgetRouter(t)
		uc.EXPECT().Edit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(d budget.Draft, a budget.Action) (usecase.BudgetDraftEdit, error) {
				if d.Pending == nil || d.Pending.Kind != budget.ActionSetItemDiscount {
					t.Fatalf("pending action not forwarded: %+v", d)
				}
				return usecase.BudgetDraftEdit{}, budget.ErrConfirmationPending
			})

		w := doRequest(r, http.MethodPost, "/v1/budgets/edit",
			`{"items":[{"unit_price":100,"sessions":2}],"payment_methods":[{"method":"pix","amount":200}],"phase":"confirming_discount_reset","pending":{"kind":"set_item_discount","index":0,"value":10},"action":{"kind":"remove_item","index":0}}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
		}
		if body := decodeError(t, w); body.Code != "DISCOUNT_RESET_PENDING" {
			t.Fatalf("unexpected code %q", body.Code)
		}
	})

	t.Run("unknown action kind", func(t *testing.T) {
		r, _ := newBudgetRouter(t)
		w := doRequest(r, http.MethodPost, "/v1/budgets/edit", `{"items":[],"action":{"kind":"explode"}}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
		if body := decodeError(t, w); body.Code != "VALIDATION_FAILED" {
			t.Fatalf("unexpected code %q", body.Code)
		}
	})
}

func TestBudgetHandler_Calculate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, uc := newBudgetRouter(t)

		uc.EXPECT().Calculate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(items []entities.BudgetItem, payments []entities.PaymentMethod) usecase.BudgetCalculation {
				if len(items) != 1 || items[0].DiscountPercent != 10 || items[0].Sessions != 3 {
					t.Fatalf("unexpected items %+v", items)
				}
				if len(payments) != 1 || payments[0].Method != entities.PaymentMethodCreditCard {
					t.Fatalf("unexpected payments %+v", payments)
				}
				return usecase.BudgetCalculation{
					Items:  []entities.BudgetItem{{UnitPrice: 100, Sessions: 3, DiscountPercent: 10, DiscountAmount: 30, TotalPrice: 270}},
					Totals: budget.Totals{Subtotal: 270, TotalFees: 13.5, GrandTotal: 283.5, TotalPaid: 283.5},
				}
			})

		w := doRequest(r, http.MethodPost, "/v1/budgets/calculate",
			`{"items":[{"unit_price":100,"sessions":3,"discount":10}],"payment_methods":[{"method":"credit_card","amount":270,"installments":3,"card_fee_percent":5}]}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var body struct {
			Totals struct {
				GrandTotal       float64 `json:"grand_total"`
				RemainingBalance float64 `json:"remaining_balance"`
			} `json:"totals"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.Totals.GrandTotal != 283.5 || body.Totals.RemainingBalance != 0 {
			t.Fatalf("unexpected totals %+v", body.Totals)
		}
	})

	t.Run("unknown payment method", func(t *testing.T) {
		r, _ := newBudgetRouter(t)

		w := doRequest(r, http.MethodPost, "/v1/budgets/calculate", `{"payment_methods":[{"method":"cheque","amount":10}]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		body := decodeError(t, w)
		fields, _ := body.Details["fields"].(map[string]any)
		if body.Code != "VALIDATION_FAILED" || fields["payment_methods[0].method"] != "payment_method" {
			t.Fatalf("unexpected error body %+v", body)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		r, _ := newBudgetRouter(t)

		w := doRequest(r, http.MethodPost, "/v1/budgets/calculate", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "INVALID_REQUEST" {
			t.Fatalf("unexpected code %s", body.Code)
		}
	})
}

func TestBudgetHandler_Create(t *testing.T) {
	t.Run("success maps the command", func(t *testing.T) {
		r, uc := newBudgetRouter(t)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd usecase.BudgetCommand) (entities.Budget, error) {
				if cmd.ClinicID != "c1" || cmd.PatientID != "p1" || cmd.Notes != "retorno" {
					t.Fatalf("unexpected command %+v", cmd)
				}
				if cmd.ValidUntil == nil || cmd.ValidUntil.Year() != 2099 {
					t.Fatalf("unexpected valid_until %v", cmd.ValidUntil)
				}
				return sampleBudget(), nil
			})

		w := doRequest(r, http.MethodPost, "/v1/budgets",
			`{"clinic_id":"c1","patient_id":"p1","valid_until":"2099-01-31","notes":"retorno","items":[{"unit_price":100,"sessions":3,"discount":10}],"payment_methods":[{"method":"pix","amount":270}]}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "b1" || body["subtotal"] != 270.0 || body["total_with_fee"] != 270.0 {
			t.Fatalf("unexpected body %v", body)
		}
		line := body["items"].([]any)[0].(map[string]any)
		if line["discount"] != 10.0 || line["total_price"] != 270.0 {
			t.Fatalf("unexpected line %v", line)
		}
	})

	t.Run("empty items", func(t *testing.T) {
		r, uc := newBudgetRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Budget{}, budget.ErrEmptyItems)

		w := doRequest(r, http.MethodPost, "/v1/budgets", `{"clinic_id":"c1","patient_id":"p1","items":[]}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "EMPTY_ITEMS" {
			t.Fatalf("unexpected code %s", body.Code)
		}
	})

	t.Run("payment mismatch carries expected and actual", func(t *testing.T) {
		r, uc := newBudgetRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(entities.Budget{}, &budget.PaymentMismatchError{Expected: 1885, Actual: 1785})

		w := doRequest(r, http.MethodPost, "/v1/budgets", `{"clinic_id":"c1","patient_id":"p1"}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		body := decodeError(t, w)
		if body.Code != "PAYMENT_MISMATCH" || body.Details["expected"] != 1885.0 || body.Details["actual"] != 1785.0 {
			t.Fatalf("unexpected error body %+v", body)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		r, uc := newBudgetRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(entities.Budget{}, &budget.ValidationError{Fields: map[string]string{"patient_id": "required"}})

		w := doRequest(r, http.MethodPost, "/v1/budgets", `{"clinic_id":"c1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		body := decodeError(t, w)
		fields, _ := body.Details["fields"].(map[string]any)
		if body.Code != "VALIDATION_FAILED" || fields["patient_id"] != "required" {
			t.Fatalf("unexpected error body %+v", body)
		}
	})

	t.Run("unparseable valid_until", func(t *testing.T) {
		r, _ := newBudgetRouter(t)

		w := doRequest(r, http.MethodPost, "/v1/budgets", `{"clinic_id":"c1","patient_id":"p1","valid_until":"31/01/2099"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "VALIDATION_FAILED" {
			t.Fatalf("unexpected code %s", body.Code)
		}
	})

	t.Run("internal error", func(t *testing.T) {
		r, uc := newBudgetRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Budget{}, errors.New("db down"))

		w := doRequest(r, http.MethodPost, "/v1/budgets", `{"clinic_id":"c1","patient_id":"p1"}`)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestBudgetHandler_Update(t *testing.T) {
	r, uc := newBudgetRouter(t)
	uc.EXPECT().Update(gomock.Any(), "b1", gomock.Any()).Return(entities.Budget{}, usecase.ErrBudgetNotEditable)

	w := doRequest(r, http.MethodPut, "/v1/budgets/b1", `{"clinic_id":"c1","patient_id":"p1"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Code != "BUDGET_NOT_EDITABLE" {
		t.Fatalf("unexpected code %s", body.Code)
	}
}

func TestBudgetHandler_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		r, uc := newBudgetRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Budget{}, usecase.ErrBudgetNotFound)

		w := doRequest(r, http.MethodGet, "/v1/budgets/missing", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newBudgetRouter(t)
		uc.EXPECT().GetByID(gomock.Any(), "b1").Return(sampleBudget(), nil)

		w := doRequest(r, http.MethodGet, "/v1/budgets/b1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestBudgetHandler_ListByPatient(t *testing.T) {
	r, uc := newBudgetRouter(t)
	uc.EXPECT().ListByPatient(gomock.Any(), "p1").Return([]entities.Budget{sampleBudget(), sampleBudget()}, nil)

	w := doRequest(r, http.MethodGet, "/v1/patients/p1/budgets", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || len(body) != 2 {
		t.Fatalf("expected two budgets, got %s", w.Body.String())
	}
}

func TestBudgetHandler_StatusChanges(t *testing.T) {
	t.Run("send", func(t *testing.T) {
		r, uc := newBudgetRouter(t)
		sent := sampleBudget()
		sent.Status = entities.BudgetStatusSent
		uc.EXPECT().Send(gomock.Any(), "b1").Return(sent, nil)

		w := doRequest(r, http.MethodPatch, "/v1/budgets/b1/send", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("approve invalid transition", func(t *testing.T) {
		r, uc := newBudgetRouter(t)
		uc.EXPECT().Approve(gomock.Any(), "b1").Return(entities.Budget{}, usecase.ErrInvalidStatusTransition)

		w := doRequest(r, http.MethodPatch, "/v1/budgets/b1/approve", "")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("approve expired", func(t *testing.T) {
		r, uc := newBudgetRouter(t)
		uc.EXPECT().Approve(gomock.Any(), "b1").Return(entities.Budget{}, usecase.ErrBudgetExpired)

		w := doRequest(r, http.MethodPatch, "/v1/budgets/b1/approve", "")
		if body := decodeError(t, w); w.Code != http.StatusConflict || body.Code != "BUDGET_EXPIRED" {
			t.Fatalf("unexpected response %d %+v", w.Code, body)
		}
	})

	t.Run("cancel not found", func(t *testing.T) {
		r, uc := newBudgetRouter(t)
		uc.EXPECT().Cancel(gomock.Any(), "b1").Return(entities.Budget{}, usecase.ErrBudgetNotFound)

		w := doRequest(r, http.MethodPatch, "/v1/budgets/b1/cancel", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
