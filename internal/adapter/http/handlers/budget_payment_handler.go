package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	response "clinica_xpto/internal/adapter/http/dto/response"
	"clinica_xpto/internal/usecase"
	"clinica_xpto/pkg"

	"github.com/gin-gonic/gin"
)

// BudgetPaymentHandler handles charging the payment splits of a budget.

type BudgetPaymentHandler struct {
	usecase usecase.IBudgetPaymentUseCase
}

func NewBudgetPaymentHandler(uc usecase.IBudgetPaymentUseCase) *BudgetPaymentHandler {
	return &BudgetPaymentHandler{usecase: uc}
}

// Charge godoc
// @Summary      Charge one payment split of an approved budget
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id     path      string                              true   "Budget ID"
// @Param        split  path      int                                 true   "Split index"
// @Param        body   body      request.BudgetPaymentChargeRequest  false  "Provider payload"
// @Success      201    {object}  response.BudgetPaymentResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      404    {object}  pkg.HTTPError
// @Failure      409    {object}  pkg.HTTPError
// @Router       /budgets/{id}/payments/{split} [post]
func (h *BudgetPaymentHandler) Charge(c *gin.Context) {
	budgetID := c.Param("id")
	split, err := strconv.Atoi(c.Param("split"))
	if err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	log.Printf("[payment][handler] charge start budget_id=%s split=%d", budgetID, split)

	payload, err := readProviderPayload(c)
	if err != nil {
		log.Printf("[payment][handler] invalid payload budget_id=%s err=%v", budgetID, err)
		writeError(c, errInvalidRequest)
		return
	}

	created, err := h.usecase.Charge(c.Request.Context(), budgetID, split, payload)
	if err != nil {
		log.Printf("[payment][handler] charge failed budget_id=%s split=%d err=%v", budgetID, split, err)
		writeError(c, mapBudgetPaymentError(err))
		return
	}
	log.Printf("[payment][handler] charge success budget_id=%s payment_id=%s status=%s", budgetID, created.ID, created.Status)

	c.JSON(http.StatusCreated, response.FromBudgetPayment(created))
}

// ListByBudget godoc
// @Summary      List the payments of a budget
// @Tags         payments
// @Produce      json
// @Param        id   path      string  true  "Budget ID"
// @Success      200  {array}   response.BudgetPaymentResponse
// @Router       /budgets/{id}/payments [get]
func (h *BudgetPaymentHandler) ListByBudget(c *gin.Context) {
	payments, err := h.usecase.ListByBudgetID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapBudgetPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudgetPayments(payments))
}

func (h *BudgetPaymentHandler) Get(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapBudgetPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudgetPayment(p))
}

// readProviderPayload accepts either {"provider_payload": {...}} or the bare
// provider object. An empty body is an empty payload.
func readProviderPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["provider_payload"]; ok {
			if s := strings.TrimSpace(string(wrapped)); s == "" || s == "null" {
				return json.RawMessage("{}"), nil
			}
			return wrapped, nil
		}
	}
	return json.RawMessage(raw), nil
}

func mapBudgetPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidBudgetID), errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidSplitIndex), errors.Is(err, usecase.ErrInvalidProviderPayload),
		errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrBudgetNotFound):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_FOUND", "Budget not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBudgetNotApproved):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_APPROVED", "Budget not approved", http.StatusConflict)
	case errors.Is(err, usecase.ErrSplitAlreadyPaid):
		return pkg.NewDomainErrorSimple("SPLIT_ALREADY_PAID", "This payment split was already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrSplitChargePending):
		return pkg.NewDomainErrorSimple("SPLIT_CHARGE_PENDING", "This payment split has a pending charge", http.StatusConflict)
	case errors.Is(err, usecase.ErrBudgetPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError(errInternal.Code, errInternal.Message, err, errInternal.HTTPStatus)
	}
}
