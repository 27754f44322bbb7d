package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	request "clinica_xpto/internal/adapter/http/dto/request"
	response "clinica_xpto/internal/adapter/http/dto/response"
	"clinica_xpto/internal/domain/budget"
	"clinica_xpto/internal/domain/entities"
	"clinica_xpto/internal/usecase"
	"clinica_xpto/pkg"

	"github.com/gin-gonic/gin"
)

// BudgetHandler handles HTTP requests for patient budgets (orçamentos).

type BudgetHandler struct {
	usecase usecase.IBudgetUseCase
}

func NewBudgetHandler(uc usecase.IBudgetUseCase) *BudgetHandler {
	return &BudgetHandler{usecase: uc}
}

// Calculate godoc
// @Summary      Preview budget totals
// @Description  Recomputes every line and split without saving anything.
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        body  body      request.CalculateRequest  true  "Items and payment splits"
// @Success      200   {object}  response.BudgetCalculationResponse
// @Failure      400   {object}  pkg.HTTPError
// @Router       /budgets/calculate [post]
func (h *BudgetHandler) Calculate(c *gin.Context) {
	var payload request.CalculateRequest
	if !bindJSON(c, &payload) {
		return
	}

	calc := h.usecase.Calculate(payload.ToItems(), payload.ToPaymentMethods())
	c.JSON(http.StatusOK, response.FromCalculation(calc))
}

// Edit godoc
// @Summary      Apply one edit to a budget draft
// @Description  Changing a line discount while payment splits exist is parked until confirm_discount_reset (splits cleared) or cancel_discount_reset.
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        body  body      request.DraftEditRequest  true  "Draft and edit"
// @Success      200   {object}  response.DraftEditResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /budgets/edit [post]
func (h *BudgetHandler) Edit(c *gin.Context) {
	var payload request.DraftEditRequest
	if !bindJSON(c, &payload) {
		return
	}

	res, err := h.usecase.Edit(payload.ToDraft(), payload.Action.ToAction())
	if err != nil {
		writeError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromDraftEdit(res))
}

// Create godoc
// @Summary      Create a budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        body  body      request.BudgetRequest  true  "Budget"
// @Success      201   {object}  response.BudgetResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      422   {object}  pkg.HTTPError
// @Router       /budgets [post]
func (h *BudgetHandler) Create(c *gin.Context) {
	cmd, ok := h.bindCommand(c)
	if !ok {
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), cmd)
	if err != nil {
		log.Printf("[budget][handler] create failed patient_id=%s err=%v", cmd.PatientID, err)
		writeError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromBudget(created))
}

// Update godoc
// @Summary      Replace the content of a draft or sent budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Budget ID"
// @Param        body  body      request.BudgetRequest  true  "Budget"
// @Success      200   {object}  response.BudgetResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Failure      422   {object}  pkg.HTTPError
// @Router       /budgets/{id} [put]
func (h *BudgetHandler) Update(c *gin.Context) {
	id := c.Param("id")
	cmd, ok := h.bindCommand(c)
	if !ok {
		return
	}

	updated, err := h.usecase.Update(c.Request.Context(), id, cmd)
	if err != nil {
		log.Printf("[budget][handler] update failed budget_id=%s err=%v", id, err)
		writeError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudget(updated))
}

// Get godoc
// @Summary      Get a budget
// @Tags         budgets
// @Produce      json
// @Param        id   path      string  true  "Budget ID"
// @Success      200  {object}  response.BudgetResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /budgets/{id} [get]
func (h *BudgetHandler) Get(c *gin.Context) {
	b, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudget(b))
}

// ListByPatient godoc
// @Summary      List the budgets of a patient
// @Tags         budgets
// @Produce      json
// @Param        patient_id  path      string  true  "Patient ID"
// @Success      200         {array}   response.BudgetResponse
// @Router       /patients/{patient_id}/budgets [get]
func (h *BudgetHandler) ListByPatient(c *gin.Context) {
	budgets, err := h.usecase.ListByPatient(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		writeError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudgets(budgets))
}

func (h *BudgetHandler) Send(c *gin.Context) {
	h.patchStatus(c, h.usecase.Send)
}

func (h *BudgetHandler) Approve(c *gin.Context) {
	h.patchStatus(c, h.usecase.Approve)
}

func (h *BudgetHandler) Cancel(c *gin.Context) {
	h.patchStatus(c, h.usecase.Cancel)
}

func (h *BudgetHandler) patchStatus(
	c *gin.Context,
	updater func(ctx context.Context, id string) (entities.Budget, error),
) {
	id := c.Param("id")
	b, err := updater(c.Request.Context(), id)
	if err != nil {
		log.Printf("[budget][handler] status change failed budget_id=%s err=%v", id, err)
		writeError(c, mapBudgetError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromBudget(b))
}

func (h *BudgetHandler) bindCommand(c *gin.Context) (usecase.BudgetCommand, bool) {
	var payload request.BudgetRequest
	if !bindJSON(c, &payload) {
		return usecase.BudgetCommand{}, false
	}

	validUntil, err := payload.ResolveValidUntil()
	if err != nil {
		writeError(c, validationFailed(map[string]string{"valid_until": "invalid date"}))
		return usecase.BudgetCommand{}, false
	}

	return usecase.BudgetCommand{
		ClinicID:       payload.ClinicID,
		PatientID:      payload.PatientID,
		Items:          payload.ToItems(),
		PaymentMethods: payload.ToPaymentMethods(),
		ValidUntil:     validUntil,
		Notes:          payload.Notes,
	}, true
}

func mapBudgetError(err error) *pkg.AppError {
	var verr *budget.ValidationError
	var mismatch *budget.PaymentMismatchError
	switch {
	case errors.As(err, &verr):
		return validationFailed(verr.Fields)
	case errors.As(err, &mismatch):
		return pkg.NewDomainErrorSimple("PAYMENT_MISMATCH", "Payment methods do not match the budget total", http.StatusUnprocessableEntity).
			WithDetails(map[string]any{
				"expected": budget.Round2(mismatch.Expected),
				"actual":   budget.Round2(mismatch.Actual),
			})
	case errors.Is(err, budget.ErrEmptyItems):
		return pkg.NewDomainErrorSimple("EMPTY_ITEMS", "Add at least one procedure to the budget", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrInvalidBudgetID), errors.Is(err, usecase.ErrInvalidPatientID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrBudgetNotFound):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_FOUND", "Budget not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBudgetNotEditable):
		return pkg.NewDomainErrorSimple("BUDGET_NOT_EDITABLE", "Only draft or sent budgets can be edited", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", "Invalid budget status transition", http.StatusConflict)
	case errors.Is(err, usecase.ErrBudgetExpired):
		return pkg.NewDomainErrorSimple("BUDGET_EXPIRED", "Budget is past its validity date", http.StatusConflict)
	case errors.Is(err, budget.ErrConfirmationPending):
		return pkg.NewDomainErrorSimple("DISCOUNT_RESET_PENDING", "Confirm or cancel the discount change first", http.StatusConflict)
	case errors.Is(err, budget.ErrNoPendingReset):
		return pkg.NewDomainErrorSimple("NO_PENDING_DISCOUNT_RESET", "There is no discount change to confirm", http.StatusConflict)
	case errors.Is(err, budget.ErrIndexOutOfRange), errors.Is(err, budget.ErrUnknownAction):
		return pkg.NewDomainError(errInvalidRequest.Code, errInvalidRequest.Message, err, errInvalidRequest.HTTPStatus).
			WithDetails(map[string]any{"reason": err.Error()})
	default:
		return pkg.NewDomainError(errInternal.Code, errInternal.Message, err, errInternal.HTTPStatus)
	}
}
