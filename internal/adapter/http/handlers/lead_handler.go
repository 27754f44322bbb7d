package handlers

import (
	"errors"
	"log"
	"net/http"

	request "clinica_xpto/internal/adapter/http/dto/request"
	response "clinica_xpto/internal/adapter/http/dto/response"
	"clinica_xpto/internal/domain/lead"
	"clinica_xpto/internal/usecase"
	"clinica_xpto/pkg"

	"github.com/gin-gonic/gin"
)

// LeadHandler receives classified leads and manages per-clinic thresholds.

type LeadHandler struct {
	usecase usecase.ILeadUseCase
}

func NewLeadHandler(uc usecase.ILeadUseCase) *LeadHandler {
	return &LeadHandler{usecase: uc}
}

// Create godoc
// @Summary      Register a classified lead
// @Description  Persists the lead and moves it to the kanban column implied by score and urgency.
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body      request.LeadRequest  true  "Lead"
// @Success      201   {object}  response.LeadResponse
// @Failure      400   {object}  pkg.HTTPError
// @Router       /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var payload request.LeadRequest
	if !bindJSON(c, &payload) {
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), usecase.LeadCommand{
		ClinicID:     payload.ClinicID,
		Name:         payload.Name,
		Phone:        payload.Phone,
		Email:        payload.Email,
		AIScore:      payload.AIScore,
		AIUrgency:    payload.AIUrgency,
		KanbanStatus: payload.KanbanStatus,
		Answers:      payload.ToAnswers(),
	})
	if err != nil {
		log.Printf("[lead][handler] create failed clinic_id=%s err=%v", payload.ClinicID, err)
		writeError(c, mapLeadError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromLead(created))
}

func (h *LeadHandler) Get(c *gin.Context) {
	l, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapLeadError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromLead(l))
}

// GetThresholds godoc
// @Summary      Get the lead thresholds of a clinic
// @Tags         leads
// @Produce      json
// @Param        clinic_id  path      string  true  "Clinic ID"
// @Success      200        {object}  response.LeadThresholdsResponse
// @Router       /clinics/{clinic_id}/lead-thresholds [get]
func (h *LeadHandler) GetThresholds(c *gin.Context) {
	clinicID := c.Param("clinic_id")
	t, err := h.usecase.GetThresholds(c.Request.Context(), clinicID)
	if err != nil {
		writeError(c, mapLeadError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromLeadThresholds(clinicID, t))
}

// UpdateThresholds godoc
// @Summary      Replace the lead thresholds of a clinic
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        clinic_id  path      string                         true  "Clinic ID"
// @Param        body       body      request.LeadThresholdsRequest  true  "Thresholds"
// @Success      200        {object}  response.LeadThresholdsResponse
// @Failure      400        {object}  pkg.HTTPError
// @Router       /clinics/{clinic_id}/lead-thresholds [put]
func (h *LeadHandler) UpdateThresholds(c *gin.Context) {
	clinicID := c.Param("clinic_id")
	var payload request.LeadThresholdsRequest
	if !bindJSON(c, &payload) {
		return
	}

	t, err := h.usecase.UpdateThresholds(c.Request.Context(), clinicID, payload.ToThresholds())
	if err != nil {
		log.Printf("[lead][handler] update thresholds failed clinic_id=%s err=%v", clinicID, err)
		writeError(c, mapLeadError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromLeadThresholds(clinicID, t))
}

func mapLeadError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidLead), errors.Is(err, usecase.ErrInvalidLeadID), errors.Is(err, usecase.ErrInvalidClinicID):
		return pkg.NewDomainError(errInvalidRequest.Code, errInvalidRequest.Message, err, errInvalidRequest.HTTPStatus).
			WithDetails(map[string]any{"reason": err.Error()})
	case errors.Is(err, lead.ErrInvalidThresholds):
		return pkg.NewDomainErrorSimple("INVALID_THRESHOLDS", "Thresholds must satisfy 0 <= frio_max <= morno_max <= quente_max <= 100", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrLeadNotFound):
		return pkg.NewDomainErrorSimple("LEAD_NOT_FOUND", "Lead not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError(errInternal.Code, errInternal.Message, err, errInternal.HTTPStatus)
	}
}
