package routes

import (
	"github.com/gin-gonic/gin"
)

const (
	PathBudgets  = "/budgets"
	PathPatients = "/patients"
	PathPayments = "/payments"
	PathLeads    = "/leads"
	PathClinics  = "/clinics"
)

func addClinicRoutes(rg *gin.RouterGroup, h Handlers) {
	budgets := rg.Group(PathBudgets)
	{
		budgets.POST("/calculate", h.Budget.Calculate)
		budgets.POST("/edit", h.Budget.Edit)
		budgets.POST("", h.Budget.Create)
		budgets.GET("/:id", h.Budget.Get)
		budgets.PUT("/:id", h.Budget.Update)
		budgets.PATCH("/:id/send", h.Budget.Send)
		budgets.PATCH("/:id/approve", h.Budget.Approve)
		budgets.PATCH("/:id/cancel", h.Budget.Cancel)

		budgets.POST("/:id/payments/:split", h.BudgetPayment.Charge)
		budgets.GET("/:id/payments", h.BudgetPayment.ListByBudget)
	}

	rg.GET(PathPatients+"/:patient_id/budgets", h.Budget.ListByPatient)
	rg.GET(PathPayments+"/:id", h.BudgetPayment.Get)

	leads := rg.Group(PathLeads)
	{
		leads.POST("", h.Lead.Create)
		leads.GET("/:id", h.Lead.Get)
	}

	clinics := rg.Group(PathClinics)
	{
		clinics.GET("/:clinic_id/lead-thresholds", h.Lead.GetThresholds)
		clinics.PUT("/:clinic_id/lead-thresholds", h.Lead.UpdateThresholds)
	}
}
