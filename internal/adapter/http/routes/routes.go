package routes

import (
	"context"
	"log"
	"os"

	_ "clinica_xpto/docs"
	request "clinica_xpto/internal/adapter/http/dto/request"
	"clinica_xpto/internal/adapter/http/handlers"
	"clinica_xpto/internal/adapter/persistence/repository"
	"clinica_xpto/internal/infrastructure/database"
	"clinica_xpto/internal/infrastructure/payments"
	"clinica_xpto/internal/usecase"
	"clinica_xpto/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultPort = "8080"

// Handlers groups everything the router needs.
type Handlers struct {
	Budget        *handlers.BudgetHandler
	BudgetPayment *handlers.BudgetPaymentHandler
	Lead          *handlers.LeadHandler
}

// Run wires the dependencies and starts the server on PORT (default 8080).
func Run() {
	router := NewRouter(buildHandlers(context.Background()))

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

// NewRouter registers middlewares, validators, swagger and the /v1 routes.
func NewRouter(h Handlers) *gin.Engine {
	if err := request.RegisterBindingValidators(); err != nil {
		log.Fatalf("failed to register binding validators: %v", err)
	}

	router := gin.New()
	setMiddlewares(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addClinicRoutes(v1, h)
	return router
}

func buildHandlers(ctx context.Context) Handlers {
	ddb := database.ConnectDynamoDB(ctx)

	budgetRepo := repository.NewBudgetDynamoRepository(ddb)
	paymentRepo := repository.NewBudgetPaymentDynamoRepository(ddb)
	leadRepo := repository.NewLeadDynamoRepository(ddb)
	settingsRepo := repository.NewClinicSettingsDynamoRepository(ddb)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("[payment][routes] Mercado Pago gateway not configured err=%v", err)
	} else {
		paymentGateway = mpGateway
	}

	budgetUseCase := usecase.NewBudgetUseCase(budgetRepo)
	paymentUseCase := usecase.NewBudgetPaymentUseCase(paymentRepo, budgetRepo, paymentGateway)
	leadUseCase := usecase.NewLeadUseCase(leadRepo, settingsRepo)

	return Handlers{
		Budget:        handlers.NewBudgetHandler(budgetUseCase),
		BudgetPayment: handlers.NewBudgetPaymentHandler(paymentUseCase),
		Lead:          handlers.NewLeadHandler(leadUseCase),
	}
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
