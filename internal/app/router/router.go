package router

import (
	"pawn-ledger/internal/app/handlers"
	"pawn-ledger/internal/app/middleware"
	"pawn-ledger/internal/service/ledger"
	"pawn-ledger/internal/service/rates"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
)

// Services are the application services exposed over HTTP.
type Services struct {
	InterestRates rates.InterestRateServiceInterface
	JewelRates    rates.JewelRateServiceInterface
	Ledger        ledger.LedgerServiceInterface
}

// SetupRouter mounts every route at the root and again under /api.
func SetupRouter(serviceName string, services Services) *gin.Engine {
	server := gin.New()
	server.Use(gin.Recovery())
	server.Use(otelgin.Middleware(serviceName))
	server.Use(middleware.NewMetricMiddleware(otel.Meter(serviceName)))
	server.Use(middleware.AttachRequestDetails())

	healthCheckHandler := handlers.NewHealthCheckHandler()
	interestRateHandler := handlers.NewInterestRateHandler(services.InterestRates)
	jewelRateHandler := handlers.NewJewelRateHandler(services.JewelRates)
	ledgerHandler := handlers.NewLedgerHandler(services.Ledger)

	for _, group := range []*gin.RouterGroup{server.Group(""), server.Group("/api")} {
		group.GET("/health", healthCheckHandler.HealthCheck)

		group.GET("/interest-rates", interestRateHandler.ListInterestRates)
		group.POST("/interest-rates", interestRateHandler.CreateInterestRate)
		group.PUT("/interest-rates/:id", interestRateHandler.UpdateInterestRate)
		group.DELETE("/interest-rates/:id", interestRateHandler.DeleteInterestRate)

		group.GET("/jewel-rates", jewelRateHandler.ListJewelRates)
		group.GET("/jewel-rates/:metalType", jewelRateHandler.LatestJewelRate)
		group.POST("/jewel-rates", jewelRateHandler.UpsertJewelRate)

		group.GET("/ledger", ledgerHandler.GetLedger)
	}

	return server
}
