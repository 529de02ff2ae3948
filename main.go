package main

import (
	"log"
	"os"
	"time"

	"streaming-app/config"
	"streaming-app/database"
	billingapi "streaming-app/internal/api/billing"
	"streaming-app/internal/api/paymentwebhook"
	routes "streaming-app/internal/app/http"
	"streaming-app/internal/app/http/middleware"
	"streaming-app/internal/domain/plans"
	"streaming-app/internal/infra/midtrans"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	catalog := plans.DefaultCatalog()
	gateway := midtrans.NewSnapClient(config.MIDTRANS_SERVER_KEY, config.MIDTRANS_IS_PRODUCTION, config.APP_URL)
	billingapi.Init(catalog, gateway)
	paymentwebhook.Init(catalog, config.MIDTRANS_SERVER_KEY)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(middleware.MetricsMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	r.Run(":" + config.PORT)
}
