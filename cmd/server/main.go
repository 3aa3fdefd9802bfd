package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	catalogAPI "github.com/shopledger/pos-backend/internal/catalog/api"
	catalogRepo "github.com/shopledger/pos-backend/internal/catalog/repository"
	catalogService "github.com/shopledger/pos-backend/internal/catalog/service"
	inventoryAPI "github.com/shopledger/pos-backend/internal/inventory/api"
	inventoryRepo "github.com/shopledger/pos-backend/internal/inventory/repository"
	inventoryService "github.com/shopledger/pos-backend/internal/inventory/service"
	orderAPI "github.com/shopledger/pos-backend/internal/order/api"
	orderRepo "github.com/shopledger/pos-backend/internal/order/repository"
	orderService "github.com/shopledger/pos-backend/internal/order/service"
	"github.com/shopledger/pos-backend/internal/platform/config"
	"github.com/shopledger/pos-backend/internal/platform/database"
	"github.com/shopledger/pos-backend/internal/platform/logger"
	reportAPI "github.com/shopledger/pos-backend/internal/reporting/api"
	reportRepo "github.com/shopledger/pos-backend/internal/reporting/repository"
	reportService "github.com/shopledger/pos-backend/internal/reporting/service"
	"github.com/shopledger/pos-backend/migrations"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	dbCfg := config.LoadDBConfig()
	serverCfg := config.LoadServerConfig("8080")
	auditCfg := config.LoadAuditConfig()

	logger.Info("Starting POS backend...")

	db, err := database.Connect(dbCfg.DSN)
	if err != nil {
		logger.Error("Failed to connect to database", err)
		return
	}
	defer db.Close()

	if err := migrations.AutoMigrate(db); err != nil {
		logger.Error("Failed to run migrations", err)
		return
	}

	productRepository := catalogRepo.NewPostgresProductRepository(db)
	inventoryRepository := inventoryRepo.NewPostgresInventoryRepository(db)
	orderRepository := orderRepo.NewPostgresOrderRepository(db)
	reportRepository := reportRepo.NewPostgresReportRepository(db)

	productSvc := catalogService.NewProductService(productRepository)
	inventorySvc := inventoryService.NewInventoryService(inventoryRepository)
	orderSvc := orderService.NewOrderService(orderRepository, productRepository, inventoryRepository)
	reportSvc := reportService.NewReportService(reportRepository)

	productHandler := catalogAPI.NewProductHandler(productSvc)
	inventoryHandler := inventoryAPI.NewInventoryHandler(inventorySvc)
	orderHandler := orderAPI.NewOrderHandler(orderSvc)
	reportHandler := reportAPI.NewReportHandler(reportSvc)

	if auditCfg.Enabled {
		auditor, err := inventoryService.NewConsistencyAuditor(inventoryRepository, auditCfg.CronSpec)
		if err != nil {
			logger.Error("Failed to schedule consistency audit", err)
			return
		}
		auditor.Start()
		defer auditor.Stop()
		logger.Info("Consistency audit scheduled", map[string]interface{}{"cron": auditCfg.CronSpec})
	}

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.GetEnv("CORS_ALLOW_ORIGIN", "*")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
	}))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	productHandler.RegisterRoutes(apiV1)
	inventoryHandler.RegisterRoutes(apiV1)
	orderHandler.RegisterRoutes(apiV1)
	reportHandler.RegisterRoutes(apiV1)

	logger.Info("POS backend running on port " + serverCfg.Port)
	if errSrv := router.Run(serverCfg.Port); errSrv != nil {
		logger.Error("Failed to run server", errSrv)
	}
}
