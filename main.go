package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"backend/config"
	"backend/middleware"
	"backend/routes"
	"backend/services"
	"backend/store"
	"backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	utils.InitJWT(settings.JWTSecret)

	gin.SetMode(gin.ReleaseMode)
	log.Printf("Running in %s mode", gin.Mode())

	r := gin.Default()

	middleware.InitMetrics()
	r.Use(middleware.PrometheusMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://prakrtifarms.vercel.app"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	config.ConnectDatabase(settings)

	users := store.NewUserDirectory(config.UserCollection)
	orders := store.NewDailyOrderStore(config.DailyOrderCollection)
	bills := store.NewBillStore(config.BillCollection)

	billing := services.NewBillingService(users, orders, bills, settings)
	roster := services.NewRosterService(users, orders, settings)
	generator := services.NewGenerator(users, orders, settings)

	scheduler, err := services.NewScheduler(settings, generator, billing)
	if err != nil {
		log.Fatalf("Failed to build scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	routes.InitializeRoutes(r, billing, roster)

	if err := r.Run(":" + settings.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
