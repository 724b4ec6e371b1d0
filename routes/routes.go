package routes

import (
	"github.com/gin-gonic/gin"

	"backend/controllers"
	"backend/middleware"
	"backend/services"
)

func InitializeRoutes(router *gin.Engine, billing *services.BillingService, roster *services.RosterService) {
	controllers.Init(billing, roster)

	router.GET("/healthz", controllers.Healthz)
	router.GET("/monthlybills/:userId/:month", controllers.GetUserMonthlyBill)
	router.GET("/orders/todays", controllers.GetTodaysOrders)

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware("admin"))
	{
		admin.GET("/monthlybills/:month", controllers.GetMonthlyBills)
		admin.GET("/billsummary/:month", controllers.GetMonthlySummary)
		admin.POST("/bills/:billId", controllers.UpdateBillStatus)
		admin.GET("/orders/morning", controllers.GetMorningOrders)
		admin.GET("/orders/evening", controllers.GetEveningOrders)
	}
}
