package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/models"
)

func GetTodaysOrders(c *gin.Context) {
	orders, err := roster.TodaysOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func GetMorningOrders(c *gin.Context) {
	shiftRoster(c, models.ShiftMorning)
}

func GetEveningOrders(c *gin.Context) {
	shiftRoster(c, models.ShiftEvening)
}

func shiftRoster(c *gin.Context, shift models.Shift) {
	result, err := roster.ShiftRoster(c.Request.Context(), c.Query("date"), shift)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": result.Users, "grandTotals": result.GrandTotals, "date": result.Date, "shift": result.Shift})
}
