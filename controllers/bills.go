package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/services"
)

var (
	billing *services.BillingService
	roster  *services.RosterService
)

// Init wires the services the handlers call. Handlers stay package
// functions so the route table reads like a plain list.
func Init(b *services.BillingService, r *services.RosterService) {
	billing = b
	roster = r
}

func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, services.ErrBillNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Bill not found"})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}

// GetUserMonthlyBill recomputes one user's bill for a month and returns
// it with the itemized daily orders.
func GetUserMonthlyBill(c *gin.Context) {
	result, err := billing.UserMonthBill(c.Request.Context(), c.Param("userId"), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bill": result.Bill, "dailyOrders": result.DailyOrders})
}

// GetMonthlyBills recomputes every user's bill for a month. A month
// with no ordered rows returns an empty array.
func GetMonthlyBills(c *gin.Context) {
	entries, err := billing.MonthBills(c.Request.Context(), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type updateBillStatusRequest struct {
	Status string `json:"status"`
}

func UpdateBillStatus(c *gin.Context) {
	var req updateBillStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	bill, err := billing.UpdateBillStatus(c.Request.Context(), c.Param("billId"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated", "bill": bill})
}

func GetMonthlySummary(c *gin.Context) {
	summary, err := billing.MonthlySummary(c.Request.Context(), c.Param("month"))
	if errors.Is(err, services.ErrNoBills) {
		c.JSON(http.StatusOK, gin.H{"message": "No bills this month"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
