package httpserver

import (
	"log"
	"net/http"

	ordersvc "russo-backend/internal/service/order"

	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func createOrderHandler(svc *ordersvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		order, err := svc.PlaceOrder(c.Request.Context(), currentUser(c).ID, req.ShippingAddress, req.PaymentMethod)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"orderId":     order.ID,
			"orderNumber": order.OrderNumber,
			"total":       order.Total,
		})
	}
}

func listOrdersHandler(svc *ordersvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func getOrderHandler(svc *ordersvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), currentUser(c).ID, c.Param("orderId"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

func updateOrderStatusHandler(svc *ordersvc.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := svc.UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status); err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "status updated"})
	}
}
