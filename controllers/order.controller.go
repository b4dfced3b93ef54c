package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/models"
	"storefront-backend/store"
)

// GetOrders menangani pengambilan pesanan, opsional difilter dengan ?status=.
func (ctrl *Controller) GetOrders(c *gin.Context) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	if err := ctrl.Orders.Fetch(ctx); err != nil {
		respondError(c, err, store.Message(err, "Order not found"), "Order not found")
		return
	}

	orderList := ctrl.Orders.Filter(c.Query("status"))
	c.JSON(http.StatusOK, gin.H{"orders": orderList, "summary": models.Summarize(orderList)})
}

// UpdateOrderStatus menangani perubahan status pesanan.
func (ctrl *Controller) UpdateOrderStatus(c *gin.Context) {
	ctx, cancel := ctrl.timeout(c)
	defer cancel()

	id, ok := objectID(c, "Invalid order ID")
	if !ok {
		return
	}

	var req models.StatusRequest
	if !bindValid(c, &req) {
		return
	}

	if err := ctrl.Orders.UpdateStatus(ctx, id, req.Status); err != nil {
		respondError(c, err, store.Message(err, "Order not found"), "Order not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
}
