package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-backend/countdown"
)

// ProductCountdown mengirim sisa waktu diskon sebagai server-sent events
// sampai diskon berakhir atau klien memutus koneksi.
func (ctrl *Controller) ProductCountdown(c *gin.Context) {
	product, ok := ctrl.findProduct(c)
	if !ok {
		return
	}
	if product.SalePrice == nil || product.SaleEndsAt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product is not on sale"})
		return
	}

	interval := ctrl.TickInterval
	if interval <= 0 {
		interval = time.Second
	}

	ctx := c.Request.Context()
	states := make(chan countdown.State, 1)
	quit := make(chan struct{})

	timer := countdown.Start(ctx, *product.SaleEndsAt, interval, func(s countdown.State) {
		select {
		case states <- s:
		case <-quit:
		case <-ctx.Done():
		}
	})
	defer timer.Stop()
	defer close(quit)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	for {
		select {
		case <-ctx.Done():
			return
		case s := <-states:
			c.SSEvent("countdown", s)
			c.Writer.Flush()
			if s.Expired {
				return
			}
		}
	}
}
