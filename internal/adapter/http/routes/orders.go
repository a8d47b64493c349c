package routes

import (
	"repairshop/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders = "/orders"
)

func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler, chargeHandler *handlers.ChargeHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/:identifier", orderHandler.GetOrder)
		orders.PATCH("/:identifier/status", orderHandler.UpdateOrderStatus)
		orders.PUT("/:identifier/items", orderHandler.UpdateOrderItems)
		orders.POST("/:identifier/payments", orderHandler.RecordOrderPayment)
		orders.PUT("/:identifier/warranty", orderHandler.UpdateOrderWarranty)
		orders.POST("/:identifier/charges", chargeHandler.ChargeOrder)
	}
}
