package routes

import (
	"repairshop/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathRepairJobs = "/repair-jobs"
)

func addRepairJobRoutes(rg *gin.RouterGroup, repairJobHandler *handlers.RepairJobHandler, chargeHandler *handlers.ChargeHandler) {
	jobs := rg.Group(PathRepairJobs)
	{
		jobs.POST("", repairJobHandler.CreateRepairJob)
		jobs.GET("/:identifier", repairJobHandler.GetRepairJob)
		jobs.PATCH("/:identifier/status", repairJobHandler.UpdateRepairJobStatus)
		jobs.PUT("/:identifier/costs", repairJobHandler.UpdateRepairJobCosts)
		jobs.POST("/:identifier/payments", repairJobHandler.RecordRepairJobPayment)
		jobs.PUT("/:identifier/warranty", repairJobHandler.UpdateRepairJobWarranty)
		jobs.POST("/:identifier/charges", chargeHandler.ChargeRepairJob)
	}
}
