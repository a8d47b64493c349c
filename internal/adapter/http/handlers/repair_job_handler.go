package handlers

import (
	"net/http"

	"repairshop/internal/adapter/http/dto/request"
	"repairshop/internal/adapter/http/dto/response"
	"repairshop/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RepairJobHandler handles HTTP requests for repair jobs.

type RepairJobHandler struct {
	usecase usecase.IRepairJobUseCase
	log     logrus.FieldLogger
}

func NewRepairJobHandler(uc usecase.IRepairJobUseCase, log logrus.FieldLogger) *RepairJobHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RepairJobHandler{usecase: uc, log: log.WithFields(logrus.Fields{"module": "repair_job", "layer": "handler"})}
}

// CreateRepairJob godoc
// @Summary      Open a repair job
// @Tags         repair-jobs
// @Accept       json
// @Produce      json
// @Param        job  body      request.CreateRepairJobRequest  true  "Repair job"
// @Success      201  {object}  response.RepairJobResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      503  {object}  pkg.HTTPError
// @Router       /repair-jobs [post]
func (h *RepairJobHandler) CreateRepairJob(c *gin.Context) {
	var payload request.CreateRepairJobRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.WithError(err).Info("create invalid payload")
		writeError(c, errInvalidRequest)
		return
	}
	costs, err := payload.Costs.ResolveCosts()
	if err != nil {
		writeError(c, mapLifecycleError(err))
		return
	}

	r, err := h.usecase.Create(c.Request.Context(), usecase.RepairJobDraft{
		CustomerID:   payload.CustomerID,
		Device:       payload.Device.ToDevice(),
		TechnicianID: payload.TechnicianID,
		Costs:        costs,
		Notes:        payload.Notes,
		Warranty:     payload.Warranty.ToWarranty(),
		ActorID:      payload.ActorID,
	})
	if err != nil {
		h.log.WithError(err).Info("create failed")
		writeError(c, mapLifecycleError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromRepairJob(r))
}

// GetRepairJob godoc
// @Summary      Get a repair job by identifier
// @Tags         repair-jobs
// @Produce      json
// @Param        identifier  path      string  true  "Repair job identifier (THyymmNNNN)"
// @Success      200         {object}  response.RepairJobResponse
// @Failure      404         {object}  pkg.HTTPError
// @Router       /repair-jobs/{identifier} [get]
func (h *RepairJobHandler) GetRepairJob(c *gin.Context) {
	r, err := h.usecase.GetByIdentifier(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		writeError(c, mapLifecycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromRepairJob(r))
}

// UpdateRepairJobStatus godoc
// @Summary      Move a repair job to a new status
// @Tags         repair-jobs
// @Accept       json
// @Produce      json
// @Param        identifier  path      string                       true  "Repair job identifier"
// @Param        status      body      request.UpdateStatusRequest  true  "Target status"
// @Success      200         {object}  response.RepairJobResponse
// @Failure      409         {object}  pkg.HTTPError
// @Router       /repair-jobs/{identifier}/status [patch]
func (h *RepairJobHandler) UpdateRepairJobStatus(c *gin.Context) {
	var payload request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	r, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("identifier"), payload.ResolveStatus(), payload.Description, payload.ActorID)
	if err != nil {
		h.log.WithError(err).WithField("identifier", c.Param("identifier")).Info("update status failed")
		writeError(c, mapLifecycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromRepairJob(r))
}

// UpdateRepairJobCosts godoc
// @Summary      Replace the cost components of a repair job
// @Tags         repair-jobs
// @Accept       json
// @Produce      json
// @Param        identifier  path      string                true  "Repair job identifier"
// @Param        costs       body      request.CostsRequest  true  "Cost components"
// @Success      200         {object}  response.RepairJobResponse
// @Failure      400         {object}  pkg.HTTPError
// @Router       /repair-jobs/{identifier}/costs [put]
func (h *RepairJobHandler) UpdateRepairJobCosts(c *gin.Context) {
	var payload request.CostsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	costs, err := payload.ResolveCosts()
	if err != nil {
		writeError(c, mapLifecycleError(err))
		return
	}
	r, err := h.usecase.UpdateCostComponents(c.Request.Context(), c.Param("identifier"), costs)
	if err != nil {
		writeError(c, mapLifecycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromRepairJob(r))
}

// RecordRepairJobPayment godoc
// @Summary      Record a payment received for a repair job
// @Tags         repair-jobs
// @Accept       json
// @Produce      json
// @Param        identifier  path      string                        true  "Repair job identifier"
// @Param        payment     body      request.RecordPaymentRequest  true  "Payment"
// @Success      200         {object}  response.RepairJobResponse
// @Failure      400         {object}  pkg.HTTPError
// @Router       /repair-jobs/{identifier}/payments [post]
func (h *RepairJobHandler) RecordRepairJobPayment(c *gin.Context) {
	in, ok := bindPaymentInput(c)
	if !ok {
		return
	}
	r, err := h.usecase.RecordPayment(c.Request.Context(), c.Param("identifier"), in)
	if err != nil {
		writeError(c, mapLifecycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromRepairJob(r))
}

// UpdateRepairJobWarranty godoc
// @Summary      Change the warranty terms of a repair job
// @Tags         repair-jobs
// @Accept       json
// @Produce      json
// @Param        identifier  path      string                   true  "Repair job identifier"
// @Param        warranty    body      request.WarrantyRequest  true  "Warranty terms"
// @Success      200         {object}  response.RepairJobResponse
// @Failure      400         {object}  pkg.HTTPError
// @Router       /repair-jobs/{identifier}/warranty [put]
func (h *RepairJobHandler) UpdateRepairJobWarranty(c *gin.Context) {
	var payload request.WarrantyRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	w := payload.ToWarranty()
	r, err := h.usecase.UpdateWarrantyTerms(c.Request.Context(), c.Param("identifier"), w.Duration, w.Unit)
	if err != nil {
		writeError(c, mapLifecycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromRepairJob(r))
}
