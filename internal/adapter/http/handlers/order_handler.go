package handlers

import (
	"net/http"

	"repairshop/internal/adapter/http/dto/request"
	"repairshop/internal/adapter/http/dto/response"
	"repairshop/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// OrderHandler handles HTTP requests for orders.

type OrderHandler struct {
	usecase usecase.IOrderUseCase
	log     logrus.FieldLogger
}

func NewOrderHandler(uc usecase.IOrderUseCase, log logrus.FieldLogger) *OrderHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &OrderHandler{usecase: uc, log: log.WithFields(logrus.Fields{"module": "order", "layer": "handler"})}
}

// CreateOrder godoc
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        order  body      request.CreateOrderRequest  true  "Order"
// @Success      201    {object}  response.OrderResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      503    {object}  pkg.HTTPError
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.WithError(err).Info("create invalid payload")
		writeError(c, errInvalidRequest)
		return
	}
	items, err := payload.ResolveItems()
	if err != nil {
		writeError(c, mapLifecycleError(err))
		return
	}
	adj, err := payload.ResolveAdjustments()
	if err != nil {
		writeError(c, mapLifecycleError(err))
		return
	}

	o, err := h.usecase.Create(c.Request.Context(), usecase.OrderDraft{
		CustomerID:      payload.CustomerID,
		Items:           items,
		Adjustments:     adj,
		ShippingAddress: payload.ShippingAddress,
		PaymentMethod:   payload.PaymentMethod,
		Notes:           payload.Notes,
		Warranty:        payload.Warranty.ToWarranty(),
		ActorID:         payload.ActorID,
	})
	if err != nil {
		h.log.WithError(err).Info("create failed")
		writeError(c, mapLifecycleError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromOrder(o))
}

// GetOrder godoc
// @Summary      Get an order by identifier
// @Tags         orders
// @Produce      json
// @Param        identifier  path      string  true  "Order identifier (ORDyymmNNNN)"
// @Success      200         {object}  response.OrderResponse
// @Failure      400         {object}  pkg.HTTPError
// @Failure      404         {object}  pkg.HTTPError
// @Router       /orders/{identifier} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.usecase.GetByIdentifier(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		writeError(c, mapLifecycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// UpdateOrderStatus godoc
// @Summary      Move an order to a new status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        identifier  path      string                       true  "Order identifier"
// @Param        status      body      request.UpdateStatusRequest  true  "Target status"
// @Success      200         {object}  response.OrderResponse
// @Failure      409         {object}  pkg.HTTPError
// @Router       /orders/{identifier}/status [patch]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var payload request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	o, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("identifier"), payload.ResolveStatus(), payload.Description, payload.ActorID)
	if err != nil {
		h.log.WithError(err).WithField("identifier", c.Param("identifier")).Info("update status failed")
		writeError(c, mapLifecycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// UpdateOrderItems godoc
// @Summary      Replace the line items and adjustments of an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        identifier  path      string                          true  "Order identifier"
// @Param        items       body      request.UpdateLineItemsRequest  true  "Line items"
// @Success      200         {object}  response.OrderResponse
// @Failure      400         {object}  pkg.HTTPError
// @Router       /orders/{identifier}/items [put]
func (h *OrderHandler) UpdateOrderItems(c *gin.Context) {
	var payload request.UpdateLineItemsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	items, err := payload.ResolveItems()
	if err != nil {
		writeError(c, mapLifecycleError(err))
		return
	}
	adj, err := payload.ResolveAdjustments()
	if err != nil {
		writeError(c, mapLifecycleError(err))
		return
	}
	o, err := h.usecase.UpdateLineItems(c.Request.Context(), c.Param("identifier"), items, adj)
	if err != nil {
		writeError(c, mapLifecycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// RecordOrderPayment godoc
// @Summary      Record a payment received for an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        identifier  path      string                        true  "Order identifier"
// @Param        payment     body      request.RecordPaymentRequest  true  "Payment"
// @Success      200         {object}  response.OrderResponse
// @Failure      400         {object}  pkg.HTTPError
// @Router       /orders/{identifier}/payments [post]
func (h *OrderHandler) RecordOrderPayment(c *gin.Context) {
	in, ok := bindPaymentInput(c)
	if !ok {
		return
	}
	o, err := h.usecase.RecordPayment(c.Request.Context(), c.Param("identifier"), in)
	if err != nil {
		writeError(c, mapLifecycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// UpdateOrderWarranty godoc
// @Summary      Change the warranty terms of an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        identifier  path      string                   true  "Order identifier"
// @Param        warranty    body      request.WarrantyRequest  true  "Warranty terms"
// @Success      200         {object}  response.OrderResponse
// @Failure      400         {object}  pkg.HTTPError
// @Router       /orders/{identifier}/warranty [put]
func (h *OrderHandler) UpdateOrderWarranty(c *gin.Context) {
	var payload request.WarrantyRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}
	w := payload.ToWarranty()
	o, err := h.usecase.UpdateWarrantyTerms(c.Request.Context(), c.Param("identifier"), w.Duration, w.Unit)
	if err != nil {
		writeError(c, mapLifecycleError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// bindPaymentInput writes the error response itself when it returns false.
func bindPaymentInput(c *gin.Context) (usecase.PaymentInput, bool) {
	var payload request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return usecase.PaymentInput{}, false
	}
	amount, err := payload.ResolveAmount()
	if err != nil {
		writeError(c, mapLifecycleError(err))
		return usecase.PaymentInput{}, false
	}
	return usecase.PaymentInput{
		Amount:    amount,
		Method:    payload.Method,
		Reference: payload.Reference,
		ActorID:   payload.ActorID,
	}, true
}
