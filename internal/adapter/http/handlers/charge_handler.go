package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"repairshop/internal/adapter/http/dto/response"
	"repairshop/internal/domain/entities"
	"repairshop/internal/domain/lifecycle"
	"repairshop/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ChargeHandler charges the outstanding balance of a record through the
// payment gateway.

type ChargeHandler struct {
	usecase  usecase.IPaymentUseCase
	mockMode bool
	log      logrus.FieldLogger
}

func NewChargeHandler(uc usecase.IPaymentUseCase, mockMode bool, log logrus.FieldLogger) *ChargeHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ChargeHandler{usecase: uc, mockMode: mockMode, log: log.WithFields(logrus.Fields{"module": "payment", "layer": "handler"})}
}

// ChargeOrder godoc
// @Summary      Charge the remaining balance of an order via Mercado Pago
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        identifier  path      string  true  "Order identifier"
// @Param        payload     body      object  true  "Mercado Pago payment payload, optionally wrapped in mp_payload"
// @Success      200         {object}  response.ChargeResponse
// @Failure      400         {object}  pkg.HTTPError
// @Failure      402         {object}  pkg.HTTPError
// @Failure      409         {object}  pkg.HTTPError
// @Router       /orders/{identifier}/charges [post]
func (h *ChargeHandler) ChargeOrder(c *gin.Context) {
	h.charge(c, entities.EntityKindOrder)
}

// ChargeRepairJob godoc
// @Summary      Charge the remaining balance of a repair job via Mercado Pago
// @Tags         repair-jobs
// @Accept       json
// @Produce      json
// @Param        identifier  path      string  true  "Repair job identifier"
// @Param        payload     body      object  true  "Mercado Pago payment payload, optionally wrapped in mp_payload"
// @Success      200         {object}  response.ChargeResponse
// @Failure      400         {object}  pkg.HTTPError
// @Failure      402         {object}  pkg.HTTPError
// @Failure      409         {object}  pkg.HTTPError
// @Router       /repair-jobs/{identifier}/charges [post]
func (h *ChargeHandler) ChargeRepairJob(c *gin.Context) {
	h.charge(c, entities.EntityKindRepairJob)
}

func (h *ChargeHandler) charge(c *gin.Context, kind entities.EntityKind) {
	identifier := c.Param("identifier")
	log := h.log.WithFields(logrus.Fields{"kind": kind, "identifier": identifier})
	log.Info("charge start")

	mpPayload, err := readMPPayload(c)
	if err != nil {
		if !h.mockMode {
			log.WithError(err).Info("invalid payload")
			writeError(c, errInvalidRequest)
			return
		}
		log.WithError(err).Info("payload invalid in mock mode; fallback to empty payload")
		mpPayload = json.RawMessage("{}")
	}

	result, err := h.usecase.Charge(c.Request.Context(), kind, identifier, mpPayload)
	if err != nil && result.ProviderPaymentID != "" && errors.Is(err, lifecycle.ErrConcurrentModification) {
		// Approved by the provider but not recorded: hand back the reference.
		log.WithError(err).WithField("provider_payment_id", result.ProviderPaymentID).Error("approved charge needs reconciliation")
		appErr := mapChargeError(err)
		c.JSON(appErr.HTTPStatus, gin.H{
			"code":                appErr.Code,
			"message":             appErr.Message,
			"provider_payment_id": result.ProviderPaymentID,
		})
		return
	}
	if err != nil {
		log.WithError(err).Info("charge failed")
		writeError(c, mapChargeError(err))
		return
	}
	log.WithFields(logrus.Fields{"provider_payment_id": result.ProviderPaymentID, "payment_status": result.Payment.Status}).Info("charge success")

	c.JSON(http.StatusOK, response.FromChargeResult(result))
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}
