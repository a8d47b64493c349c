package handlers

import (
	"errors"
	"net/http"

	"repairshop/internal/adapter/http/dto/request"
	"repairshop/internal/domain/lifecycle"
	"repairshop/internal/usecase"
	"repairshop/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// mapLifecycleError translates engine and store errors for orders and repair jobs.
func mapLifecycleError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, request.ErrInvalidMoney):
		return pkg.NewDomainErrorSimple("INVALID_AMOUNT", "Amounts must be decimal strings", http.StatusBadRequest)
	case errors.Is(err, lifecycle.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_AMOUNT", "Invalid amount", http.StatusBadRequest)
	case errors.Is(err, lifecycle.ErrMalformedIdentifier):
		return pkg.NewDomainErrorSimple("MALFORMED_IDENTIFIER", "Malformed identifier", http.StatusBadRequest)
	case errors.Is(err, lifecycle.ErrInvalidWarranty):
		return pkg.NewDomainErrorSimple("INVALID_WARRANTY", "Invalid warranty terms", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCustomerID), errors.Is(err, usecase.ErrInvalidDevice):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRepairJobNotFound):
		return pkg.NewDomainErrorSimple("REPAIR_JOB_NOT_FOUND", "Repair job not found", http.StatusNotFound)
	case errors.Is(err, lifecycle.ErrIllegalTransition):
		return pkg.NewDomainErrorSimple("ILLEGAL_TRANSITION", "Status change not allowed", http.StatusConflict)
	case errors.Is(err, lifecycle.ErrConcurrentModification):
		return pkg.NewDomainErrorSimple("CONCURRENT_MODIFICATION", "Record was modified concurrently; reload and retry", http.StatusConflict)
	case errors.Is(err, lifecycle.ErrAllocationExhausted), errors.Is(err, lifecycle.ErrSequenceOverflow):
		return pkg.NewDomainError("IDENTIFIER_UNAVAILABLE", "No identifier could be issued", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// mapChargeError handles the payment errors first and falls back to the
// lifecycle mapping for load failures.
func mapChargeError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrChargeInProgress):
		return pkg.NewDomainErrorSimple("CHARGE_IN_PROGRESS", "Another charge for this record is in progress", http.StatusConflict)
	case errors.Is(err, usecase.ErrNothingToCharge):
		return pkg.NewDomainErrorSimple("NOTHING_TO_CHARGE", "Nothing left to charge", http.StatusConflict)
	case errors.Is(err, usecase.ErrChargeNotApproved):
		return pkg.NewDomainErrorSimple("CHARGE_NOT_APPROVED", "Charge not approved by payment provider", http.StatusPaymentRequired)
	default:
		return mapLifecycleError(err)
	}
}
