package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"repairshop/internal/domain/entities"
	"repairshop/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrNothingToCharge                = errors.New("nothing left to charge")
	ErrChargeNotApproved              = errors.New("charge not approved by payment gateway")
	ErrChargeInProgress               = errors.New("another charge for this record is in progress")
	ErrUnsupportedKind                = errors.New("unsupported entity kind")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

const providerStatusApproved = "approved"

// ChargeResult is the outcome of an approved charge.
type ChargeResult struct {
	Kind              entities.EntityKind `json:"kind"`
	Identifier        string              `json:"identifier"`
	ProviderPaymentID string              `json:"provider_payment_id"`
	ProviderStatus    string              `json:"provider_status"`
	Amount            decimal.Decimal     `json:"amount"`
	Payment           entities.Payment    `json:"payment"`
	ProviderResponse  json.RawMessage     `json:"provider_response,omitempty"`
}

// PaymentSettings tunes how charges reach the provider.
type PaymentSettings struct {
	// MockMode approves every charge locally without calling the gateway.
	MockMode bool
	// SandboxPayerEmail fills payer.email when the caller sent no payer.
	SandboxPayerEmail string
	// Locker keeps a second charge for the same record away from the gateway
	// while one is in flight. Nil disables locking; the balance guard on the
	// record step still refuses a double recording.
	Locker interfaces.IRecordLocker
	Logger logrus.FieldLogger
}

// IPaymentUseCase charges the outstanding balance of an order or repair job
// through the payment gateway.
//
// Requested behavior:
//   - the amount always comes from the stored record, never from the payload
//   - an approved charge is recorded as a payment on the record
//   - one charge per record at a time; an approved charge whose balance moved
//     meanwhile is not recorded and comes back with the provider reference

type IPaymentUseCase interface {
	Charge(ctx context.Context, kind entities.EntityKind, identifier string, mpPayload json.RawMessage) (ChargeResult, error)
}

type PaymentUseCase struct {
	orders     IOrderUseCase
	repairJobs IRepairJobUseCase
	gateway    interfaces.IPaymentGateway
	settings   PaymentSettings
	log        logrus.FieldLogger
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(orders IOrderUseCase, repairJobs IRepairJobUseCase, gateway interfaces.IPaymentGateway, settings PaymentSettings) *PaymentUseCase {
	log := settings.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PaymentUseCase{
		orders:     orders,
		repairJobs: repairJobs,
		gateway:    gateway,
		settings:   settings,
		log:        log.WithFields(logrus.Fields{"module": "payment", "layer": "usecase"}),
	}
}

// chargeTarget is the part of a record a charge needs.
type chargeTarget struct {
	identifier string
	remaining  decimal.Decimal
}

func (u *PaymentUseCase) Charge(ctx context.Context, kind entities.EntityKind, identifier string, mpPayload json.RawMessage) (ChargeResult, error) {
	identifier = strings.TrimSpace(identifier)
	log := u.log.WithFields(logrus.Fields{"op": "charge", "kind": kind, "identifier": identifier})
	log.WithField("payload_len", len(mpPayload)).Info("charge start")

	mockMode := u.settings.MockMode
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !mockMode {
			log.Info("invalid payload (empty or not json)")
			return ChargeResult{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil && !mockMode {
		log.Error("gateway not configured")
		return ChargeResult{}, errors.New("payment gateway not configured")
	}

	if u.settings.Locker != nil {
		release, err := u.settings.Locker.TryLock(ctx, string(kind)+"#"+identifier)
		if errors.Is(err, interfaces.ErrLockHeld) {
			log.Info("charge already in progress")
			return ChargeResult{}, ErrChargeInProgress
		}
		if err != nil {
			log.WithError(err).Error("failed taking charge lock")
			return ChargeResult{}, err
		}
		defer release()
	}

	target, err := u.loadTarget(ctx, kind, identifier)
	if err != nil {
		log.WithError(err).Info("failed loading record")
		return ChargeResult{}, err
	}
	if !target.remaining.IsPositive() {
		log.Info("record already settled")
		return ChargeResult{}, ErrNothingToCharge
	}
	log = log.WithField("amount", target.remaining.StringFixed(2))

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		if !mockMode {
			return ChargeResult{}, ErrInvalidMPPayload
		}
		reqMap = map[string]any{}
	}
	if !mockMode && !hasNonEmptyString(reqMap, "payment_method_id") {
		log.Info("missing payment_method_id")
		return ChargeResult{}, ErrInvalidMPPayload
	}
	if !mockMode {
		ensurePayerDefaults(reqMap, u.settings.SandboxPayerEmail)
		if !hasPayer(reqMap) {
			log.Info("missing/invalid payer")
			return ChargeResult{}, ErrInvalidMPPayload
		}
	}

	// The stored record is the source of truth for amount and reference.
	reqMap["external_reference"] = target.identifier
	reqMap["transaction_amount"] = json.Number(target.remaining.StringFixed(2))
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("%s %s", describeKind(kind), target.identifier)
	}
	payload, err := json.Marshal(reqMap)
	if err != nil {
		return ChargeResult{}, err
	}

	var providerID, providerStatus string
	var providerResp json.RawMessage
	if mockMode {
		log.Info("mock mode enabled; skipping external payment gateway")
		providerID, providerStatus, providerResp, err = mockApproval(reqMap)
		if err != nil {
			return ChargeResult{}, err
		}
	} else {
		log.Info("calling payment gateway")
		providerID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, payload)
		if err != nil {
			log.WithError(err).Warn("payment gateway failed")
			return ChargeResult{}, mapGatewayError(err)
		}
	}
	log = log.WithFields(logrus.Fields{"provider_payment_id": providerID, "provider_status": providerStatus})

	result := ChargeResult{
		Kind:              kind,
		Identifier:        target.identifier,
		ProviderPaymentID: providerID,
		ProviderStatus:    providerStatus,
		Amount:            target.remaining,
		ProviderResponse:  providerResp,
	}
	if providerStatus != providerStatusApproved {
		log.Info("charge not approved; nothing recorded")
		return result, fmt.Errorf("%w: provider status %q", ErrChargeNotApproved, providerStatus)
	}

	method := "mercadopago"
	if pm, ok := reqMap["payment_method_id"].(string); ok && strings.TrimSpace(pm) != "" {
		method += ":" + strings.TrimSpace(pm)
	}
	expected := target.remaining
	in := PaymentInput{
		Amount:            target.remaining,
		Method:            method,
		Reference:         providerID,
		ActorID:           "payment-gateway",
		ExpectedRemaining: &expected,
	}
	payment, err := u.recordPayment(ctx, kind, target.identifier, in)
	if err != nil {
		// The provider already approved; the reference lets staff reconcile by hand.
		log.WithError(err).Error("approved charge could not be recorded")
		return result, err
	}
	result.Payment = payment
	log.WithField("payment_status", payment.Status).Info("charge success")
	return result, nil
}

func (u *PaymentUseCase) loadTarget(ctx context.Context, kind entities.EntityKind, identifier string) (chargeTarget, error) {
	switch kind {
	case entities.EntityKindOrder:
		if u.orders == nil {
			return chargeTarget{}, errors.New("order use case not configured")
		}
		o, err := u.orders.GetByIdentifier(ctx, identifier)
		if err != nil {
			return chargeTarget{}, err
		}
		return chargeTarget{identifier: o.Identifier, remaining: o.Payment.RemainingBalance}, nil
	case entities.EntityKindRepairJob:
		if u.repairJobs == nil {
			return chargeTarget{}, errors.New("repair job use case not configured")
		}
		r, err := u.repairJobs.GetByIdentifier(ctx, identifier)
		if err != nil {
			return chargeTarget{}, err
		}
		return chargeTarget{identifier: r.Identifier, remaining: r.Payment.RemainingBalance}, nil
	}
	return chargeTarget{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
}

func (u *PaymentUseCase) recordPayment(ctx context.Context, kind entities.EntityKind, identifier string, in PaymentInput) (entities.Payment, error) {
	if kind == entities.EntityKindOrder {
		o, err := u.orders.RecordPayment(ctx, identifier, in)
		return o.Payment, err
	}
	r, err := u.repairJobs.RecordPayment(ctx, identifier, in)
	return r.Payment, err
}

func describeKind(kind entities.EntityKind) string {
	if kind == entities.EntityKindRepairJob {
		return "Repair job"
	}
	return "Order"
}

func mockApproval(reqMap map[string]any) (string, string, json.RawMessage, error) {
	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	resp := make(map[string]any, len(reqMap)+5)
	for k, v := range reqMap {
		resp[k] = v
	}
	resp["id"] = id
	resp["status"] = providerStatusApproved
	resp["status_detail"] = "accredited"
	resp["date_created"] = now
	resp["date_approved"] = now
	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	return id, providerStatusApproved, b, nil
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func ensurePayerDefaults(m map[string]any, sandboxEmail string) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	// Either payer.id or payer.email identifies the payer; fill email only
	// when both are missing.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") && strings.TrimSpace(sandboxEmail) != "" {
		payer["email"] = strings.TrimSpace(sandboxEmail)
	}
}

func mapGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	}
	return err
}
