package response

import (
	"encoding/json"

	"repairshop/internal/usecase"
)

type ChargeResponse struct {
	Kind              string          `json:"kind"`
	Identifier        string          `json:"identifier"`
	ProviderPaymentID string          `json:"provider_payment_id"`
	ProviderStatus    string          `json:"provider_status"`
	Amount            string          `json:"amount"`
	Payment           PaymentResponse `json:"payment"`
	ProviderResponse  json.RawMessage `json:"provider_response,omitempty"`
}

func FromChargeResult(r usecase.ChargeResult) ChargeResponse {
	return ChargeResponse{
		Kind:              string(r.Kind),
		Identifier:        r.Identifier,
		ProviderPaymentID: r.ProviderPaymentID,
		ProviderStatus:    r.ProviderStatus,
		Amount:            money(r.Amount),
		Payment:           FromPayment(r.Payment),
		ProviderResponse:  r.ProviderResponse,
	}
}
