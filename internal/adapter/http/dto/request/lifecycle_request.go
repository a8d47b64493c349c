package request

import (
	"strings"

	"repairshop/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type UpdateStatusRequest struct {
	Status      string `json:"status" binding:"required" example:"confirmed"`
	Description string `json:"description"`
	ActorID     string `json:"actor_id"`
}

func (r UpdateStatusRequest) ResolveStatus() entities.Status {
	return entities.Status(strings.ToLower(strings.TrimSpace(r.Status)))
}

type RecordPaymentRequest struct {
	Amount    string `json:"amount" binding:"required" example:"50.00"`
	Method    string `json:"method" binding:"required" example:"cash"`
	Reference string `json:"reference"`
	ActorID   string `json:"actor_id"`
}

func (r RecordPaymentRequest) ResolveAmount() (decimal.Decimal, error) {
	return parseMoney("amount", r.Amount)
}

// WarrantyRequest carries warranty terms. Coverage dates are never accepted
// from callers; they are fixed when the record is completed.
type WarrantyRequest struct {
	Duration int    `json:"duration" example:"90"`
	Unit     string `json:"unit" binding:"required" example:"days"`
}

func (r *WarrantyRequest) ToWarranty() *entities.Warranty {
	if r == nil {
		return nil
	}
	return &entities.Warranty{
		Duration: r.Duration,
		Unit:     entities.DurationUnit(strings.ToLower(strings.TrimSpace(r.Unit))),
	}
}
