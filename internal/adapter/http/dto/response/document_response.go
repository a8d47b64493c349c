package response

import (
	"time"

	"repairshop/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Money is rendered with two decimals as a JSON string, e.g. "145.00".
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type TimelineEntryResponse struct {
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	ActorID     string    `json:"actor_id,omitempty"`
}

type WarrantyResponse struct {
	Duration  int        `json:"duration"`
	Unit      string     `json:"unit"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type PaymentTransactionResponse struct {
	ID         string    `json:"id"`
	Amount     string    `json:"amount"`
	Method     string    `json:"method"`
	Reference  string    `json:"reference,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
	RecordedBy string    `json:"recorded_by,omitempty"`
}

type PaymentResponse struct {
	PaidAmount       string                       `json:"paid_amount"`
	RemainingBalance string                       `json:"remaining_balance"`
	Status           string                       `json:"status"`
	Transactions     []PaymentTransactionResponse `json:"transactions"`
}

type TotalsResponse struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Discount string `json:"discount"`
	Total    string `json:"total"`
}

// DocumentResponse is the lifecycle header shared by orders and repair jobs.
type DocumentResponse struct {
	ID         string                  `json:"id"`
	Identifier string                  `json:"identifier"`
	Kind       string                  `json:"kind"`
	Status     string                  `json:"status"`
	Timeline   []TimelineEntryResponse `json:"timeline"`
	Warranty   *WarrantyResponse       `json:"warranty,omitempty"`
	Payment    PaymentResponse         `json:"payment"`
	Version    int64                   `json:"version"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

func FromDocument(d entities.Document) DocumentResponse {
	res := DocumentResponse{
		ID:         d.ID,
		Identifier: d.Identifier,
		Kind:       string(d.Kind),
		Status:     string(d.Status),
		Timeline:   make([]TimelineEntryResponse, 0, len(d.Timeline)),
		Payment:    FromPayment(d.Payment),
		Version:    d.Version,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
	for _, e := range d.Timeline {
		res.Timeline = append(res.Timeline, TimelineEntryResponse{
			Status:      string(e.Status),
			Description: e.Description,
			Timestamp:   e.Timestamp,
			ActorID:     e.ActorID,
		})
	}
	if w := d.Warranty; w != nil {
		res.Warranty = &WarrantyResponse{
			Duration:  w.Duration,
			Unit:      string(w.Unit),
			StartDate: w.StartDate,
			EndDate:   w.EndDate,
		}
	}
	return res
}

func FromPayment(p entities.Payment) PaymentResponse {
	res := PaymentResponse{
		PaidAmount:       money(p.PaidAmount),
		RemainingBalance: money(p.RemainingBalance),
		Status:           string(p.Status),
		Transactions:     make([]PaymentTransactionResponse, 0, len(p.Transactions)),
	}
	for _, tx := range p.Transactions {
		res.Transactions = append(res.Transactions, PaymentTransactionResponse{
			ID:         tx.ID,
			Amount:     money(tx.Amount),
			Method:     tx.Method,
			Reference:  tx.Reference,
			RecordedAt: tx.RecordedAt,
			RecordedBy: tx.RecordedBy,
		})
	}
	return res
}

func FromTotals(t entities.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal: money(t.Subtotal),
		Shipping: money(t.Shipping),
		Tax:      money(t.Tax),
		Discount: money(t.Discount),
		Total:    money(t.Total),
	}
}
