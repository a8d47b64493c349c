package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is derived from the relationship between the paid amount and
// the record total. It is never set directly.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// PaymentTransaction is a single recorded payment. Transactions are only ever
// appended, so PaidAmount never decreases.
type PaymentTransaction struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
	RecordedBy string          `json:"recorded_by,omitempty"`
}

// Payment tracks what has been paid against a record.
type Payment struct {
	PaidAmount       decimal.Decimal      `json:"paid_amount"`
	RemainingBalance decimal.Decimal      `json:"remaining_balance"`
	Status           PaymentStatus        `json:"status"`
	Transactions     []PaymentTransaction `json:"transactions"`
}

func (p Payment) Clone() Payment {
	out := p
	if p.Transactions != nil {
		out.Transactions = append([]PaymentTransaction(nil), p.Transactions...)
	}
	return out
}
