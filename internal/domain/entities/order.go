package entities

import "github.com/shopspring/decimal"

// Order statuses. The happy path is pending → confirmed → processing →
// shipped → delivered; cancelled, refunded and returned are side exits.
const (
	OrderStatusPending    Status = "pending"
	OrderStatusConfirmed  Status = "confirmed"
	OrderStatusProcessing Status = "processing"
	OrderStatusShipped    Status = "shipped"
	OrderStatusDelivered  Status = "delivered"
	OrderStatusCancelled  Status = "cancelled"
	OrderStatusRefunded   Status = "refunded"
	OrderStatusReturned   Status = "returned"
)

// LineItem is one costed line of an order. Total is derived from
// Quantity × UnitPrice and is overwritten whenever totals are recomputed.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// OrderAdjustments are the caller-supplied amounts applied on top of the
// line-item subtotal.
type OrderAdjustments struct {
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
}

// Totals are always derived: Total = Subtotal + Shipping + Tax - Discount.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Order is a retail sale tracked through fulfilment.
type Order struct {
	Document

	CustomerID      string           `json:"customer_id"`
	Items           []LineItem       `json:"items"`
	Adjustments     OrderAdjustments `json:"adjustments"`
	Totals          Totals           `json:"totals"`
	ShippingAddress string           `json:"shipping_address,omitempty"`
	PaymentMethod   string           `json:"payment_method,omitempty"`
	Notes           string           `json:"notes,omitempty"`
}

func (o Order) Clone() Order {
	out := o
	out.Document = o.Document.Clone()
	if o.Items != nil {
		out.Items = append([]LineItem(nil), o.Items...)
	}
	return out
}
