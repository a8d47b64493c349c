package repository

import (
	"time"

	"repairshop/internal/domain/entities"
	"repairshop/internal/domain/lifecycle"

	"github.com/shopspring/decimal"
)

// Money is stored as decimal strings and instants as RFC3339Nano strings so
// nothing goes through float64 on the way to DynamoDB.

type timelineAttr struct {
	Status      string `dynamodbav:"status"`
	Description string `dynamodbav:"description"`
	Timestamp   string `dynamodbav:"timestamp"`
	ActorID     string `dynamodbav:"actor_id,omitempty"`
}

type warrantyAttr struct {
	Duration  int    `dynamodbav:"duration"`
	Unit      string `dynamodbav:"unit"`
	StartDate string `dynamodbav:"start_date,omitempty"`
	EndDate   string `dynamodbav:"end_date,omitempty"`
}

type transactionAttr struct {
	ID         string `dynamodbav:"id"`
	Amount     string `dynamodbav:"amount"`
	Method     string `dynamodbav:"method"`
	Reference  string `dynamodbav:"reference,omitempty"`
	RecordedAt string `dynamodbav:"recorded_at"`
	RecordedBy string `dynamodbav:"recorded_by,omitempty"`
}

type paymentAttr struct {
	PaidAmount       string            `dynamodbav:"paid_amount"`
	RemainingBalance string            `dynamodbav:"remaining_balance"`
	Status           string            `dynamodbav:"status"`
	Transactions     []transactionAttr `dynamodbav:"transactions"`
}

type totalsAttr struct {
	Subtotal string `dynamodbav:"subtotal"`
	Shipping string `dynamodbav:"shipping"`
	Tax      string `dynamodbav:"tax"`
	Discount string `dynamodbav:"discount"`
	Total    string `dynamodbav:"total"`
}

// DocumentHeader is inlined into both item types. sequence_key + sequence feed
// the sequence_key-index used to find the highest stored sequence of a month.
type DocumentHeader struct {
	Identifier  string         `dynamodbav:"identifier"`
	ID          string         `dynamodbav:"id"`
	Kind        string         `dynamodbav:"kind"`
	Status      string         `dynamodbav:"status"`
	SequenceKey string         `dynamodbav:"sequence_key"`
	Sequence    int64          `dynamodbav:"sequence"`
	Timeline    []timelineAttr `dynamodbav:"timeline"`
	Warranty    *warrantyAttr  `dynamodbav:"warranty,omitempty"`
	Payment     paymentAttr    `dynamodbav:"payment"`
	Version     int64          `dynamodbav:"version"`
	CreatedAt   string         `dynamodbav:"created_at"`
	UpdatedAt   string         `dynamodbav:"updated_at"`
}

type lineItemAttr struct {
	ProductID string `dynamodbav:"product_id"`
	Name      string `dynamodbav:"name"`
	Quantity  int64  `dynamodbav:"quantity"`
	UnitPrice string `dynamodbav:"unit_price"`
	Total     string `dynamodbav:"total"`
}

type orderItem struct {
	DocumentHeader

	CustomerID      string         `dynamodbav:"customer_id"`
	Items           []lineItemAttr `dynamodbav:"items"`
	Shipping        string         `dynamodbav:"adj_shipping"`
	Tax             string         `dynamodbav:"adj_tax"`
	Discount        string         `dynamodbav:"adj_discount"`
	Totals          totalsAttr     `dynamodbav:"totals"`
	ShippingAddress string         `dynamodbav:"shipping_address,omitempty"`
	PaymentMethod   string         `dynamodbav:"payment_method,omitempty"`
	Notes           string         `dynamodbav:"notes,omitempty"`
}

type deviceAttr struct {
	Type          string `dynamodbav:"type"`
	Brand         string `dynamodbav:"brand,omitempty"`
	Model         string `dynamodbav:"model,omitempty"`
	SerialNumber  string `dynamodbav:"serial_number,omitempty"`
	ReportedIssue string `dynamodbav:"reported_issue"`
}

type repairJobItem struct {
	DocumentHeader

	CustomerID   string     `dynamodbav:"customer_id"`
	Device       deviceAttr `dynamodbav:"device"`
	TechnicianID string     `dynamodbav:"technician_id,omitempty"`
	Labor        string     `dynamodbav:"cost_labor"`
	Parts        string     `dynamodbav:"cost_parts"`
	Tax          string     `dynamodbav:"cost_tax"`
	Discount     string     `dynamodbav:"cost_discount"`
	Totals       totalsAttr `dynamodbav:"totals"`
	Diagnosis    string     `dynamodbav:"diagnosis,omitempty"`
	Notes        string     `dynamodbav:"notes,omitempty"`
}

func toDocumentAttrs(d entities.Document) DocumentHeader {
	it := DocumentHeader{
		Identifier: d.Identifier,
		ID:         d.ID,
		Kind:       string(d.Kind),
		Status:     string(d.Status),
		Version:    d.Version,
		CreatedAt:  formatTime(d.CreatedAt),
		UpdatedAt:  formatTime(d.UpdatedAt),
		Payment: paymentAttr{
			PaidAmount:       d.Payment.PaidAmount.String(),
			RemainingBalance: d.Payment.RemainingBalance.String(),
			Status:           string(d.Payment.Status),
			Transactions:     make([]transactionAttr, 0, len(d.Payment.Transactions)),
		},
		Timeline: make([]timelineAttr, 0, len(d.Timeline)),
	}
	if id, err := lifecycle.ParseIdentifier(d.Identifier); err == nil {
		it.SequenceKey = lifecycle.SequenceKey{Kind: d.Kind, Year2: id.Year2, Month2: id.Month2}.String()
		it.Sequence = id.Sequence
	}
	for _, e := range d.Timeline {
		it.Timeline = append(it.Timeline, timelineAttr{
			Status:      string(e.Status),
			Description: e.Description,
			Timestamp:   formatTime(e.Timestamp),
			ActorID:     e.ActorID,
		})
	}
	for _, tx := range d.Payment.Transactions {
		it.Payment.Transactions = append(it.Payment.Transactions, transactionAttr{
			ID:         tx.ID,
			Amount:     tx.Amount.String(),
			Method:     tx.Method,
			Reference:  tx.Reference,
			RecordedAt: formatTime(tx.RecordedAt),
			RecordedBy: tx.RecordedBy,
		})
	}
	if w := d.Warranty; w != nil {
		it.Warranty = &warrantyAttr{
			Duration:  w.Duration,
			Unit:      string(w.Unit),
			StartDate: formatOptionalTime(w.StartDate),
			EndDate:   formatOptionalTime(w.EndDate),
		}
	}
	return it
}

func fromDocumentAttrs(it DocumentHeader) entities.Document {
	d := entities.Document{
		ID:         it.ID,
		Identifier: it.Identifier,
		Kind:       entities.EntityKind(it.Kind),
		Status:     entities.Status(it.Status),
		Version:    it.Version,
		CreatedAt:  parseTime(it.CreatedAt),
		UpdatedAt:  parseTime(it.UpdatedAt),
		Payment: entities.Payment{
			PaidAmount:       parseDecimal(it.Payment.PaidAmount),
			RemainingBalance: parseDecimal(it.Payment.RemainingBalance),
			Status:           entities.PaymentStatus(it.Payment.Status),
		},
	}
	for _, e := range it.Timeline {
		d.Timeline = append(d.Timeline, entities.TimelineEntry{
			Status:      entities.Status(e.Status),
			Description: e.Description,
			Timestamp:   parseTime(e.Timestamp),
			ActorID:     e.ActorID,
		})
	}
	for _, tx := range it.Payment.Transactions {
		d.Payment.Transactions = append(d.Payment.Transactions, entities.PaymentTransaction{
			ID:         tx.ID,
			Amount:     parseDecimal(tx.Amount),
			Method:     tx.Method,
			Reference:  tx.Reference,
			RecordedAt: parseTime(tx.RecordedAt),
			RecordedBy: tx.RecordedBy,
		})
	}
	if w := it.Warranty; w != nil {
		d.Warranty = &entities.Warranty{
			Duration:  w.Duration,
			Unit:      entities.DurationUnit(w.Unit),
			StartDate: parseOptionalTime(w.StartDate),
			EndDate:   parseOptionalTime(w.EndDate),
		}
	}
	return d
}

func toTotalsAttr(t entities.Totals) totalsAttr {
	return totalsAttr{
		Subtotal: t.Subtotal.String(),
		Shipping: t.Shipping.String(),
		Tax:      t.Tax.String(),
		Discount: t.Discount.String(),
		Total:    t.Total.String(),
	}
}

func fromTotalsAttr(t totalsAttr) entities.Totals {
	return entities.Totals{
		Subtotal: parseDecimal(t.Subtotal),
		Shipping: parseDecimal(t.Shipping),
		Tax:      parseDecimal(t.Tax),
		Discount: parseDecimal(t.Discount),
		Total:    parseDecimal(t.Total),
	}
}

func toOrderItem(o entities.Order) orderItem {
	it := orderItem{
		DocumentHeader:   toDocumentAttrs(o.Document),
		CustomerID:      o.CustomerID,
		Items:           make([]lineItemAttr, 0, len(o.Items)),
		Shipping:        o.Adjustments.Shipping.String(),
		Tax:             o.Adjustments.Tax.String(),
		Discount:        o.Adjustments.Discount.String(),
		Totals:          toTotalsAttr(o.Totals),
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		Notes:           o.Notes,
	}
	for _, li := range o.Items {
		it.Items = append(it.Items, lineItemAttr{
			ProductID: li.ProductID,
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice.String(),
			Total:     li.Total.String(),
		})
	}
	return it
}

func fromOrderItem(it orderItem) entities.Order {
	o := entities.Order{
		Document:   fromDocumentAttrs(it.DocumentHeader),
		CustomerID: it.CustomerID,
		Adjustments: entities.OrderAdjustments{
			Shipping: parseDecimal(it.Shipping),
			Tax:      parseDecimal(it.Tax),
			Discount: parseDecimal(it.Discount),
		},
		Totals:          fromTotalsAttr(it.Totals),
		ShippingAddress: it.ShippingAddress,
		PaymentMethod:   it.PaymentMethod,
		Notes:           it.Notes,
	}
	for _, li := range it.Items {
		o.Items = append(o.Items, entities.LineItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: parseDecimal(li.UnitPrice),
			Total:     parseDecimal(li.Total),
		})
	}
	return o
}

func toRepairJobItem(r entities.RepairJob) repairJobItem {
	return repairJobItem{
		DocumentHeader: toDocumentAttrs(r.Document),
		CustomerID:    r.CustomerID,
		Device: deviceAttr{
			Type:          r.Device.Type,
			Brand:         r.Device.Brand,
			Model:         r.Device.Model,
			SerialNumber:  r.Device.SerialNumber,
			ReportedIssue: r.Device.ReportedIssue,
		},
		TechnicianID: r.TechnicianID,
		Labor:        r.Costs.Labor.String(),
		Parts:        r.Costs.Parts.String(),
		Tax:          r.Costs.Tax.String(),
		Discount:     r.Costs.Discount.String(),
		Totals:       toTotalsAttr(r.Totals),
		Diagnosis:    r.Diagnosis,
		Notes:        r.Notes,
	}
}

func fromRepairJobItem(it repairJobItem) entities.RepairJob {
	return entities.RepairJob{
		Document:   fromDocumentAttrs(it.DocumentHeader),
		CustomerID: it.CustomerID,
		Device: entities.Device{
			Type:          it.Device.Type,
			Brand:         it.Device.Brand,
			Model:         it.Device.Model,
			SerialNumber:  it.Device.SerialNumber,
			ReportedIssue: it.Device.ReportedIssue,
		},
		TechnicianID: it.TechnicianID,
		Costs: entities.CostComponents{
			Labor:    parseDecimal(it.Labor),
			Parts:    parseDecimal(it.Parts),
			Tax:      parseDecimal(it.Tax),
			Discount: parseDecimal(it.Discount),
		},
		Totals:    fromTotalsAttr(it.Totals),
		Diagnosis: it.Diagnosis,
		Notes:     it.Notes,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func parseOptionalTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseTime(s)
	return &t
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
