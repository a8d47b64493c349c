package response

import (
	"encoding/json"
	"testing"
	"time"

	"repairshop/internal/domain/entities"
	"repairshop/internal/usecase"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFromOrder(t *testing.T) {
	now := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	o := entities.Order{
		Document: entities.Document{
			ID:         "id-1",
			Identifier: "ORD24010001",
			Kind:       entities.EntityKindOrder,
			Status:     entities.OrderStatusPending,
			Timeline:   []entities.TimelineEntry{{Status: entities.OrderStatusPending, Description: "Order created", Timestamp: now}},
			Payment:    entities.Payment{PaidAmount: decimal.Zero, RemainingBalance: dec("145"), Status: entities.PaymentStatusUnpaid},
			Version:    1,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		CustomerID: "cust-1",
		Items:      []entities.LineItem{{Name: "Screen", Quantity: 2, UnitPrice: dec("50"), Total: dec("100")}},
		Totals:     entities.Totals{Subtotal: dec("130"), Shipping: dec("10"), Tax: dec("5"), Total: dec("145")},
	}

	res := FromOrder(o)
	if res.Identifier != "ORD24010001" || res.Kind != "order" || res.Status != "pending" {
		t.Fatalf("unexpected header: %+v", res.DocumentResponse)
	}
	if res.Totals.Total != "145.00" || res.Totals.Discount != "0.00" {
		t.Fatalf("unexpected totals: %+v", res.Totals)
	}
	if res.Items[0].UnitPrice != "50.00" || res.Items[0].Total != "100.00" {
		t.Fatalf("unexpected items: %+v", res.Items)
	}
	if res.Payment.RemainingBalance != "145.00" || len(res.Payment.Transactions) != 0 {
		t.Fatalf("unexpected payment: %+v", res.Payment)
	}
	if res.Warranty != nil {
		t.Fatalf("expected no warranty, got %+v", res.Warranty)
	}

	b, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var body map[string]any
	_ = json.Unmarshal(b, &body)
	if body["identifier"] != "ORD24010001" {
		t.Fatalf("header fields must be inlined: %s", b)
	}
	totals, _ := body["totals"].(map[string]any)
	if totals["total"] != "145.00" {
		t.Fatalf("money must be a string: %s", b)
	}
}

func TestFromRepairJob(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	r := entities.RepairJob{
		Document: entities.Document{
			Identifier: "TH24010001",
			Kind:       entities.EntityKindRepairJob,
			Status:     entities.RepairStatusCompleted,
			Warranty:   &entities.Warranty{Duration: 90, Unit: entities.DurationUnitDays, StartDate: &start, EndDate: &end},
		},
		Device: entities.Device{Type: "phone", ReportedIssue: "cracked screen"},
		Costs:  entities.CostComponents{Labor: dec("40"), Parts: dec("60.5")},
		Totals: entities.Totals{Subtotal: dec("100.5"), Total: dec("100.5")},
	}

	res := FromRepairJob(r)
	if res.Costs.Parts != "60.50" || res.Totals.Total != "100.50" {
		t.Fatalf("unexpected money: %+v %+v", res.Costs, res.Totals)
	}
	if res.Warranty == nil || !res.Warranty.EndDate.Equal(end) || res.Warranty.Unit != "days" {
		t.Fatalf("unexpected warranty: %+v", res.Warranty)
	}
	if res.Device.ReportedIssue != "cracked screen" {
		t.Fatalf("unexpected device: %+v", res.Device)
	}
}

func TestFromChargeResult(t *testing.T) {
	res := FromChargeResult(usecase.ChargeResult{
		Kind:              entities.EntityKindOrder,
		Identifier:        "ORD24010001",
		ProviderPaymentID: "mp-1",
		ProviderStatus:    "approved",
		Amount:            dec("145"),
		Payment: entities.Payment{
			PaidAmount:   dec("145"),
			Status:       entities.PaymentStatusPaid,
			Transactions: []entities.PaymentTransaction{{ID: "tx-1", Amount: dec("145"), Method: "mercadopago:pix", Reference: "mp-1"}},
		},
	})
	if res.Amount != "145.00" || res.Payment.Status != "paid" || res.Payment.Transactions[0].Reference != "mp-1" {
		t.Fatalf("unexpected charge response: %+v", res)
	}
}
