package lifecycle

import (
	"fmt"

	"repairshop/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// ComputeOrderTotals recomputes every line total and the order totals.
//
// The input slice is not modified; the returned slice carries the derived
// line totals. Negative amounts and quantities below 1 are rejected, never
// clamped.
func ComputeOrderTotals(items []entities.LineItem, adj entities.OrderAdjustments) ([]entities.LineItem, entities.Totals, error) {
	if len(items) == 0 {
		return nil, entities.Totals{}, fmt.Errorf("%w: order has no line items", ErrInvalidAmount)
	}
	if err := nonNegative("shipping", adj.Shipping); err != nil {
		return nil, entities.Totals{}, err
	}
	if err := nonNegative("tax", adj.Tax); err != nil {
		return nil, entities.Totals{}, err
	}
	if err := nonNegative("discount", adj.Discount); err != nil {
		return nil, entities.Totals{}, err
	}

	out := make([]entities.LineItem, len(items))
	subtotal := decimal.Zero
	for i, it := range items {
		if it.Quantity < 1 {
			return nil, entities.Totals{}, fmt.Errorf("%w: item[%d] quantity %d", ErrInvalidAmount, i, it.Quantity)
		}
		if err := nonNegative(fmt.Sprintf("item[%d] unit_price", i), it.UnitPrice); err != nil {
			return nil, entities.Totals{}, err
		}
		it.Total = it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
		subtotal = subtotal.Add(it.Total)
		out[i] = it
	}

	totals, err := assemble(subtotal, adj.Shipping, adj.Tax, adj.Discount)
	if err != nil {
		return nil, entities.Totals{}, err
	}
	return out, totals, nil
}

// ComputeRepairTotals derives totals from repair cost components:
// Total = Labor + Parts + Tax - Discount.
func ComputeRepairTotals(c entities.CostComponents) (entities.Totals, error) {
	fields := []struct {
		name string
		v    decimal.Decimal
	}{{"labor", c.Labor}, {"parts", c.Parts}, {"tax", c.Tax}, {"discount", c.Discount}}
	for _, f := range fields {
		if err := nonNegative(f.name, f.v); err != nil {
			return entities.Totals{}, err
		}
	}
	return assemble(c.Labor.Add(c.Parts), decimal.Zero, c.Tax, c.Discount)
}

func assemble(subtotal, shipping, tax, discount decimal.Decimal) (entities.Totals, error) {
	gross := subtotal.Add(shipping).Add(tax)
	if discount.GreaterThan(gross) {
		return entities.Totals{}, fmt.Errorf("%w: discount %s exceeds %s", ErrInvalidAmount, discount.StringFixed(2), gross.StringFixed(2))
	}
	return entities.Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    gross.Sub(discount),
	}, nil
}

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: %s is negative (%s)", ErrInvalidAmount, field, v.String())
	}
	return nil
}
