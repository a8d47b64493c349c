package request

import (
	"fmt"
	"strings"

	"repairshop/internal/domain/entities"
)

type LineItemRequest struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name" binding:"required"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price" binding:"required" example:"50.00"`
}

// OrderPricing is the costed part of an order: its lines plus adjustments.
type OrderPricing struct {
	Items    []LineItemRequest `json:"items"`
	Shipping string            `json:"shipping" example:"10.00"`
	Tax      string            `json:"tax" example:"5.00"`
	Discount string            `json:"discount" example:"0.00"`
}

func (p OrderPricing) ResolveItems() ([]entities.LineItem, error) {
	items := make([]entities.LineItem, 0, len(p.Items))
	for i, it := range p.Items {
		price, err := parseMoney(fmt.Sprintf("items[%d].unit_price", i), it.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, entities.LineItem{
			ProductID: strings.TrimSpace(it.ProductID),
			Name:      strings.TrimSpace(it.Name),
			Quantity:  it.Quantity,
			UnitPrice: price,
		})
	}
	return items, nil
}

func (p OrderPricing) ResolveAdjustments() (entities.OrderAdjustments, error) {
	shipping, err := parseMoney("shipping", p.Shipping)
	if err != nil {
		return entities.OrderAdjustments{}, err
	}
	tax, err := parseMoney("tax", p.Tax)
	if err != nil {
		return entities.OrderAdjustments{}, err
	}
	discount, err := parseMoney("discount", p.Discount)
	if err != nil {
		return entities.OrderAdjustments{}, err
	}
	return entities.OrderAdjustments{Shipping: shipping, Tax: tax, Discount: discount}, nil
}

// CreateOrderRequest is the payload of POST /orders.
type CreateOrderRequest struct {
	OrderPricing

	CustomerID      string           `json:"customer_id" binding:"required"`
	ShippingAddress string           `json:"shipping_address"`
	PaymentMethod   string           `json:"payment_method"`
	Notes           string           `json:"notes"`
	Warranty        *WarrantyRequest `json:"warranty"`
	ActorID         string           `json:"actor_id"`
}

// UpdateLineItemsRequest is the payload of PUT /orders/:identifier/items.
type UpdateLineItemsRequest struct {
	OrderPricing
}
