package response

import "repairshop/internal/domain/entities"

type LineItemResponse struct {
	ProductID string `json:"product_id,omitempty"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

type OrderResponse struct {
	DocumentResponse

	CustomerID      string             `json:"customer_id"`
	Items           []LineItemResponse `json:"items"`
	Totals          TotalsResponse     `json:"totals"`
	ShippingAddress string             `json:"shipping_address,omitempty"`
	PaymentMethod   string             `json:"payment_method,omitempty"`
	Notes           string             `json:"notes,omitempty"`
}

func FromOrder(o entities.Order) OrderResponse {
	res := OrderResponse{
		DocumentResponse: FromDocument(o.Document),
		CustomerID:       o.CustomerID,
		Items:            make([]LineItemResponse, 0, len(o.Items)),
		Totals:           FromTotals(o.Totals),
		ShippingAddress:  o.ShippingAddress,
		PaymentMethod:    o.PaymentMethod,
		Notes:            o.Notes,
	}
	for _, li := range o.Items {
		res.Items = append(res.Items, LineItemResponse{
			ProductID: li.ProductID,
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: money(li.UnitPrice),
			Total:     money(li.Total),
		})
	}
	return res
}
