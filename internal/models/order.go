package models

import "math"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending: {OrderPaid, OrderCancelled},
	OrderPaid:    {OrderShipped, OrderCancelled},
	OrderShipped: {OrderDelivered},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return canTransition(orderTransitions, s, next)
}

type OrderItem struct {
	ProductName string  `json:"product_name" bson:"product_name" validate:"required,max=200"`
	Quantity    int     `json:"quantity" bson:"quantity" validate:"required,min=1,max=1000"`
	UnitPrice   float64 `json:"unit_price" bson:"unit_price" validate:"gte=0"`
}

type Order struct {
	Base            `bson:",inline"`
	UserID          ID          `json:"user_id" bson:"user_id" validate:"required"`
	Items           []OrderItem `json:"items" bson:"items" validate:"required,min=1,dive"`
	Total           float64     `json:"total" bson:"total"`
	ShippingAddress string      `json:"shipping_address,omitempty" bson:"shipping_address,omitempty" validate:"omitempty,max=500"`
	Notes           string      `json:"notes,omitempty" bson:"notes,omitempty" validate:"omitempty,max=2000"`
	Status          OrderStatus `json:"status" bson:"status"`
}

type OrderUpdate struct {
	Items           *[]OrderItem `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	ShippingAddress *string      `json:"shipping_address,omitempty" validate:"omitempty,max=500"`
	Notes           *string      `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type OrderFilter struct {
	UserID *ID
	Status OrderStatus
}

// OrderTotal sums quantity * unit price and rounds to cents.
func OrderTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return math.Round(total*100) / 100
}

func canTransition[S comparable](table map[S][]S, from, to S) bool {
	for _, allowed := range table[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}
