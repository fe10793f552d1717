package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// statusRank orders the fulfilment pipeline. Cancelled sits outside it.
var statusRank = map[OrderStatus]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

func (s OrderStatus) Valid() bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// Terminal statuses accept no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether an order may move from one status to
// another. The pipeline is forward-only: an admin may skip steps
// (Pending → Shipped is fine) but never move an order backwards or out
// of a terminal status. Cancelled is reachable from any non-terminal
// status.
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return statusRank[to] > statusRank[from]
}

type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId,omitempty" json:"productId,omitempty"`
	Name      LocalizedString    `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Images    []string           `bson:"images" json:"images"`
}

type Order struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	User         *primitive.ObjectID `bson:"user,omitempty" json:"user,omitempty"`
	CustomerName string              `bson:"customerName" json:"customerName"`
	Items        []OrderItem         `bson:"items" json:"items"`
	Total        float64             `bson:"total" json:"total"`
	Status       OrderStatus         `bson:"status" json:"status"`
	// StripeSessionID correlates the order with a checkout session so the
	// webhook can confirm payment. Empty for orders placed without one.
	StripeSessionID string    `bson:"stripeSessionId,omitempty" json:"stripeSessionId,omitempty"`
	Date            time.Time `bson:"date" json:"date"`
}

// ItemsTotal recomputes the order total from its line items.
func ItemsTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
